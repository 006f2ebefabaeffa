// Package pngc implements structural reading and writing of the PNG
// chunk stream.
//
// The package deals only with the container layout: the 8-byte
// signature followed by typed, length-prefixed, CRC-checked chunks.
// Chunk payloads are carried as opaque bytes and never interpreted,
// so the same reader serves image data and ancillary metadata alike.
package pngc

// Signature is the fixed 8-byte sequence that opens every PNG stream.
var Signature = [8]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// Chunk types used by this module. Types are exact 4-character ASCII
// tokens; anything else encountered during reading is passed through
// untouched.
const (
	TypeIHDR = "IHDR"
	TypeIDAT = "IDAT"
	TypeIEND = "IEND"

	// TypeTEXT is the textual metadata chunk. Its data is
	// keyword + 0x00 + value, both Latin-1 text.
	TypeTEXT = "tEXt"
)

// Chunk is a single PNG chunk: a 4-character type and its payload.
// Length and CRC are derived on write and validated on read, so they
// are not carried here.
type Chunk struct {
	Type string
	Data []byte
}
