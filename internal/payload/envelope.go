package payload

// Envelope is the side metadata that accompanies a payload through an
// encode/decode round trip: the original filename (optional) and the
// byte counts before and after compression. It travels uncompressed
// and must be recovered exactly.
type Envelope struct {
	Name           string
	OriginalSize   uint64
	CompressedSize uint64
}
