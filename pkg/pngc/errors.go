package pngc

import "errors"

var (
	ErrBadSignature = errors.New("pngc: not a PNG stream")
	ErrTruncated    = errors.New("pngc: truncated chunk stream")
	ErrBadCRC       = errors.New("pngc: chunk CRC mismatch")
	ErrBadChunkType = errors.New("pngc: invalid chunk type")
)
