package codec

import "errors"

var (
	ErrUnsupportedMethod    = errors.New("codec: unsupported embedding method")
	ErrChunkNotFound        = errors.New("codec: no model chunk in PNG")
	ErrMalformedChunk       = errors.New("codec: malformed model chunk")
	ErrHeaderNotFound       = errors.New("codec: pixel header magic not found")
	ErrTruncatedPixelStream = errors.New("codec: pixel stream shorter than declared length")
	ErrCorruptPayload       = errors.New("codec: corrupt payload")
)
