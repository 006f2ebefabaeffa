// Package codec embeds arbitrary binary payloads in PNG images and
// recovers them losslessly.
//
// Two strategies are supported. The chunk method stores the compressed
// payload as base64 text in a tEXt metadata chunk of a minimal valid
// image: any generic PNG consumer sees a 1x1 white picture and ignores
// the extra chunk. The pixel method packs a binary header plus the
// compressed payload directly into the RGB channels of a synthesized
// raster.
//
// Every operation is a pure function of its input bytes. The package
// holds no state between calls, so concurrent use on independent
// inputs needs no coordination.
package codec

import (
	"fmt"

	"github.com/samcharles93/modelpng/internal/payload"
)

// Method selects an embedding strategy.
type Method uint8

const (
	MethodChunk Method = iota + 1
	MethodPixel
)

func (m Method) String() string {
	switch m {
	case MethodChunk:
		return "chunk"
	case MethodPixel:
		return "pixel"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// ParseMethod maps the wire/CLI names onto a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "chunk":
		return MethodChunk, nil
	case "pixel":
		return MethodPixel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, name)
	}
}

// Result carries everything a decode produces: the exact original
// bytes, the recovered envelope, and a checksum of Data for caller-side
// display. The checksum is always computed from the decompressed bytes,
// never read out of the container.
type Result struct {
	Data     []byte
	Envelope payload.Envelope
	Checksum string
}

// Option configures a single encode or decode call.
type Option func(*settings)

type settings struct {
	progress Progress
}

// WithProgress installs a sink for stage events. Without it, stage
// events are discarded.
func WithProgress(p Progress) Option {
	return func(s *settings) {
		if p != nil {
			s.progress = p
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{progress: nopProgress{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// Encode embeds data into a fresh PNG using the given method. The name
// is the original filename carried in the envelope; it may be empty.
func Encode(method Method, data []byte, name string, opts ...Option) ([]byte, error) {
	s := newSettings(opts)
	switch method {
	case MethodChunk:
		return encodeChunk(data, name, s)
	case MethodPixel:
		return encodePixel(data, name, s)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}

// Decode recovers the payload embedded in png with the given method.
// Each decode is a pure function of the PNG bytes handed to it.
func Decode(method Method, png []byte, opts ...Option) (Result, error) {
	s := newSettings(opts)
	switch method {
	case MethodChunk:
		return decodeChunk(png, s)
	case MethodPixel:
		return decodePixel(png, s)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}
