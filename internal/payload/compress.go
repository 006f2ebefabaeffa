// Package payload implements the compression and integrity layer shared
// by both embedding strategies. It knows nothing about PNG structure:
// inputs and outputs are plain byte sequences.
package payload

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrCorrupt reports a compressed stream that cannot be inflated.
var ErrCorrupt = errors.New("payload: corrupt compressed stream")

// Compress deflates data with zlib at the maximum compression level.
// The level is a format constant, not a tunable: the same input always
// yields the same blob, and Decompress(Compress(x)) == x for every
// byte sequence including the empty one.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress is the exact inverse of Compress. A malformed or truncated
// stream is reported as ErrCorrupt, never returned as partial output.
func Decompress(blob []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return data, nil
}
