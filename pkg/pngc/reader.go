package pngc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Reader walks the chunk stream of an in-memory PNG. It is a lazy,
// finite, non-restartable cursor: each call to Next consumes exactly
// one chunk (4-byte big-endian length, 4-byte type, data, 4-byte CRC)
// and must land exactly on the start of the following chunk or the end
// of the buffer — any shortfall is reported as ErrTruncated.
//
// The CRC-32 over type and data is verified for every chunk before its
// data is handed out; a mismatch is reported as ErrBadCRC rather than
// silently trusting corrupted bytes.
type Reader struct {
	data []byte
	off  int
	done bool
}

// NewReader validates the 8-byte signature and positions the cursor on
// the first chunk.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature[:]) {
		return nil, ErrBadSignature
	}
	return &Reader{data: data, off: len(Signature)}, nil
}

// Next returns the next chunk in file order. Unknown chunk types are
// returned like any other; callers skip what they do not recognise.
// After the IEND chunk has been produced, or once the buffer is
// exhausted, Next reports ok == false.
func (r *Reader) Next() (c Chunk, ok bool, err error) {
	if r.done || r.off >= len(r.data) {
		return Chunk{}, false, nil
	}
	if r.off+8 > len(r.data) {
		return Chunk{}, false, fmt.Errorf("%w: %d byte(s) left at offset %d",
			ErrTruncated, len(r.data)-r.off, r.off)
	}

	length := int(binary.BigEndian.Uint32(r.data[r.off:]))
	typ := string(r.data[r.off+4 : r.off+8])

	end := r.off + 8 + length + 4
	if end < r.off+12 || end > len(r.data) {
		return Chunk{}, false, fmt.Errorf("%w: chunk %q declares %d data byte(s) at offset %d",
			ErrTruncated, typ, length, r.off)
	}

	data := r.data[r.off+8 : r.off+8+length]
	want := binary.BigEndian.Uint32(r.data[r.off+8+length:])
	if got := crc32.ChecksumIEEE(r.data[r.off+4 : r.off+8+length]); got != want {
		return Chunk{}, false, fmt.Errorf("%w: chunk %q at offset %d", ErrBadCRC, typ, r.off)
	}

	r.off = end
	if typ == TypeIEND {
		r.done = true
	}
	return Chunk{Type: typ, Data: data}, true, nil
}
