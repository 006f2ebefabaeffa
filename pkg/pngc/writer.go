package pngc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Encode emits a complete PNG stream: the signature, the given chunks
// in order, then the terminating IEND. The IEND chunk is always
// appended by Encode itself so the stream contains exactly one;
// passing IEND in chunks is rejected.
func Encode(chunks []Chunk) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(Signature[:])
	for i := range chunks {
		if chunks[i].Type == TypeIEND {
			return nil, fmt.Errorf("%w: IEND is written by Encode", ErrBadChunkType)
		}
		if err := writeChunk(&buf, chunks[i]); err != nil {
			return nil, err
		}
	}
	if err := writeChunk(&buf, Chunk{Type: TypeIEND}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeChunk(buf *bytes.Buffer, c Chunk) error {
	if len(c.Type) != 4 {
		return fmt.Errorf("%w: %q", ErrBadChunkType, c.Type)
	}

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(c.Data)))
	copy(hdr[4:], c.Type)
	buf.Write(hdr[:])
	buf.Write(c.Data)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(c.Data)
	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], crc.Sum32())
	buf.Write(tail[:])
	return nil
}
