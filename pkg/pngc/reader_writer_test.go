package pngc

import (
	"errors"
	"testing"
)

func readAll(t *testing.T, data []byte) []Chunk {
	t.Helper()
	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	var out []Chunk
	for {
		c, ok, err := r.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}

func TestEncodeReadRoundTrip(t *testing.T) {
	t.Parallel()

	in := []Chunk{
		{Type: TypeIHDR, Data: []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}},
		{Type: TypeTEXT, Data: append([]byte("key\x00"), []byte("value")...)},
		{Type: "abCd", Data: []byte{1, 2, 3}},
		{Type: TypeIDAT, Data: nil},
	}
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got := readAll(t, enc)
	if len(got) != len(in)+1 {
		t.Fatalf("chunk count: got %d want %d", len(got), len(in)+1)
	}
	for i := range in {
		if got[i].Type != in[i].Type {
			t.Fatalf("chunk %d type: got %q want %q", i, got[i].Type, in[i].Type)
		}
		if string(got[i].Data) != string(in[i].Data) {
			t.Fatalf("chunk %d data mismatch", i)
		}
	}
	last := got[len(got)-1]
	if last.Type != TypeIEND || len(last.Data) != 0 {
		t.Fatalf("expected empty IEND terminator, got %q (%d bytes)", last.Type, len(last.Data))
	}
}

func TestReaderStopsAfterIEND(t *testing.T) {
	t.Parallel()

	enc, err := Encode([]Chunk{{Type: TypeIHDR, Data: []byte{1}}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Trailing garbage after IEND must not be traversed.
	enc = append(enc, 0xDE, 0xAD, 0xBE, 0xEF)

	r, err := NewReader(enc)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	var types []string
	for {
		c, ok, err := r.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if !ok {
			break
		}
		types = append(types, c.Type)
	}
	if len(types) != 2 || types[1] != TypeIEND {
		t.Fatalf("unexpected traversal: %v", types)
	}
}

func TestReaderRejectsBadSignature(t *testing.T) {
	t.Parallel()

	if _, err := NewReader([]byte("GIF89a..")); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
	if _, err := NewReader(nil); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature for empty input, got %v", err)
	}
}

func TestReaderDetectsTruncation(t *testing.T) {
	t.Parallel()

	enc, err := Encode([]Chunk{{Type: TypeIDAT, Data: []byte("0123456789")}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	for cut := 1; cut < 12; cut++ {
		r, err := NewReader(enc[:len(enc)-cut])
		if err != nil {
			t.Fatalf("new reader (cut %d): %v", cut, err)
		}
		var lastErr error
		for {
			_, ok, err := r.Next()
			if err != nil {
				lastErr = err
				break
			}
			if !ok {
				break
			}
		}
		if !errors.Is(lastErr, ErrTruncated) {
			t.Fatalf("cut %d: expected ErrTruncated, got %v", cut, lastErr)
		}
	}
}

func TestReaderDetectsCRCMismatch(t *testing.T) {
	t.Parallel()

	enc, err := Encode([]Chunk{{Type: TypeIDAT, Data: []byte("0123456789")}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Flip one bit inside the IDAT payload.
	enc[8+8+3] ^= 0x01

	r, err := NewReader(enc)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	_, _, err = r.Next()
	if !errors.Is(err, ErrBadCRC) {
		t.Fatalf("expected ErrBadCRC, got %v", err)
	}
}

func TestReaderDeclaredLengthPastEnd(t *testing.T) {
	t.Parallel()

	enc, err := Encode([]Chunk{{Type: TypeIDAT, Data: []byte("abc")}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Inflate the declared length of the first chunk far past the buffer.
	enc[8+3] = 0xFF

	r, err := NewReader(enc)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if _, _, err := r.Next(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestEncodeRejectsInvalidChunks(t *testing.T) {
	t.Parallel()

	if _, err := Encode([]Chunk{{Type: "toolong"}}); !errors.Is(err, ErrBadChunkType) {
		t.Fatalf("expected ErrBadChunkType, got %v", err)
	}
	if _, err := Encode([]Chunk{{Type: TypeIEND}}); !errors.Is(err, ErrBadChunkType) {
		t.Fatalf("expected ErrBadChunkType for explicit IEND, got %v", err)
	}
}
