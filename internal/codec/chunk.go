package codec

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/samcharles93/modelpng/internal/payload"
	"github.com/samcharles93/modelpng/pkg/pngc"
)

// Chunk-strategy contract. The model keyword is the literal token both
// sides agree on; changing any of these breaks cross-version
// compatibility.
const (
	modelKey          = "mOdL"
	nameKey           = "mOdL_name"
	sizeKey           = "mOdL_size"
	compressedSizeKey = "mOdL_compressed_size"
)

func encodeChunk(data []byte, name string, s settings) ([]byte, error) {
	s.progress.Stage(StageCompress)
	blob, err := payload.Compress(data)
	if err != nil {
		return nil, err
	}

	s.progress.Stage(StageBuildImage)
	ihdr, idat, err := minimalRaster()
	if err != nil {
		return nil, err
	}

	s.progress.Stage(StageEmbed)
	chunks := []pngc.Chunk{
		ihdr,
		textChunk(modelKey, base64.StdEncoding.EncodeToString(blob)),
	}
	if name != "" {
		chunks = append(chunks, textChunk(nameKey, name))
	}
	chunks = append(chunks,
		textChunk(sizeKey, strconv.FormatUint(uint64(len(data)), 10)),
		textChunk(compressedSizeKey, strconv.FormatUint(uint64(len(blob)), 10)),
		idat,
	)
	return pngc.Encode(chunks)
}

func decodeChunk(png []byte, s settings) (Result, error) {
	s.progress.Stage(StageScan)
	r, err := pngc.NewReader(png)
	if err != nil {
		return Result{}, err
	}

	var (
		encoded  string
		haveBlob bool
		name     string
	)
	for {
		c, ok, err := r.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		if c.Type != pngc.TypeTEXT {
			continue
		}
		key, value, split := splitText(c.Data)
		if !split {
			// A model chunk without the null separator cannot carry a
			// value and is a structural violation; any other keyword is
			// simply not ours.
			if !haveBlob && key == modelKey {
				return Result{}, fmt.Errorf("%w: missing null separator", ErrMalformedChunk)
			}
			continue
		}
		// First chunk per keyword wins; later duplicates are ignored.
		// The size chunks are a human-inspection side channel and are
		// never checked against the blob: with duplicate model chunks
		// they may describe a different blob than the authoritative
		// first one.
		switch key {
		case modelKey:
			if !haveBlob {
				encoded, haveBlob = value, true
			}
		case nameKey:
			if name == "" {
				name = value
			}
		}
	}
	if !haveBlob {
		return Result{}, ErrChunkNotFound
	}

	s.progress.Stage(StageExtract)
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Result{}, fmt.Errorf("%w: invalid base64: %v", ErrMalformedChunk, err)
	}

	s.progress.Stage(StageDecompress)
	data, err := payload.Decompress(blob)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}

	s.progress.Stage(StageVerify)
	return Result{
		Data: data,
		Envelope: payload.Envelope{
			Name:           name,
			OriginalSize:   uint64(len(data)),
			CompressedSize: uint64(len(blob)),
		},
		Checksum: payload.Checksum(data),
	}, nil
}

// minimalRaster builds the critical chunks for a 1x1 white truecolor
// image, the smallest raster that keeps generic PNG consumers happy.
// The ancillary model chunks sit between these two.
func minimalRaster() (ihdr, idat pngc.Chunk, err error) {
	hdr := make([]byte, 13)
	binary.BigEndian.PutUint32(hdr[0:4], 1)
	binary.BigEndian.PutUint32(hdr[4:8], 1)
	hdr[8] = 8 // bit depth
	hdr[9] = 2 // truecolor; compression, filter and interlace stay 0

	// One scanline: filter None, one white pixel. IDAT payload is the
	// same zlib stream the compression layer produces.
	scanline := []byte{0x00, 0xFF, 0xFF, 0xFF}
	blob, err := payload.Compress(scanline)
	if err != nil {
		return pngc.Chunk{}, pngc.Chunk{}, err
	}
	return pngc.Chunk{Type: pngc.TypeIHDR, Data: hdr},
		pngc.Chunk{Type: pngc.TypeIDAT, Data: blob},
		nil
}

func textChunk(key, value string) pngc.Chunk {
	data := make([]byte, 0, len(key)+1+len(value))
	data = append(data, key...)
	data = append(data, 0x00)
	data = append(data, value...)
	return pngc.Chunk{Type: pngc.TypeTEXT, Data: data}
}

// splitText divides a tEXt payload into keyword and value at the first
// null byte. When no separator exists the whole payload is returned as
// the keyword and split is false.
func splitText(data []byte) (key, value string, split bool) {
	for i := range data {
		if data[i] == 0x00 {
			return string(data[:i]), string(data[i+1:]), true
		}
	}
	return string(data), "", false
}
