package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/samcharles93/modelpng/internal/payload"
)

// Pixel-strategy header, a versioned contract between encoder and
// decoder builds. All integers are big-endian, matching the PNG chunk
// convention:
//
//	magic "mPXL" (4) | compressed size u64 | original size u64 |
//	name length u16 | name bytes
//
// The compressed blob follows the header immediately; any remaining
// channel capacity is zero padding that the decoder never touches.
const (
	pixelMagic     = "mPXL"
	pixelFixedSize = 4 + 8 + 8 + 2
	bytesPerPixel  = 3
	maxNameLen     = 1<<16 - 1
)

func encodePixel(data []byte, name string, s settings) ([]byte, error) {
	if len(name) > maxNameLen {
		return nil, fmt.Errorf("codec: filename too long for pixel header (%d bytes)", len(name))
	}

	s.progress.Stage(StageCompress)
	blob, err := payload.Compress(data)
	if err != nil {
		return nil, err
	}

	s.progress.Stage(StageEmbed)
	stream := make([]byte, 0, pixelFixedSize+len(name)+len(blob))
	stream = append(stream, pixelMagic...)
	stream = binary.BigEndian.AppendUint64(stream, uint64(len(blob)))
	stream = binary.BigEndian.AppendUint64(stream, uint64(len(data)))
	stream = binary.BigEndian.AppendUint16(stream, uint16(len(name)))
	stream = append(stream, name...)
	stream = append(stream, blob...)

	s.progress.Stage(StageBuildImage)
	width, height := rasterDims(len(stream))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := img.PixOffset(x, y)
			for ch := 0; ch < bytesPerPixel; ch++ {
				if i+ch < len(stream) {
					img.Pix[off+ch] = stream[i+ch]
				}
			}
			img.Pix[off+3] = 0xFF
			i += bytesPerPixel
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codec: encode carrier image: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePixel(data []byte, s settings) (Result, error) {
	s.progress.Stage(StageScan)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		// The stdlib decoder reports a container cut short as an
		// unexpected EOF; fold that into the package's truncation error
		// so callers see one kind for every truncated pixel carrier.
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Result{}, fmt.Errorf("%w: %v", ErrTruncatedPixelStream, err)
		}
		return Result{}, fmt.Errorf("codec: decode carrier image: %w", err)
	}
	stream := channelBytes(img)

	if len(stream) < pixelFixedSize || string(stream[:len(pixelMagic)]) != pixelMagic {
		return Result{}, ErrHeaderNotFound
	}
	compressedSize := binary.BigEndian.Uint64(stream[4:12])
	originalSize := binary.BigEndian.Uint64(stream[12:20])
	nameLen := int(binary.BigEndian.Uint16(stream[20:22]))

	s.progress.Stage(StageExtract)
	headerEnd := pixelFixedSize + nameLen
	if headerEnd > len(stream) {
		return Result{}, fmt.Errorf("%w: header runs past channel capacity", ErrTruncatedPixelStream)
	}
	if compressedSize > uint64(len(stream)-headerEnd) {
		return Result{}, fmt.Errorf("%w: header declares %d byte(s), %d available",
			ErrTruncatedPixelStream, compressedSize, len(stream)-headerEnd)
	}
	name := string(stream[pixelFixedSize:headerEnd])
	blob := stream[headerEnd : headerEnd+int(compressedSize)]

	s.progress.Stage(StageDecompress)
	out, err := payload.Decompress(blob)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	if uint64(len(out)) != originalSize {
		return Result{}, fmt.Errorf("%w: size mismatch: header declares %d byte(s), got %d",
			ErrCorruptPayload, originalSize, len(out))
	}

	s.progress.Stage(StageVerify)
	return Result{
		Data: out,
		Envelope: payload.Envelope{
			Name:           name,
			OriginalSize:   originalSize,
			CompressedSize: compressedSize,
		},
		Checksum: payload.Checksum(out),
	}, nil
}

// rasterDims returns the smallest near-square raster whose RGB channel
// capacity (width*height*3 bytes) covers n bytes. Never below 1x1.
func rasterDims(n int) (width, height int) {
	pixels := (n + bytesPerPixel - 1) / bytesPerPixel
	if pixels < 1 {
		pixels = 1
	}
	width = int(math.Ceil(math.Sqrt(float64(pixels))))
	height = (pixels + width - 1) / width
	return width, height
}

// channelBytes reads the R, G and B channels in row-major scan order,
// reproducing the byte stream laid down by encodePixel regardless of
// the in-memory representation png.Decode chose.
func channelBytes(img image.Image) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*bytesPerPixel)

	// The stdlib decoder yields *image.RGBA for 8-bit truecolor, which
	// is what encodePixel emits; the generic path covers everything
	// else (the carrier is fully opaque, so premultiplication is a
	// no-op either way).
	if src, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				out = append(out, row[i], row[i+1], row[i+2])
			}
		}
		return out
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out = append(out, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return out
}
