package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/scgpm/interop/format"
)

// Decompressor opens a decompressing reader over a compressed stream.
type Decompressor interface {
	// NewReader returns a reader producing the decompressed content of r.
	// Closing the returned reader releases decoder resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Compressor opens a compressing writer.
type Compressor interface {
	// NewWriter returns a writer compressing into w. Close flushes the
	// compressed stream but does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// Codec combines both directions for one container format.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// sniffLen is the number of leading bytes Detect needs.
const sniffLen = 4

var magics = []struct {
	typ   format.CompressionType
	magic []byte
}{
	{format.CompressionGzip, []byte{0x1f, 0x8b}},
	{format.CompressionZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{format.CompressionLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{format.CompressionS2, []byte{0xff, 0x06, 0x00, 0x00}},
}

// Detect returns the container format announced by the leading bytes of a stream.
//
// Parameters:
//   - prefix: the first bytes of the stream (4 bytes are enough)
//
// Returns:
//   - format.CompressionType: the detected container, CompressionNone if no magic matches
func Detect(prefix []byte) format.CompressionType {
	for _, m := range magics {
		if bytes.HasPrefix(prefix, m.magic) {
			return m.typ
		}
	}

	return format.CompressionNone
}

// NewReader returns a reader over the decompressed content of r.
//
// The container is detected from the leading bytes; plain input is returned
// as-is (wrapped so that Close is a no-op).
//
// Returns:
//   - io.ReadCloser: the decompressed stream
//   - format.CompressionType: the detected container
//   - error: an error if the decoder cannot be created
func NewReader(r io.Reader) (io.ReadCloser, format.CompressionType, error) {
	br := bufio.NewReader(r)

	// A short stream is not an error here; the metrics reader reports truncation.
	prefix, _ := br.Peek(sniffLen)
	ct := Detect(prefix)

	codec, err := GetCodec(ct)
	if err != nil {
		return nil, ct, err
	}

	rc, err := codec.NewReader(br)
	if err != nil {
		return nil, ct, fmt.Errorf("open %s stream: %w", ct, err)
	}

	return rc, ct, nil
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Gzip, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionGzip:
		return NewGzipCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("invalid compression: %s", compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionGzip: NewGzipCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
