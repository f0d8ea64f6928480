package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/scgpm/interop/format"
)

// GzipCodec handles gzip-compressed metrics files.
type GzipCodec struct{}

var _ Codec = (*GzipCodec)(nil)

// NewGzipCodec creates a new gzip codec.
func NewGzipCodec() GzipCodec {
	return GzipCodec{}
}

// Type returns format.CompressionGzip.
func (c GzipCodec) Type() format.CompressionType {
	return format.CompressionGzip
}

// NewReader opens a gzip reader. Concatenated members are read as one stream.
func (c GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return gr, nil
}

// NewWriter opens a gzip writer at the default level.
func (c GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}
