//go:build !cgo || !gozstd

package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewReader opens a Zstandard stream reader.
// A single decoder goroutine is enough for the sequential metrics reader.
func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	return decoder.IOReadCloser(), nil
}

// NewWriter opens a Zstandard stream writer.
func (c ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}

	return encoder, nil
}
