package compress

import "github.com/scgpm/interop/format"

// ZstdCodec handles Zstandard frames.
//
// The default build uses the pure Go decoder from klauspost/compress. Building
// with cgo and the "gozstd" tag switches to the libzstd bindings of
// valyala/gozstd, which decode large archives faster.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (c ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
