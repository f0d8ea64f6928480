// Package compress provides transparent decompression of archived metrics files.
//
// Run folders are frequently archived with the InterOp directory compressed
// file by file. The decoders only ever see a plain byte stream: NewReader
// sniffs the first bytes of the input, picks the matching Codec and returns a
// reader over the decompressed data. Plain metrics files are passed through
// untouched; their first byte is a small version number, which never collides
// with the magic numbers below.
//
// # Supported Containers
//
//	Container | Magic bytes             | Library
//	----------|-------------------------|------------------------------------
//	gzip      | 1f 8b                   | github.com/klauspost/compress/gzip
//	zstd      | 28 b5 2f fd             | github.com/klauspost/compress/zstd
//	          |                         | (github.com/valyala/gozstd with the
//	          |                         |  "gozstd" build tag and cgo)
//	lz4 frame | 04 22 4d 18             | github.com/pierrec/lz4/v4
//	s2/snappy | ff 06 00 00 (stream id) | github.com/klauspost/compress/s2
//
// # Usage
//
//	rc, ct, err := compress.NewReader(f)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//	log.Debug("opened metrics", "compression", ct)
//
// Every Codec can also wrap a writer, which is how the test fixtures are built:
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	wc, _ := codec.NewWriter(&buf)
//	wc.Write(raw)
//	wc.Close()
package compress
