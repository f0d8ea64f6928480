// Package hash computes the xxHash64 digests used to identify metrics inputs.
package hash

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Sum64 returns the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Hex formats a digest as 16 lowercase hex digits.
func Hex(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// TeeReader hashes everything read through it.
type TeeReader struct {
	r      io.Reader
	digest *xxhash.Digest
	n      int64
}

// NewTeeReader returns a reader that hashes the bytes it passes through from r.
func NewTeeReader(r io.Reader) *TeeReader {
	return &TeeReader{r: r, digest: xxhash.New()}
}

func (t *TeeReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		_, _ = t.digest.Write(p[:n])
		t.n += int64(n)
	}

	return n, err
}

// Sum64 returns the digest of the bytes read so far.
func (t *TeeReader) Sum64() uint64 {
	return t.digest.Sum64()
}

// BytesRead returns the number of bytes read so far.
func (t *TeeReader) BytesRead() int64 {
	return t.n
}
