// Package source opens metrics inputs: plain or compressed files, or stdin.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scgpm/interop/compress"
	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/internal/hash"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Source is an opened metrics input. Reads return decompressed bytes, while
// the digest and size cover the bytes as stored.
type Source struct {
	Path        string
	Compression format.CompressionType

	file *os.File
	tee  *hash.TeeReader
	rc   io.ReadCloser
}

// Open opens path and detects its compression from the leading bytes.
func Open(path string) (*Source, error) {
	var f *os.File
	if path == Stdin {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	}

	return newSource(path, f)
}

// FromReader wraps an already open stream. Closing the Source does not close r.
func FromReader(name string, r io.Reader) (*Source, error) {
	return newSource(name, r)
}

func newSource(path string, r io.Reader) (*Source, error) {
	s := &Source{Path: path, tee: hash.NewTeeReader(r)}
	if f, ok := r.(*os.File); ok && f != os.Stdin {
		s.file = f
	}

	rc, ct, err := compress.NewReader(s.tee)
	if err != nil {
		_ = s.closeFile()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.rc = rc
	s.Compression = ct

	return s, nil
}

func (s *Source) Read(p []byte) (int, error) {
	return s.rc.Read(p)
}

// Digest reads whatever is left of the stored input and returns its
// xxHash64 digest and size in bytes.
func (s *Source) Digest() (uint64, int64, error) {
	if _, err := io.Copy(io.Discard, s.tee); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", s.Path, err)
	}

	return s.tee.Sum64(), s.tee.BytesRead(), nil
}

// Close releases the decompressor and the underlying file.
func (s *Source) Close() error {
	return errors.Join(s.rc.Close(), s.closeFile())
}

func (s *Source) closeFile() error {
	if s.file == nil {
		return nil
	}

	return s.file.Close()
}
