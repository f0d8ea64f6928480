package interop

import (
	"slices"

	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/internal/hash"
	"github.com/scgpm/interop/internal/source"
	"github.com/scgpm/interop/metrics"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
)

// FileInfo describes a metrics file for diagnostics.
type FileInfo struct {
	Path        string
	Kind        format.FileKind
	Compression format.CompressionType
	Header      section.Header
	Schema      schema.Schema
	// Binning is set for quality-score files with an enabled binning header.
	Binning  *section.BinningTable
	Lanes    []uint16
	MaxCycle uint16
	metrics.Stats
	// Size is the stored size in bytes and Digest its xxHash64.
	Size   int64
	Digest string
}

// Inspect decodes path as kind and reports its layout and contents. Records
// with an invalid lane are counted as skipped instead of failing.
func Inspect(path string, kind format.FileKind, opts ...metrics.DecodeOption) (*FileInfo, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	info := &FileInfo{Path: path, Kind: kind, Compression: src.Compression}
	opts = slices.Concat(opts, []metrics.DecodeOption{metrics.WithForce(true)})

	switch kind {
	case format.KindQualityScore:
		q, err := metrics.DecodeQualityScores(src, opts...)
		if err != nil {
			return nil, &fileError{path: path, err: err}
		}
		info.Header = section.Header{Version: q.Version, RecordLength: q.RecordLength}
		info.Binning = q.Binning
		info.Lanes = q.Tiles.Lanes()
		info.MaxCycle = q.MaxCycle
		info.Stats = q.Stats
	case format.KindExtraction:
		e, err := metrics.DecodeExtraction(src, opts...)
		if err != nil {
			return nil, &fileError{path: path, err: err}
		}
		info.Header = section.Header{Version: e.Version, RecordLength: e.RecordLength}
		info.Lanes = e.Tiles.Lanes()
		info.MaxCycle = e.MaxCycle
		info.Stats = e.Stats
	case format.KindCorrectedIntensity:
		c, err := metrics.DecodeCorrectedIntensity(src, opts...)
		if err != nil {
			return nil, &fileError{path: path, err: err}
		}
		info.Header = section.Header{Version: c.Version, RecordLength: c.RecordLength}
		info.Lanes = c.Tiles.Lanes()
		info.MaxCycle = c.MaxCycle
		info.Stats = c.Stats
	default:
		return nil, &errs.DecodeError{Kind: kind.String(), Err: errs.ErrUnknownFileKind}
	}

	if info.Schema, err = schema.Lookup(kind, info.Header.Version); err != nil {
		return nil, err
	}

	sum, size, err := src.Digest()
	if err != nil {
		return nil, err
	}
	info.Size = size
	info.Digest = hash.Hex(sum)

	return info, nil
}
