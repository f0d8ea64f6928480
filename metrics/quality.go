package metrics

import (
	"io"

	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/record"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
	"github.com/scgpm/interop/store"
)

// QualityTile is the quality-score histogram of one tile at one cycle,
// stored exactly as read. Counts[i] is the number of calls in bin i+1.
type QualityTile struct {
	Counts []uint32
}

// Total returns the sum of all bins.
func (t QualityTile) Total() uint64 {
	var sum uint64
	for _, c := range t.Counts {
		sum += uint64(c)
	}

	return sum
}

// QualityScores is a decoded quality-score metrics file.
type QualityScores struct {
	Version      uint8
	RecordLength uint8
	// QualityLevels is the number of bins per histogram: 50, or 7 for v6.
	QualityLevels int
	// Binning is the binning header of v5/v6 streams, nil when absent or disabled.
	Binning  *section.BinningTable
	// MaxCycle is the highest cycle read, including skipped records.
	MaxCycle uint16
	Tiles    *store.Tiles[QualityTile]
	Stats
}

// DecodeQualityScores decodes a QMetricsOut.bin stream.
//
// Returns:
//   - *QualityScores: the per-tile histograms and stream facts
//   - error: errs.ErrTruncatedInput, errs.ErrUnsupportedVersion,
//     errs.ErrInvalidRecordLength or errs.ErrInvalidLane (without WithForce),
//     wrapped in an *errs.DecodeError
func DecodeQualityScores(r io.Reader, opts ...DecodeOption) (*QualityScores, error) {
	cfg, err := NewDecodeConfig(opts...)
	if err != nil {
		return nil, err
	}

	st, err := decodeStream(r, format.KindQualityScore, cfg, qualityConverter)
	if err != nil {
		return nil, err
	}

	return &QualityScores{
		Version:       st.header.Version,
		RecordLength:  st.header.RecordLength,
		QualityLevels: st.schema.QualityLevels(),
		Binning:       st.binning,
		MaxCycle:      st.maxCycle,
		Tiles:         st.tiles,
		Stats:         st.stats,
	}, nil
}

func qualityConverter(s schema.Schema) converter[QualityTile] {
	levels := s.QualityLevels()

	return func(rec record.Record) QualityTile {
		counts := make([]uint32, levels)
		for i := range counts {
			counts[i] = rec.Uint32(schema.KeyFields + i)
		}

		return QualityTile{Counts: counts}
	}
}
