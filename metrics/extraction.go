package metrics

import (
	"io"

	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/record"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/store"
)

// ExtractionTile holds the extraction metrics of one tile at one cycle.
// Per-channel arrays are in A, C, G, T order.
type ExtractionTile struct {
	FWHM      [4]float32
	Intensity [4]uint16
	// Timestamp is the instrument's extraction time stamp, kept verbatim.
	// It is 0 for records written without one.
	Timestamp uint64
}

// ExtractionAverage is the mean over the tiles of one (lane, cycle).
type ExtractionAverage struct {
	FWHM      [4]float64
	Intensity [4]float64
}

// Extraction is a decoded extraction metrics file.
type Extraction struct {
	Version      uint8
	RecordLength uint8
	// MaxCycle is the highest cycle read, including skipped records.
	MaxCycle     uint16
	Tiles        *store.Tiles[ExtractionTile]
	Averages     *store.LaneCycles[ExtractionAverage]
	Stats
}

// DecodeExtraction decodes an ExtractionMetricsOut.bin stream and derives
// the per (lane, cycle) tile means.
func DecodeExtraction(r io.Reader, opts ...DecodeOption) (*Extraction, error) {
	cfg, err := NewDecodeConfig(opts...)
	if err != nil {
		return nil, err
	}

	st, err := decodeStream(r, format.KindExtraction, cfg, extractionConverter)
	if err != nil {
		return nil, err
	}

	return &Extraction{
		Version:      st.header.Version,
		RecordLength: st.header.RecordLength,
		MaxCycle:     st.maxCycle,
		Tiles:        st.tiles,
		Averages:     store.Derive(st.tiles, averageExtraction),
		Stats:        st.stats,
	}, nil
}

func extractionConverter(s schema.Schema) converter[ExtractionTile] {
	fwhm := channelIndexes(s, schema.FWHMField)
	intensity := channelIndexes(s, schema.IntensityField)
	ts := s.Index(schema.FieldTimestamp)

	return func(rec record.Record) ExtractionTile {
		var t ExtractionTile
		for ch := range schema.Channels {
			t.FWHM[ch] = rec.Float32(fwhm[ch])
			t.Intensity[ch] = rec.Uint16(intensity[ch])
		}
		if ts >= 0 && rec.Has(ts) {
			t.Timestamp = rec.Uint64(ts)
		}

		return t
	}
}

func averageExtraction(tiles map[uint16]ExtractionTile) ExtractionAverage {
	mean := store.NewMean(8)
	for _, t := range tiles {
		mean.Add(
			float64(t.FWHM[0]), float64(t.FWHM[1]), float64(t.FWHM[2]), float64(t.FWHM[3]),
			float64(t.Intensity[0]), float64(t.Intensity[1]), float64(t.Intensity[2]), float64(t.Intensity[3]),
		)
	}
	v := mean.Values()

	var avg ExtractionAverage
	copy(avg.FWHM[:], v[0:4])
	copy(avg.Intensity[:], v[4:8])

	return avg
}
