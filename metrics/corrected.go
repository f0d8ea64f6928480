package metrics

import (
	"io"
	"log/slog"

	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/record"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/store"
)

// Positions in CorrectedTile.Calls, matching the on-disk order.
const (
	CallN = iota
	CallA
	CallC
	CallG
	CallT
)

// Channel positions in the per-channel arrays.
const (
	ChannelA = iota
	ChannelC
	ChannelG
	ChannelT
)

// CorrectedTile holds the corrected intensity metrics of one tile at one
// cycle. Fields missing from the stream's version stay zero.
type CorrectedTile struct {
	AvgIntensity    uint16
	Intensity       [4]uint16
	CalledIntensity [4]uint16
	Calls           [5]uint32
	SNR             float32
}

// CorrectedAverage is the mean over the tiles of one (lane, cycle).
type CorrectedAverage struct {
	AvgIntensity    float64
	Intensity       [4]float64
	CalledIntensity [4]float64
	Calls           [5]float64
	SNR             float64
}

// CorrectedIntensity is a decoded corrected intensity metrics file.
type CorrectedIntensity struct {
	Version      uint8
	RecordLength uint8
	// HasIntensity reports whether the version carries raw intensities (v1, v2).
	HasIntensity bool
	// HasSNR reports whether the version carries the signal-to-noise ratio (v2).
	HasSNR   bool
	// MaxCycle is the highest cycle read, including skipped records.
	MaxCycle uint16
	Tiles    *store.Tiles[CorrectedTile]
	Averages *store.LaneCycles[CorrectedAverage]
	Stats
}

// DecodeCorrectedIntensity decodes a CorrectedIntMetricsOut.bin stream and
// derives the per (lane, cycle) tile means.
func DecodeCorrectedIntensity(r io.Reader, opts ...DecodeOption) (*CorrectedIntensity, error) {
	cfg, err := NewDecodeConfig(opts...)
	if err != nil {
		return nil, err
	}

	st, err := decodeStream(r, format.KindCorrectedIntensity, cfg, correctedConverter)
	if err != nil {
		return nil, err
	}

	swap := cfg.swapGTCalled && st.header.Version >= 2
	if swap {
		cfg.logger.Warn("averaging called intensities with G and T swapped",
			slog.String("kind", format.KindCorrectedIntensity.String()),
			slog.Int("version", int(st.header.Version)))
	}

	return &CorrectedIntensity{
		Version:      st.header.Version,
		RecordLength: st.header.RecordLength,
		HasIntensity: st.schema.Has(schema.IntensityField(schema.Channels[0])),
		HasSNR:       st.schema.Has(schema.FieldSNR),
		MaxCycle:     st.maxCycle,
		Tiles:        st.tiles,
		Averages: store.Derive(st.tiles, func(tiles map[uint16]CorrectedTile) CorrectedAverage {
			return averageCorrected(tiles, swap)
		}),
		Stats: st.stats,
	}, nil
}

func correctedConverter(s schema.Schema) converter[CorrectedTile] {
	avg := s.Index(schema.FieldAvgIntensity)
	snr := s.Index(schema.FieldSNR)
	intensity := channelIndexes(s, schema.IntensityField)
	called := channelIndexes(s, schema.CalledIntensityField)
	var calls [5]int
	for i, ch := range schema.CallChannels {
		calls[i] = s.Index(schema.CallsField(ch))
	}

	return func(rec record.Record) CorrectedTile {
		var t CorrectedTile
		if avg >= 0 {
			t.AvgIntensity = rec.Uint16(avg)
		}
		for ch := range schema.Channels {
			if intensity[ch] >= 0 {
				t.Intensity[ch] = rec.Uint16(intensity[ch])
			}
			t.CalledIntensity[ch] = rec.Uint16(called[ch])
		}
		for i, idx := range calls {
			t.Calls[i] = rec.Uint32(idx)
		}
		if snr >= 0 {
			t.SNR = rec.Float32(snr)
		}

		return t
	}
}

// averageCorrected averages every field over the tiles. With swapGT the G
// called intensity mean is built from the T values and vice versa.
func averageCorrected(tiles map[uint16]CorrectedTile, swapGT bool) CorrectedAverage {
	const width = 1 + 4 + 4 + 5 + 1
	mean := store.NewMean(width)
	row := make([]float64, width)
	for _, t := range tiles {
		row[0] = float64(t.AvgIntensity)
		for ch := range 4 {
			row[1+ch] = float64(t.Intensity[ch])
			row[5+ch] = float64(t.CalledIntensity[ch])
		}
		if swapGT {
			row[5+ChannelG], row[5+ChannelT] = row[5+ChannelT], row[5+ChannelG]
		}
		for i := range 5 {
			row[9+i] = float64(t.Calls[i])
		}
		row[14] = float64(t.SNR)
		mean.Add(row...)
	}
	v := mean.Values()

	avg := CorrectedAverage{AvgIntensity: v[0], SNR: v[14]}
	copy(avg.Intensity[:], v[1:5])
	copy(avg.CalledIntensity[:], v[5:9])
	copy(avg.Calls[:], v[9:14])

	return avg
}

// TotalCalls returns the sum of all five call counters.
func (a CorrectedAverage) TotalCalls() float64 {
	var sum float64
	for _, c := range a.Calls {
		sum += c
	}

	return sum
}
