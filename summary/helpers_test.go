package summary

import (
	"bytes"
	"testing"

	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/metrics"
	"github.com/scgpm/interop/record"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
	"github.com/stretchr/testify/require"
)

type stream struct {
	t   *testing.T
	s   schema.Schema
	buf bytes.Buffer
	w   *record.Writer
}

func newStream(t *testing.T, kind format.FileKind, version uint8, binning *section.BinningTable) *stream {
	t.Helper()

	s, err := schema.Lookup(kind, version)
	require.NoError(t, err)

	st := &stream{t: t, s: s}
	st.w = record.NewWriter(&st.buf)
	require.NoError(t, st.w.WriteHeader(section.Header{Version: version, RecordLength: uint8(s.RecordSize())}))
	if s.HasBinning {
		require.NoError(t, st.w.WriteBinningHeader(binning))
	}

	return st
}

func (st *stream) add(lane, tile, cycle uint16, fields ...float64) *stream {
	st.t.Helper()
	values := append([]float64{float64(lane), float64(tile), float64(cycle)}, fields...)
	require.NoError(st.t, st.w.WriteRecord(st.s, values...))

	return st
}

func (st *stream) quality(opts ...metrics.DecodeOption) *metrics.QualityScores {
	st.t.Helper()
	q, err := metrics.DecodeQualityScores(bytes.NewReader(st.buf.Bytes()), opts...)
	require.NoError(st.t, err)

	return q
}

func (st *stream) extraction() *metrics.Extraction {
	st.t.Helper()
	e, err := metrics.DecodeExtraction(bytes.NewReader(st.buf.Bytes()))
	require.NoError(st.t, err)

	return e
}

func (st *stream) corrected() *metrics.CorrectedIntensity {
	st.t.Helper()
	c, err := metrics.DecodeCorrectedIntensity(bytes.NewReader(st.buf.Bytes()))
	require.NoError(st.t, err)

	return c
}

func bins(n int, counts map[int]float64) []float64 {
	h := make([]float64, n)
	for bin, c := range counts {
		h[bin-1] = c
	}

	return h
}

// correctedV2 lays out avg, a/c/g/t intensity, a/c/g/t called, n/a/c/g/t calls, snr.
func correctedV2(intensity, called [4]float64, calls [5]float64, snr float64) []float64 {
	v := []float64{0}
	v = append(v, intensity[:]...)
	v = append(v, called[:]...)
	v = append(v, calls[:]...)

	return append(v, snr)
}
