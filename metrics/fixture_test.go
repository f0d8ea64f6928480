package metrics

import (
	"bytes"
	"testing"

	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/record"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
	"github.com/stretchr/testify/require"
)

// fixture builds a metrics stream in memory.
type fixture struct {
	t   *testing.T
	s   schema.Schema
	buf bytes.Buffer
	w   *record.Writer
}

func newFixture(t *testing.T, kind format.FileKind, version uint8) *fixture {
	t.Helper()

	s, err := schema.Lookup(kind, version)
	require.NoError(t, err)

	return newFixtureLen(t, kind, version, uint8(s.RecordSize()))
}

// newFixtureLen writes a header with an explicit record length.
func newFixtureLen(t *testing.T, kind format.FileKind, version, recLen uint8) *fixture {
	t.Helper()

	s, err := schema.Lookup(kind, version)
	require.NoError(t, err)

	f := &fixture{t: t, s: s}
	f.w = record.NewWriter(&f.buf)
	require.NoError(t, f.w.WriteHeader(section.Header{Version: version, RecordLength: recLen}))

	return f
}

func (f *fixture) binning(b *section.BinningTable) *fixture {
	f.t.Helper()
	require.NoError(f.t, f.w.WriteBinningHeader(b))

	return f
}

func (f *fixture) add(values ...float64) *fixture {
	f.t.Helper()
	require.NoError(f.t, f.w.WriteRecord(f.s, values...))

	return f
}

func (f *fixture) reader() *bytes.Reader {
	return bytes.NewReader(f.buf.Bytes())
}

func (f *fixture) bytes() []byte {
	return bytes.Clone(f.buf.Bytes())
}

func key(lane, tile, cycle uint16) []float64 {
	return []float64{float64(lane), float64(tile), float64(cycle)}
}

func qualityRecord(lane, tile, cycle uint16, counts ...float64) []float64 {
	return append(key(lane, tile, cycle), counts...)
}

// histogram returns n bins with the given bin (1-based) set to count.
func histogram(n, bin int, count float64) []float64 {
	h := make([]float64, n)
	h[bin-1] = count

	return h
}

func extractionRecord(lane, tile, cycle uint16, fwhm, intensity [4]float64) []float64 {
	v := key(lane, tile, cycle)
	v = append(v, fwhm[:]...)
	v = append(v, intensity[:]...)

	return append(v, 1700000000)
}

// correctedV2Record lays out avg, a/c/g/t intensity, a/c/g/t called, n/a/c/g/t calls, snr.
func correctedV2Record(lane, tile, cycle uint16, intensity, called [4]float64, calls [5]float64, snr float64) []float64 {
	v := key(lane, tile, cycle)
	v = append(v, (intensity[0]+intensity[1]+intensity[2]+intensity[3])/4)
	v = append(v, intensity[:]...)
	v = append(v, called[:]...)
	v = append(v, calls[:]...)

	return append(v, snr)
}

func correctedV3Record(lane, tile, cycle uint16, called [4]float64, calls [5]float64) []float64 {
	v := key(lane, tile, cycle)
	v = append(v, called[:]...)

	return append(v, calls[:]...)
}
