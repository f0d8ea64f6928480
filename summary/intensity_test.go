package summary

import (
	"testing"

	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/metrics"
	"github.com/stretchr/testify/require"
)

func TestBaseCalls_Percentages(t *testing.T) {
	c := newStream(t, format.KindCorrectedIntensity, 2, nil).
		add(1, 1101, 1, correctedV2([4]float64{}, [4]float64{}, [5]float64{5, 70, 10, 10, 5}, 0)...).
		corrected()

	tbl, err := BaseCalls(c, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c", "g", "t", "n"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	require.Equal(t, []float64{70, 10, 10, 5, 5}, tbl.Rows[0].Values)

	var sum float64
	for _, v := range tbl.Rows[0].Values {
		sum += v
	}
	require.Equal(t, 100.0, sum)
}

func TestBaseCallPercentages_NoCalls(t *testing.T) {
	require.Equal(t, []float64{0, 0, 0, 0, 0}, BaseCallPercentages(metrics.CorrectedAverage{}))
}

func TestExtractionTables(t *testing.T) {
	e := newStream(t, format.KindExtraction, 2, nil).
		add(3, 1101, 1, 2, 2, 2, 2, 100, 200, 300, 400, 0).
		add(3, 1102, 1, 3, 3, 3, 4, 101, 201, 301, 401, 0).
		add(3, 1101, 3, 1, 1, 1, 1, 10, 10, 10, 10, 0).
		extraction()

	raw, err := RawIntensity(e, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c", "g", "t"}, raw.Columns)
	require.Len(t, raw.Rows, 3)
	require.Equal(t, []float64{100.5, 200.5, 300.5, 400.5}, raw.Rows[0].Values)
	require.True(t, raw.Rows[1].Gap)
	require.Equal(t, []int{2}, raw.Gaps)

	focus, err := Focus(e, 3, WithGapPolicy(GapOmit))
	require.NoError(t, err)
	require.Len(t, focus.Rows, 2)
	require.Equal(t, []float64{2.5, 2.5, 2.5, 3}, focus.Rows[0].Values)
	require.Equal(t, []float64{1, 1, 1, 1}, focus.Rows[1].Values)

	empty, err := RawIntensity(e, 2)
	require.NoError(t, err)
	require.Equal(t, 0, empty.DataRows())
	require.ErrorIs(t, RequireData(empty), errs.ErrEmptyAggregate)
	require.NoError(t, RequireData(raw))
}

func TestCorrectedTables(t *testing.T) {
	c := newStream(t, format.KindCorrectedIntensity, 2, nil).
		add(1, 1101, 1, correctedV2([4]float64{10, 20, 30, 40}, [4]float64{1, 2, 3, 4}, [5]float64{1, 1, 1, 1, 1}, 7)...).
		add(1, 1102, 1, correctedV2([4]float64{20, 30, 40, 50}, [4]float64{3, 4, 5, 6}, [5]float64{1, 1, 1, 1, 1}, 9)...).
		corrected()

	corr, err := CorrectedIntensity(c, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{15, 25, 35, 45}, corr.Rows[0].Values)

	called, err := CalledIntensity(c, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3, 4, 5}, called.Rows[0].Values)

	snr, err := SignalToNoise(c, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"snr"}, snr.Columns)
	require.Equal(t, []float64{8}, snr.Rows[0].Values)
}

func TestCorrectedTables_V3(t *testing.T) {
	c := newStream(t, format.KindCorrectedIntensity, 3, nil).
		add(1, 1101, 1, 1, 2, 3, 4, 0, 25, 25, 25, 25).
		corrected()

	_, err := CorrectedIntensity(c, 1)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	_, err = SignalToNoise(c, 1)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)

	called, err := CalledIntensity(c, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4}, called.Rows[0].Values)

	calls, err := BaseCalls(c, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{25, 25, 25, 25, 0}, calls.Rows[0].Values)
}
