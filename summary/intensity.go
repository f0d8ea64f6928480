package summary

import (
	"fmt"

	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/metrics"
	"github.com/scgpm/interop/store"
)

// RawIntensity returns the mean raw A/C/G/T intensities of lane.
func RawIntensity(ext *metrics.Extraction, lane uint16, opts ...Option) (*Table, error) {
	return extractionTable("raw intensity", ext, lane, opts, func(a metrics.ExtractionAverage) []float64 {
		return a.Intensity[:]
	})
}

// Focus returns the mean A/C/G/T FWHM of lane.
func Focus(ext *metrics.Extraction, lane uint16, opts ...Option) (*Table, error) {
	return extractionTable("focus", ext, lane, opts, func(a metrics.ExtractionAverage) []float64 {
		return a.FWHM[:]
	})
}

// CorrectedIntensity returns the mean corrected A/C/G/T intensities of lane.
// Version 3 files carry no corrected intensities.
func CorrectedIntensity(c *metrics.CorrectedIntensity, lane uint16, opts ...Option) (*Table, error) {
	if !c.HasIntensity {
		return nil, &errs.DecodeError{Kind: "corrected", Version: c.Version,
			Err: fmt.Errorf("%w: no corrected intensities", errs.ErrUnsupportedVersion)}
	}

	return correctedTable("corrected intensity", c, lane, channelColumns, opts, func(a metrics.CorrectedAverage) []float64 {
		return a.Intensity[:]
	})
}

// CalledIntensity returns the mean called A/C/G/T intensities of lane.
func CalledIntensity(c *metrics.CorrectedIntensity, lane uint16, opts ...Option) (*Table, error) {
	return correctedTable("called intensity", c, lane, channelColumns, opts, func(a metrics.CorrectedAverage) []float64 {
		return a.CalledIntensity[:]
	})
}

// BaseCalls returns the A/C/G/T/N call percentages of lane. Each value is
// 100 × calls / (a + c + g + t + n); a cycle without calls yields zeros.
func BaseCalls(c *metrics.CorrectedIntensity, lane uint16, opts ...Option) (*Table, error) {
	columns := []string{"a", "c", "g", "t", "n"}

	return correctedTable("base calls", c, lane, columns, opts, BaseCallPercentages)
}

// BaseCallPercentages returns the A, C, G, T and N percentages of a.
func BaseCallPercentages(a metrics.CorrectedAverage) []float64 {
	out := make([]float64, 5)
	total := a.TotalCalls()
	if total == 0 {
		return out
	}
	for i, idx := range []int{metrics.CallA, metrics.CallC, metrics.CallG, metrics.CallT, metrics.CallN} {
		out[i] = 100 * a.Calls[idx] / total
	}

	return out
}

// SignalToNoise returns the mean signal-to-noise ratio of lane (version 2 only).
func SignalToNoise(c *metrics.CorrectedIntensity, lane uint16, opts ...Option) (*Table, error) {
	if !c.HasSNR {
		return nil, &errs.DecodeError{Kind: "corrected", Version: c.Version,
			Err: fmt.Errorf("%w: no signal-to-noise ratio", errs.ErrUnsupportedVersion)}
	}

	return correctedTable("signal to noise", c, lane, []string{"snr"}, opts, func(a metrics.CorrectedAverage) []float64 {
		return []float64{a.SNR}
	})
}

func extractionTable(name string, ext *metrics.Extraction, lane uint16, opts []Option,
	pick func(metrics.ExtractionAverage) []float64,
) (*Table, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := checkLane(lane); err != nil {
		return nil, err
	}

	return averagedTable(name, ext.Averages, lane, channelColumns, cfg.lastCycle(ext.MaxCycle), cfg.gaps, pick), nil
}

func correctedTable(name string, c *metrics.CorrectedIntensity, lane uint16, columns []string, opts []Option,
	pick func(metrics.CorrectedAverage) []float64,
) (*Table, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := checkLane(lane); err != nil {
		return nil, err
	}

	return averagedTable(name, c.Averages, lane, columns, cfg.lastCycle(c.MaxCycle), cfg.gaps, pick), nil
}

func averagedTable[A any](name string, avgs *store.LaneCycles[A], lane uint16, columns []string,
	last int, policy GapPolicy, pick func(A) []float64,
) *Table {
	return build(name, lane, columns, last, policy, func(cycle uint16) ([]float64, bool) {
		lc, ok := avgs.Get(lane, cycle)
		if !ok || lc.TileCount == 0 {
			return nil, false
		}

		return append([]float64(nil), pick(lc.Value)...), true
	})
}
