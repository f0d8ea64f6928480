package metrics

import (
	"fmt"

	"github.com/scgpm/interop/errs"
)

// ReconcileMaxCycle returns the cycle count to report when extraction and
// corrected intensity metrics of the same run are processed together.
//
// When both are present and disagree the result is errs.ErrCycleCountMismatch,
// unless force is set, in which case the extraction value wins. A single
// present input gives its own value; neither gives 0.
func ReconcileMaxCycle(ext *Extraction, corr *CorrectedIntensity, force bool) (int, error) {
	switch {
	case ext == nil && corr == nil:
		return 0, nil
	case corr == nil:
		return int(ext.MaxCycle), nil
	case ext == nil:
		return int(corr.MaxCycle), nil
	}

	if ext.MaxCycle != corr.MaxCycle && !force {
		return 0, fmt.Errorf("%w: extraction has %d, corrected intensity has %d",
			errs.ErrCycleCountMismatch, ext.MaxCycle, corr.MaxCycle)
	}

	return int(ext.MaxCycle), nil
}
