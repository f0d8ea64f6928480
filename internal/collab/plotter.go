package collab

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Plot scripts shipped with the QC tools.
const (
	ScriptQScoreDetails    = "plot_qscore_details.r"
	ScriptQScoreSummary    = "plot_qscore_summary.r"
	ScriptIntensityDetails = "plot_intensity_details.r"
	ScriptIntensitySummary = "plot_intensity_summary.r"
	ScriptFWHMSummary      = "plot_fwhm_summary.r"
	ScriptCallDetails      = "plot_call_details.r"
	ScriptCallSummary      = "plot_call_summary.r"
	ScriptMismatchDetails  = "plot_mismatch_details.r"
	ScriptMismatchSummary  = "plot_mismatch_summary.r"
)

// ErrNoScriptDir is returned when a plot is requested without a script directory.
var ErrNoScriptDir = errors.New("plot script directory not configured")

// Plotter renders a table file with one of the plot scripts.
type Plotter struct {
	// ScriptDir holds the plot_*.r scripts.
	ScriptDir string
	// Interpreter runs the script, e.g. "Rscript". Empty runs the script directly.
	Interpreter string
	Runner      Runner
}

// Plot runs script on table, writing the figure to out. readStarts, when not
// empty, marks the first cycle of every read after the first.
func (p *Plotter) Plot(ctx context.Context, script, table, out string, readStarts []int) error {
	if p.ScriptDir == "" {
		return ErrNoScriptDir
	}

	path := filepath.Join(p.ScriptDir, script)
	args := PlotArgs(table, out, readStarts)

	name := path
	if p.Interpreter != "" {
		name = p.Interpreter
		args = append([]string{path}, args...)
	}

	if err := p.Runner.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("plot %s: %w", script, err)
	}

	return nil
}

// PlotArgs returns the R-style assignments the plot scripts read from their
// command line: datafile="...", plotfile="..." and read.starts=c(...).
func PlotArgs(table, out string, readStarts []int) []string {
	args := []string{
		"datafile=" + strconv.Quote(table),
		"plotfile=" + strconv.Quote(out),
	}
	if len(readStarts) > 0 {
		starts := make([]string, len(readStarts))
		for i, s := range readStarts {
			starts[i] = strconv.Itoa(s)
		}
		args = append(args, "read.starts=c("+strings.Join(starts, ",")+")")
	}

	return args
}
