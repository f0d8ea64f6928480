package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scgpm/interop"
	"github.com/scgpm/interop/internal/collab"
	"github.com/scgpm/interop/summary"
)

type intensitiesOptions struct {
	extraction  string
	corrected   string
	lane        int
	readLengths []int
	table       string
	tableOut    string
	swapCalled  bool

	rawDetailsPlot  string
	rawSummaryPlot  string
	corrDetailsPlot string
	corrSummaryPlot string
	callDetailsPlot string
	callSummaryPlot string
	fwhmPlot        string
}

// intensityTable is one table the intensities command can build, the input
// it needs and the plots drawn from it.
type intensityTable struct {
	name      string
	corrected bool
	build     func(run *interop.IntensityRun, lane uint16, opts []summary.Option) (*summary.Table, error)
	plots     func(o *intensitiesOptions) []plotRequest
}

var intensityTables = []intensityTable{
	{
		name: "raw",
		build: func(run *interop.IntensityRun, lane uint16, opts []summary.Option) (*summary.Table, error) {
			return summary.RawIntensity(run.Extraction, lane, opts...)
		},
		plots: func(o *intensitiesOptions) []plotRequest {
			plots := addPlot(nil, collab.ScriptIntensityDetails, o.rawDetailsPlot)
			return addPlot(plots, collab.ScriptIntensitySummary, o.rawSummaryPlot)
		},
	},
	{
		name: "focus",
		build: func(run *interop.IntensityRun, lane uint16, opts []summary.Option) (*summary.Table, error) {
			return summary.Focus(run.Extraction, lane, opts...)
		},
		plots: func(o *intensitiesOptions) []plotRequest {
			return addPlot(nil, collab.ScriptFWHMSummary, o.fwhmPlot)
		},
	},
	{
		name:      "corrected",
		corrected: true,
		build: func(run *interop.IntensityRun, lane uint16, opts []summary.Option) (*summary.Table, error) {
			return summary.CorrectedIntensity(run.Corrected, lane, opts...)
		},
		plots: func(o *intensitiesOptions) []plotRequest {
			plots := addPlot(nil, collab.ScriptIntensityDetails, o.corrDetailsPlot)
			return addPlot(plots, collab.ScriptIntensitySummary, o.corrSummaryPlot)
		},
	},
	{
		name:      "called",
		corrected: true,
		build: func(run *interop.IntensityRun, lane uint16, opts []summary.Option) (*summary.Table, error) {
			return summary.CalledIntensity(run.Corrected, lane, opts...)
		},
		plots: func(*intensitiesOptions) []plotRequest { return nil },
	},
	{
		name:      "calls",
		corrected: true,
		build: func(run *interop.IntensityRun, lane uint16, opts []summary.Option) (*summary.Table, error) {
			return summary.BaseCalls(run.Corrected, lane, opts...)
		},
		plots: func(o *intensitiesOptions) []plotRequest {
			plots := addPlot(nil, collab.ScriptCallDetails, o.callDetailsPlot)
			return addPlot(plots, collab.ScriptCallSummary, o.callSummaryPlot)
		},
	},
	{
		name:      "snr",
		corrected: true,
		build: func(run *interop.IntensityRun, lane uint16, opts []summary.Option) (*summary.Table, error) {
			return summary.SignalToNoise(run.Corrected, lane, opts...)
		},
		plots: func(*intensitiesOptions) []plotRequest { return nil },
	},
}

func intensityTableNames() []string {
	names := make([]string, len(intensityTables))
	for i, t := range intensityTables {
		names[i] = t.name
	}

	return names
}

func newIntensitiesCmd(a *app) *cobra.Command {
	o := &intensitiesOptions{}

	cmd := &cobra.Command{
		Use:   "intensities",
		Short: "Per-cycle intensity, focus and base-call tables and plots for one lane",
		Long: `Decode ExtractionMetricsOut.bin and/or CorrectedIntMetricsOut.bin and
average the per-tile metrics of one lane per cycle. When both files are given
their cycle counts must agree unless --force is set.

Tables: ` + strings.Join(intensityTableNames(), ", ") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIntensities(cmd, a, o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.extraction, "extraction", "e", "", "extraction metrics file (ExtractionMetricsOut.bin)")
	flags.StringVarP(&o.corrected, "corrected-int", "i", "", "corrected intensity metrics file (CorrectedIntMetricsOut.bin)")
	flags.IntVarP(&o.lane, "lane", "l", 0, "lane number (1-8)")
	flags.IntSliceVar(&o.readLengths, "read-lengths", nil, "read lengths in cycles, e.g. 101,8,101")
	flags.StringVar(&o.table, "table", "", "table written to --table-out: "+strings.Join(intensityTableNames(), ", "))
	flags.StringVarP(&o.tableOut, "table-out", "o", "", `table output file ("-" for stdout)`)
	flags.BoolVar(&o.swapCalled, "swap-called-gt", false, "swap G and T called intensities of version 2+ files when averaging")
	flags.StringVar(&o.rawDetailsPlot, "raw-details-plot", "", "raw intensity details plot output")
	flags.StringVar(&o.rawSummaryPlot, "raw-summary-plot", "", "raw intensity summary plot output")
	flags.StringVar(&o.corrDetailsPlot, "corr-details-plot", "", "corrected intensity details plot output")
	flags.StringVar(&o.corrSummaryPlot, "corr-summary-plot", "", "corrected intensity summary plot output")
	flags.StringVar(&o.callDetailsPlot, "call-details-plot", "", "base call details plot output")
	flags.StringVar(&o.callSummaryPlot, "call-summary-plot", "", "base call summary plot output")
	flags.StringVar(&o.fwhmPlot, "fwhm-plot", "", "focus (FWHM) summary plot output")
	_ = cmd.MarkFlagRequired("lane")

	return cmd
}

func runIntensities(cmd *cobra.Command, a *app, o *intensitiesOptions) error {
	if o.extraction == "" && o.corrected == "" {
		return errors.New("at least one of --extraction or --corrected-int is required")
	}
	if o.table != "" && !slices.Contains(intensityTableNames(), o.table) {
		return fmt.Errorf("unknown table %q: want one of %s", o.table, strings.Join(intensityTableNames(), ", "))
	}
	if o.table == "" && o.tableOut != "" {
		return errors.New("--table-out needs --table")
	}

	lane, err := laneFlag(o.lane)
	if err != nil {
		return err
	}

	run, err := interop.DecodeIntensityFiles(o.extraction, o.corrected, a.decodeOptions(o.swapCalled)...)
	if err != nil {
		return err
	}

	opts := []summary.Option{
		summary.WithMaxCycle(run.MaxCycle),
		summary.WithGapPolicy(summary.PolicyFor(a.cfg.Force)),
	}
	readStarts := summary.ReadStarts(o.readLengths)

	var produced int
	for _, t := range intensityTables {
		plots := t.plots(o)
		selected := t.name == o.table
		if !selected && len(plots) == 0 {
			continue
		}
		if (t.corrected && run.Corrected == nil) || (!t.corrected && run.Extraction == nil) {
			return fmt.Errorf("%s table needs %s", t.name, inputFlag(t.corrected))
		}

		tbl, err := t.build(run, lane, opts)
		if err != nil {
			return err
		}
		if len(tbl.Gaps) > 0 {
			a.logger.Warn("cycles without data", slog.String("table", tbl.Name),
				slog.Int("lane", int(lane)), slog.Any("cycles", tbl.Gaps))
		}

		tableOut := ""
		if selected {
			tableOut = tableTarget(o.tableOut, nil)
		}
		if err := a.emit(cmd.Context(), cmd.OutOrStdout(), tbl, tableOut, plots, readStarts); err != nil {
			return err
		}
		produced++
	}

	if produced == 0 {
		return errors.New("nothing to do: give --table or at least one plot output")
	}

	return nil
}

func inputFlag(corrected bool) string {
	if corrected {
		return "--corrected-int"
	}

	return "--extraction"
}
