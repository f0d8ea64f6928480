package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/scgpm/interop"
	"github.com/scgpm/interop/internal/collab"
	"github.com/scgpm/interop/summary"
)

type qscoresOptions struct {
	qmetrics    string
	lane        int
	readLengths []int
	table       string
	tableOut    string
	scale       string
	detailsPlot string
	summaryPlot string
}

func newQScoresCmd(a *app) *cobra.Command {
	o := &qscoresOptions{}

	cmd := &cobra.Command{
		Use:   "qscores",
		Short: "Per-cycle quality score tables and plots for one lane",
		Long: `Decode QMetricsOut.bin and summarise the quality score histograms of one
lane per cycle. The table is written to --table-out (stdout by default) and
rendered with the quality score plot scripts when plot outputs are given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQScores(cmd, a, o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.qmetrics, "qmetrics", "q", "", "quality metrics file (QMetricsOut.bin, optionally compressed)")
	flags.IntVarP(&o.lane, "lane", "l", 0, "lane number (1-8)")
	flags.IntSliceVar(&o.readLengths, "read-lengths", nil, "read lengths in cycles, e.g. 101,8,101")
	flags.StringVar(&o.table, "table", "details", "table written to --table-out: details or summary")
	flags.StringVarP(&o.tableOut, "table-out", "o", "", `table output file ("-" for stdout)`)
	flags.StringVar(&o.scale, "scale", "", "quality bin scoring: bin or remapped (default from config)")
	flags.StringVar(&o.detailsPlot, "details-plot", "", "quality score details plot output")
	flags.StringVar(&o.summaryPlot, "summary-plot", "", "quality score summary plot output")
	_ = cmd.MarkFlagRequired("qmetrics")
	_ = cmd.MarkFlagRequired("lane")

	return cmd
}

func runQScores(cmd *cobra.Command, a *app, o *qscoresOptions) error {
	lane, err := laneFlag(o.lane)
	if err != nil {
		return err
	}

	scaleName := o.scale
	if scaleName == "" {
		scaleName = a.cfg.Quality.Scale
	}
	scale, err := summary.ParseQualityScale(scaleName)
	if err != nil {
		return err
	}

	q, err := interop.DecodeQualityScoresFile(o.qmetrics, a.decodeOptions(false)...)
	if err != nil {
		return err
	}

	if summary.BinIndexOnBinnedData(q, scale) {
		a.logger.Warn("quality bins scored by bin index on binned data; Q20 and Q30 will be 0%, use --scale remapped",
			slog.Int("levels", q.QualityLevels), slog.Int("bins", q.Binning.Count()))
	}

	opts := []summary.Option{
		summary.WithGapPolicy(summary.PolicyFor(a.cfg.Force)),
		summary.WithQualityScale(scale),
	}
	details, err := summary.QualityDetails(q, lane, opts...)
	if err != nil {
		return err
	}

	out := details
	switch o.table {
	case "details":
	case "summary":
		if out, err = summary.QualitySummary(q, lane, opts...); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown table %q: want details or summary", o.table)
	}

	if len(details.Gaps) > 0 {
		a.logger.Warn("cycles without data", slog.Int("lane", int(lane)), slog.Any("cycles", details.Gaps))
	}

	// Both plot scripts read the per-bin details table.
	var plots []plotRequest
	plots = addPlot(plots, collab.ScriptQScoreDetails, o.detailsPlot)
	plots = addPlot(plots, collab.ScriptQScoreSummary, o.summaryPlot)

	if tableOut := tableTarget(o.tableOut, plots); tableOut != "" {
		if err := writeTable(cmd.OutOrStdout(), tableOut, out); err != nil {
			return err
		}
	}

	return a.emit(cmd.Context(), cmd.OutOrStdout(), details, "", plots, summary.ReadStarts(o.readLengths))
}
