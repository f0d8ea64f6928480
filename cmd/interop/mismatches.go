package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scgpm/interop/internal/collab"
	"github.com/scgpm/interop/internal/source"
	"github.com/scgpm/interop/summary"
)

type mismatchesOptions struct {
	bams        []string
	readLengths []int
	tableOut    string
	detailsPlot string
	summaryPlot string
}

func newMismatchesCmd(a *app) *cobra.Command {
	o := &mismatchesOptions{}

	cmd := &cobra.Command{
		Use:   "mismatches [flags] --bam FILE [--bam FILE ...]",
		Short: "Per-cycle mismatch tables and plots from aligned BAM files",
		Long: `Run the mismatch extractor on aligned reads and plot the per-cycle
mismatch rates. Every BAM file is checked for a readable header before the
extractor starts.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.bams = append(o.bams, args...)
			return runMismatches(cmd, a, o)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&o.bams, "bam", "b", nil, "aligned reads (BAM); may be repeated")
	flags.IntSliceVar(&o.readLengths, "read-lengths", nil, "read lengths in cycles, e.g. 101,8,101")
	flags.StringVarP(&o.tableOut, "table-out", "o", "", `mismatch table output file ("-" for stdout)`)
	flags.StringVar(&o.detailsPlot, "details-plot", "", "mismatch details plot output")
	flags.StringVar(&o.summaryPlot, "summary-plot", "", "mismatch summary plot output")

	return cmd
}

func runMismatches(cmd *cobra.Command, a *app, o *mismatchesOptions) error {
	if len(o.bams) == 0 {
		return collab.ErrNoBAMs
	}

	var plots []plotRequest
	plots = addPlot(plots, collab.ScriptMismatchDetails, o.detailsPlot)
	plots = addPlot(plots, collab.ScriptMismatchSummary, o.summaryPlot)

	tableOut := tableTarget(o.tableOut, plots)
	path := tableOut
	if tableOut == "" || tableOut == source.Stdin {
		tmp, cleanup, err := a.tempPath("mismatches-*.txt")
		if err != nil {
			return err
		}
		defer cleanup()
		path = tmp
	}

	extractor := &collab.MismatchExtractor{
		Executable: a.cfg.Mismatch.Extractor,
		Verbose:    a.cfg.Logging.Level == "debug",
		Runner:     a.runner,
	}
	a.logger.Info("extracting mismatches", slog.Int("bams", len(o.bams)), slog.String("table", path))
	if err := extractor.Extract(cmd.Context(), path, o.bams); err != nil {
		return err
	}

	if tableOut == source.Stdin {
		if err := copyFile(cmd.OutOrStdout(), path); err != nil {
			return err
		}
	}

	p := a.plotter()
	readStarts := summary.ReadStarts(o.readLengths)
	for _, req := range plots {
		a.logger.Info("plotting", slog.String("script", req.script), slog.String("out", req.out))
		if err := p.Plot(cmd.Context(), req.script, path, req.out, readStarts); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open mismatch table: %w", err)
	}
	defer f.Close()

	_, err = io.Copy(w, f)

	return err
}
