package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/scgpm/interop/internal/collab"
	"github.com/scgpm/interop/internal/config"
	"github.com/scgpm/interop/internal/logging"
	"github.com/scgpm/interop/metrics"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	force      bool
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
	runner collab.Runner
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "interop",
		Short: "Decode InterOp metrics files into per-cycle QC tables",
		Long: `interop decodes the binary InterOp metrics written by the sequencing
instrument (QMetricsOut.bin, ExtractionMetricsOut.bin,
CorrectedIntMetricsOut.bin) and summarises them per lane and cycle.

The resulting whitespace-delimited tables are written to a file or stdout,
or passed to the QC plotting scripts.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default: ./interop.yaml or ~/.config/interop/interop.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&a.force, "force", false, "continue past invalid lanes, cycle count mismatches and missing cycles")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "print progress messages (same as --log-level debug)")

	root.AddCommand(
		newQScoresCmd(a),
		newIntensitiesCmd(a),
		newMismatchesCmd(a),
		newInspectCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	root.SetHelpFunc(helpFunc(root.HelpFunc()))

	return root
}

// setup loads the configuration and applies command line overrides.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("force") {
		cfg.Force = a.force
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger, err = logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	if a.runner == nil {
		a.runner = collab.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr(), Logger: a.logger}
	}

	return nil
}

func (a *app) decodeOptions(swapCalled bool) []metrics.DecodeOption {
	return []metrics.DecodeOption{
		metrics.WithForce(a.cfg.Force),
		metrics.WithLogger(a.logger),
		metrics.WithSwappedCalledIntensity(swapCalled),
	}
}

func (a *app) plotter() *collab.Plotter {
	return &collab.Plotter{
		ScriptDir:   a.cfg.Plot.ScriptDir,
		Interpreter: a.cfg.Plot.Rscript,
		Runner:      a.runner,
	}
}

func helpFunc(defaultHelp func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if cmd.Parent() != nil {
			defaultHelp(cmd, args)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), `
%s

%s
  %s
  %s
  %s
  %s
  %s

%s
  %s
  %s
  %s

`,
			bold("interop - InterOp metrics decoder for sequencing QC"),
			bold(yellow("Commands:")),
			cyan("qscores")+"      : quality score tables and plots (QMetricsOut.bin)",
			cyan("intensities")+"  : intensity, focus and base-call tables and plots",
			cyan("mismatches")+"   : per-cycle mismatch plots from aligned BAM files",
			cyan("inspect")+"      : print the layout and contents of a metrics file",
			cyan("config")+"       : print the effective configuration",
			bold(yellow("Examples:")),
			cyan("interop qscores --qmetrics InterOp/QMetricsOut.bin --lane 1 --summary-plot q.png"),
			cyan("interop intensities --extraction InterOp/ExtractionMetricsOut.bin --lane 1 --table raw"),
			cyan("interop inspect InterOp/CorrectedIntMetricsOut.bin"),
		)
	}
}
