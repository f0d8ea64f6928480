package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shenwei356/xopen"

	"github.com/scgpm/interop/internal/source"
	"github.com/scgpm/interop/summary"
)

// plotRequest renders one figure with one of the plot scripts.
type plotRequest struct {
	script string
	out    string
}

// addPlot appends a request when out was given on the command line.
func addPlot(plots []plotRequest, script, out string) []plotRequest {
	if out == "" {
		return plots
	}

	return append(plots, plotRequest{script: script, out: out})
}

// emit writes tbl to tableOut, if set, and renders every requested plot from it.
func (a *app) emit(ctx context.Context, w io.Writer, tbl *summary.Table, tableOut string, plots []plotRequest, readStarts []int) error {
	if len(plots) > 0 {
		if err := summary.RequireData(tbl); err != nil {
			return err
		}
	}
	if tableOut != "" {
		if err := writeTable(w, tableOut, tbl); err != nil {
			return err
		}
	}
	if len(plots) == 0 {
		return nil
	}

	path, cleanup, err := a.tableFile(tbl)
	if err != nil {
		return err
	}
	defer cleanup()

	p := a.plotter()
	for _, req := range plots {
		a.logger.Info("plotting", slog.String("script", req.script), slog.String("out", req.out))
		if err := p.Plot(ctx, req.script, path, req.out, readStarts); err != nil {
			return err
		}
	}

	return nil
}

// writeTable writes tbl to path. "-" selects w; a .gz, .xz, .zst or .bz2
// suffix compresses the output.
func writeTable(w io.Writer, path string, tbl *summary.Table) error {
	if path == source.Stdin {
		_, err := tbl.WriteTo(w)
		return err
	}

	outfh, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("failed to open table output: %w", err)
	}

	if _, err := tbl.WriteTo(outfh); err != nil {
		outfh.Close()
		return fmt.Errorf("failed to write %s table: %w", tbl.Name, err)
	}

	return outfh.Close()
}

// tableFile writes tbl to a fresh file in the configured table directory for
// the plot scripts. cleanup removes it unless output.keep_tables is set.
func (a *app) tableFile(tbl *summary.Table) (string, func(), error) {
	pattern := fmt.Sprintf("%s-lane%d-*.txt", strings.ReplaceAll(tbl.Name, " ", "_"), tbl.Lane)
	path, cleanup, err := a.tempPath(pattern)
	if err != nil {
		return "", nil, err
	}

	if err := writeTable(nil, path, tbl); err != nil {
		cleanup()
		return "", nil, err
	}

	return path, cleanup, nil
}

// tempPath reserves a file in the configured table directory.
func (a *app) tempPath(pattern string) (string, func(), error) {
	f, err := os.CreateTemp(a.cfg.Output.TableDir, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create table file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", nil, err
	}

	cleanup := func() {
		if a.cfg.Output.KeepTables {
			a.logger.Info("table kept", slog.String("path", path))
			return
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			a.logger.Warn("failed to remove table", slog.String("path", path), slog.Any("error", err))
		}
	}

	return path, cleanup, nil
}

// tableTarget returns where the table goes: the --table-out value, or w
// when nothing else would consume the table.
func tableTarget(tableOut string, plots []plotRequest) string {
	if tableOut == "" && len(plots) == 0 {
		return source.Stdin
	}

	return tableOut
}

// laneFlag converts the --lane value, leaving range checks to the summary
// builders.
func laneFlag(lane int) (uint16, error) {
	if lane < 0 || lane > 0xFFFF {
		return 0, fmt.Errorf("lane %d out of range", lane)
	}

	return uint16(lane), nil
}
