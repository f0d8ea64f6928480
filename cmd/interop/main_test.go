package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/require"

	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/internal/collab"
	"github.com/scgpm/interop/record"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
)

type call struct {
	name string
	args []string
}

// fakeRunner records commands. An "--out" argument gets a small table
// written to it, standing in for the mismatch extractor.
type fakeRunner struct {
	calls []call
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, call{name: name, args: args})
	if len(args) > 1 && args[0] == "--out" {
		return os.WriteFile(args[1], []byte("cycle mismatches\n1 0.5\n"), 0o600)
	}

	return nil
}

type harness struct {
	dir    string
	config string
	runner *fakeRunner
	// stderr holds the log output of the last run.
	stderr string
}

// newHarness writes a config file ending in the output section; extraConfig
// may continue that section or add top-level keys.
func newHarness(t *testing.T, extraConfig string) *harness {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	tables := filepath.Join(dir, "tables")
	require.NoError(t, os.Mkdir(tables, 0o755))

	cfg := "plot:\n  script_dir: /opt/qc/scripts\n  rscript: Rscript\noutput:\n  table_dir: " + tables + "\n" + extraConfig
	path := filepath.Join(dir, "interop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	return &harness{dir: dir, config: path, runner: &fakeRunner{}}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmdFor(&app{runner: h.runner})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", h.config}, args...))

	err := root.ExecuteContext(context.Background())
	h.stderr = errOut.String()

	return out.String(), err
}

func (h *harness) tables(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(filepath.Join(h.dir, "tables"))
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}

	return names
}

// writeMetrics encodes one record per (lane, cycle) for tile 1101.
func writeMetrics(t *testing.T, path string, kind format.FileKind, version uint8,
	lanes []uint16, cycles int, fields []float64,
) string {
	t.Helper()

	return writeBinnedMetrics(t, path, kind, version, nil, lanes, cycles, fields)
}

// writeBinnedMetrics is writeMetrics with a binning header for the kinds
// that carry one.
func writeBinnedMetrics(t *testing.T, path string, kind format.FileKind, version uint8,
	binning *section.BinningTable, lanes []uint16, cycles int, fields []float64,
) string {
	t.Helper()

	s, err := schema.Lookup(kind, version)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := record.NewWriter(&buf)
	require.NoError(t, w.WriteHeader(section.Header{Version: version, RecordLength: uint8(s.RecordSize())}))
	if s.HasBinning {
		require.NoError(t, w.WriteBinningHeader(binning))
	}
	for _, lane := range lanes {
		for c := 1; c <= cycles; c++ {
			values := append([]float64{float64(lane), 1101, float64(c)}, fields...)
			require.NoError(t, w.WriteRecord(s, values...))
		}
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	return path
}

func qualityFile(t *testing.T, dir string) string {
	return writeMetrics(t, filepath.Join(dir, "QMetricsOut.bin"), format.KindQualityScore, 6,
		[]uint16{1, 2}, 3, []float64{0, 0, 0, 0, 0, 10, 30})
}

func TestQScores(t *testing.T) {
	t.Run("details to stdout", func(t *testing.T) {
		h := newHarness(t, "")
		out, err := h.run(t, "qscores", "--qmetrics", qualityFile(t, h.dir), "--lane", "2")
		require.NoError(t, err)
		require.Equal(t, "q1 q2 q3 q4 q5 q6 q7\n"+strings.Repeat("0 0 0 0 0 10 30\n", 3), out)
		require.Empty(t, h.runner.calls)
	})

	t.Run("plots with read starts", func(t *testing.T) {
		h := newHarness(t, "")
		out, err := h.run(t, "qscores", "-q", qualityFile(t, h.dir), "-l", "1",
			"--read-lengths", "2,1", "--details-plot", "d.png", "--summary-plot", "s.png")
		require.NoError(t, err)
		require.Empty(t, out)
		require.Len(t, h.runner.calls, 2)

		first := h.runner.calls[0]
		require.Equal(t, "Rscript", first.name)
		require.Equal(t, filepath.Join("/opt/qc/scripts", collab.ScriptQScoreDetails), first.args[0])
		require.True(t, strings.HasPrefix(first.args[1], `datafile="`))
		require.Equal(t, `plotfile="d.png"`, first.args[2])
		require.Equal(t, "read.starts=c(3)", first.args[3])
		require.Equal(t, filepath.Join("/opt/qc/scripts", collab.ScriptQScoreSummary), h.runner.calls[1].args[0])

		require.Empty(t, h.tables(t), "temporary table removed")
	})

	t.Run("keep tables", func(t *testing.T) {
		h := newHarness(t, "  keep_tables: true\n")
		_, err := h.run(t, "qscores", "-q", qualityFile(t, h.dir), "-l", "1", "--details-plot", "d.png")
		require.NoError(t, err)
		require.Len(t, h.tables(t), 1)
	})

	t.Run("summary table to file", func(t *testing.T) {
		h := newHarness(t, "")
		dst := filepath.Join(h.dir, "summary.txt")
		_, err := h.run(t, "qscores", "-q", qualityFile(t, h.dir), "-l", "1", "--table", "summary", "-o", dst)
		require.NoError(t, err)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(data), "avg q20 q30\n"))
	})

	t.Run("bin index on binned data warns", func(t *testing.T) {
		binning, err := section.NewBinningTable(
			[]uint8{0, 10, 20, 25, 30, 35, 40},
			[]uint8{9, 19, 24, 29, 34, 39, 41},
			[]uint8{7, 11, 22, 27, 32, 37, 41},
		)
		require.NoError(t, err)

		h := newHarness(t, "")
		path := writeBinnedMetrics(t, filepath.Join(h.dir, "QMetricsOut.bin"), format.KindQualityScore, 6,
			binning, []uint16{1}, 1, []float64{0, 0, 0, 0, 10, 0, 0})

		out, err := h.run(t, "qscores", "-q", path, "-l", "1", "--table", "summary")
		require.NoError(t, err)
		require.Equal(t, "avg q20 q30\n5 0 0\n", out)
		require.Contains(t, h.stderr, "scored by bin index on binned data")

		out, err = h.run(t, "qscores", "-q", path, "-l", "1", "--table", "summary", "--scale", "remapped")
		require.NoError(t, err)
		require.Equal(t, "avg q20 q30\n32 100 100\n", out)
		require.NotContains(t, h.stderr, "scored by bin index")
	})

	t.Run("invalid lane", func(t *testing.T) {
		h := newHarness(t, "")
		_, err := h.run(t, "qscores", "-q", qualityFile(t, h.dir), "-l", "9")
		require.ErrorIs(t, err, errs.ErrInvalidLane)
	})

	t.Run("empty lane cannot be plotted", func(t *testing.T) {
		h := newHarness(t, "")
		_, err := h.run(t, "qscores", "-q", qualityFile(t, h.dir), "-l", "5", "--summary-plot", "s.png")
		require.ErrorIs(t, err, errs.ErrEmptyAggregate)
		require.Empty(t, h.runner.calls)
	})
}

func TestIntensities(t *testing.T) {
	setup := func(t *testing.T) (*harness, string, string) {
		h := newHarness(t, "")
		ext := writeMetrics(t, filepath.Join(h.dir, "ExtractionMetricsOut.bin"), format.KindExtraction, 2,
			[]uint16{1}, 4, []float64{2, 2, 2, 2, 100, 200, 300, 400, 0})
		corr := writeMetrics(t, filepath.Join(h.dir, "CorrectedIntMetricsOut.bin"), format.KindCorrectedIntensity, 3,
			[]uint16{1}, 3, []float64{10, 20, 30, 40, 5, 70, 10, 10, 5})

		return h, ext, corr
	}

	t.Run("cycle mismatch", func(t *testing.T) {
		h, ext, corr := setup(t)
		_, err := h.run(t, "intensities", "-e", ext, "-i", corr, "-l", "1", "--table", "raw")
		require.ErrorIs(t, err, errs.ErrCycleCountMismatch)
	})

	t.Run("forced base calls", func(t *testing.T) {
		h, ext, corr := setup(t)
		out, err := h.run(t, "--force", "intensities", "-e", ext, "-i", corr, "-l", "1", "--table", "calls")
		require.NoError(t, err)
		// Forced runs omit cycle 4, which only the extraction file covers.
		require.Equal(t, "a c g t n\n"+strings.Repeat("70 10 10 5 5\n", 3), out)
	})

	t.Run("plots per table", func(t *testing.T) {
		h, ext, _ := setup(t)
		_, err := h.run(t, "intensities", "-e", ext, "-l", "1",
			"--raw-summary-plot", "raw.png", "--fwhm-plot", "fwhm.png")
		require.NoError(t, err)
		require.Len(t, h.runner.calls, 2)
		require.Equal(t, filepath.Join("/opt/qc/scripts", collab.ScriptIntensitySummary), h.runner.calls[0].args[0])
		require.Equal(t, filepath.Join("/opt/qc/scripts", collab.ScriptFWHMSummary), h.runner.calls[1].args[0])
	})

	t.Run("missing input", func(t *testing.T) {
		h, ext, _ := setup(t)
		_, err := h.run(t, "intensities", "-e", ext, "-l", "1", "--table", "calls")
		require.ErrorContains(t, err, "--corrected-int")
	})

	t.Run("nothing to do", func(t *testing.T) {
		h, ext, _ := setup(t)
		_, err := h.run(t, "intensities", "-e", ext, "-l", "1")
		require.ErrorContains(t, err, "nothing to do")
	})
}

func writeBAM(t *testing.T, dir string) string {
	t.Helper()

	ref, err := sam.NewReference("chr1", "", "", 1000, nil, nil)
	require.NoError(t, err)
	hdr, err := sam.NewHeader(nil, []*sam.Reference{ref})
	require.NoError(t, err)

	path := filepath.Join(dir, "reads.bam")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := bam.NewWriter(f, hdr, 1)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return path
}

func TestMismatches(t *testing.T) {
	h := newHarness(t, "mismatch:\n  extractor: mm_extract\n")
	bamPath := writeBAM(t, h.dir)

	out, err := h.run(t, "mismatches", "--bam", bamPath, "--summary-plot", "mm.png")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Len(t, h.runner.calls, 2)
	require.Equal(t, "mm_extract", h.runner.calls[0].name)
	require.Equal(t, bamPath, h.runner.calls[0].args[2])
	require.Equal(t, filepath.Join("/opt/qc/scripts", collab.ScriptMismatchSummary), h.runner.calls[1].args[0])
	require.Empty(t, h.tables(t))

	h.runner.calls = nil
	out, err = h.run(t, "mismatches", bamPath)
	require.NoError(t, err)
	require.Equal(t, "cycle mismatches\n1 0.5\n", out)

	_, err = h.run(t, "mismatches")
	require.ErrorIs(t, err, collab.ErrNoBAMs)
}

func TestInspectCmd(t *testing.T) {
	h := newHarness(t, "")
	out, err := h.run(t, "inspect", qualityFile(t, h.dir), "--fields")
	require.NoError(t, err)
	require.Contains(t, out, "Record length")
	require.Contains(t, out, "quality")
	require.Contains(t, out, "Record fields")
	require.Contains(t, out, "q7")

	_, err = h.run(t, "inspect", filepath.Join(h.dir, "interop.yaml"))
	require.ErrorIs(t, err, errs.ErrUnknownFileKind)

	_, err = h.run(t, "inspect", "--kind", "tiles", qualityFile(t, h.dir))
	require.ErrorIs(t, err, errs.ErrUnknownFileKind)
}

func TestConfigCmd(t *testing.T) {
	h := newHarness(t, "quality:\n  scale: remapped\n")
	out, err := h.run(t, "--log-level", "info", "config")
	require.NoError(t, err)
	require.Contains(t, out, "script_dir: /opt/qc/scripts")
	require.Contains(t, out, "scale: remapped")
	require.Contains(t, out, "level: info")

	_, err = h.run(t, "--log-format", "xml", "config")
	require.Error(t, err)
}
