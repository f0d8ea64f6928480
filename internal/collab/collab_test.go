package collab

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type recordingRunner struct {
	calls []call
	err   error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, call{name: name, args: args})
	return r.err
}

func TestPlotArgs(t *testing.T) {
	require.Equal(t,
		[]string{`datafile="/tmp/t.txt"`, `plotfile="out.png"`, "read.starts=c(102,110)"},
		PlotArgs("/tmp/t.txt", "out.png", []int{102, 110}))
	require.Equal(t,
		[]string{`datafile="t"`, `plotfile="p"`},
		PlotArgs("t", "p", nil))
}

func TestPlotter_Plot(t *testing.T) {
	runner := &recordingRunner{}

	p := &Plotter{ScriptDir: "/opt/qc", Runner: runner}
	require.NoError(t, p.Plot(context.Background(), ScriptQScoreSummary, "t.txt", "q.png", []int{52}))

	p.Interpreter = "Rscript"
	require.NoError(t, p.Plot(context.Background(), ScriptCallDetails, "t.txt", "c.png", nil))

	require.Equal(t, []call{
		{name: "/opt/qc/plot_qscore_summary.r", args: []string{`datafile="t.txt"`, `plotfile="q.png"`, "read.starts=c(52)"}},
		{name: "Rscript", args: []string{"/opt/qc/plot_call_details.r", `datafile="t.txt"`, `plotfile="c.png"`}},
	}, runner.calls)
}

func TestPlotter_Errors(t *testing.T) {
	err := (&Plotter{Runner: &recordingRunner{}}).Plot(context.Background(), ScriptFWHMSummary, "t", "p", nil)
	require.ErrorIs(t, err, ErrNoScriptDir)

	boom := errors.New("exit status 1")
	p := &Plotter{ScriptDir: "/opt/qc", Runner: &recordingRunner{err: boom}}
	err = p.Plot(context.Background(), ScriptFWHMSummary, "t", "p", nil)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, ScriptFWHMSummary)
}

func writeBAM(t *testing.T, refs ...*sam.Reference) string {
	t.Helper()

	h, err := sam.NewHeader(nil, refs)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "reads.bam")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := bam.NewWriter(f, h, 1)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return path
}

func TestMismatchExtractor(t *testing.T) {
	ref, err := sam.NewReference("chr1", "", "", 1000, nil, nil)
	require.NoError(t, err)
	good := writeBAM(t, ref)

	t.Run("runs extractor", func(t *testing.T) {
		runner := &recordingRunner{}
		m := &MismatchExtractor{Executable: "bwa_mismatches", Verbose: true, Runner: runner}

		require.NoError(t, m.Extract(context.Background(), "mm.txt", []string{good, good}))
		require.Equal(t, []call{{
			name: "bwa_mismatches",
			args: []string{"--out", "mm.txt", good, good, "--verbose"},
		}}, runner.calls)
	})

	t.Run("no inputs", func(t *testing.T) {
		m := &MismatchExtractor{Executable: "x", Runner: &recordingRunner{}}
		require.ErrorIs(t, m.Extract(context.Background(), "mm.txt", nil), ErrNoBAMs)
	})

	t.Run("unaligned BAM", func(t *testing.T) {
		runner := &recordingRunner{}
		m := &MismatchExtractor{Executable: "x", Runner: runner}

		err := m.Extract(context.Background(), "mm.txt", []string{writeBAM(t)})
		require.ErrorContains(t, err, "no reference sequences")
		require.Empty(t, runner.calls)
	})

	t.Run("not a BAM", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reads.bam")
		require.NoError(t, os.WriteFile(path, []byte("@HD\tVN:1.6\n"), 0o600))

		_, err := ReadBAMHeader(path)
		require.Error(t, err)
	})
}

func TestExecRunner(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}

	r := ExecRunner{}
	require.NoError(t, r.Run(context.Background(), "/bin/sh", "-c", "exit 0"))

	err := r.Run(context.Background(), "/bin/sh", "-c", "exit 3")
	require.ErrorContains(t, err, "run /bin/sh")
}
