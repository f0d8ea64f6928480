// Package collab runs the external collaborators of the QC pipeline: the R
// plotting scripts and the alignment mismatch extractor. Both are opaque
// subprocesses; this package only builds their command lines and checks
// their inputs.
package collab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands as subprocesses.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run starts name with args and waits for it. A non-zero exit status is an error.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if r.Logger != nil {
		r.Logger.Debug("running command", slog.String("cmd", name), slog.String("args", strings.Join(args, " ")))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}

	return nil
}
