package collab

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// ErrNoBAMs is returned when the extractor is called without input files.
var ErrNoBAMs = errors.New("no BAM files given")

// MismatchExtractor runs the external per-cycle mismatch extractor on
// aligned reads and leaves its table at the requested path.
type MismatchExtractor struct {
	Executable string
	Verbose    bool
	Runner     Runner
}

// Extract validates every BAM header, then runs the extractor writing its
// table to out.
func (m *MismatchExtractor) Extract(ctx context.Context, out string, bams []string) error {
	if len(bams) == 0 {
		return ErrNoBAMs
	}
	for _, path := range bams {
		if _, err := ReadBAMHeader(path); err != nil {
			return err
		}
	}

	args := append([]string{"--out", out}, bams...)
	if m.Verbose {
		args = append(args, "--verbose")
	}

	if err := m.Runner.Run(ctx, m.Executable, args...); err != nil {
		return fmt.Errorf("mismatch extractor: %w", err)
	}

	return nil
}

// ReadBAMHeader opens path as BAM and returns its header, failing early on
// inputs the extractor would reject.
func ReadBAMHeader(path string) (*sam.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open BAM file: %w", err)
	}
	defer f.Close()

	r, err := bam.NewReader(f, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create BAM reader: %w", path, err)
	}
	defer r.Close()

	h := r.Header()
	if len(h.Refs()) == 0 {
		return nil, fmt.Errorf("%s: BAM header has no reference sequences; reads are not aligned", path)
	}

	return h, nil
}
