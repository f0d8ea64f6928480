// Package interop decodes the sequencing instrument's InterOp metrics files
// and summarises them per lane and cycle for QC reporting.
//
// The module is organised bottom-up:
//
//   - schema: record layouts per (file kind, version)
//   - record: the sequential binary reader and a fixture writer
//   - metrics: one decoder per file kind, filling the aggregate store
//   - store: raw per-tile and derived per-(lane, cycle) tables
//   - summary: Q20/Q30, weighted quality, intensity, focus and base-call tables
//
// This package adds file-level wrappers that open a path (optionally gzip,
// zstd, lz4 or s2 compressed), decode it and close it again.
//
// # Basic Usage
//
// Quality scores of lane 1:
//
//	q, err := interop.DecodeQualityScoresFile("InterOp/QMetricsOut.bin")
//	if err != nil {
//	    return err
//	}
//	tbl, _ := summary.QualitySummary(q, 1)
//	tbl.WriteTo(os.Stdout)
//
// Extraction and corrected intensity together, with the cycle counts of
// both files reconciled:
//
//	run, err := interop.DecodeIntensityFiles(
//	    "InterOp/ExtractionMetricsOut.bin",
//	    "InterOp/CorrectedIntMetricsOut.bin",
//	    metrics.WithForce(true),
//	)
//	if err != nil {
//	    return err
//	}
//	tbl, _ := summary.BaseCalls(run.Corrected, 1, summary.WithMaxCycle(run.MaxCycle))
package interop

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/internal/source"
	"github.com/scgpm/interop/metrics"
)

// Default file names written by the instrument.
const (
	QualityScoreFileName       = "QMetricsOut.bin"
	ExtractionFileName         = "ExtractionMetricsOut.bin"
	CorrectedIntensityFileName = "CorrectedIntMetricsOut.bin"
)

var compressedSuffixes = []string{".gz", ".zst", ".lz4", ".s2", ".sz"}

// KindFromPath infers the file kind from the instrument's file name,
// ignoring a compression suffix.
func KindFromPath(path string) (format.FileKind, error) {
	name := filepath.Base(path)
	for _, suffix := range compressedSuffixes {
		name = strings.TrimSuffix(name, suffix)
	}

	switch {
	case strings.EqualFold(name, QualityScoreFileName):
		return format.KindQualityScore, nil
	case strings.EqualFold(name, ExtractionFileName):
		return format.KindExtraction, nil
	case strings.EqualFold(name, CorrectedIntensityFileName):
		return format.KindCorrectedIntensity, nil
	default:
		return 0, &errs.DecodeError{Kind: filepath.Base(path), Err: errs.ErrUnknownFileKind}
	}
}

// DecodeQualityScoresFile decodes a quality-score metrics file.
func DecodeQualityScoresFile(path string, opts ...metrics.DecodeOption) (*metrics.QualityScores, error) {
	return decodeFile(path, func(r io.Reader) (*metrics.QualityScores, error) {
		return metrics.DecodeQualityScores(r, opts...)
	})
}

// DecodeExtractionFile decodes an extraction metrics file.
func DecodeExtractionFile(path string, opts ...metrics.DecodeOption) (*metrics.Extraction, error) {
	return decodeFile(path, func(r io.Reader) (*metrics.Extraction, error) {
		return metrics.DecodeExtraction(r, opts...)
	})
}

// DecodeCorrectedIntensityFile decodes a corrected intensity metrics file.
func DecodeCorrectedIntensityFile(path string, opts ...metrics.DecodeOption) (*metrics.CorrectedIntensity, error) {
	return decodeFile(path, func(r io.Reader) (*metrics.CorrectedIntensity, error) {
		return metrics.DecodeCorrectedIntensity(r, opts...)
	})
}

// IntensityRun holds the intensity metrics of one run.
type IntensityRun struct {
	// Extraction is nil when no extraction file was given.
	Extraction *metrics.Extraction
	// Corrected is nil when no corrected intensity file was given.
	Corrected *metrics.CorrectedIntensity
	// MaxCycle is the reconciled cycle count of both files.
	MaxCycle int
}

// DecodeIntensityFiles decodes an extraction file and a corrected intensity
// file one after the other and reconciles their cycle counts. Either path may
// be empty. A cycle count mismatch fails unless metrics.WithForce is set.
func DecodeIntensityFiles(extractionPath, correctedPath string, opts ...metrics.DecodeOption) (*IntensityRun, error) {
	cfg, err := metrics.NewDecodeConfig(opts...)
	if err != nil {
		return nil, err
	}

	run := &IntensityRun{}
	if extractionPath != "" {
		if run.Extraction, err = DecodeExtractionFile(extractionPath, opts...); err != nil {
			return nil, err
		}
	}
	if correctedPath != "" {
		if run.Corrected, err = DecodeCorrectedIntensityFile(correctedPath, opts...); err != nil {
			return nil, err
		}
	}

	run.MaxCycle, err = metrics.ReconcileMaxCycle(run.Extraction, run.Corrected, cfg.Force())
	if err != nil {
		return nil, err
	}
	if run.Extraction != nil && run.Corrected != nil && run.Extraction.MaxCycle != run.Corrected.MaxCycle {
		cfg.Logger().Warn("input files have different number of cycles",
			slog.Int("extraction", int(run.Extraction.MaxCycle)),
			slog.Int("corrected", int(run.Corrected.MaxCycle)),
			slog.Int("using", run.MaxCycle))
	}

	return run, nil
}

func decodeFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T

	src, err := source.Open(path)
	if err != nil {
		return zero, err
	}
	defer src.Close()

	out, err := decode(src)
	if err != nil {
		return zero, &fileError{path: path, err: err}
	}

	return out, nil
}

// fileError prefixes a decoding error with the file it came from.
type fileError struct {
	path string
	err  error
}

func (e *fileError) Error() string { return e.path + ": " + e.err.Error() }

func (e *fileError) Unwrap() error { return e.err }
