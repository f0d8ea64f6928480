// Package errs defines the error taxonomy shared by the interop decoders.
//
// Every failure surfaced by this module wraps one of the sentinel errors below,
// so callers can branch on them with errors.Is. Decoding failures additionally
// carry a *DecodeError with the file kind, version and the offending record key,
// which is what an operator needs to locate corrupted instrument output.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTruncatedInput is returned when the stream ends inside the header or a record.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrUnsupportedVersion is returned for an unknown (file kind, version) pair.
	ErrUnsupportedVersion = errors.New("unsupported file format version")
	// ErrUnknownFileKind is returned when a file kind is not recognised.
	ErrUnknownFileKind = errors.New("unknown metrics file kind")
	// ErrInvalidLane is returned when a record's lane falls outside 1..8.
	ErrInvalidLane = errors.New("invalid lane")
	// ErrInvalidRecordLength is returned when the header's record length cannot hold the schema.
	ErrInvalidRecordLength = errors.New("invalid record length")
	// ErrInvalidBinning is returned when a binning header is malformed.
	ErrInvalidBinning = errors.New("invalid quality binning header")
	// ErrCycleCountMismatch is returned when related metrics files disagree on the cycle count.
	ErrCycleCountMismatch = errors.New("input files have different number of cycles")
	// ErrEmptyAggregate is returned when a summary has no data at all for the requested lane.
	ErrEmptyAggregate = errors.New("no data for lane")
)

// DecodeError attaches record-level context to a decoding failure.
//
// Zero-valued fields are omitted from the message. Offset is the byte offset
// of the record (or header field) that failed, counted from the start of the
// stream.
type DecodeError struct {
	Kind    string
	Version uint8
	Lane    uint16
	Tile    uint16
	Cycle   uint16
	Offset  int64
	Err     error
}

func (e *DecodeError) Error() string {
	var sb strings.Builder
	if e.Kind != "" {
		sb.WriteString(e.Kind)
		if e.Version != 0 {
			fmt.Fprintf(&sb, " v%d", e.Version)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(e.Err.Error())

	var ctx []string
	if e.Lane != 0 || e.Tile != 0 || e.Cycle != 0 {
		ctx = append(ctx, fmt.Sprintf("lane=%d tile=%d cycle=%d", e.Lane, e.Tile, e.Cycle))
	}
	if e.Offset != 0 {
		ctx = append(ctx, fmt.Sprintf("offset=%d", e.Offset))
	}
	if len(ctx) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(ctx, " "))
		sb.WriteString(")")
	}

	return sb.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Wrap returns err annotated with the file kind and version.
// If err already is a *DecodeError the missing fields are filled in place.
func Wrap(err error, kind string, version uint8) error {
	if err == nil {
		return nil
	}

	var de *DecodeError
	if errors.As(err, &de) {
		if de.Kind == "" {
			de.Kind = kind
		}
		if de.Version == 0 {
			de.Version = version
		}

		return err
	}

	return &DecodeError{Kind: kind, Version: version, Err: err}
}
