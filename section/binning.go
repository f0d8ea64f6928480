package section

import (
	"fmt"

	"github.com/scgpm/interop/errs"
)

// BinningTable is the quality binning header of quality-score files.
//
// Bin i covers raw quality scores Lower[i]..Upper[i] which the instrument
// reports as Remap[i]. The table is decoded and kept with the decoded metrics
// but is not applied to the per-bin counts.
type BinningTable struct {
	Lower []uint8
	Upper []uint8
	Remap []uint8
}

// NewBinningTable builds a table from per-bin lower bounds, upper bounds and remapped scores.
//
// Returns:
//   - *BinningTable: the table
//   - error: ErrInvalidBinning if the three slices differ in length or exceed 255 bins
func NewBinningTable(lower, upper, remap []uint8) (*BinningTable, error) {
	if len(lower) != len(upper) || len(lower) != len(remap) {
		return nil, fmt.Errorf("%w: %d lower, %d upper, %d remapped bounds",
			errs.ErrInvalidBinning, len(lower), len(upper), len(remap))
	}
	if len(lower) > 255 {
		return nil, fmt.Errorf("%w: %d bins", errs.ErrInvalidBinning, len(lower))
	}

	return &BinningTable{Lower: lower, Upper: upper, Remap: remap}, nil
}

// Count returns the number of bins.
func (b *BinningTable) Count() int {
	if b == nil {
		return 0
	}

	return len(b.Lower)
}

// BodySize returns the number of bytes that follow the bin count field for n bins.
func BodySize(n int) int {
	return 3 * n
}

// Parse parses the bin tables that follow the bin count field.
//
// Parameters:
//   - data: exactly BodySize(n) bytes: n lower bounds, n upper bounds, n remapped scores
//
// Returns:
//   - error: ErrTruncatedInput if data is not a whole table
func (b *BinningTable) Parse(data []byte) error {
	if len(data)%3 != 0 {
		return errs.ErrTruncatedInput
	}

	n := len(data) / 3
	b.Lower = append([]uint8(nil), data[:n]...)
	b.Upper = append([]uint8(nil), data[n:2*n]...)
	b.Remap = append([]uint8(nil), data[2*n:]...)

	return nil
}

// Bytes serializes the whole binning header including the enabled flag and bin count.
// A nil table serializes as a single disabled flag byte.
func (b *BinningTable) Bytes() []byte {
	if b == nil {
		return []byte{0}
	}

	n := b.Count()
	out := make([]byte, 0, BinningFlagSize+BinningCountSize+BodySize(n))
	out = append(out, BinningEnabled, uint8(n))
	out = append(out, b.Lower...)
	out = append(out, b.Upper...)
	out = append(out, b.Remap...)

	return out
}

// RemapScore returns the remapped quality score of bin i (0-based).
func (b *BinningTable) RemapScore(i int) (uint8, bool) {
	if b == nil || i < 0 || i >= len(b.Remap) {
		return 0, false
	}

	return b.Remap[i], true
}

// Lookup returns the index of the bin whose range contains the raw quality q.
func (b *BinningTable) Lookup(q uint8) (int, bool) {
	if b == nil {
		return 0, false
	}
	for i := range b.Lower {
		if q >= b.Lower[i] && q <= b.Upper[i] {
			return i, true
		}
	}

	return 0, false
}
