package summary

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/internal/pool"
	"github.com/scgpm/interop/store"
)

// flushSize is the buffered output size at which WriteTo writes through.
const flushSize = pool.TableBufferDefaultSize / 2

// Row is one cycle of a table.
type Row struct {
	Cycle  int
	Values []float64
	// Gap marks a zero-filled row of a cycle without data.
	Gap bool
}

// Table is an ordered per-cycle numeric table for one lane.
type Table struct {
	Name    string
	Lane    uint16
	Columns []string
	Rows    []Row
	// Gaps lists the cycles without data, whether zero-filled or omitted.
	Gaps []int
}

// DataRows returns the number of rows backed by data.
func (t *Table) DataRows() int {
	n := 0
	for _, r := range t.Rows {
		if !r.Gap {
			n++
		}
	}

	return n
}

// WriteTo writes the header row and one whitespace-delimited line per row.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bb := pool.GetTableBuffer()
	defer pool.PutTableBuffer(bb)

	var n int64
	_, _ = bb.WriteString(strings.Join(t.Columns, " "))
	_ = bb.WriteByte('\n')

	for _, r := range t.Rows {
		for i, v := range r.Values {
			if i > 0 {
				_ = bb.WriteByte(' ')
			}
			bb.B = strconv.AppendFloat(bb.B, v, 'f', -1, 64)
		}
		_ = bb.WriteByte('\n')

		if bb.Len() >= flushSize {
			written, err := bb.Flush(w)
			n += written
			if err != nil {
				return n, err
			}
		}
	}

	written, err := bb.Flush(w)

	return n + written, err
}

func (t *Table) String() string {
	return fmt.Sprintf("%s lane %d: %d rows, %d gaps", t.Name, t.Lane, len(t.Rows), len(t.Gaps))
}

// RequireData returns errs.ErrEmptyAggregate when t has no row backed by data.
func RequireData(t *Table) error {
	if t.DataRows() == 0 {
		return fmt.Errorf("%w %d: %s table has no cycles with data", errs.ErrEmptyAggregate, t.Lane, t.Name)
	}

	return nil
}

// build assembles a table for cycles 1..last. value returns the row of a
// cycle, or false when the cycle has no data.
func build(name string, lane uint16, columns []string, last int, policy GapPolicy,
	value func(cycle uint16) ([]float64, bool),
) *Table {
	t := &Table{Name: name, Lane: lane, Columns: columns}
	for c := 1; c <= last; c++ {
		vals, ok := value(uint16(c))
		if ok {
			t.Rows = append(t.Rows, Row{Cycle: c, Values: vals})
			continue
		}

		t.Gaps = append(t.Gaps, c)
		if policy == GapZeroFill {
			t.Rows = append(t.Rows, Row{Cycle: c, Values: make([]float64, len(columns)), Gap: true})
		}
	}

	return t
}

func checkLane(lane uint16) error {
	if !store.ValidLane(lane) {
		return &errs.DecodeError{Lane: lane, Err: errs.ErrInvalidLane}
	}

	return nil
}

// channelColumns are the A/C/G/T column labels.
var channelColumns = []string{"a", "c", "g", "t"}
