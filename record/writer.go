package record

import (
	"fmt"
	"io"

	"github.com/scgpm/interop/endian"
	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
)

// Writer encodes metrics streams in the layout Reader decodes.
//
// It produces fixtures for decoder tests and synthetic files for tooling.
type Writer struct {
	w      io.Writer
	engine endian.EndianEngine
	header section.Header
	buf    []byte
}

// NewWriter creates a Writer encoding little-endian records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, engine: endian.GetLittleEndianEngine()}
}

// WriteHeader writes the file header. A zero RecordLength is not allowed.
func (w *Writer) WriteHeader(h section.Header) error {
	if h.RecordLength == 0 {
		return errs.ErrInvalidRecordLength
	}
	w.header = h
	_, err := w.w.Write(h.Bytes())

	return err
}

// WriteBinningHeader writes the binning flag and, for a non-nil table, the bin tables.
func (w *Writer) WriteBinningHeader(b *section.BinningTable) error {
	_, err := w.w.Write(b.Bytes())
	return err
}

// WriteRecord encodes one record.
//
// Parameters:
//   - s: the record layout
//   - values: one value per schema field, lane/tile/cycle first
//
// The record is zero-padded up to the header's record length, or cut to it
// when the schema allows the trailing fields to be omitted.
func (w *Writer) WriteRecord(s schema.Schema, values ...float64) error {
	if len(values) != len(s.Fields) {
		return fmt.Errorf("%s: got %d values for %d fields", s, len(values), len(s.Fields))
	}
	if int(w.header.RecordLength) < s.MinRecordSize() {
		return fmt.Errorf("%w: header says %d bytes, schema needs %d",
			errs.ErrInvalidRecordLength, w.header.RecordLength, s.MinRecordSize())
	}

	buf := w.buf[:0]
	for i, f := range s.Fields {
		v := values[i]
		switch f.Type {
		case format.TypeUint8:
			buf = append(buf, uint8(v))
		case format.TypeUint16:
			buf = w.engine.AppendUint16(buf, uint16(v))
		case format.TypeUint32:
			buf = w.engine.AppendUint32(buf, uint32(v))
		case format.TypeUint64:
			buf = w.engine.AppendUint64(buf, uint64(v))
		case format.TypeFloat32:
			buf = endian.AppendFloat32(w.engine, buf, float32(v))
		default:
			return fmt.Errorf("field %s: unsupported type %s", f.Name, f.Type)
		}
	}
	// A short record length drops the optional trailing fields.
	if len(buf) > int(w.header.RecordLength) {
		buf = buf[:w.header.RecordLength]
	}
	for len(buf) < int(w.header.RecordLength) {
		buf = append(buf, 0)
	}
	w.buf = buf

	_, err := w.w.Write(buf)

	return err
}
