package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/scgpm/interop/endian"
	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
)

// Reader sequentially decodes a metrics stream.
//
// The expected call order is ReadHeader, then ReadBinningHeader when the
// schema has one, then ReadRecord until it returns io.EOF.
type Reader struct {
	r      *bufio.Reader
	engine endian.EndianEngine
	header section.Header
	hasHdr bool
	offset int64
	buf    []byte
}

// NewReader creates a Reader decoding little-endian records from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:      bufio.NewReader(r),
		engine: endian.GetLittleEndianEngine(),
	}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Header returns the header read by ReadHeader.
func (r *Reader) Header() section.Header {
	return r.header
}

// ReadHeader reads the version and record length bytes.
//
// Returns:
//   - section.Header: the decoded header
//   - error: ErrTruncatedInput if the stream holds fewer than 2 bytes
func (r *Reader) ReadHeader() (section.Header, error) {
	data, err := r.readFull(section.HeaderSize, true)
	if err != nil {
		return section.Header{}, err
	}

	h, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, err
	}
	r.header = h
	r.hasHdr = true

	return h, nil
}

// ReadBinningHeader reads the binning flag and, when it equals 1, the bin tables.
//
// Returns:
//   - *section.BinningTable: the decoded table, nil when binning is disabled
//   - error: ErrTruncatedInput if the stream ends inside the binning header
func (r *Reader) ReadBinningHeader() (*section.BinningTable, error) {
	flag, err := r.readFull(section.BinningFlagSize, true)
	if err != nil {
		return nil, err
	}
	if flag[0] != section.BinningEnabled {
		return nil, nil
	}

	count, err := r.readFull(section.BinningCountSize, true)
	if err != nil {
		return nil, err
	}

	body, err := r.readFull(section.BodySize(int(count[0])), true)
	if err != nil {
		return nil, err
	}

	table := &section.BinningTable{}
	if err := table.Parse(body); err != nil {
		return nil, err
	}

	return table, nil
}

// ReadRecord reads the next record laid out according to s.
//
// Each call consumes exactly the header's record length; bytes beyond the
// schema's own record size are skipped, and optional trailing fields that do
// not fit are reported absent by Record.Has.
//
// Returns:
//   - Record: the record, valid until the next call
//   - error: io.EOF at a clean record boundary, ErrTruncatedInput inside a
//     record, ErrInvalidRecordLength if the header's record length is smaller
//     than the schema's minimum record size
func (r *Reader) ReadRecord(s schema.Schema) (Record, error) {
	if !r.hasHdr {
		return Record{}, fmt.Errorf("%w: header not read", errs.ErrInvalidRecordLength)
	}

	recLen := int(r.header.RecordLength)
	if recLen < s.MinRecordSize() {
		return Record{}, &errs.DecodeError{
			Kind:    s.Kind.String(),
			Version: s.Version,
			Err: fmt.Errorf("%w: header says %d bytes, schema needs %d",
				errs.ErrInvalidRecordLength, recLen, s.MinRecordSize()),
		}
	}

	start := r.offset
	data, err := r.readFull(recLen, false)
	if err != nil {
		return Record{}, err
	}

	return Record{schema: &s, engine: r.engine, data: data, Offset: start}, nil
}

// readFull reads exactly n bytes into the reader's buffer.
// With required=false an empty read at the current position yields io.EOF.
func (r *Reader) readFull(n int, required bool) ([]byte, error) {
	if cap(r.buf) < n {
		r.buf = make([]byte, n)
	}
	buf := r.buf[:n]

	read, err := io.ReadFull(r.r, buf)
	start := r.offset
	r.offset += int64(read)

	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF) && !required:
		return nil, io.EOF
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, &errs.DecodeError{
			Offset: start,
			Err:    fmt.Errorf("%w: wanted %d bytes, got %d", errs.ErrTruncatedInput, n, read),
		}
	default:
		return nil, err
	}
}
