// Package record decodes and encodes the fixed-length records of instrument metrics files.
//
// The Reader is a thin sequential decoder: it reads the file header, the
// optional binning header and then one record per call, exactly as laid out
// by a schema.Schema. It performs no validation of record contents and no
// transformation of values; lane checks and aggregation belong to the metrics
// package.
package record

import (
	"math"

	"github.com/scgpm/interop/endian"
	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/schema"
)

// Record is one decoded record.
//
// A Record returned by Reader.ReadRecord aliases the reader's buffer and is
// only valid until the next call to ReadRecord.
type Record struct {
	schema *schema.Schema
	engine endian.EndianEngine
	data   []byte
	// Offset is the byte offset of the record within the stream.
	Offset int64
}

// Schema returns the layout the record was decoded with.
func (r Record) Schema() *schema.Schema {
	return r.schema
}

// Lane returns the lane number of the record.
func (r Record) Lane() uint16 { return r.Uint16(0) }

// Tile returns the tile number of the record.
func (r Record) Tile() uint16 { return r.Uint16(1) }

// Cycle returns the cycle number of the record.
func (r Record) Cycle() uint16 { return r.Uint16(2) }

// Has reports whether field i is present. Only optional trailing fields
// can be missing, when the header's record length cuts them off.
func (r Record) Has(i int) bool {
	return r.schema.Offset(i)+r.schema.Fields[i].Type.Size() <= len(r.data)
}

// Uint8 returns field i decoded as uint8.
func (r Record) Uint8(i int) uint8 {
	return r.data[r.schema.Offset(i)]
}

// Uint16 returns field i decoded as uint16.
func (r Record) Uint16(i int) uint16 {
	return r.engine.Uint16(r.data[r.schema.Offset(i):])
}

// Uint32 returns field i decoded as uint32.
func (r Record) Uint32(i int) uint32 {
	return r.engine.Uint32(r.data[r.schema.Offset(i):])
}

// Uint64 returns field i decoded as uint64.
func (r Record) Uint64(i int) uint64 {
	return r.engine.Uint64(r.data[r.schema.Offset(i):])
}

// Float32 returns field i decoded as float32.
func (r Record) Float32(i int) float32 {
	return endian.Float32(r.engine, r.data[r.schema.Offset(i):])
}

// Value returns field i converted to float64 according to its schema type,
// 0 when the field is absent. uint64 values above 2^53 lose precision.
func (r Record) Value(i int) float64 {
	if !r.Has(i) {
		return 0
	}

	switch r.schema.Fields[i].Type {
	case format.TypeUint8:
		return float64(r.Uint8(i))
	case format.TypeUint16:
		return float64(r.Uint16(i))
	case format.TypeUint32:
		return float64(r.Uint32(i))
	case format.TypeUint64:
		return float64(r.Uint64(i))
	case format.TypeFloat32:
		return float64(r.Float32(i))
	default:
		return math.NaN()
	}
}

// Values returns every field of the record converted to float64.
func (r Record) Values() []float64 {
	out := make([]float64, len(r.schema.Fields))
	for i := range out {
		out[i] = r.Value(i)
	}

	return out
}
