// Package endian provides the byte order used to decode instrument metrics files.
//
// The metrics files are written little-endian by the instrument control
// software regardless of the host. EndianEngine combines binary.ByteOrder and
// binary.AppendByteOrder so the same value can drive both the record reader and
// the fixture writer, and adds the float32 helpers the schemas need.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
// This is the byte order of every metrics file version known to the schema registry.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Float32 decodes an IEEE-754 single-precision value from the first 4 bytes of b.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// AppendFloat32 appends the IEEE-754 encoding of v to buf.
func AppendFloat32(engine EndianEngine, buf []byte, v float32) []byte {
	return engine.AppendUint32(buf, math.Float32bits(v))
}
