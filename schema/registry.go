// Package schema is the registry of record layouts for the instrument metrics files.
//
// A Schema describes one (file kind, version) pair: the ordered record fields
// with their on-disk types, the record byte length implied by them, and whether
// the stream carries a quality binning header between the file header and the
// first record. The registry is static; Lookup never allocates a new layout.
package schema

import (
	"fmt"
	"strconv"

	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/format"
)

// Names of the fields shared by every record.
const (
	FieldLane  = "lane"
	FieldTile  = "tile"
	FieldCycle = "cycle"
)

// Extraction and corrected intensity field names.
const (
	FieldAvgIntensity = "avg_int"
	FieldTimestamp    = "timestamp"
	FieldSNR          = "snr"
)

// Channels is the channel order used by per-channel fields.
var Channels = [4]string{"a", "c", "g", "t"}

// CallChannels is the on-disk order of the base-call counters.
var CallChannels = [5]string{"n", "a", "c", "g", "t"}

// KeyFields is the number of leading lane/tile/cycle fields.
const KeyFields = 3

// Field is a named, typed record column.
type Field struct {
	Name string
	Type format.FieldType
}

// Schema is the binary layout of one metrics file version.
type Schema struct {
	Kind    format.FileKind
	Version uint8
	// Fields lists every record field in stream order, lane/tile/cycle first.
	Fields []Field
	// HasBinning reports whether a binning header follows the file header.
	HasBinning bool

	offsets  []int
	size     int
	required int
	index    map[string]int
}

// RecordSize returns the number of bytes a record of this schema occupies.
func (s Schema) RecordSize() int {
	return s.size
}

// MinRecordSize returns the size of the fields every record must carry.
// Records shorter than RecordSize but at least this long omit trailing
// optional fields.
func (s Schema) MinRecordSize() int {
	if s.required == len(s.Fields) {
		return s.size
	}

	return s.offsets[s.required]
}

// Optional reports whether field i may be missing from a short record.
func (s Schema) Optional(i int) bool {
	return i >= s.required
}

// Offset returns the byte offset of field i inside a record.
func (s Schema) Offset(i int) int {
	return s.offsets[i]
}

// Index returns the position of the named field, or -1 when the schema has no such field.
func (s Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}

	return -1
}

// Has reports whether the schema carries the named field.
func (s Schema) Has(name string) bool {
	return s.Index(name) >= 0
}

// QualityLevels returns the number of quality bins per record for quality-score schemas, 0 otherwise.
func (s Schema) QualityLevels() int {
	if s.Kind != format.KindQualityScore {
		return 0
	}

	return len(s.Fields) - KeyFields
}

func (s Schema) String() string {
	return fmt.Sprintf("%s v%d (%d fields, %d bytes)", s.Kind, s.Version, len(s.Fields), s.size)
}

// QualityField returns the field name of quality bin q (1-based).
func QualityField(q int) string {
	return "q" + strconv.Itoa(q)
}

// IntensityField returns the raw intensity field name of a channel.
func IntensityField(ch string) string { return ch + "_int" }

// CalledIntensityField returns the called intensity field name of a channel.
func CalledIntensityField(ch string) string { return ch + "_called_int" }

// FWHMField returns the focus field name of a channel.
func FWHMField(ch string) string { return ch + "_fwhm" }

// CallsField returns the base-call counter field name of a channel.
func CallsField(ch string) string { return ch + "_calls" }

type key struct {
	kind    format.FileKind
	version uint8
}

var registry = map[key]Schema{}

func init() {
	register(format.KindQualityScore, 4, false, qualityFields(50))
	register(format.KindQualityScore, 5, true, qualityFields(50))
	// v6 stores the 7 binned quality levels of the data-compression scheme.
	register(format.KindQualityScore, 6, true, qualityFields(7))

	// Older writers end extraction records after the intensities.
	register(format.KindExtraction, 2, false, concat(
		channelFields(FWHMField, format.TypeFloat32),
		channelFields(IntensityField, format.TypeUint16),
	), Field{FieldTimestamp, format.TypeUint64})

	correctedV1 := concat(
		[]Field{{FieldAvgIntensity, format.TypeUint16}},
		channelFields(IntensityField, format.TypeUint16),
		channelFields(CalledIntensityField, format.TypeUint16),
		callFields(),
	)
	register(format.KindCorrectedIntensity, 1, false, correctedV1)
	register(format.KindCorrectedIntensity, 2, false, concat(
		correctedV1,
		[]Field{{FieldSNR, format.TypeFloat32}},
	))
	register(format.KindCorrectedIntensity, 3, false, concat(
		channelFields(CalledIntensityField, format.TypeUint16),
		callFields(),
	))
}

// Lookup returns the schema registered for a file kind and version.
//
// Returns:
//   - Schema: the registered layout
//   - error: a *errs.DecodeError wrapping errs.ErrUnsupportedVersion for unknown pairs
func Lookup(kind format.FileKind, version uint8) (Schema, error) {
	s, ok := registry[key{kind, version}]
	if !ok {
		return Schema{}, &errs.DecodeError{Kind: kind.String(), Version: version, Err: errs.ErrUnsupportedVersion}
	}

	return s, nil
}

// Versions returns the registered versions of a file kind in ascending order.
func Versions(kind format.FileKind) []uint8 {
	var out []uint8
	for v := 0; v <= 255; v++ {
		if _, ok := registry[key{kind, uint8(v)}]; ok {
			out = append(out, uint8(v))
		}
	}

	return out
}

// register adds a layout. optional fields follow body and may be cut off by
// a shorter header record length.
func register(kind format.FileKind, version uint8, binning bool, body []Field, optional ...Field) {
	fields := concat([]Field{
		{FieldLane, format.TypeUint16},
		{FieldTile, format.TypeUint16},
		{FieldCycle, format.TypeUint16},
	}, body)
	required := len(fields)
	fields = append(fields, optional...)

	s := Schema{
		Kind:       kind,
		Version:    version,
		Fields:     fields,
		HasBinning: binning,
		required:   required,
		offsets:    make([]int, len(fields)),
		index:      make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		s.offsets[i] = s.size
		s.index[f.Name] = i
		s.size += f.Type.Size()
	}

	registry[key{kind, version}] = s
}

func qualityFields(levels int) []Field {
	fields := make([]Field, levels)
	for i := range fields {
		fields[i] = Field{QualityField(i + 1), format.TypeUint32}
	}

	return fields
}

func channelFields(name func(string) string, typ format.FieldType) []Field {
	fields := make([]Field, len(Channels))
	for i, ch := range Channels {
		fields[i] = Field{name(ch), typ}
	}

	return fields
}

func callFields() []Field {
	fields := make([]Field, len(CallChannels))
	for i, ch := range CallChannels {
		fields[i] = Field{CallsField(ch), format.TypeUint32}
	}

	return fields
}

func concat(parts ...[]Field) []Field {
	var out []Field
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}
