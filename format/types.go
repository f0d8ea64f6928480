package format

type (
	// FileKind identifies which metrics file a stream holds.
	FileKind uint8
	// FieldType is the on-disk numeric type of a record field.
	FieldType uint8
	// CompressionType is the container a metrics file may be archived in.
	CompressionType uint8
)

const (
	KindQualityScore       FileKind = 0x1 // KindQualityScore is QMetricsOut.bin.
	KindExtraction         FileKind = 0x2 // KindExtraction is ExtractionMetricsOut.bin.
	KindCorrectedIntensity FileKind = 0x3 // KindCorrectedIntensity is CorrectedIntMetricsOut.bin.
)

const (
	TypeUint8   FieldType = 0x1 // TypeUint8 is an unsigned 8-bit integer.
	TypeUint16  FieldType = 0x2 // TypeUint16 is an unsigned 16-bit integer.
	TypeUint32  FieldType = 0x3 // TypeUint32 is an unsigned 32-bit integer.
	TypeUint64  FieldType = 0x4 // TypeUint64 is an unsigned 64-bit integer.
	TypeFloat32 FieldType = 0x5 // TypeFloat32 is an IEEE-754 single-precision float.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain metrics file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard frame.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2/Snappy stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents a gzip member.
)

func (k FileKind) String() string {
	switch k {
	case KindQualityScore:
		return "quality"
	case KindExtraction:
		return "extraction"
	case KindCorrectedIntensity:
		return "corrected"
	default:
		return "unknown"
	}
}

// ParseFileKind returns the FileKind named by s, as printed by String.
func ParseFileKind(s string) (FileKind, bool) {
	for _, k := range []FileKind{KindQualityScore, KindExtraction, KindCorrectedIntensity} {
		if k.String() == s {
			return k, true
		}
	}

	return 0, false
}

// Size returns the encoded width of the type in bytes.
func (t FieldType) Size() int {
	switch t {
	case TypeUint8:
		return 1
	case TypeUint16:
		return 2
	case TypeUint32, TypeFloat32:
		return 4
	case TypeUint64:
		return 8
	default:
		return 0
	}
}

func (t FieldType) String() string {
	switch t {
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeFloat32:
		return "float32"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}
