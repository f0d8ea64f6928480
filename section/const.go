package section

// offset and section sizes in the metrics stream
const (
	HeaderSize         = 2 // fixed header size in bytes
	VersionOffset      = 0 // byte offset of the version field
	RecordLengthOffset = 1 // byte offset of the record length field

	BinningFlagSize  = 1 // size of the binning enabled flag
	BinningCountSize = 1 // size of the bin count field
	BinningEnabled   = 1 // flag value that announces a binning table
)
