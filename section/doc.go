// Package section defines the fixed binary structures that precede the records
// of an instrument metrics file.
//
// # Stream Layout
//
// Every metrics file starts with a two-byte header, optionally followed by a
// quality binning header (quality-score files, versions 5 and 6), followed by
// fixed-length records until end of file:
//
//	┌──────────────────────────────────────────────┐
//	│ Header (2 bytes)                             │
//	│  - Version (1 byte)                          │
//	│  - RecordLength (1 byte)                     │
//	├──────────────────────────────────────────────┤
//	│ Binning header (quality v5/v6 only)          │
//	│  - Enabled flag (1 byte, 1 = present)        │
//	│  - BinCount (1 byte, only when enabled)      │
//	│  - Lower bounds (BinCount bytes)             │
//	│  - Upper bounds (BinCount bytes)             │
//	│  - Remapped scores (BinCount bytes)          │
//	├──────────────────────────────────────────────┤
//	│ Records (RecordLength bytes each)            │
//	└──────────────────────────────────────────────┘
//
// There is no checksum and no terminator; end of file on a record boundary is
// the only end-of-data signal.
//
// All values are single bytes, so none of the structures here depend on the
// byte order of the records that follow them.
package section
