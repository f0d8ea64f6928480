// Package summary turns decoded metrics into per-cycle numeric tables.
//
// Every table has one row per cycle from 1 to the maximum cycle, in order,
// and is written as whitespace-delimited text with a header row of column
// labels. Cycles without any tile for the requested lane are gaps: they are
// either zero-filled or omitted depending on the GapPolicy, and always listed
// in Table.Gaps. No value in a table is ever NaN or infinite.
//
// Quality statistics are computed from the raw per-tile histograms at read
// time; intensity, focus and base-call tables use the tile means derived by
// the metrics package.
package summary
