// Package metrics decodes the instrument's binary metrics files into the
// aggregate store.
//
// There is one decoder per file kind:
//
//	DecodeQualityScores       QMetricsOut.bin           versions 4, 5, 6
//	DecodeExtraction          ExtractionMetricsOut.bin  version 2
//	DecodeCorrectedIntensity  CorrectedIntMetricsOut.bin versions 1, 2, 3
//
// Every decoder reads the stream exactly once, front to back. Each record is
// validated (lane 1..8), stored per (lane, cycle, tile) with last-write-wins
// semantics, and counted towards the running maximum cycle. Extraction and
// corrected intensity results then derive per (lane, cycle) tile means in a
// second pass; quality scores keep only the raw per-tile histograms and are
// summed by the summary package on demand.
//
// Decoders never retain the reader and never touch package state, so
// independent files can be decoded one after another without interference.
package metrics
