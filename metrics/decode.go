package metrics

import (
	"errors"
	"io"
	"log/slog"

	"github.com/scgpm/interop/errs"
	"github.com/scgpm/interop/format"
	"github.com/scgpm/interop/record"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
	"github.com/scgpm/interop/store"
)

// Stats counts what happened to the records of one stream.
type Stats struct {
	// Records is the number of records read, including skipped ones.
	Records int
	// Skipped is the number of records dropped because of an invalid lane.
	Skipped int
	// Duplicates is the number of records that replaced an earlier record
	// with the same lane, cycle and tile.
	Duplicates int
}

// stream is the outcome of one decode pass.
type stream[T any] struct {
	header   section.Header
	schema   schema.Schema
	binning  *section.BinningTable
	tiles    *store.Tiles[T]
	stats    Stats
	// maxCycle is the highest cycle of any record read, skipped ones included.
	maxCycle uint16
}

// converter turns a record into the kind's per-tile value. It is built once
// per stream so that field positions are resolved against the actual schema.
type converter[T any] func(record.Record) T

// decodeStream runs the single forward pass shared by all decoders.
func decodeStream[T any](
	r io.Reader,
	kind format.FileKind,
	cfg *DecodeConfig,
	newConverter func(schema.Schema) converter[T],
) (*stream[T], error) {
	rd := record.NewReader(r)
	log := cfg.logger.With(slog.String("kind", kind.String()))

	hdr, err := rd.ReadHeader()
	if err != nil {
		return nil, errs.Wrap(err, kind.String(), 0)
	}

	s, err := schema.Lookup(kind, hdr.Version)
	if err != nil {
		return nil, err
	}
	log = log.With(slog.Int("version", int(hdr.Version)))
	log.Debug("stream header",
		slog.Int("record_length", int(hdr.RecordLength)),
		slog.Int("schema_size", s.RecordSize()))

	out := &stream[T]{
		header: hdr,
		schema: s,
		tiles:  store.NewTiles[T](),
	}

	if s.HasBinning {
		out.binning, err = rd.ReadBinningHeader()
		if err != nil {
			return nil, errs.Wrap(err, kind.String(), hdr.Version)
		}
		log.Debug("binning header", slog.Int("bins", out.binning.Count()))
	}

	convert := newConverter(s)
	for {
		rec, err := rd.ReadRecord(s)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Wrap(err, kind.String(), hdr.Version)
		}
		out.stats.Records++

		lane, tile, cycle := rec.Lane(), rec.Tile(), rec.Cycle()
		out.maxCycle = max(out.maxCycle, cycle)
		replaced, err := out.tiles.Put(lane, cycle, tile, convert(rec))
		if err != nil {
			var de *errs.DecodeError
			if errors.As(err, &de) {
				de.Offset = rec.Offset
			}
			if !cfg.force {
				return nil, errs.Wrap(err, kind.String(), hdr.Version)
			}
			out.stats.Skipped++
			log.Warn("skipping record with invalid lane",
				slog.Int("lane", int(lane)),
				slog.Int("tile", int(tile)),
				slog.Int("cycle", int(cycle)),
				slog.Int64("offset", rec.Offset))

			continue
		}
		if replaced {
			out.stats.Duplicates++
			log.Debug("duplicate record replaced",
				slog.Int("lane", int(lane)),
				slog.Int("tile", int(tile)),
				slog.Int("cycle", int(cycle)))
		}
	}

	log.Debug("stream decoded",
		slog.Int("records", out.stats.Records),
		slog.Int("skipped", out.stats.Skipped),
		slog.Int("duplicates", out.stats.Duplicates),
		slog.Int("max_cycle", int(out.maxCycle)))

	return out, nil
}

// channelIndexes resolves the field position of each channel, -1 when absent.
func channelIndexes(s schema.Schema, name func(string) string) [4]int {
	var idx [4]int
	for i, ch := range schema.Channels {
		idx[i] = s.Index(name(ch))
	}

	return idx
}
