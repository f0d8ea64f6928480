// Package store holds decoded metrics in memory, keyed by lane, cycle and tile.
//
// Two distinct containers model the two aggregation states:
//
//   - Tiles[T] holds raw per-tile values exactly as decoded. It is filled in a
//     single forward pass and a repeated (lane, cycle, tile) key overwrites
//     the previous entry.
//   - LaneCycles[A] holds values derived from Tiles once decoding has
//     finished, one entry per (lane, cycle).
//
// Both use a fixed array of NumLanes lanes and grow only in the cycle and
// tile dimensions. Neither type is safe for concurrent writes; after
// decoding they are only read.
package store

import (
	"fmt"
	"maps"
	"slices"

	"github.com/scgpm/interop/errs"
)

// NumLanes is the number of lanes on a flow cell.
const NumLanes = 8

// ValidLane reports whether lane is within 1..NumLanes.
func ValidLane(lane uint16) bool {
	return lane >= 1 && lane <= NumLanes
}

// Tiles is the raw lane -> cycle -> tile table.
type Tiles[T any] struct {
	lanes [NumLanes]map[uint16]map[uint16]T
	count int
}

// NewTiles creates an empty table.
func NewTiles[T any]() *Tiles[T] {
	t := &Tiles[T]{}
	for i := range t.lanes {
		t.lanes[i] = make(map[uint16]map[uint16]T)
	}

	return t
}

// Put stores v at (lane, cycle, tile), replacing any previous value.
//
// Returns:
//   - bool: true if an earlier value for the same key was replaced
//   - error: ErrInvalidLane if lane is outside 1..NumLanes
func (t *Tiles[T]) Put(lane, cycle, tile uint16, v T) (bool, error) {
	if !ValidLane(lane) {
		return false, &errs.DecodeError{Lane: lane, Tile: tile, Cycle: cycle, Err: errs.ErrInvalidLane}
	}

	cycles := t.lanes[lane-1]
	tiles, ok := cycles[cycle]
	if !ok {
		tiles = make(map[uint16]T)
		cycles[cycle] = tiles
	}

	_, replaced := tiles[tile]
	tiles[tile] = v
	if !replaced {
		t.count++
	}

	return replaced, nil
}

// Get returns the value stored at (lane, cycle, tile).
func (t *Tiles[T]) Get(lane, cycle, tile uint16) (T, bool) {
	var zero T
	if !ValidLane(lane) {
		return zero, false
	}

	v, ok := t.lanes[lane-1][cycle][tile]

	return v, ok
}

// Cycle returns the tile map of (lane, cycle). The map must not be modified.
func (t *Tiles[T]) Cycle(lane, cycle uint16) map[uint16]T {
	if !ValidLane(lane) {
		return nil
	}

	return t.lanes[lane-1][cycle]
}

// TileCount returns the number of tiles stored at (lane, cycle).
func (t *Tiles[T]) TileCount(lane, cycle uint16) int {
	return len(t.Cycle(lane, cycle))
}

// TileIDs returns the sorted tile numbers stored at (lane, cycle).
func (t *Tiles[T]) TileIDs(lane, cycle uint16) []uint16 {
	return slices.Sorted(maps.Keys(t.Cycle(lane, cycle)))
}

// Cycles returns the sorted cycles that hold at least one tile in lane.
func (t *Tiles[T]) Cycles(lane uint16) []uint16 {
	if !ValidLane(lane) {
		return nil
	}

	return slices.Sorted(maps.Keys(t.lanes[lane-1]))
}

// Lanes returns the lanes that hold at least one record, in ascending order.
func (t *Tiles[T]) Lanes() []uint16 {
	var out []uint16
	for i, cycles := range t.lanes {
		if len(cycles) > 0 {
			out = append(out, uint16(i+1))
		}
	}

	return out
}

// Len returns the number of distinct (lane, cycle, tile) keys.
func (t *Tiles[T]) Len() int {
	return t.count
}

// LaneCycle is one derived (lane, cycle) entry.
type LaneCycle[A any] struct {
	// TileCount is the number of tiles the values were derived from. Always > 0.
	TileCount int
	Value     A
}

// LaneCycles is the derived lane -> cycle table.
type LaneCycles[A any] struct {
	lanes [NumLanes]map[uint16]LaneCycle[A]
}

// Derive builds a LaneCycles table by applying fn to the tiles of every
// (lane, cycle) present in src. Cycles without tiles get no entry.
func Derive[T, A any](src *Tiles[T], fn func(tiles map[uint16]T) A) *LaneCycles[A] {
	out := &LaneCycles[A]{}
	for i := range out.lanes {
		out.lanes[i] = make(map[uint16]LaneCycle[A], len(src.lanes[i]))
		for cycle, tiles := range src.lanes[i] {
			if len(tiles) == 0 {
				continue
			}
			out.lanes[i][cycle] = LaneCycle[A]{TileCount: len(tiles), Value: fn(tiles)}
		}
	}

	return out
}

// Get returns the derived entry of (lane, cycle).
func (l *LaneCycles[A]) Get(lane, cycle uint16) (LaneCycle[A], bool) {
	if l == nil || !ValidLane(lane) {
		return LaneCycle[A]{}, false
	}

	v, ok := l.lanes[lane-1][cycle]

	return v, ok
}

// Cycles returns the sorted cycles with an entry in lane.
func (l *LaneCycles[A]) Cycles(lane uint16) []uint16 {
	if l == nil || !ValidLane(lane) {
		return nil
	}

	return slices.Sorted(maps.Keys(l.lanes[lane-1]))
}

func (l *LaneCycles[A]) String() string {
	n := 0
	for _, cycles := range l.lanes {
		n += len(cycles)
	}

	return fmt.Sprintf("LaneCycles(%d entries)", n)
}
