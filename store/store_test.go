package store

import (
	"testing"

	"github.com/scgpm/interop/errs"
	"github.com/stretchr/testify/require"
)

type tileValue struct {
	A, B float64
}

func TestTiles_PutGet(t *testing.T) {
	tiles := NewTiles[tileValue]()

	replaced, err := tiles.Put(1, 5, 1101, tileValue{A: 1, B: 2})
	require.NoError(t, err)
	require.False(t, replaced)

	v, ok := tiles.Get(1, 5, 1101)
	require.True(t, ok)
	require.Equal(t, tileValue{A: 1, B: 2}, v)

	_, ok = tiles.Get(1, 5, 1102)
	require.False(t, ok)
	_, ok = tiles.Get(2, 5, 1101)
	require.False(t, ok)
	_, ok = tiles.Get(0, 5, 1101)
	require.False(t, ok)
}

func TestTiles_LastWriteWins(t *testing.T) {
	tiles := NewTiles[tileValue]()

	_, err := tiles.Put(3, 1, 1101, tileValue{A: 10, B: 20})
	require.NoError(t, err)
	replaced, err := tiles.Put(3, 1, 1101, tileValue{A: 1, B: 2})
	require.NoError(t, err)
	require.True(t, replaced)

	v, ok := tiles.Get(3, 1, 1101)
	require.True(t, ok)
	require.Equal(t, tileValue{A: 1, B: 2}, v)
	require.Equal(t, 1, tiles.Len())
	require.Equal(t, 1, tiles.TileCount(3, 1))
}

func TestTiles_InvalidLane(t *testing.T) {
	tiles := NewTiles[tileValue]()

	for _, lane := range []uint16{0, 9, 65535} {
		_, err := tiles.Put(lane, 1, 1101, tileValue{})
		require.ErrorIs(t, err, errs.ErrInvalidLane)

		var de *errs.DecodeError
		require.ErrorAs(t, err, &de)
		require.Equal(t, lane, de.Lane)
		require.Equal(t, uint16(1101), de.Tile)
	}
	require.Equal(t, 0, tiles.Len())
	require.Nil(t, tiles.Cycle(9, 1))
	require.Nil(t, tiles.Cycles(0))
}

func TestTiles_Indexes(t *testing.T) {
	tiles := NewTiles[tileValue]()

	for _, k := range []struct{ lane, cycle, tile uint16 }{
		{2, 3, 1102}, {2, 1, 1101}, {2, 3, 1101}, {8, 40, 2101}, {2, 2, 1101},
	} {
		_, err := tiles.Put(k.lane, k.cycle, k.tile, tileValue{})
		require.NoError(t, err)
	}

	require.Equal(t, []uint16{2, 8}, tiles.Lanes())
	require.Equal(t, []uint16{1, 2, 3}, tiles.Cycles(2))
	require.Equal(t, []uint16{1101, 1102}, tiles.TileIDs(2, 3))
	require.Equal(t, []uint16{40}, tiles.Cycles(8))
	require.Equal(t, 5, tiles.Len())
	require.Empty(t, tiles.Cycles(5))
}

func TestDerive(t *testing.T) {
	tiles := NewTiles[tileValue]()
	_, _ = tiles.Put(1, 1, 1101, tileValue{A: 10, B: 1})
	_, _ = tiles.Put(1, 1, 1102, tileValue{A: 20, B: 3})
	_, _ = tiles.Put(1, 2, 1101, tileValue{A: 5, B: 5})
	_, _ = tiles.Put(4, 7, 1101, tileValue{A: 1, B: 1})

	derived := Derive(tiles, func(m map[uint16]tileValue) tileValue {
		mean := NewMean(2)
		for _, v := range m {
			mean.Add(v.A, v.B)
		}
		vals := mean.Values()

		return tileValue{A: vals[0], B: vals[1]}
	})

	lc, ok := derived.Get(1, 1)
	require.True(t, ok)
	require.Equal(t, 2, lc.TileCount)
	require.Equal(t, tileValue{A: 15, B: 2}, lc.Value)

	lc, ok = derived.Get(1, 2)
	require.True(t, ok)
	require.Equal(t, 1, lc.TileCount)

	_, ok = derived.Get(1, 3)
	require.False(t, ok)
	_, ok = derived.Get(9, 1)
	require.False(t, ok)

	require.Equal(t, []uint16{1, 2}, derived.Cycles(1))
	require.Equal(t, []uint16{7}, derived.Cycles(4))
	require.Equal(t, "LaneCycles(3 entries)", derived.String())

	var empty *LaneCycles[tileValue]
	_, ok = empty.Get(1, 1)
	require.False(t, ok)
}

func TestMean(t *testing.T) {
	m := NewMean(3)
	require.Equal(t, []float64{0, 0, 0}, m.Values())

	m.Add(1, 2, 3)
	m.Add(3, 4, 5)
	require.Equal(t, 2, m.N())
	require.Equal(t, []float64{2, 3, 4}, m.Values())
}
