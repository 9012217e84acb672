package square

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCoordinatesRoundTrip(t *testing.T) {
	for v := uint8(0); v < 81; v++ {
		c := NewCell(v)
		coords := c.Coordinates()
		back := CoordinatesToCell(coords)
		assert.Equal(t, c, back)
	}
}

func TestAllCellsCount(t *testing.T) {
	require.Len(t, AllCells(), 81)
}

func TestAllCellsDistinct(t *testing.T) {
	seen := map[uint8]bool{}
	for _, c := range AllCells() {
		require.False(t, seen[c.Value()])
		seen[c.Value()] = true
	}
	assert.Len(t, seen, 81)
}

func TestSetOps(t *testing.T) {
	s := Empty
	c1, c2 := NewCell(3), NewCell(70)
	s = s.Insert(c1).Insert(c2)
	assert.Equal(t, 2, s.Count())
	assert.True(t, s.Contains(c1))
	assert.True(t, s.Contains(c2))

	s = s.Remove(c1)
	assert.False(t, s.Contains(c1))
	assert.Equal(t, 1, s.Count())
}

func TestAllSetHas81(t *testing.T) {
	assert.Equal(t, 81, All.Count())
	assert.True(t, Empty.IsEmpty())
}

func TestBoardRowCol(t *testing.T) {
	coords := Coordinates{Band: NewBand(1), Stack: NewStack(2), Row: NewRowInBand(2), Col: NewColInStack(0)}
	assert.Equal(t, uint8(5), coords.BoardRow())
	assert.Equal(t, uint8(6), coords.BoardCol())
}
