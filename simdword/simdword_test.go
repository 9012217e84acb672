package simdword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAndOrXorAndNot(t *testing.T) {
	a := Load([]uint16{0b1100, 0b1010})
	b := Load([]uint16{0b1010, 0b0110})

	assert.Equal(t, []uint16{0b1000, 0b0010}, a.And(b).Store())
	assert.Equal(t, []uint16{0b1110, 0b1110}, a.Or(b).Store())
	assert.Equal(t, []uint16{0b0110, 0b1100}, a.Xor(b).Store())
	assert.Equal(t, []uint16{0b0100, 0b1000}, a.AndNot(b).Store())
}

func TestEqualAndIsAllZero(t *testing.T) {
	a := Load([]uint8{1, 2, 3})
	b := Load([]uint8{1, 2, 3})
	c := Load([]uint8{1, 2, 4})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, Zero[uint8](4).IsAllZero())
	assert.False(t, a.IsAllZero())
}

func TestEqualMaskAndLessMask(t *testing.T) {
	a := Load([]uint16{5, 9, 2})
	b := Load([]uint16{5, 3, 7})

	assert.Equal(t, []uint16{0xFFFF, 0, 0}, a.EqualMask(b).Store())
	assert.Equal(t, []uint16{0, 0, 0xFFFF}, a.LessMask(b).Store())
}

func TestPopcount9AssumesNineBitLanes(t *testing.T) {
	w := Load([]uint16{0b111111111, 0b000000001, 0})
	got := w.Popcount9().Store()
	require.Equal(t, []uint16{9, 1, 0}, got)
}

func TestSetClearExtractInsertBit(t *testing.T) {
	w := Zero[uint32](2)
	w = w.SetBit(1, 5)
	assert.Equal(t, uint32(1<<5), w.Extract(1))

	w = w.ClearBit(1, 5)
	assert.Equal(t, uint32(0), w.Extract(1))

	w = w.Insert(0, 0xDEAD)
	assert.Equal(t, uint32(0xDEAD), w.Extract(0))
}

func TestFirstSetBit(t *testing.T) {
	_, _, ok := Zero[uint8](4).FirstSetBit()
	assert.False(t, ok)

	w := Load([]uint8{0, 0, 0b00100000, 0xFF})
	lane, bit, ok := w.FirstSetBit()
	require.True(t, ok)
	assert.Equal(t, 2, lane)
	assert.Equal(t, 5, bit)
}

func TestRotateLanesByFixedAmounts(t *testing.T) {
	w := Load([]uint32{1, 2, 3, 4})

	assert.Equal(t, []uint32{2, 3, 4, 1}, w.RotateLanes(1).Store())
	assert.Equal(t, []uint32{3, 4, 1, 2}, w.RotateLanes(2).Store())
	assert.Equal(t, []uint32{4, 1, 2, 3}, w.RotateLanes(3).Store())
	assert.Equal(t, w.Store(), w.RotateLanes(4).Store())
	assert.Equal(t, []uint32{4, 1, 2, 3}, w.RotateLanes(-1).Store())
}

func TestRotateSubBlockLeavesOtherLanesUntouched(t *testing.T) {
	w := Load([]uint32{1, 2, 3, 4, 5, 6, 7, 8})
	rotated := w.RotateSubBlock(2, 3, 1)
	assert.Equal(t, []uint32{1, 2, 4, 5, 3, 6, 7, 8}, rotated.Store())
}

func TestLoadDoesNotAliasInput(t *testing.T) {
	src := []uint8{1, 2, 3}
	w := Load(src)
	src[0] = 99
	assert.Equal(t, uint8(1), w.Extract(0))
}
