package memarena

import (
	"testing"

	"github.com/ninedigits/engine/ninederr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateSliceFillsValueAndShrinksRemaining(t *testing.T) {
	arena := New(1024)
	remaining := arena.Remaining()

	slice, remaining, err := AllocateSlice(remaining, 10, uint8(7))
	require.NoError(t, err)
	require.Len(t, slice, 10)
	for _, v := range slice {
		assert.Equal(t, uint8(7), v)
	}
	assert.Equal(t, uint64(1014), remaining.BytesLeft())
}

func TestAllocateSliceFailsWhenArenaExhausted(t *testing.T) {
	arena := New(8)
	remaining := arena.Remaining()

	_, _, err := AllocateSlice(remaining, 100, uint64(0))
	require.Error(t, err)
	kind, ok := ninederr.IsResourcesExceeded(err)
	require.True(t, ok)
	assert.Equal(t, ninederr.ResourceMemory, kind)
}

func TestSequentialAllocationsShareOneArena(t *testing.T) {
	arena := New(64)
	remaining := arena.Remaining()

	a, remaining, err := AllocateSlice(remaining, 4, int32(1))
	require.NoError(t, err)
	b, remaining, err := AllocateSlice(remaining, 4, int32(2))
	require.NoError(t, err)

	assert.Len(t, a, 4)
	assert.Len(t, b, 4)
	assert.Equal(t, uint64(64-32), remaining.BytesLeft())
}
