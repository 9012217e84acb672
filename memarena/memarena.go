// Package memarena implements a fixed byte budget from which typed slices
// are allocated, failing with a Memory error once the budget is spent. It
// reserves no backing memory: each slice is its own GC-tracked make
// allocation, and only its size is charged against the budget.
package memarena

import (
	"unsafe"

	"github.com/ninedigits/engine/ninederr"
	"github.com/rs/zerolog/log"
)

// Arena is a byte budget of fixed size; it holds no memory of its own.
type Arena struct {
	capacity uint64
}

// New creates an arena with a budget of sizeBytes bytes. It allocates no
// backing memory.
func New(sizeBytes uint64) *Arena {
	log.Info().Uint64("mb", sizeBytes>>20).Msg("allocating arena")
	return &Arena{capacity: sizeBytes}
}

// Remaining returns the unconsumed portion of the arena, to be carved up
// with AllocateSlice.
func (a *Arena) Remaining() Remaining {
	return Remaining{bytesLeft: a.capacity}
}

// Remaining tracks how many bytes of an Arena are left to allocate from.
type Remaining struct {
	bytesLeft uint64
}

// BytesLeft reports how much of the arena is unconsumed.
func (r Remaining) BytesLeft() uint64 { return r.bytesLeft }

// AllocateSlice makes an n-element slice of T, each initialized to val,
// charges n*sizeof(T) bytes against r, and returns the slice and the budget
// left after the charge. It returns ninederr.Memory() if r has fewer than
// n*sizeof(T) bytes left. The slice is a fresh make allocation, not a view
// into memory shared with other slices.
func AllocateSlice[T any](r Remaining, n int, val T) ([]T, Remaining, error) {
	var zero T
	size := uint64(n) * uint64(unsafe.Sizeof(zero))
	if r.bytesLeft < size {
		return nil, Remaining{}, ninederr.Memory()
	}
	out := make([]T, n)
	for i := range out {
		out[i] = val
	}
	return out, Remaining{bytesLeft: r.bytesLeft - size}, nil
}
