package permutation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInverse2(t *testing.T) {
	for _, p := range All2() {
		assert.Equal(t, Identity2(), p.Then(p.Inverse()))
	}
}

func TestInverse3(t *testing.T) {
	for _, p := range All3() {
		assert.Equal(t, Identity3(), p.Then(p.Inverse()))
	}
}

func TestThenArray3(t *testing.T) {
	p := All3()[1] // 0,1,2 -> 0,2,1
	array := [3]int{10, 20, 30}
	assert.Equal(t, [3]int{10, 30, 20}, ThenArray3(p, array))
}

func TestSwapForwardKeepsBackwardConsistent(t *testing.T) {
	p := Identity9()
	p = p.SwapForward(2, 5)
	assert.Equal(t, 5, p.Forward(2))
	assert.Equal(t, 2, p.Forward(5))
	assert.Equal(t, 2, p.Backward(5))
	assert.Equal(t, 5, p.Backward(2))
}
