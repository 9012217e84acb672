package basic

import (
	"testing"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// already-complete board: already-filled puzzles have exactly one valid row
// permutation per band, so a trivial full assignment works for this.
const completeBoard = "123456789" +
	"456789123" +
	"789123456" +
	"214365897" +
	"365897214" +
	"897214365" +
	"531642978" +
	"642978531" +
	"978531642"

func TestAlreadyFilledBoardYieldsExactlyOneFound(t *testing.T) {
	b, err := board.Parse(completeBoard)
	require.NoError(t, err)

	s := New(b)
	found := 0
	for i := 0; i < 10; i++ {
		step, filled := s.Step()
		switch step {
		case solver.StepFound:
			found++
			assert.Equal(t, completeBoard, filled.String())
		case solver.StepDone:
			i = 10
		}
	}
	assert.Equal(t, 1, found)
}

func TestUnsolvableBoardNeverReportsFound(t *testing.T) {
	// two cells in the same row forced to the same digit: no completion exists.
	b, err := board.Parse(
		"110000000" +
			"000000000" +
			"000000000" +
			"000000000" +
			"000000000" +
			"000000000" +
			"000000000" +
			"000000000" +
			"000000000")
	require.NoError(t, err)

	s := New(b)
	for i := 0; i < 200; i++ {
		step, _ := s.Step()
		require.NotEqual(t, solver.StepFound, step)
		if step == solver.StepDone {
			return
		}
	}
	t.Fatal("solver did not terminate within step budget")
}

func TestEmptyBoardProducesManyDistinctCompletions(t *testing.T) {
	s := New(board.Empty)
	seen := map[string]bool{}
	for i := 0; i < 20000 && len(seen) < 3; i++ {
		step, filled := s.Step()
		if step == solver.StepFound {
			str := filled.String()
			assert.False(t, seen[str], "duplicate completion produced")
			seen[str] = true
		}
		if step == solver.StepDone {
			break
		}
	}
	assert.GreaterOrEqual(t, len(seen), 3)
}
