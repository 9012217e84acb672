package fast

import (
	"testing"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/solver"
	"github.com/ninedigits/engine/solver/basic"
	"github.com/ninedigits/engine/square"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

// collectCompletions runs a solver.Solver to exhaustion, up to a bounded
// number of steps, returning every distinct completion text it produced.
func collectCompletions(t *testing.T, s solver.Solver, maxSteps, maxFound int) []string {
	t.Helper()
	var out []string
	for i := 0; i < maxSteps && len(out) < maxFound; i++ {
		step, filled := s.Step()
		if step == solver.StepFound {
			out = append(out, filled.String())
		}
		if step == solver.StepDone {
			break
		}
	}
	return out
}

// TestAgreesWithBasicSolver checks the fast and basic solvers enumerate the
// same set of completions for a puzzle with a unique solution, even though
// fast runs box-line reduction before each step and basic does not.
func TestAgreesWithBasicSolver(t *testing.T) {
	b, err := board.Parse(
		"53..7...." +
			"6..195..." +
			".98....6." +
			"8...6...3" +
			"4..8.3..1" +
			"7...2...6" +
			".6....28." +
			"...419..5" +
			"....8..79")
	require.NoError(t, err)

	fastCompletions := collectCompletions(t, New(b), 100000, 2)
	require.Len(t, fastCompletions, 1)

	basicCompletions := collectCompletions(t, basic.New(b), 100000, 2)
	require.Len(t, basicCompletions, 1)

	assert.Equal(t, basicCompletions[0], fastCompletions[0])
}

// TestBoxLineReductionExcludesConfinedDigit sets up a box where rows 1 and 2
// are fully occupied by digits 1..6, leaving 9 a candidate only in row 0's
// three cells within the box. Box-line reduction must conclude 9 has to land
// in that box's row-0 segment and strike it from row 0 elsewhere in the
// band, even though nothing else on the board has touched that cell yet.
func TestBoxLineReductionExcludesConfinedDigit(t *testing.T) {
	b, err := board.Parse(
		"........." +
			"123......" +
			"456......" +
			"........." +
			"........." +
			"........." +
			"........." +
			"........." +
			".........")
	require.NoError(t, err)

	target := square.CoordinatesToCell(square.Coordinates{
		Band:  square.NewBand(0),
		Stack: square.NewStack(1),
		Row:   square.NewRowInBand(0),
		Col:   square.NewColInStack(0),
	})

	nine, err := digit.Parse('9')
	require.NoError(t, err)

	s := New(b)
	before := s.engine.Candidates(target)
	require.True(t, before.Contains(nine))

	s.engine.ClearTransient()
	reduceBoxLines(s.engine)
	after := s.engine.Candidates(target)
	assert.False(t, after.Contains(nine), "box-line reduction should have struck 9 from row 0 outside the confining box")
}

func TestTripleExclusiveIsolatesDigitsUniqueToOneLane(t *testing.T) {
	one, _ := digit.Parse('1')
	two, _ := digit.Parse('2')
	three, _ := digit.Parse('3')

	lanes := [3]digit.Set{
		digit.Single(one).Insert(two), // 1,2
		digit.Single(two),             // 2
		digit.Single(three),           // 3
	}

	out := tripleExclusive(lanes)

	assert.True(t, out[0].Contains(one), "1 appears only in lane 0")
	assert.False(t, out[0].Contains(two), "2 appears in lanes 0 and 1, not exclusive")
	assert.True(t, out[1].IsEmpty())
	assert.True(t, out[2].Contains(three), "3 appears only in lane 2")
}
