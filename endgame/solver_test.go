package endgame

import (
	"testing"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/ninederr"
	"github.com/ninedigits/engine/prng"
	"github.com/ninedigits/engine/solutiontable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveBestEffortOnSingleSolutionBoardClaimsUnique(t *testing.T) {
	// A board with exactly one empty cell has exactly one completion.
	complete := "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
	almost := []byte(complete)
	almost[0] = '0'
	b, err := board.Parse(string(almost))
	require.NoError(t, err)

	tbl, genErr := solutiontable.Generate(b, 0, 100, time.Now().Add(time.Second), prng.NewWithNonce(1))
	require.NoError(t, genErr)
	require.Equal(t, 1, tbl.Len())

	solver := NewSolver(NewTable(1 << 16))
	mov := solver.SolveBestEffort(tbl, time.Now().Add(time.Second))
	assert.True(t, mov.ClaimUnique)
	assert.False(t, mov.HasMove)
}

func TestSolveBestEffortOnEmptyTableClaimsDefensively(t *testing.T) {
	solver := NewSolver(NewTable(1 << 16))
	mov := solver.SolveBestEffort(solutiontable.Empty(), time.Now().Add(time.Second))
	assert.True(t, mov.ClaimUnique)
}

func TestSolveBestEffortReturnsAMoveUnderTinyBudget(t *testing.T) {
	// An empty board has astronomically many completions; generation stops
	// at the cap of 20 with a Memory error and returns the partial table,
	// which is a genuinely branching table.
	tbl, genErr := solutiontable.Generate(board.Empty, 0, 20, time.Now().Add(time.Second), prng.NewWithNonce(2))
	kind, isResources := ninederr.IsResourcesExceeded(genErr)
	require.True(t, isResources)
	require.Equal(t, ninederr.ResourceMemory, kind)
	require.Greater(t, tbl.Len(), 1)

	solver := NewSolver(NewTable(1 << 16))
	// A deadline already in the past forces the search to fall back
	// immediately; it must still return a playable move, never panic.
	mov := solver.SolveBestEffort(tbl, time.Now().Add(-time.Hour))
	assert.True(t, mov.HasMove || mov.ClaimUnique)
}
