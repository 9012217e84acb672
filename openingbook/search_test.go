package openingbook

import (
	"context"
	"testing"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOnSingleSolutionRootProvesAnImmediateWin(t *testing.T) {
	// A board with exactly one empty cell has exactly one completion, so the
	// first Solve call proves a win without ever expanding the tree.
	complete := "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
	almost := []byte(complete)
	almost[0] = '0'
	bd, err := board.Parse(string(almost))
	require.NoError(t, err)

	b := NewFromBoard(bd)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runErr := Run(ctx, b, SearchOptions{
		Threads:        1,
		TableMemory:    1 << 16,
		MinSolutions:   0,
		MaxSolutions:   10,
		SolveTimeLimit: time.Second,
	})
	require.NoError(t, runErr)

	_, isWin := b.RootOutcome().Win()
	assert.True(t, isWin)
	assert.Equal(t, 1, b.NumSolvedNodes())
}
