package driver

import (
	"testing"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/config"
	"github.com/ninedigits/engine/prng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseMoveOnNearlySolvedBoardGeneratesSolutionsAndClaimsUnique(t *testing.T) {
	complete := "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
	almost := []byte(complete)
	almost[0] = '0'
	b, err := board.Parse(string(almost))
	require.NoError(t, err)

	cfg := config.New()
	cfg.Set(config.SolutionsMax, 100)
	p := NewPlayer(cfg, prng.NewWithNonce(1))
	p.board = b

	mov := p.ChooseMove(time.Now(), time.Second)

	assert.True(t, p.Stats().AllSolutionsGenerated)
	assert.True(t, mov.ClaimUnique)
	assert.False(t, mov.HasMove)
	assert.Equal(t, 1, p.Stats().MovesPlayed)
}

func TestChooseMoveOnEmptyBoardWithTinyBudgetFallsBackToMidgame(t *testing.T) {
	cfg := config.New()
	cfg.Set(config.SolutionsMax, 20)
	cfg.Set(config.SolutionGenerateTimeFraction, 1.0)
	p := NewPlayer(cfg, prng.NewWithNonce(2))

	mov := p.ChooseMove(time.Now(), 2*time.Second)

	// An empty board under a real generation budget has astronomically many
	// completions, so generation is expected to exhaust its solution cap
	// without proving uniqueness, landing in the midgame branch.
	assert.False(t, p.Stats().AllSolutionsGenerated)
	assert.True(t, mov.HasMove || mov.ClaimUnique)
}

func TestOpponentMoveAppliesPlacementToBoard(t *testing.T) {
	cfg := config.New()
	p := NewPlayer(cfg, prng.NewWithNonce(3))

	mov, err := board.ParseMove("Aa119")
	require.NoError(t, err)
	p.OpponentMove(mov)

	d, ok := p.Board().Get(mov.Cell).Digit()
	require.True(t, ok)
	assert.Equal(t, mov.Digit, d)
}

func TestOpponentMoveOnAlreadyFilledCellIsIgnored(t *testing.T) {
	cfg := config.New()
	p := NewPlayer(cfg, prng.NewWithNonce(4))

	mov, err := board.ParseMove("Aa119")
	require.NoError(t, err)
	p.OpponentMove(mov)
	before := p.Board()

	again, err := board.ParseMove("Aa118")
	require.NoError(t, err)
	p.OpponentMove(again)

	assert.Equal(t, before, p.Board())
}

func TestScaleDurationOnNonPositiveDurationIsZero(t *testing.T) {
	assert.Equal(t, time.Duration(0), scaleDuration(0, 0.5))
	assert.Equal(t, time.Duration(0), scaleDuration(-time.Second, 0.5))
}

func TestScaleDurationScalesProportionally(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, scaleDuration(time.Second, 0.5))
}
