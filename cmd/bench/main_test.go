package main

import (
	"testing"
	"time"

	"github.com/ninedigits/engine/config"
	"github.com/stretchr/testify/assert"
)

func TestPlayGameTerminatesWithAWinnerAndMoveTimes(t *testing.T) {
	cfg := config.New()
	cfg.Set(config.GameTimeLimit, 200*time.Millisecond)
	cfg.Set(config.SolutionsMax, 200)
	cfg.Set(config.MidgameDefenseSolutionsMax, 200)

	winner, times := playGame(cfg)

	assert.True(t, winner == 0 || winner == 1)
	assert.NotEmpty(t, times)
	for _, d := range times {
		assert.GreaterOrEqual(t, d, 0.0)
	}
}
