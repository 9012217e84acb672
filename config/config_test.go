package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsMatchReferenceSettings(t *testing.T) {
	c := New()

	assert.Equal(t, 29700*time.Millisecond, c.GameTimeLimit())
	assert.InDelta(t, 0.1, c.SolutionGenerateTimeFraction(), 1e-9)
	assert.InDelta(t, 0.2, c.EndgameTimeFraction(), 1e-9)
	assert.Equal(t, uint64(1024), c.SolutionGenerateCheckIters())
	assert.Equal(t, 100, c.SolutionsMin())
	assert.Equal(t, 200000, c.SolutionsMax())
	assert.InDelta(t, 0.9, c.MidgameRandomizeFraction(), 1e-9)
	assert.Equal(t, 50000, c.MidgameDefenseSolutionsMax())
	assert.Equal(t, uint64(1024), c.EndgameCheckTimeNodes())
	assert.Greater(t, c.TranspositionTableMemory(), uint64(0))
}

func TestSetOverridesDefault(t *testing.T) {
	c := New()
	c.Set(SolutionsMax, 42)
	assert.Equal(t, 42, c.SolutionsMax())
}

func TestTranspositionTableMemoryNeverExceedsReferenceDefault(t *testing.T) {
	c := New()
	assert.LessOrEqual(t, c.TranspositionTableMemory(), uint64(512)<<20)
}
