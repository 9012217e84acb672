// Package config centralizes the tunable knobs the rest of the engine reads
// at startup: time budgets, solution-table bounds, and transposition-table
// sizing. It is a thin wrapper over viper so every knob can be overridden by
// environment variable or config file without each call site caring which.
package config

import (
	"time"

	"github.com/pbnjay/memory"
	"github.com/spf13/viper"
)

// Key names for every setting this package exposes.
const (
	GameTimeLimit                = "game-time-limit"
	SolutionGenerateTimeFraction = "solution-generate-time-fraction"
	MidgameDefenseTimeFraction   = "midgame-defense-time-fraction"
	EndgameOffenseTimeFraction   = "endgame-offense-time-fraction"
	EndgameDefenseTimeFraction   = "endgame-defense-time-fraction"
	SolutionGenerateCheckIters   = "solution-generate-check-iters"
	SolutionsMin                 = "solutions-min"
	SolutionsMax                 = "solutions-max"
	MidgameRandomizeFraction     = "midgame-randomize-fraction"
	MidgameDefenseSolutionsMax   = "midgame-defense-solutions-max"
	EndgameCheckTimeNodes        = "endgame-check-time-nodes"
	TranspositionTableMemory     = "transposition-table-memory"
)

// Config is a bundle of named settings, backed by viper so values can be
// overridden by environment variables (prefixed NINEDIGITS_) or a config
// file, falling back to the defaults below.
type Config struct {
	v *viper.Viper
}

// New returns a Config seeded with production defaults, transliterated from
// the reference implementation's settings module. TranspositionTableMemory
// defaults to a quarter of detected system RAM capped at 512 MiB, following
// the reference's fixed 512 MiB default but adapting it for machines with
// less memory than that.
func New() *Config {
	v := viper.New()
	v.SetEnvPrefix("ninedigits")
	v.AutomaticEnv()

	v.SetDefault(GameTimeLimit, 29700*time.Millisecond)
	v.SetDefault(SolutionGenerateTimeFraction, 0.1)
	v.SetDefault(MidgameDefenseTimeFraction, 0.1)
	v.SetDefault(EndgameOffenseTimeFraction, 0.1)
	v.SetDefault(EndgameDefenseTimeFraction, 0.1)
	v.SetDefault(SolutionGenerateCheckIters, uint64(1024))
	v.SetDefault(SolutionsMin, 100)
	v.SetDefault(SolutionsMax, 200000)
	v.SetDefault(MidgameRandomizeFraction, 0.9)
	v.SetDefault(MidgameDefenseSolutionsMax, 50000)
	v.SetDefault(EndgameCheckTimeNodes, uint64(1024))
	v.SetDefault(TranspositionTableMemory, defaultTableMemory())

	return &Config{v: v}
}

func defaultTableMemory() uint64 {
	const reference = uint64(512) << 20
	quarterOfRAM := memory.TotalMemory() / 4
	if quarterOfRAM == 0 || quarterOfRAM > reference {
		return reference
	}
	return quarterOfRAM
}

// ReadInConfigFile points viper at a config file (any format it recognizes
// by extension) and loads it, letting its values override the defaults.
func (c *Config) ReadInConfigFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

func (c *Config) GameTimeLimit() time.Duration {
	return c.v.GetDuration(GameTimeLimit)
}

func (c *Config) SolutionGenerateTimeFraction() float64 {
	return c.v.GetFloat64(SolutionGenerateTimeFraction)
}

// EndgameTimeFraction is the combined offense+defense share of the
// remaining time budget handed to the endgame solver in one move.
func (c *Config) EndgameTimeFraction() float64 {
	return c.v.GetFloat64(EndgameOffenseTimeFraction) + c.v.GetFloat64(EndgameDefenseTimeFraction)
}

func (c *Config) MidgameDefenseTimeFraction() float64 {
	return c.v.GetFloat64(MidgameDefenseTimeFraction)
}

func (c *Config) SolutionGenerateCheckIters() uint64 {
	return c.v.GetUint64(SolutionGenerateCheckIters)
}

func (c *Config) SolutionsMin() int { return c.v.GetInt(SolutionsMin) }
func (c *Config) SolutionsMax() int { return c.v.GetInt(SolutionsMax) }

func (c *Config) MidgameRandomizeFraction() float64 {
	return c.v.GetFloat64(MidgameRandomizeFraction)
}

func (c *Config) MidgameDefenseSolutionsMax() int {
	return c.v.GetInt(MidgameDefenseSolutionsMax)
}

func (c *Config) EndgameCheckTimeNodes() uint64 {
	return c.v.GetUint64(EndgameCheckTimeNodes)
}

func (c *Config) TranspositionTableMemory() uint64 {
	return c.v.GetUint64(TranspositionTableMemory)
}

// Set overrides a single key, mainly for tests that want a deterministic
// value without a config file.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}
