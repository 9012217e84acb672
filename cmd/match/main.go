// Command match runs one side of the line-oriented stdin/stdout match
// protocol: it reads "Start", a FullMove, or "Quit" one line at a time and
// writes back the chosen FullMove, tracking a single game-total time budget
// the way a tournament harness would pipe two instances of this binary
// against each other.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/config"
	"github.com/ninedigits/engine/driver"
	"github.com/ninedigits/engine/prng"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "optional config file (any format viper recognizes)")
	verbosity := flag.String("log", "info", "log level: debug, info, warn, error")
	flag.Parse()

	level, err := zerolog.ParseLevel(*verbosity)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.New()
	if *configPath != "" {
		if err := cfg.ReadInConfigFile(*configPath); err != nil {
			log.Error().Err(err).Msg("match: failed to read config file")
		}
	}

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("match: protocol violation")
		os.Exit(1)
	}
}

func run(cfg *config.Config, in *os.File, out *os.File) error {
	player := driver.NewPlayer(cfg, prng.NewWithTimeNonce())
	timeLeft := cfg.GameTimeLimit()

	scanner := bufio.NewScanner(in)
	writer := bufio.NewWriter(out)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "Quit":
			return nil
		case line == "Start":
			if err := respond(player, &timeLeft, writer); err != nil {
				return err
			}
		default:
			fm, parseErr := board.ParseFullMove(line)
			if parseErr != nil {
				return fmt.Errorf("unrecognized protocol line %q: %w", line, parseErr)
			}
			if fm.HasMove {
				player.OpponentMove(fm.Move)
			}
			if fm.ClaimUnique {
				return nil
			}
			if err := respond(player, &timeLeft, writer); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

func respond(player *driver.Player, timeLeft *time.Duration, writer *bufio.Writer) error {
	start := time.Now()
	mov := player.ChooseMove(start, *timeLeft)
	*timeLeft -= time.Since(start)

	stats := player.Stats()
	log.Debug().
		Dur("latency", stats.LastMoveLatency).
		Int("solutions", stats.LastSolutionCount).
		Bool("exhaustive", stats.AllSolutionsGenerated).
		Msg("match: move chosen")

	if _, err := fmt.Fprintln(writer, mov.String()); err != nil {
		return err
	}
	return writer.Flush()
}
