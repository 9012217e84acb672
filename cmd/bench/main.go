// Command bench runs repeated self-play games between two in-process
// Player instances and reports win counts and move-time statistics,
// grounded on the reference tool suite's self_play and solver_benchmark
// binaries: the former's alternating-turn, saturating-time-budget game
// loop, the latter's per-run summary line of aggregate counts and timing.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/ninedigits/engine/config"
	"github.com/ninedigits/engine/driver"
	"github.com/ninedigits/engine/prng"
	"gonum.org/v1/gonum/stat"
)

func main() {
	games := flag.Int("games", 10, "number of self-play games to run")
	flag.Parse()

	cfg := config.New()
	var wins [2]int
	var moveTimes []float64

	for i := 0; i < *games; i++ {
		winner, times := playGame(cfg)
		wins[winner]++
		moveTimes = append(moveTimes, times...)
	}

	mean, stddev := stat.MeanStdDev(moveTimes, nil)
	fmt.Printf("Wins: %d : %d\n", wins[0], wins[1])
	fmt.Printf("Moves: %d  avg time: %s  stddev: %s\n",
		len(moveTimes), time.Duration(mean), time.Duration(stddev))
}

// playGame runs one self-play game to completion, returning the winning
// side's index (0 or 1) and every move's wall-clock latency in nanoseconds,
// following the reference's play_game: alternating turns, a time_left clock
// per side decremented by measured elapsed time, ending the instant either
// side's chosen move claims uniqueness.
func playGame(cfg *config.Config) (winner int, moveTimesNanos []float64) {
	players := [2]*driver.Player{
		driver.NewPlayer(cfg, prng.NewWithTimeNonce()),
		driver.NewPlayer(cfg, prng.NewWithTimeNonce()),
	}
	timeLeft := [2]time.Duration{cfg.GameTimeLimit(), cfg.GameTimeLimit()}

	turn := 0
	for {
		start := time.Now()
		fm := players[turn].ChooseMove(start, timeLeft[turn])
		elapsed := time.Since(start)
		moveTimesNanos = append(moveTimesNanos, float64(elapsed))

		if elapsed < timeLeft[turn] {
			timeLeft[turn] -= elapsed
		} else {
			timeLeft[turn] = 0
		}

		if fm.ClaimUnique {
			return turn, moveTimesNanos
		}

		opponent := 1 - turn
		players[opponent].OpponentMove(fm.Move)
		turn = opponent
	}
}
