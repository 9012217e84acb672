// Package driver composes the solver, solution table, midgame policy, and
// endgame search into the per-move decision a player instance makes under a
// wall-clock budget, grounded on the reference implementation's
// PlayerMain: generate completions while there's a budget for it, hand off
// to the endgame solver once exhaustive, otherwise fall back to the midgame
// policy.
package driver

import (
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/config"
	"github.com/ninedigits/engine/endgame"
	"github.com/ninedigits/engine/midgame"
	"github.com/ninedigits/engine/ninederr"
	"github.com/ninedigits/engine/prng"
	"github.com/ninedigits/engine/solutiontable"
	"github.com/rs/zerolog/log"
)

// Stats is the per-player telemetry surfaced to cmd/console and cmd/bench:
// supplemented beyond spec.md's distilled Player state, grounded on the
// reference tool suite's per-move timing/solution-count log lines.
type Stats struct {
	MovesPlayed           int
	LastSolutionCount     int
	LastMoveLatency       time.Duration
	AllSolutionsGenerated bool

	// EndgameNodes and EndgameTTInserts reflect the endgame solver's most
	// recent call, zero until the first move where all solutions are known.
	EndgameNodes     uint64
	EndgameTTInserts uint64

	// TTEra and TTHitRate are the transposition table's own lifetime
	// counters, surfaced for cmd/console's "stats" command.
	TTEra     uint8
	TTHitRate float64
}

// Player is one side's per-move decision engine. It owns all of its mutable
// state; nothing here is shared across Player instances.
type Player struct {
	cfg *config.Config

	board                 board.Board
	allSolutionsGenerated bool
	solutions             solutiontable.Table
	endgameSolver         *endgame.Solver
	rng                   *prng.Generator

	stats Stats
}

// NewPlayer builds a Player over an empty board with a fresh transposition
// table sized per cfg.
func NewPlayer(cfg *config.Config, rng *prng.Generator) *Player {
	return &Player{
		cfg:           cfg,
		board:         board.Empty,
		solutions:     solutiontable.Empty(),
		endgameSolver: endgame.NewSolver(endgame.NewTable(cfg.TranspositionTableMemory())),
		rng:           rng,
	}
}

// Board returns the player's current view of the board.
func (p *Player) Board() board.Board { return p.board }

// LoadBoard replaces the player's board wholesale and invalidates any
// solution table computed for the old one, for cmd/console's "load" command.
func (p *Player) LoadBoard(bd board.Board) {
	p.board = bd
	p.allSolutionsGenerated = false
	p.solutions = solutiontable.Empty()
}

// Stats returns the player's telemetry snapshot.
func (p *Player) Stats() Stats { return p.stats }

// OpponentMove applies an opponent's move to the board, filtering the
// solution table in place if one has been generated. A move inconsistent
// with the current board is logged and ignored rather than propagated, per
// the never-error-to-the-protocol policy.
func (p *Player) OpponentMove(mov board.Move) {
	p.applyMove(mov)
}

func (p *Player) applyMove(mov board.Move) {
	if _, alreadyFilled := p.board.Get(mov.Cell).Digit(); alreadyFilled {
		log.Error().Stringer("move", mov).Msg("driver: move targets an already-filled cell, ignoring")
		return
	}
	p.board = p.board.Apply(mov)
	if p.allSolutionsGenerated {
		p.solutions = p.solutions.Filter(mov)
		log.Info().Int("solutions", p.solutions.Len()).Msg("driver: solutions filtered")
	} else {
		p.solutions = solutiontable.Empty()
	}
}

// ChooseMove decides this side's move given the wall-clock instant now and
// the time remaining on this side's clock, applying the chosen placement
// (if any) to the board before returning it. It never returns an error to
// the caller: any resource exhaustion during the search degrades to a
// best-effort move, as spec.md §7 requires of the player driver.
func (p *Player) ChooseMove(now time.Time, timeLeft time.Duration) board.FullMove {
	start := now

	if !p.allSolutionsGenerated {
		p.generateSolutions(start, timeLeft)
		elapsed := time.Since(start)
		timeLeft -= elapsed
		start = start.Add(elapsed)
	}

	var mov board.FullMove
	if p.allSolutionsGenerated {
		budget := scaleDuration(timeLeft, p.cfg.EndgameTimeFraction())
		mov = p.endgameSolver.SolveBestEffort(p.solutions, start.Add(budget))
		p.stats.EndgameNodes = p.endgameSolver.Nodes()
		p.stats.EndgameTTInserts = p.endgameSolver.TTInserts()
		p.stats.TTEra = p.endgameSolver.Table().Era()
		p.stats.TTHitRate = p.endgameSolver.Table().HitRate()
	} else {
		mov = p.chooseMidgameMove(start, timeLeft)
	}

	p.stats.MovesPlayed++
	p.stats.LastMoveLatency = time.Since(now)
	p.stats.LastSolutionCount = p.solutions.Len()
	p.stats.AllSolutionsGenerated = p.allSolutionsGenerated

	if mov.HasMove {
		p.applyMove(mov.Move)
	}
	return mov
}

func (p *Player) generateSolutions(start time.Time, timeLeft time.Duration) {
	budget := scaleDuration(timeLeft, p.cfg.SolutionGenerateTimeFraction())
	deadline := start.Add(budget)

	table, err := solutiontable.Generate(p.board, p.cfg.SolutionsMin(), p.cfg.SolutionsMax(), deadline, p.rng)
	p.solutions = table

	if err == nil {
		p.allSolutionsGenerated = true
		log.Info().Int("count", table.Len()).Msg("driver: all solutions generated")
		return
	}
	if kind, ok := ninederr.IsResourcesExceeded(err); ok {
		log.Info().Int("count", table.Len()).Stringer("reason", kind).Msg("driver: partial solutions")
		return
	}
	log.Error().Err(err).Msg("driver: unexpected error generating solutions")
}

func (p *Player) chooseMidgameMove(start time.Time, timeLeft time.Duration) board.FullMove {
	budget := scaleDuration(timeLeft, p.cfg.MidgameDefenseTimeFraction())
	deadline := start.Add(budget)

	newBoard, candidates := midgame.GenerateMoves(p.board, p.solutions, deadline)
	p.board = newBoard

	chosen, ok := midgame.ChooseMove(candidates, p.rng)
	if !ok {
		log.Info().Msg("driver: midgame produced no candidates, claiming unique as a last resort")
		return board.BareClaim()
	}
	return board.PlainMove(chosen.Move)
}

func scaleDuration(d time.Duration, fraction float64) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(float64(d) * fraction)
}
