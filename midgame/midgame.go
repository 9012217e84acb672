// Package midgame picks a move when the position has too many completions
// to enumerate exhaustively: it estimates, per (cell, digit), a lower bound
// on how many completions survive that move by mining a partial
// SolutionTable and probing the solver for digits the table never saw.
package midgame

import (
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/ninederr"
	"github.com/ninedigits/engine/prng"
	"github.com/ninedigits/engine/solutiontable"
	"github.com/ninedigits/engine/solver"
	"github.com/ninedigits/engine/solver/fast"
	"github.com/ninedigits/engine/square"
	"github.com/rs/zerolog/log"
)

// Move is a candidate midgame move and the lower bound on the number of
// completions that remain if it's played.
type Move struct {
	Move                   board.Move
	NumSolutionsLowerBound uint32
}

// GenerateMoves mines partial for per-(cell,digit) completion counts,
// probes the solver to fill in any digit the table never witnessed, commits
// any cell left with exactly one possible digit, and returns the resulting
// board alongside every surviving (cell,digit) candidate with its lower
// bound. The returned board may differ from b by zero or more forced moves.
func GenerateMoves(b board.Board, partial solutiontable.Table, deadline time.Time) (board.Board, []Move) {
	cells := square.AllCells()
	var counts [81][9]uint32
	addCompletion := func(squares func(square.Cell) digit.Digit) {
		for _, c := range cells {
			counts[c.Value()][squares(c).Value()]++
		}
	}
	for _, sol := range partial.Solutions() {
		digits := sol.Digits
		addCompletion(func(c square.Cell) digit.Digit {
			return digits[partial.ColumnOf(c)]
		})
	}
	numSolutions := uint32(partial.Len())

	emptyCells := make([]square.Cell, 0, 81)
	for _, c := range cells {
		if _, ok := b.Get(c).Digit(); !ok {
			emptyCells = append(emptyCells, c)
		}
	}

outer:
	for _, c := range emptyCells {
		var possible digit.Set
		for _, d := range digit.All() {
			if counts[c.Value()][d.Value()] != 0 {
				possible = possible.Insert(d)
			}
		}
		for possible != digit.All9 {
			found, filled, err := probeExcept(b, c, possible, deadline)
			if err != nil {
				log.Info().Err(err).Msg("midgame.GenerateMoves: probe stopped early")
				break outer
			}
			if !found {
				break
			}
			numSolutions++
			for _, cc := range cells {
				counts[cc.Value()][filled.Get(cc).Value()]++
			}
			possible = possible.Insert(filled.Get(c))
		}

		firstDigit, ok := possible.Smallest()
		if !ok {
			continue
		}
		possible = possible.Remove(firstDigit)
		if possible.IsEmpty() {
			b = b.Set(c, digit.Of(firstDigit))
		}
	}

	var moves []Move
	for _, c := range cells {
		if _, ok := b.Get(c).Digit(); ok {
			continue
		}
		for _, d := range digit.All() {
			n := counts[c.Value()][d.Value()]
			if n != 0 && n != numSolutions {
				moves = append(moves, Move{
					Move:                   board.Move{Cell: c, Digit: d},
					NumSolutionsLowerBound: n,
				})
			}
		}
	}
	return b, moves
}

// ChooseMove picks among moves, restricting to those whose lower bound is at
// least half the best lower bound present (maximizing remaining freedom
// correlates with avoiding losing commitments in this regime), then
// sampling uniformly among the survivors. It reports false if moves is empty.
func ChooseMove(moves []Move, rng *prng.Generator) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}
	best := uint32(0)
	for _, m := range moves {
		if m.NumSolutionsLowerBound > best {
			best = m.NumSolutionsLowerBound
		}
	}
	threshold := best / 2
	survivors := make([]Move, 0, len(moves))
	for _, m := range moves {
		if m.NumSolutionsLowerBound >= threshold {
			survivors = append(survivors, m)
		}
	}
	return survivors[rng.Uniform(uint32(len(survivors)))], true
}

// probeExcept looks for one completion of b that assigns cell a digit
// outside except, returning it if found.
func probeExcept(b board.Board, cell square.Cell, except digit.Set, deadline time.Time) (bool, board.FilledBoard, error) {
	s := fast.New(b)
	s.RemovePossibilities(cell, except)
	iters := 0
	for {
		iters++
		if iters >= solutiontable.CheckTimeIters {
			iters = 0
			if !time.Now().Before(deadline) {
				return false, board.FilledBoard{}, ninederr.Time()
			}
		}
		step, filled := s.Step()
		switch step {
		case solver.StepFound:
			return true, filled, nil
		case solver.StepDone:
			return false, board.FilledBoard{}, nil
		case solver.StepNoProgress:
		}
	}
}
