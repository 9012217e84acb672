// Package basic provides the reference completion enumerator: no heuristics
// beyond fewest-candidate branching, used to cross-check the fast solver's
// output during testing and analysis.
package basic

import (
	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/solver"
	"github.com/ninedigits/engine/square"
)

// Basic is the reference solver.Solver implementation.
type Basic struct {
	engine *solver.Engine
}

// New builds a Basic solver over b's initial assignment.
func New(b board.Board) *Basic {
	return &Basic{engine: solver.NewEngine(b)}
}

func (s *Basic) Step() (solver.Step, board.FilledBoard) {
	return s.engine.Step()
}

func (s *Basic) RemovePossibilities(cell square.Cell, excluded digit.Set) {
	s.engine.RemovePossibilities(cell, excluded)
}
