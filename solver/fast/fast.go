// Package fast provides the production completion enumerator used by
// SolutionTable generation and the endgame search. It shares solver/basic's
// branching core but runs a box-line reduction pass before every step: for
// each box, a digit confined to a single row-triad (or column-triad) of
// that box cannot also occupy a cell in that row (or column) of any other
// box, so it is eliminated there before Step decides its next placement or
// branch. This is spec.md §4.1's triad formulation expressed over row/
// column/box digit-sets rather than the reference's unfinished 4x4x9-tile
// layout, built on the simdword lane-rotation primitive it names.
package fast

import (
	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/simdword"
	"github.com/ninedigits/engine/solver"
	"github.com/ninedigits/engine/square"
)

// Fast is the production solver.Solver implementation.
type Fast struct {
	engine *solver.Engine
}

// New builds a Fast solver over b's initial assignment.
func New(b board.Board) *Fast {
	return &Fast{engine: solver.NewEngine(b)}
}

func (s *Fast) Step() (solver.Step, board.FilledBoard) {
	s.engine.ClearTransient()
	reduceBoxLines(s.engine)
	return s.engine.Step()
}

func (s *Fast) RemovePossibilities(cell square.Cell, excluded digit.Set) {
	s.engine.RemovePossibilities(cell, excluded)
}

// reduceBoxLines runs one box-line reduction pass over every box, excluding
// newly-confined digits as it goes so later boxes in the same pass see
// earlier boxes' eliminations too.
func reduceBoxLines(e *solver.Engine) {
	for _, band := range square.AllBands() {
		for _, stack := range square.AllStacks() {
			reduceBox(e, band, stack)
		}
	}
}

// reduceBox narrows the candidates of cells outside box (band, stack): a
// digit present in the box's candidates only within row-triad r cannot be
// placed anywhere else in that box, so it must be placed there, which rules
// it out for the rest of board row band*3+r in every other box. The
// column-triad case is symmetric.
func reduceBox(e *solver.Engine, band square.Band, stack square.Stack) {
	var rowLanes, colLanes [3]digit.Set
	for _, row := range square.AllRowsInBand() {
		for _, col := range square.AllColsInStack() {
			cell := square.CoordinatesToCell(square.Coordinates{Band: band, Stack: stack, Row: row, Col: col})
			if e.IsFilled(cell) {
				continue
			}
			cands := e.Candidates(cell)
			rowLanes[row.Value()] |= cands
			colLanes[col.Value()] |= cands
		}
	}

	rowOnly := tripleExclusive(rowLanes)
	colOnly := tripleExclusive(colLanes)

	for _, row := range square.AllRowsInBand() {
		digits := rowOnly[row.Value()]
		if digits.IsEmpty() {
			continue
		}
		for _, otherStack := range square.AllStacks() {
			if otherStack == stack {
				continue
			}
			for _, col := range square.AllColsInStack() {
				cell := square.CoordinatesToCell(square.Coordinates{Band: band, Stack: otherStack, Row: row, Col: col})
				e.ExcludeTransient(cell, digits)
			}
		}
	}

	for _, col := range square.AllColsInStack() {
		digits := colOnly[col.Value()]
		if digits.IsEmpty() {
			continue
		}
		for _, otherBand := range square.AllBands() {
			if otherBand == band {
				continue
			}
			for _, row := range square.AllRowsInBand() {
				cell := square.CoordinatesToCell(square.Coordinates{Band: otherBand, Stack: stack, Row: row, Col: col})
				e.ExcludeTransient(cell, digits)
			}
		}
	}
}

// tripleExclusive returns, for each of the three lanes, the digits present
// in that lane but absent from the other two: the triad-confinement set
// box-line reduction needs. digit.Set is a plain uint16, so it loads
// directly as a simdword lane; the "which two lanes are not this one" sum
// is built from RotateLanes(1) and RotateLanes(2) rather than indexing
// around i, the rotate-by-word shape spec.md §4.1 calls for.
func tripleExclusive(lanes [3]digit.Set) [3]digit.Set {
	w := simdword.Load(lanes[:])
	others := w.RotateLanes(1).Or(w.RotateLanes(2))
	out := w.AndNot(others).Store()
	return [3]digit.Set{out[0], out[1], out[2]}
}
