// Package solver defines the shared contract for Sudoku completion
// enumerators: construct from a board, step through completions one at a
// time, and optionally exclude candidate digits before the first step.
package solver

import (
	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/square"
)

// Step is the outcome of one call to Solver.Step.
type Step int

const (
	// StepFound means a new completion was produced.
	StepFound Step = iota
	// StepNoProgress is a benign yield point for cooperative time-checking;
	// the solver made internal progress (or none) but has no new completion.
	StepNoProgress
	// StepDone means every completion has been produced; all further calls
	// return StepDone.
	StepDone
)

// Solver enumerates the completions of a partially-filled board, one per
// Step() call returning StepFound, without ever repeating a completion.
type Solver interface {
	// Step advances the search by one unit of work. When it returns
	// StepFound the second return value holds the new completion.
	Step() (Step, board.FilledBoard)

	// RemovePossibilities excludes digits from a cell's candidates. Valid
	// only before the first call to Step.
	RemovePossibilities(cell square.Cell, excluded digit.Set)
}

// peers returns, for a given cell, the cells sharing its row, column or box.
func peers(c square.Cell) []square.Cell {
	coords := c.Coordinates()
	row := coords.BoardRow()
	col := coords.BoardCol()

	seen := map[uint8]bool{c.Value(): true}
	var out []square.Cell
	for _, other := range square.AllCells() {
		if seen[other.Value()] {
			continue
		}
		oc := other.Coordinates()
		sameRow := oc.BoardRow() == row
		sameCol := oc.BoardCol() == col
		sameBox := oc.Band == coords.Band && oc.Stack == coords.Stack
		if sameRow || sameCol || sameBox {
			seen[other.Value()] = true
			out = append(out, other)
		}
	}
	return out
}
