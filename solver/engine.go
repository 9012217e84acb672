package solver

import (
	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/square"
)

// snapshot is everything Engine mutates while searching, copied onto the
// backtrack stack before a branch is tried.
type snapshot struct {
	board [81]digit.Optional
	rows  [9]digit.Set
	cols  [9]digit.Set
	boxes [9]digit.Set
}

// choicePoint is a backtrack frame: the snapshot taken just before branching
// on cell, the full candidate list considered there, and how many of them
// have been tried so far.
type choicePoint struct {
	snap    snapshot
	cell    square.Cell
	options []digit.Digit
	next    int
}

// Engine is the shared backtracking core used by both the basic (reference)
// and fast (production) solvers: maintain per-row/column/box availability
// sets, place forced singletons immediately, and branch on the
// fewest-candidate cell otherwise, stopping the scan at the first cell with
// only two candidates (the spec's tie-break early exit). One call to Step
// performs exactly one placement, one branch, or one backtrack, so callers
// get a fine-grained progress signal to check deadlines against.
//
// transient holds per-cell exclusions a solver variant's own propagation
// pass derives fresh from the current board before each Step call (see
// solver/fast's box-line reduction); it narrows Step's view of a cell's
// candidates without touching the authoritative row/column/box sets, so it
// never needs to be restored on backtrack.
type Engine struct {
	snap             snapshot
	excluded         [81]digit.Set
	transient        [81]digit.Set
	stack            []choicePoint
	started          bool
	finished         bool
	pendingBacktrack bool
}

// NewEngine builds an Engine over b's initial assignment.
func NewEngine(b board.Board) *Engine {
	e := &Engine{}
	for i := range e.snap.rows {
		e.snap.rows[i] = digit.All9
		e.snap.cols[i] = digit.All9
		e.snap.boxes[i] = digit.All9
	}
	for _, c := range square.AllCells() {
		e.snap.board[c.Value()] = b.Get(c)
		if d, ok := b.Get(c).Digit(); ok {
			e.occupy(c, d)
		}
	}
	return e
}

func boxIndex(coords square.Coordinates) int {
	return int(coords.Band.Value())*3 + int(coords.Stack.Value())
}

// BoxIndex is boxIndex exported for solver variants (outside this package)
// that need to group cells by box.
func BoxIndex(coords square.Coordinates) int { return boxIndex(coords) }

func (e *Engine) occupy(c square.Cell, d digit.Digit) {
	coords := c.Coordinates()
	row := int(coords.BoardRow())
	col := int(coords.BoardCol())
	box := boxIndex(coords)
	e.snap.rows[row] = e.snap.rows[row].Remove(d)
	e.snap.cols[col] = e.snap.cols[col].Remove(d)
	e.snap.boxes[box] = e.snap.boxes[box].Remove(d)
}

func (e *Engine) unoccupy(c square.Cell, d digit.Digit) {
	coords := c.Coordinates()
	row := int(coords.BoardRow())
	col := int(coords.BoardCol())
	box := boxIndex(coords)
	e.snap.rows[row] = e.snap.rows[row].Insert(d)
	e.snap.cols[col] = e.snap.cols[col].Insert(d)
	e.snap.boxes[box] = e.snap.boxes[box].Insert(d)
}

func (e *Engine) candidates(c square.Cell) digit.Set {
	coords := c.Coordinates()
	row := int(coords.BoardRow())
	col := int(coords.BoardCol())
	box := boxIndex(coords)
	return e.snap.rows[row] & e.snap.cols[col] & e.snap.boxes[box] &^ e.excluded[c.Value()] &^ e.transient[c.Value()]
}

// Candidates returns cell c's current candidate set: the same view Step
// uses to decide forced placements and branch targets.
func (e *Engine) Candidates(c square.Cell) digit.Set { return e.candidates(c) }

// IsFilled reports whether c already holds a digit. A solver variant's
// propagation pass must skip filled cells when accumulating candidate sets
// across a row or column: a filled cell's leftover row/column/box
// availability reflects digits other unsolved cells may still need, not
// digits placeable at c itself, and folding it in would overcount what a
// line can hold.
func (e *Engine) IsFilled(c square.Cell) bool {
	_, ok := e.snap.board[c.Value()].Digit()
	return ok
}

// ClearTransient discards any transient exclusions left over from a
// previous Step call. A solver variant's propagation pass calls this before
// recomputing its eliminations from the current board state.
func (e *Engine) ClearTransient() {
	for i := range e.transient {
		e.transient[i] = digit.Empty
	}
}

// ExcludeTransient layers an extra, one-step candidate exclusion onto cell
// c on top of the permanent row/column/box/excluded constraints, for a
// solver variant's propagation pass to narrow Step's branching.
func (e *Engine) ExcludeTransient(c square.Cell, excluded digit.Set) {
	e.transient[c.Value()] |= excluded
}

// RemovePossibilities excludes digits from a cell's candidates. Valid only
// before the first call to Step.
func (e *Engine) RemovePossibilities(c square.Cell, excluded digit.Set) {
	if e.started {
		panic("solver: RemovePossibilities called after Step")
	}
	e.excluded[c.Value()] = e.excluded[c.Value()] | excluded
}

func (e *Engine) place(c square.Cell, d digit.Digit) {
	e.snap.board[c.Value()] = digit.Of(d)
	e.occupy(c, d)
}

func (e *Engine) isFull() bool {
	for _, c := range square.AllCells() {
		if _, ok := e.snap.board[c.Value()].Digit(); !ok {
			return false
		}
	}
	return true
}

func (e *Engine) filledBoard() board.FilledBoard {
	var fb board.FilledBoard
	for _, c := range square.AllCells() {
		d, _ := e.snap.board[c.Value()].Digit()
		fb.Squares[c.Value()] = d
	}
	return fb
}

// backtrack pops choice points until one has an untried candidate, placing
// it and pushing the frame back; returns false if the search is exhausted.
func (e *Engine) backtrack() bool {
	for len(e.stack) > 0 {
		top := &e.stack[len(e.stack)-1]
		if top.next >= len(top.options) {
			e.stack = e.stack[:len(e.stack)-1]
			continue
		}
		e.snap = top.snap
		d := top.options[top.next]
		top.next++
		e.place(top.cell, d)
		return true
	}
	return false
}

// Step performs one unit of search: a forced placement, a new branch, or a
// single backtrack step. It returns StepFound with the completion exactly
// once per distinct completion, StepNoProgress for every other unit of
// work, and StepDone forever once the search is exhausted.
func (e *Engine) Step() (Step, board.FilledBoard) {
	e.started = true
	if e.finished {
		return StepDone, board.FilledBoard{}
	}

	if e.pendingBacktrack {
		e.pendingBacktrack = false
		if !e.backtrack() {
			e.finished = true
			return StepDone, board.FilledBoard{}
		}
		return StepNoProgress, board.FilledBoard{}
	}

	type cellCandidates struct {
		cell  square.Cell
		cands digit.Set
	}
	var unsolved []cellCandidates
	for _, c := range square.AllCells() {
		if _, ok := e.snap.board[c.Value()].Digit(); ok {
			continue
		}
		unsolved = append(unsolved, cellCandidates{cell: c, cands: e.candidates(c)})
	}

	if len(unsolved) == 0 {
		e.pendingBacktrack = true
		return StepFound, e.filledBoard()
	}

	for _, uc := range unsolved {
		if uc.cands.IsEmpty() {
			if !e.backtrack() {
				e.finished = true
				return StepDone, board.FilledBoard{}
			}
			return StepNoProgress, board.FilledBoard{}
		}
	}

	for _, uc := range unsolved {
		if uc.cands.Count() == 1 {
			d, _ := uc.cands.Smallest()
			e.place(uc.cell, d)
			if e.isFull() {
				e.pendingBacktrack = true
				return StepFound, e.filledBoard()
			}
			return StepNoProgress, board.FilledBoard{}
		}
	}

	best := unsolved[0]
	for _, uc := range unsolved[1:] {
		if uc.cands.Count() < best.cands.Count() {
			best = uc
		}
		if best.cands.Count() == 2 {
			break
		}
	}

	cp := choicePoint{snap: e.snap, cell: best.cell, options: best.cands.Slice()}
	d := cp.options[0]
	cp.next = 1
	e.stack = append(e.stack, cp)
	e.place(best.cell, d)
	return StepNoProgress, board.FilledBoard{}
}
