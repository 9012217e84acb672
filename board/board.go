// Package board implements the 81-square Sudoku board, its filled-board
// variant, and move text parsing/formatting.
package board

import (
	"strings"

	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/ninederr"
	"github.com/ninedigits/engine/square"
)

// Board is a partially-filled 81-square grid.
type Board struct {
	Squares [81]digit.Optional
}

// Empty is the board with no squares filled.
var Empty = Board{}

// Get returns the optional digit at c.
func (b Board) Get(c square.Cell) digit.Optional { return b.Squares[c.Value()] }

// Set returns a copy of b with c set to v.
func (b Board) Set(c square.Cell, v digit.Optional) Board {
	b.Squares[c.Value()] = v
	return b
}

// ToFilled converts a fully-filled Board to a FilledBoard. It reports false
// if any square is still empty.
func (b Board) ToFilled() (FilledBoard, bool) {
	var out FilledBoard
	for _, c := range square.AllCells() {
		d, ok := b.Get(c).Digit()
		if !ok {
			return FilledBoard{}, false
		}
		out.Squares[c.Value()] = d
	}
	return out, true
}

func (b Board) String() string {
	var sb strings.Builder
	for _, c := range square.AllCells() {
		sb.WriteByte(b.Get(c).Char())
	}
	return sb.String()
}

// Parse reads a board from its 81-character text form, row-major.
func Parse(s string) (Board, error) {
	cells := square.AllCells()
	if len(s) != len(cells) {
		return Board{}, ninederr.ErrInvalidInput
	}
	var b Board
	for i, c := range cells {
		od, err := digit.ParseOptional(s[i])
		if err != nil {
			return Board{}, err
		}
		b.Squares[c.Value()] = od
	}
	return b, nil
}

// FilledBoard is a board where every square holds a digit.
type FilledBoard struct {
	Squares [81]digit.Digit
}

func (b FilledBoard) Get(c square.Cell) digit.Digit { return b.Squares[c.Value()] }

func (b FilledBoard) String() string {
	var sb strings.Builder
	for _, c := range square.AllCells() {
		sb.WriteByte(b.Get(c).Char())
	}
	return sb.String()
}

// ToBoard widens a FilledBoard back to a partially-filled Board.
func (b FilledBoard) ToBoard() Board {
	var out Board
	for _, c := range square.AllCells() {
		out.Squares[c.Value()] = digit.Of(b.Get(c))
	}
	return out
}

// ParseFilled reads a filled board from its 81-character text form.
func ParseFilled(s string) (FilledBoard, error) {
	cells := square.AllCells()
	if len(s) != len(cells) {
		return FilledBoard{}, ninederr.ErrInvalidInput
	}
	var b FilledBoard
	for i, c := range cells {
		d, err := digit.Parse(s[i])
		if err != nil {
			return FilledBoard{}, err
		}
		b.Squares[c.Value()] = d
	}
	return b, nil
}
