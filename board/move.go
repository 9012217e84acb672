package board

import (
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/ninederr"
	"github.com/ninedigits/engine/square"
)

// Move is a single placement: a digit claimed for a cell.
type Move struct {
	Cell  square.Cell
	Digit digit.Digit
}

// FullMove is everything a turn can say: a placement, a placement plus an
// unconditional claim that it leaves exactly one completion, or a bare claim.
type FullMove struct {
	Move         Move
	HasMove      bool
	ClaimUnique  bool
}

// PlainMove wraps a placement with no claim.
func PlainMove(m Move) FullMove { return FullMove{Move: m, HasMove: true} }

// MoveAndClaim wraps a placement with a uniqueness claim.
func MoveAndClaim(m Move) FullMove { return FullMove{Move: m, HasMove: true, ClaimUnique: true} }

// BareClaim is the unconditional claim with no placement.
func BareClaim() FullMove { return FullMove{ClaimUnique: true} }

// String formats a move as <band A-C><stack a-c><row-in-band 1-3><col-in-stack 1-3><digit 1-9>.
func (m Move) String() string {
	coords := m.Cell.Coordinates()
	buf := make([]byte, 5)
	buf[0] = 'A' + coords.Band.Value()
	buf[1] = 'a' + coords.Stack.Value()
	buf[2] = '1' + coords.Row.Value()
	buf[3] = '1' + coords.Col.Value()
	buf[4] = m.Digit.Char()
	return string(buf)
}

// ParseMove reads the fixed five-character move grammar: band letter (A-C),
// stack letter (a-c), row-in-band (1-3), col-in-stack (1-3), digit (1-9).
func ParseMove(s string) (Move, error) {
	if len(s) != 5 {
		return Move{}, ninederr.ErrInvalidInput
	}
	if s[0] < 'A' || s[0] > 'C' {
		return Move{}, ninederr.ErrInvalidInput
	}
	if s[1] < 'a' || s[1] > 'c' {
		return Move{}, ninederr.ErrInvalidInput
	}
	if s[2] < '1' || s[2] > '3' {
		return Move{}, ninederr.ErrInvalidInput
	}
	if s[3] < '1' || s[3] > '3' {
		return Move{}, ninederr.ErrInvalidInput
	}
	d, err := digit.Parse(s[4])
	if err != nil {
		return Move{}, err
	}
	coords := square.Coordinates{
		Band:  square.NewBand(s[0] - 'A'),
		Stack: square.NewStack(s[1] - 'a'),
		Row:   square.NewRowInBand(s[2] - '1'),
		Col:   square.NewColInStack(s[3] - '1'),
	}
	return Move{Cell: square.CoordinatesToCell(coords), Digit: d}, nil
}

// String formats a FullMove as <move>, <move>!, or the bare !.
func (fm FullMove) String() string {
	switch {
	case !fm.HasMove && fm.ClaimUnique:
		return "!"
	case fm.HasMove && fm.ClaimUnique:
		return fm.Move.String() + "!"
	case fm.HasMove:
		return fm.Move.String()
	default:
		return "!"
	}
}

// ParseFullMove reads a FullMove: a move, a move with trailing !, or a bare !.
func ParseFullMove(s string) (FullMove, error) {
	if s == "!" {
		return BareClaim(), nil
	}
	claim := false
	body := s
	if len(s) > 0 && s[len(s)-1] == '!' {
		claim = true
		body = s[:len(s)-1]
	}
	m, err := ParseMove(body)
	if err != nil {
		return FullMove{}, err
	}
	if claim {
		return MoveAndClaim(m), nil
	}
	return PlainMove(m), nil
}

// Apply places m's digit at m's cell, returning the resulting board. It does
// not validate legality (that the board had the cell empty, or that the move
// is consistent with any completion) — callers that need legality should
// check against a solution table first.
func (b Board) Apply(m Move) Board {
	return b.Set(m.Cell, digit.Of(m.Digit))
}
