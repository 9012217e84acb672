// Package digit implements the bounded Sudoku digit type and the set of
// digits that can occupy a square.
package digit

import (
	"fmt"
	"math/bits"

	"github.com/ninedigits/engine/ninederr"
)

// Digit is a Sudoku digit in range 1..9, stored zero-based internally.
type Digit struct {
	val uint8
}

// New builds a Digit from a zero-based value in 0..8. It panics if val >= 9,
// mirroring the bounds contract of the domain's other Small-like types.
func New(val uint8) Digit {
	if val >= 9 {
		panic(fmt.Sprintf("digit.New: %d out of range", val))
	}
	return Digit{val: val}
}

// All iterates the nine digits in order.
func All() []Digit {
	out := make([]Digit, 9)
	for i := range out {
		out[i] = Digit{val: uint8(i)}
	}
	return out
}

// Value returns the zero-based value in 0..8.
func (d Digit) Value() uint8 { return d.val }

// Char renders the digit as its '1'..'9' character.
func (d Digit) Char() byte { return '1' + d.val }

func (d Digit) String() string { return string(d.Char()) }

// Parse reads a single '1'..'9' character.
func Parse(c byte) (Digit, error) {
	if c < '1' || c > '9' {
		return Digit{}, ninederr.ErrInvalidInput
	}
	return Digit{val: c - '1'}, nil
}

// Optional is a Sudoku digit or the absence of one ("."/"0" in text form).
type Optional struct {
	val uint8 // 0..8 is a digit, 9 is none
}

// None is the empty optional digit.
var None = Optional{val: 9}

// Of lifts a Digit to an Optional.
func Of(d Digit) Optional { return Optional{val: d.val} }

// Digit returns the underlying Digit and true, or the zero Digit and false
// if this Optional is None.
func (o Optional) Digit() (Digit, bool) {
	if o.val == 9 {
		return Digit{}, false
	}
	return Digit{val: o.val}, true
}

func (o Optional) Char() byte {
	if d, ok := o.Digit(); ok {
		return d.Char()
	}
	return '0'
}

func (o Optional) String() string { return string(o.Char()) }

// ParseOptional reads '0', '.', or '1'..'9'.
func ParseOptional(c byte) (Optional, error) {
	if c == '0' || c == '.' {
		return None, nil
	}
	d, err := Parse(c)
	if err != nil {
		return Optional{}, err
	}
	return Of(d), nil
}

// Set is a bitmask over the nine digits.
type Set uint16

const (
	Empty Set = 0
	All9  Set = 0x1ff
)

// Single returns the set containing exactly d.
func Single(d Digit) Set { return Set(1) << d.val }

func (s Set) Insert(d Digit) Set { return s | Single(d) }
func (s Set) Remove(d Digit) Set { return s &^ Single(d) }
func (s Set) Contains(d Digit) bool { return s&Single(d) != 0 }
func (s Set) Count() int { return bits.OnesCount16(uint16(s)) }
func (s Set) IsEmpty() bool { return s == Empty }

// Smallest returns the lowest digit in the set, if any.
func (s Set) Smallest() (Digit, bool) {
	if s == Empty {
		return Digit{}, false
	}
	return Digit{val: uint8(bits.TrailingZeros16(uint16(s)))}, true
}

// Slice returns the digits in the set in ascending order.
func (s Set) Slice() []Digit {
	out := make([]Digit, 0, s.Count())
	for s != Empty {
		d, _ := s.Smallest()
		out = append(out, d)
		s = s.Remove(d)
	}
	return out
}

func (s Set) String() string {
	buf := make([]byte, 0, 9)
	for _, d := range s.Slice() {
		buf = append(buf, d.Char())
	}
	return string(buf)
}
