// Package symmetry implements the board symmetry group (box flip, box
// reordering, row/column reordering within a box, digit relabeling) and
// canonicalization: finding the symmetry that carries an arbitrary board to
// a single, deterministic representative of its symmetry class.
package symmetry

import (
	"strings"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/permutation"
	"github.com/ninedigits/engine/prng"
	"github.com/ninedigits/engine/square"
	"github.com/samber/lo"
)

// Symmetry is a board automorphism, applied by first flipping band/stack
// roles, then permuting bands and stacks, then permuting rows within each
// band and columns within each stack, then relabeling digits.
type Symmetry struct {
	Flip   permutation.Permutation2
	Big    [2]permutation.Permutation3 // [0]: band permutation, [1]: stack permutation
	Small  [2][3]permutation.Permutation3 // Small[0][band]: row permutation within that band; Small[1][stack]: column permutation within that stack
	Digits permutation.Permutation9
}

// Identity is the symmetry that changes nothing.
func Identity() Symmetry {
	return Symmetry{
		Flip:   permutation.Identity2(),
		Big:    [2]permutation.Permutation3{permutation.Identity3(), permutation.Identity3()},
		Small:  [2][3]permutation.Permutation3{{permutation.Identity3(), permutation.Identity3(), permutation.Identity3()}, {permutation.Identity3(), permutation.Identity3(), permutation.Identity3()}},
		Digits: permutation.Identity9(),
	}
}

// Random draws a uniformly random symmetry.
func Random(rng *prng.Generator) Symmetry {
	all2 := permutation.All2()
	all3 := permutation.All3()
	s := Identity()
	s.Flip = all2[rng.Uniform(uint32(len(all2)))]
	s.Big[0] = all3[rng.Uniform(uint32(len(all3)))]
	s.Big[1] = all3[rng.Uniform(uint32(len(all3)))]
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			s.Small[i][j] = all3[rng.Uniform(uint32(len(all3)))]
		}
	}
	digits := permutation.Identity9()
	for i := 1; i < 9; i++ {
		j := int(rng.Uniform(uint32(i + 1)))
		digits = digits.SwapForward(i, j)
	}
	s.Digits = digits
	return s
}

// ForwardCoordDigit maps a (cell, digit) pair through the symmetry.
func (s Symmetry) ForwardCoordDigit(coord square.Coordinates, d digit.Digit) (square.Coordinates, digit.Digit) {
	big := permutation.ThenArray2(s.Flip, [2]int{int(coord.Band.Value()), int(coord.Stack.Value())})
	small := permutation.ThenArray2(s.Flip, [2]int{int(coord.Row.Value()), int(coord.Col.Value())})

	big[0] = s.Big[0].Forward(big[0])
	big[1] = s.Big[1].Forward(big[1])
	small[0] = s.Small[0][big[0]].Forward(small[0])
	small[1] = s.Small[1][big[1]].Forward(small[1])

	newCoord := square.Coordinates{
		Band:  square.NewBand(uint8(big[0])),
		Stack: square.NewStack(uint8(big[1])),
		Row:   square.NewRowInBand(uint8(small[0])),
		Col:   square.NewColInStack(uint8(small[1])),
	}
	newDigit := digit.New(uint8(s.Digits.Forward(int(d.Value()))))
	return newCoord, newDigit
}

// BackwardCoordDigit is the inverse of ForwardCoordDigit.
func (s Symmetry) BackwardCoordDigit(coord square.Coordinates, d digit.Digit) (square.Coordinates, digit.Digit) {
	newDigit := digit.New(uint8(s.Digits.Backward(int(d.Value()))))

	big := [2]int{int(coord.Band.Value()), int(coord.Stack.Value())}
	small := [2]int{int(coord.Row.Value()), int(coord.Col.Value())}

	small[1] = s.Small[1][big[1]].Backward(small[1])
	small[0] = s.Small[0][big[0]].Backward(small[0])
	big[1] = s.Big[1].Backward(big[1])
	big[0] = s.Big[0].Backward(big[0])

	// Flip is its own inverse.
	big = permutation.ThenArray2(s.Flip, big)
	small = permutation.ThenArray2(s.Flip, small)

	newCoord := square.Coordinates{
		Band:  square.NewBand(uint8(big[0])),
		Stack: square.NewStack(uint8(big[1])),
		Row:   square.NewRowInBand(uint8(small[0])),
		Col:   square.NewColInStack(uint8(small[1])),
	}
	return newCoord, newDigit
}

// ForwardMove maps a move through the symmetry.
func (s Symmetry) ForwardMove(m board.Move) board.Move {
	coord, d := s.ForwardCoordDigit(m.Cell.Coordinates(), m.Digit)
	return board.Move{Cell: square.CoordinatesToCell(coord), Digit: d}
}

// BackwardMove is the inverse of ForwardMove.
func (s Symmetry) BackwardMove(m board.Move) board.Move {
	coord, d := s.BackwardCoordDigit(m.Cell.Coordinates(), m.Digit)
	return board.Move{Cell: square.CoordinatesToCell(coord), Digit: d}
}

// ForwardBoard applies the symmetry to every filled square of b.
func (s Symmetry) ForwardBoard(b board.Board) board.Board {
	var out board.Board
	for _, c := range square.AllCells() {
		d, ok := b.Get(c).Digit()
		if !ok {
			continue
		}
		newCoord, newDigit := s.ForwardCoordDigit(c.Coordinates(), d)
		out = out.Set(square.CoordinatesToCell(newCoord), digit.Of(newDigit))
	}
	return out
}

// boxMajorCells iterates cells grouped by box (band, then stack, then row,
// then column within the box) rather than the row-major order AllCells
// uses; square.Cell's flat index already encodes this order.
func boxMajorCells() []square.Cell {
	out := make([]square.Cell, 81)
	for v := uint8(0); v < 81; v++ {
		out[v] = square.NewCell(v)
	}
	return out
}

func boxCounts(b board.Board) [3][3]int {
	var counts [3][3]int
	for _, c := range boxMajorCells() {
		coord := c.Coordinates()
		if _, ok := b.Get(c).Digit(); ok {
			counts[coord.Band.Value()][coord.Stack.Value()]++
		}
	}
	return counts
}

// boxLayout reports, for the box at (band, stack), which of its nine cells
// are filled, indexed [row][col].
func boxLayout(b board.Board, band square.Band, stack square.Stack) [3][3]bool {
	var layout [3][3]bool
	for _, row := range square.AllRowsInBand() {
		for _, col := range square.AllColsInStack() {
			c := square.CoordinatesToCell(square.Coordinates{Band: band, Stack: stack, Row: row, Col: col})
			_, filled := b.Get(c).Digit()
			layout[row.Value()][col.Value()] = filled
		}
	}
	return layout
}

func countsKey(c [3][3]int) uint64 {
	var key uint64
	for _, row := range c {
		for _, v := range row {
			key = key<<4 | uint64(v)
		}
	}
	return key
}

func layoutKey(l [3][3]bool) uint16 {
	var key uint16
	for _, row := range l {
		for _, v := range row {
			key <<= 1
			if v {
				key |= 1
			}
		}
	}
	return key
}

func normalizeDigits(b board.Board) permutation.Permutation9 {
	perm := permutation.Identity9()
	nextDigit := 0
	for _, c := range boxMajorCells() {
		d, ok := b.Get(c).Digit()
		if !ok {
			continue
		}
		if perm.Forward(int(d.Value())) >= nextDigit {
			x := perm.Backward(nextDigit)
			perm = perm.SwapForward(int(d.Value()), x)
			nextDigit++
		}
	}
	return perm
}

type candidate struct {
	board board.Board
	sym   Symmetry
}

// expandPossibilities refines possibilities by trying every symmetry
// expand_symmetry proposes from each current candidate, keeping only the
// boards whose eval key is best according to better(newKey, bestKeySoFar).
func expandPossibilities[T comparable](
	original board.Board,
	possibilities []candidate,
	expandSymmetry func(b board.Board, s Symmetry) []Symmetry,
	eval func(b board.Board) T,
	better func(a, b T) bool,
) []candidate {
	var out []candidate
	seen := map[board.Board]bool{}
	var bestVal T
	haveBest := false

	for _, p := range possibilities {
		for _, sym := range expandSymmetry(p.board, p.sym) {
			newBoard := sym.ForwardBoard(original)
			newVal := eval(newBoard)
			switch {
			case !haveBest || better(newVal, bestVal):
				haveBest = true
				bestVal = newVal
				out = []candidate{{newBoard, sym}}
				seen = map[board.Board]bool{newBoard: true}
			case newVal == bestVal:
				if !seen[newBoard] {
					seen[newBoard] = true
					out = append(out, candidate{newBoard, sym})
				}
			}
		}
	}
	return out
}

// Canonicalize finds a symmetry carrying b to the canonical representative
// of its symmetry class: the same board under every choice of this
// symmetry's parameters always canonicalizes to the same result.
func Canonicalize(b board.Board) (board.Board, Symmetry) {
	possibilities := []candidate{{b, Identity()}}

	all2 := permutation.All2()
	all3 := permutation.All3()

	// Maximize box fill counts by choosing flip and both box permutations.
	possibilities = expandPossibilities(b, possibilities,
		func(_ board.Board, s Symmetry) []Symmetry {
			var out []Symmetry
			for _, flip := range all2 {
				for _, big0 := range all3 {
					for _, big1 := range all3 {
						ns := s
						ns.Flip = flip
						ns.Big = [2]permutation.Permutation3{big0, big1}
						out = append(out, ns)
					}
				}
			}
			return out
		},
		func(b board.Board) uint64 { return countsKey(boxCounts(b)) },
		func(a, bb uint64) bool { return a > bb },
	)

	// Maximize the layout of box (0, 0) by choosing its row and column
	// permutations together.
	possibilities = expandPossibilities(b, possibilities,
		func(_ board.Board, s Symmetry) []Symmetry {
			var out []Symmetry
			for _, small00 := range all3 {
				for _, small10 := range all3 {
					ns := s
					ns.Small[0][0] = small00
					ns.Small[1][0] = small10
					out = append(out, ns)
				}
			}
			return out
		},
		func(b board.Board) uint16 { return layoutKey(boxLayout(b, square.NewBand(0), square.NewStack(0))) },
		func(a, bb uint16) bool { return a > bb },
	)

	for _, stack := range []square.Stack{square.NewStack(1), square.NewStack(2)} {
		possibilities = expandPossibilities(b, possibilities,
			func(_ board.Board, s Symmetry) []Symmetry {
				var out []Symmetry
				for _, small := range all3 {
					ns := s
					ns.Small[1][stack.Value()] = small
					out = append(out, ns)
				}
				return out
			},
			func(b board.Board) uint16 { return layoutKey(boxLayout(b, square.NewBand(0), stack)) },
			func(a, bb uint16) bool { return a > bb },
		)
	}

	for _, band := range []square.Band{square.NewBand(1), square.NewBand(2)} {
		possibilities = expandPossibilities(b, possibilities,
			func(_ board.Board, s Symmetry) []Symmetry {
				var out []Symmetry
				for _, small := range all3 {
					ns := s
					ns.Small[0][band.Value()] = small
					out = append(out, ns)
				}
				return out
			},
			func(b board.Board) [2]uint16 {
				return [2]uint16{
					layoutKey(boxLayout(b, band, square.NewStack(1))),
					layoutKey(boxLayout(b, band, square.NewStack(2))),
				}
			},
			func(a, bb [2]uint16) bool {
				return a[0] > bb[0] || (a[0] == bb[0] && a[1] > bb[1])
			},
		)
	}

	// Minimize the textual board by choosing the digit relabeling.
	possibilities = expandPossibilities(b, possibilities,
		func(b board.Board, s Symmetry) []Symmetry {
			ns := s
			ns.Digits = normalizeDigits(b)
			return []Symmetry{ns}
		},
		func(b board.Board) string { return b.String() },
		func(a, bb string) bool { return strings.Compare(a, bb) < 0 },
	)

	winner := lo.MinBy(possibilities, func(a, bb candidate) bool { return a.board.String() < bb.board.String() })
	return winner.board, winner.sym
}
