// Package solutiontable stores an enumerated set of board completions and
// supports the incremental filter/hash/compression operations the endgame
// solver depends on for transposition-table keying.
//
// The original implementation packs each row into a byte buffer (an 8-byte
// id followed by one byte per active cell) and reads it back through unsafe
// pointer casts. Go has no borrow-checked unsafe-cast idiom for this, and
// the teacher pack never reaches for raw byte packing either, so rows are
// stored as plain structs; the commutative XOR-hash invariant that the
// transposition table relies on is unaffected by the representation.
package solutiontable

import (
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/ninederr"
	"github.com/ninedigits/engine/prng"
	"github.com/ninedigits/engine/solver"
	"github.com/ninedigits/engine/solver/fast"
	"github.com/ninedigits/engine/square"
)

// CheckTimeIters is how many solver steps generate() takes between deadline
// checks, once at least the minimum solution count has been reached.
const CheckTimeIters = 1024

// squareInfo tracks, for one active column of the table, which original
// board cell it came from and which original digit each active digit index
// (0..num_moves) maps back to.
type squareInfo struct {
	originalCell    square.Cell
	numMoves        uint8
	originalDigits  [9]digit.Optional
}

// Solution is one stored completion: an opaque 64-bit id and one digit per
// active cell.
type Solution struct {
	ID     uint64
	Digits []digit.Digit
}

// Table is an enumerated, filterable, compressible set of board completions.
type Table struct {
	squareInfos []squareInfo
	solutions   []Solution
	hash        uint64
}

// Empty is a table over all 81 original cells with no rows.
func Empty() Table {
	infos := make([]squareInfo, 81)
	for i, c := range square.AllCells() {
		var orig [9]digit.Optional
		for _, d := range digit.All() {
			orig[d.Value()] = digit.Of(d)
		}
		infos[i] = squareInfo{originalCell: c, numMoves: 9, originalDigits: orig}
	}
	return Table{squareInfos: infos}
}

func (t Table) Len() int        { return len(t.solutions) }
func (t Table) IsEmpty() bool   { return len(t.solutions) == 0 }
func (t Table) Hash() uint64    { return t.hash }
func (t Table) NumSquares() int { return len(t.squareInfos) }

// NumMoves returns how many distinct digits remain possible at the given
// active-table column.
func (t Table) NumMoves(col int) int { return int(t.squareInfos[col].numMoves) }

// Solutions returns the stored rows. Callers must not mutate the slice.
func (t Table) Solutions() []Solution { return t.solutions }

func (t *Table) append(id uint64, digits []digit.Digit) {
	row := Solution{ID: id, Digits: append([]digit.Digit(nil), digits...)}
	t.solutions = append(t.solutions, row)
	t.hash ^= id
}

// Generate runs the fast solver to enumerate completions of board, assigning
// each a fresh random id. It returns ninederr.Memory() if more than max
// solutions are found (the partial table up to that point is still
// returned), or ninederr.Time() if the deadline passes once at least min
// solutions have been stored.
func Generate(b board.Board, min, max int, deadline time.Time, rng *prng.Generator) (Table, error) {
	table := Empty()
	s := fast.New(b)
	sinceCheck := 0
	for {
		step, filled := s.Step()
		switch step {
		case solver.StepFound:
			if len(table.solutions) >= max {
				return table, ninederr.Memory()
			}
			squares := make([]digit.Digit, 81)
			for _, c := range square.AllCells() {
				squares[c.Value()] = filled.Get(c)
			}
			table.append(rng.Uint64(), squares)
		case solver.StepDone:
			return table, nil
		case solver.StepNoProgress:
		}

		sinceCheck++
		if sinceCheck >= CheckTimeIters && len(table.solutions) >= min {
			sinceCheck = 0
			if !time.Now().Before(deadline) {
				return table, ninederr.Time()
			}
		}
	}
}

// Filter returns the subset of rows whose digit at mov.Cell equals mov.Digit.
// The active-column layout (and so the correctness of reusing precomputed
// move-table hashes) is preserved unchanged.
func (t Table) Filter(mov board.Move) Table {
	col := t.columnOf(mov.Cell)
	out := Table{squareInfos: t.squareInfos}
	for _, sol := range t.solutions {
		if sol.Digits[col] == mov.Digit {
			out.append(sol.ID, sol.Digits)
		}
	}
	return out
}

// ColumnOf returns the active-table column index holding cell's digit. It
// panics if cell is not an active column of this table (e.g. forced away by
// a prior Compress).
func (t Table) ColumnOf(c square.Cell) int { return t.columnOf(c) }

func (t Table) columnOf(c square.Cell) int {
	for i, info := range t.squareInfos {
		if info.originalCell == c {
			return i
		}
	}
	panic("solutiontable: cell not active in this table")
}

// MoveTable is the per-digit solution count and XOR-hash for one active
// column, computed by a single scan of the table.
type MoveTable struct {
	NumSolutions [9]uint32
	Hash         [9]uint64
}

// MoveTables scans the table once, producing one MoveTable per active
// column. Summing (XORing) MoveTables[col].Hash across all nine digits
// reproduces the whole-table hash, which is what lets the transposition
// table key a child position without rescanning it.
func (t Table) MoveTables() []MoveTable {
	tables := make([]MoveTable, len(t.squareInfos))
	for _, sol := range t.solutions {
		for col, d := range sol.Digits {
			tables[col].NumSolutions[d.Value()]++
			tables[col].Hash[d.Value()] ^= sol.ID
		}
	}
	return tables
}

// Compression records, for one pre-compression column, the mapping from its
// original digit values to the renumbered digit values of the compressed
// table (OptionalDigit.None if that digit was eliminated as forced), plus
// the compressed-table's precomputed per-digit solution count and hash.
type Compression struct {
	PrevCol      int
	DigitMap     [9]digit.Optional
	NumSolutions [9]uint32
	Hash         [9]uint64
}

// Compress drops columns where every row agrees (forced cells) and digits
// that never or always occur, renumbering what remains densely. It returns
// the compressed table and, for each surviving column, the Compression
// needed to translate a move on the compressed table back to the original
// board.
func (t Table) Compress(moveTables []MoveTable) (Table, []Compression) {
	if len(moveTables) != len(t.squareInfos) {
		panic("solutiontable: Compress: move table length mismatch")
	}
	total := uint32(t.Len())

	var compressions []Compression
	var newInfos []squareInfo

	for col, info := range t.squareInfos {
		mt := moveTables[col]
		comp := Compression{PrevCol: col}
		for i := range comp.DigitMap {
			comp.DigitMap[i] = digit.None
		}
		newInfo := squareInfo{originalCell: info.originalCell}
		for d := uint8(0); d < info.numMoves; d++ {
			ns := mt.NumSolutions[d]
			if ns != 0 && ns != total {
				newDigit := digit.New(newInfo.numMoves)
				comp.DigitMap[d] = digit.Of(newDigit)
				comp.NumSolutions[newDigit.Value()] = ns
				comp.Hash[newDigit.Value()] = mt.Hash[d]
				newInfo.originalDigits[newDigit.Value()] = digit.Of(digit.New(d))
				newInfo.numMoves++
			}
		}
		if newInfo.numMoves != 0 {
			compressions = append(compressions, comp)
			newInfos = append(newInfos, newInfo)
		}
	}

	out := Table{squareInfos: newInfos}
	compressedDigits := make([]digit.Digit, len(compressions))
	for _, sol := range t.solutions {
		for i, comp := range compressions {
			prevDigit := sol.Digits[comp.PrevCol]
			newDigit, ok := comp.DigitMap[prevDigit.Value()].Digit()
			if !ok {
				panic("solutiontable: Compress: digit map missing previous digit")
			}
			compressedDigits[i] = newDigit
		}
		out.append(sol.ID, compressedDigits)
	}
	return out, compressions
}

// EndgameMove is a candidate move against this (compressed) table, along
// with the size and hash of the sub-table that survives playing it.
type EndgameMove struct {
	Move         board.Move
	NumSolutions uint32
	Hash         uint64
}

// GenerateMoves enumerates every legal move against the compressed table.
func (t Table) GenerateMoves(compressions []Compression) []EndgameMove {
	if len(compressions) != len(t.squareInfos) {
		panic("solutiontable: GenerateMoves: compression length mismatch")
	}
	var moves []EndgameMove
	for col, info := range t.squareInfos {
		comp := compressions[col]
		for d := uint8(0); d < info.numMoves; d++ {
			moves = append(moves, EndgameMove{
				Move:         board.Move{Cell: info.originalCell, Digit: digit.New(d)},
				NumSolutions: comp.NumSolutions[d],
				Hash:         comp.Hash[d],
			})
		}
	}
	return moves
}

// OriginalMove translates a move on this (possibly compressed) table back
// to the corresponding move on the original 81-cell board.
func (t Table) OriginalMove(mov board.Move) board.Move {
	info := t.squareInfos[t.columnOf(mov.Cell)]
	orig, ok := info.originalDigits[mov.Digit.Value()].Digit()
	if !ok {
		panic("solutiontable: OriginalMove: digit not active")
	}
	return board.Move{Cell: info.originalCell, Digit: orig}
}
