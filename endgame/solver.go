package endgame

import (
	"sort"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/ninederr"
	"github.com/ninedigits/engine/solutiontable"
	"github.com/rs/zerolog/log"
)

// CheckTimeNodes is how many explored nodes pass between deadline checks.
const CheckTimeNodes = 1024

// Solver runs the negamax AND/OR search over a SolutionTable, backed by a
// shared transposition table across calls.
type Solver struct {
	tt        *Table
	deadline  time.Time
	nodes     uint64
	ttInserts uint64
}

// NewSolver builds a Solver over an existing transposition table.
func NewSolver(tt *Table) *Solver {
	return &Solver{tt: tt}
}

// Nodes returns the number of positions explored during the most recent
// SolveBestEffort/SolveDefinite call.
func (s *Solver) Nodes() uint64 { return s.nodes }

// TTInserts returns the number of transposition-table entries written
// during the most recent SolveBestEffort/SolveDefinite call. A Result's
// Difficulty is the value of this counter at the moment that result was
// proven, so two results can be ranked by how much search it took to reach
// them.
func (s *Solver) TTInserts() uint64 { return s.ttInserts }

// Table returns the solver's transposition table, for callers that want its
// era or hit-rate statistics.
func (s *Solver) Table() *Table { return s.tt }

func (s *Solver) insert(hash uint64, result Result) {
	s.tt.Insert(hash, result)
	s.ttInserts++
}

// SolveBestEffort decides the position represented by t and returns a move,
// always returning something playable even if the deadline passes before
// the search completes. A winning move is returned as soon as it is proven.
// If the deadline passes, it returns the first move whose search completed,
// or else the move whose search was cut off. A bare claim is returned only
// when t is empty, has a single row, or yields no moves.
func (s *Solver) SolveBestEffort(t solutiontable.Table, deadline time.Time) board.FullMove {
	s.tt.NewEra()
	s.deadline = deadline
	s.nodes = 0
	s.ttInserts = 0

	if t.IsEmpty() {
		log.Error().Msg("invalid board: empty solution table")
		return board.BareClaim()
	}
	if t.Len() == 1 {
		return board.BareClaim()
	}

	moveTables := t.MoveTables()
	compressed, compressions := t.Compress(moveTables)
	moves := compressed.GenerateMoves(compressions)
	orderMoves(moves)

	var fallback board.FullMove
	haveFallback := false

	for _, mv := range moves {
		if mv.NumSolutions == 1 {
			return board.MoveAndClaim(compressed.OriginalMove(mv.Move))
		}

		child := compressed.Filter(mv.Move)
		childResult, err := s.solve(child)
		if err != nil {
			if haveFallback {
				return fallback
			}
			return board.PlainMove(compressed.OriginalMove(mv.Move))
		}
		if !childResult.Win {
			return board.PlainMove(compressed.OriginalMove(mv.Move))
		}
		if !haveFallback {
			haveFallback = true
			fallback = board.PlainMove(compressed.OriginalMove(mv.Move))
		}
	}

	if haveFallback {
		return fallback
	}
	return board.BareClaim()
}

// SolveDefinite decides the position exhaustively, never guessing: ok is
// false if the deadline passes before a verdict is reached. This is the
// all-or-nothing sibling of SolveBestEffort, for callers (like an opening
// book search) that need a provable win/loss rather than a playable move.
func (s *Solver) SolveDefinite(t solutiontable.Table, deadline time.Time) (win bool, mov board.FullMove, ok bool) {
	s.tt.NewEra()
	s.deadline = deadline
	s.nodes = 0
	s.ttInserts = 0

	if t.Len() == 1 {
		return true, board.BareClaim(), true
	}

	result, err := s.solve(t)
	if err != nil {
		return false, board.FullMove{}, false
	}
	if !result.Win {
		return false, board.FullMove{}, true
	}
	if result.HasMove {
		return true, board.MoveAndClaim(result.Move), true
	}
	return true, board.FullMove{}, true
}

// solve decides whether the side to move wins from t, returning
// ninederr.Time() if the deadline passes before a verdict is reached.
func (s *Solver) solve(t solutiontable.Table) (Result, error) {
	if t.Len() == 1 {
		return WinUnknownMove(0), nil
	}

	s.nodes++
	if s.nodes%CheckTimeNodes == 0 && !time.Now().Before(s.deadline) {
		return Result{}, ninederr.Time()
	}

	moveTables := t.MoveTables()
	compressed, compressions := t.Compress(moveTables)
	hash := compressed.Hash()

	if cached, ok := s.tt.Find(hash); ok {
		return cached, nil
	}

	moves := compressed.GenerateMoves(compressions)
	orderMoves(moves)

	for _, mv := range moves {
		if mv.NumSolutions == 1 {
			result := WinWithMove(s.ttInserts, compressed.OriginalMove(mv.Move))
			s.insert(hash, result)
			return result, nil
		}

		child := compressed.Filter(mv.Move)
		childResult, err := s.solve(child)
		if err != nil {
			return Result{}, err
		}
		if !childResult.Win {
			result := WinWithMove(s.ttInserts, compressed.OriginalMove(mv.Move))
			s.insert(hash, result)
			return result, nil
		}
	}

	s.insert(hash, Loss)
	return Loss, nil
}

// orderMoves sorts candidates so winning claim-uniques come first, then
// narrower children (fewer remaining solutions, which tend to refute
// faster), with ties broken by (cell, digit).
func orderMoves(moves []solutiontable.EndgameMove) {
	sort.Slice(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		aClaim := a.NumSolutions == 1
		bClaim := b.NumSolutions == 1
		if aClaim != bClaim {
			return aClaim
		}
		if a.NumSolutions != b.NumSolutions {
			return a.NumSolutions < b.NumSolutions
		}
		if a.Move.Cell.Value() != b.Move.Cell.Value() {
			return a.Move.Cell.Value() < b.Move.Cell.Value()
		}
		return a.Move.Digit.Value() < b.Move.Digit.Value()
	})
}
