// Package endgame implements the AND/OR negamax search that decides whether
// the side to move wins from a SolutionTable, backed by a transposition
// table keyed on the table's commutative XOR hash.
package endgame

import (
	"math/bits"
	"unsafe"

	"github.com/ninedigits/engine/board"
	"github.com/rs/zerolog/log"
)

// Result is a transposition-table value: a proven loss, or a win at some
// difficulty with, optionally, the move that achieves it.
type Result struct {
	Win        bool
	Difficulty uint64
	Move       board.Move
	HasMove    bool
}

// Loss is the result for a position with no winning move.
var Loss = Result{}

// WinWithMove is a proven win via a known move.
func WinWithMove(difficulty uint64, mov board.Move) Result {
	return Result{Win: true, Difficulty: difficulty, Move: mov, HasMove: true}
}

// WinUnknownMove is a proven win where the achieving move was pruned away.
func WinUnknownMove(difficulty uint64) Result {
	return Result{Win: true, Difficulty: difficulty}
}

type entry struct {
	hash   uint64
	era    uint8
	result Result
}

// bucket holds four entries sharing one index; 4-way set associativity
// absorbs hash collisions cheaply without chaining.
type bucket struct {
	entries [4]entry
}

// Table is the negamax search's transposition table: one fixed-size array
// of buckets, addressed by the low bits of a position's XOR hash.
type Table struct {
	buckets   []bucket
	indexMask uint64
	era       uint8

	hits, misses uint64
}

// NewTable allocates a table sized to fit within memoryBytes, rounded up to
// the next power of two bucket count to keep load factor at or below 0.5.
func NewTable(memoryBytes uint64) *Table {
	bucketSize := uint64(unsafe.Sizeof(bucket{}))
	numBuckets := nextPowerOfTwo(memoryBytes/(2*bucketSize) + 1)
	log.Info().Uint64("mib", (numBuckets*bucketSize)>>20).Msg("transposition table")
	return &Table{
		buckets:   make([]bucket, numBuckets),
		indexMask: numBuckets - 1,
		era:       1,
	}
}

func nextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return uint64(1) << bits.Len64(n-1)
}

// NewEra starts a new top-level search, making every entry from the
// previous era preferred for eviction over entries from this one.
func (t *Table) NewEra() {
	t.era++
}

// Find looks up hash, returning its stored result if present.
func (t *Table) Find(hash uint64) (Result, bool) {
	b := &t.buckets[hash&t.indexMask]
	for i := range b.entries {
		if b.entries[i].hash == hash {
			t.hits++
			return b.entries[i].result, true
		}
	}
	t.misses++
	return Result{}, false
}

// Era returns the table's current generation counter, incremented once per
// top-level SolveBestEffort/SolveDefinite call.
func (t *Table) Era() uint8 { return t.era }

// HitRate returns the fraction of Find calls (across this table's lifetime)
// that found a cached result, or 0 if Find has never been called.
func (t *Table) HitRate() float64 {
	total := t.hits + t.misses
	if total == 0 {
		return 0
	}
	return float64(t.hits) / float64(total)
}

// Insert stores result under hash, evicting the bucket slot that neither
// matches hash nor belongs to the current era; a result already present for
// hash is updated in place and never downgraded from a known best move to
// an unknown one.
func (t *Table) Insert(hash uint64, result Result) {
	b := &t.buckets[hash&t.indexMask]

	// Ties go to the last-scanned entry (matching the source's min_by_key,
	// which keeps replacing on ties rather than stopping at the first), so
	// a run of equally-evictable slots drains back-to-front before the
	// search reaches for a slot that's strictly worse to evict.
	best := &b.entries[0]
	bestMismatch, bestStale := replacementKey(best, hash, t.era)
	for i := 1; i < len(b.entries); i++ {
		e := &b.entries[i]
		mismatch, stale := replacementKey(e, hash, t.era)
		if lessOrEqual(mismatch, stale, bestMismatch, bestStale) {
			best = e
			bestMismatch, bestStale = mismatch, stale
		}
	}

	if best.hash == hash {
		best.era = t.era
		if !(result.Win && !result.HasMove) {
			best.result = result
		}
		return
	}
	best.hash = hash
	best.era = t.era
	best.result = result
}

// replacementKey returns (hash mismatch, belongs to current era), the two
// booleans the bucket eviction policy ranks by, both preferring false.
func replacementKey(e *entry, hash uint64, era uint8) (mismatch, current bool) {
	return e.hash != hash, e.era == era
}

// lessOrEqual compares two (mismatch, current) keys lexicographically
// (false sorting before true in each position), treating equal keys as
// satisfying the comparison so the caller's scan settles on the last tied
// candidate.
func lessOrEqual(aMismatch, aCurrent, bMismatch, bCurrent bool) bool {
	if aMismatch != bMismatch {
		return !aMismatch
	}
	if aCurrent != bCurrent {
		return !aCurrent
	}
	return true
}
