package openingbook

import (
	"context"
	"strconv"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/endgame"
	"github.com/ninedigits/engine/prng"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// SearchOptions configures a parallel proof/disproof-number search run.
type SearchOptions struct {
	Threads        int
	TableMemory    uint64
	MinSolutions   int
	MaxSolutions   int
	SolveTimeLimit time.Duration
}

// Run drives Threads worker goroutines over book until the root is proven,
// ctx is cancelled, or every worker has nothing left to select. Each worker
// gets its own endgame transposition table and PRNG stream, matching the
// reference tool's one-solver-per-thread design; book's mutex/condvar is the
// only thing shared across them.
func Run(ctx context.Context, book *Book, opts SearchOptions) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.Threads; i++ {
		nonce := uint64(i)
		g.Go(func() error {
			searchWorker(ctx, book, opts, nonce)
			return nil
		})
	}
	return g.Wait()
}

func searchWorker(ctx context.Context, book *Book, opts SearchOptions, nonce uint64) {
	rng := prng.NewWithNonce(nonce)
	solver := endgame.NewSolver(endgame.NewTable(opts.TableMemory))

	for {
		if ctx.Err() != nil {
			return
		}

		id, bd, ok := selectAndReserve(book)
		if !ok {
			return
		}

		outcome := Solve(bd, opts.MinSolutions, opts.MaxSolutions, time.Now().Add(opts.SolveTimeLimit), solver, rng)
		recordOutcome(book, id, outcome)
	}
}

// selectAndReserve blocks (via the book's condvar) until a leaf is
// selectable, marks it as in-progress with infinite virtual numbers so no
// other worker picks the same leaf, and returns its board. ok is false once
// the book is fully solved and there is nothing left to do.
func selectAndReserve(book *Book) (id int, bd board.Board, ok bool) {
	book.mu.Lock()
	defer book.mu.Unlock()

	for {
		if book.doneLocked() {
			return 0, board.Board{}, false
		}
		leaf, found := book.selectLeaf()
		if found {
			book.nodes[leaf].virtualProofNumber = Infinite
			book.nodes[leaf].virtualDisproofNumber = Infinite
			book.updateAncestors(leaf)
			return leaf, book.nodes[leaf].board, true
		}
		book.cond.Wait()
	}
}

func recordOutcome(book *Book, id int, outcome Outcome) {
	book.mu.Lock()
	defer book.mu.Unlock()

	n := book.nodes[id]
	n.outcome = outcome
	switch {
	case outcome.Loss():
		n.proofNumber, n.disproofNumber = Infinite, Finite(0)
		n.virtualProofNumber, n.virtualDisproofNumber = Infinite, Finite(0)
		book.numSolvedNodes++
	default:
		if _, isWin := outcome.Win(); isWin {
			n.proofNumber, n.disproofNumber = Finite(0), Infinite
			n.virtualProofNumber, n.virtualDisproofNumber = Finite(0), Infinite
			book.numSolvedNodes++
		} else {
			book.expand(id)
			book.updateNode(id)
		}
	}
	book.updateAncestors(id)
	book.cond.Broadcast()
}

// Report logs the book's current size and root verdict, for a periodic
// watchdog goroutine or a final summary once Run returns.
func Report(book *Book) {
	book.mu.Lock()
	defer book.mu.Unlock()

	root := book.nodes[Root]
	event := log.Info().
		Int("nodes", len(book.nodes)).
		Int("solved_nodes", book.numSolvedNodes)
	for size, n := range book.numNodesAtSize {
		if n != 0 {
			event = event.Int("nodes_at_size_"+strconv.Itoa(size), n)
		}
	}
	switch {
	case root.outcome.Loss():
		event.Msg("opening book: root is a loss")
	default:
		if _, isWin := root.outcome.Win(); isWin {
			event.Msg("opening book: root is a win")
		} else {
			event.
				Str("proof", numberString(root.proofNumber)).
				Str("disproof", numberString(root.disproofNumber)).
				Msg("opening book: unsolved")
		}
	}
}

func numberString(n Number) string {
	if n.infinite {
		return "inf"
	}
	return strconv.FormatUint(n.value, 10)
}
