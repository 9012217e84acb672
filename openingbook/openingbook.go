// Package openingbook builds a proof/disproof-number search tree over opening
// positions, deciding game-theoretic win/loss outcomes for the root and every
// position reachable from it under the midgame policy's move generation.
// Multiple worker goroutines share one Book behind a mutex/condvar pair,
// mirroring the reference opening-book tool's thread pool.
package openingbook

import (
	"sync"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/endgame"
	"github.com/ninedigits/engine/midgame"
	"github.com/ninedigits/engine/prng"
	"github.com/ninedigits/engine/solutiontable"
	"github.com/ninedigits/engine/symmetry"
)

// Root is the index of the node for the board the Book was built from
// (the empty board for New), always present.
const Root = 0

// outcomeKind is a node's proven status.
type outcomeKind int

const (
	outcomeUnknown outcomeKind = iota
	outcomeWin
	outcomeLoss
)

// Outcome is a proven (or not yet proven) result for a node: a win names the
// move that achieves it, a loss and unknown carry no move.
type Outcome struct {
	kind outcomeKind
	move board.Move
}

// Unknown reports whether the node's outcome has not yet been proven.
func (o Outcome) Unknown() bool { return o.kind == outcomeUnknown }

// Win reports whether the side to move wins, and if so, the move to play.
func (o Outcome) Win() (board.Move, bool) { return o.move, o.kind == outcomeWin }

// Loss reports whether the side to move loses no matter what it plays.
func (o Outcome) Loss() bool { return o.kind == outcomeLoss }

func winOutcome(mov board.Move) Outcome { return Outcome{kind: outcomeWin, move: mov} }

var lossOutcome = Outcome{kind: outcomeLoss}

// Number is a proof or disproof number: a non-negative count, or infinity
// (an unreachable/disproven bound). It saturates rather than overflowing,
// since these counts track bounded game trees in practice.
type Number struct {
	value    uint64
	infinite bool
}

// Finite builds a finite Number.
func Finite(n uint64) Number { return Number{value: n} }

// Infinite is the unbounded Number.
var Infinite = Number{infinite: true}

// Add combines two proof/disproof numbers, the way siblings accumulate a
// disproof (or proof) number across an AND node's children.
func (n Number) Add(m Number) Number {
	if n.infinite || m.infinite {
		return Infinite
	}
	sum := n.value + m.value
	if sum < n.value {
		return Infinite
	}
	return Finite(sum)
}

// Min returns the smaller of two Numbers, infinity sorting last.
func (n Number) Min(m Number) Number {
	if n.infinite {
		return m
	}
	if m.infinite {
		return n
	}
	if m.value < n.value {
		return m
	}
	return n
}

// Less reports whether n is strictly smaller than m, infinity sorting last.
func (n Number) Less(m Number) bool {
	if n.infinite {
		return false
	}
	if m.infinite {
		return true
	}
	return n.value < m.value
}

type edge struct {
	from, to int
	move     board.Move
}

type node struct {
	board                        board.Board
	outcome                      Outcome
	forwardEdges, backwardEdges  []edge
	proofNumber, disproofNumber  Number
	virtualProofNumber           Number
	virtualDisproofNumber        Number
}

func newNode(b board.Board) *node {
	return &node{
		board:                 b,
		proofNumber:           Finite(1),
		disproofNumber:        Finite(1),
		virtualProofNumber:    Finite(1),
		virtualDisproofNumber: Finite(1),
	}
}

// Book is the shared proof/disproof-number search tree. All exported methods
// are safe for concurrent use; callers that need to read multiple fields
// consistently should take WithLock.
type Book struct {
	mu         sync.Mutex
	cond       *sync.Cond
	nodes      []*node
	nodeLookup map[board.Board]int

	numSolvedNodes int
	numNodesAtSize [82]int
}

// New builds a Book with only the empty-board root node.
func New() *Book { return NewFromBoard(board.Empty) }

// NewFromBoard builds a Book rooted at bd, for analyzing or resuming a
// search from an arbitrary starting position rather than the opening.
func NewFromBoard(bd board.Board) *Book {
	b := &Book{nodeLookup: make(map[board.Board]int)}
	b.cond = sync.NewCond(&b.mu)
	id := b.addNodeLocked(bd)
	if id != Root {
		panic("openingbook: root node did not get index 0")
	}
	return b
}

// WithLock runs fn with the book's mutex held, for callers (reporting,
// snapshotting) that need a consistent multi-field read.
func (b *Book) WithLock(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

func (b *Book) addNodeLocked(bd board.Board) int {
	if id, ok := b.nodeLookup[bd]; ok {
		return id
	}
	id := len(b.nodes)
	b.nodes = append(b.nodes, newNode(bd))
	b.nodeLookup[bd] = id
	b.numNodesAtSize[81-emptySquares(bd)]++
	return id
}

func emptySquares(bd board.Board) int {
	n := 0
	for _, sq := range bd.Squares {
		if _, ok := sq.Digit(); !ok {
			n++
		}
	}
	return n
}

// doneLocked reports whether the root's outcome has been proven. Caller must hold
// the lock (or call via WithLock).
func (b *Book) doneLocked() bool {
	return !b.nodes[Root].outcome.Unknown()
}

// NumNodes returns the number of nodes currently in the tree.
func (b *Book) NumNodes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.nodes)
}

// NumSolvedNodes returns the number of nodes with a proven outcome.
func (b *Book) NumSolvedNodes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.numSolvedNodes
}

// NumNodesAtSize returns how many nodes have exactly numFilled filled cells.
func (b *Book) NumNodesAtSize(numFilled int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.numNodesAtSize[numFilled]
}

// RootOutcome returns the proven (or not yet proven) outcome at the root.
func (b *Book) RootOutcome() Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nodes[Root].outcome
}

// RootProofDisproof returns the root's current proof and disproof numbers.
func (b *Book) RootProofDisproof() (Number, Number) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nodes[Root].proofNumber, b.nodes[Root].disproofNumber
}

// selectLeaf walks from the root toward the most-proving leaf, following the
// child with the smallest virtual disproof number at each step. Returns
// false if the root is itself fully proven or provably unexplorable.
func (b *Book) selectLeaf() (int, bool) {
	root := b.nodes[Root]
	if root.virtualProofNumber.infinite || root.virtualDisproofNumber.infinite || !root.outcome.Unknown() {
		return 0, false
	}
	id := Root
	for len(b.nodes[id].forwardEdges) > 0 {
		edges := b.nodes[id].forwardEdges
		best := edges[0]
		bestVDN := b.nodes[best.to].virtualDisproofNumber
		for _, e := range edges[1:] {
			vdn := b.nodes[e.to].virtualDisproofNumber
			if vdn.Less(bestVDN) {
				best, bestVDN = e, vdn
			}
		}
		id = best.to
	}
	return id, true
}

func (b *Book) updateNode(id int) {
	n := b.nodes[id]
	outcome := lossOutcome
	pn, dn := Infinite, Finite(0)
	vpn, vdn := Infinite, Finite(0)
	seen := make(map[int]bool, len(n.forwardEdges))

	for _, e := range n.forwardEdges {
		if seen[e.to] {
			continue
		}
		seen[e.to] = true
		child := b.nodes[e.to]
		switch {
		case child.outcome.Loss():
			if _, isWin := outcome.Win(); !isWin {
				outcome = winOutcome(e.move)
			}
		case child.outcome.Unknown():
			if outcome.Loss() {
				outcome = Outcome{}
			}
		}
		pn = pn.Min(child.disproofNumber)
		dn = dn.Add(child.proofNumber)
		vpn = vpn.Min(child.virtualDisproofNumber)
		vdn = vdn.Add(child.virtualProofNumber)
	}

	n.outcome = outcome
	n.proofNumber, n.disproofNumber = pn, dn
	n.virtualProofNumber, n.virtualDisproofNumber = vpn, vdn
}

func (b *Book) addAncestors(id int, ancestors *[]int, seen map[int]bool) {
	for _, e := range b.nodes[id].backwardEdges {
		if !seen[e.from] {
			seen[e.from] = true
			b.addAncestors(e.from, ancestors, seen)
			*ancestors = append(*ancestors, e.from)
		}
	}
}

// updateAncestors recomputes every ancestor of id, each one before its own
// ancestors (so the root last), so a leaf's new outcome propagates up the
// whole tree.
func (b *Book) updateAncestors(id int) {
	var ancestors []int
	seen := make(map[int]bool)
	b.addAncestors(id, &ancestors, seen)
	for i := len(ancestors) - 1; i >= 0; i-- {
		b.updateNode(ancestors[i])
	}
}

// expand generates the midgame's candidate moves from id's board (with no
// partial solution table, matching the reference tool's unconditioned
// expansion) and adds a child node, canonicalized under symmetry, for each.
func (b *Book) expand(id int) {
	bd := b.nodes[id].board
	_, moves := midgame.GenerateMoves(bd, solutiontable.Empty(), time.Now().Add(time.Minute))
	for _, mv := range moves {
		child := bd.Apply(mv.Move)
		child, _ = symmetry.Canonicalize(child)
		childID := b.addNodeLocked(child)
		e := edge{from: id, to: childID, move: mv.Move}
		b.nodes[id].forwardEdges = append(b.nodes[id].forwardEdges, e)
		b.nodes[childID].backwardEdges = append(b.nodes[childID].backwardEdges, e)
	}
}

// Solve runs a single exhaustive solve of bd: generate its completions, then
// decide a definite win/loss with the endgame solver. Returns the unknown
// outcome if either stage runs out of its budget before reaching a verdict.
func Solve(bd board.Board, minSolutions, maxSolutions int, deadline time.Time, solver *endgame.Solver, rng *prng.Generator) Outcome {
	table, err := solutiontable.Generate(bd, minSolutions, maxSolutions, deadline, rng)
	if err != nil {
		return Outcome{}
	}
	win, mov, ok := solver.SolveDefinite(table, deadline)
	if !ok {
		return Outcome{}
	}
	if !win {
		return lossOutcome
	}
	if mov.HasMove {
		return winOutcome(mov.Move)
	}
	return winOutcome(board.Move{})
}
