package openingbook

import (
	"strconv"
	"sync"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/ninederr"
)

// Snapshot is a Book's on-disk form: every node's board, proven status, and
// forward edges, enough to resume a search or inspect a finished one without
// replaying it. Proof/disproof numbers are persisted rather than
// recomputed, since a node's outcome alone doesn't recover them for an
// in-progress (not fully proven) tree.
type Snapshot struct {
	Nodes []NodeSnapshot `yaml:"nodes"`
}

// NodeSnapshot is one node's serialized state.
type NodeSnapshot struct {
	Board          string         `yaml:"board"`
	Outcome        string         `yaml:"outcome"` // "unknown", "win", "loss"
	Move           string         `yaml:"move,omitempty"`
	ForwardEdges   []EdgeSnapshot `yaml:"forward_edges,omitempty"`
	ProofNumber    string         `yaml:"proof_number"`
	DisproofNumber string         `yaml:"disproof_number"`
}

// EdgeSnapshot is one forward edge: the move played and the child it leads to.
type EdgeSnapshot struct {
	To   int    `yaml:"to"`
	Move string `yaml:"move"`
}

// Snapshot captures the book's full tree for serialization.
func (b *Book) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := Snapshot{Nodes: make([]NodeSnapshot, len(b.nodes))}
	for i, n := range b.nodes {
		ns := NodeSnapshot{
			Board:          n.board.String(),
			Outcome:        outcomeString(n.outcome),
			ProofNumber:    numberString(n.proofNumber),
			DisproofNumber: numberString(n.disproofNumber),
		}
		if mov, ok := n.outcome.Win(); ok {
			ns.Move = mov.String()
		}
		for _, e := range n.forwardEdges {
			ns.ForwardEdges = append(ns.ForwardEdges, EdgeSnapshot{To: e.to, Move: e.move.String()})
		}
		out.Nodes[i] = ns
	}
	return out
}

// LoadSnapshot rebuilds a Book from a previously-saved Snapshot.
func LoadSnapshot(snap Snapshot) (*Book, error) {
	b := &Book{nodeLookup: make(map[board.Board]int)}
	b.cond = sync.NewCond(&b.mu)

	for _, ns := range snap.Nodes {
		bd, err := board.Parse(ns.Board)
		if err != nil {
			return nil, err
		}
		b.addNodeLocked(bd)
	}

	for i, ns := range snap.Nodes {
		n := b.nodes[i]

		outcome, err := parseOutcome(ns.Outcome, ns.Move)
		if err != nil {
			return nil, err
		}
		pn, err := parseNumber(ns.ProofNumber)
		if err != nil {
			return nil, err
		}
		dn, err := parseNumber(ns.DisproofNumber)
		if err != nil {
			return nil, err
		}

		n.outcome = outcome
		n.proofNumber, n.disproofNumber = pn, dn
		n.virtualProofNumber, n.virtualDisproofNumber = pn, dn

		for _, es := range ns.ForwardEdges {
			mov, err := board.ParseMove(es.Move)
			if err != nil {
				return nil, err
			}
			e := edge{from: i, to: es.To, move: mov}
			n.forwardEdges = append(n.forwardEdges, e)
			b.nodes[es.To].backwardEdges = append(b.nodes[es.To].backwardEdges, e)
		}

		if outcome.Loss() {
			b.numSolvedNodes++
		} else if _, ok := outcome.Win(); ok {
			b.numSolvedNodes++
		}
	}

	return b, nil
}

func outcomeString(o Outcome) string {
	switch {
	case o.Loss():
		return "loss"
	default:
		if _, ok := o.Win(); ok {
			return "win"
		}
		return "unknown"
	}
}

func parseOutcome(s, mov string) (Outcome, error) {
	switch s {
	case "win":
		m, err := board.ParseMove(mov)
		if err != nil {
			return Outcome{}, err
		}
		return winOutcome(m), nil
	case "loss":
		return lossOutcome, nil
	default:
		return Outcome{}, nil
	}
}

func parseNumber(s string) (Number, error) {
	if s == "inf" {
		return Infinite, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Number{}, ninederr.ErrInvalidInput
	}
	return Finite(n), nil
}
