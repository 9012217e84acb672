package openingbook

import (
	"testing"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/square"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookHasOnlyTheEmptyRoot(t *testing.T) {
	b := New()
	assert.Equal(t, 1, b.NumNodes())
	assert.True(t, b.RootOutcome().Unknown())
	pn, dn := b.RootProofDisproof()
	assert.Equal(t, Finite(1), pn)
	assert.Equal(t, Finite(1), dn)
}

func TestAddNodeLockedDeduplicatesByBoard(t *testing.T) {
	b := New()
	bd := board.Empty.Set(square.NewCell(0), digit.Of(digit.New(0)))

	id1 := b.addNodeLocked(bd)
	id2 := b.addNodeLocked(bd)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 2, b.NumNodes())
}

func TestNumberArithmetic(t *testing.T) {
	assert.Equal(t, Finite(5), Finite(2).Add(Finite(3)))
	assert.Equal(t, Infinite, Finite(2).Add(Infinite))
	assert.Equal(t, Finite(2), Finite(2).Min(Finite(3)))
	assert.Equal(t, Finite(2), Finite(2).Min(Infinite))
	assert.True(t, Finite(2).Less(Finite(3)))
	assert.False(t, Finite(3).Less(Finite(2)))
	assert.True(t, Finite(3).Less(Infinite))
	assert.False(t, Infinite.Less(Finite(3)))
}

func TestSelectLeafOnFreshRootReturnsRoot(t *testing.T) {
	b := New()
	id, ok := b.selectLeaf()
	require.True(t, ok)
	assert.Equal(t, Root, id)
}

func TestUpdateNodePropagatesChildLossAsParentWin(t *testing.T) {
	b := New()
	bd := board.Empty.Set(square.NewCell(0), digit.Of(digit.New(0)))
	childID := b.addNodeLocked(bd)
	mov := board.Move{Cell: square.NewCell(0), Digit: digit.New(0)}
	e := edge{from: Root, to: childID, move: mov}
	b.nodes[Root].forwardEdges = append(b.nodes[Root].forwardEdges, e)
	b.nodes[childID].backwardEdges = append(b.nodes[childID].backwardEdges, e)
	b.nodes[childID].outcome = lossOutcome

	b.updateNode(Root)

	winMove, isWin := b.nodes[Root].outcome.Win()
	require.True(t, isWin)
	assert.Equal(t, mov, winMove)
}

func TestUpdateNodeWithAllWinningChildrenIsLoss(t *testing.T) {
	b := New()
	bd := board.Empty.Set(square.NewCell(0), digit.Of(digit.New(0)))
	childID := b.addNodeLocked(bd)
	mov := board.Move{Cell: square.NewCell(0), Digit: digit.New(0)}
	e := edge{from: Root, to: childID, move: mov}
	b.nodes[Root].forwardEdges = append(b.nodes[Root].forwardEdges, e)
	b.nodes[childID].backwardEdges = append(b.nodes[childID].backwardEdges, e)
	b.nodes[childID].outcome = winOutcome(mov)

	b.updateNode(Root)

	assert.True(t, b.nodes[Root].outcome.Loss())
}
