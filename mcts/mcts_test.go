package mcts_test

import (
	"math/rand"
	"testing"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/config"
	"github.com/climengine/weiqi/mcts"
	"github.com/climengine/weiqi/tactics"
	"github.com/stretchr/testify/require"
)

func newTestTree(pos *board.Position) *mcts.Tree {
	return mcts.NewTree(pos, mcts.Options{
		Config: config.Default(),
		Patterns: mcts.PatternSource{
			Pattern3: tactics.DefaultPattern3Set(),
		},
		Rand: rand.New(rand.NewSource(99)),
	})
}

func TestSearchReturnsALegalOrPassMove(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	tree := newTestTree(pos)

	move, _ := tree.Search(40, nil)
	if move != board.PASS {
		require.True(t, pos.IsLegal(move))
	}
	require.Equal(t, mcts.Done, tree.State())
}

func TestSearchExpandsRootAfterEnoughVisits(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	tree := newTestTree(pos)

	tree.Search(config.Default().ExpandVisits+5, nil)
	require.NotEmpty(t, tree.Root.Children, "root should have expanded after enough visits")
}

func TestSearchRespectsStopSignal(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	tree := newTestTree(pos)

	calls := 0
	stop := func() bool {
		calls++
		return calls > 3
	}
	tree.Search(10000, stop)
	require.LessOrEqual(t, calls, 5)
}

func TestPlayAtRootAdvancesToExistingChild(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	tree := newTestTree(pos)
	tree.Search(config.Default().ExpandVisits+5, nil)
	require.NotEmpty(t, tree.Root.Children)

	firstChildMove := tree.Root.Children[0].Move
	tree.PlayAtRoot(firstChildMove)
	require.Equal(t, firstChildMove, tree.Root.Pos.Last())
}

func TestBestChildTieBreaksDeterministicallyGivenSeed(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	tree1 := newTestTree(pos)
	tree2 := newTestTree(board.EmptyPosition(7.5))

	move1, resign1 := tree1.Search(60, nil)
	move2, resign2 := tree2.Search(60, nil)

	require.Equal(t, move1, move2)
	require.Equal(t, resign1, resign2)
}
