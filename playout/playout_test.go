package playout_test

import (
	"math/rand"
	"testing"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/playout"
	"github.com/climengine/weiqi/tactics"
	"github.com/stretchr/testify/require"
)

func TestRunTerminatesWithinMaxGameLen(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	amaf := playout.NewAMAFMap()
	result := playout.Run(pos, amaf, playout.Options{
		Pattern3: tactics.DefaultPattern3Set(),
		Rand:     rand.New(rand.NewSource(42)),
	})

	maxLen := len(board.AllPoints()) * 3
	require.LessOrEqual(t, result.Moves, maxLen)
	require.False(t, isNaNOrInf(result.Score))
}

func TestRunRecordsAtLeastOneMoveForEachColourInAMAFMap(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	amaf := playout.NewAMAFMap()
	playout.Run(pos, amaf, playout.Options{
		Pattern3: tactics.DefaultPattern3Set(),
		Rand:     rand.New(rand.NewSource(7)),
	})

	sawRoot, sawOpponent := false, false
	for _, v := range amaf {
		switch v {
		case 1:
			sawRoot = true
		case -1:
			sawOpponent = true
		}
	}
	require.True(t, sawRoot, "amaf map should record at least one point for the root mover")
	require.True(t, sawOpponent, "amaf map should record at least one point for the opponent")
}

func TestRunDeterministicWithFixedSeed(t *testing.T) {
	pos := board.EmptyPosition(7.5)

	amaf1 := playout.NewAMAFMap()
	r1 := playout.Run(pos, amaf1, playout.Options{Rand: rand.New(rand.NewSource(123))})

	amaf2 := playout.NewAMAFMap()
	r2 := playout.Run(pos, amaf2, playout.Options{Rand: rand.New(rand.NewSource(123))})

	require.Equal(t, r1.Score, r2.Score)
	require.Equal(t, r1.Moves, r2.Moves)
	require.Equal(t, amaf1, amaf2)
}

func TestRunDoesNotMutateInputPosition(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	require.NoError(t, pos.PlayMove(mustVertex(t, "E5")))
	before := pos.MoveCount()

	playout.Run(pos, playout.NewAMAFMap(), playout.Options{Rand: rand.New(rand.NewSource(1))})

	require.Equal(t, before, pos.MoveCount())
	require.Equal(t, board.Black, pos.At(mustVertex(t, "E5")))
}

func TestRunWithRecordOwnerFillsOwnerMap(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	result := playout.Run(pos, playout.NewAMAFMap(), playout.Options{
		Rand:        rand.New(rand.NewSource(9)),
		RecordOwner: true,
	})
	require.Len(t, result.Owner, board.T)
}

func mustVertex(t *testing.T, s string) board.Point {
	t.Helper()
	p, ok := board.ParseVertex(s)
	require.True(t, ok)
	return p
}

func isNaNOrInf(f float64) bool {
	return f != f || f > 1e18 || f < -1e18
}
