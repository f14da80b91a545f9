package board_test

import (
	"testing"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/errs"
	"github.com/stretchr/testify/require"
)

func vertex(t *testing.T, s string) board.Point {
	t.Helper()
	p, ok := board.ParseVertex(s)
	require.True(t, ok, "bad vertex %q", s)
	return p
}

// play plays v for whichever colour is currently on the move and requires
// the move to succeed.
func play(t *testing.T, pos *board.Position, v string) {
	t.Helper()
	require.NoError(t, pos.PlayMove(vertex(t, v)), "play %s", v)
}

func reasonOf(t *testing.T, err error) errs.Reason {
	t.Helper()
	im, ok := errs.AsIllegalMove(err)
	require.True(t, ok, "expected an *errs.IllegalMove, got %v", err)
	return im.Reason
}

func TestSimpleCaptureTwoStoneGroup(t *testing.T) {
	pos := board.EmptyPosition(7.5)

	play(t, pos, "D5") // B: west neighbour of E5
	play(t, pos, "E5") // W: first stone of the pair
	play(t, pos, "F5") // B: east neighbour of E5
	play(t, pos, "E6") // W: connects to E5, forming the pair
	play(t, pos, "E4") // B: south neighbour of E5
	play(t, pos, "A1") // W dummy
	play(t, pos, "D6") // B: west neighbour of E6
	play(t, pos, "A2") // W dummy
	play(t, pos, "F6") // B: east neighbour of E6
	play(t, pos, "A3") // W dummy

	require.Zero(t, pos.Captures(board.Black))
	require.Equal(t, board.PASS, pos.Ko())

	play(t, pos, "E7") // B: last liberty, captures the E5/E6 pair

	require.Equal(t, 2, pos.Captures(board.Black))
	require.Equal(t, board.Empty, pos.At(vertex(t, "E5")))
	require.Equal(t, board.Empty, pos.At(vertex(t, "E6")))
	require.Equal(t, board.PASS, pos.Ko(), "a two-stone capture never sets ko")

	require.NoError(t, board.CheckInvariants(pos).Err())
}

func TestKoForbidsImmediateRecaptureThenClears(t *testing.T) {
	pos := board.EmptyPosition(7.5)

	play(t, pos, "B1") // B: south neighbour of the to-be-captured stone
	play(t, pos, "A3") // W: west neighbour of the recapture point
	play(t, pos, "A2") // B: west neighbour of the captured stone
	play(t, pos, "C3") // W: east neighbour of the recapture point
	play(t, pos, "C2") // B: east neighbour of the captured stone
	play(t, pos, "B2") // W: the stone about to be captured, in atari at B3
	play(t, pos, "J9") // B: dummy, far away
	play(t, pos, "B4") // W: north neighbour of the recapture point
	play(t, pos, "B3") // B: captures W's lone stone at B2

	require.Equal(t, 1, pos.Captures(board.Black))
	require.Equal(t, board.Empty, pos.At(vertex(t, "B2")))
	require.Equal(t, vertex(t, "B2"), pos.Ko())

	err := pos.PlayMove(vertex(t, "B2"))
	require.Error(t, err, "immediate recapture at the ko point must be illegal")
	require.Equal(t, errs.Ko, reasonOf(t, err))

	play(t, pos, "H9") // W plays elsewhere, ko clears
	require.Equal(t, board.PASS, pos.Ko())
	play(t, pos, "H8") // B plays elsewhere

	require.NoError(t, pos.PlayMove(vertex(t, "B2")), "ko point is legal again once cleared")
	require.NoError(t, board.CheckInvariants(pos).Err())
}

func TestSuicideRejected(t *testing.T) {
	pos := board.EmptyPosition(7.5)

	play(t, pos, "J9") // B dummy
	play(t, pos, "C3") // W
	play(t, pos, "J8") // B dummy
	play(t, pos, "C5") // W
	play(t, pos, "J7") // B dummy
	play(t, pos, "B4") // W
	play(t, pos, "J6") // B dummy
	play(t, pos, "D4") // W

	err := pos.PlayMove(vertex(t, "C4"))
	require.Error(t, err)
	require.Equal(t, errs.Suicide, reasonOf(t, err))
	require.Equal(t, board.Empty, pos.At(vertex(t, "C4")), "rejected move must not mutate the position")
}

func TestObviousEyeRejected(t *testing.T) {
	pos := board.EmptyPosition(7.5)

	play(t, pos, "E4") // B
	play(t, pos, "H9") // W dummy
	play(t, pos, "E6") // B
	play(t, pos, "H8") // W dummy
	play(t, pos, "D5") // B
	play(t, pos, "H7") // W dummy
	play(t, pos, "F5") // B
	play(t, pos, "H6") // W dummy, so it's Black's turn again

	err := pos.PlayMove(vertex(t, "E5"))
	require.Error(t, err)
	require.Equal(t, errs.Eye, reasonOf(t, err))
}

func TestOccupiedPointRejected(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	play(t, pos, "D4")
	play(t, pos, "A9")
	err := pos.PlayMove(vertex(t, "D4"))
	require.Error(t, err)
	require.Equal(t, errs.Occupied, reasonOf(t, err))
}

func TestPassAlwaysLegalAndTogglesToMove(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	require.Equal(t, board.Black, pos.ToMove())
	require.NoError(t, pos.PlayMove(board.PASS))
	require.Equal(t, board.White, pos.ToMove())
	require.Equal(t, board.PASS, pos.Last())
}

func TestScoreOnEmptyBoardIsNegativeKomi(t *testing.T) {
	pos := board.EmptyPosition(6.5)
	require.Equal(t, -6.5, pos.Score(nil))
}

func TestCloneIsIndependent(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	play(t, pos, "D4")
	clone := pos.Clone()
	play(t, pos, "A9")
	require.Equal(t, board.Empty, clone.At(vertex(t, "A9")), "mutating the original must not affect the clone")
}
