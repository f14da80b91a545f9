package tactics_test

import (
	"testing"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/tactics"
	"github.com/stretchr/testify/require"
)

func vtx(t *testing.T, s string) board.Point {
	t.Helper()
	p, ok := board.ParseVertex(s)
	require.True(t, ok, "bad vertex %q", s)
	return p
}

func play(t *testing.T, pos *board.Position, v string) {
	t.Helper()
	require.NoError(t, pos.PlayMove(vtx(t, v)))
}

// Pattern3Match must agree on a neighbourhood and its mirror image, since
// both are registered by a single Add call.
func TestPattern3MatchInvariantUnderMirror(t *testing.T) {
	set := tactics.NewPattern3Set()
	env4 := uint8(board.White) | uint8(board.Empty)<<2 | uint8(board.Black)<<4 | uint8(board.Empty)<<6
	env4d := uint8(0)
	set.Add(env4, env4d)
	require.True(t, set.Match(env4, env4d))

	mirrored := uint8(board.Empty) | uint8(board.White)<<2 | uint8(board.Black)<<4 | uint8(board.Empty)<<6
	require.True(t, set.Match(mirrored, env4d), "mirror image of a registered pattern must match")
}

// Pattern3Match must also agree after a black/white colour swap, since the
// set canonicalises over that symmetry too.
func TestPattern3MatchInvariantUnderColourSwap(t *testing.T) {
	set := tactics.NewPattern3Set()
	env4 := uint8(board.Black) | uint8(board.Empty)<<2 | uint8(board.White)<<4 | uint8(board.Empty)<<6
	set.Add(env4, 0)

	swapped := uint8(board.White) | uint8(board.Empty)<<2 | uint8(board.Black)<<4 | uint8(board.Empty)<<6
	require.True(t, set.Match(swapped, 0))
}

func TestDefaultPattern3SetIsNonEmpty(t *testing.T) {
	set := tactics.DefaultPattern3Set()
	require.True(t, set.Match(
		uint8(board.White)|uint8(board.Empty)<<2|uint8(board.Black)<<4|uint8(board.Empty)<<6,
		0,
	))
}

func TestLargePatternProbabilityDefaultsToZero(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	require.Zero(t, tactics.LargePatternProbability(nil, pos, vtx(t, "E5")))
}

func TestFixAtariEscapeToOpenLibertiesSucceeds(t *testing.T) {
	// Black's lone stone at E5 is boxed in on three sides by white, with a
	// single liberty at E6 that opens onto three further liberties.
	pos := board.EmptyPosition(7.5)
	play(t, pos, "E5") // B
	play(t, pos, "D5") // W
	play(t, pos, "H9") // B dummy
	play(t, pos, "F5") // W
	play(t, pos, "H8") // B dummy
	play(t, pos, "E4") // W
	play(t, pos, "H7") // B dummy
	play(t, pos, "H6") // W dummy, leaves black to move again

	result := tactics.FixAtari(pos, vtx(t, "E5"), tactics.AtariOptions{SinglePtOK: true})
	require.True(t, result.InAtari)
	require.Equal(t, 1, result.BlockSize)
	require.Contains(t, result.Moves, vtx(t, "E6"))
}

func TestFixAtariDeadBlockHasNoSavingMove(t *testing.T) {
	// Same shape, but E6 itself is nearly boxed in too (D6, F6 white), so
	// escaping there still leaves the block in atari: it cannot be saved.
	pos := board.EmptyPosition(7.5)
	play(t, pos, "E5") // B
	play(t, pos, "D5") // W
	play(t, pos, "H9") // B dummy
	play(t, pos, "F5") // W
	play(t, pos, "H8") // B dummy
	play(t, pos, "E4") // W
	play(t, pos, "H7") // B dummy
	play(t, pos, "D6") // W
	play(t, pos, "H6") // B dummy
	play(t, pos, "F6") // W, leaves black to move again

	result := tactics.FixAtari(pos, vtx(t, "E5"), tactics.AtariOptions{SinglePtOK: true})
	require.True(t, result.InAtari)
	require.Empty(t, result.Moves)
}

func TestIsSelfAtariOnLoneStoneSurroundedOnThreeSides(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	play(t, pos, "H9") // B dummy
	play(t, pos, "B4") // W
	play(t, pos, "H8") // B dummy
	play(t, pos, "C3") // W
	play(t, pos, "H7") // B dummy
	play(t, pos, "C5") // W
	// Black to move at C4: neighbours B4(W), C3(W), C5(W), D4(empty) ->
	// an isolated stone with one liberty (D4) and no capture.
	require.True(t, tactics.IsSelfAtari(pos, vtx(t, "C4")))
}

func TestGenCaptureMovesSkipsBlockNotInAtari(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	play(t, pos, "C3") // B
	play(t, pos, "D4") // W
	play(t, pos, "E5") // B dummy
	play(t, pos, "D6") // W dummy

	// black to move; white stone at D4 has liberties C4,D3,D5,E4 — not yet in
	// atari, so no capture move should be generated for it.
	moves := tactics.GenCaptureMoves(pos, board.AllPoints(), true)
	require.NotContains(t, moves, vtx(t, "C4"))
}

func TestCFGDistanceZeroAtOrigin(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	p := vtx(t, "E5")
	require.Equal(t, 0, tactics.CFGDistance(pos, p, p, 5))
}

func TestCFGDistanceOneForOrthogonalNeighbour(t *testing.T) {
	pos := board.EmptyPosition(7.5)
	require.Equal(t, 1, tactics.CFGDistance(pos, vtx(t, "E5"), vtx(t, "E6"), 5))
}
