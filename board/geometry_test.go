package board_test

import (
	"testing"

	"github.com/climengine/weiqi/board"
	"github.com/stretchr/testify/require"
)

func TestVertexRoundTrip(t *testing.T) {
	for _, p := range board.AllPoints() {
		text := board.FormatVertex(p)
		got, ok := board.ParseVertex(text)
		require.True(t, ok, "ParseVertex(%q)", text)
		require.Equal(t, p, got, "round trip for %q", text)
	}

	got, ok := board.ParseVertex("pass")
	require.True(t, ok)
	require.Equal(t, board.PASS, got)
	require.Equal(t, "PASS", board.FormatVertex(board.PASS))
}

func TestVertexSkipsLetterI(t *testing.T) {
	_, ok := board.ParseVertex("I5")
	require.False(t, ok, "column letter I must be skipped by convention")
}

func TestLineHeight(t *testing.T) {
	corner, ok := board.ParseVertex("A1")
	require.True(t, ok)
	require.Equal(t, 0, board.LineHeight(corner))
}
