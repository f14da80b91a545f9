package board

import "strings"

// String renders pos as an ASCII diagram, black stones as '@', white as 'O',
// empty points as '.', one row per board row, top row first (matches the
// teacher's BoardToString).
func (pos *Position) String() string {
	var b strings.Builder
	for y := N; y >= 1; y-- {
		for x := 1; x <= N; x++ {
			b.WriteString(pos.cells[point(x, y)].String())
		}
		if y > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
