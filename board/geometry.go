// Package board implements the padded 1-D Go board representation: point
// geometry, colours, and the Position type with incremental block/liberty
// tracking. Board size (N=9 or N=13) is fixed at compile time; see size_9.go
// and size_13.go.
package board

import "fmt"

// W is the padded width: one sentinel border cell on each side of the N*N
// playing grid.
const W = N + 2

// T is the total number of cells in the padded board, including the border.
const T = W * W

// words is the number of uint64 words needed to hold one bit per point, used
// by the liberty bitsets.
const words = (T + 63) / 64

// Point is an index into the padded board. Points on the single-cell border
// are valid indices (coloured Border) so neighbour lookups never need bounds
// checks.
type Point int

// PASS denotes passing rather than playing at a point.
const PASS Point = -1

// Color is one of Empty, Black, White or Border. It packs into 2 bits, which
// is what makes env4/env4d encoding possible.
type Color uint8

const (
	Empty Color = iota
	Black
	White
	Border
)

// Opponent returns the other playing colour. Only meaningful for Black/White.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		panic(fmt.Sprintf("board: Opponent() called on non-stone colour %v", c))
	}
}

func (c Color) String() string {
	switch c {
	case Empty:
		return "."
	case Black:
		return "@"
	case White:
		return "O"
	case Border:
		return "#"
	default:
		return "?"
	}
}

// point builds a Point from 1-based board coordinates (x,y both in
// [0, N+1]); (0,0) and (N+1,N+1) etc. land on the border.
func point(x, y int) Point { return Point(y*W + x) }

// coords recovers the 1-based coordinates of p.
func coords(p Point) (x, y int) {
	return int(p) % W, int(p) / W
}

// dirOffset/diagOffset hold the four orthogonal and four diagonal deltas to
// add to a Point to reach its neighbour in that direction. Order: right,
// left, up, down / NE, NW, SE, SW.
var dirOffset = [4]Point{1, -1, Point(W), -Point(W)}
var diagOffset = [4]Point{Point(W) + 1, Point(W) - 1, -Point(W) + 1, -Point(W) - 1}

// allPoints lists every on-board (non-border) point, in row-major order.
var allPoints []Point

// lineHeights[p] is line_height(p): the minimum distance from p to any edge,
// clamped to [0, N/2]. Only meaningful for on-board points.
var lineHeights [T]int

func init() {
	allPoints = make([]Point, 0, N*N)
	for y := 1; y <= N; y++ {
		for x := 1; x <= N; x++ {
			allPoints = append(allPoints, point(x, y))
		}
	}
	for y := 1; y <= N; y++ {
		for x := 1; x <= N; x++ {
			h := x - 1
			if d := y - 1; d < h {
				h = d
			}
			if d := N - x; d < h {
				h = d
			}
			if d := N - y; d < h {
				h = d
			}
			lineHeights[point(x, y)] = h
		}
	}
}

// LineHeight returns the minimum distance from p to any edge, in [0, N/2].
func LineHeight(p Point) int { return lineHeights[p] }

// AllPoints returns every on-board point (border excluded), in row-major
// order. Callers must not mutate the returned slice.
func AllPoints() []Point { return allPoints }

// IsOnBoard reports whether p names a non-border point.
func IsOnBoard(p Point) bool {
	if p < 0 || int(p) >= T {
		return false
	}
	x, y := coords(p)
	return x >= 1 && x <= N && y >= 1 && y <= N
}

// Neighbors4 returns the 4 orthogonal neighbours of p (right, left, up,
// down).
func Neighbors4(p Point) [4]Point {
	return [4]Point{p + dirOffset[0], p + dirOffset[1], p + dirOffset[2], p + dirOffset[3]}
}

// Diagonals4 returns the 4 diagonal neighbours of p.
func Diagonals4(p Point) [4]Point {
	return [4]Point{p + diagOffset[0], p + diagOffset[1], p + diagOffset[2], p + diagOffset[3]}
}

// xLetters mirrors the convention used throughout computer Go: columns are
// lettered left to right starting at A, skipping I.
const xLetters = "_ABCDEFGHJKLMNOPQRSTUVWXYZ"

// FormatVertex renders p as GTP-style vertex text ("PASS" for PASS, else e.g.
// "E5").
func FormatVertex(p Point) string {
	if p == PASS {
		return "PASS"
	}
	x, y := coords(p)
	return fmt.Sprintf("%c%d", xLetters[x], y)
}

// ParseVertex parses GTP-style vertex text back into a Point. ok is false on
// malformed input; it does not validate that the point is on this board (use
// IsOnBoard for that).
func ParseVertex(s string) (p Point, ok bool) {
	if s == "" {
		return 0, false
	}
	if len(s) >= 4 && (s[0] == 'p' || s[0] == 'P') {
		// "pass" in any case
		if eqFold(s, "pass") {
			return PASS, true
		}
	}
	col := s[0]
	if col >= 'a' && col <= 'z' {
		col -= 'a' - 'A'
	}
	x := -1
	for i := 1; i < len(xLetters); i++ {
		if xLetters[i] == col {
			x = i
			break
		}
	}
	if x < 0 {
		return 0, false
	}
	y := 0
	for i := 1; i < len(s); i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return 0, false
		}
		y = y*10 + int(d-'0')
	}
	if y == 0 {
		return 0, false
	}
	return point(x, y), true
}

func eqFold(s, lower string) bool {
	if len(s) != len(lower) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lower[i] {
			return false
		}
	}
	return true
}
