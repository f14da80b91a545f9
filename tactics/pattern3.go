// Package tactics implements the stateless tactical heuristics layered on
// top of board.Position: atari analysis, ladder reading, 3x3 and large
// pattern matching, capture-move generation and self-atari rejection.
package tactics

import "github.com/climengine/weiqi/board"

// pattern3Words holds one bit per possible packed 16-bit neighbourhood
// (env4 in the low byte, env4d in the high byte), so a full table is
// 65536 bits regardless of board size.
const pattern3Words = (1 << 16) / 64

// Pattern3Set is a compact membership table over 3x3 neighbourhoods, built
// once at startup and immutable thereafter (spec 4.3: "a compact bit-set
// pat3set"). Patterns are stored canonicalised over the 8 board symmetries
// and the black/white colour swap, so a single Add call covers every
// equivalent orientation.
type Pattern3Set struct {
	bits [pattern3Words]uint64
}

func field(v uint8, i int) uint8 { return (v >> uint(2*i)) & 3 }

func permute4(v uint8, perm [4]int) uint8 {
	var out uint8
	for i := 0; i < 4; i++ {
		out |= field(v, perm[i]) << uint(2*i)
	}
	return out
}

// swapColour exchanges Black (1) and White (2) in every 2-bit field,
// leaving Empty (0) and Border (3) unchanged.
func swapColour(v uint8) uint8 {
	var out uint8
	for i := 0; i < 4; i++ {
		f := field(v, i)
		switch f {
		case uint8(board.Black):
			f = uint8(board.White)
		case uint8(board.White):
			f = uint8(board.Black)
		}
		out |= f << uint(2*i)
	}
	return out
}

// Orthogonal fields are packed in board.Neighbors4 order: right, left, up,
// down. Diagonal fields follow board.Diagonals4 order: NE, NW, SE, SW.
var orthRotatePerm = [4]int{2, 3, 1, 0} // rotate board 90 deg clockwise
var diagRotatePerm = [4]int{1, 3, 0, 2}
var orthMirrorPerm = [4]int{1, 0, 2, 3} // mirror left-right
var diagMirrorPerm = [4]int{1, 0, 3, 2}

func rotateOrth(v uint8) uint8  { return permute4(v, orthRotatePerm) }
func rotateDiag(v uint8) uint8  { return permute4(v, diagRotatePerm) }
func mirrorOrth(v uint8) uint8  { return permute4(v, orthMirrorPerm) }
func mirrorDiag(v uint8) uint8  { return permute4(v, diagMirrorPerm) }

// canonicalIndex finds the lexicographically smallest packed index among
// the 16 equivalent forms (4 rotations x optional mirror x optional colour
// swap) of the (env4, env4d) neighbourhood.
func canonicalIndex(env4, env4d uint8) uint16 {
	best := uint16(0xFFFF)
	o, d := env4, env4d
	for swap := 0; swap < 2; swap++ {
		oo, dd := o, d
		for mirror := 0; mirror < 2; mirror++ {
			ro, rd := oo, dd
			for rot := 0; rot < 4; rot++ {
				idx := uint16(ro) | uint16(rd)<<8
				if idx < best {
					best = idx
				}
				ro, rd = rotateOrth(ro), rotateDiag(rd)
			}
			oo, dd = mirrorOrth(oo), mirrorDiag(dd)
		}
		o, d = swapColour(o), swapColour(d)
	}
	return best
}

// NewPattern3Set returns an empty pattern table.
func NewPattern3Set() *Pattern3Set {
	return &Pattern3Set{}
}

// Add registers the neighbourhood (env4, env4d) and every symmetric /
// colour-swapped form of it.
func (s *Pattern3Set) Add(env4, env4d uint8) {
	idx := canonicalIndex(env4, env4d)
	s.bits[idx/64] |= 1 << (idx % 64)
}

// Match reports whether the neighbourhood (env4, env4d) — in any of its 16
// equivalent forms — was registered.
func (s *Pattern3Set) Match(env4, env4d uint8) bool {
	idx := canonicalIndex(env4, env4d)
	return s.bits[idx/64]&(1<<(idx%64)) != 0
}

// Pattern3Match reports whether p's local 3x3 neighbourhood, as currently
// encoded in pos, is present in set.
func Pattern3Match(set *Pattern3Set, pos *board.Position, p board.Point) bool {
	return set.Match(pos.Env4(p), pos.Env4d(p))
}

func orthVal(e, w, n, s board.Color) uint8 {
	return uint8(e) | uint8(w)<<2 | uint8(n)<<4 | uint8(s)<<6
}

func diagVal(ne, nw, se, sw board.Color) uint8 {
	return uint8(ne) | uint8(nw)<<2 | uint8(se)<<4 | uint8(sw)<<6
}

// DefaultPattern3Set returns a small starter table of classic shapes
// (hane, cut, edge push) expressed from Black's perspective; the colour
// swap folded into canonicalisation makes these match equally for White.
// A production deployment replaces this with a table mined from game
// records, passed in through NewPattern3Set+Add exactly the same way.
func DefaultPattern3Set() *Pattern3Set {
	s := NewPattern3Set()

	// Hane: opponent stone to the east, own stone to the north, empty
	// point to the northeast (the classic diagonal hane shape).
	s.Add(orthVal(board.White, board.Empty, board.Black, board.Empty),
		diagVal(board.Empty, board.Empty, board.Empty, board.Empty))

	// Cut: own stones north and east with an opponent stone attempting to
	// cut from the southwest diagonal.
	s.Add(orthVal(board.Black, board.Empty, board.Black, board.Empty),
		diagVal(board.Empty, board.Empty, board.Empty, board.White))

	// Edge hane: candidate point on the board edge (border to the south),
	// opponent to the east.
	s.Add(orthVal(board.White, board.Empty, board.Empty, board.Border),
		diagVal(board.Empty, board.Empty, board.Border, board.Border))

	// Solid connection response: own stones on opposite orthogonal sides
	// (east and west), opponent pressing from the southeast diagonal.
	s.Add(orthVal(board.Black, board.Black, board.Empty, board.Empty),
		diagVal(board.Empty, board.Empty, board.White, board.Empty))

	return s
}
