package tactics

import "github.com/climengine/weiqi/board"

// maxPatternRadius bounds how many concentric rings LargePatternProbability
// will probe; it mirrors the depth of a typical mined large-pattern table.
const maxPatternRadius = 3

// ringZobrist holds independent hash multipliers per ring distance so that
// the same point hashes differently depending on which ring it occupies
// relative to the candidate move (grounded on the Zobrist-table pattern in
// zurichess's engine/zobrist.go, adapted from per-square/per-piece keys to
// per-ring/per-colour keys).
var ringZobrist [maxPatternRadius + 1][4]uint64

func init() {
	// Fixed odd 64-bit multipliers from a fixed-seed linear congruential
	// sequence (not process-random): the
	// large-pattern table is keyed by these hashes and must reproduce the
	// same key across runs and across the external loader that built the
	// probability table.
	seed := uint64(0x9E3779B97F4A7C15)
	for r := 0; r <= maxPatternRadius; r++ {
		for c := 0; c < 4; c++ {
			seed = seed*6364136223846793005 + 1442695040888963407
			ringZobrist[r][c] = seed | 1
		}
	}
}

// LargePatternTable maps a ring's Zobrist hash to a move probability in
// [0,1]. One map per ring radius, indexed by radius; LargePatternProbability
// probes them largest radius first. The table is built once by an external
// loader (never by this package) from mined game records and is immutable
// thereafter — NewLargePatternTable's argument is that pre-parsed data.
type LargePatternTable struct {
	byRadius [maxPatternRadius + 1]map[uint64]float64
}

// NewLargePatternTable wraps pre-parsed (hash -> probability) maps, indexed
// by ring radius (0..maxPatternRadius). A nil entry means no patterns were
// loaded for that radius.
func NewLargePatternTable(byRadius [maxPatternRadius + 1]map[uint64]float64) *LargePatternTable {
	return &LargePatternTable{byRadius: byRadius}
}

// ringHash returns the Zobrist hash of the ring of points exactly radius
// steps (in Chebyshev distance, i.e. a square ring) from p, for the given
// board position.
func ringHash(pos *board.Position, p board.Point, radius int) uint64 {
	var h uint64
	for _, q := range ringPoints(p, radius) {
		if !board.IsOnBoard(q) {
			h ^= ringZobrist[radius][board.Border]
			continue
		}
		h ^= ringZobrist[radius][pos.At(q)]
		h = h*0x2545F4914F6CDD1D + 1
	}
	return h
}

// ringPoints enumerates the points forming the square ring at the given
// Chebyshev radius around centre (radius 0 is just centre itself).
func ringPoints(centre board.Point, radius int) []board.Point {
	if radius == 0 {
		return []board.Point{centre}
	}
	pts := make([]board.Point, 0, 8*radius)
	for dx := -radius; dx <= radius; dx++ {
		pts = append(pts, offset(centre, dx, -radius), offset(centre, dx, radius))
	}
	for dy := -radius + 1; dy <= radius-1; dy++ {
		pts = append(pts, offset(centre, -radius, dy), offset(centre, radius, dy))
	}
	return pts
}

// offset returns the point dx east and dy north of p, using the same
// padded-row stride as the board package's own point() helper (W = N+2).
func offset(p board.Point, dx, dy int) board.Point {
	return p + board.Point(dx) + board.Point(dy)*board.Point(board.N+2)
}

// LargePatternProbability probes rings from largest to smallest, returning
// the first matching probability, or 0 if none of the loaded radii match.
func LargePatternProbability(table *LargePatternTable, pos *board.Position, p board.Point) float64 {
	if table == nil {
		return 0
	}
	for radius := maxPatternRadius; radius >= 1; radius-- {
		m := table.byRadius[radius]
		if m == nil {
			continue
		}
		if prob, ok := m[ringHash(pos, p, radius)]; ok {
			return prob
		}
	}
	return 0
}
