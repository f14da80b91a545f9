package tactics

import "github.com/climengine/weiqi/board"

// AtariOptions controls fix_atari's sensitivity.
type AtariOptions struct {
	SinglePtOK bool // count a single-stone block as worth saving
}

// FixAtariResult reports whether the block at the queried point is in
// atari and, if so, the moves (if any) that save it.
type FixAtariResult struct {
	InAtari   bool
	Moves     []board.Point
	BlockSize int
}

// FixAtari examines the block containing p. A block with >=2 liberties is
// not in atari. A block with exactly 1 liberty is analysed for capture
// saves (an adjacent opponent block itself in atari) and escape saves
// (playing the single liberty and checking the resulting liberty count,
// falling back to ladder reading at exactly 2 liberties).
func FixAtari(pos *board.Position, p board.Point, opts AtariOptions) FixAtariResult {
	block := pos.BlockAt(p)
	libCount := pos.LibertyCount(block)
	result := FixAtariResult{BlockSize: block.Size}

	if libCount >= 2 || (block.Size == 1 && !opts.SinglePtOK) {
		return result
	}
	result.InAtari = true

	// Capture saves: any opponent block orthogonally adjacent to any
	// member of the target block, itself in atari, can be captured by
	// playing its one remaining liberty.
	seen := map[board.Point]bool{}
	for _, member := range blockMembers(pos, block) {
		for _, nb := range pos.NeighborBlocks(member) {
			if nb.Color == block.Color || seen[nb.Root] {
				continue
			}
			seen[nb.Root] = true
			if pos.LibertyCount(nb) == 1 {
				oppLibs := pos.Liberties(nb, nil)
				result.Moves = append(result.Moves, oppLibs[0])
			}
		}
	}

	// Escape: play the single liberty and see how the block fares.
	libs := pos.Liberties(block, nil)
	escape := libs[0]
	clone := pos.Clone()
	if err := clone.PlayMove(escape); err != nil {
		return result
	}
	newBlock := clone.BlockAt(escape)
	newLibCount := clone.LibertyCount(newBlock)
	switch {
	case newLibCount >= 3:
		result.Moves = append(result.Moves, escape)
	case newLibCount == 2:
		newLibs := clone.Liberties(newBlock, nil)
		if ReadLadderAttack(clone, escape, [2]board.Point{newLibs[0], newLibs[1]}) == board.PASS {
			result.Moves = append(result.Moves, escape)
		}
	}

	return result
}

// blockMembers enumerates every point belonging to b by scanning all
// on-board points; fix_atari is not called in a hot loop (only from
// expansion and from the playout's capture-move priority step), so an
// O(T) scan per call is acceptable and avoids duplicating the Position's
// internal block-membership bookkeeping.
func blockMembers(pos *board.Position, b board.Block) []board.Point {
	var out []board.Point
	for _, p := range board.AllPoints() {
		c := pos.At(p)
		if c != board.Black && c != board.White {
			continue
		}
		if pos.BlockAt(p).Root == b.Root {
			out = append(out, p)
		}
	}
	return out
}

// ReadLadderAttack receives a 2-liberty block's defender point p (occupied,
// about to be chased) and its two liberties. For each liberty it clones pos,
// plays the liberty for the attacker, then calls FixAtari from the
// defender's perspective to see whether the defender is still capturable.
// Returns the attack point if exactly one liberty leads to forced capture,
// else PASS.
func ReadLadderAttack(pos *board.Position, p board.Point, libs [2]board.Point) board.Point {
	attacker := pos.At(p).Opponent()
	found := board.PASS
	hits := 0
	for _, lib := range libs {
		clone := pos.Clone()
		if clone.ToMove() != attacker {
			// caller-supplied position must have the attacker to move for
			// this to be a meaningful ladder probe; skip otherwise.
			continue
		}
		if err := clone.PlayMove(lib); err != nil {
			continue
		}
		defenderBlock := clone.BlockAt(p)
		if clone.LibertyCount(defenderBlock) != 1 {
			continue // attacker's move didn't tighten the ladder here
		}
		result := FixAtari(clone, p, AtariOptions{SinglePtOK: true})
		if len(result.Moves) == 0 {
			hits++
			found = lib
		}
	}
	if hits == 1 {
		return found
	}
	return board.PASS
}

// IsSelfAtari reports whether playing p (by the current mover) produces a
// block with exactly one liberty while capturing no opponent stones.
func IsSelfAtari(pos *board.Position, p board.Point) bool {
	before := pos.Captures(pos.ToMove())
	clone := pos.Clone()
	if err := clone.PlayMove(p); err != nil {
		return false
	}
	if clone.Captures(pos.ToMove()) != before {
		return false
	}
	block := clone.BlockAt(p)
	return clone.LibertyCount(block) == 1
}

// GenCaptureMoves scans points (board-wide for MCTS priors; limited to
// neighbourhoods of last/last2 for playout urgency) and, for every distinct
// enemy block in atari emits its liberty, and for every enemy block at two
// liberties (only if twoLibEdgeOnly is false) emits the ladder-attack point
// ReadLadderAttack finds, if any.
func GenCaptureMoves(pos *board.Position, points []board.Point, twoLibEdgeOnly bool) []board.Point {
	mover := pos.ToMove()
	seen := map[board.Point]bool{}
	var moves []board.Point
	for _, p := range points {
		c := pos.At(p)
		if c != mover.Opponent() {
			continue
		}
		block := pos.BlockAt(p)
		if seen[block.Root] {
			continue
		}
		seen[block.Root] = true
		libCount := pos.LibertyCount(block)
		if libCount == 1 {
			moves = append(moves, pos.Liberties(block, nil)...)
			continue
		}
		if libCount == 2 && !twoLibEdgeOnly {
			libs := pos.Liberties(block, nil)
			if atk := ReadLadderAttack(pos, p, [2]board.Point{libs[0], libs[1]}); atk != board.PASS {
				moves = append(moves, atk)
			}
		}
	}
	return moves
}

// CFGDistance returns the Common-Fate-Graph hop distance from `from` to
// `to`: intra-block hops (to another stone of the same block) are free,
// crossing to an orthogonally adjacent point costs one hop. Returns -1 if
// unreachable within maxHops.
func CFGDistance(pos *board.Position, from, to board.Point, maxHops int) int {
	if from == to {
		return 0
	}
	type item struct {
		p    board.Point
		hops int
	}
	visited := map[board.Point]bool{from: true}
	queue := []item{{from, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.hops >= maxHops {
			continue
		}
		frontier := []board.Point{cur.p}
		if c := pos.At(cur.p); c == board.Black || c == board.White {
			frontier = blockMembers(pos, pos.BlockAt(cur.p))
		}
		for _, member := range frontier {
			for _, nb := range board.Neighbors4(member) {
				if !board.IsOnBoard(nb) || visited[nb] {
					continue
				}
				visited[nb] = true
				if nb == to {
					return cur.hops + 1
				}
				queue = append(queue, item{nb, cur.hops + 1})
			}
		}
	}
	return -1
}
