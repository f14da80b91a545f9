package mcts

import (
	"math"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/config"
	"github.com/climengine/weiqi/tactics"
)

// PatternSource supplies the pattern tables expansion priors are seeded
// from; a nil field disables that particular prior (e.g. before a
// large-pattern table has been loaded).
type PatternSource struct {
	Pattern3      *tactics.Pattern3Set
	LargePatterns *tactics.LargePatternTable
}

// seedPriors fills child.Pv/Pw per spec 4.5's prior list, given the parent
// position (before child's move was played) and the move that produced
// child. All priors are additive: several may apply to the same move.
func seedPriors(parent *board.Position, child *Node, cfg config.Tunables, patterns PatternSource) {
	p := child.Move
	if p == board.PASS {
		return
	}

	if isNearLast(parent, p) && isMostlyEmptyArea(parent, p) {
		add(child, cfg.PriorEmptyArea, cfg.PriorEmptyArea/2)
	}

	if patterns.Pattern3 != nil && tactics.Pattern3Match(patterns.Pattern3, parent, p) {
		add(child, cfg.PriorPat3, cfg.PriorPat3)
	}

	if patterns.LargePatterns != nil {
		if q := tactics.LargePatternProbability(patterns.LargePatterns, parent, p); q > 0 {
			w := int(math.Round(math.Sqrt(q) * float64(cfg.PriorLargePattern)))
			add(child, w, w)
		}
	}

	if captured := capturedStoneCount(parent, p); captured > 0 {
		if captured == 1 {
			add(child, cfg.PriorCaptureOne, cfg.PriorCaptureOne)
		} else {
			add(child, cfg.PriorCaptureMany, cfg.PriorCaptureMany)
		}
	}

	if parent.Last() != board.PASS {
		if d := tactics.CFGDistance(parent, parent.Last(), p, 3); d >= 1 && d <= 3 {
			add(child, cfg.PriorCFG[d-1], cfg.PriorCFG[d-1])
		}
	}

	if isLadderSelfAtari(parent, p) {
		add(child, cfg.PriorSelfAtari, 0)
	}
}

func add(n *Node, pv, pw int) {
	n.Pv += pv
	n.Pw += pw
}

// isNearLast reports whether p is an orthogonal or diagonal neighbour of
// parent's last move, the "near last" gate the empty-area prior requires
// (spec 4.5: "if p is near last"), matching the same immediate
// neighbourhood playout's pattern/capture urgency scans.
func isNearLast(pos *board.Position, p board.Point) bool {
	last := pos.Last()
	if last == board.PASS {
		return false
	}
	for _, n := range board.Neighbors4(last) {
		if n == p {
			return true
		}
	}
	for _, n := range board.Diagonals4(last) {
		if n == p {
			return true
		}
	}
	return false
}

// isMostlyEmptyArea reports whether at least 6 of p's 8 surrounding points
// (orthogonal + diagonal) are empty, the "3x3 empty area" shape the
// opening-game PRIOR_EMPTYAREA rewards.
func isMostlyEmptyArea(pos *board.Position, p board.Point) bool {
	empty := 0
	env4, env4d := pos.Env4(p), pos.Env4d(p)
	for i := 0; i < 4; i++ {
		if (env4>>uint(2*i))&3 == uint8(board.Empty) {
			empty++
		}
		if (env4d>>uint(2*i))&3 == uint8(board.Empty) {
			empty++
		}
	}
	return empty >= 6
}

// capturedStoneCount plays p on a throwaway clone of pos and returns how
// many opponent stones it captures.
func capturedStoneCount(pos *board.Position, p board.Point) int {
	mover := pos.ToMove()
	before := pos.Captures(mover)
	clone := pos.Clone()
	if err := clone.PlayMove(p); err != nil {
		return 0
	}
	return clone.Captures(mover) - before
}

// isLadderSelfAtari reports whether playing p leaves the mover's own new
// block either immediately in atari, or in a 2-liberty shape a ladder
// reads out as a forced capture — the "full ladder analysis" self-atari
// check, stronger than tactics.IsSelfAtari's immediate-only test.
func isLadderSelfAtari(pos *board.Position, p board.Point) bool {
	clone := pos.Clone()
	if err := clone.PlayMove(p); err != nil {
		return false
	}
	block := clone.BlockAt(p)
	switch clone.LibertyCount(block) {
	case 1:
		return true
	case 2:
		libs := clone.Liberties(block, nil)
		return tactics.ReadLadderAttack(clone, p, [2]board.Point{libs[0], libs[1]}) != board.PASS
	default:
		return false
	}
}
