// Package playout implements the biased random game (mcplayout) that scores
// a leaf position for the search tree, tracking an AMAF map of who played
// each point first.
package playout

import (
	"math/rand"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/tactics"
)

// Default self-atari rejection probabilities, used when Options leaves
// them at zero: a candidate move that would leave its own block in atari
// is discarded with this probability and the next candidate of the same
// kind is tried.
const (
	DefaultProbSelfAtariRejectHeuristic = 0.9 // capture/pattern moves
	DefaultProbSelfAtariRejectRandom    = 0.5 // the random fallback
)

// AMAFMap records which colour played each point first during a playout:
// +1 for the root mover, -1 for the opponent, 0 if the point was never
// played. Keyed by board.Point, sized by the caller (board.T entries is
// always enough).
type AMAFMap []int8

// NewAMAFMap allocates a zeroed map sized for the board.
func NewAMAFMap() AMAFMap { return make(AMAFMap, board.T) }

// Options configures a single mcplayout call. Rand must be non-nil for
// reproducible search; Pattern3/LargePatterns may be nil (heuristic move
// generation then falls back to capture moves and random play only).
// ProbSelfAtariRejectHeuristic/Random default to
// DefaultProbSelfAtariRejectHeuristic/Random when left at zero.
type Options struct {
	Pattern3      *tactics.Pattern3Set
	LargePatterns *tactics.LargePatternTable
	Rand          *rand.Rand
	RecordOwner   bool

	ProbSelfAtariRejectHeuristic float64
	ProbSelfAtariRejectRandom    float64
}

func (o Options) probSelfAtariRejectHeuristic() float64 {
	if o.ProbSelfAtariRejectHeuristic == 0 {
		return DefaultProbSelfAtariRejectHeuristic
	}
	return o.ProbSelfAtariRejectHeuristic
}

func (o Options) probSelfAtariRejectRandom() float64 {
	if o.ProbSelfAtariRejectRandom == 0 {
		return DefaultProbSelfAtariRejectRandom
	}
	return o.ProbSelfAtariRejectRandom
}

// Result is the outcome of one playout.
type Result struct {
	Score float64 // Chinese-area score from the root mover's perspective
	Moves int
	Owner []board.Color // filled iff Options.RecordOwner
}

// maxGameLen bounds playout length at roughly N*N*3, the usual cutoff for
// a biased random playout that can otherwise stall in long capturing races.
func maxGameLen() int { return len(board.AllPoints()) * 3 }

// Run plays pos forward to termination with biased random moves, recording
// first-play colours into amaf (if non-nil), and returns the scored
// outcome. pos is not mutated; Run clones it internally.
func Run(pos *board.Position, amaf AMAFMap, opts Options) Result {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	rootMover := pos.ToMove()
	work := pos.Clone()

	maxLen := maxGameLen()
	consecutivePasses := 0
	n := 0
	for n < maxLen && consecutivePasses < 2 {
		mover := work.ToMove()
		move, ok := choosePly(work, rng, opts)
		if !ok {
			work.PassMove()
			consecutivePasses++
			n++
			continue
		}
		if err := work.PlayMove(move); err != nil {
			// choosePly only hands back moves it verified via IsLegal; a
			// race against a concurrent mutation of work cannot happen
			// (work is local), so this path is unreachable in practice.
			work.PassMove()
			consecutivePasses++
			n++
			continue
		}
		consecutivePasses = 0
		recordAMAF(amaf, move, mover, rootMover)
		n++
	}

	var ownerMap []board.Color
	if opts.RecordOwner {
		ownerMap = make([]board.Color, board.T)
	}
	score := work.Score(ownerMap)
	if rootMover == board.White {
		score = -score
	}
	return Result{Score: score, Moves: n, Owner: ownerMap}
}

// recordAMAF sets amaf[p] the first time p is played in the playout: +1 if
// the mover of this ply is the root's mover, else -1. Later plays at the
// same point (after a capture reopens it) do not overwrite the first
// record, per the "records who played each point first" rule.
func recordAMAF(amaf AMAFMap, p board.Point, mover, rootMover board.Color) {
	if amaf == nil || p == board.PASS {
		return
	}
	if amaf[p] != 0 {
		return
	}
	if mover == rootMover {
		amaf[p] = 1
	} else {
		amaf[p] = -1
	}
}

// choosePly generates candidates in priority order (capture, pattern,
// random) and returns the first one that survives legality and self-atari
// rejection. ok is false only when every kind is exhausted, meaning the
// ply is a pass.
func choosePly(pos *board.Position, rng *rand.Rand, opts Options) (board.Point, bool) {
	neighbourhood := lastMoveNeighbourhood(pos)

	if len(neighbourhood) > 0 {
		var urgent []board.Point
		urgent = append(urgent, ownAtariSaves(pos, neighbourhood)...)
		// Playout urgency only reacts to outright atari, not deeper ladder
		// reading (that belongs to MCTS prior seeding), so twoLibEdgeOnly
		// is set to skip the two-liberty branch entirely.
		urgent = append(urgent, tactics.GenCaptureMoves(pos, neighbourhood, true)...)
		if p, ok := chooseFrom(pos, rng, urgent, opts.probSelfAtariRejectHeuristic()); ok {
			return p, true
		}

		if opts.Pattern3 != nil {
			var patternMoves []board.Point
			for _, p := range neighbourhood {
				if pos.At(p) != board.Empty {
					continue
				}
				if tactics.Pattern3Match(opts.Pattern3, pos, p) && pos.IsLegal(p) {
					patternMoves = append(patternMoves, p)
				}
			}
			if p, ok := chooseFrom(pos, rng, patternMoves, opts.probSelfAtariRejectHeuristic()); ok {
				return p, true
			}
		}
	}

	random := rotatedEmptyScan(pos, rng)
	return chooseFrom(pos, rng, random, opts.probSelfAtariRejectRandom())
}

// ownAtariSaves finds blocks of the mover's own colour within neighbourhood
// that are in atari and returns FixAtari's saving moves for each distinct
// one. pos.ToMove() is the mover about to play, matching FixAtari's
// precondition that the block being rescued belongs to the current mover.
func ownAtariSaves(pos *board.Position, neighbourhood []board.Point) []board.Point {
	mover := pos.ToMove()
	seen := map[board.Point]bool{}
	var moves []board.Point
	for _, p := range neighbourhood {
		if pos.At(p) != mover {
			continue
		}
		block := pos.BlockAt(p)
		if seen[block.Root] {
			continue
		}
		seen[block.Root] = true
		result := tactics.FixAtari(pos, p, tactics.AtariOptions{SinglePtOK: true})
		if result.InAtari {
			moves = append(moves, result.Moves...)
		}
	}
	return moves
}

// lastMoveNeighbourhood returns the neighbours (orthogonal and diagonal) of
// last and last2, border cells included, the scope capture and pattern moves
// are generated within; callers skip border cells by their colour.
func lastMoveNeighbourhood(pos *board.Position) []board.Point {
	var pts []board.Point
	for _, centre := range [2]board.Point{pos.Last(), pos.Last2()} {
		if centre == board.PASS {
			continue
		}
		orth := board.Neighbors4(centre)
		diag := board.Diagonals4(centre)
		pts = append(pts, orth[:]...)
		pts = append(pts, diag[:]...)
	}
	return pts
}

// rotatedEmptyScan returns every empty point, ordered starting from a
// random offset into board.AllPoints() and wrapping around, matching the
// spec's "random empty point via a rotated scan of the board".
func rotatedEmptyScan(pos *board.Position, rng *rand.Rand) []board.Point {
	all := board.AllPoints()
	if len(all) == 0 {
		return nil
	}
	start := rng.Intn(len(all))
	out := make([]board.Point, 0, len(all))
	for i := 0; i < len(all); i++ {
		p := all[(start+i)%len(all)]
		if pos.At(p) == board.Empty {
			out = append(out, p)
		}
	}
	return out
}

// chooseFrom samples candidates uniformly without replacement (via a
// Fisher-Yates-style partial shuffle), skipping illegal moves and
// rejecting self-atari moves with probability rejectProb. Returns the
// first candidate that survives, or ok=false if every candidate is
// exhausted.
func chooseFrom(pos *board.Position, rng *rand.Rand, candidates []board.Point, rejectProb float64) (board.Point, bool) {
	n := len(candidates)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(n-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		p := candidates[i]

		if !pos.IsLegal(p) {
			continue
		}
		if tactics.IsSelfAtari(pos, p) && rng.Float64() < rejectProb {
			continue
		}
		return p, true
	}
	return board.PASS, false
}
