package mcts

import (
	"math/rand"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/config"
	"github.com/climengine/weiqi/enginelog"
	"github.com/climengine/weiqi/metrics"
	"github.com/climengine/weiqi/playout"
)

// State is the search loop's state machine position: Idle -> Searching ->
// Done, one cycle per Search call.
type State int

const (
	Idle State = iota
	Searching
	Done
)

// Options bundles everything a Tree needs beyond the root position: the
// tunable constants, the pattern tables priors are seeded from, the
// process-wide random source (spec 5: "a single random-number generator is
// process-wide and owned by the core"), and the optional logging/metrics
// collaborators.
type Options struct {
	Config   config.Tunables
	Patterns PatternSource
	Rand     *rand.Rand
	Log      *enginelog.Logger
	Metrics  *metrics.Recorder
}

// Tree owns the root node and drives simulations against it.
type Tree struct {
	Root  *Node
	opts  Options
	state State
}

// NewTree wraps rootPos as the root of a fresh tree with no children.
func NewTree(rootPos *board.Position, opts Options) *Tree {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Log == nil {
		opts.Log = enginelog.Noop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewUnregisteredRecorder()
	}
	return &Tree{
		Root:  &Node{Pos: rootPos, Move: board.PASS},
		opts:  opts,
		state: Idle,
	}
}

// State reports the tree's current search-loop state.
func (t *Tree) State() State { return t.state }

// PlayAtRoot advances the root to the child reached by move, retaining
// that child's subtree (and its accumulated statistics) so future searches
// benefit from work already done. If move has no matching child (never
// visited), a fresh unexpanded node is built instead.
func (t *Tree) PlayAtRoot(move board.Point) {
	for _, c := range t.Root.Children {
		if c.Move == move {
			t.Root = c
			return
		}
	}
	child := newNode(t.Root.Pos, move)
	if child == nil {
		// move was illegal; fall back to a pass so the caller always gets
		// a usable root back.
		clone := t.Root.Pos.Clone()
		clone.PassMove()
		child = &Node{Pos: clone, Move: board.PASS}
	}
	t.Root = child
}

// Search runs simulations until stop() reports true, an early-termination
// threshold fires, or maxSimulations is reached, then returns the chosen
// move. resign is true when the best child's winrate falls below the
// configured resignation threshold.
func (t *Tree) Search(maxSimulations int, stop func() bool) (move board.Point, resign bool) {
	t.state = Searching
	cfg := t.opts.Config

	fastplay5 := int(0.05 * float64(maxSimulations))
	fastplay20 := int(0.2 * float64(maxSimulations))

	sims := 0
	for sims < maxSimulations {
		if stop != nil && stop() {
			break
		}
		t.simulate()
		sims++
		t.opts.Metrics.Simulations.Inc()

		if best := t.bestChild(); best != nil {
			wr := winrate(best)
			if sims >= fastplay5 && wr >= cfg.Fastplay5Thres {
				t.opts.Metrics.FastplayTerminations.WithLabelValues("fastplay5").Inc()
				t.opts.Log.Infof("fastplay5 termination at %d simulations, winrate %.3f", sims, wr)
				break
			}
			if sims >= fastplay20 && wr >= cfg.Fastplay20Thres {
				t.opts.Metrics.FastplayTerminations.WithLabelValues("fastplay20").Inc()
				t.opts.Log.Infof("fastplay20 termination at %d simulations, winrate %.3f", sims, wr)
				break
			}
		}
	}
	t.state = Done

	best := t.bestChild()
	if best == nil {
		return board.PASS, false
	}
	wr := winrate(best)
	if wr < cfg.ResignThreshold {
		t.opts.Metrics.Resignations.Inc()
		return best.Move, true
	}
	if best.Move == board.PASS {
		t.opts.Metrics.Passes.Inc()
	}
	return best.Move, false
}

// bestChild picks the root child with the greatest raw visit count,
// breaking ties by winrate, then by random choice.
func (t *Tree) bestChild() *Node {
	var best *Node
	for _, c := range t.Root.Children {
		switch {
		case best == nil:
			best = c
		case c.V > best.V:
			best = c
		case c.V == best.V:
			if winrate(c) > winrate(best) {
				best = c
			} else if winrate(c) == winrate(best) && t.opts.Rand.Intn(2) == 0 {
				best = c
			}
		}
	}
	return best
}

func winrate(n *Node) float64 {
	if n.V == 0 {
		return 0
	}
	return float64(n.W) / float64(n.V)
}

// simulate runs one descent/expand/playout/backprop cycle from the root.
func (t *Tree) simulate() {
	path := t.descend()
	leaf := t.Root
	if len(path) > 0 {
		leaf = path[len(path)-1]
	}

	if leaf.isLeaf() && leaf.V >= t.opts.Config.ExpandVisits && !twoPassTerminal(leaf.Pos) {
		t.expand(leaf)
		if child := t.selectChild(leaf); child != nil {
			path = append(path, child)
			leaf = child
		}
	}

	simMover := leaf.Pos.ToMove()
	amaf := playout.NewAMAFMap()
	var result playout.Result
	if twoPassTerminal(leaf.Pos) {
		result.Score = leaf.Pos.Score(nil)
		if simMover == board.White {
			result.Score = -result.Score
		}
	} else {
		result = playout.Run(leaf.Pos, amaf, playout.Options{
			Pattern3:                     t.opts.Patterns.Pattern3,
			LargePatterns:                t.opts.Patterns.LargePatterns,
			Rand:                         t.opts.Rand,
			ProbSelfAtariRejectHeuristic: t.opts.Config.ProbSelfAtariRejectHeuristic,
			ProbSelfAtariRejectRandom:    t.opts.Config.ProbSelfAtariRejectRandom,
		})
	}
	t.opts.Metrics.PlayoutLength.Observe(float64(result.Moves))

	blackWins := (result.Score > 0) == (simMover == board.Black)
	t.backpropagate(path, blackWins, amaf, simMover)
}

// twoPassTerminal reports whether the last two plies were both passes,
// meaning the position is scored as-is with no further expansion.
func twoPassTerminal(pos *board.Position) bool {
	return pos.MoveCount() >= 2 && pos.Last() == board.PASS && pos.Last2() == board.PASS
}

// descend walks from the root choosing the most urgent child at each step
// (shuffling first so equal-urgency ties break randomly), stopping at the
// first node with no children. Returns the path of visited nodes, root
// excluded.
func (t *Tree) descend() []*Node {
	var path []*Node
	node := t.Root
	for !node.isLeaf() {
		t.opts.Rand.Shuffle(len(node.Children), func(i, j int) {
			node.Children[i], node.Children[j] = node.Children[j], node.Children[i]
		})
		chosen := mostUrgent(node.Children, node.V, t.opts.Config)
		node = chosen
		path = append(path, node)
	}
	return path
}

// expand generates every legal non-eye move (IsLegal already excludes eye
// fills) plus PASS as children of leaf, seeding each child's priors.
func (t *Tree) expand(leaf *Node) {
	for _, p := range board.AllPoints() {
		if !leaf.Pos.IsLegal(p) {
			continue
		}
		child := newNode(leaf.Pos, p)
		if child == nil {
			continue
		}
		seedPriors(leaf.Pos, child, t.opts.Config, t.opts.Patterns)
		leaf.Children = append(leaf.Children, child)
	}
	if passChild := newNode(leaf.Pos, board.PASS); passChild != nil {
		leaf.Children = append(leaf.Children, passChild)
	}
}

// selectChild picks the single most urgent freshly-expanded child of leaf
// to fold into the playout path, per spec 4.5's "leaf's chosen child after
// expansion".
func (t *Tree) selectChild(leaf *Node) *Node {
	if len(leaf.Children) == 0 {
		return nil
	}
	return mostUrgent(leaf.Children, leaf.V, t.opts.Config)
}

func mostUrgent(children []*Node, parentV int, cfg config.Tunables) *Node {
	var chosen *Node
	bestUrgency := 0.0
	for _, c := range children {
		u := urgency(c, parentV, cfg)
		if chosen == nil || u > bestUrgency {
			chosen, bestUrgency = c, u
		}
	}
	return chosen
}

// backpropagate updates v/w for every node on path (blackWins decides each
// node's win/loss since v/w is parent-mover-relative), then spreads AMAF
// statistics to every child of every ancestor whose move was played with
// the matching colour during the playout. simMover is the mover at the
// node the playout actually ran from, the reference colour amaf's signs
// are relative to.
func (t *Tree) backpropagate(path []*Node, blackWins bool, amaf playout.AMAFMap, simMover board.Color) {
	// The root's own visit count is not a parent-mover-relative win
	// statistic (root has no parent); it only tracks how many simulations
	// have run through it, which both gates its own expansion and feeds
	// the UCB log(V) term for its children's urgency.
	t.Root.V++

	ancestors := make([]*Node, 0, len(path)+1)
	ancestors = append(ancestors, t.Root)
	ancestors = append(ancestors, path...)

	for i, node := range path {
		node.V++
		if nodeWinsForParentMover(node, blackWins) {
			node.W++
		}
		t.spreadAMAF(ancestors[i], amaf, blackWins, simMover)
	}
	// The simulated node itself is also an ancestor of any children it may
	// already own (e.g. it was expanded in this very simulation).
	t.spreadAMAF(ancestors[len(ancestors)-1], amaf, blackWins, simMover)
}

// nodeWinsForParentMover reports whether the game outcome favoured the
// player who chose to play node.Move (node.ParentMover()), given the
// absolute black/white outcome of the playout.
func nodeWinsForParentMover(node *Node, blackWins bool) bool {
	return (node.ParentMover() == board.Black) == blackWins
}

// spreadAMAF increments Av (and, on a matching win, Aw) for every child of
// ancestor whose move appears in amaf with the sign corresponding to
// ancestor's own mover: +1 if ancestor's mover is the playout's simMover,
// -1 if it is simMover's opponent.
func (t *Tree) spreadAMAF(ancestor *Node, amaf playout.AMAFMap, blackWins bool, simMover board.Color) {
	mover := ancestor.Pos.ToMove()
	expectedSign := int8(-1)
	if mover == simMover {
		expectedSign = 1
	}
	for _, c := range ancestor.Children {
		if c.Move == board.PASS || int(c.Move) < 0 || int(c.Move) >= len(amaf) {
			continue
		}
		if amaf[c.Move] != expectedSign {
			continue
		}
		c.Av++
		if nodeWinsForParentMover(c, blackWins) {
			c.Aw++
		}
	}
}
