// Package mcts implements the Monte-Carlo tree search over board.Position:
// node allocation, urgency-based selection, prior-seeded expansion, playout
// integration, RAVE backpropagation, and the top-level search loop with
// early termination and resignation.
package mcts

import (
	"math"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/config"
)

// Node represents a game state reachable from the root by a specific move
// sequence. v/w are measured from the perspective of the node's PARENT's
// mover (the player who chose to play Move): this lets a parent compare
// its children's winrates directly without per-ply sign flips during
// selection. Children are owned by their parent; the tree is a strict
// tree, not a DAG.
type Node struct {
	Pos  *board.Position
	Move board.Point

	V, W   int // visits, wins (parent-mover perspective)
	Pv, Pw int // prior visits, prior wins (seeded at expansion)
	Av, Aw int // AMAF visits, AMAF wins (parent-mover perspective)

	Children []*Node
}

// newNode clones parentPos, plays move on the clone, and wraps the result.
// Returns nil if move turns out illegal (the caller is expected to have
// already filtered via IsLegal, so this is a defensive fallback).
func newNode(parentPos *board.Position, move board.Point) *Node {
	clone := parentPos.Clone()
	if err := clone.PlayMove(move); err != nil {
		return nil
	}
	return &Node{Pos: clone, Move: move}
}

// ParentMover returns the colour that played Move to reach this node: the
// opponent of whoever is next to move at n.Pos.
func (n *Node) ParentMover() board.Color {
	return n.Pos.ToMove().Opponent()
}

// isLeaf reports whether n has not yet been expanded.
func (n *Node) isLeaf() bool { return len(n.Children) == 0 }

// urgency computes the UCB1-RAVE selection value for child c, given the
// parent's total visit count parentV (used for the logarithmic UCB term).
func urgency(c *Node, parentV int, cfg config.Tunables) float64 {
	n := float64(c.V + c.Pv)
	w := float64(c.W + c.Pw)
	if n == 0 {
		return math.Inf(1) // unvisited children are always selected first
	}
	winrate := w / n

	raveN := float64(c.Av)
	var raveWR, beta float64
	if raveN > 0 {
		raveWR = float64(c.Aw) / raveN
		beta = raveN / (raveN + n + raveN*n/cfg.RaveEquiv)
	}

	value := (1-beta)*winrate + beta*raveWR
	if parentV <= 0 || cfg.UCBC == 0 {
		return value
	}
	return value + cfg.UCBC*math.Sqrt(math.Log(float64(parentV))/n)
}
