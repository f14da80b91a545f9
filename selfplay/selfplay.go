// Package selfplay is a concurrent self-play harness driving the core
// search end to end without a GTP front-end: a batch of independent games
// fanned out one goroutine each over errgroup.Group, each tagged with a
// uuid for log/metric correlation. Each game owns one mcts.Tree and
// board.Position pair; no state is shared across games.
package selfplay

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/config"
	"github.com/climengine/weiqi/enginelog"
	"github.com/climengine/weiqi/mcts"
	"github.com/climengine/weiqi/metrics"
	"github.com/climengine/weiqi/tactics"
)

// Options configures a batch of self-play games. Metrics and Log are shared
// across every game's goroutine (Recorder is documented safe for concurrent
// use); Rand seeds a per-game source so games don't contend on one
// generator or reproduce each other's move sequences.
type Options struct {
	Config       config.Tunables
	Patterns     mcts.PatternSource
	Komi         float64
	MaxSimulations int
	MaxMoves     int
	Log          *enginelog.Logger
	Metrics      *metrics.Recorder
	Rand         *rand.Rand
}

// Move records one ply of a finished game's history.
type Move struct {
	Color  board.Color
	Point  board.Point
	Resign bool
}

// Result is one finished self-play game.
type Result struct {
	GameID string
	Moves  []Move
	Score  float64 // positive favours Black, per board.Position.Score
	Final  *board.Position
}

func withDefaults(opts Options) Options {
	if opts.Patterns.Pattern3 == nil {
		opts.Patterns.Pattern3 = tactics.DefaultPattern3Set()
	}
	if opts.MaxSimulations <= 0 {
		opts.MaxSimulations = 500
	}
	if opts.MaxMoves <= 0 {
		opts.MaxMoves = len(board.AllPoints()) * 3
	}
	if opts.Log == nil {
		opts.Log = enginelog.Noop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewUnregisteredRecorder()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	return opts
}

// Run plays a single game to completion (two consecutive passes, or
// resignation, or MaxMoves plies), driving one mcts.Tree with its own
// random source so the game is independent of any other concurrently
// running game.
func Run(ctx context.Context, opts Options) Result {
	opts = withDefaults(opts)
	id := uuid.New().String()
	log := opts.Log

	pos := board.EmptyPosition(opts.Komi)
	tree := mcts.NewTree(pos, mcts.Options{
		Config:   opts.Config,
		Patterns: opts.Patterns,
		Rand:     opts.Rand,
		Log:      log,
		Metrics:  opts.Metrics,
	})

	result := Result{GameID: id}
	for len(result.Moves) < opts.MaxMoves {
		if err := ctx.Err(); err != nil {
			break
		}
		mover := tree.Root.Pos.ToMove()
		stop := func() bool { return ctx.Err() != nil }
		move, resign := tree.Search(opts.MaxSimulations, stop)
		log.Debugf("game %s: %v plays %v (resign=%v)", id, mover, board.FormatVertex(move), resign)

		result.Moves = append(result.Moves, Move{Color: mover, Point: move, Resign: resign})
		if resign {
			break
		}
		tree.PlayAtRoot(move)
		if twoPassTerminal(tree.Root.Pos) {
			break
		}
	}

	result.Final = tree.Root.Pos
	if len(result.Moves) == 0 || !result.Moves[len(result.Moves)-1].Resign {
		result.Score = result.Final.Score(nil)
	} else if last := result.Moves[len(result.Moves)-1]; last.Resign {
		// a resignation hands the game to the resigner's opponent outright
		if last.Color == board.Black {
			result.Score = -1
		} else {
			result.Score = 1
		}
	}
	return result
}

func twoPassTerminal(pos *board.Position) bool {
	return pos.MoveCount() >= 2 && pos.Last() == board.PASS && pos.Last2() == board.PASS
}

// RunMany plays n independent games concurrently, one goroutine per game,
// joined with an errgroup.Group. Every goroutine builds its own
// *rand.Rand seeded from opts.Rand so games never contend on, or
// reproduce, each other's randomness. If ctx is cancelled, in-flight
// searches stop at their next poll and partial results are still
// returned for games that had already finished a move.
func RunMany(ctx context.Context, n int, opts Options) ([]Result, error) {
	opts = withDefaults(opts)
	results := make([]Result, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		seed := opts.Rand.Int63()
		g.Go(func() error {
			gameOpts := opts
			gameOpts.Rand = rand.New(rand.NewSource(seed))
			results[i] = Run(gctx, gameOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
