// Command selfplay drives the core end to end without a GTP front-end:
// it plays a batch of self-play games concurrently and prints one line of
// summary per finished game, plus total elapsed time.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	logging "github.com/op/go-logging"

	"github.com/climengine/weiqi/board"
	"github.com/climengine/weiqi/config"
	"github.com/climengine/weiqi/enginelog"
	"github.com/climengine/weiqi/mcts"
	"github.com/climengine/weiqi/metrics"
	"github.com/climengine/weiqi/selfplay"
	"github.com/climengine/weiqi/tactics"
)

var (
	games       = flag.Int("games", 1, "number of self-play games to run concurrently")
	simulations = flag.Int("simulations", 500, "max MCTS simulations per move")
	maxMoves    = flag.Int("max_moves", len(board.AllPoints())*3, "max plies per game before forced termination")
	komi        = flag.Float64("komi", 7.5, "komi awarded to White")
	configPath  = flag.String("config", "", "path to a TOML tunables file (defaults built in if unset)")
	logLevel    = flag.String("log_level", "INFO", "CRITICAL, ERROR, WARNING, NOTICE, INFO or DEBUG")
)

func usageError(err error) {
	fmt.Fprintf(os.Stderr, "selfplay: %v\n\n", err)
	flag.Usage()
	os.Exit(1)
}

func main() {
	flag.Parse()

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		usageError(err)
	}
	log := enginelog.New("selfplay", level)

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			usageError(err)
		}
	}

	recorder := metrics.NewUnregisteredRecorder()

	opts := selfplay.Options{
		Config: cfg,
		Patterns: mcts.PatternSource{
			Pattern3: tactics.DefaultPattern3Set(),
		},
		Komi:           *komi,
		MaxSimulations: *simulations,
		MaxMoves:       *maxMoves,
		Log:            log,
		Metrics:        recorder,
	}

	start := time.Now()
	results, err := selfplay.RunMany(context.Background(), *games, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selfplay: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	for _, r := range results {
		outcome := "black wins"
		if r.Score < 0 {
			outcome = "white wins"
		}
		fmt.Printf("game %s: %d moves, score %.1f (%s)\n", r.GameID, len(r.Moves), r.Score, outcome)
	}
	fmt.Printf("%d games in %s\n", len(results), elapsed.Round(time.Millisecond))
}
