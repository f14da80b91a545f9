package selfplay_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/climengine/weiqi/config"
	"github.com/climengine/weiqi/selfplay"
)

func testOptions(seed int64) selfplay.Options {
	return selfplay.Options{
		Config:         config.Default(),
		Komi:           7.5,
		MaxSimulations: 20,
		MaxMoves:       40,
		Rand:           rand.New(rand.NewSource(seed)),
	}
}

func TestRunTerminatesAndProducesMoves(t *testing.T) {
	result := selfplay.Run(context.Background(), testOptions(1))
	require.NotEmpty(t, result.GameID)
	require.LessOrEqual(t, len(result.Moves), 40)
	require.NotNil(t, result.Final)
}

func TestRunRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := selfplay.Run(ctx, testOptions(2))
	require.Empty(t, result.Moves)
}

func TestRunManyPlaysIndependentGamesConcurrently(t *testing.T) {
	results, err := selfplay.RunMany(context.Background(), 4, testOptions(3))
	require.NoError(t, err)
	require.Len(t, results, 4)

	seen := map[string]bool{}
	for _, r := range results {
		require.False(t, seen[r.GameID], "game IDs must be unique")
		seen[r.GameID] = true
	}
}

func TestRunManyRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	opts := testOptions(4)
	opts.MaxSimulations = 100000
	opts.MaxMoves = 10000

	results, err := selfplay.RunMany(ctx, 3, opts)
	require.NoError(t, err)
	require.Len(t, results, 3)
}
