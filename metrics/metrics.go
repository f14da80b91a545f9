// Package metrics instruments the search loop for scraping, replacing the
// teacher's plain "playouts/second" log-line reporting (robot.go) with
// Prometheus counters and histograms.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder holds every metric the search loop and self-play harness emit.
// Construct one per process with NewRecorder and register it with a
// prometheus.Registerer; a Recorder is safe for concurrent use across
// self-play goroutines (each games's mcts.Tree is independent, but they
// may share one process-wide Recorder).
type Recorder struct {
	Simulations          prometheus.Counter
	PlayoutLength        prometheus.Histogram
	Resignations         prometheus.Counter
	Passes               prometheus.Counter
	FastplayTerminations *prometheus.CounterVec
}

// NewRecorder builds a Recorder and registers its metrics with reg. reg may
// be prometheus.NewRegistry() for test isolation or prometheus's default
// registerer in production.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		Simulations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weiqi",
			Subsystem: "mcts",
			Name:      "simulations_total",
			Help:      "Total MCTS simulations run across all searches.",
		}),
		PlayoutLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weiqi",
			Subsystem: "playout",
			Name:      "length_moves",
			Help:      "Number of moves played per mcplayout call.",
			Buckets:   prometheus.LinearBuckets(0, 20, 15),
		}),
		Resignations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weiqi",
			Subsystem: "mcts",
			Name:      "resignations_total",
			Help:      "Number of searches that resigned at best_move time.",
		}),
		Passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weiqi",
			Subsystem: "mcts",
			Name:      "passes_total",
			Help:      "Number of searches whose chosen best move was PASS.",
		}),
		FastplayTerminations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weiqi",
			Subsystem: "mcts",
			Name:      "fastplay_terminations_total",
			Help:      "Early-termination triggers by threshold (fastplay5, fastplay20).",
		}, []string{"threshold"}),
	}

	reg.MustRegister(r.Simulations, r.PlayoutLength, r.Resignations, r.Passes, r.FastplayTerminations)
	return r
}

// NewUnregisteredRecorder builds a Recorder registered only with a fresh
// private registry that nothing gathers, for callers that skip scraping
// (e.g. tests that only exercise the counters directly).
func NewUnregisteredRecorder() *Recorder {
	return NewRecorder(prometheus.NewRegistry())
}
