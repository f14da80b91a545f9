// Package config loads the tunable constants of the search and playout
// (RAVE/UCB formula, prior weights, early-termination thresholds) from a
// TOML file, falling back to compiled-in defaults that mirror the reference
// engine's own hardcoded values.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Tunables holds every numeric constant the search and playout packages
// read. Field names mirror the constant names used throughout the core
// (spec §4.4/§4.5) so a TOML file can be written by transcription.
type Tunables struct {
	// Self-atari rejection probabilities (§4.4).
	ProbSelfAtariRejectHeuristic float64 `toml:"prob_ssareject"`
	ProbSelfAtariRejectRandom    float64 `toml:"prob_rsareject"`

	// Playout length bound is derived from board size at runtime
	// (N*N*3), not configurable here.

	// Tree shape and RAVE/UCB formula (§4.5).
	ExpandVisits int     `toml:"expand_visits"`
	RaveEquiv    float64 `toml:"rave_equiv"`
	UCBC         float64 `toml:"ucb_c"`

	// Prior seeding weights (§4.5).
	PriorEmptyArea    int    `toml:"prior_emptyarea"`
	PriorPat3         int    `toml:"prior_pat3"`
	PriorLargePattern int    `toml:"prior_largepattern"`
	PriorCaptureOne   int    `toml:"prior_capture_one"`
	PriorCaptureMany  int    `toml:"prior_capture_many"`
	PriorCFG          [3]int `toml:"prior_cfg"`
	PriorSelfAtari    int    `toml:"prior_selfatari"`

	// Early termination and resignation (§4.5).
	Fastplay5Thres  float64 `toml:"fastplay5_thres"`
	Fastplay20Thres float64 `toml:"fastplay20_thres"`
	ResignThreshold float64 `toml:"resign_threshold"`
}

// Default returns the compiled-in tunables. The prior weights mirror the
// ratios of the reference engine this core's design is drawn from: equal
// empty-area and 3x3 pattern priors, larger capture priors (double for
// multi-stone captures than for single-stone ones), a large weight for mined
// large-pattern probability, and a CFG distance falloff of 24/22/8 for hops
// 1/2/3.
func Default() Tunables {
	return Tunables{
		ProbSelfAtariRejectHeuristic: 0.9,
		ProbSelfAtariRejectRandom:    0.5,

		ExpandVisits: 8,
		RaveEquiv:    3500,
		UCBC:         0,

		PriorEmptyArea:    10,
		PriorPat3:         10,
		PriorLargePattern: 100,
		PriorCaptureOne:   15,
		PriorCaptureMany:  30,
		PriorCFG:          [3]int{24, 22, 8},
		PriorSelfAtari:    10,

		Fastplay5Thres:  0.95,
		Fastplay20Thres: 0.80,
		ResignThreshold: 0.1,
	}
}

// Load reads tunables from a TOML file at path, starting from Default() so
// an incomplete file only overrides the fields it sets.
func Load(path string) (Tunables, error) {
	t := Default()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Tunables{}, errors.Wrapf(err, "config: loading %s", path)
	}
	return t, nil
}
