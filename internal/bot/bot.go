// Package bot provides automated players for the round engine.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// Strategy names accepted by New
const (
	StrategyHit       = "hit"
	StrategyStand     = "stand"
	StrategyThreshold = "threshold"
	StrategyRandom    = "random"
	StrategyScripted  = "scripted"
)

// Options tunes the strategies built by New. Fields a strategy does not use
// are ignored.
type Options struct {
	StandOn        int
	HitProbability float64
	Script         []string
	RNG            *rand.Rand
	Logger         *log.Logger
}

// Names returns the registered strategy names in sorted order
func Names() []string {
	names := []string{StrategyHit, StrategyStand, StrategyThreshold, StrategyRandom, StrategyScripted}
	slices.Sort(names)
	return names
}

// New builds the strategy registered under name
func New(name string, opts Options) (game.Agent, error) {
	logger := opts.Logger
	if logger != nil {
		logger = logger.WithPrefix("bot").With("strategy", name)
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyHit:
		return HitBot{}, nil
	case StrategyStand:
		return StandBot{}, nil
	case StrategyThreshold:
		return NewThresholdBot(opts.StandOn, logger), nil
	case StrategyRandom:
		rng := opts.RNG
		if rng == nil {
			rng = randutil.New(randutil.ResolveSeed(0))
		}
		p := opts.HitProbability
		if p == 0 {
			p = 0.5
		}
		return NewRandBot(rng, p, logger), nil
	case StrategyScripted:
		return ParseScript(opts.Script), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}
