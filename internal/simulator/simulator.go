// Package simulator plays many independent rounds in parallel and
// aggregates the outcomes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/table"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Workers  int
	Seed     int64
	MaxSteps int
	Players  []config.PlayerConfig
	Logger   *log.Logger
	Clock    quartz.Clock
}

// ProgressFunc is called after every round with the number finished so far
type ProgressFunc func(done, total int)

// outcome is what one round contributes to the statistics
type outcome struct {
	result  *game.Result
	stalled bool
	failed  bool
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(cfg Config) (*Simulator, error) {
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	if len(cfg.Players) == 0 {
		return nil, fmt.Errorf("at least one player is required")
	}
	for _, p := range cfg.Players {
		if p.IsHuman() {
			return nil, fmt.Errorf("player %s: human seats cannot be simulated", p.Name)
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: cfg, logger: logger.WithPrefix("simulator")}, nil
}

// Run plays every round and returns the aggregated statistics. Round i is
// dealt from seed Seed+i, so results do not depend on the worker count.
// Rounds that hit the step budget or fail in the engine are counted rather
// than aborting the run; only cancellation of ctx stops it early.
func (s *Simulator) Run(ctx context.Context, progress ProgressFunc) (*statistics.Statistics, error) {
	cfg := s.config
	start := cfg.Clock.Now()
	s.logger.Info("Simulation starting",
		"rounds", cfg.Rounds,
		"workers", cfg.Workers,
		"seed", cfg.Seed,
		"players", len(cfg.Players))

	outcomes := make([]outcome, cfg.Rounds)

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range cfg.Rounds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			o, err := s.playRound(i)
			if err != nil {
				return err
			}
			outcomes[i] = o

			if progress != nil {
				mu.Lock()
				done++
				progress(done, cfg.Rounds)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Wait cancels gctx on return; only the caller's context means the run
	// was cut short.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := make([]string, len(cfg.Players))
	for i, p := range cfg.Players {
		names[i] = p.Name
	}
	stats := statistics.New(names)
	for _, o := range outcomes {
		switch {
		case o.stalled:
			stats.Stalled++
		case o.failed:
			stats.Failed++
		default:
			stats.Add(o.result)
		}
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"rounds", stats.Rounds,
		"stalled", stats.Stalled,
		"failed", stats.Failed,
		"elapsed", cfg.Clock.Since(start))
	return stats, nil
}

// playRound plays round i. Only configuration errors are returned; engine
// errors become part of the outcome.
func (s *Simulator) playRound(i int) (outcome, error) {
	cfg := s.config
	seed := cfg.Seed + int64(i)

	r, err := table.NewRound(cfg.Players, table.Options{
		Seed:    seed,
		RoundID: fmt.Sprintf("sim-%d", i),
		Clock:   cfg.Clock,
		Logger:  s.logger,
	})
	if err != nil {
		return outcome{}, err
	}

	res, err := game.PlayRound(r, cfg.MaxSteps)
	switch {
	case err == nil:
		return outcome{result: res}, nil
	case errors.Is(err, game.ErrStepBudgetExceeded):
		s.logger.Debug("Round stalled", "round", i, "seed", seed, "steps", r.Steps())
		return outcome{stalled: true}, nil
	default:
		s.logger.Warn("Round failed", "round", i, "seed", seed, "error", err)
		return outcome{failed: true}, nil
	}
}

// Run is a convenience function for running a simulation in one call
func Run(ctx context.Context, cfg Config, progress ProgressFunc) (*statistics.Statistics, error) {
	sim, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx, progress)
}
