package simulator

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seats() []config.PlayerConfig {
	return []config.PlayerConfig{
		{Name: "Hitter", Strategy: bot.StrategyHit},
		{Name: "Dealerish", Strategy: bot.StrategyThreshold, StandOn: 17},
		{Name: "Coin", Strategy: bot.StrategyRandom, HitProbability: 0.5},
	}
}

func testConfig(rounds, workers int) Config {
	return Config{
		Rounds:   rounds,
		Workers:  workers,
		Seed:     12345,
		MaxSteps: 100,
		Players:  seats(),
		Logger:   log.New(io.Discard),
	}
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{Rounds: 0, Players: seats()})
	assert.ErrorContains(t, err, "rounds must be positive")

	_, err = New(Config{Rounds: 1})
	assert.ErrorContains(t, err, "at least one player")

	_, err = New(Config{Rounds: 1, Players: []config.PlayerConfig{{Name: "You", Strategy: config.StrategyHuman}}})
	assert.ErrorContains(t, err, "cannot be simulated")

	sim, err := New(Config{Rounds: 1, Players: seats()})
	require.NoError(t, err)
	assert.Positive(t, sim.config.Workers)
}

func TestRunCountsEveryRound(t *testing.T) {
	stats, err := Run(context.Background(), testConfig(200, 4), nil)
	require.NoError(t, err)

	assert.Equal(t, 200, stats.Attempted())
	require.NoError(t, stats.Validate())
	for _, p := range stats.Players() {
		assert.Equal(t, stats.Rounds, p.Rounds, p.Name)
	}
	assert.Positive(t, stats.Player("Dealerish").Wins)
}

func TestRunIsIndependentOfWorkers(t *testing.T) {
	serial, err := Run(context.Background(), testConfig(100, 1), nil)
	require.NoError(t, err)
	parallel, err := Run(context.Background(), testConfig(100, 8), nil)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRunCountsStalledRounds(t *testing.T) {
	cfg := testConfig(10, 2)
	cfg.Players = []config.PlayerConfig{
		// unrecognised words never change state, so the round cannot end
		{Name: "Dither", Strategy: bot.StrategyScripted, Script: []string{"maybe", "maybe", "maybe", "maybe", "maybe"}},
	}
	cfg.MaxSteps = 3

	stats, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Attempted())
	assert.Positive(t, stats.Stalled)

	// A dealer bust is the only way such a round can finish
	dither := stats.Player("Dither")
	assert.Equal(t, stats.Rounds, dither.Wins)
	assert.Equal(t, stats.Rounds, stats.DealerBusts)
}

func TestRunReportsProgress(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []int
	)
	_, err := Run(context.Background(), testConfig(25, 3), func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 25, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)

	require.Len(t, calls, 25)
	for i, done := range calls {
		assert.Equal(t, i+1, done)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testConfig(50, 2), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSucceedsUnderLiveContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim, err := New(testConfig(1, 1))
	require.NoError(t, err)

	stats, err := sim.Run(ctx, nil)
	require.NoError(t, err, "a finished run must not report the worker group's own cancellation")
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.Attempted())
	assert.NoError(t, ctx.Err())
}

func TestPrintSummary(t *testing.T) {
	display.SetColor(false)

	stats, err := Run(context.Background(), testConfig(20, 2), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats)
	out := buf.String()
	assert.Contains(t, out, "SIMULATION RESULTS")
	assert.Contains(t, out, "Rounds played: 20")
	assert.Contains(t, out, "Hitter")
	assert.Contains(t, out, "Dealerish")
}
