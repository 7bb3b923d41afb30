package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/tui"
	"github.com/mattn/go-isatty"
)

// SimulateCmd runs many rounds between bots
type SimulateCmd struct {
	Rounds     int    `short:"n" default:"10000" help:"Number of rounds to simulate"`
	Workers    int    `short:"w" default:"0" help:"Parallel workers (0 = GOMAXPROCS)"`
	Seed       int64  `help:"Base seed; round i uses seed+i (0 uses the config, then the clock)"`
	MaxSteps   int    `help:"Step budget per round (0 uses the config)"`
	NoProgress bool   `help:"Disable the progress display"`
	Human      string `default:"threshold" enum:"${strategies}" help:"Strategy standing in for human seats"`

	stdout io.Writer
	stderr io.Writer
}

func (cmd *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Table.LogLevel
	if g.LogLevel == "" && level == "info" {
		// per round info logs would drown the progress display
		level = "warn"
	}
	logger := g.newLogger(level, cmd.stderr)

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()
	return cmd.simulate(ctx, cfg, logger)
}

func (cmd *SimulateCmd) simulate(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	out := writerOr(cmd.stdout)

	seed := cmd.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	seed = randutil.ResolveSeed(seed)

	maxSteps := cfg.Table.MaxSteps
	if cmd.MaxSteps > 0 {
		maxSteps = cmd.MaxSteps
	}

	players := make([]config.PlayerConfig, len(cfg.Players))
	copy(players, cfg.Players)
	for i := range players {
		if players[i].IsHuman() {
			logger.Info("Human seat played by bot", "player", players[i].Name, "strategy", cmd.Human)
			players[i].Strategy = cmd.Human
			players[i].DecisionTimeout = 0
		}
	}

	sim, err := simulator.New(simulator.Config{
		Rounds:   cmd.Rounds,
		Workers:  cmd.Workers,
		Seed:     seed,
		MaxSteps: maxSteps,
		Players:  players,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Simulating %d rounds with %d players (seed: %d)\n", cmd.Rounds, len(players), seed)

	var stats *statistics.Statistics
	work := func(ctx context.Context, progress func(done, total int)) error {
		var err error
		stats, err = sim.Run(ctx, progress)
		return err
	}

	if cmd.NoProgress || !isTerminal(out) {
		err = work(ctx, nil)
	} else {
		err = tui.RunWithProgress(ctx, out, "Simulating", cmd.Rounds, logger, work)
	}
	if err != nil {
		return err
	}

	simulator.PrintSummary(out, stats)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func strategyVars() string {
	return strings.Join(bot.Names(), ",")
}
