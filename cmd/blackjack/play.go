package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/history"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/table"
)

// PlayCmd plays rounds with the configured table
type PlayCmd struct {
	Rounds     int    `short:"n" default:"1" help:"Number of rounds to play"`
	Seed       int64  `help:"Shuffle seed; round k uses seed+k (0 uses the config, then the clock)"`
	HistoryDir string `type:"path" help:"Directory to save round history (overrides the config)"`
	Verbose    bool   `help:"Show every decision and its reasoning"`

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	clock  quartz.Clock
}

func (cmd *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.newLogger(cfg.Table.LogLevel, cmd.stderr)
	return cmd.play(cfg, logger)
}

func (cmd *PlayCmd) play(cfg *config.Config, logger *log.Logger) error {
	in, out := cmd.stdin, writerOr(cmd.stdout)
	if in == nil {
		in = os.Stdin
	}
	clock := cmd.clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	seed = randutil.ResolveSeed(seed)

	historyDir := cfg.Table.HistoryDir
	if cmd.HistoryDir != "" {
		historyDir = cmd.HistoryDir
	}

	console := display.NewConsole(in, out)
	rounds := max(cmd.Rounds, 1)
	logger.Info("Table open", "players", len(cfg.Players), "rounds", rounds, "seed", seed)

	for k := range rounds {
		roundSeed := seed + int64(k)

		bus := game.NewEventBus()
		bus.Subscribe(display.NewReporter(out, cmd.Verbose))
		recorder := history.NewRecorder(roundSeed, clock)
		bus.Subscribe(recorder)

		r, err := table.NewRound(cfg.Players, table.Options{
			Seed:   roundSeed,
			Clock:  clock,
			Logger: logger,
			Bus:    bus,
			Prompt: console.Prompt,
		})
		if err != nil {
			return err
		}

		res, err := game.PlayRound(r, cfg.Table.MaxSteps)
		if err != nil {
			if errors.Is(err, game.ErrStepBudgetExceeded) {
				logger.Warn("Round abandoned", "round", r.ID(), "steps", r.Steps())
				fmt.Fprintln(out, display.WarningStyle.Render("Round abandoned: nobody acted for too long"))
				continue
			}
			return fmt.Errorf("round %s (seed %d): %w", r.ID(), roundSeed, err)
		}

		fmt.Fprintln(out)
		fmt.Fprint(out, display.RenderResult(res))

		if historyDir == "" {
			continue
		}
		rec, err := recorder.Finish(res)
		if err != nil {
			return err
		}
		path, err := history.Save(historyDir, rec)
		if err != nil {
			return err
		}
		logger.Info("Round saved", "path", path)
	}
	return nil
}
