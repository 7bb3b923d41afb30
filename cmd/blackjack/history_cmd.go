package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/history"
)

// HistoryCmd is the root command for saved rounds
type HistoryCmd struct {
	List HistoryListCmd `cmd:"" help:"List saved rounds"`
	Show HistoryShowCmd `cmd:"" help:"Render a saved round"`
}

// HistoryListCmd lists the records in a history directory
type HistoryListCmd struct {
	Dir string `arg:"" optional:"" type:"path" help:"History directory (defaults to the config's history_dir)"`

	stdout io.Writer
}

func (cmd *HistoryListCmd) Run(g *Globals) error {
	dir := cmd.Dir
	if dir == "" {
		cfg, err := g.loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.Table.HistoryDir
	}
	if dir == "" {
		return fmt.Errorf("no history directory given and history_dir is not configured")
	}

	out := writerOr(cmd.stdout)
	paths, err := history.List(dir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		rec, err := history.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(out, "%s  %s  %d steps  %s\n",
			rec.RoundID, rec.StartedAt, rec.Steps, summarise(rec))
	}
	return nil
}

// HistoryShowCmd renders one saved round
type HistoryShowCmd struct {
	File string `arg:"" type:"path" help:"Record file"`
	Raw  bool   `help:"Print the stored HCL instead of the rendered table"`

	stdout io.Writer
}

func (cmd *HistoryShowCmd) Run(g *Globals) error {
	out := writerOr(cmd.stdout)
	display.SetColor(!g.NoColor)

	rec, err := history.Load(filepath.Clean(cmd.File))
	if err != nil {
		return err
	}
	if cmd.Raw {
		_, err := out.Write(history.Encode(rec))
		return err
	}

	res, err := toResult(rec)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seed %d, started %s\n\n", rec.Seed, rec.StartedAt)
	for _, d := range rec.Decisions {
		line := fmt.Sprintf("step %d  %s %s", d.Step, d.Player, d.Action)
		if d.Reasoning != "" {
			line += display.InfoStyle.Render(" - " + d.Reasoning)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, display.RenderResult(res))
	return nil
}

// toResult rebuilds a result from a record so it renders like a live round
func toResult(rec *history.Record) (*game.Result, error) {
	dealerCards, err := history.Cards(rec.Dealer.Cards)
	if err != nil {
		return nil, fmt.Errorf("dealer: %w", err)
	}

	res := &game.Result{
		RoundID:    rec.RoundID,
		Steps:      rec.Steps,
		Dealer:     game.DealerView{Cards: dealerCards, Score: rec.Dealer.Score},
		DealerWins: rec.DealerWins,
	}
	for _, p := range rec.Players {
		cards, err := history.Cards(p.Cards)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		state, ok := game.ParsePlayerState(p.State)
		if !ok {
			return nil, fmt.Errorf("player %s: unknown state %q", p.Name, p.State)
		}
		res.Players = append(res.Players, game.PlayerView{Name: p.Name, Cards: cards, Score: p.Score, State: state})
	}
	return res, nil
}

func summarise(rec *history.Record) string {
	parts := make([]string, 0, len(rec.Players)+1)
	for _, p := range rec.Players {
		parts = append(parts, fmt.Sprintf("%s:%s", p.Name, p.State))
	}
	parts = append(parts, fmt.Sprintf("dealer:%d", rec.Dealer.Score))
	return strings.Join(parts, " ")
}

func writerOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
