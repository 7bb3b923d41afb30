package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestPlayWithHumanAndHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Table.Seed = 7
	cfg.Table.HistoryDir = dir
	require.NoError(t, cfg.Validate())

	mock := quartz.NewMock(t)
	mock.Set(time.Date(2026, time.May, 4, 9, 30, 0, 0, time.UTC))

	var out bytes.Buffer
	cmd := &PlayCmd{
		Rounds: 2,
		stdin:  strings.NewReader(strings.Repeat("stand\n", 10)),
		stdout: &out,
		clock:  mock,
	}
	require.NoError(t, cmd.play(cfg, quietLogger()))

	text := out.String()
	assert.Contains(t, text, "You, you have")
	assert.Contains(t, text, "You stands")

	paths, err := history.List(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	rec, err := history.Load(paths[0])
	require.NoError(t, err)
	assert.Contains(t, []int64{7, 8}, rec.Seed)
	assert.Equal(t, "2026-05-04T09:30:00Z", rec.StartedAt)
	require.Len(t, rec.Players, 2)
	assert.Equal(t, "You", rec.Players[0].Name)
	assert.NotEmpty(t, rec.Decisions)

	var shown bytes.Buffer
	show := &HistoryShowCmd{File: paths[0], stdout: &shown}
	require.NoError(t, show.Run(&Globals{NoColor: true}))
	assert.Regexp(t, `You (wins|busts|stands)!`, shown.String())
	assert.Contains(t, shown.String(), "step 1  You stand")

	var listed bytes.Buffer
	list := &HistoryListCmd{Dir: dir, stdout: &listed}
	require.NoError(t, list.Run(&Globals{}))
	assert.Equal(t, 2, strings.Count(listed.String(), "\n"))
	assert.Contains(t, listed.String(), "You:")
}

func TestPlayAbandonsStalledRound(t *testing.T) {
	cfg := config.Default()
	cfg.Table.Seed = 3
	cfg.Table.MaxSteps = 2
	cfg.Players = []config.PlayerConfig{{Name: "Dither", Strategy: "scripted", Script: []string{"um", "um", "um"}}}

	var out bytes.Buffer
	cmd := &PlayCmd{Rounds: 1, stdout: &out, stdin: strings.NewReader("")}
	require.NoError(t, cmd.play(cfg, quietLogger()))

	// Only a dealer bust can end the round before the budget runs out
	assert.Regexp(t, `Round abandoned|Dither wins!`, out.String())
}

func TestHistoryShowRaw(t *testing.T) {
	dir := t.TempDir()
	path, err := history.Save(dir, &history.Record{
		RoundID:   "abc",
		StartedAt: "2026-01-01T00:00:00Z",
		Steps:     1,
		Dealer:    history.DealerRecord{Cards: []string{"Td", "9c"}, Score: 19},
		Players:   []history.PlayerRecord{{Name: "Bot", Cards: []string{"Kh", "Ts"}, Score: 20, State: "win"}},
	})
	require.NoError(t, err)

	var raw bytes.Buffer
	require.NoError(t, (&HistoryShowCmd{File: path, Raw: true, stdout: &raw}).Run(&Globals{}))
	assert.Regexp(t, `round_id\s+= "abc"`, raw.String())

	var rendered bytes.Buffer
	require.NoError(t, (&HistoryShowCmd{File: path, stdout: &rendered}).Run(&Globals{NoColor: true}))
	assert.Contains(t, rendered.String(), "Bot wins!")
	assert.Contains(t, rendered.String(), "K♥ T♠ (20)")
}

func TestHistoryShowRejectsBadState(t *testing.T) {
	_, err := toResult(&history.Record{
		Players: []history.PlayerRecord{{Name: "X", State: "asleep"}},
	})
	assert.ErrorContains(t, err, "unknown state")
}

func TestSimulateCommand(t *testing.T) {
	path := writeConfig(t, `
table {
  seed      = 11
  max_steps = 50
}
player "You" { strategy = "human" }
player "Bot" { strategy = "hit" }
`)
	g := &Globals{Config: path, NoColor: true}
	cfg, err := g.loadConfig()
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := &SimulateCmd{Rounds: 50, Workers: 2, Human: "threshold", NoProgress: true, stdout: &out}
	require.NoError(t, cmd.simulate(context.Background(), cfg, quietLogger()))

	text := out.String()
	assert.Contains(t, text, "Simulating 50 rounds with 2 players (seed: 11)")
	assert.Contains(t, text, "Rounds played:")
	assert.Contains(t, text, "You")
	assert.Equal(t, "human", cfg.Players[0].Strategy, "config must not be modified")
}

func TestLoadConfigAppliesLogLevel(t *testing.T) {
	path := writeConfig(t, `player "Bot" { strategy = "stand" }`)

	cfg, err := (&Globals{Config: path, LogLevel: "debug"}).loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Table.LogLevel)

	_, err = (&Globals{Config: path, LogLevel: "loud"}).loadConfig()
	assert.ErrorContains(t, err, "invalid config")
}
