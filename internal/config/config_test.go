package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.HasHuman())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.hcl")
	src := `
table {
  seed        = 42
  max_steps   = 50
  history_dir = "rounds"
  log_level   = "debug"
}

player "Alice" {
  strategy         = "threshold"
  stand_on         = 15
  decision_timeout = 3
}

player "Bob" {
  strategy        = "random"
  hit_probability = 0.25
}

player "Cy" {
  strategy = "scripted"
  script   = ["hit", "stand"]
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Table.Seed)
	assert.Equal(t, 50, cfg.Table.MaxSteps)
	assert.Equal(t, "rounds", cfg.Table.HistoryDir)
	assert.Equal(t, "debug", cfg.Table.LogLevel)
	require.Len(t, cfg.Players, 3)

	alice := cfg.Player("Alice")
	require.NotNil(t, alice)
	assert.Equal(t, 15, alice.StandOn)
	assert.Equal(t, 3*time.Second, alice.Timeout())
	assert.InDelta(t, 0.25, cfg.Player("Bob").HitProbability, 1e-9)
	assert.Equal(t, []string{"hit", "stand"}, cfg.Player("Cy").Script)
	assert.False(t, cfg.HasHuman())
	assert.Nil(t, cfg.Player("Dora"))
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`player "Solo" {}`), "inline.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 200, cfg.Table.MaxSteps)
	assert.Equal(t, "info", cfg.Table.LogLevel)
	assert.Equal(t, "threshold", cfg.Players[0].Strategy)
	assert.Zero(t, cfg.Players[0].Timeout())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`table {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL")

	_, err = Parse([]byte(`table { seats = 3 }`), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"no players", func(c *Config) { c.Players = nil }, "at least one player"},
		{"too many players", func(c *Config) {
			for i := range MaxPlayers {
				c.Players = append(c.Players, PlayerConfig{Name: string(rune('a' + i)), Strategy: "hit"})
			}
		}, "at most 7 players"},
		{"duplicate", func(c *Config) { c.Players[1].Name = "You" }, "duplicate name"},
		{"empty name", func(c *Config) { c.Players[1].Name = "" }, "must not be empty"},
		{"strategy", func(c *Config) { c.Players[1].Strategy = "martingale" }, "invalid strategy"},
		{"stand on", func(c *Config) { c.Players[1].StandOn = -1 }, "stand_on"},
		{"probability", func(c *Config) { c.Players[1].HitProbability = 1.5 }, "hit_probability"},
		{"timeout", func(c *Config) { c.Players[1].DecisionTimeout = -2 }, "decision_timeout"},
		{"bot timeout", func(c *Config) { c.Players[1].DecisionTimeout = 5 }, ""},
		{"human timeout", func(c *Config) { c.Players[0].DecisionTimeout = 5 }, "bots only"},
		{"max steps", func(c *Config) { c.Table.MaxSteps = -1 }, "max_steps"},
		{"log level", func(c *Config) { c.Table.LogLevel = "chatty" }, "invalid log_level"},
		{"no table", func(c *Config) { c.Table = nil }, "table block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
