// Package config loads table configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/bot"
)

// StrategyHuman seats a player that answers at the console
const StrategyHuman = "human"

// MaxPlayers is the largest table the config accepts
const MaxPlayers = 7

// Config represents the complete table configuration
type Config struct {
	Table   *TableSettings `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableSettings contains table-level configuration
type TableSettings struct {
	Seed       int64  `hcl:"seed,optional"`
	MaxSteps   int    `hcl:"max_steps,optional"`
	HistoryDir string `hcl:"history_dir,optional"`
	LogLevel   string `hcl:"log_level,optional"`
}

// PlayerConfig defines one seat at the table
type PlayerConfig struct {
	Name            string   `hcl:"name,label"`
	Strategy        string   `hcl:"strategy,optional"`
	StandOn         int      `hcl:"stand_on,optional"`
	HitProbability  float64  `hcl:"hit_probability,optional"`
	Script          []string `hcl:"script,optional"`
	DecisionTimeout int      `hcl:"decision_timeout,optional"`
}

// Timeout returns the decision timeout, zero when disabled
func (p PlayerConfig) Timeout() time.Duration {
	return time.Duration(p.DecisionTimeout) * time.Second
}

// IsHuman reports whether the seat is played from the console
func (p PlayerConfig) IsHuman() bool {
	return p.Strategy == StrategyHuman
}

// Default returns the classic two seat table: one human and one bot that
// always hits.
func Default() *Config {
	return &Config{
		Table: &TableSettings{
			MaxSteps: 200,
			LogLevel: "info",
		},
		Players: []PlayerConfig{
			{Name: "You", Strategy: StrategyHuman},
			{Name: "Bot", Strategy: bot.StrategyHit},
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse loads configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Table == nil {
		c.Table = defaults.Table
	}
	if c.Table.MaxSteps == 0 {
		c.Table.MaxSteps = defaults.Table.MaxSteps
	}
	if c.Table.LogLevel == "" {
		c.Table.LogLevel = defaults.Table.LogLevel
	}
	if len(c.Players) == 0 {
		c.Players = defaults.Players
	}

	for i := range c.Players {
		if c.Players[i].Strategy == "" {
			c.Players[i].Strategy = bot.StrategyThreshold
		}
	}
}

// Validate validates the table configuration
func (c *Config) Validate() error {
	if c.Table == nil {
		return fmt.Errorf("table block is required")
	}
	if c.Table.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative: %d", c.Table.MaxSteps)
	}
	if _, err := log.ParseLevel(c.Table.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.Table.LogLevel, err)
	}

	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player must be configured")
	}
	if len(c.Players) > MaxPlayers {
		return fmt.Errorf("at most %d players can be seated, got %d", MaxPlayers, len(c.Players))
	}

	validStrategies := append(bot.Names(), StrategyHuman)
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if !slices.Contains(validStrategies, p.Strategy) {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
		if p.StandOn < 0 {
			return fmt.Errorf("player %s: stand_on must not be negative", p.Name)
		}
		if p.HitProbability < 0 || p.HitProbability > 1 {
			return fmt.Errorf("player %s: hit_probability must be between 0 and 1", p.Name)
		}
		if p.DecisionTimeout < 0 {
			return fmt.Errorf("player %s: decision_timeout must not be negative", p.Name)
		}
		if p.IsHuman() && p.DecisionTimeout > 0 {
			return fmt.Errorf("player %s: decision_timeout applies to bots only", p.Name)
		}
	}

	return nil
}

// HasHuman reports whether any seat needs console input
func (c *Config) HasHuman() bool {
	return slices.ContainsFunc(c.Players, PlayerConfig.IsHuman)
}

// Player returns the named player's configuration
func (c *Config) Player(name string) *PlayerConfig {
	for i := range c.Players {
		if c.Players[i].Name == name {
			return &c.Players[i]
		}
	}
	return nil
}
