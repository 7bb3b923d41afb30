package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/display"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"blackjack.hcl" type:"path" help:"Table configuration file"`
	LogLevel string `env:"BLACKJACK_LOG_LEVEL" help:"Log level (debug, info, warn, error); overrides the config file"`
	NoColor  bool   `env:"NO_COLOR" help:"Disable colored output"`
}

// loadConfig reads and validates the configuration file, applying the log
// level override.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", g.Config, err)
	}
	if g.LogLevel != "" {
		cfg.Table.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to stderr so they never mix
// with the table output on stdout.
func (g *Globals) newLogger(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	display.SetColor(!g.NoColor)
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		TimeFormat:      "15:04:05",
	})
}
