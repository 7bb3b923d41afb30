package game

import (
	"github.com/charmbracelet/log"
)

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

type roundConfig struct {
	logger  *log.Logger
	bus     EventBus
	roundID string
}

// WithLogger sets the logger used by the round. The round logs under the
// "round" prefix with its ID attached.
func WithLogger(logger *log.Logger) RoundOption {
	return func(c *roundConfig) {
		c.logger = logger
	}
}

// WithEventBus publishes every event to bus as well as returning it in the
// StepReport.
func WithEventBus(bus EventBus) RoundOption {
	return func(c *roundConfig) {
		c.bus = bus
	}
}

// WithRoundID overrides the generated round ID
func WithRoundID(id string) RoundOption {
	return func(c *roundConfig) {
		c.roundID = id
	}
}
