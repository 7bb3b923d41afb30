package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// ThresholdBot hits below a fixed score and stands from it upwards. With the
// default threshold it plays the dealer's own rule.
type ThresholdBot struct {
	standOn int
	logger  *log.Logger
}

// NewThresholdBot creates a bot that stands once its score reaches standOn.
// A non-positive standOn uses game.DealerStandScore.
func NewThresholdBot(standOn int, logger *log.Logger) *ThresholdBot {
	if standOn <= 0 {
		standOn = game.DealerStandScore
	}
	return &ThresholdBot{standOn: standOn, logger: logger}
}

// StandOn returns the score the bot stands on
func (b *ThresholdBot) StandOn() int {
	return b.standOn
}

// Decide hits while the score is below the threshold
func (b *ThresholdBot) Decide(view game.RoundView) game.Decision {
	score := view.Self.Score
	if score < b.standOn {
		return game.Decision{
			Action:    game.ActionHit,
			Reasoning: fmt.Sprintf("threshold-bot hits %d below %d", score, b.standOn),
		}
	}

	if b.logger != nil {
		b.logger.Debug("Threshold reached", "player", view.Self.Name, "score", score, "standOn", b.standOn)
	}
	return game.Decision{
		Action:    game.ActionStand,
		Reasoning: fmt.Sprintf("threshold-bot stands on %d", score),
	}
}
