package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// RandBot hits with a fixed probability and otherwise stands
type RandBot struct {
	rng            *rand.Rand
	hitProbability float64
	logger         *log.Logger
}

// NewRandBot creates a new RandBot. hitProbability is clamped to [0, 1].
func NewRandBot(rng *rand.Rand, hitProbability float64, logger *log.Logger) *RandBot {
	switch {
	case hitProbability < 0:
		hitProbability = 0
	case hitProbability > 1:
		hitProbability = 1
	}
	return &RandBot{rng: rng, hitProbability: hitProbability, logger: logger}
}

// Decide flips a weighted coin
func (r *RandBot) Decide(view game.RoundView) game.Decision {
	if r.rng.Float64() < r.hitProbability {
		return game.Decision{Action: game.ActionHit, Reasoning: "rand-bot random hit"}
	}
	return game.Decision{Action: game.ActionStand, Reasoning: "rand-bot random stand"}
}
