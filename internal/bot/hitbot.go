package bot

import "github.com/lox/blackjack/internal/game"

// HitBot asks for a card on every turn until it wins or busts
type HitBot struct{}

// Decide always hits
func (HitBot) Decide(game.RoundView) game.Decision {
	return game.Decision{Action: game.ActionHit, Reasoning: "hit-bot always hits"}
}

// StandBot stands on its first turn
type StandBot struct{}

// Decide always stands
func (StandBot) Decide(game.RoundView) game.Decision {
	return game.Decision{Action: game.ActionStand, Reasoning: "stand-bot always stands"}
}
