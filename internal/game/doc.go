// Package game implements a single round of blackjack between a dealer and
// any number of players.
//
// The main type is Round, which owns the deck, the dealer's hand and the
// registered players, and advances the round one step at a time.
//
// # Basic Usage
//
// Create a round over a shuffled deck, register players and drive it:
//
//	r := game.NewRound(deck.New(randutil.New(42)))
//	r.AddPlayer("Alice", game.NewHumanAgent(console.Prompt))
//	r.AddPlayer("Bot", bot.AlwaysHit{})
//	if _, err := r.Init(); err != nil {
//	    return err
//	}
//	for r.State() == game.RoundPlaying {
//	    if _, err := r.Play(); err != nil {
//	        return err
//	    }
//	}
//	result, _ := r.Result()
//
// PlayRound wraps that loop and bounds it with a step budget, which is how
// callers guard against agents that keep answering ActionNone.
//
// # Rules
//
// Aces always count 11. On every step each unsettled player is checked for
// 21 (win) and over 21 (bust) before being asked for an action; the dealer
// then draws at most one card while under 17. A dealer bust wins the round
// for every player who has not bust. Once no player is still playing, players
// who stood are compared against the dealer: higher wins, lower loses, equal
// stays a stand.
//
// # Events
//
// Init and Play return a StepReport listing what happened, and publish the
// same events to an optional EventBus. Rendering is left to subscribers.
//
// # Deterministic Testing
//
// Use deck.FromCards for a fixed deck, or deck.New(randutil.New(seed)) for a
// reproducible shuffle.
package game
