// Package history records finished rounds as HCL files.
package history

import (
	"fmt"
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// Record is the persisted form of a finished round
type Record struct {
	RoundID    string           `hcl:"round_id"`
	Seed       int64            `hcl:"seed,optional"`
	StartedAt  string           `hcl:"started_at"`
	Steps      int              `hcl:"steps"`
	DealerWins bool             `hcl:"dealer_wins,optional"`
	Dealer     DealerRecord     `hcl:"dealer,block"`
	Players    []PlayerRecord   `hcl:"player,block"`
	Decisions  []DecisionRecord `hcl:"decision,block"`
}

// DealerRecord is the dealer's final hand
type DealerRecord struct {
	Cards []string `hcl:"cards"`
	Score int      `hcl:"score"`
	Bust  bool     `hcl:"bust,optional"`
}

// PlayerRecord is one player's final hand and state
type PlayerRecord struct {
	Name  string   `hcl:"name,label"`
	Cards []string `hcl:"cards"`
	Score int      `hcl:"score"`
	State string   `hcl:"state"`
}

// DecisionRecord is a single decision in the order it was made
type DecisionRecord struct {
	Step      int    `hcl:"step"`
	Player    string `hcl:"player"`
	Action    string `hcl:"action"`
	Reasoning string `hcl:"reasoning,optional"`
}

// Started parses StartedAt
func (r *Record) Started() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.StartedAt)
}

// Player returns the named player's record
func (r *Record) Player(name string) (PlayerRecord, bool) {
	for _, p := range r.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerRecord{}, false
}

func cardCodes(cards []deck.Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}

// Cards parses a stored card list back into cards
func Cards(codes []string) ([]deck.Card, error) {
	cards := make([]deck.Card, len(codes))
	for i, code := range codes {
		c, err := deck.ParseCard(code)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards[i] = c
	}
	return cards, nil
}
