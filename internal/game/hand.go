package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

const (
	// TargetScore wins outright and anything above it busts
	TargetScore = 21

	// DealerStandScore is the score at which the dealer stops drawing
	DealerStandScore = 17
)

// ValueOf returns the scoring value of a rank. Aces always count 11.
func ValueOf(rank deck.Rank) int {
	switch {
	case rank == deck.Ace:
		return 11
	case rank >= deck.Two && rank <= deck.Ten:
		return int(rank)
	case rank.IsFace():
		return 10
	default:
		return 0
	}
}

// Hand is the ordered set of cards held by one participant. It only grows.
type Hand []deck.Card

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	*h = append(*h, card)
}

// Score sums the value of every card. There is no upper clamp.
func (h Hand) Score() int {
	total := 0
	for _, c := range h {
		total += ValueOf(c.Rank)
	}
	return total
}

// Cards returns a copy of the cards in the hand
func (h Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h))
	copy(out, h)
	return out
}

// String returns the hand as space separated short card names
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
