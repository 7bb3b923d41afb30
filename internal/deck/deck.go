package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/randutil"
)

// Size is the number of cards in a full deck
const Size = 52

// ErrDeckExhausted is returned when a draw needs more cards than remain
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered, consumable pile of cards. The last element is the top.
type Deck struct {
	cards []Card
}

// Generate returns all 52 cards in a uniformly random order.
// A nil rng falls back to a time-seeded generator.
func Generate(rng *rand.Rand) []Card {
	if rng == nil {
		rng = randutil.New(randutil.ResolveSeed(0))
	}

	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// New creates a freshly shuffled 52-card deck
func New(rng *rand.Rand) *Deck {
	return &Deck{cards: Generate(rng)}
}

// FromCards creates a deck in exactly the given order, last card on top.
// Useful for fixtures and replays.
func FromCards(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}

	top := len(d.cards) - 1
	card := d.cards[top]
	d.cards = d.cards[:top]
	return card, nil
}

// DrawN removes and returns the top n cards in the order they were drawn.
// If fewer than n remain nothing is drawn.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot draw %d cards", n)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("need %d cards, %d remaining: %w", n, len(d.cards), ErrDeckExhausted)
	}

	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.cards[len(d.cards)-1-i]
	}
	d.cards = d.cards[:len(d.cards)-n]
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, top last
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
