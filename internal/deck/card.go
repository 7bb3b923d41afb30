package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck construction order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the symbol for the suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the long name of the suit
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	default:
		return "Unknown"
	}
}

// Letter returns the ASCII letter used by ParseCard
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank from Ace to King
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var rankSymbols = map[Rank]string{
	Ace: "A", Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K",
}

var rankNames = map[Rank]string{
	Ace: "Ace", Two: "Two", Three: "Three", Four: "Four", Five: "Five", Six: "Six", Seven: "Seven",
	Eight: "Eight", Nine: "Nine", Ten: "Ten", Jack: "Jack", Queen: "Queen", King: "King",
}

// String returns the single character form of the rank
func (r Rank) String() string {
	if s, ok := rankSymbols[r]; ok {
		return s
	}
	return "?"
}

// Name returns the long name of the rank
func (r Rank) Name() string {
	if s, ok := rankNames[r]; ok {
		return s
	}
	return "Unknown"
}

// IsFace returns true for Jack, Queen and King
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the short form of the card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the ASCII form accepted by ParseCard (e.g., "As")
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Name returns the long form of the card (e.g., "Ace of Spades")
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.Rank.Name(), c.Suit.Name())
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}
