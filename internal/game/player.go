package game

import "github.com/lox/blackjack/internal/deck"

// PlayerState is where a player stands within a round
type PlayerState int

const (
	StatePlaying PlayerState = iota
	StateStand
	StateBust
	StateWin
)

// String returns the string representation of the state
func (s PlayerState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateStand:
		return "stand"
	case StateBust:
		return "bust"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state can no longer change this round
func (s PlayerState) IsTerminal() bool {
	return s == StateBust || s == StateWin
}

// ParsePlayerState is the inverse of PlayerState.String
func ParsePlayerState(s string) (PlayerState, bool) {
	for _, st := range []PlayerState{StatePlaying, StateStand, StateBust, StateWin} {
		if st.String() == s {
			return st, true
		}
	}
	return StatePlaying, false
}

// Player is a seat at the table driven by an Agent
type Player struct {
	Name  string
	Hand  Hand
	State PlayerState
	agent Agent
}

// NewPlayer creates a player with an empty hand
func NewPlayer(name string, agent Agent) *Player {
	return &Player{
		Name:  name,
		State: StatePlaying,
		agent: agent,
	}
}

// View returns a read-only snapshot of the player
func (p *Player) View() PlayerView {
	return PlayerView{
		Name:  p.Name,
		Cards: p.Hand.Cards(),
		Score: p.Hand.Score(),
		State: p.State,
	}
}

// Dealer only has a hand; its play is fixed by the rules
type Dealer struct {
	Hand Hand
}

// View returns a read-only snapshot of the dealer
func (d *Dealer) View() DealerView {
	return DealerView{
		Cards: d.Hand.Cards(),
		Score: d.Hand.Score(),
	}
}

// PlayerView is an immutable copy of a player's public state
type PlayerView struct {
	Name  string
	Cards []deck.Card
	Score int
	State PlayerState
}

// DealerView is an immutable copy of the dealer's hand
type DealerView struct {
	Cards []deck.Card
	Score int
}
