package game

import (
	"fmt"
	"strings"
)

// Action is what a player asks for on their turn
type Action int

const (
	// ActionNone leaves the player's state untouched for this step
	ActionNone Action = iota
	ActionHit
	ActionStand
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Valid reports whether the action belongs to the closed action set
func (a Action) Valid() bool {
	return a == ActionNone || a == ActionHit || a == ActionStand
}

// ParseAction maps free text to an action. Anything unrecognised is ActionNone.
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return ActionHit
	case "stand", "s":
		return ActionStand
	default:
		return ActionNone
	}
}

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Reasoning string // Human-readable explanation
}

// RoundView is the read-only state handed to an agent when it must decide.
// Every slice is a copy; agents cannot reach engine state through it.
type RoundView struct {
	RoundID        string
	Step           int
	Self           PlayerView
	Players        []PlayerView // all players in registration order, Self included
	Dealer         DealerView
	CardsRemaining int
}

// Agent represents any entity (human or bot) that decides for a player.
// Decide may block, e.g. on console input; the engine waits for it.
type Agent interface {
	Decide(view RoundView) Decision
}

// AgentFunc adapts a plain function to the Agent interface
type AgentFunc func(view RoundView) Decision

// Decide calls f(view)
func (f AgentFunc) Decide(view RoundView) Decision {
	return f(view)
}
