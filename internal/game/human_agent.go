package game

import (
	"fmt"
	"strings"
)

// PromptFunc asks a human for input and returns the raw reply
type PromptFunc func(view RoundView) (string, error)

// HumanAgent represents a human player answering through some user interface
type HumanAgent struct {
	prompt PromptFunc
}

// NewHumanAgent creates a new human agent with a prompt function
func NewHumanAgent(prompt PromptFunc) *HumanAgent {
	return &HumanAgent{prompt: prompt}
}

// Decide prompts the human and parses the reply. If the prompt fails the
// player stands, so a closed terminal cannot stall the round.
func (h *HumanAgent) Decide(view RoundView) Decision {
	if h.prompt == nil {
		return Decision{Action: ActionStand, Reasoning: "no user interface available"}
	}

	reply, err := h.prompt(view)
	if err != nil {
		return Decision{Action: ActionStand, Reasoning: fmt.Sprintf("input error: %v", err)}
	}

	action := ParseAction(reply)
	if action == ActionNone {
		return Decision{Action: ActionNone, Reasoning: fmt.Sprintf("unrecognised input %q", strings.TrimSpace(reply))}
	}
	return Decision{Action: action, Reasoning: "player input"}
}
