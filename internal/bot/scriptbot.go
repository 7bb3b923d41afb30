package bot

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
)

// ScriptBot plays back a predetermined list of actions and stands once the
// script runs out. It is used for replays and scripted scenarios.
type ScriptBot struct {
	actions []game.Action
	index   int
}

// NewScriptBot creates a bot that follows actions in order
func NewScriptBot(actions ...game.Action) *ScriptBot {
	return &ScriptBot{actions: actions}
}

// ParseScript builds a ScriptBot from words such as "hit hit stand".
// Unrecognised words become game.ActionNone, as they would at a console.
func ParseScript(words []string) *ScriptBot {
	actions := make([]game.Action, len(words))
	for i, w := range words {
		actions[i] = game.ParseAction(w)
	}
	return NewScriptBot(actions...)
}

// Decide returns the next scripted action
func (s *ScriptBot) Decide(game.RoundView) game.Decision {
	if s.index >= len(s.actions) {
		return game.Decision{Action: game.ActionStand, Reasoning: "script exhausted"}
	}

	action := s.actions[s.index]
	s.index++
	return game.Decision{Action: action, Reasoning: fmt.Sprintf("script step %d", s.index)}
}

// Remaining returns how many scripted actions are left
func (s *ScriptBot) Remaining() int {
	return len(s.actions) - s.index
}
