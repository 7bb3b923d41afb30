package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/stretchr/testify/require"
)

// scriptedAgent plays back a fixed list of actions, then stands
type scriptedAgent struct {
	actions []Action
	index   int
	views   []RoundView
}

func script(actions ...Action) *scriptedAgent {
	return &scriptedAgent{actions: actions}
}

func (s *scriptedAgent) Decide(view RoundView) Decision {
	s.views = append(s.views, view)
	if s.index >= len(s.actions) {
		return Decision{Action: ActionStand, Reasoning: "script exhausted"}
	}
	action := s.actions[s.index]
	s.index++
	return Decision{Action: action, Reasoning: "scripted"}
}

// testRoundOption configures test round creation
type testRoundOption func(*testRoundBuilder)

type testSeat struct {
	name  string
	agent Agent
}

type testRoundBuilder struct {
	cards string
	seats []testSeat
	bus   EventBus
}

func withCards(cards string) testRoundOption {
	return func(b *testRoundBuilder) { b.cards = cards }
}

func withSeat(name string, agent Agent) testRoundOption {
	return func(b *testRoundBuilder) { b.seats = append(b.seats, testSeat{name: name, agent: agent}) }
}

func withBus(bus EventBus) testRoundOption {
	return func(b *testRoundBuilder) { b.bus = bus }
}

// newTestRound builds a round over a fixed deck, registers the seats and
// deals the opening hands.
func newTestRound(t *testing.T, opts ...testRoundOption) *Round {
	t.Helper()

	b := &testRoundBuilder{}
	for _, opt := range opts {
		opt(b)
	}

	roundOpts := []RoundOption{
		WithLogger(log.New(io.Discard)),
		WithRoundID("test-round"),
	}
	if b.bus != nil {
		roundOpts = append(roundOpts, WithEventBus(b.bus))
	}

	r := NewRound(deck.FromCards(deck.MustParseCards(b.cards)...), roundOpts...)
	for _, seat := range b.seats {
		require.NoError(t, r.AddPlayer(seat.name, seat.agent))
	}
	_, err := r.Init()
	require.NoError(t, err)
	return r
}

func playerState(t *testing.T, r *Round, name string) PlayerState {
	t.Helper()
	for _, p := range r.Players() {
		if p.Name == name {
			return p.State
		}
	}
	t.Fatalf("no player %q", name)
	return StatePlaying
}

func eventsOfType[T Event](events []Event) []T {
	var out []T
	for _, e := range events {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
