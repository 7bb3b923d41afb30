package display

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	SetColor(false)
}

func TestRenderHand(t *testing.T) {
	assert.Equal(t, "A♠ T♥ (21)", RenderHand(deck.MustParseCards("As Th"), 21))
	assert.Equal(t, "(no cards)", RenderHand(nil, 0))
}

func TestRenderTableHidesDealer(t *testing.T) {
	players := []game.PlayerView{
		{Name: "Alice", Cards: deck.MustParseCards("7s"), Score: 7, State: game.StatePlaying},
		{Name: "Bo", Cards: deck.MustParseCards("Kd 9c"), Score: 19, State: game.StateStand},
	}
	dealer := game.DealerView{Cards: deck.MustParseCards("9h"), Score: 9}

	hidden := RenderTable(players, dealer, false)
	assert.Contains(t, hidden, "Alice   7♠ (7)  playing")
	assert.Contains(t, hidden, "Bo      K♦ 9♣ (19)  stand")
	assert.Contains(t, hidden, "Dealer  ??")
	assert.NotContains(t, hidden, "9♥")

	shown := RenderTable(players, dealer, true)
	assert.Contains(t, shown, "Dealer  9♥ (9)")
}

func TestResultLines(t *testing.T) {
	res := &game.Result{
		RoundID: "r1",
		Players: []game.PlayerView{
			{Name: "Alice", State: game.StateWin},
			{Name: "Bo", State: game.StateBust},
			{Name: "Cy", State: game.StateStand},
		},
	}
	assert.Equal(t, []string{"Alice wins!", "Bo busts!", "Cy stands!"}, ResultLines(res))

	allBust := &game.Result{
		Players:    []game.PlayerView{{Name: "Alice", State: game.StateBust}},
		DealerWins: true,
	}
	assert.Equal(t, []string{"Alice busts!", "Dealer wins!"}, ResultLines(allBust))

	out := RenderResult(allBust)
	assert.True(t, strings.HasSuffix(out, "Alice busts!\nDealer wins!\n"))
}

func TestReporterFollowsRound(t *testing.T) {
	var buf bytes.Buffer
	bus := game.NewEventBus()
	bus.Subscribe(NewReporter(&buf, false))

	d := deck.FromCards(deck.MustParseCards("7s Td Ac 9h")...)
	r := game.NewRound(d,
		game.WithLogger(log.New(io.Discard)),
		game.WithEventBus(bus),
		game.WithRoundID("r1"))
	require.NoError(t, r.AddPlayer("Alice", game.AgentFunc(func(game.RoundView) game.Decision {
		return game.Decision{Action: game.ActionStand}
	})))

	_, err := game.PlayRound(r, 10)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Round r1 • Alice")
	assert.Contains(t, out, "Alice is dealt A♣ (11)")
	assert.Contains(t, out, "Dealer is dealt ??")
	assert.NotContains(t, out, "Dealer is dealt 9♥")
	assert.Contains(t, out, "Alice stands")
	assert.Contains(t, out, "Dealer draws T♦ (19)")
	assert.Contains(t, out, "Alice bust (loses to dealer)")
}

func TestReporterVerboseShowsReasoning(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, true)
	rep.OnEvent(game.PlayerDecisionEvent{Player: "Alice", Action: game.ActionHit, Reasoning: "feeling lucky", Step: 1})
	rep.OnEvent(game.PlayerDecisionEvent{Player: "Alice", Action: game.ActionNone, Normalized: true, Step: 2})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Alice chooses hit - feeling lucky", lines[0])
	assert.Equal(t, "Alice chooses none (invalid action ignored)", lines[1])
}

func TestConsolePrompt(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("  hit \nstand\n"), &out)

	view := game.RoundView{
		Step:    1,
		Self:    game.PlayerView{Name: "Alice", Score: 7},
		Players: []game.PlayerView{{Name: "Alice", Cards: deck.MustParseCards("7s"), Score: 7}},
		Dealer:  game.DealerView{Cards: deck.MustParseCards("Td"), Score: 10},
	}

	line, err := c.Prompt(view)
	require.NoError(t, err)
	assert.Equal(t, "hit", line)
	assert.Contains(t, out.String(), "Alice, you have 7. hit or stand?")
	assert.NotContains(t, out.String(), "T♦")

	line, err = c.Prompt(view)
	require.NoError(t, err)
	assert.Equal(t, "stand", line)

	_, err = c.Prompt(view)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestConsoleDrivesHumanAgent(t *testing.T) {
	c := NewConsole(strings.NewReader("h\n"), io.Discard)
	agent := game.NewHumanAgent(c.Prompt)

	d := agent.Decide(game.RoundView{Self: game.PlayerView{Name: "Alice"}})
	assert.Equal(t, game.ActionHit, d.Action)

	d = agent.Decide(game.RoundView{Self: game.PlayerView{Name: "Alice"}})
	assert.Equal(t, game.ActionStand, d.Action)
}
