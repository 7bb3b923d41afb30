package display

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// RenderCard renders a single card, red suits in red
func RenderCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// RenderHand renders cards separated by spaces followed by the score
func RenderHand(cards []deck.Card, score int) string {
	if len(cards) == 0 {
		return InfoStyle.Render("(no cards)")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = RenderCard(c)
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, " "), score)
}

// RenderState renders a player state with a color that matches its outcome
func RenderState(s game.PlayerState) string {
	switch s {
	case game.StateWin:
		return SuccessStyle.Render(s.String())
	case game.StateBust:
		return ErrorStyle.Render(s.String())
	case game.StateStand:
		return WarningStyle.Render(s.String())
	default:
		return InfoStyle.Render(s.String())
	}
}

// RenderTable renders every player's hand and the dealer's. The dealer's
// cards are hidden until revealDealer is set, which callers do once the
// first step has been played.
func RenderTable(players []game.PlayerView, dealer game.DealerView, revealDealer bool) string {
	var b strings.Builder

	width := len("Dealer")
	for _, p := range players {
		width = max(width, len(p.Name))
	}

	for _, p := range players {
		fmt.Fprintf(&b, "%s  %s  %s\n",
			NameStyle.Render(fmt.Sprintf("%-*s", width, p.Name)),
			RenderHand(p.Cards, p.Score),
			RenderState(p.State))
	}

	dealerHand := HiddenCardStyle.Render(strings.TrimSpace(strings.Repeat("?? ", len(dealer.Cards))))
	if revealDealer {
		dealerHand = RenderHand(dealer.Cards, dealer.Score)
	}
	fmt.Fprintf(&b, "%s  %s\n", NameStyle.Render(fmt.Sprintf("%-*s", width, "Dealer")), dealerHand)
	return b.String()
}

// ResultLines returns the outcome lines of a finished round without styling:
// one line per player, then "Dealer wins!" when every player bust.
func ResultLines(res *game.Result) []string {
	lines := make([]string, 0, len(res.Players)+1)
	for _, p := range res.Players {
		switch p.State {
		case game.StateWin:
			lines = append(lines, fmt.Sprintf("%s wins!", p.Name))
		case game.StateBust:
			lines = append(lines, fmt.Sprintf("%s busts!", p.Name))
		case game.StateStand:
			lines = append(lines, fmt.Sprintf("%s stands!", p.Name))
		default:
			lines = append(lines, fmt.Sprintf("%s is still playing", p.Name))
		}
	}
	if res.DealerWins {
		lines = append(lines, "Dealer wins!")
	}
	return lines
}

// RenderResult renders the final table and outcome lines of a finished round
func RenderResult(res *game.Result) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" Round %s ", res.RoundID)))
	b.WriteString("\n")
	b.WriteString(RenderTable(res.Players, res.Dealer, true))
	b.WriteString("\n")

	for i, line := range ResultLines(res) {
		style := InfoStyle
		if i < len(res.Players) {
			switch res.Players[i].State {
			case game.StateWin:
				style = SuccessStyle
			case game.StateBust:
				style = ErrorStyle
			case game.StateStand:
				style = WarningStyle
			}
		} else {
			style = ErrorStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
