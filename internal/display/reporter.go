package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// Reporter writes one line per round event. It is meant to be subscribed to
// a round's event bus while a human is watching.
type Reporter struct {
	w       io.Writer
	verbose bool
}

// NewReporter creates a reporter writing to w. Verbose reporters also print
// decision reasoning and every state change.
func NewReporter(w io.Writer, verbose bool) *Reporter {
	return &Reporter{w: w, verbose: verbose}
}

// OnEvent implements game.EventSubscriber
func (r *Reporter) OnEvent(event game.Event) {
	if line := r.format(event); line != "" {
		fmt.Fprintln(r.w, line)
	}
}

func (r *Reporter) format(event game.Event) string {
	switch e := event.(type) {
	case game.RoundStartEvent:
		return HeaderStyle.Render(fmt.Sprintf(" Round %s • %s ", e.RoundID, strings.Join(e.Players, ", ")))

	case game.CardDealtEvent:
		who := e.Recipient
		if e.ToDealer {
			who = "Dealer"
		}
		// The dealer's opening card stays face down until play starts
		if e.ToDealer && e.Reason == game.DealOpening {
			return fmt.Sprintf("%s is dealt %s", NameStyle.Render(who), HiddenCardStyle.Render("??"))
		}
		verb := "is dealt"
		switch e.Reason {
		case game.DealHit:
			verb = "hits and draws"
		case game.DealDealer:
			verb = "draws"
		}
		return fmt.Sprintf("%s %s %s (%d)", NameStyle.Render(who), verb, RenderCard(e.Card), e.Score)

	case game.PlayerDecisionEvent:
		if !r.verbose && e.Action != game.ActionNone {
			return ""
		}
		line := fmt.Sprintf("%s chooses %s", NameStyle.Render(e.Player), e.Action)
		if e.Normalized {
			line += WarningStyle.Render(" (invalid action ignored)")
		}
		if r.verbose && e.Reasoning != "" {
			line += InfoStyle.Render(" - " + e.Reasoning)
		}
		return line

	case game.StateChangeEvent:
		if e.To == game.StateStand && !r.verbose {
			return fmt.Sprintf("%s stands", NameStyle.Render(e.Player))
		}
		return fmt.Sprintf("%s %s %s", NameStyle.Render(e.Player), RenderState(e.To), InfoStyle.Render("("+e.Reason+")"))

	case game.DealerBustEvent:
		return ErrorStyle.Render(fmt.Sprintf("Dealer busts with %d", e.Score))

	case game.RoundEndEvent:
		return InfoStyle.Render(fmt.Sprintf("Round over after %d steps, dealer on %d", e.Steps, e.DealerScore))
	}
	return ""
}
