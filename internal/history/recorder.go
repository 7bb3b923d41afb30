package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
)

// ErrIncomplete is returned when a round is finished without having started
var ErrIncomplete = errors.New("history: round not recorded")

// Recorder collects a round's decisions from its event bus
type Recorder struct {
	clock     quartz.Clock
	seed      int64
	roundID   string
	startedAt time.Time
	decisions []DecisionRecord
}

// NewRecorder creates a recorder. The seed is stored with the record so the
// round can be dealt again; a nil clock uses the real clock.
func NewRecorder(seed int64, clock quartz.Clock) *Recorder {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Recorder{clock: clock, seed: seed}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		r.roundID = e.RoundID
		r.startedAt = r.clock.Now()
		r.decisions = r.decisions[:0]
	case game.PlayerDecisionEvent:
		r.decisions = append(r.decisions, DecisionRecord{
			Step:      e.Step,
			Player:    e.Player,
			Action:    e.Action.String(),
			Reasoning: e.Reasoning,
		})
	}
}

// Finish builds the record for a finished round
func (r *Recorder) Finish(res *game.Result) (*Record, error) {
	if r.roundID == "" {
		return nil, ErrIncomplete
	}
	if res.RoundID != r.roundID {
		return nil, fmt.Errorf("result for round %s, recorded %s: %w", res.RoundID, r.roundID, ErrIncomplete)
	}

	rec := &Record{
		RoundID:    res.RoundID,
		Seed:       r.seed,
		StartedAt:  r.startedAt.UTC().Format(time.RFC3339Nano),
		Steps:      res.Steps,
		DealerWins: res.DealerWins,
		Dealer: DealerRecord{
			Cards: cardCodes(res.Dealer.Cards),
			Score: res.Dealer.Score,
			Bust:  res.Dealer.Score > game.TargetScore,
		},
		Decisions: append([]DecisionRecord(nil), r.decisions...),
	}
	for _, p := range res.Players {
		rec.Players = append(rec.Players, PlayerRecord{
			Name:  p.Name,
			Cards: cardCodes(p.Cards),
			Score: p.Score,
			State: p.State.String(),
		})
	}
	return rec, nil
}
