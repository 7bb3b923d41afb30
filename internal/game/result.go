package game

import "fmt"

// Result is the final outcome of a round
type Result struct {
	RoundID string
	Steps   int // steps played, matching RoundEndEvent.Steps
	Dealer  DealerView
	Players []PlayerView

	// DealerWins is set when every player busted
	DealerWins bool
}

// Result returns the outcome once the round has ended
func (r *Round) Result() (*Result, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.state != RoundEnd {
		return nil, ErrRoundInProgress
	}

	res := &Result{
		RoundID:    r.id,
		Steps:      r.played,
		Dealer:     r.dealer.View(),
		Players:    r.Players(),
		DealerWins: true,
	}
	for _, p := range res.Players {
		if p.State != StateBust {
			res.DealerWins = false
		}
	}
	return res, nil
}

// Winners returns the names of players who won
func (res *Result) Winners() []string {
	var names []string
	for _, p := range res.Players {
		if p.State == StateWin {
			names = append(names, p.Name)
		}
	}
	return names
}

// Player returns the named player's final view
func (res *Result) Player(name string) (PlayerView, bool) {
	for _, p := range res.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerView{}, false
}

// PlayRound deals the opening hands if needed and calls Play until the round
// ends. A positive maxSteps stops the loop with ErrStepBudgetExceeded, which
// guards against agents that never act; the round itself is left as is.
func PlayRound(r *Round, maxSteps int) (*Result, error) {
	if !r.Dealt() {
		if _, err := r.Init(); err != nil {
			return nil, err
		}
	}

	for r.State() == RoundPlaying {
		if maxSteps > 0 && r.Steps() >= maxSteps {
			return nil, fmt.Errorf("round %s after %d steps: %w", r.ID(), r.Steps(), ErrStepBudgetExceeded)
		}
		if _, err := r.Play(); err != nil {
			return nil, err
		}
	}

	return r.Result()
}
