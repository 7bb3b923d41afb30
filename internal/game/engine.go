package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/gameid"
)

// RoundState is the lifecycle of a round. It only moves Playing -> End.
type RoundState int

const (
	RoundPlaying RoundState = iota
	RoundEnd
)

// String returns the string representation of the round state
func (s RoundState) String() string {
	switch s {
	case RoundPlaying:
		return "playing"
	case RoundEnd:
		return "end"
	default:
		return "unknown"
	}
}

var (
	ErrNoPlayers          = errors.New("no players registered")
	ErrAlreadyDealt       = errors.New("opening hands already dealt")
	ErrNotDealt           = errors.New("opening hands not dealt")
	ErrRoundOver          = errors.New("round is over")
	ErrRoundInProgress    = errors.New("round still in progress")
	ErrDuplicatePlayer    = errors.New("duplicate player name")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrStepBudgetExceeded = errors.New("step budget exceeded")
)

// Round owns the deck, the dealer and the players for a single round and
// advances it one step at a time. A Round is not safe for concurrent use.
type Round struct {
	id      string
	deck    *deck.Deck
	players []*Player
	dealer  Dealer
	state   RoundState
	steps   int // round counter; a step ending in a dealer bust does not move it
	played  int // steps executed, including one ending in a dealer bust
	dealt   bool
	err     error // set when a step failed part way; the round is unusable
	logger  *log.Logger
	bus     EventBus
}

// NewRound creates a round that draws from d. The deck is owned by the round
// from here on and must not be drawn from elsewhere.
func NewRound(d *deck.Deck, opts ...RoundOption) *Round {
	cfg := &roundConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.roundID == "" {
		cfg.roundID = gameid.Generate()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	return &Round{
		id:     cfg.roundID,
		deck:   d,
		state:  RoundPlaying,
		logger: cfg.logger.WithPrefix("round").With("round", cfg.roundID),
		bus:    cfg.bus,
	}
}

// AddPlayer registers a player. Registration order is deal and turn order.
func (r *Round) AddPlayer(name string, agent Agent) error {
	if r.dealt {
		return fmt.Errorf("add player %q: %w", name, ErrAlreadyDealt)
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPlayer)
	}
	if agent == nil {
		return fmt.Errorf("%w: player %q has no agent", ErrInvalidPlayer, name)
	}
	for _, p := range r.players {
		if p.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicatePlayer, name)
		}
	}

	r.players = append(r.players, NewPlayer(name, agent))
	r.logger.Debug("Player registered", "player", name, "seat", len(r.players))
	return nil
}

// Init deals one card to every player and one to the dealer from a single
// draw. The first card drawn goes to the dealer and the players take the rest
// in reverse draw order. Nothing changes if the deck is too short.
func (r *Round) Init() (*StepReport, error) {
	if r.dealt {
		return nil, ErrAlreadyDealt
	}
	if len(r.players) == 0 {
		return nil, ErrNoPlayers
	}

	cards, err := r.deck.DrawN(len(r.players) + 1)
	if err != nil {
		return nil, fmt.Errorf("deal opening hands: %w", err)
	}
	r.dealt = true

	report := &StepReport{Step: 0}
	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = p.Name
	}
	r.emit(report, RoundStartEvent{RoundID: r.id, Players: names})

	last := len(cards) - 1
	for i, p := range r.players {
		card := cards[last-i]
		p.Hand.Add(card)
		r.emit(report, CardDealtEvent{Recipient: p.Name, Card: card, Score: p.Hand.Score(), Reason: DealOpening})
	}
	r.dealer.Hand.Add(cards[0])
	r.emit(report, CardDealtEvent{ToDealer: true, Card: cards[0], Score: r.dealer.Hand.Score(), Reason: DealOpening})

	r.logger.Info("Opening hands dealt", "players", len(r.players), "remaining", r.deck.Remaining())
	report.State = r.state
	return report, nil
}

// Play advances the round by one step: every player acts once, the dealer
// draws at most one card, then bust and termination rules are applied.
//
// Play on a finished round returns ErrRoundOver and changes nothing. If the
// deck runs out mid-step the error is returned and every later call returns
// it again.
func (r *Round) Play() (*StepReport, error) {
	switch {
	case r.err != nil:
		return nil, r.err
	case !r.dealt:
		return nil, ErrNotDealt
	case r.state == RoundEnd:
		return nil, ErrRoundOver
	}

	report := &StepReport{Step: r.steps + 1}
	r.logger.Debug("Step start", "step", report.Step)
	r.played++

	for _, p := range r.players {
		if err := r.playerTurn(p, report); err != nil {
			return r.fail(report, err)
		}
	}

	if err := r.dealerTurn(report); err != nil {
		return r.fail(report, err)
	}

	dealerScore := r.dealer.Hand.Score()
	if dealerScore > TargetScore {
		r.emit(report, DealerBustEvent{Score: dealerScore})
		for _, p := range r.players {
			if p.State != StateBust {
				r.setState(report, p, StateWin, "dealer bust")
			}
		}
		r.end(report, true)
		return report, nil
	}

	if r.allDone() {
		for _, p := range r.players {
			if p.State != StateStand {
				continue
			}
			score := p.Hand.Score()
			switch {
			case score > dealerScore:
				r.setState(report, p, StateWin, "beats dealer")
			case score < dealerScore:
				r.setState(report, p, StateBust, "loses to dealer")
			default:
				r.logger.Debug("Push", "player", p.Name, "score", score)
			}
		}
		r.end(report, false)
	}

	r.steps++
	report.State = r.state
	return report, nil
}

func (r *Round) playerTurn(p *Player, report *StepReport) error {
	if p.State.IsTerminal() {
		return nil
	}

	switch score := p.Hand.Score(); {
	case score == TargetScore:
		r.setState(report, p, StateWin, "21")
	case score > TargetScore:
		r.setState(report, p, StateBust, "over 21")
	case p.State == StatePlaying:
		decision := r.decide(p, report)
		switch decision.Action {
		case ActionHit:
			card, err := r.deck.Draw()
			if err != nil {
				return fmt.Errorf("%s hits: %w", p.Name, err)
			}
			p.Hand.Add(card)
			r.emit(report, CardDealtEvent{Recipient: p.Name, Card: card, Score: p.Hand.Score(), Reason: DealHit})
			r.evaluate(report, p)
		case ActionStand:
			r.setState(report, p, StateStand, "stands")
		case ActionNone:
			r.logger.Debug("No action", "player", p.Name)
		}
	}
	return nil
}

func (r *Round) decide(p *Player, report *StepReport) Decision {
	decision := p.agent.Decide(r.viewFor(p, report.Step))

	normalized := false
	if !decision.Action.Valid() {
		r.logger.Warn("Agent returned invalid action, treating as none",
			"player", p.Name, "action", decision.Action)
		decision.Action = ActionNone
		normalized = true
	}

	r.logger.Debug("Player decision",
		"player", p.Name,
		"action", decision.Action,
		"score", p.Hand.Score(),
		"reasoning", decision.Reasoning)

	r.emit(report, PlayerDecisionEvent{
		Player:     p.Name,
		Action:     decision.Action,
		Reasoning:  decision.Reasoning,
		Step:       report.Step,
		Normalized: normalized,
	})
	return decision
}

// evaluate applies the win and bust thresholds after a hit
func (r *Round) evaluate(report *StepReport, p *Player) {
	switch score := p.Hand.Score(); {
	case score == TargetScore:
		r.setState(report, p, StateWin, "hit to 21")
	case score > TargetScore:
		r.setState(report, p, StateBust, "hit over 21")
	}
}

func (r *Round) dealerTurn(report *StepReport) error {
	if r.dealer.Hand.Score() >= DealerStandScore {
		return nil
	}

	card, err := r.deck.Draw()
	if err != nil {
		return fmt.Errorf("dealer draws: %w", err)
	}
	r.dealer.Hand.Add(card)
	r.emit(report, CardDealtEvent{ToDealer: true, Card: card, Score: r.dealer.Hand.Score(), Reason: DealDealer})
	return nil
}

func (r *Round) allDone() bool {
	for _, p := range r.players {
		if p.State == StatePlaying {
			return false
		}
	}
	return true
}

func (r *Round) setState(report *StepReport, p *Player, to PlayerState, reason string) {
	if p.State == to {
		return
	}
	from := p.State
	p.State = to
	r.logger.Debug("State change", "player", p.Name, "from", from, "to", to, "reason", reason)
	r.emit(report, StateChangeEvent{Player: p.Name, From: from, To: to, Reason: reason})
}

func (r *Round) end(report *StepReport, dealerBust bool) {
	r.state = RoundEnd
	report.State = RoundEnd
	r.logger.Info("Round complete", "played", r.played, "dealerScore", r.dealer.Hand.Score(), "dealerBust", dealerBust)
	r.emit(report, RoundEndEvent{
		RoundID:     r.id,
		Steps:       r.played,
		DealerScore: r.dealer.Hand.Score(),
		DealerBust:  dealerBust,
	})
}

func (r *Round) fail(report *StepReport, err error) (*StepReport, error) {
	r.err = fmt.Errorf("step %d: %w", report.Step, err)
	r.logger.Error("Round failed", "error", r.err)
	report.State = r.state
	return report, r.err
}

func (r *Round) emit(report *StepReport, event Event) {
	report.Events = append(report.Events, event)
	if r.bus != nil {
		r.bus.Publish(event)
	}
}

func (r *Round) viewFor(p *Player, step int) RoundView {
	return RoundView{
		RoundID:        r.id,
		Step:           step,
		Self:           p.View(),
		Players:        r.Players(),
		Dealer:         r.dealer.View(),
		CardsRemaining: r.deck.Remaining(),
	}
}

// ID returns the round identifier
func (r *Round) ID() string { return r.id }

// State returns whether the round is still being played
func (r *Round) State() RoundState { return r.state }

// Steps returns the round counter. The step that ends the round with a
// dealer bust returns before the counter moves.
func (r *Round) Steps() int { return r.steps }

// Played returns the number of steps executed so far
func (r *Round) Played() int { return r.played }

// Dealt reports whether Init has run
func (r *Round) Dealt() bool { return r.dealt }

// Err returns the error that made the round unusable, if any
func (r *Round) Err() error { return r.err }

// Remaining returns the number of cards left in the deck
func (r *Round) Remaining() int { return r.deck.Remaining() }

// Players returns a snapshot of every player in registration order
func (r *Round) Players() []PlayerView {
	views := make([]PlayerView, len(r.players))
	for i, p := range r.players {
		views[i] = p.View()
	}
	return views
}

// Dealer returns a snapshot of the dealer's hand
func (r *Round) Dealer() DealerView {
	return r.dealer.View()
}

// View returns what the named player would see when deciding
func (r *Round) View(name string) (RoundView, error) {
	for _, p := range r.players {
		if p.Name == name {
			return r.viewFor(p, r.steps+1), nil
		}
	}
	return RoundView{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
}
