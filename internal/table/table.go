// Package table seats configured players at a freshly shuffled round.
package table

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/gameid"
	"github.com/lox/blackjack/internal/randutil"
)

// Options controls how a round is assembled
type Options struct {
	// Seed shuffles the deck and seeds random bots. Zero is resolved to a
	// time based seed by the caller, not here.
	Seed    int64
	RoundID string
	Clock   quartz.Clock
	Logger  *log.Logger
	Bus     game.EventBus

	// Prompt answers for human seats
	Prompt game.PromptFunc
}

// NewRound shuffles a deck from opts.Seed and registers every player
func NewRound(players []config.PlayerConfig, opts Options) (*game.Round, error) {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	roundID := opts.RoundID
	if roundID == "" {
		roundID = gameid.NewGenerator(opts.Clock, nil).Generate()
	}

	roundOpts := []game.RoundOption{game.WithRoundID(roundID)}
	if opts.Logger != nil {
		roundOpts = append(roundOpts, game.WithLogger(opts.Logger))
	}
	if opts.Bus != nil {
		roundOpts = append(roundOpts, game.WithEventBus(opts.Bus))
	}

	r := game.NewRound(deck.New(randutil.New(opts.Seed)), roundOpts...)
	for seat, p := range players {
		agent, err := NewAgent(p, seatRNG(opts.Seed, seat), opts)
		if err != nil {
			return nil, err
		}
		if err := r.AddPlayer(p.Name, agent); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewAgent builds the agent for one configured seat. Bots are wrapped in a
// decision timeout when one is configured; a human prompt is never abandoned
// mid-read, so human seats are not.
func NewAgent(p config.PlayerConfig, rng *rand.Rand, opts Options) (game.Agent, error) {
	if p.IsHuman() {
		if opts.Prompt == nil {
			return nil, fmt.Errorf("player %s: human seats need a console", p.Name)
		}
		return game.NewHumanAgent(opts.Prompt), nil
	}

	agent, err := bot.New(p.Strategy, bot.Options{
		StandOn:        p.StandOn,
		HitProbability: p.HitProbability,
		Script:         p.Script,
		RNG:            rng,
		Logger:         opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", p.Name, err)
	}

	return bot.WithTimeout(agent, p.Timeout(), opts.Clock, game.ActionStand, opts.Logger), nil
}

// seatRNG derives an independent generator per seat so that a bot's choices
// do not depend on how many cards the deck shuffle consumed.
func seatRNG(seed int64, seat int) *rand.Rand {
	return randutil.New(seed ^ int64(seat+1)*0x5851f42d4c957f2d)
}
