// Package statistics aggregates the outcomes of many simulated rounds.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// PlayerStats tracks one seat's outcomes across rounds
type PlayerStats struct {
	Name     string
	Rounds   int
	Wins     int
	Busts    int
	Pushes   int // stood level with the dealer
	SumScore int
}

// Add records the seat's final state in one round
func (p *PlayerStats) Add(view game.PlayerView) {
	p.Rounds++
	p.SumScore += view.Score
	switch view.State {
	case game.StateWin:
		p.Wins++
	case game.StateBust:
		p.Busts++
	default:
		p.Pushes++
	}
}

// WinRate returns the fraction of rounds won
func (p *PlayerStats) WinRate() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Rounds)
}

// StdError returns the standard error of the win rate
func (p *PlayerStats) StdError() float64 {
	if p.Rounds == 0 {
		return 0
	}
	rate := p.WinRate()
	return math.Sqrt(rate * (1 - rate) / float64(p.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the win rate
func (p *PlayerStats) ConfidenceInterval95() (float64, float64) {
	rate := p.WinRate()
	margin := 1.96 * p.StdError()
	return math.Max(0, rate-margin), math.Min(1, rate+margin)
}

// MeanScore returns the average final score
func (p *PlayerStats) MeanScore() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return float64(p.SumScore) / float64(p.Rounds)
}

// Statistics tracks every seat plus the length of each completed round
type Statistics struct {
	Rounds      int
	DealerWins  int // every player bust
	DealerBusts int
	Stalled     int // stopped by the step budget
	Failed      int // stopped by an engine error such as an exhausted deck

	SumSteps  int
	SumSteps2 int
	Steps     []int // per completed round, for median and percentiles

	players map[string]*PlayerStats
	order   []string
}

// New creates statistics for the given seats, reported in this order
func New(names []string) *Statistics {
	s := &Statistics{players: make(map[string]*PlayerStats, len(names))}
	for _, name := range names {
		s.player(name)
	}
	return s
}

func (s *Statistics) player(name string) *PlayerStats {
	if s.players == nil {
		s.players = make(map[string]*PlayerStats)
	}
	p, ok := s.players[name]
	if !ok {
		p = &PlayerStats{Name: name}
		s.players[name] = p
		s.order = append(s.order, name)
	}
	return p
}

// Add incorporates a finished round
func (s *Statistics) Add(res *game.Result) {
	s.Rounds++
	s.SumSteps += res.Steps
	s.SumSteps2 += res.Steps * res.Steps
	s.Steps = append(s.Steps, res.Steps)

	if res.DealerWins {
		s.DealerWins++
	}
	if res.Dealer.Score > game.TargetScore {
		s.DealerBusts++
	}
	for _, p := range res.Players {
		s.player(p.Name).Add(p)
	}
}

// Player returns the named seat's statistics, nil if it never played
func (s *Statistics) Player(name string) *PlayerStats {
	return s.players[name]
}

// Players returns every seat in registration order
func (s *Statistics) Players() []*PlayerStats {
	out := make([]*PlayerStats, len(s.order))
	for i, name := range s.order {
		out[i] = s.players[name]
	}
	return out
}

// Attempted returns every round started, including those that did not finish
func (s *Statistics) Attempted() int {
	return s.Rounds + s.Stalled + s.Failed
}

// MeanSteps returns the average number of steps per completed round
func (s *Statistics) MeanSteps() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.SumSteps) / float64(s.Rounds)
}

// StepsVariance returns the sample variance of round length
func (s *Statistics) StepsVariance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.MeanSteps()
	return (float64(s.SumSteps2) - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StepsStdDev returns the sample standard deviation of round length
func (s *Statistics) StepsStdDev() float64 {
	return math.Sqrt(s.StepsVariance())
}

// StepsPercentile returns the round length at the given percentile (0.0 to 1.0)
func (s *Statistics) StepsPercentile(p float64) float64 {
	if len(s.Steps) == 0 {
		return 0
	}
	sorted := make([]int, len(s.Steps))
	copy(sorted, s.Steps)
	sort.Ints(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// Validate checks that the per seat counts add up
func (s *Statistics) Validate() error {
	if s.Rounds != len(s.Steps) {
		return fmt.Errorf("rounds count %d doesn't match steps recorded %d", s.Rounds, len(s.Steps))
	}
	if s.DealerWins > s.Rounds {
		return fmt.Errorf("dealer wins %d exceed rounds %d", s.DealerWins, s.Rounds)
	}
	for _, p := range s.Players() {
		if p.Wins+p.Busts+p.Pushes != p.Rounds {
			return fmt.Errorf("player %s: wins %d + busts %d + pushes %d != rounds %d",
				p.Name, p.Wins, p.Busts, p.Pushes, p.Rounds)
		}
		if p.Rounds > s.Rounds {
			return fmt.Errorf("player %s: played %d rounds of %d", p.Name, p.Rounds, s.Rounds)
		}
	}
	return nil
}
