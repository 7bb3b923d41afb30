package bot

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
)

// TimeoutAgent bounds how long an inner agent may take to decide. When the
// deadline passes the fallback action is returned and the inner decision is
// discarded once it arrives.
type TimeoutAgent struct {
	inner    game.Agent
	timeout  time.Duration
	clock    quartz.Clock
	fallback game.Action
	logger   *log.Logger
}

// WithTimeout wraps agent so that Decide returns fallback after timeout.
// A nil clock uses the real clock; a non-positive timeout disables the wrapper.
func WithTimeout(agent game.Agent, timeout time.Duration, clock quartz.Clock, fallback game.Action, logger *log.Logger) game.Agent {
	if timeout <= 0 {
		return agent
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TimeoutAgent{
		inner:    agent,
		timeout:  timeout,
		clock:    clock,
		fallback: fallback,
		logger:   logger.WithPrefix("bot"),
	}
}

// Decide asks the inner agent and waits at most the configured timeout
func (t *TimeoutAgent) Decide(view game.RoundView) game.Decision {
	expired := make(chan struct{})
	timer := t.clock.AfterFunc(t.timeout, func() { close(expired) })
	defer timer.Stop()

	result := make(chan game.Decision, 1)
	go func() {
		result <- t.inner.Decide(view)
	}()

	select {
	case d := <-result:
		return d
	case <-expired:
		t.logger.Warn("Decision timed out",
			"player", view.Self.Name,
			"step", view.Step,
			"timeout", t.timeout,
			"fallback", t.fallback)
		return game.Decision{
			Action:    t.fallback,
			Reasoning: fmt.Sprintf("timed out after %s", t.timeout),
		}
	}
}
