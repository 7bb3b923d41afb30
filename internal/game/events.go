package game

import (
	"reflect"

	"github.com/lox/blackjack/internal/deck"
)

// Event describes one thing that happened during a round
type Event interface {
	EventType() EventType
}

// DealReason says why a card left the deck
type DealReason string

const (
	DealOpening DealReason = "deal"
	DealHit     DealReason = "hit"
	DealDealer  DealReason = "dealer_draw"
)

// RoundStartEvent is published when the opening hands are dealt
type RoundStartEvent struct {
	RoundID string
	Players []string
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// CardDealtEvent is published for every card drawn from the deck
type CardDealtEvent struct {
	Recipient string // player name, empty for the dealer
	ToDealer  bool
	Card      deck.Card
	Score     int // recipient's score after the card
	Reason    DealReason
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }

// PlayerDecisionEvent is published after an agent answers
type PlayerDecisionEvent struct {
	Player    string
	Action    Action
	Reasoning string
	Step      int

	// Normalized is set when the agent returned an action outside the
	// closed set and it was replaced by ActionNone.
	Normalized bool
}

func (e PlayerDecisionEvent) EventType() EventType { return EventTypePlayerDecision }

// StateChangeEvent is published when a player's state changes
type StateChangeEvent struct {
	Player string
	From   PlayerState
	To     PlayerState
	Reason string
}

func (e StateChangeEvent) EventType() EventType { return EventTypeStateChange }

// DealerBustEvent is published when the dealer goes over 21
type DealerBustEvent struct {
	Score int
}

func (e DealerBustEvent) EventType() EventType { return EventTypeDealerBust }

// RoundEndEvent is published once, when the round reaches its end state
type RoundEndEvent struct {
	RoundID     string
	Steps       int // steps played, same as Result.Steps
	DealerScore int
	DealerBust  bool
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// EventSubscriber can subscribe to round events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus delivers events synchronously, in publish order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Subscribers of a
// non-comparable type, such as SubscriberFunc, cannot be matched and are left
// in place.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if subscriber == nil || !reflect.TypeOf(subscriber).Comparable() {
		return
	}
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// SubscriberFunc adapts a function to EventSubscriber. Func values are not
// comparable, so Unsubscribe ignores a SubscriberFunc.
type SubscriberFunc func(event Event)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// StepReport is the structured description of one Init or Play call
type StepReport struct {
	Step   int // 0 for Init
	Events []Event
	State  RoundState
}
