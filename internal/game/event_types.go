package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStart     EventType = "round_start"
	EventTypeCardDealt      EventType = "card_dealt"
	EventTypePlayerDecision EventType = "player_decision"
	EventTypeStateChange    EventType = "state_change"
	EventTypeDealerBust     EventType = "dealer_bust"
	EventTypeRoundEnd       EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
