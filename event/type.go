package event

// EventType identifies a battle message variant
type EventType int

const (
	// EventNone is the zero value and never dispatched
	EventNone EventType = iota

	// EventKnightMoved mirrors a locally controlled knight's pose
	// Trigger: netsync outbound diff after a tick | Payload: *KnightMovedPayload
	EventKnightMoved

	// EventKnightAttacked starts a cosmetic swing on peers
	// Trigger: attack initiation | Payload: *KnightAttackedPayload
	EventKnightAttacked

	// EventKnightDamaged carries the authoritative result of one resolved hit
	// Trigger: combat resolution on the attacker's client | Payload: *KnightDamagedPayload
	EventKnightDamaged

	// EventBattleStarted carries the host-generated roster, teams and spawn points
	// Trigger: host start | Payload: *BattleStartedPayload
	EventBattleStarted

	// EventBattleEnded carries the terminal outcome, idempotent on receipt
	// Trigger: end condition detected | Payload: *BattleEndedPayload
	EventBattleEnded

	eventTypeCount
)

// WireTypes lists every variant that crosses the relay
var WireTypes = []EventType{
	EventKnightMoved,
	EventKnightAttacked,
	EventKnightDamaged,
	EventBattleStarted,
	EventBattleEnded,
}

// Valid reports whether t is a known variant
func (t EventType) Valid() bool {
	return t > EventNone && t < eventTypeCount
}

func (t EventType) String() string {
	if name := GetEventName(t); name != "" {
		return name
	}
	return "unknown"
}

// GameEvent is one message flowing through a queue
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
	Remote  bool // decoded from the relay rather than produced locally
}
