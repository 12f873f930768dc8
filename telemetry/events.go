// Package telemetry provides run statistics, scoring counters, and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventArrival
	EventCollision
	EventStun
	EventTermination
	EventSlotOpened
	EventSlotClosing
	EventSlotClosed
)

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32 // bee ID, when applicable
	Kind     uint8  // bee type index, when applicable

	// Slot coordinates for slot events
	Row, Col int
}

// NewSpawnEvent creates a spawn event.
func NewSpawnEvent(tick int32, beeID uint32, kind uint8) Event {
	return Event{Type: EventSpawn, Tick: tick, EntityID: beeID, Kind: kind}
}

// NewArrivalEvent creates an arrival event.
func NewArrivalEvent(tick int32, beeID uint32, row, col int) Event {
	return Event{Type: EventArrival, Tick: tick, EntityID: beeID, Row: row, Col: col}
}

// NewCollisionEvent creates a collision event. One event covers both
// participants; EntityID holds the lower bee ID.
func NewCollisionEvent(tick int32, beeID uint32) Event {
	return Event{Type: EventCollision, Tick: tick, EntityID: beeID}
}

// NewTerminationEvent creates a termination event.
func NewTerminationEvent(tick int32, beeID uint32, kind uint8) Event {
	return Event{Type: EventTermination, Tick: tick, EntityID: beeID, Kind: kind}
}

// NewStunEvent creates a stun event for one collision participant.
func NewStunEvent(tick int32, beeID uint32) Event {
	return Event{Type: EventStun, Tick: tick, EntityID: beeID}
}

// NewSlotEvent creates a slot lifecycle event.
func NewSlotEvent(t EventType, tick int32, row, col int) Event {
	return Event{Type: t, Tick: tick, Row: row, Col: col}
}

// String returns the event type name for CSV output and logging.
func (t EventType) String() string {
	switch t {
	case EventSpawn:
		return "spawn"
	case EventArrival:
		return "arrival"
	case EventCollision:
		return "collision"
	case EventStun:
		return "stun"
	case EventTermination:
		return "termination"
	case EventSlotOpened:
		return "slot_opened"
	case EventSlotClosing:
		return "slot_closing"
	case EventSlotClosed:
		return "slot_closed"
	}
	return "unknown"
}

// EventCSV is the flat CSV representation of an Event.
type EventCSV struct {
	Tick     int32  `csv:"tick"`
	Type     string `csv:"type"`
	EntityID uint32 `csv:"entity_id"`
	Kind     uint8  `csv:"kind"`
	Row      int    `csv:"row"`
	Col      int    `csv:"col"`
}

// ToCSV converts the event to its CSV record.
func (e Event) ToCSV() EventCSV {
	return EventCSV{
		Tick:     e.Tick,
		Type:     e.Type.String(),
		EntityID: e.EntityID,
		Kind:     e.Kind,
		Row:      e.Row,
		Col:      e.Col,
	}
}
