package game

import (
	"github.com/beeline-game/beeline/systems"
	"github.com/beeline-game/beeline/telemetry"
)

// ScoreSink receives scoring notifications from the simulation.
// Fire-and-forget: at most one call per event, no return value, and
// implementations must not call back into the simulation.
type ScoreSink interface {
	// OnArrival fires once when a bee enters its destination slot.
	OnArrival()
	// OnCollision fires once per bee-bee collision event, not once per
	// participant.
	OnCollision()
}

// PlayabilityGate reports whether the simulation is in its active phase.
// Spawning, arrival checks, and collision scoring are only evaluated while
// CanSimulate returns true; intro and post-game phases pause them.
type PlayabilityGate interface {
	CanSimulate() bool
}

// NopScore discards scoring notifications. Used in tests.
type NopScore struct{}

func (NopScore) OnArrival()   {}
func (NopScore) OnCollision() {}

// sinkTap forwards presentation notifications unchanged and mirrors slot
// lifecycle transitions into the telemetry event buffer. Bee events are
// recorded at their call sites, which carry more context than the sink
// signature does.
type sinkTap struct {
	g    *Game
	next systems.PresentationSink
}

func (t sinkTap) SlotRevealed(row, col int) {
	t.next.SlotRevealed(row, col)
}

func (t sinkTap) SlotOpened(row, col, capacity int) {
	t.g.recordEvent(telemetry.NewSlotEvent(telemetry.EventSlotOpened, t.g.tick, row, col))
	t.next.SlotOpened(row, col, capacity)
}

func (t sinkTap) SlotClosing(row, col int) {
	t.g.recordEvent(telemetry.NewSlotEvent(telemetry.EventSlotClosing, t.g.tick, row, col))
	t.next.SlotClosing(row, col)
}

func (t sinkTap) SlotClosed(row, col int) {
	t.g.recordEvent(telemetry.NewSlotEvent(telemetry.EventSlotClosed, t.g.tick, row, col))
	t.next.SlotClosed(row, col)
}

func (t sinkTap) BeeSpawned(id uint32, kind uint8)       { t.next.BeeSpawned(id, kind) }
func (t sinkTap) BeeStunned(id uint32)                   { t.next.BeeStunned(id) }
func (t sinkTap) BeeTerminated(id uint32)                { t.next.BeeTerminated(id) }
func (t sinkTap) PathConnected(id uint32, row, col int)  { t.next.PathConnected(id, row, col) }
func (t sinkTap) PathDisconnected(id uint32)             { t.next.PathDisconnected(id) }
