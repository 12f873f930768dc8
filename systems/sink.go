// Package systems provides the hive grid, spawning, and spatial subsystems.
package systems

// PresentationSink receives state-change notifications for rendering, audio,
// and UI. It has no influence on simulation state: the core is fully
// deterministic for a fixed seed even when every method is a no-op.
type PresentationSink interface {
	SlotRevealed(row, col int)
	SlotOpened(row, col, capacity int)
	SlotClosing(row, col int)
	SlotClosed(row, col int)
	BeeSpawned(id uint32, kind uint8)
	BeeStunned(id uint32)
	BeeTerminated(id uint32)
	PathConnected(beeID uint32, row, col int)
	PathDisconnected(beeID uint32)
}

// NopSink discards all notifications. Used in headless runs and tests.
type NopSink struct{}

func (NopSink) SlotRevealed(int, int)        {}
func (NopSink) SlotOpened(int, int, int)     {}
func (NopSink) SlotClosing(int, int)         {}
func (NopSink) SlotClosed(int, int)          {}
func (NopSink) BeeSpawned(uint32, uint8)     {}
func (NopSink) BeeStunned(uint32)            {}
func (NopSink) BeeTerminated(uint32)         {}
func (NopSink) PathConnected(uint32, int, int) {}
func (NopSink) PathDisconnected(uint32)      {}
