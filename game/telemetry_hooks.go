package game

import (
	"log/slog"

	"github.com/beeline-game/beeline/components"
	"github.com/beeline-game/beeline/telemetry"
)

// recordEvent buffers a telemetry event for the next flush. Headless runs
// without an output directory skip buffering entirely.
func (g *Game) recordEvent(ev telemetry.Event) {
	if g.outputManager == nil {
		return
	}
	g.events = append(g.events, ev)
}

// flushTelemetry rolls the stats window when due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleState())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.Log()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if len(g.events) > 0 {
			if err := g.outputManager.WriteEvents(g.events); err != nil {
				slog.Error("failed to write events", "error", err)
			}
			g.events = g.events[:0]
		}
	}
}

// sampleState captures point-in-time values for the stats window.
func (g *Game) sampleState() telemetry.Sample {
	open, closing, closed := g.grid.SlotCounts()
	sample := telemetry.Sample{
		ActiveBees:   g.activeCount,
		BeesByKind:   append([]int(nil), g.countsByKind...),
		OpenSlots:    open,
		ClosingSlots: closing,
		ClosedSlots:  closed,
	}

	query := g.beeFilter.Query()
	for query.Next() {
		_, vel, bee, _ := query.Get()

		if bee.Active && bee.State == components.BeeFlying {
			speed := sqrt32(vel.X*vel.X + vel.Y*vel.Y)
			sample.Speeds = append(sample.Speeds, float64(speed))
		}
	}

	return sample
}
