package telemetry

// Collector accumulates events within time windows and produces WindowStats.
// It doubles as the simulation's score sink: OnArrival and OnCollision are
// the fire-and-forget scoring notifications, recorded at most once per event
// and never re-entering the simulation.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns       int
	arrivals     int
	collisions   int
	terminations int

	// Run totals, survive window resets
	totalArrivals   int
	totalCollisions int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// OnArrival records one bee arriving at its destination slot.
func (c *Collector) OnArrival() {
	c.arrivals++
	c.totalArrivals++
}

// OnCollision records one bee-bee collision event (one per pair, not per
// participant).
func (c *Collector) OnCollision() {
	c.collisions++
	c.totalCollisions++
}

// RecordSpawn records a bee spawn.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordTermination records a bee returning to the pool.
func (c *Collector) RecordTermination() {
	c.terminations++
}

// TotalArrivals returns the run-wide arrival count (the score).
func (c *Collector) TotalArrivals() int { return c.totalArrivals }

// TotalCollisions returns the run-wide collision count.
func (c *Collector) TotalCollisions() int { return c.totalCollisions }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample carries point-in-time values captured by the game at window end.
type Sample struct {
	ActiveBees   int
	BeesByKind   []int
	OpenSlots    int
	ClosingSlots int
	ClosedSlots  int
	Speeds       []float64 // active bee speeds for distribution stats
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	speedMean, speedStd, speedP95 := ComputeSpeedStats(sample.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		ActiveBees:   sample.ActiveBees,
		OpenSlots:    sample.OpenSlots,
		ClosingSlots: sample.ClosingSlots,
		ClosedSlots:  sample.ClosedSlots,

		Spawns:       c.spawns,
		Arrivals:     c.arrivals,
		Collisions:   c.collisions,
		Terminations: c.terminations,

		TotalArrivals:   c.totalArrivals,
		TotalCollisions: c.totalCollisions,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
		SpeedP95:  speedP95,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.arrivals = 0
	c.collisions = 0
	c.terminations = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
