package telemetry

import (
	"math"
	"testing"
)

func TestComputeSpeedStats(t *testing.T) {
	speeds := []float64{2, 2, 3, 3}
	mean, std, p95 := ComputeSpeedStats(speeds)

	if math.Abs(mean-2.5) > 0.001 {
		t.Errorf("mean = %v, want 2.5", mean)
	}
	// Sample standard deviation of {2,2,3,3} is sqrt(1/3) ~ 0.577
	if math.Abs(std-0.5774) > 0.001 {
		t.Errorf("std = %v, want ~0.5774", std)
	}
	if p95 != 3 {
		t.Errorf("p95 = %v, want 3", p95)
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, std, p95 := ComputeSpeedStats(nil)
	if mean != 0 || std != 0 || p95 != 0 {
		t.Error("empty slice should return zeros")
	}
}

func TestCollectorWindowing(t *testing.T) {
	// 1 second windows at dt 0.1: 10 ticks per window.
	c := NewCollector(1.0, 0.1)

	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window ticks = %d, want 10", c.WindowDurationTicks())
	}
	if c.ShouldFlush(9) {
		t.Error("flush due before window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("flush not due at window end")
	}

	c.RecordSpawn()
	c.RecordSpawn()
	c.OnArrival()
	c.OnCollision()
	c.RecordTermination()

	stats := c.Flush(10, Sample{
		ActiveBees:   4,
		OpenSlots:    3,
		ClosingSlots: 1,
		ClosedSlots:  2,
		Speeds:       []float64{2, 3},
	})

	if stats.Spawns != 2 || stats.Arrivals != 1 || stats.Collisions != 1 || stats.Terminations != 1 {
		t.Errorf("window counters = %+v", stats)
	}
	if stats.ActiveBees != 4 || stats.OpenSlots != 3 || stats.ClosingSlots != 1 || stats.ClosedSlots != 2 {
		t.Errorf("sampled state = %+v", stats)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window bounds = [%d, %d]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}

	// Window counters reset, run totals survive.
	next := c.Flush(20, Sample{})
	if next.Spawns != 0 || next.Arrivals != 0 {
		t.Error("window counters survived flush")
	}
	if next.TotalArrivals != 1 || next.TotalCollisions != 1 {
		t.Errorf("run totals = %d/%d, want 1/1", next.TotalArrivals, next.TotalCollisions)
	}
	if c.ShouldFlush(25) {
		t.Error("flush due mid-window after reset")
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	// A window shorter than one tick clamps to one tick.
	c := NewCollector(0.001, 0.1)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window ticks = %d, want 1", c.WindowDurationTicks())
	}
}
