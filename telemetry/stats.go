package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Counts at window end
	ActiveBees   int `csv:"active_bees"`
	OpenSlots    int `csv:"open_slots"`
	ClosingSlots int `csv:"closing_slots"`
	ClosedSlots  int `csv:"closed_slots"`

	// Events during window
	Spawns       int `csv:"spawns"`
	Arrivals     int `csv:"arrivals"`
	Collisions   int `csv:"collisions"`
	Terminations int `csv:"terminations"`

	// Run totals
	TotalArrivals   int `csv:"total_arrivals"`
	TotalCollisions int `csv:"total_collisions"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP95  float64 `csv:"speed_p95"`
}

// ComputeSpeedStats returns mean, standard deviation, and 95th percentile of
// the given speeds. Returns zeros for an empty sample; stddev needs at least
// two. The slice is sorted in place.
func ComputeSpeedStats(speeds []float64) (mean, std, p95 float64) {
	if len(speeds) == 0 {
		return 0, 0, 0
	}
	mean = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		std = stat.StdDev(speeds, nil)
	}
	sort.Float64s(speeds)
	p95 = stat.Quantile(0.95, stat.Empirical, speeds, nil)
	return mean, std, p95
}

// Log writes the window stats as a structured slog line.
func (s WindowStats) Log() {
	slog.Info("window stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"active_bees", s.ActiveBees,
		"open_slots", s.OpenSlots,
		"closing_slots", s.ClosingSlots,
		"closed_slots", s.ClosedSlots,
		"spawns", s.Spawns,
		"arrivals", s.Arrivals,
		"collisions", s.Collisions,
		"terminations", s.Terminations,
		"total_arrivals", s.TotalArrivals,
		"total_collisions", s.TotalCollisions,
		"speed_mean", s.SpeedMean,
	)
}
