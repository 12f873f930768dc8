package systems

import (
	"math"
	"math/rand"
	"testing"
)

func testPhases() []SpawnPhase {
	return []SpawnPhase{
		{MinDelay: 1, MaxDelay: 2, Count: 3},
		{MinDelay: 0.5, MaxDelay: 1, Count: 5},
		{MinDelay: 0.2, MaxDelay: 0.4, Count: 1000},
	}
}

func testTypes() []BeeType {
	return []BeeType{
		{Name: "worker", Weight: 1, Speed: 2, Radius: 0.2},
		{Name: "drone", Weight: 3, Speed: 3, Radius: 0.3},
	}
}

// TestNewSpawnSchedulerValidation verifies configuration errors are
// rejected at construction.
func TestNewSpawnSchedulerValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		phases []SpawnPhase
		types  []BeeType
	}{
		{
			name:   "no phases",
			phases: nil,
			types:  testTypes(),
		},
		{
			name:   "inverted delay range",
			phases: []SpawnPhase{{MinDelay: 2, MaxDelay: 1, Count: 1}},
			types:  testTypes(),
		},
		{
			name:   "no types",
			phases: testPhases(),
			types:  nil,
		},
		{
			name:   "negative weight",
			phases: testPhases(),
			types:  []BeeType{{Name: "bad", Weight: -1}},
		},
		{
			name:   "zero total weight",
			phases: testPhases(),
			types:  []BeeType{{Name: "a", Weight: 0}, {Name: "b", Weight: 0}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSpawnScheduler(tc.phases, tc.types, rng); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// TestTickSpawnCadence verifies spawns arrive within the phase delay
// bounds, never earlier than MinDelay ticks allow.
func TestTickSpawnCadence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewSpawnScheduler(
		[]SpawnPhase{{MinDelay: 1, MaxDelay: 2, Count: 1000}},
		testTypes(), rng,
	)
	if err != nil {
		t.Fatal(err)
	}

	const dt = 0.1
	sinceSpawn := 0.0
	spawns := 0
	for i := 0; i < 10000; i++ {
		sinceSpawn += dt
		if _, ok := s.Tick(dt); ok {
			// One dt of slack: the countdown crosses zero mid-tick.
			if sinceSpawn < 1-dt-1e-6 || sinceSpawn > 2+dt+1e-6 {
				t.Fatalf("spawn after %.2fs, want within [1, 2]", sinceSpawn)
			}
			sinceSpawn = 0
			spawns++
		}
	}
	if spawns == 0 {
		t.Fatal("no spawns in 1000 simulated seconds")
	}
}

// TestPhaseAdvanceAndSaturation verifies the phase index moves forward
// after the configured spawn counts and pins at the last phase.
func TestPhaseAdvanceAndSaturation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := NewSpawnScheduler(
		[]SpawnPhase{
			{MinDelay: 0, MaxDelay: 0, Count: 2},
			{MinDelay: 0, MaxDelay: 0, Count: 3},
			{MinDelay: 0, MaxDelay: 0, Count: 1},
		},
		testTypes(), rng,
	)
	if err != nil {
		t.Fatal(err)
	}

	// Phase index expected after each successive spawn.
	wantAfter := []int{0, 1, 1, 1, 2, 2, 2, 2, 2, 2}
	for i, want := range wantAfter {
		// Zero delays: every tick spawns.
		if _, ok := s.Tick(1); !ok {
			t.Fatalf("tick %d did not spawn", i)
		}
		if s.PhaseIndex() != want {
			t.Fatalf("after spawn %d: phase %d, want %d", i+1, s.PhaseIndex(), want)
		}
	}

	if s.PhaseIndex() != 2 {
		t.Errorf("phase index left the last phase: %d", s.PhaseIndex())
	}
}

// TestPickTypeDistribution verifies weighted selection over many draws:
// weights 1:3 should produce roughly a quarter workers.
func TestPickTypeDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s, err := NewSpawnScheduler(
		[]SpawnPhase{{MinDelay: 0, MaxDelay: 0, Count: 100000}},
		testTypes(), rng,
	)
	if err != nil {
		t.Fatal(err)
	}

	const draws = 10000
	counts := make([]int, 2)
	for i := 0; i < draws; i++ {
		kind, ok := s.Tick(1)
		if !ok {
			t.Fatal("zero-delay scheduler skipped a spawn")
		}
		counts[kind]++
	}

	workerRatio := float64(counts[0]) / draws
	if math.Abs(workerRatio-0.25) > 0.02 {
		t.Errorf("worker ratio = %.3f, want 0.25 within 0.02", workerRatio)
	}
}

// TestPickTypeZeroWeightNeverChosen verifies a zero-weight type in an
// otherwise valid table is never selected.
func TestPickTypeZeroWeightNeverChosen(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s, err := NewSpawnScheduler(
		[]SpawnPhase{{MinDelay: 0, MaxDelay: 0, Count: 100000}},
		[]BeeType{
			{Name: "never", Weight: 0},
			{Name: "always", Weight: 2},
		},
		rng,
	)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		if kind, _ := s.Tick(1); kind == 0 {
			t.Fatal("zero-weight type selected")
		}
	}
}

// TestPlaceOutsideViewport verifies every placement lands outside the
// visible area but inside the extended margin.
func TestPlaceOutsideViewport(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	p := NewPlacer(20, 11.25, 0.15, 5, 24, rng)

	for i := 0; i < 1000; i++ {
		pos := p.Place(nil)

		vx := pos.X / 20
		vy := pos.Y / 11.25

		inside := vx > 0 && vx < 1 && vy > 0 && vy < 1
		if inside {
			t.Fatalf("placement %d inside viewport: (%.3f, %.3f)", i, vx, vy)
		}
		if vx < -0.15-1e-4 || vx > 1.15+1e-4 || vy < -0.15-1e-4 || vy > 1.15+1e-4 {
			t.Fatalf("placement %d outside margin: (%.3f, %.3f)", i, vx, vy)
		}
	}
}

// TestPlaceRespectsSeparation verifies crowded candidates are rejected
// while probes remain.
func TestPlaceRespectsSeparation(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	p := NewPlacer(20, 11.25, 0.15, 5, 200, rng)

	// Crowd the left half of the world.
	crowded := func(x, y, radius float32) bool {
		return x < 10
	}

	for i := 0; i < 100; i++ {
		pos := p.Place(crowded)
		if pos.X < 10 {
			t.Fatalf("placement %d in crowded region: x=%.2f", i, pos.X)
		}
	}
}

// TestPlaceCapIsNotAStall verifies an everywhere-crowded world still
// yields a position once probes are exhausted.
func TestPlaceCapIsNotAStall(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	p := NewPlacer(20, 11.25, 0.15, 5, 8, rng)

	pos := p.Place(func(x, y, radius float32) bool { return true })
	vx := pos.X / 20
	vy := pos.Y / 11.25
	if vx > 0 && vx < 1 && vy > 0 && vy < 1 {
		t.Errorf("fallback placement inside viewport: (%.3f, %.3f)", vx, vy)
	}
}
