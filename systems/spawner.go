package systems

import (
	"fmt"
	"math/rand"

	"github.com/beeline-game/beeline/components"
)

// SpawnPhase defines one spawn pacing phase: delays drawn uniformly from
// [MinDelay, MaxDelay], advancing to the next phase after Count spawns.
type SpawnPhase struct {
	MinDelay float64
	MaxDelay float64
	Count    int
}

// BeeType is a spawnable bee category with its selection weight.
type BeeType struct {
	Name   string
	Weight int
	Speed  float32
	Radius float32
}

// SpawnScheduler decides when to spawn and which bee type to spawn.
// Waiting is countdown state advanced each tick, never a blocking wait.
// The phase index only moves forward and saturates at the last phase.
type SpawnScheduler struct {
	phases []SpawnPhase
	types  []BeeType
	total  int

	phaseIndex     int
	spawnedInPhase int
	countdown      float32

	rng *rand.Rand
}

// NewSpawnScheduler validates the phase and weight tables and returns a
// scheduler with its first countdown armed. A zero total weight is a
// configuration error, rejected here rather than producing undefined
// selection behavior later.
func NewSpawnScheduler(phases []SpawnPhase, types []BeeType, rng *rand.Rand) (*SpawnScheduler, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("spawner: no phases configured")
	}
	for i, p := range phases {
		if p.MinDelay < 0 || p.MaxDelay < p.MinDelay {
			return nil, fmt.Errorf("spawner: phase %d has invalid delay range [%v, %v]", i, p.MinDelay, p.MaxDelay)
		}
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("spawner: no bee types configured")
	}
	total := 0
	for _, t := range types {
		if t.Weight < 0 {
			return nil, fmt.Errorf("spawner: bee type %q has negative weight %d", t.Name, t.Weight)
		}
		total += t.Weight
	}
	if total == 0 {
		return nil, fmt.Errorf("spawner: bee type weights sum to zero")
	}

	s := &SpawnScheduler{
		phases: phases,
		types:  types,
		total:  total,
		rng:    rng,
	}
	s.countdown = s.drawDelay()
	return s, nil
}

// Tick advances the countdown by dt and reports whether a spawn is due,
// together with the selected bee type index. On a due spawn the phase
// bookkeeping advances and the countdown re-arms from the current phase's
// delay range.
func (s *SpawnScheduler) Tick(dt float32) (kind int, spawn bool) {
	s.countdown -= dt
	if s.countdown > 0 {
		return 0, false
	}

	kind = s.pickType()

	s.spawnedInPhase++
	if s.spawnedInPhase >= s.phases[s.phaseIndex].Count && s.phaseIndex < len(s.phases)-1 {
		s.phaseIndex++
		s.spawnedInPhase = 0
	}
	s.countdown = s.drawDelay()

	return kind, true
}

// pickType draws a bee type by cumulative weight: r uniform in
// [0, totalWeight), first type whose cumulative weight exceeds r. The
// comparison is strict and the interval half-open, so r can never reach the
// total and the last type is always selectable; ties at internal boundaries
// favor the later type, which is what a half-open interval per type gives.
func (s *SpawnScheduler) pickType() int {
	r := s.rng.Intn(s.total)
	acc := 0
	for i, t := range s.types {
		acc += t.Weight
		if r < acc {
			return i
		}
	}
	// Unreachable: acc ends at total and r < total.
	return len(s.types) - 1
}

func (s *SpawnScheduler) drawDelay() float32 {
	p := s.phases[s.phaseIndex]
	return float32(p.MinDelay + s.rng.Float64()*(p.MaxDelay-p.MinDelay))
}

// Type returns the bee type definition at the given index.
func (s *SpawnScheduler) Type(i int) BeeType { return s.types[i] }

// PhaseIndex returns the current phase index.
func (s *SpawnScheduler) PhaseIndex() int { return s.phaseIndex }

// Placer selects spawn positions just outside the visible play area using
// capped rejection sampling.
type Placer struct {
	WorldW, WorldH float32
	Margin         float32 // extended viewport margin, in viewport units
	MinSeparation  float32 // world units to the nearest active bee
	MaxProbes      int

	rng *rand.Rand
}

// NewPlacer creates a placer for the given world size.
func NewPlacer(worldW, worldH, margin, minSeparation float32, maxProbes int, rng *rand.Rand) *Placer {
	if maxProbes <= 0 {
		maxProbes = 24
	}
	return &Placer{
		WorldW:        worldW,
		WorldH:        worldH,
		Margin:        margin,
		MinSeparation: minSeparation,
		MaxProbes:     maxProbes,
		rng:           rng,
	}
}

// Place returns an edge-adjacent entry point. Candidates are sampled in an
// extended viewport space; a horizontal component inside the visible band
// forces the vertical component just above or below the screen, biased
// toward the half the sample fell in. Candidates closer than MinSeparation
// to any active bee (per the crowded callback) are rejected. The probe loop
// is capped: after MaxProbes rejections the last candidate is used, crowded
// or not, so a saturated edge can never stall the scheduler.
func (p *Placer) Place(crowded func(x, y, radius float32) bool) components.Vec2 {
	var cand components.Vec2
	for i := 0; i < p.MaxProbes; i++ {
		vx := -p.Margin + p.rng.Float32()*(1+2*p.Margin)
		vy := -p.Margin + p.rng.Float32()*(1+2*p.Margin)

		// Force entries to hug the top or bottom edge when the horizontal
		// sample lands inside the visible band.
		if vx > 0 && vx < 1 {
			if vy < 0.5 {
				vy = -p.Margin * 0.5
			} else {
				vy = 1 + p.Margin*0.5
			}
		}

		cand = components.Vec2{X: vx * p.WorldW, Y: vy * p.WorldH}
		if crowded == nil || !crowded(cand.X, cand.Y, p.MinSeparation) {
			return cand
		}
	}
	return cand
}
