package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
	"github.com/beeline-game/beeline/telemetry"
)

// Phase identifies the match flow state. Spawning, arrival, and collision
// are only evaluated while the playability gate is open, and the gate is
// only open during PhasePlaying.
type Phase uint8

const (
	// PhaseIntro counts down before play begins.
	PhaseIntro Phase = iota
	// PhasePlaying is the active play phase.
	PhasePlaying
	// PhaseCleared means the hive is spent: every slot opened and filled.
	PhaseCleared
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseCleared:
		return "cleared"
	}
	return "unknown"
}

// CanSimulate implements PlayabilityGate on the game's own phase state.
func (g *Game) CanSimulate() bool {
	return g.phase == PhasePlaying
}

// Phase returns the current match phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// updatePhase advances the match flow.
func (g *Game) updatePhase() {
	switch g.phase {
	case PhaseIntro:
		g.introLeft -= g.dt
		if g.introLeft <= 0 {
			g.phase = PhasePlaying
			slog.Info("phase change", "phase", g.phase.String(), "tick", g.tick)
		}
	case PhasePlaying:
		if g.grid.Exhausted() {
			g.phase = PhaseCleared
			slog.Info("phase change",
				"phase", g.phase.String(),
				"tick", g.tick,
				"score", g.collector.TotalArrivals(),
				"collisions", g.collector.TotalCollisions(),
			)
		}
	}
}

// updateGrowth reveals and opens hive cells on a fixed cadence while any
// remain. Slot closures never happen here; growth only moves cells forward
// to Revealed and Open.
func (g *Game) updateGrowth() {
	if g.phase != PhasePlaying {
		return
	}

	g.growthLeft -= g.dt
	if g.growthLeft > 0 {
		return
	}
	g.growthLeft = float32(g.cfg.Growth.Interval)

	revealed := g.grid.Reveal(g.cfg.Growth.RevealBatch)
	opened := g.grid.Open(g.cfg.Growth.OpenBatch, g.cfg.Grid.SlotCapacity)
	if revealed > 0 || opened > 0 {
		slog.Debug("hive growth",
			"tick", g.tick,
			"revealed", revealed,
			"opened", opened,
			"total_revealed", g.grid.RevealedCount(),
		)
	}
}

// updateSpawning asks the scheduler whether a spawn is due and places the
// new bee at a screen edge. Gated: no spawning during intro or after the
// hive is cleared.
func (g *Game) updateSpawning() {
	if !g.gate.CanSimulate() {
		return
	}

	kind, due := g.spawner.Tick(g.dt)
	if !due {
		return
	}

	pos := g.placer.Place(func(x, y, radius float32) bool {
		return g.spatial.HasWithin(x, y, radius, g.posMap)
	})
	g.spawnBee(uint8(kind), pos)
}

// spawnBee acquires a pooled bee, resets its full state, and aims it at a
// random point in the middle of the play area.
func (g *Game) spawnBee(kind uint8, at components.Vec2) ecs.Entity {
	t := g.spawner.Type(int(kind))

	e := g.pool.Acquire(kind)

	id := g.nextID
	g.nextID++

	bee := g.beeMap.Get(e)
	bee.Reset(id, kind, t.Speed, t.Radius)

	pos := g.posMap.Get(e)
	pos.X, pos.Y = at.X, at.Y

	// Initial heading: into the play area, toward a jittered interior point.
	target := components.Vec2{
		X: (0.25 + g.rng.Float32()*0.5) * g.worldW,
		Y: (0.25 + g.rng.Float32()*0.5) * g.worldH,
	}
	dx := target.X - at.X
	dy := target.Y - at.Y
	dist := dx*dx + dy*dy
	vel := g.velMap.Get(e)
	if dist > 0 {
		inv := t.Speed / sqrt32(dist)
		vel.X, vel.Y = dx*inv, dy*inv
	} else {
		vel.X, vel.Y = 0, t.Speed
	}

	if path := g.pathMap.Get(e); path != nil {
		path.Clear()
	}

	g.activeCount++
	g.countsByKind[kind]++
	g.collector.RecordSpawn()
	g.recordEvent(telemetry.NewSpawnEvent(g.tick, id, kind))
	g.sink.BeeSpawned(id, kind)

	return e
}

// cleanupTerminated releases terminated bees back to the pool. Two passes:
// the query iteration must complete before entities are mutated through the
// pool.
func (g *Game) cleanupTerminated() {
	type doneInfo struct {
		entity ecs.Entity
		id     uint32
		kind   uint8
	}
	var toRelease []doneInfo

	query := g.beeFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, bee, _ := query.Get()

		if bee.Active && bee.State == components.BeeTerminated {
			toRelease = append(toRelease, doneInfo{entity: entity, id: bee.ID, kind: bee.Kind})
		}
	}

	for _, done := range toRelease {
		// Abort an in-progress drag on the departing bee
		if g.drag.active && g.drag.target == done.entity {
			g.drag.active = false
		}

		g.pool.Release(done.entity)
		g.activeCount--
		g.countsByKind[done.kind]--
		g.collector.RecordTermination()
		g.recordEvent(telemetry.NewTerminationEvent(g.tick, done.id, done.kind))
		g.sink.BeeTerminated(done.id)
	}
}
