package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
	"github.com/beeline-game/beeline/telemetry"
)

// updateCollisions detects overlapping flying bees and stuns both. Pairs
// are collected first and applied after the query completes; each pair is
// handled once (lower bee ID owns the pair) and fires exactly one collision
// notification, not one per participant.
func (g *Game) updateCollisions() {
	if !g.gate.CanSimulate() {
		return
	}

	maxRadius := g.maxBeeRadius()

	type pair struct {
		a, b ecs.Entity
	}
	var hits []pair

	query := g.beeFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, bee, _ := query.Get()

		if !bee.Active || bee.State != components.BeeFlying || !bee.ColliderOn {
			continue
		}

		g.neighborBuf = g.spatial.QueryRadiusInto(g.neighborBuf[:0], pos.X, pos.Y, bee.Radius+maxRadius, entity, g.posMap)
		for _, n := range g.neighborBuf {
			other := g.beeMap.Get(n.E)
			if other == nil || !other.Active || other.State != components.BeeFlying || !other.ColliderOn {
				continue
			}
			if other.ID <= bee.ID {
				continue
			}
			rr := bee.Radius + other.Radius
			if n.DistSq <= rr*rr {
				hits = append(hits, pair{a: entity, b: n.E})
			}
		}
	}

	for _, h := range hits {
		a := g.beeMap.Get(h.a)
		b := g.beeMap.Get(h.b)
		// A pileup can stun a participant through an earlier pair this
		// tick; its collider is off by then, so the later pair is void.
		if a.State != components.BeeFlying || b.State != components.BeeFlying {
			continue
		}
		g.stunBee(h.a, a)
		g.stunBee(h.b, b)
		g.score.OnCollision()
		g.recordEvent(telemetry.NewCollisionEvent(g.tick, a.ID))
	}
}

// stunBee transitions a flying bee to Stunned: collider off, velocity
// zeroed, path cleared, full stun intensity to decay from.
func (g *Game) stunBee(e ecs.Entity, bee *components.Bee) {
	bee.State = components.BeeStunned
	bee.ColliderOn = false
	bee.StunIntensity = 1

	if vel := g.velMap.Get(e); vel != nil {
		vel.X, vel.Y = 0, 0
	}
	if path := g.pathMap.Get(e); path != nil {
		path.Clear()
	}

	g.recordEvent(telemetry.NewStunEvent(g.tick, bee.ID))
	g.sink.BeeStunned(bee.ID)
}

// updateArrivals checks connected paths for destination proximity. An
// arrival fires once: slot entry, score notification, path clear, and the
// bee leaves the simulation. A destination slot that closed earlier this
// tick has already disconnected the path, so nothing fires; the EnterSlot
// result still decides, covering a close racing the same tick's arrivals.
func (g *Game) updateArrivals() {
	if !g.gate.CanSimulate() {
		return
	}

	arrivalSq := float32(g.cfg.Path.ArrivalRadius * g.cfg.Path.ArrivalRadius)

	query := g.beeFilter.Query()
	for query.Next() {
		pos, _, bee, path := query.Get()

		if !bee.Active || bee.State != components.BeeFlying || !path.HasDest {
			continue
		}

		last, ok := path.Last()
		if !ok {
			path.Disconnect()
			continue
		}

		dx := last.X - pos.X
		dy := last.Y - pos.Y
		if dx*dx+dy*dy > arrivalSq {
			continue
		}

		entered := g.grid.EnterSlot(path.DestRow, path.DestCol)
		if !entered {
			// Slot closed before the bee got here: no destination, no
			// score. The bee flies out the remaining waypoints.
			path.Disconnect()
			continue
		}

		g.score.OnArrival()
		g.recordEvent(telemetry.NewArrivalEvent(g.tick, bee.ID, path.DestRow, path.DestCol))
		path.Clear()
		bee.State = components.BeeTerminated
		bee.ColliderOn = false
	}
}

// maxBeeRadius returns the largest configured bee radius, used to bound
// collision query ranges.
func (g *Game) maxBeeRadius() float32 {
	var m float32
	for _, t := range g.cfg.Spawn.Types {
		if r := float32(t.Radius); r > m {
			m = r
		}
	}
	return m
}
