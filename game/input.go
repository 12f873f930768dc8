package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
)

// dragState tracks an in-progress path drawing gesture.
type dragState struct {
	active bool
	target ecs.Entity
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	g.handleDrag()
}

// screenToWorld converts a screen-space point to world units.
func (g *Game) screenToWorld(v rl.Vector2) components.Vec2 {
	scale := g.cfg.Derived.Scale
	return components.Vec2{X: v.X / scale, Y: v.Y / scale}
}

// handleDrag drives path drawing: press grabs a flying bee, holding
// appends resampled segments toward the pointer, release attempts a slot
// snap. The drag aborts when the bee leaves the Flying state or consumes
// the path faster than it is drawn.
func (g *Game) handleDrag() {
	if g.phase != PhasePlaying || g.paused {
		g.drag.active = false
		return
	}

	mouse := g.screenToWorld(rl.GetMousePosition())

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		g.beginDrag(mouse)
	case g.drag.active && rl.IsMouseButtonDown(rl.MouseButtonLeft):
		g.continueDrag(mouse)
	case g.drag.active && rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		g.endDrag()
	}
}

// beginDrag grabs the nearest flying bee within pick range and starts a
// fresh path anchored at the bee's position.
func (g *Game) beginDrag(at components.Vec2) {
	pickRadius := float32(g.cfg.Path.PickRadius)

	g.neighborBuf = g.spatial.QueryRadiusInto(g.neighborBuf[:0], at.X, at.Y, pickRadius, ecs.Entity{}, g.posMap)

	var best ecs.Entity
	bestSq := pickRadius * pickRadius
	found := false
	for _, n := range g.neighborBuf {
		bee := g.beeMap.Get(n.E)
		if bee == nil || !bee.Active || bee.State != components.BeeFlying {
			continue
		}
		if n.DistSq <= bestSq {
			bestSq = n.DistSq
			best = n.E
			found = true
		}
	}
	if !found {
		return
	}

	path := g.pathMap.Get(best)
	pos := g.posMap.Get(best)
	path.Clear()
	path.Append(components.Vec2{X: pos.X, Y: pos.Y})

	g.drag = dragState{active: true, target: best}
}

// continueDrag appends fixed-length segments from the path's end toward
// the pointer.
func (g *Game) continueDrag(at components.Vec2) {
	bee := g.beeMap.Get(g.drag.target)
	path := g.pathMap.Get(g.drag.target)
	if bee == nil || path == nil || !bee.Active || bee.State != components.BeeFlying {
		g.drag.active = false
		return
	}
	// The bee can eat the path while it is being drawn.
	if path.Len() == 0 || path.EndReached() {
		path.Clear()
		g.drag.active = false
		return
	}

	path.AppendToward(at, float32(g.cfg.Path.SegmentLength))
}

// endDrag finishes the gesture and snaps the path end to a nearby open
// slot when one is in range.
func (g *Game) endDrag() {
	g.drag.active = false

	bee := g.beeMap.Get(g.drag.target)
	path := g.pathMap.Get(g.drag.target)
	if bee == nil || path == nil || !bee.Active || bee.State != components.BeeFlying {
		return
	}

	last, ok := path.Last()
	if !ok {
		return
	}

	slot := g.grid.FindNearestOpenSlot(last, float32(g.cfg.Path.SnapRadius))
	if slot == nil {
		return
	}
	if path.ConnectTo(slot.Row, slot.Col, slot.Center) && slot.Register(g.drag.target) {
		g.sink.PathConnected(bee.ID, slot.Row, slot.Col)
	}
}
