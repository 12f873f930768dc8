package game

import (
	"github.com/beeline-game/beeline/components"
)

// updateMovement advances every active bee one tick: path following or
// inertial flight with boundary reflection for flying bees, stun decay for
// stunned ones.
func (g *Game) updateMovement() {
	wpRadius := float32(g.cfg.Path.WaypointRadius)
	lookahead := float32(g.cfg.Bee.LookaheadFrames) * g.dt
	stunDecay := float32(g.cfg.Bee.StunDecay)
	stunThreshold := float32(g.cfg.Bee.StunThreshold)

	query := g.beeFilter.Query()
	for query.Next() {
		pos, vel, bee, path := query.Get()

		if !bee.Active {
			continue
		}

		switch bee.State {
		case components.BeeFlying:
			if target, ok := path.Advance(pos.X, pos.Y, wpRadius); ok {
				// Steer straight at the active waypoint.
				dx := target.X - pos.X
				dy := target.Y - pos.Y
				if d := sqrt32(dx*dx + dy*dy); d > 0 {
					vel.X = dx / d * bee.Speed
					vel.Y = dy / d * bee.Speed
				}
			} else if g.reflect(pos, vel, path, lookahead) {
				// Reflection tick: velocity inverted, position held.
				continue
			}
			pos.X += vel.X * g.dt
			pos.Y += vel.Y * g.dt

		case components.BeeStunned:
			bee.StunIntensity *= exp32(-stunDecay * g.dt)
			if bee.StunIntensity < stunThreshold {
				bee.State = components.BeeTerminated
			}
		}
	}
}

// reflect predicts the bee's viewport position a couple of frames ahead and
// inverts the velocity component of any axis it would exit, clearing the
// flight path so free flight resumes. Only outward motion reflects: bees
// spawned outside the screen fly in unhindered. Reports whether a
// reflection happened; the caller holds position for that tick.
func (g *Game) reflect(pos *components.Position, vel *components.Velocity, path *components.FlightPath, lookahead float32) bool {
	px := (pos.X + vel.X*lookahead) / g.worldW
	py := (pos.Y + vel.Y*lookahead) / g.worldH

	reflected := false
	if (px < 0 && vel.X < 0) || (px > 1 && vel.X > 0) {
		vel.X = -vel.X
		reflected = true
	}
	if (py < 0 && vel.Y < 0) || (py > 1 && vel.Y > 0) {
		vel.Y = -vel.Y
		reflected = true
	}

	if reflected {
		path.Clear()
	}
	return reflected
}
