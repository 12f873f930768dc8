// Package components defines ECS components for the simulation.
package components

// Vec2 is a 2D point or direction in world units.
type Vec2 struct {
	X, Y float32
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	X, Y float32
}

// BeeState identifies a bee's lifecycle state.
type BeeState uint8

const (
	// BeeFlying is the only interactive state: colliders on, path followed.
	BeeFlying BeeState = iota
	// BeeStunned is transient after a collision; always resolves to BeeTerminated.
	BeeStunned
	// BeeTerminated marks a bee awaiting return to the pool.
	BeeTerminated
)

// String returns the state name for logging.
func (s BeeState) String() string {
	switch s {
	case BeeFlying:
		return "flying"
	case BeeStunned:
		return "stunned"
	case BeeTerminated:
		return "terminated"
	}
	return "unknown"
}

// Bee holds per-bee state beyond position and velocity.
type Bee struct {
	ID     uint32
	Kind   uint8 // index into the configured bee types
	State  BeeState
	Speed  float32 // cruise speed in world units per second
	Radius float32 // collision radius in world units

	// Active is false while the instance sits in the pool. Inactive bees
	// are skipped by every per-tick pass.
	Active bool

	// ColliderOn gates collision participation. Only true in BeeFlying.
	ColliderOn bool

	// StunIntensity decays exponentially toward zero while stunned;
	// below the configured threshold the bee terminates.
	StunIntensity float32
}

// Reset restores a bee to a fresh Flying lifecycle. Called on every pool
// acquisition so no state leaks from a prior life.
func (b *Bee) Reset(id uint32, kind uint8, speed, radius float32) {
	b.ID = id
	b.Kind = kind
	b.State = BeeFlying
	b.Speed = speed
	b.Radius = radius
	b.Active = true
	b.ColliderOn = true
	b.StunIntensity = 0
}

// Deactivate marks the bee as pooled and non-interactive.
func (b *Bee) Deactivate() {
	b.State = BeeTerminated
	b.Active = false
	b.ColliderOn = false
	b.StunIntensity = 0
}
