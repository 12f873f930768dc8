package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
)

// BeePool reuses bee entities instead of creating and removing them each
// lifecycle. Entities are never removed from the world; released ones sit on
// a per-kind free list with all mutable state zeroed, so nothing leaks from
// a prior life into the next acquisition.
type BeePool struct {
	mapper *ecs.Map4[components.Position, components.Velocity, components.Bee, components.FlightPath]

	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	beeMap  *ecs.Map1[components.Bee]
	pathMap *ecs.Map1[components.FlightPath]

	free map[uint8][]ecs.Entity
}

// NewBeePool creates an empty pool backed by the given mappers.
func NewBeePool(
	mapper *ecs.Map4[components.Position, components.Velocity, components.Bee, components.FlightPath],
	posMap *ecs.Map1[components.Position],
	velMap *ecs.Map1[components.Velocity],
	beeMap *ecs.Map1[components.Bee],
	pathMap *ecs.Map1[components.FlightPath],
) *BeePool {
	return &BeePool{
		mapper:  mapper,
		posMap:  posMap,
		velMap:  velMap,
		beeMap:  beeMap,
		pathMap: pathMap,
		free:    make(map[uint8][]ecs.Entity),
	}
}

// Acquire returns a deactivated-but-valid bee entity for the given kind,
// reusing a released instance when one is available. The caller initializes
// position, velocity, and bee state before the entity participates in a tick.
func (p *BeePool) Acquire(kind uint8) ecs.Entity {
	if list := p.free[kind]; len(list) > 0 {
		e := list[len(list)-1]
		p.free[kind] = list[:len(list)-1]
		return e
	}

	pos := components.Position{}
	vel := components.Velocity{}
	bee := components.Bee{Kind: kind}
	path := components.FlightPath{}
	return p.mapper.NewEntity(&pos, &vel, &bee, &path)
}

// Release resets every mutable component of the entity and parks it on the
// free list for its kind.
func (p *BeePool) Release(e ecs.Entity) {
	bee := p.beeMap.Get(e)
	if bee == nil || !bee.Active {
		return
	}
	bee.Deactivate()

	if path := p.pathMap.Get(e); path != nil {
		path.Clear()
	}
	if pos := p.posMap.Get(e); pos != nil {
		pos.X, pos.Y = 0, 0
	}
	if vel := p.velMap.Get(e); vel != nil {
		vel.X, vel.Y = 0, 0
	}

	p.free[bee.Kind] = append(p.free[bee.Kind], e)
}

// FreeCount returns the number of pooled instances for a kind.
func (p *BeePool) FreeCount(kind uint8) int {
	return len(p.free[kind])
}
