package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
)

type spatialFixture struct {
	grid   *SpatialGrid
	world  *ecs.World
	mapper *ecs.Map1[components.Position]
}

func newSpatialFixture(t *testing.T) *spatialFixture {
	t.Helper()
	world := ecs.NewWorld()
	return &spatialFixture{
		grid:   NewSpatialGrid(20, 11.25, 1),
		world:  world,
		mapper: ecs.NewMap1[components.Position](world),
	}
}

func (f *spatialFixture) add(x, y float32) ecs.Entity {
	e := f.mapper.NewEntity(&components.Position{X: x, Y: y})
	f.grid.Insert(e, x, y)
	return e
}

// TestQueryRadius verifies inclusion, exclusion, and the self filter.
func TestQueryRadius(t *testing.T) {
	f := newSpatialFixture(t)

	center := f.add(10, 5)
	near := f.add(10.5, 5)
	onEdge := f.add(10, 6) // exactly at radius 1
	far := f.add(15, 5)

	got := f.grid.QueryRadiusInto(nil, 10, 5, 1, center, f.mapper)

	ids := make(map[ecs.Entity]bool)
	for _, n := range got {
		ids[n.E] = true
	}
	if !ids[near] || !ids[onEdge] {
		t.Errorf("missing in-radius entities: %v", got)
	}
	if ids[far] {
		t.Error("entity beyond radius returned")
	}
	if ids[center] {
		t.Error("excluded entity returned")
	}
}

// TestQueryRadiusDistances verifies the precomputed deltas.
func TestQueryRadiusDistances(t *testing.T) {
	f := newSpatialFixture(t)
	f.add(4, 3)

	got := f.grid.QueryRadiusInto(nil, 1, 3, 5, ecs.Entity{}, f.mapper)
	if len(got) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(got))
	}
	n := got[0]
	if n.DX != 3 || n.DY != 0 || n.DistSq != 9 {
		t.Errorf("neighbor deltas = (%f, %f, %f), want (3, 0, 9)", n.DX, n.DY, n.DistSq)
	}
}

// TestOutOfBoundsClamping verifies positions outside the world land in
// border cells and stay queryable, which off-screen spawns rely on.
func TestOutOfBoundsClamping(t *testing.T) {
	f := newSpatialFixture(t)

	outside := f.add(-2, -2)
	got := f.grid.QueryRadiusInto(nil, -1.5, -1.5, 1, ecs.Entity{}, f.mapper)

	if len(got) != 1 || got[0].E != outside {
		t.Errorf("off-world entity not found: %v", got)
	}
}

// TestHasWithin verifies the existence probe used for spawn separation.
func TestHasWithin(t *testing.T) {
	f := newSpatialFixture(t)

	if f.grid.HasWithin(5, 5, 3, f.mapper) {
		t.Error("empty grid reported an occupant")
	}

	f.add(6, 5)
	if !f.grid.HasWithin(5, 5, 3, f.mapper) {
		t.Error("occupant within radius not reported")
	}
	if f.grid.HasWithin(15, 5, 3, f.mapper) {
		t.Error("distant occupant reported")
	}
}

// TestClear verifies clearing drops all occupants.
func TestClear(t *testing.T) {
	f := newSpatialFixture(t)
	f.add(5, 5)

	f.grid.Clear()
	if f.grid.HasWithin(5, 5, 10, f.mapper) {
		t.Error("entity survived Clear")
	}
}

// TestMaxQueryResults verifies the density cap.
func TestMaxQueryResults(t *testing.T) {
	f := newSpatialFixture(t)
	for i := 0; i < MaxQueryResults*2; i++ {
		f.add(10, 5)
	}

	got := f.grid.QueryRadiusInto(nil, 10, 5, 1, ecs.Entity{}, f.mapper)
	if len(got) != MaxQueryResults {
		t.Errorf("got %d neighbors, want cap %d", len(got), MaxQueryResults)
	}
}
