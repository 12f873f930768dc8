package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
)

type gridFixture struct {
	grid    *HexGrid
	world   *ecs.World
	mapper  *ecs.Map2[components.Bee, components.FlightPath]
	pathMap *ecs.Map1[components.FlightPath]
	beeMap  *ecs.Map1[components.Bee]
}

func newGridFixture(t *testing.T, p HexGridParams, seed int64) *gridFixture {
	t.Helper()
	world := ecs.NewWorld()
	pathMap := ecs.NewMap1[components.FlightPath](world)
	beeMap := ecs.NewMap1[components.Bee](world)
	mapper := ecs.NewMap2[components.Bee, components.FlightPath](world)

	rng := rand.New(rand.NewSource(seed))
	return &gridFixture{
		grid:    NewHexGrid(p, rng, world, pathMap, beeMap, nil),
		world:   world,
		mapper:  mapper,
		pathMap: pathMap,
		beeMap:  beeMap,
	}
}

func defaultParams() HexGridParams {
	return HexGridParams{
		Rows:     5,
		Cols:     5,
		CellSize: 1,
		Seeds:    []Coord{{Row: 2, Col: 2}},
	}
}

// TestNeighborsParity verifies the parity-dependent diagonal adjacency.
func TestNeighborsParity(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 1)

	tests := []struct {
		name     string
		row, col int
		want     []Coord
	}{
		{
			name: "even row interior",
			row:  2, col: 2,
			want: []Coord{
				{2, 1}, {2, 3},
				{1, 2}, {3, 2},
				{1, 3}, {3, 3},
			},
		},
		{
			name: "odd row interior",
			row:  1, col: 2,
			want: []Coord{
				{1, 1}, {1, 3},
				{0, 2}, {2, 2},
				{0, 1}, {2, 1},
			},
		},
		{
			name: "corner clamps out-of-bounds",
			row:  0, col: 0,
			want: []Coord{
				{0, 1}, {1, 0}, {1, 1},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := f.grid.Neighbors(tc.row, tc.col)

			gotSet := make(map[Coord]bool, len(got))
			for _, c := range got {
				gotSet[c] = true
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d neighbors %v, want %d", len(got), got, len(tc.want))
			}
			for _, w := range tc.want {
				if !gotSet[w] {
					t.Errorf("missing neighbor %v in %v", w, got)
				}
			}
		})
	}
}

// TestNeighborsSymmetric verifies adjacency is symmetric across the whole
// grid: if b is a neighbor of a, a must be a neighbor of b.
func TestNeighborsSymmetric(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 1)

	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			for _, n := range f.grid.Neighbors(row, col) {
				back := f.grid.Neighbors(n.Row, n.Col)
				ok := false
				for _, b := range back {
					if b.Row == row && b.Col == col {
						ok = true
						break
					}
				}
				if !ok {
					t.Errorf("(%d,%d) lists (%d,%d) but not vice versa", row, col, n.Row, n.Col)
				}
			}
		}
	}
}

// TestRevealStaysConnected verifies every revealed cell touches an
// already-revealed neighbor, for several seeds.
func TestRevealStaysConnected(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		f := newGridFixture(t, defaultParams(), seed)

		for f.grid.Reveal(3) > 0 {
		}
		if f.grid.RevealedCount() != 25 {
			t.Fatalf("seed %d: revealed %d of 25", seed, f.grid.RevealedCount())
		}

		// Flood fill from the seed cell over revealed cells.
		visited := map[Coord]bool{{Row: 2, Col: 2}: true}
		queue := []Coord{{Row: 2, Col: 2}}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			for _, n := range f.grid.Neighbors(c.Row, c.Col) {
				if visited[n] || f.grid.Slot(n.Row, n.Col).State == SlotHidden {
					continue
				}
				visited[n] = true
				queue = append(queue, n)
			}
		}
		if len(visited) != 25 {
			t.Errorf("seed %d: revealed region disconnected, reached %d of 25", seed, len(visited))
		}
	}
}

// TestRevealClampsToRemaining verifies over-requests reveal only what is
// left and further calls return zero.
func TestRevealClampsToRemaining(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 7)

	n := f.grid.Reveal(1000)
	if n != 24 { // 25 cells minus the seed
		t.Errorf("Reveal(1000) = %d, want 24", n)
	}
	if f.grid.Reveal(1) != 0 {
		t.Error("Reveal on full grid returned nonzero")
	}
}

// TestOpenClampsToRevealed verifies Open never exceeds the revealed and
// not-yet-opened cell count.
func TestOpenClampsToRevealed(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 7)
	f.grid.Reveal(4) // 5 revealed total

	if n := f.grid.Open(100, 3); n != 5 {
		t.Errorf("Open(100) = %d, want 5", n)
	}
	if n := f.grid.Open(1, 3); n != 0 {
		t.Errorf("Open on fully opened region = %d, want 0", n)
	}

	open, _, _ := f.grid.SlotCounts()
	if open != 5 {
		t.Errorf("open slot count = %d, want 5", open)
	}
}

// TestFindNearestOpenSlot verifies true-nearest selection and the range
// limit.
func TestFindNearestOpenSlot(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 3)
	f.grid.Reveal(24)
	f.grid.Open(25, 3)

	target := f.grid.Slot(1, 1)
	got := f.grid.FindNearestOpenSlot(target.Center, 10)
	if got != target {
		t.Errorf("nearest to slot (1,1) center = (%d,%d)", got.Row, got.Col)
	}

	// Out of range: a point far outside the grid.
	far := components.Vec2{X: 100, Y: 100}
	if s := f.grid.FindNearestOpenSlot(far, 1); s != nil {
		t.Errorf("found slot (%d,%d) outside max distance", s.Row, s.Col)
	}
}

// TestEnterSlotLifecycle verifies the capacity countdown, the Closing
// signal at capacity one, and the rejection after closure.
func TestEnterSlotLifecycle(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 3)
	f.grid.Open(1, 3)
	s := f.grid.OpenSlots()[0]

	if !f.grid.EnterSlot(s.Row, s.Col) {
		t.Fatal("first entry rejected")
	}
	if s.State != SlotOpen || s.Capacity != 2 {
		t.Fatalf("after first entry: state %v capacity %d", s.State, s.Capacity)
	}

	f.grid.EnterSlot(s.Row, s.Col)
	if s.State != SlotClosing || s.Capacity != 1 {
		t.Fatalf("after second entry: state %v capacity %d", s.State, s.Capacity)
	}

	f.grid.EnterSlot(s.Row, s.Col)
	if s.State != SlotClosed || s.Capacity != 0 {
		t.Fatalf("after third entry: state %v capacity %d", s.State, s.Capacity)
	}

	if f.grid.EnterSlot(s.Row, s.Col) {
		t.Error("entry into closed slot accepted")
	}
	if s.Capacity != 0 {
		t.Errorf("closed slot capacity went negative: %d", s.Capacity)
	}
	if len(f.grid.OpenSlots()) != 0 {
		t.Error("closed slot still in open set")
	}
}

// TestEnterHiddenSlot verifies entering a never-opened cell reports false.
func TestEnterHiddenSlot(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 3)
	if f.grid.EnterSlot(0, 0) {
		t.Error("entry into hidden slot accepted")
	}
	if f.grid.EnterSlot(-1, 99) {
		t.Error("entry out of bounds accepted")
	}
}

// TestCloseDisconnectsRegisteredPaths verifies closure disconnects every
// path still targeting the slot, exactly the ones that do.
func TestCloseDisconnectsRegisteredPaths(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 3)
	f.grid.Reveal(1)
	f.grid.Open(2, 1)
	slots := f.grid.OpenSlots()
	a, b := slots[0], slots[1]

	// Bee one targets slot a.
	e1 := f.mapper.NewEntity(
		&components.Bee{ID: 1, Active: true},
		&components.FlightPath{},
	)
	p1 := f.pathMap.Get(e1)
	p1.Append(components.Vec2{})
	p1.ConnectTo(a.Row, a.Col, a.Center)
	a.Register(e1)

	// Bee two registered on a, but has since been redrawn toward b.
	e2 := f.mapper.NewEntity(
		&components.Bee{ID: 2, Active: true},
		&components.FlightPath{},
	)
	p2 := f.pathMap.Get(e2)
	p2.Append(components.Vec2{})
	p2.ConnectTo(a.Row, a.Col, a.Center)
	a.Register(e2)
	p2.ConnectTo(b.Row, b.Col, b.Center)
	b.Register(e2)

	// Capacity 1: one entry closes slot a.
	if !f.grid.EnterSlot(a.Row, a.Col) {
		t.Fatal("entry rejected")
	}

	if p1.HasDest || p1.Connected {
		t.Error("path targeting closed slot kept its destination")
	}
	if !p2.HasDest || p2.DestRow != b.Row || p2.DestCol != b.Col {
		t.Error("redrawn path lost its destination to a stale registration")
	}
	if a.Registered() != 0 {
		t.Errorf("closed slot kept %d registrations", a.Registered())
	}
}

// TestRegisterRejectedOnClosed verifies late registration fails cleanly.
func TestRegisterRejectedOnClosed(t *testing.T) {
	f := newGridFixture(t, defaultParams(), 3)
	f.grid.Open(1, 1)
	s := f.grid.OpenSlots()[0]
	f.grid.EnterSlot(s.Row, s.Col)

	e := f.mapper.NewEntity(&components.Bee{ID: 9}, &components.FlightPath{})
	if s.Register(e) {
		t.Error("registration on closed slot accepted")
	}
}

// TestPickEligibleFallback verifies growth succeeds even when eligible
// cells are rare enough that random probing keeps missing. With one hidden
// cell left, probes almost always miss, so the scan fallback must find it.
func TestPickEligibleFallback(t *testing.T) {
	p := defaultParams()
	p.MaxProbes = 1
	f := newGridFixture(t, p, 11)

	for i := 0; i < 24; i++ {
		if f.grid.Reveal(1) != 1 {
			t.Fatalf("reveal %d failed", i)
		}
	}
	if f.grid.RevealedCount() != 25 {
		t.Errorf("revealed %d of 25 with maxProbes=1", f.grid.RevealedCount())
	}
}

// TestExhausted verifies the end-of-match predicate.
func TestExhausted(t *testing.T) {
	p := HexGridParams{Rows: 2, Cols: 2, CellSize: 1, Seeds: []Coord{{0, 0}}}
	f := newGridFixture(t, p, 5)

	if f.grid.Exhausted() {
		t.Fatal("fresh grid reported exhausted")
	}

	f.grid.Reveal(3)
	f.grid.Open(4, 1)
	if f.grid.Exhausted() {
		t.Fatal("grid with open slots reported exhausted")
	}

	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			f.grid.EnterSlot(row, col)
		}
	}
	if !f.grid.Exhausted() {
		t.Error("fully closed grid not reported exhausted")
	}
}
