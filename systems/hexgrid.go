package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
)

// SlotState identifies a hive cell's lifecycle state. Transitions only move
// forward: Hidden, Revealed, Open, Closing, Closed.
type SlotState uint8

const (
	SlotHidden SlotState = iota
	SlotRevealed
	SlotOpen
	SlotClosing
	SlotClosed
)

// String returns the state name for logging.
func (s SlotState) String() string {
	switch s {
	case SlotHidden:
		return "hidden"
	case SlotRevealed:
		return "revealed"
	case SlotOpen:
		return "open"
	case SlotClosing:
		return "closing"
	case SlotClosed:
		return "closed"
	}
	return "unknown"
}

// Slot is a single hive cell with a bee-entry capacity. Registered paths are
// weak back-references held as entity handles; the slot never owns a path,
// it only disconnects them through the path mapper when it closes.
type Slot struct {
	Row, Col int
	Center   components.Vec2
	State    SlotState
	Capacity int

	registered []ecs.Entity
}

// Register records a path's owner so the path can be retroactively
// disconnected if the slot closes before the bee arrives. Rejected once the
// slot is closed.
func (s *Slot) Register(e ecs.Entity) bool {
	if s.State != SlotOpen && s.State != SlotClosing {
		return false
	}
	for _, r := range s.registered {
		if r == e {
			return true
		}
	}
	s.registered = append(s.registered, e)
	return true
}

// Registered returns the number of registered paths.
func (s *Slot) Registered() int {
	return len(s.registered)
}

// Coord addresses a grid cell.
type Coord struct {
	Row, Col int
}

// vertSpacing is the row pitch of a hex layout relative to cell size.
const vertSpacing = 0.8660254 // sqrt(3)/2

// HexGrid owns the 2D array of slots, offset-hex adjacency, and the growth
// algorithms. Cells address as (row, col); even rows sit half a cell to the
// right, which is where the parity-dependent diagonal neighbors come from.
type HexGrid struct {
	rows, cols int
	slots      []Slot

	revealedCount int
	openedCount   int // cumulative; closed slots never reopen
	open          []*Slot

	maxProbes int
	rng       *rand.Rand

	world   *ecs.World
	pathMap *ecs.Map1[components.FlightPath]
	beeMap  *ecs.Map1[components.Bee]
	sink    PresentationSink
}

// HexGridParams bundles construction parameters for a HexGrid.
type HexGridParams struct {
	Rows, Cols       int
	CellSize         float32
	OriginX, OriginY float32
	Seeds            []Coord
	MaxProbes        int
}

// NewHexGrid creates a grid of hidden slots and reveals the seed cells.
// At least one seed is required: Reveal only grows from already-revealed
// neighbors, so a seedless grid could never grow.
func NewHexGrid(p HexGridParams, rng *rand.Rand, world *ecs.World,
	pathMap *ecs.Map1[components.FlightPath], beeMap *ecs.Map1[components.Bee],
	sink PresentationSink) *HexGrid {

	if sink == nil {
		sink = NopSink{}
	}
	if p.MaxProbes <= 0 {
		p.MaxProbes = 32
	}

	g := &HexGrid{
		rows:      p.Rows,
		cols:      p.Cols,
		slots:     make([]Slot, p.Rows*p.Cols),
		maxProbes: p.MaxProbes,
		rng:       rng,
		world:     world,
		pathMap:   pathMap,
		beeMap:    beeMap,
		sink:      sink,
	}

	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			s := g.at(r, c)
			s.Row = r
			s.Col = c
			x := p.OriginX + float32(c)*p.CellSize
			if r%2 == 0 {
				x += p.CellSize * 0.5
			}
			s.Center = components.Vec2{
				X: x,
				Y: p.OriginY + float32(r)*p.CellSize*vertSpacing,
			}
		}
	}

	for _, seed := range p.Seeds {
		s := g.at(seed.Row, seed.Col)
		if s.State == SlotHidden {
			s.State = SlotRevealed
			g.revealedCount++
			g.sink.SlotRevealed(seed.Row, seed.Col)
		}
	}

	return g
}

func (g *HexGrid) at(row, col int) *Slot {
	return &g.slots[row*g.cols+col]
}

// Slot returns the slot at (row, col), or nil when out of bounds.
func (g *HexGrid) Slot(row, col int) *Slot {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return g.at(row, col)
}

// Rows returns the grid row count.
func (g *HexGrid) Rows() int { return g.rows }

// Cols returns the grid column count.
func (g *HexGrid) Cols() int { return g.cols }

// RevealedCount returns the number of revealed cells (including open and
// closed ones).
func (g *HexGrid) RevealedCount() int { return g.revealedCount }

// OpenSlots returns the currently open (or closing) slots. The returned
// slice is the grid's own; callers must not mutate it.
func (g *HexGrid) OpenSlots() []*Slot { return g.open }

// Neighbors returns the offset-hex neighbor coordinates of (row, col).
// Same-row columns and same-column rows are always adjacent; the diagonals
// depend on row parity: even rows reach (row±1, col+1), odd rows (row±1, col−1).
func (g *HexGrid) Neighbors(row, col int) []Coord {
	diag := col + 1
	if row%2 != 0 {
		diag = col - 1
	}
	candidates := [6]Coord{
		{row, col - 1},
		{row, col + 1},
		{row - 1, col},
		{row + 1, col},
		{row - 1, diag},
		{row + 1, diag},
	}
	out := make([]Coord, 0, 6)
	for _, c := range candidates {
		if c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols {
			out = append(out, c)
		}
	}
	return out
}

func (g *HexGrid) hasRevealedNeighbor(row, col int) bool {
	for _, n := range g.Neighbors(row, col) {
		if g.at(n.Row, n.Col).State != SlotHidden {
			return true
		}
	}
	return false
}

// Reveal grows the hive by up to count cells. Each revealed cell must touch
// an already-revealed neighbor, so the revealed region stays connected to
// the seeds. Requests beyond the remaining hidden cells are clamped.
// Returns the number of cells actually revealed.
func (g *HexGrid) Reveal(count int) int {
	remaining := g.rows*g.cols - g.revealedCount
	if count > remaining {
		count = remaining
	}

	revealed := 0
	for revealed < count {
		s := g.pickEligible(func(s *Slot) bool {
			return s.State == SlotHidden && g.hasRevealedNeighbor(s.Row, s.Col)
		})
		if s == nil {
			break
		}
		s.State = SlotRevealed
		g.revealedCount++
		revealed++
		g.sink.SlotRevealed(s.Row, s.Col)
	}
	return revealed
}

// Open transitions up to count revealed cells to Open with the given
// capacity. Requests beyond the revealed-but-unopened cells are clamped.
// Returns the number of slots actually opened.
func (g *HexGrid) Open(count, capacity int) int {
	remaining := g.revealedCount - g.openedCount
	if count > remaining {
		count = remaining
	}
	if capacity <= 0 {
		return 0
	}

	opened := 0
	for opened < count {
		s := g.pickEligible(func(s *Slot) bool {
			return s.State == SlotRevealed
		})
		if s == nil {
			break
		}
		s.State = SlotOpen
		s.Capacity = capacity
		s.registered = s.registered[:0]
		g.openedCount++
		g.open = append(g.open, s)
		opened++
		g.sink.SlotOpened(s.Row, s.Col, capacity)
	}
	return opened
}

// pickEligible samples a uniformly random slot satisfying the predicate.
// Random probing is capped at maxProbes; after that the eligible set is
// enumerated in scan order and one member picked uniformly, so the call
// terminates even when eligible cells are rare or absent.
func (g *HexGrid) pickEligible(eligible func(*Slot) bool) *Slot {
	for i := 0; i < g.maxProbes; i++ {
		s := g.at(g.rng.Intn(g.rows), g.rng.Intn(g.cols))
		if eligible(s) {
			return s
		}
	}
	var found []*Slot
	for i := range g.slots {
		if eligible(&g.slots[i]) {
			found = append(found, &g.slots[i])
		}
	}
	if len(found) == 0 {
		return nil
	}
	return found[g.rng.Intn(len(found))]
}

// FindNearestOpenSlot returns the open slot nearest to pt within maxDist,
// or nil when none qualifies. Closing slots still accept one more entry and
// are included.
func (g *HexGrid) FindNearestOpenSlot(pt components.Vec2, maxDist float32) *Slot {
	bestSq := maxDist * maxDist
	var best *Slot
	for _, s := range g.open {
		dx := s.Center.X - pt.X
		dy := s.Center.Y - pt.Y
		dSq := dx*dx + dy*dy
		if dSq <= bestSq {
			bestSq = dSq
			best = s
		}
	}
	return best
}

// EnterSlot consumes one entry of the slot at (row, col). Capacity 1 flips
// the slot to Closing as a pre-closure signal; capacity 0 closes it, which
// disconnects every registered path exactly once. Entering a closed or
// never-opened slot reports false; the caller treats that as "no
// destination", not as an error.
func (g *HexGrid) EnterSlot(row, col int) bool {
	s := g.Slot(row, col)
	if s == nil || (s.State != SlotOpen && s.State != SlotClosing) {
		return false
	}

	s.Capacity--
	switch {
	case s.Capacity == 1:
		s.State = SlotClosing
		g.sink.SlotClosing(s.Row, s.Col)
	case s.Capacity <= 0:
		g.closeSlot(s)
	}
	return true
}

// closeSlot disconnects all registered paths, clears the registry, and
// removes the slot from the open set. Paths that have since been redrawn
// toward another slot are left alone: the destination coordinates must
// still point here for the disconnect to apply.
func (g *HexGrid) closeSlot(s *Slot) {
	for _, e := range s.registered {
		if !g.world.Alive(e) {
			continue
		}
		p := g.pathMap.Get(e)
		if p == nil || !p.HasDest || p.DestRow != s.Row || p.DestCol != s.Col {
			continue
		}
		p.Disconnect()
		if bee := g.beeMap.Get(e); bee != nil {
			g.sink.PathDisconnected(bee.ID)
		}
	}
	s.registered = s.registered[:0]
	s.State = SlotClosed
	s.Capacity = 0

	for i, o := range g.open {
		if o == s {
			g.open = append(g.open[:i], g.open[i+1:]...)
			break
		}
	}
	g.sink.SlotClosed(s.Row, s.Col)
}

// SlotCounts returns the number of open, closing, and closed slots.
func (g *HexGrid) SlotCounts() (open, closing, closed int) {
	for i := range g.slots {
		switch g.slots[i].State {
		case SlotOpen:
			open++
		case SlotClosing:
			closing++
		case SlotClosed:
			closed++
		}
	}
	return open, closing, closed
}

// Exhausted reports whether the hive is spent: every cell revealed, every
// revealed cell opened, and every opened slot closed.
func (g *HexGrid) Exhausted() bool {
	return g.revealedCount == g.rows*g.cols &&
		g.openedCount == g.revealedCount &&
		len(g.open) == 0
}

// Dist returns the Euclidean distance between two points in world units.
func Dist(a, b components.Vec2) float32 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}
