// Package game wires the hive grid, spawning, bees, and telemetry into a
// frame-stepped simulation.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
	"github.com/beeline-game/beeline/config"
	"github.com/beeline-game/beeline/systems"
	"github.com/beeline-game/beeline/telemetry"
)

// Options configures a new game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// Config overrides the global configuration when non-nil,
	// enabling isolated test instances.
	Config *config.Config

	// Sink receives presentation notifications; nil means no-op.
	Sink systems.PresentationSink

	// Score receives scoring notifications; nil routes them to the
	// telemetry collector.
	Score ScoreSink

	// Gate overrides the playability gate; nil uses the game's own
	// phase state.
	Gate PlayabilityGate
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	beeMapper *ecs.Map4[components.Position, components.Velocity, components.Bee, components.FlightPath]
	beeFilter *ecs.Filter4[components.Position, components.Velocity, components.Bee, components.FlightPath]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	beeMap  *ecs.Map1[components.Bee]
	pathMap *ecs.Map1[components.FlightPath]

	grid    *systems.HexGrid
	spawner *systems.SpawnScheduler
	placer  *systems.Placer
	spatial *systems.SpatialGrid
	pool    *BeePool

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	sink          systems.PresentationSink
	score         ScoreSink
	gate          PlayabilityGate

	// Match flow
	phase      Phase
	introLeft  float32
	growthLeft float32

	// State
	tick           int32
	paused         bool
	stepsPerUpdate int
	logStats       bool
	nextID         uint32
	activeCount    int
	countsByKind   []int

	// Input drawing
	drag dragState

	// Lazily created on the first Draw, never in headless runs
	rend *gameRenderers

	// Scratch buffer for spatial queries
	neighborBuf []systems.Neighbor

	// Event buffer, only populated when an output directory is set
	events []telemetry.Event

	worldW, worldH float32
	dt             float32
}

// NewGameWithOptions creates a game instance with the given options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		cfg:   cfg,
		beeMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Bee,
			components.FlightPath,
		](world),
		beeFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Bee,
			components.FlightPath,
		](world),
		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		beeMap:  ecs.NewMap1[components.Bee](world),
		pathMap: ecs.NewMap1[components.FlightPath](world),

		logStats:       opts.LogStats,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		countsByKind:   make([]int, len(cfg.Spawn.Types)),
		worldW:         cfg.Derived.WorldW32,
		worldH:         cfg.Derived.WorldH32,
		dt:             cfg.Derived.DT32,
		phase:          PhaseIntro,
		introLeft:      float32(cfg.Gameplay.IntroDelay),
		growthLeft:     float32(cfg.Growth.Interval),
	}

	g.sink = opts.Sink
	if g.sink == nil {
		g.sink = systems.NopSink{}
	}

	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, g.dt)
	g.perfCollector = telemetry.NewPerfCollector(int(1.0 / float64(g.dt)))

	g.score = opts.Score
	if g.score == nil {
		g.score = g.collector
	}
	g.gate = opts.Gate
	if g.gate == nil {
		g.gate = g
	}

	seeds := make([]systems.Coord, len(cfg.Grid.Seeds))
	for i, s := range cfg.Grid.Seeds {
		seeds[i] = systems.Coord{Row: s[0], Col: s[1]}
	}
	g.grid = systems.NewHexGrid(systems.HexGridParams{
		Rows:      cfg.Grid.Rows,
		Cols:      cfg.Grid.Cols,
		CellSize:  float32(cfg.Grid.CellSize),
		OriginX:   float32(cfg.Grid.OriginX),
		OriginY:   float32(cfg.Grid.OriginY),
		Seeds:     seeds,
		MaxProbes: cfg.Grid.MaxProbes,
	}, g.rng, world, g.pathMap, g.beeMap, sinkTap{g: g, next: g.sink})

	phases := make([]systems.SpawnPhase, len(cfg.Spawn.Phases))
	for i, p := range cfg.Spawn.Phases {
		phases[i] = systems.SpawnPhase{MinDelay: p.MinDelay, MaxDelay: p.MaxDelay, Count: p.Count}
	}
	types := make([]systems.BeeType, len(cfg.Spawn.Types))
	for i, t := range cfg.Spawn.Types {
		types[i] = systems.BeeType{
			Name:   t.Name,
			Weight: t.Weight,
			Speed:  float32(t.Speed),
			Radius: float32(t.Radius),
		}
	}
	spawner, err := systems.NewSpawnScheduler(phases, types, g.rng)
	if err != nil {
		return nil, err
	}
	g.spawner = spawner

	g.placer = systems.NewPlacer(
		g.worldW, g.worldH,
		float32(cfg.Spawn.Margin),
		float32(cfg.Spawn.MinSeparation),
		cfg.Spawn.MaxProbes,
		g.rng,
	)

	g.spatial = systems.NewSpatialGrid(g.worldW, g.worldH, float32(cfg.Physics.SpatialCellSize))

	g.pool = NewBeePool(g.beeMapper, g.posMap, g.velMap, g.beeMap, g.pathMap)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	// Seed the hive before the first tick
	g.grid.Reveal(cfg.Growth.InitialReveal)
	g.grid.Open(cfg.Growth.InitialOpen, cfg.Grid.SlotCapacity)

	return g, nil
}

// Update runs input handling and one or more simulation steps.
// Graphical mode only; headless runs use UpdateHeadless.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
	g.perfCollector.RecordFrame()
}

// UpdateHeadless runs simulation steps without touching input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Step runs exactly one simulation tick. Exposed for tests.
func (g *Game) Step() {
	g.simulationStep()
}

// simulationStep runs a single tick. The phase order is binding: slot
// closures triggered by growth or arrivals must disconnect registered paths
// before those paths are advanced again, and bees terminated or arrived in
// a tick are not revisited later in the same tick.
func (g *Game) simulationStep() {
	pc := g.perfCollector
	pc.StartTick()

	g.updatePhase()

	pc.StartPhase(telemetry.PhaseGrowth)
	g.updateGrowth()

	pc.StartPhase(telemetry.PhaseSpawn)
	g.updateSpawning()

	pc.StartPhase(telemetry.PhaseSpatialGrid)
	g.updateSpatialGrid()

	pc.StartPhase(telemetry.PhaseMovement)
	g.updateMovement()

	pc.StartPhase(telemetry.PhaseCollision)
	g.updateCollisions()

	pc.StartPhase(telemetry.PhaseArrival)
	g.updateArrivals()

	pc.StartPhase(telemetry.PhaseCleanup)
	g.cleanupTerminated()

	pc.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	pc.EndTick()
	g.tick++
}

// updateSpatialGrid rebuilds the spatial index from active bees.
func (g *Game) updateSpatialGrid() {
	g.spatial.Clear()

	query := g.beeFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, bee, _ := query.Get()

		if bee.Active {
			g.spatial.Insert(entity, pos.X, pos.Y)
		}
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// ActiveBees returns the number of bees currently in flight or stunned.
func (g *Game) ActiveBees() int {
	return g.activeCount
}

// Score returns the run-wide arrival count.
func (g *Game) Score() int {
	return g.collector.TotalArrivals()
}

// Grid exposes the hive grid (read-only use by the renderer).
func (g *Game) Grid() *systems.HexGrid {
	return g.grid
}

// Unload releases output resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if len(g.events) > 0 {
			if err := g.outputManager.WriteEvents(g.events); err != nil {
				slog.Error("failed to write events", "error", err)
			}
			g.events = g.events[:0]
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
