// Hive growth preview tool - interactive visualization with sliders.
//
// Step reveals and opens a batch the way the in-game growth scheduler
// does, so slider tweaks can be judged against real adjacency behavior.
//
// Usage: go run ./cmd/growthpreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/beeline-game/beeline/components"
	"github.com/beeline-game/beeline/renderer"
	"github.com/beeline-game/beeline/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 720
	panelWidth   = windowWidth - previewSize - 30
)

// GrowthParams holds the grid and growth parameters under preview.
type GrowthParams struct {
	Rows        int
	Cols        int
	CellSize    float32
	RevealBatch int
	OpenBatch   int
	Capacity    int
	Seed        int64
}

type preview struct {
	grid    *systems.HexGrid
	hive    *renderer.HiveRenderer
	world   *ecs.World
	pathMap *ecs.Map1[components.FlightPath]
	beeMap  *ecs.Map1[components.Bee]
	steps   int
}

func rebuild(p GrowthParams) *preview {
	world := ecs.NewWorld()
	pathMap := ecs.NewMap1[components.FlightPath](world)
	beeMap := ecs.NewMap1[components.Bee](world)

	// Scale so the whole grid fits the preview pane.
	worldW := (float32(p.Cols) + 1.5) * p.CellSize
	scale := float32(previewSize) / worldW

	rng := rand.New(rand.NewSource(p.Seed))
	grid := systems.NewHexGrid(systems.HexGridParams{
		Rows:     p.Rows,
		Cols:     p.Cols,
		CellSize: p.CellSize,
		OriginX:  p.CellSize,
		OriginY:  p.CellSize,
		Seeds: []systems.Coord{
			{Row: p.Rows / 2, Col: p.Cols / 2},
		},
		MaxProbes: 32,
	}, rng, world, pathMap, beeMap, nil)

	return &preview{
		grid:    grid,
		hive:    renderer.NewHiveRenderer(scale, p.CellSize*0.5),
		world:   world,
		pathMap: pathMap,
		beeMap:  beeMap,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Hive Growth Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := GrowthParams{
		Rows:        7,
		Cols:        9,
		CellSize:    0.9,
		RevealBatch: 3,
		OpenBatch:   2,
		Capacity:    3,
		Seed:        12345,
	}

	pv := rebuild(params)

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 40, G: 44, B: 48, A: 255})

		// Draw grid
		for row := 0; row < pv.grid.Rows(); row++ {
			for col := 0; col < pv.grid.Cols(); col++ {
				pv.hive.DrawSlot(pv.grid.Slot(row, col), 0)
			}
		}
		rl.DrawRectangleLines(0, 0, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Growth Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		rebuildNeeded := false

		rl.DrawText("Rows", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRows := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"3", "15",
			float32(params.Rows), 3, 15,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Rows), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if int(newRows) != params.Rows {
			params.Rows = int(newRows)
			rebuildNeeded = true
		}
		panelY += 35

		rl.DrawText("Cols", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCols := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"3", "20",
			float32(params.Cols), 3, 20,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Cols), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if int(newCols) != params.Cols {
			params.Cols = int(newCols)
			rebuildNeeded = true
		}
		panelY += 35

		rl.DrawText("Reveal batch", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newReveal := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "8",
			float32(params.RevealBatch), 1, 8,
		)
		rl.DrawText(fmt.Sprintf("%d", params.RevealBatch), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		params.RevealBatch = int(newReveal)
		panelY += 35

		rl.DrawText("Open batch", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newOpen := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "8",
			float32(params.OpenBatch), 1, 8,
		)
		rl.DrawText(fmt.Sprintf("%d", params.OpenBatch), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		params.OpenBatch = int(newOpen)
		panelY += 35

		rl.DrawText("Slot capacity", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCap := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "8",
			float32(params.Capacity), 1, 8,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Capacity), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		params.Capacity = int(newCap)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 110, Height: 30}, "Step growth") {
			revealed := pv.grid.Reveal(params.RevealBatch)
			opened := pv.grid.Open(params.OpenBatch, params.Capacity)
			pv.steps++
			fmt.Printf("step %d: revealed %d opened %d\n", pv.steps, revealed, opened)
		}
		if gui.Button(rl.Rectangle{X: panelX + 120, Y: panelY, Width: 110, Height: 30}, "Reset") {
			rebuildNeeded = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 240, Y: panelY, Width: 110, Height: 30}, "New seed") {
			params.Seed++
			rebuildNeeded = true
		}
		panelY += 45

		open, closing, closed := pv.grid.SlotCounts()
		rl.DrawText(fmt.Sprintf("Revealed: %d", pv.grid.RevealedCount()), int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 22
		rl.DrawText(fmt.Sprintf("Open: %d  Closing: %d  Closed: %d", open, closing, closed), int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 22
		rl.DrawText(fmt.Sprintf("Seed: %d  Steps: %d", params.Seed, pv.steps), int32(panelX), int32(panelY), 16, rl.Gray)

		rl.EndDrawing()

		if rebuildNeeded {
			pv = rebuild(params)
		}
	}
}
