package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/beeline-game/beeline/renderer"
	"github.com/beeline-game/beeline/ui"
)

// gameRenderers bundles the drawing helpers. Created on first Draw so
// headless runs never touch raylib.
type gameRenderers struct {
	background *renderer.BackgroundRenderer
	hive       *renderer.HiveRenderer
	bees       *renderer.BeeRenderer
	paths      *renderer.PathRenderer
	hud        *ui.HUD
	hivePanel  *ui.HivePanel
	showPanel  bool
}

// Draw renders the game state.
func (g *Game) Draw() {
	if g.rend == nil {
		scale := g.cfg.Derived.Scale
		g.rend = &gameRenderers{
			background: renderer.NewBackgroundRenderer(int32(g.cfg.Screen.Width), int32(g.cfg.Screen.Height)),
			hive:       renderer.NewHiveRenderer(scale, float32(g.cfg.Grid.CellSize)*0.5),
			bees:       renderer.NewBeeRenderer(scale),
			paths:      renderer.NewPathRenderer(scale),
			hud:        ui.NewHUD(),
			hivePanel:  ui.NewHivePanel(int32(g.cfg.Screen.Width)-230, 10, 220),
		}
	}

	t := float32(g.tick) * g.dt
	effects, _ := g.sink.(*renderer.EffectSink)
	if effects != nil && !g.paused {
		effects.Update(g.dt * float32(g.stepsPerUpdate))
	}

	rl.BeginDrawing()

	g.rend.background.Draw(t)

	// Hive slots
	for row := 0; row < g.grid.Rows(); row++ {
		for col := 0; col < g.grid.Cols(); col++ {
			slot := g.grid.Slot(row, col)
			var pulse float32
			if effects != nil {
				pulse = effects.SlotPulse(row, col)
			}
			g.rend.hive.DrawSlot(slot, pulse)
		}
	}

	// Flight paths under the bees that fly them
	query := g.beeFilter.Query()
	for query.Next() {
		_, _, bee, path := query.Get()
		if bee.Active {
			g.rend.paths.DrawPath(path)
		}
	}

	query = g.beeFilter.Query()
	for query.Next() {
		pos, vel, bee, _ := query.Get()
		if bee.Active {
			g.rend.bees.DrawBee(pos, vel, bee, t)
		}
	}

	g.drawHUD()

	rl.EndDrawing()
}

func (g *Game) drawHUD() {
	if rl.IsKeyPressed(rl.KeyTab) {
		g.rend.showPanel = !g.rend.showPanel
	}

	g.rend.hud.Draw(ui.HUDData{
		Score:      g.collector.TotalArrivals(),
		Collisions: g.collector.TotalCollisions(),
		ActiveBees: g.activeCount,
		Tick:       g.tick,
		Speed:      g.stepsPerUpdate,
		FPS:        int32(rl.GetFPS()),
		Paused:     g.paused,
	})
	g.rend.hud.DrawControls(int32(g.cfg.Screen.Height), "drag: guide bee | space: pause | < >: speed | tab: hive panel")

	if g.rend.showPanel {
		open, closing, closed := g.grid.SlotCounts()
		kinds := make([]ui.KindCount, len(g.countsByKind))
		for i, n := range g.countsByKind {
			kinds[i] = ui.KindCount{Name: g.cfg.Spawn.Types[i].Name, Count: n}
		}
		g.rend.hivePanel.Draw(ui.HivePanelData{
			OpenSlots:    open,
			ClosingSlots: closing,
			ClosedSlots:  closed,
			Revealed:     g.grid.RevealedCount(),
			TotalSlots:   g.grid.Rows() * g.grid.Cols(),
			SpawnPhase:   g.spawner.PhaseIndex(),
			PoolFree:     g.poolFreeTotal(),
			BeesByKind:   kinds,
		})
	}

	switch {
	case g.phase == PhaseIntro:
		g.drawBanner("GET READY")
	case g.phase == PhaseCleared:
		g.drawBanner(fmt.Sprintf("HIVE FULL  score %d", g.collector.TotalArrivals()))
	}
}

func (g *Game) poolFreeTotal() int {
	total := 0
	for kind := range g.countsByKind {
		total += g.pool.FreeCount(uint8(kind))
	}
	return total
}

func (g *Game) drawBanner(text string) {
	fontSize := int32(40)
	w := rl.MeasureText(text, fontSize)
	x := (int32(g.cfg.Screen.Width) - w) / 2
	y := int32(g.cfg.Screen.Height) / 3
	rl.DrawText(text, x+2, y+2, fontSize, rl.Color{R: 30, G: 24, B: 8, A: 200})
	rl.DrawText(text, x, y, fontSize, rl.Gold)
}
