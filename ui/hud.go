package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Score      int
	Collisions int
	ActiveBees int
	Tick       int32
	Speed      int
	FPS        int32
	Paused     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("Score: %d", data.Score), 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Bees: %d | Collisions: %d", data.ActiveBees, data.Collisions),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// HivePanelData holds hive and spawner state for the side panel.
type HivePanelData struct {
	OpenSlots    int
	ClosingSlots int
	ClosedSlots  int
	Revealed     int
	TotalSlots   int
	SpawnPhase   int
	PoolFree     int
	BeesByKind   []KindCount
}

// KindCount pairs a bee type name with its live count.
type KindCount struct {
	Name  string
	Count int
}

// HivePanel renders hive fill progress and spawner state.
type HivePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHivePanel creates a new hive panel at the given position.
func NewHivePanel(x, y, width int32) *HivePanel {
	return &HivePanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the panel.
func (p *HivePanel) Draw(data HivePanelData) {
	r := p.renderer
	padding := r.Theme.Padding

	lines := int32(6 + len(data.BeesByKind))
	height := padding*2 + lines*r.Theme.LineHeight + 8

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding

	y = r.DrawSectionHeader(x, y, "Hive")
	y = r.DrawLabelValue(x, y, "Open", fmt.Sprintf("%d", data.OpenSlots))
	y = r.DrawLabelValue(x, y, "Closing", fmt.Sprintf("%d", data.ClosingSlots))
	y = r.DrawLabelValue(x, y, "Closed", fmt.Sprintf("%d", data.ClosedSlots))

	var fill float32
	if data.TotalSlots > 0 {
		fill = float32(data.ClosedSlots) / float32(data.TotalSlots)
	}
	y = r.DrawBar(x, y, "Filled", fill, p.width-padding*2)

	y = r.DrawLabelValue(x, y, "Phase", fmt.Sprintf("%d", data.SpawnPhase))
	for _, kc := range data.BeesByKind {
		y = r.DrawLabelValue(x, y, kc.Name, fmt.Sprintf("%d", kc.Count))
	}
}
