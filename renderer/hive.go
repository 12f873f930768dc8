package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/beeline-game/beeline/systems"
)

// HiveRenderer draws the hex grid of slots. Positions arrive in world
// units and are scaled to pixels here.
type HiveRenderer struct {
	scale      float32
	slotRadius float32
}

// NewHiveRenderer creates a hive renderer. slotRadius is in world units.
func NewHiveRenderer(scale, slotRadius float32) *HiveRenderer {
	return &HiveRenderer{scale: scale, slotRadius: slotRadius}
}

// DrawSlot renders one slot. pulse in [0,1] brightens the cell after a
// recent state change. Hidden slots are not drawn at all.
func (r *HiveRenderer) DrawSlot(slot *systems.Slot, pulse float32) {
	if slot.State == systems.SlotHidden {
		return
	}

	center := rl.Vector2{X: slot.Center.X * r.scale, Y: slot.Center.Y * r.scale}
	radius := r.slotRadius * r.scale

	var fill, outline rl.Color
	switch slot.State {
	case systems.SlotRevealed:
		fill = rl.Color{R: 120, G: 96, B: 52, A: 200}
		outline = rl.Color{R: 90, G: 72, B: 40, A: 255}
	case systems.SlotOpen:
		fill = rl.Color{R: 235, G: 186, B: 62, A: 230}
		outline = rl.Color{R: 140, G: 104, B: 24, A: 255}
	case systems.SlotClosing:
		fill = rl.Color{R: 214, G: 140, B: 48, A: 230}
		outline = rl.Color{R: 130, G: 82, B: 24, A: 255}
	case systems.SlotClosed:
		fill = rl.Color{R: 82, G: 60, B: 34, A: 230}
		outline = rl.Color{R: 56, G: 42, B: 24, A: 255}
	}

	if pulse > 0 {
		fill = brighten(fill, pulse)
	}

	// Flat-top hexagon; 90 degree rotation puts a vertex at the top to
	// match the offset row layout.
	rl.DrawPoly(center, 6, radius, 90, fill)
	rl.DrawPolyLines(center, 6, radius, 90, outline)

	// Remaining capacity on open and closing slots.
	if slot.State == systems.SlotOpen || slot.State == systems.SlotClosing {
		label := fmt.Sprintf("%d", slot.Capacity)
		fontSize := int32(radius * 0.9)
		if fontSize < 10 {
			fontSize = 10
		}
		w := rl.MeasureText(label, fontSize)
		rl.DrawText(label, int32(center.X)-w/2, int32(center.Y)-fontSize/2, fontSize, rl.Color{R: 40, G: 30, B: 10, A: 255})
	}
}

func brighten(c rl.Color, amount float32) rl.Color {
	lift := func(v uint8) uint8 {
		f := float32(v) + (255-float32(v))*amount*0.7
		if f > 255 {
			f = 255
		}
		return uint8(f)
	}
	return rl.Color{R: lift(c.R), G: lift(c.G), B: lift(c.B), A: c.A}
}
