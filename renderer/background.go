package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer draws the meadow backdrop: a vertical sky-to-grass
// gradient with a few slowly drifting pollen motes.
type BackgroundRenderer struct {
	screenW, screenH int32
	motes            []mote
}

type mote struct {
	x, y   float32
	size   float32
	speed  float32
	offset float32
}

// NewBackgroundRenderer creates a background renderer sized to the screen.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	b := &BackgroundRenderer{screenW: screenW, screenH: screenH}

	// Fixed layout so the backdrop is stable across runs.
	for i := 0; i < 24; i++ {
		fi := float32(i)
		b.motes = append(b.motes, mote{
			x:      float32(math.Mod(float64(fi*173.0), float64(screenW))),
			y:      float32(math.Mod(float64(fi*127.0), float64(screenH))),
			size:   1.5 + float32(i%3),
			speed:  8 + float32(i%5)*4,
			offset: fi * 0.7,
		})
	}
	return b
}

// Draw renders the backdrop for the given sim time in seconds.
func (b *BackgroundRenderer) Draw(t float32) {
	top := rl.Color{R: 168, G: 205, B: 232, A: 255}
	bottom := rl.Color{R: 126, G: 168, B: 108, A: 255}
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, top, bottom)

	for i := range b.motes {
		m := &b.motes[i]
		drift := float32(math.Sin(float64(t*0.4+m.offset))) * 18
		y := m.y - t*m.speed
		// Wrap vertically so motes keep rising.
		y = float32(math.Mod(float64(y), float64(b.screenH)))
		if y < 0 {
			y += float32(b.screenH)
		}
		rl.DrawCircle(int32(m.x+drift), int32(y), m.size, rl.Color{R: 255, G: 250, B: 220, A: 90})
	}
}
