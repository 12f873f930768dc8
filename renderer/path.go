package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/beeline-game/beeline/components"
)

// PathRenderer draws flight paths as dotted trails. Only the unconsumed
// stretch from the cursor onward is shown, so the trail shortens as the
// bee flies it.
type PathRenderer struct {
	scale float32
}

// NewPathRenderer creates a path renderer for the given world-to-pixel scale.
func NewPathRenderer(scale float32) *PathRenderer {
	return &PathRenderer{scale: scale}
}

// DrawPath renders one flight path.
func (r *PathRenderer) DrawPath(path *components.FlightPath) {
	if !path.Visible || path.Cursor >= len(path.Waypoints) {
		return
	}

	dot := rl.Color{R: 255, G: 255, B: 255, A: 170}
	if path.Connected {
		dot = rl.Color{R: 255, G: 230, B: 120, A: 210}
	}

	for i := path.Cursor; i < len(path.Waypoints); i++ {
		wp := path.Waypoints[i]
		rl.DrawCircle(int32(wp.X*r.scale), int32(wp.Y*r.scale), 2, dot)
	}

	// Ring around the destination on connected paths.
	if path.Connected {
		last := path.Waypoints[len(path.Waypoints)-1]
		rl.DrawCircleLines(int32(last.X*r.scale), int32(last.Y*r.scale), 6, dot)
	}
}
