package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/beeline-game/beeline/components"
)

// BeeRenderer draws bees as oriented triangles with per-kind colors.
type BeeRenderer struct {
	scale float32
}

// NewBeeRenderer creates a bee renderer for the given world-to-pixel scale.
func NewBeeRenderer(scale float32) *BeeRenderer {
	return &BeeRenderer{scale: scale}
}

var beeKindColors = []rl.Color{
	{R: 240, G: 196, B: 40, A: 255}, // worker
	{R: 90, G: 90, B: 100, A: 255},  // drone
	{R: 230, G: 120, B: 60, A: 255},
	{R: 120, G: 200, B: 230, A: 255},
}

// DrawBee renders one bee. Stunned bees fade out with their remaining
// stun intensity and spin instead of pointing along their velocity.
func (r *BeeRenderer) DrawBee(pos *components.Position, vel *components.Velocity, bee *components.Bee, t float32) {
	x := pos.X * r.scale
	y := pos.Y * r.scale
	radius := bee.Radius * r.scale

	color := beeKindColors[int(bee.Kind)%len(beeKindColors)]

	var heading float32
	switch bee.State {
	case components.BeeStunned:
		heading = t * 9
		color.A = uint8(60 + bee.StunIntensity*195)
	default:
		heading = float32(math.Atan2(float64(vel.Y), float64(vel.X)))
	}

	drawOrientedTriangle(x, y, heading, radius, color)
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}
