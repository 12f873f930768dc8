package game

import "math"

// sqrt32 is a float32 square root.
func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// exp32 is a float32 exponential.
func exp32(v float32) float32 {
	return float32(math.Exp(float64(v)))
}
