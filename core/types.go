// Package core holds the plain value types shared by the scene and the demo.
package core

import (
	"fill-extrusion/math"
)

// Color is a linear RGBA colour with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

var ColorWhite = Color{1, 1, 1, 1}

// RGB drops alpha and returns the colour as a vec3 uniform value.
func (c Color) RGB() math.Vec3 {
	return math.Vec3{X: c.R, Y: c.G, Z: c.B}
}

// Lerp interpolates every channel, alpha included.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}
