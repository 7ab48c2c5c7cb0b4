package program

import (
	"github.com/go-gl/mathgl/mgl32"

	"fill-extrusion/math"
	"fill-extrusion/scene"
)

// ResolvedLight is the light as the shaders consume it.
type ResolvedLight struct {
	Position  math.Vec3
	Intensity float32
	Color     math.Vec3
}

// ResolveLight applies the light anchor. Viewport-anchored lights are
// rotated by the negative camera angle about the vertical axis so they stay
// fixed on screen while the map turns.
func ResolveLight(light scene.Light, cameraAngle float64) ResolvedLight {
	pos := light.Position
	if light.Anchor == scene.AnchorViewport {
		pos = math.Vec3FromMGL(mgl32.Rotate3DZ(float32(-cameraAngle)).Mul3x1(pos.MGL()))
	}
	return ResolvedLight{
		Position:  pos,
		Intensity: light.Intensity,
		Color:     light.Color.RGB(),
	}
}
