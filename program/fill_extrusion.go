package program

import (
	"fill-extrusion/math"
	"fill-extrusion/scene"
)

// Transform is the camera state the builders read.
type Transform interface {
	Angle() float64
	Projection() scene.Projection
}

// FillExtrusionParams are the per-draw inputs of the standard pass.
type FillExtrusionParams struct {
	Matrix              math.Mat4
	VerticalGradient    bool
	Opacity             float32
	AO                  math.Vec2 // intensity, radius
	EdgeRadius          float32
	Coord               scene.OverscaledTileID
	Globe               GlobeState
	FloodLightColor     math.Vec3
	VerticalScale       float32
	FloodLightIntensity float32
	GroundShadowFactor  math.Vec3
}

// FillExtrusionSchema is the uniform interface of the standard pass. The
// pattern schema extends it.
func FillExtrusionSchema() Schema {
	return Schema{Name: "fill-extrusion", Slots: []Slot{
		{UMatrix, Mat4},
		{ULightPos, Vec3},
		{ULightIntensity, Float},
		{ULightColor, Vec3},
		{UVerticalGradient, Float},
		{UOpacity, Float},
		{UTileID, Vec3},
		{UZoomTransition, Float},
		{UInvRotMatrix, Mat4},
		{UMercCenter, Vec2},
		{UUpDir, Vec3},
		{UHeightLift, Float},
		{UAO, Vec2},
		{UEdgeRadius, Float},
		{UFloodLightColor, Vec3},
		{UVerticalScale, Float},
		{UFloodLightIntensity, Float},
		{UGroundShadowFactor, Vec3},
	}}
}

// FillExtrusionUniforms is the standard pass record.
type FillExtrusionUniforms struct {
	Matrix           math.Mat4
	LightPos         math.Vec3
	LightIntensity   float32
	LightColor       math.Vec3
	VerticalGradient float32
	Opacity          float32
	GlobeUniforms
	AO                  math.Vec2
	EdgeRadius          float32
	FloodLightColor     math.Vec3
	VerticalScale       float32
	FloodLightIntensity float32
	GroundShadowFactor  math.Vec3
}

func (u FillExtrusionUniforms) Schema() Schema { return FillExtrusionSchema() }

// Bind hands every slot to b, the projection block included.
func (u FillExtrusionUniforms) Bind(b Binder) {
	b.UniformMatrix4f(UMatrix, u.Matrix)
	b.Uniform3f(ULightPos, u.LightPos)
	b.Uniform1f(ULightIntensity, u.LightIntensity)
	b.Uniform3f(ULightColor, u.LightColor)
	b.Uniform1f(UVerticalGradient, u.VerticalGradient)
	b.Uniform1f(UOpacity, u.Opacity)
	u.GlobeUniforms.bind(b)
	b.Uniform2f(UAO, u.AO)
	b.Uniform1f(UEdgeRadius, u.EdgeRadius)
	b.Uniform3f(UFloodLightColor, u.FloodLightColor)
	b.Uniform1f(UVerticalScale, u.VerticalScale)
	b.Uniform1f(UFloodLightIntensity, u.FloodLightIntensity)
	b.Uniform3f(UGroundShadowFactor, u.GroundShadowFactor)
}

// FillExtrusionUniformValues builds the standard pass record for one draw.
func FillExtrusionUniformValues(tr Transform, light scene.Light, p FillExtrusionParams) FillExtrusionUniforms {
	l := ResolveLight(light, tr.Angle())
	extras := AdaptProjection(tr.Projection(), p.Coord, p.Globe)

	return FillExtrusionUniforms{
		Matrix:              p.Matrix,
		LightPos:            l.Position,
		LightIntensity:      l.Intensity,
		LightColor:          l.Color,
		VerticalGradient:    BoolToUniform(p.VerticalGradient),
		Opacity:             p.Opacity,
		GlobeUniforms:       extras.Uniforms(),
		AO:                  p.AO,
		EdgeRadius:          p.EdgeRadius,
		FloodLightColor:     p.FloodLightColor,
		VerticalScale:       p.VerticalScale,
		FloodLightIntensity: p.FloodLightIntensity,
		GroundShadowFactor:  p.GroundShadowFactor,
	}
}
