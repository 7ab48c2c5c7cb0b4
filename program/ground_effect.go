package program

import "fill-extrusion/math"

// GroundFramebufferUnit is the texture unit the ground pass samples its
// framebuffer from. There is a single framebuffer source.
const GroundFramebufferUnit int32 = 0

// FillExtrusionGroundEffectSchema is the uniform interface shared by the
// ground AO and flood-light passes.
func FillExtrusionGroundEffectSchema() Schema {
	return Schema{Name: "fill-extrusion-ground-effect", Slots: []Slot{
		{UMatrix, Mat4},
		{UOpacity, Float},
		{UAOPass, Float},
		{UMeterToTile, Float},
		{UAO, Vec2},
		{UFloodLightIntensity, Float},
		{UFloodLightColor, Vec3},
		{UAttenuation, Float},
		{UEdgeRadius, Float},
		{UFB, Sampler},
		{UFBSize, Float},
	}}
}

// GroundEffectParams are the inputs of one ground AO or flood-light draw.
type GroundEffectParams struct {
	Matrix              math.Mat4
	Opacity             float32
	AOPass              bool
	MeterToTile         float32
	AO                  math.Vec2
	FloodLightIntensity float32
	FloodLightColor     math.Vec3
	Attenuation         float32
	EdgeRadius          float32
	FramebufferSize     float32
}

// FillExtrusionGroundEffectUniforms is the record of one ground pass.
// AOPass is 1 for the AO pass and 0 for the flood-light pass.
type FillExtrusionGroundEffectUniforms struct {
	Matrix              math.Mat4
	Opacity             float32
	AOPass              float32
	MeterToTile         float32
	AO                  math.Vec2
	FloodLightIntensity float32
	FloodLightColor     math.Vec3
	Attenuation         float32
	EdgeRadius          float32
	FB                  int32
	FBSize              float32
}

func (u FillExtrusionGroundEffectUniforms) Schema() Schema { return FillExtrusionGroundEffectSchema() }

// Bind hands each slot of the record to b.
func (u FillExtrusionGroundEffectUniforms) Bind(b Binder) {
	b.UniformMatrix4f(UMatrix, u.Matrix)
	b.Uniform1f(UOpacity, u.Opacity)
	b.Uniform1f(UAOPass, u.AOPass)
	b.Uniform1f(UMeterToTile, u.MeterToTile)
	b.Uniform2f(UAO, u.AO)
	b.Uniform1f(UFloodLightIntensity, u.FloodLightIntensity)
	b.Uniform3f(UFloodLightColor, u.FloodLightColor)
	b.Uniform1f(UAttenuation, u.Attenuation)
	b.Uniform1f(UEdgeRadius, u.EdgeRadius)
	b.Uniform1i(UFB, u.FB)
	b.Uniform1f(UFBSize, u.FBSize)
}

// FillExtrusionGroundEffectUniformValues builds the record of one ground
// pass from p.
func FillExtrusionGroundEffectUniformValues(p GroundEffectParams) FillExtrusionGroundEffectUniforms {
	return FillExtrusionGroundEffectUniforms{
		Matrix:              p.Matrix,
		Opacity:             p.Opacity,
		AOPass:              BoolToUniform(p.AOPass),
		MeterToTile:         p.MeterToTile,
		AO:                  p.AO,
		FloodLightIntensity: p.FloodLightIntensity,
		FloodLightColor:     p.FloodLightColor,
		Attenuation:         p.Attenuation,
		EdgeRadius:          p.EdgeRadius,
		FB:                  GroundFramebufferUnit,
		FBSize:              p.FramebufferSize,
	}
}
