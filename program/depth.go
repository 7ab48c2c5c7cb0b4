package program

import "fill-extrusion/math"

// FillExtrusionDepthSchema is the uniform interface of the depth pre-pass.
func FillExtrusionDepthSchema() Schema {
	return Schema{Name: "fill-extrusion-depth", Slots: []Slot{
		{UMatrix, Mat4},
		{UEdgeRadius, Float},
		{UVerticalScale, Float},
	}}
}

// FillExtrusionDepthUniforms feeds the opaque depth pre-pass. It carries no
// lighting or pattern state.
type FillExtrusionDepthUniforms struct {
	Matrix        math.Mat4
	EdgeRadius    float32
	VerticalScale float32
}

func (u FillExtrusionDepthUniforms) Schema() Schema { return FillExtrusionDepthSchema() }

// Bind hands each slot of the record to b.
func (u FillExtrusionDepthUniforms) Bind(b Binder) {
	b.UniformMatrix4f(UMatrix, u.Matrix)
	b.Uniform1f(UEdgeRadius, u.EdgeRadius)
	b.Uniform1f(UVerticalScale, u.VerticalScale)
}

// FillExtrusionDepthUniformValues builds the depth record for one tile.
func FillExtrusionDepthUniformValues(matrix math.Mat4, edgeRadius, verticalScale float32) FillExtrusionDepthUniforms {
	return FillExtrusionDepthUniforms{
		Matrix:        matrix,
		EdgeRadius:    edgeRadius,
		VerticalScale: verticalScale,
	}
}
