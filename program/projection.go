package program

import (
	"fill-extrusion/math"
	"fill-extrusion/scene"
)

// GlobeState is the per-frame globe input the renderer supplies. It is only
// read when the active projection is the globe.
type GlobeState struct {
	ZoomTransition float32
	InvRotMatrix   math.Mat4
	MercatorCenter math.Vec2
	HeightLift     float32
}

// GlobeUniforms is the block of slots only the globe projection fills in.
type GlobeUniforms struct {
	TileID         math.Vec3 // x, y, 2^z
	ZoomTransition float32
	InvRotMatrix   math.Mat4
	MercCenter     math.Vec2
	UpDir          math.Vec3
	HeightLift     float32
}

func (g GlobeUniforms) bind(b Binder) {
	b.Uniform3f(UTileID, g.TileID)
	b.Uniform1f(UZoomTransition, g.ZoomTransition)
	b.UniformMatrix4f(UInvRotMatrix, g.InvRotMatrix)
	b.Uniform2f(UMercCenter, g.MercCenter)
	b.Uniform3f(UUpDir, g.UpDir)
	b.Uniform1f(UHeightLift, g.HeightLift)
}

// ProjectionExtras is either MercatorExtras or GlobeExtras.
type ProjectionExtras interface {
	Uniforms() GlobeUniforms
}

// MercatorExtras yields the neutral globe block: a zero tile id and
// up vector, no transition or lift, and an identity inverse rotation.
type MercatorExtras struct{}

func (MercatorExtras) Uniforms() GlobeUniforms {
	return GlobeUniforms{InvRotMatrix: math.Mat4Identity()}
}

// GlobeExtras carries the real globe block for one tile.
type GlobeExtras struct {
	TileID         math.Vec3
	ZoomTransition float32
	InvRotMatrix   math.Mat4
	MercCenter     math.Vec2
	UpDir          math.Vec3
	HeightLift     float32
}

// Uniforms returns the globe block as bound.
func (e GlobeExtras) Uniforms() GlobeUniforms {
	return GlobeUniforms(e)
}

// AdaptProjection picks the projection variant for one draw. It has to run
// for every draw: the projection can change between two draws of the same
// frame while morphing between globe and mercator.
func AdaptProjection(projection scene.Projection, coord scene.OverscaledTileID, globe GlobeState) ProjectionExtras {
	if projection == nil || projection.Name() != scene.ProjectionGlobe {
		return MercatorExtras{}
	}

	c := coord.Canonical
	center := globe.MercatorCenter
	return GlobeExtras{
		TileID:         math.NewVec3(float32(c.X), float32(c.Y), float32(uint64(1)<<uint(c.Z))),
		ZoomTransition: globe.ZoomTransition,
		InvRotMatrix:   globe.InvRotMatrix,
		MercCenter:     center,
		UpDir: projection.UpVector(scene.CanonicalTileID{},
			float64(center.X)*scene.Extent, float64(center.Y)*scene.Extent),
		HeightLift: globe.HeightLift,
	}
}
