package main

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"fill-extrusion/math"
	"fill-extrusion/scene"
)

const (
	fovY  = 0.6435011087932844 // atan(3/4) * 2
	pitch = 60 * stdmath.Pi / 180

	// tile size in pixels at integer zoom
	worldTileSize = 512
)

// tileMatrix maps tile units (and meters on z) of tile to clip space for
// the camera described by tr.
func tileMatrix(tr *scene.Transform, tile scene.Tile, aspect float32) math.Mat4 {
	return math.Mat4FromMGL(tileClipMatrix(tr, tile, aspect))
}

func tileClipMatrix(tr *scene.Transform, tile scene.Tile, aspect float32) mgl32.Mat4 {
	worldSize := worldTileSize * stdmath.Exp2(tr.Zoom())
	id := tile.ID
	tiles := stdmath.Exp2(float64(id.Canonical.Z))
	tilePx := worldSize / tiles

	center := tr.MercatorCenter()
	tx := (float64(id.Canonical.X)+float64(id.Wrap)*tiles)*tilePx - float64(center.X)*worldSize
	ty := float64(id.Canonical.Y)*tilePx - float64(center.Y)*worldSize

	unit := tilePx / scene.Extent
	model := mgl32.Translate3D(float32(tx), float32(ty), 0).
		Mul4(mgl32.Scale3D(float32(unit), float32(unit), float32(unit*tile.MeterToTile())))

	dist := worldTileSize / 2 / stdmath.Tan(fovY/2)
	view := mgl32.Translate3D(0, 0, float32(-dist)).
		Mul4(mgl32.HomogRotate3DX(-pitch)).
		Mul4(mgl32.HomogRotate3DZ(float32(tr.Angle()))).
		Mul4(mgl32.Scale3D(1, -1, 1))

	proj := mgl32.Perspective(fovY, aspect, 1, float32(dist*20))
	return proj.Mul4(view).Mul4(model)
}

// cameraAnimation spins the camera and, when the scene starts on the
// globe, sweeps the zoom across the globe to mercator transition.
type cameraAnimation struct {
	spin     float64 // radians per second
	morph    bool
	baseZoom float64
	phase    float64
}

func newCameraAnimation(tr *scene.Transform) *cameraAnimation {
	return &cameraAnimation{
		spin:     0.2,
		morph:    tr.Projection().Name() == scene.ProjectionGlobe,
		baseZoom: tr.Zoom(),
	}
}

func (a *cameraAnimation) Update(tr *scene.Transform, dt float64) {
	tr.Rotate(a.spin * dt)
	if !a.morph {
		return
	}

	a.phase += dt * 0.5
	mid := (scene.GlobeZoomThresholdMin + scene.GlobeZoomThresholdMax) / 2
	tr.SetZoom(mid + stdmath.Sin(a.phase)*(mid-scene.GlobeZoomThresholdMin+0.5))

	if tr.ZoomTransition() >= 1 {
		tr.SetProjection(scene.Mercator{})
	} else {
		tr.SetProjection(scene.Globe{})
	}
}
