package scene

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"fill-extrusion/math"
)

const (
	// Zoom range over which globe rendering blends into mercator.
	GlobeZoomThresholdMin = 5.0
	GlobeZoomThresholdMax = 6.0
)

// Transform is the camera state the extrusion passes read: bearing, zoom,
// map center and the active projection.
type Transform struct {
	angle      float64 // bearing in radians, counter-clockwise
	zoom       float64
	centerLng  float64
	centerLat  float64
	projection Projection
}

func NewTransform(projection Projection) *Transform {
	if projection == nil {
		projection = Mercator{}
	}
	return &Transform{projection: projection}
}

func (t *Transform) Angle() float64 { return t.angle }

func (t *Transform) SetAngle(angle float64) {
	t.angle = stdmath.Mod(angle, 2*stdmath.Pi)
}

func (t *Transform) Rotate(delta float64) {
	t.SetAngle(t.angle + delta)
}

func (t *Transform) Zoom() float64 { return t.zoom }

func (t *Transform) SetZoom(zoom float64) {
	t.zoom = zoom
}

// TileZoom is the integer zoom level tiles are requested at.
func (t *Transform) TileZoom() float64 {
	return stdmath.Floor(t.zoom)
}

func (t *Transform) Center() (lng, lat float64) {
	return t.centerLng, t.centerLat
}

func (t *Transform) SetCenter(lng, lat float64) {
	t.centerLng = lng
	t.centerLat = lat
}

func (t *Transform) Projection() Projection { return t.projection }

func (t *Transform) SetProjection(p Projection) {
	t.projection = p
}

// ZoomTransition is 0 while fully in globe view and reaches 1 once the
// camera has zoomed far enough in for mercator rendering.
func (t *Transform) ZoomTransition() float32 {
	return float32(smoothstep(GlobeZoomThresholdMin, GlobeZoomThresholdMax, t.zoom))
}

// MercatorCenter is the map center in normalized mercator coordinates.
func (t *Transform) MercatorCenter() math.Vec2 {
	return math.Vec2{
		X: float32(MercatorXFromLng(t.centerLng)),
		Y: float32(MercatorYFromLat(t.centerLat)),
	}
}

// GlobeInverseRotation undoes the globe rotation that brings the map
// center in front of the camera.
func (t *Transform) GlobeInverseRotation() math.Mat4 {
	lng := t.centerLng * stdmath.Pi / 180
	lat := t.centerLat * stdmath.Pi / 180
	return math.Mat4FromMGL(mgl32.HomogRotate3DY(float32(lng)).Mul4(mgl32.HomogRotate3DX(float32(lat))))
}

func smoothstep(e0, e1, x float64) float64 {
	x = stdmath.Max(0, stdmath.Min(1, (x-e0)/(e1-e0)))
	return x * x * (3 - 2*x)
}
