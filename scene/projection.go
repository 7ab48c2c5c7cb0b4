package scene

import (
	"errors"
	"fmt"
	stdmath "math"

	"fill-extrusion/math"
)

var ErrUnknownProjection = errors.New("unknown projection")

type ProjectionName string

const (
	ProjectionMercator ProjectionName = "mercator"
	ProjectionGlobe    ProjectionName = "globe"
)

// Projection maps tile space onto the rendered surface.
type Projection interface {
	Name() ProjectionName
	// UpVector returns the unit surface normal at tile-space point (x, y)
	// of tile id.
	UpVector(id CanonicalTileID, x, y float64) math.Vec3
}

// ProjectionByName resolves a style projection name. An empty name selects
// mercator.
func ProjectionByName(name string) (Projection, error) {
	switch ProjectionName(name) {
	case ProjectionMercator, "":
		return Mercator{}, nil
	case ProjectionGlobe:
		return Globe{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjection, name)
	}
}

// Mercator is the planar web mercator projection.
type Mercator struct{}

func (Mercator) Name() ProjectionName { return ProjectionMercator }

func (Mercator) UpVector(CanonicalTileID, float64, float64) math.Vec3 {
	return math.Vec3Up
}

// Globe renders the map on a unit sphere in ECEF space.
type Globe struct{}

func (Globe) Name() ProjectionName { return ProjectionGlobe }

func (Globe) UpVector(id CanonicalTileID, x, y float64) math.Vec3 {
	tiles := stdmath.Exp2(float64(id.Z))
	mx := (x/Extent + float64(id.X)) / tiles
	my := (y/Extent + float64(id.Y)) / tiles
	lat := LatFromMercatorY(my) * stdmath.Pi / 180
	lng := LngFromMercatorX(mx) * stdmath.Pi / 180

	cosLat := stdmath.Cos(lat)
	return math.Vec3{
		X: float32(cosLat * stdmath.Sin(lng)),
		Y: float32(-stdmath.Sin(lat)),
		Z: float32(cosLat * stdmath.Cos(lng)),
	}
}
