package scene

import (
	"fmt"
	stdmath "math"
)

// Extent is the number of tile units along one edge of a tile.
const Extent = 8192

// earthCircumference in meters at the equator.
const earthCircumference = 2 * stdmath.Pi * 6371008.8

type CanonicalTileID struct {
	X, Y, Z int
}

func (id CanonicalTileID) String() string {
	return fmt.Sprintf("%d/%d/%d", id.Z, id.X, id.Y)
}

// OverscaledTileID addresses a tile as rendered. OverscaledZ is at least
// Canonical.Z; Wrap counts world copies east (+) or west (-) of the
// primary one.
type OverscaledTileID struct {
	OverscaledZ int
	Wrap        int
	Canonical   CanonicalTileID
}

func NewOverscaledTileID(overscaledZ, wrap, z, x, y int) OverscaledTileID {
	return OverscaledTileID{
		OverscaledZ: overscaledZ,
		Wrap:        wrap,
		Canonical:   CanonicalTileID{X: x, Y: y, Z: z},
	}
}

func (id OverscaledTileID) String() string {
	return fmt.Sprintf("%s@%d (wrap %d)", id.Canonical, id.OverscaledZ, id.Wrap)
}

// Tile is the slice of loaded tile state the extrusion passes need.
type Tile struct {
	ID       OverscaledTileID
	TileSize float64
}

// MeterToTile returns how many tile units one meter spans at the tile's
// center latitude.
func (t Tile) MeterToTile() float64 {
	c := t.ID.Canonical
	tiles := stdmath.Exp2(float64(c.Z))
	lat := LatFromMercatorY((float64(c.Y) + 0.5) / tiles)
	metersPerTile := earthCircumference * stdmath.Cos(lat*stdmath.Pi/180) / tiles
	return Extent / metersPerTile
}

func MercatorXFromLng(lng float64) float64 {
	return (180 + lng) / 360
}

func MercatorYFromLat(lat float64) float64 {
	return (180 - (180/stdmath.Pi)*stdmath.Log(stdmath.Tan(stdmath.Pi/4+lat*stdmath.Pi/360))) / 360
}

func LngFromMercatorX(x float64) float64 {
	return x*360 - 180
}

func LatFromMercatorY(y float64) float64 {
	y2 := 180 - y*360
	return 360/stdmath.Pi*stdmath.Atan(stdmath.Exp(y2*stdmath.Pi/180)) - 90
}
