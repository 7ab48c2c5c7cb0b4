package program

import (
	stdmath "math"

	"fill-extrusion/math"
	"fill-extrusion/scene"
)

// PatternAtlasUnit is the texture unit the pattern pass samples its atlas
// from. It shares unit 0 with the ground framebuffer, so the atlas must be
// rebound before each pattern draw.
const PatternAtlasUnit int32 = 0

// PatternExtras is the atlas and tiling state of the pattern pass.
type PatternExtras struct {
	Image             int32     // texture unit of the atlas
	TexSize           math.Vec2 // atlas size in pixels
	PixelCoordUpper   math.Vec2
	PixelCoordLower   math.Vec2
	TileUnitsToPixels float32
	Opacity           float32
}

// PatternExtrasForTile derives the tiling state of tile when rendered at
// tileZoom. The tile's world pixel origin is split into upper and lower 16
// bits because highp floats only guarantee 16 bits of precision in GLSL.
func PatternExtrasForTile(tile scene.Tile, tileZoom float64, atlasSize math.Vec2, opacity float32) PatternExtras {
	id := tile.ID
	numTiles := stdmath.Exp2(float64(id.OverscaledZ))
	tileSizeAtNearestZoom := tile.TileSize * stdmath.Exp2(tileZoom) / numTiles

	pixelX := int64(tileSizeAtNearestZoom * (float64(id.Canonical.X) + float64(id.Wrap)*numTiles))
	pixelY := int64(tileSizeAtNearestZoom * float64(id.Canonical.Y))

	return PatternExtras{
		Image:             PatternAtlasUnit,
		TexSize:           atlasSize,
		PixelCoordUpper:   math.NewVec2(float32(pixelX>>16), float32(pixelY>>16)),
		PixelCoordLower:   math.NewVec2(float32(pixelX&0xFFFF), float32(pixelY&0xFFFF)),
		TileUnitsToPixels: float32(1 / pixelsToTileUnits(tile, 1, tileZoom)),
		Opacity:           opacity,
	}
}

func pixelsToTileUnits(tile scene.Tile, pixelValue, z float64) float64 {
	return pixelValue * (scene.Extent / (tile.TileSize * stdmath.Exp2(z-float64(tile.ID.OverscaledZ))))
}

// HeightFactor converts extrusion heights into pattern texture space for a
// tile at overscaledZ. It depends on the draw's own tile and is never
// shared across tiles.
func HeightFactor(overscaledZ int, tileSize float64) float32 {
	return float32(-stdmath.Exp2(float64(overscaledZ)) / tileSize / 8)
}

// FillExtrusionPatternSchema is the standard schema plus the atlas slots.
func FillExtrusionPatternSchema() Schema {
	slots := FillExtrusionSchema().Slots
	slots = append(slots,
		Slot{UHeightFactor, Float},
		Slot{UTexSize, Vec2},
		Slot{UImage, Sampler},
		Slot{UPixelCoordUpper, Vec2},
		Slot{UPixelCoordLower, Vec2},
		Slot{UTileUnitsToPixels, Float},
	)
	return Schema{Name: "fill-extrusion-pattern", Slots: slots}
}

// FillExtrusionPatternUniforms is the standard record with the pattern
// overlay applied.
type FillExtrusionPatternUniforms struct {
	FillExtrusionUniforms
	HeightFactor      float32
	TexSize           math.Vec2
	Image             int32
	PixelCoordUpper   math.Vec2
	PixelCoordLower   math.Vec2
	TileUnitsToPixels float32
}

func (u FillExtrusionPatternUniforms) Schema() Schema { return FillExtrusionPatternSchema() }

// Bind hands the standard slots, then the atlas slots, to b.
func (u FillExtrusionPatternUniforms) Bind(b Binder) {
	u.FillExtrusionUniforms.Bind(b)
	b.Uniform1f(UHeightFactor, u.HeightFactor)
	b.Uniform2f(UTexSize, u.TexSize)
	b.Uniform1i(UImage, u.Image)
	b.Uniform2f(UPixelCoordUpper, u.PixelCoordUpper)
	b.Uniform2f(UPixelCoordLower, u.PixelCoordLower)
	b.Uniform1f(UTileUnitsToPixels, u.TileUnitsToPixels)
}

// FillExtrusionPatternUniformValues builds the pattern pass record. The
// pattern program shares the standard interface, so flood light is pinned
// to full intensity and ground shadowing is switched off instead of being
// left out.
func FillExtrusionPatternUniformValues(tr Transform, light scene.Light, p FillExtrusionParams, tile scene.Tile, pattern PatternExtras) FillExtrusionPatternUniforms {
	p.FloodLightIntensity = 1.0
	p.GroundShadowFactor = math.Vec3Zero
	base := FillExtrusionUniformValues(tr, light, p)
	base.Opacity = pattern.Opacity

	return FillExtrusionPatternUniforms{
		FillExtrusionUniforms: base,
		HeightFactor:          HeightFactor(p.Coord.OverscaledZ, tile.TileSize),
		TexSize:               pattern.TexSize,
		Image:                 pattern.Image,
		PixelCoordUpper:       pattern.PixelCoordUpper,
		PixelCoordLower:       pattern.PixelCoordLower,
		TileUnitsToPixels:     pattern.TileUnitsToPixels,
	}
}
