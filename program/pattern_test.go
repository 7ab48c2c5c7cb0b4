package program

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"fill-extrusion/math"
	"fill-extrusion/scene"
)

func TestHeightFactor(t *testing.T) {
	tests := []struct {
		overscaledZ int
		tileSize    float64
		want        float32
	}{
		{3, 512, -0.001953125},
		{0, 512, -1.0 / 512 / 8},
		{14, 512, -4},
		{16, 256, -32},
		{22, 512, -1024},
	}
	for _, tt := range tests {
		if got := HeightFactor(tt.overscaledZ, tt.tileSize); got != tt.want {
			t.Errorf("HeightFactor(%d, %v) = %v, want %v", tt.overscaledZ, tt.tileSize, got, tt.want)
		}
	}
}

func TestPatternPassUsesDrawTile(t *testing.T) {
	tr := scene.NewTransform(scene.Mercator{})
	p := sampleParams()

	p.Coord = scene.NewOverscaledTileID(3, 0, 3, 1, 1)
	a := FillExtrusionPatternUniformValues(tr, scene.DefaultLight(), p, scene.Tile{ID: p.Coord, TileSize: 512}, PatternExtras{})
	if a.HeightFactor != -0.001953125 {
		t.Errorf("expected -0.001953125, got %v", a.HeightFactor)
	}

	p.Coord = scene.NewOverscaledTileID(5, 0, 4, 1, 1)
	b := FillExtrusionPatternUniformValues(tr, scene.DefaultLight(), p, scene.Tile{ID: p.Coord, TileSize: 256}, PatternExtras{})
	if want := float32(-32.0 / 256 / 8); b.HeightFactor != want {
		t.Errorf("expected %v, got %v", want, b.HeightFactor)
	}
}

func TestPatternPassNeutralizesGroundLighting(t *testing.T) {
	tr := scene.NewTransform(scene.Globe{})
	p := sampleParams()
	tile := scene.Tile{ID: p.Coord, TileSize: 512}

	u := FillExtrusionPatternUniformValues(tr, scene.DefaultLight(), p, tile, PatternExtras{Opacity: 0.4})
	if u.FloodLightIntensity != 1 {
		t.Errorf("expected flood light intensity 1, got %v", u.FloodLightIntensity)
	}
	if u.GroundShadowFactor != math.Vec3Zero {
		t.Errorf("expected zero ground shadow factor, got %v", u.GroundShadowFactor)
	}

	// Everything else matches the standard pass, opacity aside.
	std := FillExtrusionUniformValues(tr, scene.DefaultLight(), p)
	std.FloodLightIntensity = 1
	std.GroundShadowFactor = math.Vec3Zero
	std.Opacity = 0.4
	if diff := cmp.Diff(std, u.FillExtrusionUniforms); diff != "" {
		t.Errorf("standard fields differ (-want +got):\n%s", diff)
	}
}

func TestPatternOverlay(t *testing.T) {
	tr := scene.NewTransform(scene.Mercator{})
	p := sampleParams()
	tile := scene.Tile{ID: p.Coord, TileSize: 512}
	extras := PatternExtras{
		Image:             0,
		TexSize:           math.NewVec2(256, 128),
		PixelCoordUpper:   math.NewVec2(1, 2),
		PixelCoordLower:   math.NewVec2(300, 400),
		TileUnitsToPixels: 0.125,
		Opacity:           0.65,
	}

	u := FillExtrusionPatternUniformValues(tr, scene.DefaultLight(), p, tile, extras)
	if u.Image != 0 || u.TexSize != extras.TexSize || u.PixelCoordUpper != extras.PixelCoordUpper ||
		u.PixelCoordLower != extras.PixelCoordLower || u.TileUnitsToPixels != extras.TileUnitsToPixels {
		t.Errorf("overlay not applied: %+v", u)
	}
	if u.Opacity != 0.65 {
		t.Errorf("expected pattern opacity 0.65, got %v", u.Opacity)
	}
}

func TestPatternExtrasForTile(t *testing.T) {
	atlas := math.NewVec2(512, 256)

	// Rendered at its own zoom: one tile is tileSize pixels wide.
	tile := scene.Tile{ID: scene.NewOverscaledTileID(10, 0, 10, 300, 200), TileSize: 512}
	got := PatternExtrasForTile(tile, 10, atlas, 0.5)

	pixelX, pixelY := 300*512, 200*512
	want := PatternExtras{
		Image:             0,
		TexSize:           atlas,
		PixelCoordUpper:   math.NewVec2(float32(pixelX>>16), float32(pixelY>>16)),
		PixelCoordLower:   math.NewVec2(float32(pixelX&0xFFFF), float32(pixelY&0xFFFF)),
		TileUnitsToPixels: 512.0 / scene.Extent,
		Opacity:           0.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPatternExtrasForWrappedTile(t *testing.T) {
	tile := scene.Tile{ID: scene.NewOverscaledTileID(2, 1, 2, 1, 3), TileSize: 512}
	got := PatternExtrasForTile(tile, 2, math.NewVec2(1, 1), 1)

	// x = 1 + 1 wrap * 4 tiles = 5 tiles of 512 pixels.
	pixelX := 5 * 512
	if got.PixelCoordUpper.X != float32(pixelX>>16) || got.PixelCoordLower.X != float32(pixelX&0xFFFF) {
		t.Errorf("unexpected wrapped x split: upper %v lower %v", got.PixelCoordUpper, got.PixelCoordLower)
	}
	if got.PixelCoordLower.Y != 3*512 {
		t.Errorf("expected lower y %v, got %v", 3*512, got.PixelCoordLower.Y)
	}
}

func TestPatternExtrasOverscaled(t *testing.T) {
	// Tile data from z14 drawn at z16: each tile unit covers more pixels.
	tile := scene.Tile{ID: scene.NewOverscaledTileID(16, 0, 14, 10, 10), TileSize: 512}
	got := PatternExtrasForTile(tile, 16, math.NewVec2(1, 1), 1)
	if want := float32(512.0 / scene.Extent); got.TileUnitsToPixels != want {
		t.Errorf("expected %v, got %v", want, got.TileUnitsToPixels)
	}

	got = PatternExtrasForTile(tile, 17, math.NewVec2(1, 1), 1)
	if want := float32(1024.0 / scene.Extent); got.TileUnitsToPixels != want {
		t.Errorf("expected %v, got %v", want, got.TileUnitsToPixels)
	}
}
