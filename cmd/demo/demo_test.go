package main

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"fill-extrusion/core"
	"fill-extrusion/math"
	"fill-extrusion/renderer"
	"fill-extrusion/scene"
)

func TestSamplePaletteHitsKeys(t *testing.T) {
	for _, key := range palettes {
		p := samplePalette(key.t)
		assert.InDelta(t, key.lightIntensity, p.lightIntensity, 1e-6, "t=%v", key.t)
		assert.InDelta(t, key.floodIntensity, p.floodIntensity, 1e-6, "t=%v", key.t)
	}
}

func TestSamplePaletteWraps(t *testing.T) {
	last := palettes[len(palettes)-1]
	first := palettes[0]
	mid := (last.t + 1) / 2

	p := samplePalette(mid)
	assert.InDelta(t, (last.lightIntensity+first.lightIntensity)/2, p.lightIntensity, 1e-5)
}

func TestDayNightApply(t *testing.T) {
	dn := NewDayNight()
	dn.Time = 0.5
	light := scene.DefaultLight()
	style := renderer.Style{}

	sky := dn.Apply(&light, &style)

	assert.Equal(t, palettes[3].sky, sky)
	assert.Equal(t, palettes[3].lightIntensity, light.Intensity)
	assert.Equal(t, palettes[3].floodIntensity, style.FloodLightIntensity)
	assert.Equal(t, palettes[3].floodColor.RGB(), style.FloodLightColor)
}

func TestDayNightUpdateWraps(t *testing.T) {
	dn := NewDayNight()
	dn.Time = 0.99
	dn.Update(dn.Speed * 0.02)
	assert.InDelta(t, 0.01, dn.Time, 1e-5)

	dn.Active = false
	dn.Update(10)
	assert.InDelta(t, 0.01, dn.Time, 1e-5)
}

func TestTimeOfDayStr(t *testing.T) {
	dn := &DayNight{Time: 0}
	assert.Equal(t, "12:00", dn.TimeOfDayStr())
	dn.Time = 0.5
	assert.Equal(t, "00:00", dn.TimeOfDayStr())
}

func TestBoxVertices(t *testing.T) {
	v := boxVertices(0, 0, 10, 20, 30, core.ColorWhite)
	require.Len(t, v, 30)

	for i, vert := range v[:6] {
		assert.Equal(t, float32(1), vert.Top, "roof vertex %d", i)
		assert.Equal(t, [3]float32{0, 0, 1}, vert.Normal)
	}
	for _, vert := range v {
		assert.Equal(t, [2]float32{0, 30}, vert.BaseHeight)
		assert.Equal(t, brickPattern, vert.Pattern)
	}
}

func TestBoxVerticesEdgeDistanceRunsAroundRing(t *testing.T) {
	v := boxVertices(0, 0, 10, 20, 30, core.ColorWhite)
	walls := v[6:]

	// each wall quad starts where the previous one ended
	var edge float32
	for i := 0; i < 4; i++ {
		quad := walls[i*6 : i*6+6]
		assert.Equal(t, edge, quad[0].EdgeDistance, "wall %d", i)
		edge = quad[1].EdgeDistance
	}
	assert.Equal(t, float32(60), edge)
	for _, vert := range v[:6] {
		assert.Zero(t, vert.EdgeDistance)
	}
}

func TestGroundVertices(t *testing.T) {
	v := groundVertices(0, 0, 10, 20, 12)
	require.Len(t, v, 24)

	var inner, outer int
	for _, vert := range v {
		assert.Equal(t, float32(12), vert.FloodRadius)
		switch vert.Normal {
		case [2]float32{}:
			inner++
		case [2]float32{0, -1}, [2]float32{1, 0}, [2]float32{0, 1}, [2]float32{-1, 0}:
			outer++
		default:
			t.Errorf("unexpected normal %v", vert.Normal)
		}
	}
	assert.Equal(t, 12, inner)
	assert.Equal(t, 12, outer)

	assert.Len(t, blockGroundVertices(3, 5), 9*24)
}

func TestBrickAtlas(t *testing.T) {
	px := brickAtlas()
	require.Len(t, px, atlasSize*atlasSize*4)
	for i := 3; i < len(px); i += 4 {
		require.Equal(t, uint8(255), px[i], "alpha at byte %d", i)
	}
	// row 0 is mortar, row 1 brick
	assert.Equal(t, uint8(200), px[0])
	assert.Equal(t, uint8(168), px[(atlasSize+1)*4])
}

func TestResolveLogLevel(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{}
		cmd.Flags().StringVar(&logLevel, "log-level", "info", "")
		return cmd
	}
	cfg := scene.DefaultConfig()
	cfg.Logging.Level = "debug"

	level, err := resolveLogLevel(newCmd(), &cfg)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("log-level", "error"))
	level, err = resolveLogLevel(cmd, &cfg)
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, level)

	cmd = newCmd()
	require.NoError(t, cmd.Flags().Set("log-level", "loud"))
	_, err = resolveLogLevel(cmd, &cfg)
	assert.Error(t, err)
}

func TestBlockVerticesStayInsideTile(t *testing.T) {
	v := blockVertices(4, core.ColorWhite)
	require.Len(t, v, 16*30)
	for _, vert := range v {
		assert.True(t, vert.Pos[0] >= 0 && vert.Pos[0] <= scene.Extent)
		assert.True(t, vert.Pos[1] >= 0 && vert.Pos[1] <= scene.Extent)
	}
}

func TestCameraAnimationMorphsProjection(t *testing.T) {
	tr := scene.NewTransform(scene.Globe{})
	tr.SetZoom(5.5)
	anim := newCameraAnimation(tr)
	require.True(t, anim.morph)

	seen := map[scene.ProjectionName]bool{}
	for i := 0; i < 600; i++ {
		anim.Update(tr, 1.0/60)
		seen[tr.Projection().Name()] = true
		if tr.Projection().Name() == scene.ProjectionMercator {
			assert.Equal(t, float32(1), tr.ZoomTransition())
		}
	}
	assert.True(t, seen[scene.ProjectionGlobe])
	assert.True(t, seen[scene.ProjectionMercator])
}

func TestCameraAnimationKeepsMercator(t *testing.T) {
	tr := scene.NewTransform(scene.Mercator{})
	tr.SetZoom(15)
	anim := newCameraAnimation(tr)

	anim.Update(tr, 1)
	assert.Equal(t, scene.ProjectionMercator, tr.Projection().Name())
	assert.Equal(t, 15.0, tr.Zoom())
	assert.InDelta(t, 0.2, tr.Angle(), 1e-9)
}

func TestTileMatrixCentersTile(t *testing.T) {
	tr := scene.NewTransform(nil)
	tr.SetZoom(1)
	// center of tile 1/1/1
	tr.SetCenter(90, scene.LatFromMercatorY(0.75))
	tile := scene.Tile{ID: scene.NewOverscaledTileID(1, 0, 1, 1, 1), TileSize: 512}

	m := tileClipMatrix(tr, tile, 1)
	p := m.Mul4x1(mgl32.Vec4{scene.Extent / 2, scene.Extent / 2, 0, 1})
	assert.InDelta(t, 0, p.X()/p.W(), 1e-3)
	assert.InDelta(t, 0, p.Y()/p.W(), 1e-3)

	assert.Equal(t, math.Mat4FromMGL(m), tileMatrix(tr, tile, 1))
}

func TestSampleScenesLoad(t *testing.T) {
	paths, err := filepath.Glob("scenes/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, p := range paths {
		cfg, err := scene.LoadConfig(p)
		require.NoError(t, err, p)
		_, err = cfg.Scene()
		require.NoError(t, err, p)
		assert.NotEmpty(t, cfg.Tiles, p)
	}
}
