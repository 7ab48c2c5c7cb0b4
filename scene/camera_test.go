package scene

import (
	stdmath "math"
	"testing"
)

func TestTransformDefaults(t *testing.T) {
	tr := NewTransform(nil)
	if tr.Projection().Name() != ProjectionMercator {
		t.Errorf("expected mercator, got %v", tr.Projection().Name())
	}
	if tr.Angle() != 0 {
		t.Errorf("expected angle 0, got %v", tr.Angle())
	}
}

func TestTransformRotateWraps(t *testing.T) {
	tr := NewTransform(Mercator{})
	tr.SetAngle(3 * stdmath.Pi / 2)
	tr.Rotate(stdmath.Pi)
	if got := tr.Angle(); stdmath.Abs(got-stdmath.Pi/2) > 1e-9 {
		t.Errorf("expected pi/2, got %v", got)
	}
}

func TestZoomTransition(t *testing.T) {
	tests := []struct {
		zoom float64
		want float32
	}{
		{2, 0},
		{GlobeZoomThresholdMin, 0},
		{5.5, 0.5},
		{GlobeZoomThresholdMax, 1},
		{14, 1},
	}
	tr := NewTransform(Globe{})
	for _, tt := range tests {
		tr.SetZoom(tt.zoom)
		if got := tr.ZoomTransition(); got != tt.want {
			t.Errorf("zoom %v: expected %v, got %v", tt.zoom, tt.want, got)
		}
	}
}

func TestTileZoomFloors(t *testing.T) {
	tr := NewTransform(Mercator{})
	tr.SetZoom(15.7)
	if tr.TileZoom() != 15 {
		t.Errorf("expected 15, got %v", tr.TileZoom())
	}
}

func TestMercatorCenter(t *testing.T) {
	tr := NewTransform(Globe{})
	tr.SetCenter(0, 0)
	c := tr.MercatorCenter()
	if c.X != 0.5 || !near(c.Y, 0.5) {
		t.Errorf("expected (0.5,0.5), got %v", c)
	}
}

func TestGlobeInverseRotationAtOrigin(t *testing.T) {
	tr := NewTransform(Globe{})
	m := tr.GlobeInverseRotation()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if !near(m[i][j], want) {
				t.Fatalf("expected identity at (0,0), got %v", m)
			}
		}
	}
}
