package program

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"fill-extrusion/math"
)

func TestDepthPassFields(t *testing.T) {
	m := math.Mat4FromMGL(mgl32.Scale3D(2, 2, 2))
	u := FillExtrusionDepthUniformValues(m, 0.75, 1.25)

	want := FillExtrusionDepthUniforms{Matrix: m, EdgeRadius: 0.75, VerticalScale: 1.25}
	if u != want {
		t.Errorf("expected %+v, got %+v", want, u)
	}

	r := bindAll(u)
	if len(r.values) != 3 {
		t.Fatalf("expected exactly 3 slots, got %v", r.order)
	}
	for _, name := range []string{UMatrix, UEdgeRadius, UVerticalScale} {
		if _, ok := r.values[name]; !ok {
			t.Errorf("missing %s", name)
		}
	}
	for _, name := range []string{ULightPos, ULightColor, UOpacity, UTexSize, UImage, UHeightFactor} {
		if _, ok := r.values[name]; ok {
			t.Errorf("depth pass must not bind %s", name)
		}
	}
}
