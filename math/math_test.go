package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if m[i][j] != expected {
				t.Errorf("Identity: expected [%d][%d] = %v, got %v", i, j, expected, m[i][j])
			}
		}
	}

	if got := Mat4FromMGL(mgl32.Ident4()); got != m {
		t.Errorf("FromMGL(Ident4): expected %v, got %v", m, got)
	}
}

func TestMat4FromMGLKeepsColumnMajor(t *testing.T) {
	m := Mat4FromMGL(mgl32.Translate3D(10, 20, 30))
	if m[3][0] != 10 || m[3][1] != 20 || m[3][2] != 30 {
		t.Errorf("FromMGL: expected translation in column 3, got %v", m)
	}

	// mgl32 stores element i at column i/4, row i%4.
	src := mgl32.HomogRotate3DZ(0.7).Mul4(mgl32.Scale3D(2, 3, 4))
	got := Mat4FromMGL(src)
	for i := range src {
		if got[i/4][i%4] != src[i] {
			t.Errorf("FromMGL: element %d expected %v, got %v", i, src[i], got[i/4][i%4])
		}
	}
	if got.Ptr() != &got[0][0] {
		t.Error("Ptr: expected the first element")
	}
}

func TestVec3MGLRoundTrip(t *testing.T) {
	v := NewVec3(1, -2, 3.5)
	if got := Vec3FromMGL(v.MGL()); got != v {
		t.Errorf("MGL round trip: expected %v, got %v", v, got)
	}
}

func TestMGLRotationConvention(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		in    Vec3
		want  Vec3
	}{
		{"zero", 0, NewVec3(1, 2, 3), NewVec3(1, 2, 3)},
		{"quarter turn", math.Pi / 2, NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"negative quarter turn", -math.Pi / 2, NewVec3(1, 0, 0), NewVec3(0, -1, 0)},
		{"half turn keeps z", math.Pi, NewVec3(1, 1, 5), NewVec3(-1, -1, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vec3FromMGL(mgl32.Rotate3DZ(tt.angle).Mul3x1(tt.in.MGL()))
			if !approxEqual(got.X, tt.want.X) || !approxEqual(got.Y, tt.want.Y) || !approxEqual(got.Z, tt.want.Z) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func BenchmarkMat4FromMGL(b *testing.B) {
	m := mgl32.Translate3D(1, 2, 3)
	for i := 0; i < b.N; i++ {
		_ = Mat4FromMGL(m)
	}
}
