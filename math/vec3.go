package math

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is a three-component float32 vector, laid out as a GLSL vec3.
type Vec3 struct {
	X, Y, Z float32
}

var (
	Vec3Zero = Vec3{0, 0, 0}
	Vec3Up   = Vec3{0, 0, 1} // map space: Z points away from the ground
)

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Vec3FromMGL converts the result of mgl32 arithmetic back into a slot value.
func Vec3FromMGL(v mgl32.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vec3) MGL() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
