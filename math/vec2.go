package math

// Vec2 is a two-component float32 vector, laid out as a GLSL vec2.
type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}
