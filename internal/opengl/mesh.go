package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// ExtrusionVertex matches the attribute layout of the fill-extrusion
// vertex shaders. The standard and depth programs ignore the pattern
// attributes.
type ExtrusionVertex struct {
	Pos          [2]float32 // tile units
	Normal       [3]float32
	BaseHeight   [2]float32 // base, height in meters
	Top          float32    // 1 on the roof ring
	Color        [4]float32
	Pattern      [4]float32 // atlas tl.xy, br.xy in pixels
	EdgeDistance float32    // distance along the footprint ring, tile units
}

// GroundVertex matches the attribute layout of the ground-effect vertex
// shader. Inner vertices sit on the footprint with a zero normal; outer
// vertices carry the outward normal they are pushed along.
type GroundVertex struct {
	Pos         [2]float32 // tile units
	Normal      [2]float32
	FloodRadius float32 // meters
}

// VertexAttrib is one float attribute of an interleaved vertex.
type VertexAttrib struct {
	Name     string
	Location uint32
	Size     int32
	Offset   uintptr
}

var (
	extrusionVertex ExtrusionVertex
	groundVertex    GroundVertex
)

// ExtrusionAttribs lists the attributes of ExtrusionVertex by shader location.
var ExtrusionAttribs = []VertexAttrib{
	{"a_pos", 0, 2, unsafe.Offsetof(extrusionVertex.Pos)},
	{"a_normal", 1, 3, unsafe.Offsetof(extrusionVertex.Normal)},
	{"a_base_height", 2, 2, unsafe.Offsetof(extrusionVertex.BaseHeight)},
	{"a_top", 3, 1, unsafe.Offsetof(extrusionVertex.Top)},
	{"a_color", 4, 4, unsafe.Offsetof(extrusionVertex.Color)},
	{"a_pattern", 5, 4, unsafe.Offsetof(extrusionVertex.Pattern)},
	{"a_edge_distance", 6, 1, unsafe.Offsetof(extrusionVertex.EdgeDistance)},
}

// GroundAttribs lists the attributes of GroundVertex by shader location.
var GroundAttribs = []VertexAttrib{
	{"a_pos", 0, 2, unsafe.Offsetof(groundVertex.Pos)},
	{"a_normal", 1, 2, unsafe.Offsetof(groundVertex.Normal)},
	{"a_flood_radius", 2, 1, unsafe.Offsetof(groundVertex.FloodRadius)},
}

// GPUMesh is an uploaded vertex buffer.
type GPUMesh struct {
	VAO         uint32
	VBO         uint32
	VertexCount int32
}

// UploadExtrusionMesh copies vertices into a new VAO/VBO pair.
func UploadExtrusionMesh(vertices []ExtrusionVertex) *GPUMesh {
	if len(vertices) == 0 {
		return nil
	}
	return upload(gl.Ptr(vertices), len(vertices), int32(unsafe.Sizeof(extrusionVertex)), ExtrusionAttribs)
}

// UploadGroundMesh copies ground-effect vertices into a new VAO/VBO pair.
func UploadGroundMesh(vertices []GroundVertex) *GPUMesh {
	if len(vertices) == 0 {
		return nil
	}
	return upload(gl.Ptr(vertices), len(vertices), int32(unsafe.Sizeof(groundVertex)), GroundAttribs)
}

func upload(data unsafe.Pointer, count int, stride int32, attribs []VertexAttrib) *GPUMesh {
	gpu := &GPUMesh{VertexCount: int32(count)}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, count*int(stride), data, gl.STATIC_DRAW)

	for _, a := range attribs {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, stride, gl.PtrOffset(int(a.Offset)))
	}

	gl.BindVertexArray(0)
	return gpu
}

// Draw issues the mesh as a triangle list with whatever program is current.
func (m *GPUMesh) Draw() {
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, m.VertexCount)
	gl.BindVertexArray(0)
}

func (m *GPUMesh) Destroy() {
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}
