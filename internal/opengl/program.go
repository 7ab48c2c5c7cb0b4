package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"fill-extrusion/math"
	"fill-extrusion/program"
)

// Program is a linked GL program whose active uniforms were checked against
// a program.Schema. It implements program.Binder for the uniforms of that
// schema.
type Program struct {
	ID     uint32
	Schema program.Schema

	locations map[string]int32
	warned    map[string]bool
	logger    *zap.Logger
}

// NewProgram compiles and links vertSrc/fragSrc, then verifies the linked
// program declares exactly the uniforms in schema.
func NewProgram(vertSrc, fragSrc string, schema program.Schema, logger *zap.Logger) (*Program, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	id, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.Name, err)
	}

	declared, err := activeUniforms(id)
	if err != nil {
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%s: %w", schema.Name, err)
	}
	if err := program.Verify(schema, declared); err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}

	p := &Program{
		ID:        id,
		Schema:    schema,
		locations: make(map[string]int32, len(schema.Slots)),
		warned:    make(map[string]bool),
		logger:    logger.With(zap.String("program", schema.Name)),
	}
	for _, slot := range schema.Slots {
		p.locations[slot.Name] = gl.GetUniformLocation(id, gl.Str(slot.Name+"\x00"))
	}
	p.logger.Debug("program linked", zap.Uint32("id", id), zap.Int("uniforms", len(declared)))
	return p, nil
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Destroy frees the GL program.
func (p *Program) Destroy() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func (p *Program) location(name string) (int32, bool) {
	loc, ok := p.locations[name]
	if ok && loc != -1 {
		return loc, true
	}
	if !p.warned[name] {
		p.warned[name] = true
		p.logger.Warn("uniform not exposed by program", zap.String("uniform", name))
	}
	return -1, false
}

func (p *Program) Uniform1f(name string, v float32) {
	if loc, ok := p.location(name); ok {
		gl.Uniform1f(loc, v)
	}
}

func (p *Program) Uniform2f(name string, v math.Vec2) {
	if loc, ok := p.location(name); ok {
		gl.Uniform2f(loc, v.X, v.Y)
	}
}

func (p *Program) Uniform3f(name string, v math.Vec3) {
	if loc, ok := p.location(name); ok {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

func (p *Program) UniformMatrix4f(name string, v math.Mat4) {
	if loc, ok := p.location(name); ok {
		gl.UniformMatrix4fv(loc, 1, false, v.Ptr())
	}
}

func (p *Program) Uniform1i(name string, v int32) {
	if loc, ok := p.location(name); ok {
		gl.Uniform1i(loc, v)
	}
}

// activeUniforms lists the uniforms the linker kept, typed as schema slots.
func activeUniforms(prog uint32) ([]program.Slot, error) {
	var count, maxLen int32
	gl.GetProgramiv(prog, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(prog, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	buf := make([]uint8, maxLen+1)
	slots := make([]program.Slot, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(prog, i, int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])

		typ, err := slotType(xtype)
		if err != nil {
			return nil, fmt.Errorf("uniform %s: %w", name, err)
		}
		slots = append(slots, program.Slot{Name: name, Type: typ})
	}
	return slots, nil
}

func slotType(xtype uint32) (program.SlotType, error) {
	switch xtype {
	case gl.FLOAT:
		return program.Float, nil
	case gl.FLOAT_VEC2:
		return program.Vec2, nil
	case gl.FLOAT_VEC3:
		return program.Vec3, nil
	case gl.FLOAT_MAT4:
		return program.Mat4, nil
	case gl.SAMPLER_2D:
		return program.Sampler, nil
	default:
		return 0, fmt.Errorf("unsupported GL type 0x%X", xtype)
	}
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
