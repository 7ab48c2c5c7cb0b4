package opengl

import (
	"fmt"

	"go.uber.org/zap"

	"fill-extrusion/program"
)

// ExtrusionPrograms holds the four linked fill-extrusion programs.
type ExtrusionPrograms struct {
	Standard *Program
	Pattern  *Program
	Depth    *Program
	Ground   *Program
}

// NewExtrusionPrograms links every fill-extrusion program. A GL context must
// be current on the calling thread.
func NewExtrusionPrograms(logger *zap.Logger) (*ExtrusionPrograms, error) {
	ps := &ExtrusionPrograms{}
	passes := []struct {
		dst    **Program
		src    Sources
		schema program.Schema
	}{
		{&ps.Standard, FillExtrusionSources, program.FillExtrusionSchema()},
		{&ps.Pattern, FillExtrusionPatternSources, program.FillExtrusionPatternSchema()},
		{&ps.Depth, FillExtrusionDepthSources, program.FillExtrusionDepthSchema()},
		{&ps.Ground, FillExtrusionGroundEffectSources, program.FillExtrusionGroundEffectSchema()},
	}

	for _, s := range passes {
		p, err := NewProgram(s.src.Vertex, s.src.Fragment, s.schema, logger)
		if err != nil {
			ps.Destroy()
			return nil, fmt.Errorf("link extrusion programs: %w", err)
		}
		*s.dst = p
	}
	return ps, nil
}

// Destroy frees every linked program.
func (ps *ExtrusionPrograms) Destroy() {
	for _, p := range []*Program{ps.Standard, ps.Pattern, ps.Depth, ps.Ground} {
		if p != nil {
			p.Destroy()
		}
	}
}
