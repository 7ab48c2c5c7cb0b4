package renderer

import (
	"go.uber.org/zap"

	"fill-extrusion/math"
	"fill-extrusion/program"
	"fill-extrusion/scene"
)

// Pass identifies one of the draws issued for a tile.
type Pass int

const (
	PassDepth Pass = iota
	PassStandard
	PassPattern
	PassGroundAO
	PassGroundFlood
)

func (p Pass) String() string {
	switch p {
	case PassDepth:
		return "depth"
	case PassStandard:
		return "standard"
	case PassPattern:
		return "pattern"
	case PassGroundAO:
		return "ground-ao"
	case PassGroundFlood:
		return "ground-flood"
	}
	return "unknown"
}

// PassProgram is a linked program that can be made current and fed uniforms.
type PassProgram interface {
	Use()
	program.Binder
}

// Programs holds one program per pass kind.
type Programs struct {
	Standard PassProgram
	Pattern  PassProgram
	Depth    PassProgram
	Ground   PassProgram
}

// TextureSource is a texture that can be bound to a sampler unit.
type TextureSource interface {
	BindTexture(unit int32)
}

// Textures are the samplers the passes read. Ground is the offscreen target
// of the ground passes and Atlas the pattern image. Either may be nil when
// the matching pass never runs.
type Textures struct {
	Ground TextureSource
	Atlas  TextureSource
}

// SubmitFunc issues the geometry of draw once the pass's uniforms are bound.
type SubmitFunc func(pass Pass, draw TileDraw)

// Style is the fill-extrusion paint state shared by every tile in a frame.
type Style struct {
	Opacity             float32
	VerticalGradient    bool
	AO                  math.Vec2 // intensity, radius
	EdgeRadius          float32
	VerticalScale       float32
	FloodLightColor     math.Vec3
	FloodLightIntensity float32
	GroundShadowFactor  math.Vec3
	PatternOpacity      float32
	AtlasSize           math.Vec2
}

type GroundEffect struct {
	Enabled         bool
	Opacity         float32
	Attenuation     float32
	FramebufferSize float32
}

// Frame is everything that stays fixed while the tiles of one frame draw.
type Frame struct {
	Transform    *scene.Transform
	Light        scene.Light
	Style        Style
	HeightLift   float32
	DepthPrepass bool
	GroundEffect GroundEffect
}

// TileDraw is one tile's worth of extrusion geometry.
type TileDraw struct {
	Tile    scene.Tile
	Matrix  math.Mat4
	Pattern bool
}

// Stats counts the work of the last Draw call.
type Stats struct {
	Tiles  int
	Passes int
}

// ExtrusionRenderer sequences the fill-extrusion passes for each tile and
// binds a freshly built uniform record before every submit.
type ExtrusionRenderer struct {
	programs Programs
	textures Textures
	submit   SubmitFunc
	logger   *zap.Logger

	last Stats
}

// NewExtrusionRenderer wires the pass programs to a submit callback.
func NewExtrusionRenderer(programs Programs, textures Textures, submit SubmitFunc, logger *zap.Logger) *ExtrusionRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if submit == nil {
		submit = func(Pass, TileDraw) {}
	}
	return &ExtrusionRenderer{
		programs: programs,
		textures: textures,
		submit:   submit,
		logger:   logger,
	}
}

// FrameFromConfig builds the per-frame state described by cfg around the
// camera and light of sc.
func FrameFromConfig(cfg *scene.Config, sc *scene.Scene) Frame {
	e := cfg.Extrusion
	g := cfg.GroundEffect
	return Frame{
		Transform: sc.Transform,
		Light:     sc.Light,
		Style: Style{
			Opacity:             e.Opacity,
			VerticalGradient:    e.VerticalGradient,
			AO:                  math.NewVec2(e.AOIntensity, e.AORadius),
			EdgeRadius:          e.EdgeRadius,
			VerticalScale:       e.VerticalScale,
			FloodLightColor:     scene.ArrayToVec3(e.FloodLightColor),
			FloodLightIntensity: e.FloodLightIntensity,
			GroundShadowFactor:  scene.ArrayToVec3(e.GroundShadowFactor),
			PatternOpacity:      cfg.Pattern.Opacity,
			AtlasSize:           scene.ArrayToVec2(cfg.Pattern.AtlasSize),
		},
		HeightLift:   cfg.Globe.HeightLift,
		DepthPrepass: e.DepthPrepass,
		GroundEffect: GroundEffect{
			Enabled:         g.Enabled,
			Opacity:         g.Opacity,
			Attenuation:     g.Attenuation,
			FramebufferSize: g.FramebufferSize,
		},
	}
}

// GlobeState samples the transform's globe inputs for this frame.
func (f Frame) GlobeState() program.GlobeState {
	tr := f.Transform
	return program.GlobeState{
		ZoomTransition: tr.ZoomTransition(),
		InvRotMatrix:   tr.GlobeInverseRotation(),
		MercatorCenter: tr.MercatorCenter(),
		HeightLift:     f.HeightLift,
	}
}

// Draw renders draws in order. Each tile gets its depth pass, then its
// pattern or standard pass, then the two ground passes.
func (r *ExtrusionRenderer) Draw(frame Frame, draws []TileDraw) Stats {
	globe := frame.GlobeState()
	stats := Stats{}

	for _, d := range draws {
		if frame.DepthPrepass {
			r.pass(PassDepth, d, program.FillExtrusionDepthUniformValues(
				d.Matrix, frame.Style.EdgeRadius, frame.Style.VerticalScale))
			stats.Passes++
		}

		params := r.extrusionParams(frame, d, globe)
		if d.Pattern {
			pattern := program.PatternExtrasForTile(d.Tile, frame.Transform.TileZoom(),
				frame.Style.AtlasSize, frame.Style.PatternOpacity)
			// the ground passes of an earlier tile may have left their
			// framebuffer on the atlas unit
			if r.textures.Atlas != nil {
				r.textures.Atlas.BindTexture(pattern.Image)
			}
			r.pass(PassPattern, d, program.FillExtrusionPatternUniformValues(
				frame.Transform, frame.Light, params, d.Tile, pattern))
		} else {
			r.pass(PassStandard, d, program.FillExtrusionUniformValues(
				frame.Transform, frame.Light, params))
		}
		stats.Passes++

		if frame.GroundEffect.Enabled {
			if r.textures.Ground != nil {
				r.textures.Ground.BindTexture(program.GroundFramebufferUnit)
			}
			r.pass(PassGroundAO, d, program.FillExtrusionGroundEffectUniformValues(r.groundParams(frame, d, true)))
			r.pass(PassGroundFlood, d, program.FillExtrusionGroundEffectUniformValues(r.groundParams(frame, d, false)))
			stats.Passes += 2
		}
		stats.Tiles++
	}

	r.last = stats
	r.logger.Debug("extrusion frame drawn",
		zap.Int("tiles", stats.Tiles),
		zap.Int("passes", stats.Passes),
		zap.String("projection", string(projectionName(frame.Transform.Projection()))))
	return stats
}

// projectionName reports a transform without a projection as mercator,
// matching how the uniform records treat it.
func projectionName(p scene.Projection) scene.ProjectionName {
	if p == nil {
		return scene.ProjectionMercator
	}
	return p.Name()
}

// LastStats returns the counts of the most recent Draw.
func (r *ExtrusionRenderer) LastStats() Stats { return r.last }

func (r *ExtrusionRenderer) pass(pass Pass, d TileDraw, u program.Uniforms) {
	p := r.program(pass)
	if p == nil {
		r.logger.Warn("no program for pass", zap.Stringer("pass", pass))
		return
	}
	p.Use()
	u.Bind(p)
	r.submit(pass, d)
}

func (r *ExtrusionRenderer) program(pass Pass) PassProgram {
	switch pass {
	case PassDepth:
		return r.programs.Depth
	case PassStandard:
		return r.programs.Standard
	case PassPattern:
		return r.programs.Pattern
	case PassGroundAO, PassGroundFlood:
		return r.programs.Ground
	}
	return nil
}

func (r *ExtrusionRenderer) extrusionParams(frame Frame, d TileDraw, globe program.GlobeState) program.FillExtrusionParams {
	s := frame.Style
	return program.FillExtrusionParams{
		Matrix:              d.Matrix,
		VerticalGradient:    s.VerticalGradient,
		Opacity:             s.Opacity,
		AO:                  s.AO,
		EdgeRadius:          s.EdgeRadius,
		Coord:               d.Tile.ID,
		Globe:               globe,
		FloodLightColor:     s.FloodLightColor,
		VerticalScale:       s.VerticalScale,
		FloodLightIntensity: s.FloodLightIntensity,
		GroundShadowFactor:  s.GroundShadowFactor,
	}
}

func (r *ExtrusionRenderer) groundParams(frame Frame, d TileDraw, aoPass bool) program.GroundEffectParams {
	s := frame.Style
	return program.GroundEffectParams{
		Matrix:              d.Matrix,
		Opacity:             frame.GroundEffect.Opacity,
		AOPass:              aoPass,
		MeterToTile:         float32(d.Tile.MeterToTile()),
		AO:                  s.AO,
		FloodLightIntensity: s.FloodLightIntensity,
		FloodLightColor:     s.FloodLightColor,
		Attenuation:         frame.GroundEffect.Attenuation,
		EdgeRadius:          s.EdgeRadius,
		FramebufferSize:     frame.GroundEffect.FramebufferSize,
	}
}
