// Package program derives the uniform values for the fill-extrusion shader
// programs. Every builder is a pure function of its arguments: records are
// built fresh for one draw call and handed straight to a Binder.
package program

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fill-extrusion/math"
)

// SlotType is the GLSL type of a uniform slot.
type SlotType int

const (
	Float   SlotType = iota // float
	Vec2                    // vec2
	Vec3                    // vec3
	Mat4                    // mat4
	Sampler                 // sampler2D, bound as a texture unit index
)

func (t SlotType) String() string {
	switch t {
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Mat4:
		return "mat4"
	case Sampler:
		return "sampler2D"
	default:
		return fmt.Sprintf("SlotType(%d)", int(t))
	}
}

// Uniform names shared with the GLSL sources.
const (
	UMatrix              = "u_matrix"
	ULightPos            = "u_lightpos"
	ULightIntensity      = "u_lightintensity"
	ULightColor          = "u_lightcolor"
	UVerticalGradient    = "u_vertical_gradient"
	UOpacity             = "u_opacity"
	UTileID              = "u_tile_id"
	UZoomTransition      = "u_zoom_transition"
	UInvRotMatrix        = "u_inv_rot_matrix"
	UMercCenter          = "u_merc_center"
	UUpDir               = "u_up_dir"
	UHeightLift          = "u_height_lift"
	UAO                  = "u_ao"
	UEdgeRadius          = "u_edge_radius"
	UFloodLightColor     = "u_flood_light_color"
	UVerticalScale       = "u_vertical_scale"
	UFloodLightIntensity = "u_flood_light_intensity"
	UGroundShadowFactor  = "u_ground_shadow_factor"
	UHeightFactor        = "u_height_factor"
	UTexSize             = "u_texsize"
	UImage               = "u_image"
	UPixelCoordUpper     = "u_pixel_coord_upper"
	UPixelCoordLower     = "u_pixel_coord_lower"
	UTileUnitsToPixels   = "u_tile_units_to_pixels"
	UAOPass              = "u_ao_pass"
	UMeterToTile         = "u_meter_to_tile"
	UAttenuation         = "u_attenuation"
	UFB                  = "u_fb"
	UFBSize              = "u_fb_size"
)

// Slot is one named, typed uniform.
type Slot struct {
	Name string
	Type SlotType
}

// Schema is the fixed uniform interface of one shader program.
type Schema struct {
	Name  string
	Slots []Slot
}

// Lookup returns the slot called name.
func (s Schema) Lookup(name string) (Slot, bool) {
	for _, slot := range s.Slots {
		if slot.Name == name {
			return slot, true
		}
	}
	return Slot{}, false
}

// Binder uploads uniform values to the currently used program.
type Binder interface {
	Uniform1f(name string, v float32)
	Uniform2f(name string, v math.Vec2)
	Uniform3f(name string, v math.Vec3)
	UniformMatrix4f(name string, v math.Mat4)
	Uniform1i(name string, v int32)
}

// Uniforms is implemented by every per-pass record. Bind sets each slot of
// Schema exactly once, in schema order.
type Uniforms interface {
	Schema() Schema
	Bind(b Binder)
}

// ErrInterfaceMismatch reports a schema that disagrees with the uniforms a
// linked program declares.
var ErrInterfaceMismatch = errors.New("uniform interface mismatch")

// Verify compares schema with the active uniforms of a linked program.
func Verify(schema Schema, declared []Slot) error {
	want := make(map[string]SlotType, len(schema.Slots))
	for _, s := range schema.Slots {
		want[s.Name] = s.Type
	}
	have := make(map[string]SlotType, len(declared))
	for _, s := range declared {
		have[s.Name] = s.Type
	}

	var problems []string
	for name, typ := range want {
		got, ok := have[name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s missing", name))
		case got != typ:
			problems = append(problems, fmt.Sprintf("%s is %v, want %v", name, got, typ))
		}
	}
	for name := range have {
		if _, ok := want[name]; !ok {
			problems = append(problems, fmt.Sprintf("%s not in schema", name))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s: %s", ErrInterfaceMismatch, schema.Name, strings.Join(problems, "; "))
}

// BoolToUniform encodes a flag as exactly 0 or 1.
func BoolToUniform(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
