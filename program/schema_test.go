package program

import (
	"errors"
	"strings"
	"testing"

	"fill-extrusion/math"
	"fill-extrusion/scene"
)

func sampleRecords() []Uniforms {
	tr := scene.NewTransform(scene.Globe{})
	light := scene.DefaultLight()
	p := sampleParams()
	tile := scene.Tile{ID: p.Coord, TileSize: 512}
	return []Uniforms{
		FillExtrusionUniformValues(tr, light, p),
		FillExtrusionDepthUniformValues(p.Matrix, 0.5, 1),
		FillExtrusionPatternUniformValues(tr, light, p, tile, PatternExtrasForTile(tile, 15, math.NewVec2(256, 128), 0.9)),
		FillExtrusionGroundEffectUniformValues(GroundEffectParams{Matrix: p.Matrix, AOPass: true}),
	}
}

func TestBindMatchesSchema(t *testing.T) {
	for _, u := range sampleRecords() {
		schema := u.Schema()
		t.Run(schema.Name, func(t *testing.T) {
			r := bindAll(u)
			if len(r.dupes) > 0 {
				t.Errorf("slots bound twice: %v", r.dupes)
			}
			if len(r.order) != len(schema.Slots) {
				t.Fatalf("bound %d slots, schema has %d", len(r.order), len(schema.Slots))
			}
			for i, slot := range schema.Slots {
				if r.order[i] != slot.Name {
					t.Errorf("slot %d: bound %s, schema says %s", i, r.order[i], slot.Name)
				}
				if got := r.values[slot.Name].Type; got != slot.Type {
					t.Errorf("%s: bound as %v, schema says %v", slot.Name, got, slot.Type)
				}
			}
		})
	}
}

func TestSchemasHaveUniqueNames(t *testing.T) {
	schemas := []Schema{
		FillExtrusionSchema(),
		FillExtrusionDepthSchema(),
		FillExtrusionPatternSchema(),
		FillExtrusionGroundEffectSchema(),
	}
	for _, s := range schemas {
		seen := make(map[string]bool)
		for _, slot := range s.Slots {
			if seen[slot.Name] {
				t.Errorf("%s: duplicate slot %s", s.Name, slot.Name)
			}
			seen[slot.Name] = true
		}
	}
}

func TestSchemaLookup(t *testing.T) {
	s := FillExtrusionPatternSchema()
	slot, ok := s.Lookup(UImage)
	if !ok || slot.Type != Sampler {
		t.Errorf("expected u_image sampler, got %v %v", slot, ok)
	}
	if _, ok := s.Lookup(UAOPass); ok {
		t.Error("pattern schema should not declare u_ao_pass")
	}
}

func TestVerify(t *testing.T) {
	schema := FillExtrusionDepthSchema()

	if err := Verify(schema, schema.Slots); err != nil {
		t.Fatalf("expected matching interface, got %v", err)
	}

	declared := []Slot{
		{UMatrix, Mat4},
		{UEdgeRadius, Vec2},
		{UOpacity, Float},
	}
	err := Verify(schema, declared)
	if !errors.Is(err, ErrInterfaceMismatch) {
		t.Fatalf("expected ErrInterfaceMismatch, got %v", err)
	}
	for _, want := range []string{
		"u_vertical_scale missing",
		"u_edge_radius is vec2, want float",
		"u_opacity not in schema",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestBoolToUniform(t *testing.T) {
	if BoolToUniform(true) != 1 {
		t.Error("true must encode as 1")
	}
	if BoolToUniform(false) != 0 {
		t.Error("false must encode as 0")
	}
}

func TestSlotTypeString(t *testing.T) {
	if Sampler.String() != "sampler2D" || Mat4.String() != "mat4" {
		t.Errorf("unexpected names %v %v", Sampler, Mat4)
	}
}
