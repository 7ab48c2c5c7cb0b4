package scene

import (
	"errors"
	"fmt"
	stdmath "math"

	"fill-extrusion/core"
	"fill-extrusion/math"
)

var ErrUnknownAnchor = errors.New("unknown light anchor")

// LightAnchor selects the frame the light position is expressed in.
type LightAnchor int

const (
	// AnchorMap keeps the light fixed relative to the map.
	AnchorMap LightAnchor = iota
	// AnchorViewport keeps the light fixed relative to the screen, so it
	// has to be counter-rotated by the camera bearing.
	AnchorViewport
)

func (a LightAnchor) String() string {
	switch a {
	case AnchorMap:
		return "map"
	case AnchorViewport:
		return "viewport"
	default:
		return fmt.Sprintf("LightAnchor(%d)", int(a))
	}
}

func ParseLightAnchor(s string) (LightAnchor, error) {
	switch s {
	case "map":
		return AnchorMap, nil
	case "viewport", "":
		return AnchorViewport, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAnchor, s)
	}
}

// Light is the directional light applied to extrusions.
type Light struct {
	Position  math.Vec3 // cartesian, map space
	Intensity float32
	Color     core.Color
	Anchor    LightAnchor
}

// DefaultLight matches the style defaults: position [1.15, 210, 30],
// intensity 0.5, white, viewport anchored.
func DefaultLight() Light {
	return Light{
		Position:  LightPositionFromSpherical(1.15, 210, 30),
		Intensity: 0.5,
		Color:     core.ColorWhite,
		Anchor:    AnchorViewport,
	}
}

// LightPositionFromSpherical converts a [radial, azimuthal, polar] light
// position (angles in degrees, azimuth measured clockwise from north) to map
// space cartesian coordinates.
func LightPositionFromSpherical(radial, azimuthal, polar float64) math.Vec3 {
	az := (azimuthal + 90) * stdmath.Pi / 180
	po := polar * stdmath.Pi / 180
	return math.Vec3{
		X: float32(radial * stdmath.Cos(az) * stdmath.Sin(po)),
		Y: float32(radial * stdmath.Sin(az) * stdmath.Sin(po)),
		Z: float32(radial * stdmath.Cos(po)),
	}
}

// Scene is the per-frame state the extrusion passes read.
type Scene struct {
	Transform *Transform
	Light     Light
}
