package scene

import (
	"fmt"
	stdmath "math"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"fill-extrusion/core"
	"fill-extrusion/math"
)

// ── YAML data structures ──────────────────────────────────────────────────────

// Config is the on-disk description of a frame: camera, light, extrusion
// style and the tiles to draw.
type Config struct {
	Logging      LoggingConfig      `yaml:"logging"`
	Camera       CameraConfig       `yaml:"camera"`
	Light        LightConfig        `yaml:"light"`
	Globe        GlobeConfig        `yaml:"globe"`
	Extrusion    ExtrusionConfig    `yaml:"extrusion"`
	Pattern      PatternConfig      `yaml:"pattern"`
	GroundEffect GroundEffectConfig `yaml:"ground_effect"`
	Tiles        []TileConfig       `yaml:"tiles"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type CameraConfig struct {
	Bearing    float64    `yaml:"bearing"` // degrees
	Zoom       float64    `yaml:"zoom"`
	Center     [2]float64 `yaml:"center"` // lng, lat
	Projection string     `yaml:"projection"`
}

type LightConfig struct {
	Position  [3]float64 `yaml:"position"` // radial, azimuthal, polar
	Intensity float32    `yaml:"intensity"`
	Color     [3]float32 `yaml:"color"`
	Anchor    string     `yaml:"anchor"`
}

type GlobeConfig struct {
	HeightLift float32 `yaml:"height_lift"`
}

type ExtrusionConfig struct {
	Opacity             float32    `yaml:"opacity"`
	VerticalGradient    bool       `yaml:"vertical_gradient"`
	AOIntensity         float32    `yaml:"ao_intensity"`
	AORadius            float32    `yaml:"ao_radius"`
	EdgeRadius          float32    `yaml:"edge_radius"`
	VerticalScale       float32    `yaml:"vertical_scale"`
	FloodLightColor     [3]float32 `yaml:"flood_light_color"`
	FloodLightIntensity float32    `yaml:"flood_light_intensity"`
	GroundShadowFactor  [3]float32 `yaml:"ground_shadow_factor"`
	DepthPrepass        bool       `yaml:"depth_prepass"`

	// FloodLightGroundRadius is written into every ground vertex, meters.
	FloodLightGroundRadius float32 `yaml:"flood_light_ground_radius"`
}

type PatternConfig struct {
	AtlasSize [2]float32 `yaml:"atlas_size"`
	Opacity   float32    `yaml:"opacity"`
}

type GroundEffectConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Opacity         float32 `yaml:"opacity"`
	Attenuation     float32 `yaml:"attenuation"`
	FramebufferSize float32 `yaml:"framebuffer_size"`
}

type TileConfig struct {
	Z           int     `yaml:"z"`
	X           int     `yaml:"x"`
	Y           int     `yaml:"y"`
	OverscaledZ int     `yaml:"overscaled_z"`
	Wrap        int     `yaml:"wrap"`
	TileSize    float64 `yaml:"tile_size"`
	Pattern     bool    `yaml:"pattern"`
}

// DefaultConfig returns the style defaults used for any field a scene file
// leaves out.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Camera: CameraConfig{
			Zoom:       15,
			Projection: string(ProjectionMercator),
		},
		Light: LightConfig{
			Position:  [3]float64{1.15, 210, 30},
			Intensity: 0.5,
			Color:     [3]float32{1, 1, 1},
			Anchor:    AnchorViewport.String(),
		},
		Extrusion: ExtrusionConfig{
			Opacity:             1,
			VerticalGradient:    true,
			AOIntensity:         0,
			AORadius:            3,
			EdgeRadius:          0,
			VerticalScale:       1,
			FloodLightColor:     [3]float32{1, 1, 1},
			FloodLightIntensity: 0,
			DepthPrepass:        true,
		},
		Pattern: PatternConfig{
			AtlasSize: [2]float32{512, 512},
			Opacity:   1,
		},
		GroundEffect: GroundEffectConfig{
			Opacity:         1,
			Attenuation:     0.69,
			FramebufferSize: 512,
		},
	}
}

// ── Load / Save ───────────────────────────────────────────────────────────────

// LoadConfig reads a YAML scene file on top of DefaultConfig and validates
// the enumerated fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	cfg.applyTileDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes cfg as YAML to path.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene %q: %w", path, err)
	}
	return nil
}

func (c *Config) applyTileDefaults() {
	for i := range c.Tiles {
		t := &c.Tiles[i]
		if t.OverscaledZ < t.Z {
			t.OverscaledZ = t.Z
		}
		if t.TileSize == 0 {
			t.TileSize = 512
		}
	}
}

// LogLevel parses logging.level. An empty level is info.
func (c *Config) LogLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Logging.Level)
}

func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if _, err := ProjectionByName(c.Camera.Projection); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if _, err := ParseLightAnchor(c.Light.Anchor); err != nil {
		return fmt.Errorf("light: %w", err)
	}
	for i, t := range c.Tiles {
		if t.Z < 0 || t.Z > 30 {
			return fmt.Errorf("tile %d: zoom %d out of range", i, t.Z)
		}
		n := 1 << t.Z
		if t.X < 0 || t.X >= n || t.Y < 0 || t.Y >= n {
			return fmt.Errorf("tile %d: %d/%d/%d outside the tile grid", i, t.Z, t.X, t.Y)
		}
		if t.TileSize <= 0 {
			return fmt.Errorf("tile %d: tile size must be positive", i)
		}
	}
	return nil
}

// ── conversion helpers ────────────────────────────────────────────────────────

// Scene builds the camera transform and light described by the config.
func (c *Config) Scene() (*Scene, error) {
	projection, err := ProjectionByName(c.Camera.Projection)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	anchor, err := ParseLightAnchor(c.Light.Anchor)
	if err != nil {
		return nil, fmt.Errorf("light: %w", err)
	}

	tr := NewTransform(projection)
	tr.SetAngle(-c.Camera.Bearing * stdmath.Pi / 180)
	tr.SetZoom(c.Camera.Zoom)
	tr.SetCenter(c.Camera.Center[0], c.Camera.Center[1])

	p := c.Light.Position
	return &Scene{
		Transform: tr,
		Light: Light{
			Position:  LightPositionFromSpherical(p[0], p[1], p[2]),
			Intensity: c.Light.Intensity,
			Color:     arrayToColor(c.Light.Color),
			Anchor:    anchor,
		},
	}, nil
}

// TileList returns the configured tiles and whether each one is drawn with
// a fill pattern.
func (c *Config) TileList() ([]Tile, []bool) {
	tiles := make([]Tile, len(c.Tiles))
	patterned := make([]bool, len(c.Tiles))
	for i, t := range c.Tiles {
		tiles[i] = Tile{
			ID:       NewOverscaledTileID(t.OverscaledZ, t.Wrap, t.Z, t.X, t.Y),
			TileSize: t.TileSize,
		}
		patterned[i] = t.Pattern
	}
	return tiles, patterned
}

func ArrayToVec3(a [3]float32) math.Vec3 { return math.Vec3{X: a[0], Y: a[1], Z: a[2]} }
func ArrayToVec2(a [2]float32) math.Vec2 { return math.Vec2{X: a[0], Y: a[1]} }
func arrayToColor(a [3]float32) core.Color {
	return core.Color{R: a[0], G: a[1], B: a[2], A: 1}
}
