package main

import (
	"fmt"
	"os"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fill-extrusion/core"
	"fill-extrusion/internal/opengl"
	"fill-extrusion/internal/window"
	"fill-extrusion/math"
	"fill-extrusion/renderer"
	"fill-extrusion/scene"
)

var (
	scenePath string
	frames    int
	logLevel  string
	checkOnly bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render animated fill-extrusion tiles",
	Long: `Loads a YAML scene, links the fill-extrusion programs and renders a
fixed number of frames into a hidden window while the camera spins, the
light follows a day/night cycle and globe scenes morph into mercator.

With --check-only no GL context is created: every pass is evaluated and
its uniforms are logged at debug level.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zapcore.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		logger, err = newLogger(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&scenePath, "scene", "", "YAML scene file (defaults when empty)")
	rootCmd.Flags().IntVar(&frames, "frames", 120, "number of frames to render")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error (overrides logging.level)")
	rootCmd.Flags().BoolVar(&checkOnly, "check-only", false, "evaluate passes without a GL context")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// resolveLogLevel picks the scene's logging.level unless --log-level was
// given on the command line.
func resolveLogLevel(cmd *cobra.Command, cfg *scene.Config) (zapcore.Level, error) {
	if cmd.Flags().Changed("log-level") {
		return zapcore.ParseLevel(logLevel)
	}
	return cfg.LogLevel()
}

func loadConfig() (*scene.Config, error) {
	if scenePath == "" {
		cfg := scene.DefaultConfig()
		cfg.Camera.Center = [2]float64{13.4, 52.5}
		cfg.Tiles = []scene.TileConfig{{Z: 15, X: 17603, Y: 10743, OverscaledZ: 15, TileSize: 512}}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return scene.LoadConfig(scenePath)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	level, err := resolveLogLevel(cmd, cfg)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if level != logger.Level() {
		_ = logger.Sync()
		if logger, err = newLogger(level); err != nil {
			return err
		}
	}

	sc, err := cfg.Scene()
	if err != nil {
		return err
	}
	tiles, patterned := cfg.TileList()
	logger.Info("scene loaded",
		zap.String("path", scenePath),
		zap.Int("tiles", len(tiles)),
		zap.String("projection", string(sc.Transform.Projection().Name())),
		zap.Stringer("anchor", sc.Light.Anchor))

	if checkOnly {
		return runCheck(cfg, sc, tiles, patterned)
	}
	return runWindow(cfg, sc, tiles, patterned)
}

// runCheck drives every pass through logging binders.
func runCheck(cfg *scene.Config, sc *scene.Scene, tiles []scene.Tile, patterned []bool) error {
	programs := renderer.Programs{
		Standard: newLogBinder("standard"),
		Pattern:  newLogBinder("pattern"),
		Depth:    newLogBinder("depth"),
		Ground:   newLogBinder("ground"),
	}
	r := renderer.NewExtrusionRenderer(programs, renderer.Textures{}, nil, logger)
	frame := renderer.FrameFromConfig(cfg, sc)

	draws := make([]renderer.TileDraw, len(tiles))
	for i, t := range tiles {
		draws[i] = renderer.TileDraw{Tile: t, Matrix: tileMatrix(sc.Transform, t, 4.0/3.0), Pattern: patterned[i]}
	}
	stats := r.Draw(frame, draws)
	logger.Info("check complete", zap.Int("tiles", stats.Tiles), zap.Int("passes", stats.Passes))
	return nil
}

func runWindow(cfg *scene.Config, sc *scene.Scene, tiles []scene.Tile, patterned []bool) error {
	win, err := window.New(window.DefaultConfig())
	if err != nil {
		return err
	}
	defer win.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	programs, err := opengl.NewExtrusionPrograms(logger)
	if err != nil {
		return err
	}
	defer programs.Destroy()

	var textures renderer.Textures
	var ground *opengl.GroundFramebuffer
	var groundMesh *opengl.GPUMesh
	if cfg.GroundEffect.Enabled {
		ground, err = opengl.NewGroundFramebuffer(int(cfg.GroundEffect.FramebufferSize))
		if err != nil {
			return err
		}
		defer ground.Destroy()
		textures.Ground = ground

		groundMesh = opengl.UploadGroundMesh(blockGroundVertices(blockRows, cfg.Extrusion.FloodLightGroundRadius))
		defer groundMesh.Destroy()
	}

	atlas, err := opengl.NewPatternAtlas(atlasSize, atlasSize, brickAtlas())
	if err != nil {
		return err
	}
	defer atlas.Destroy()
	textures.Atlas = atlas

	mesh := opengl.UploadExtrusionMesh(blockVertices(blockRows, core.Color{R: 0.85, G: 0.82, B: 0.78, A: 1}))
	defer mesh.Destroy()

	fbW, fbH := win.GetFramebufferSize()
	submit := func(pass renderer.Pass, d renderer.TileDraw) {
		switch pass {
		case renderer.PassDepth:
			gl.ColorMask(false, false, false, false)
			mesh.Draw()
			gl.ColorMask(true, true, true, true)
		case renderer.PassGroundAO:
			ground.BeginAOPass()
			groundMesh.Draw()
			ground.EndAOPass(int32(fbW), int32(fbH))
		case renderer.PassGroundFlood:
			groundMesh.Draw()
		default:
			mesh.Draw()
		}
	}

	r := renderer.NewExtrusionRenderer(renderer.Programs{
		Standard: programs.Standard,
		Pattern:  programs.Pattern,
		Depth:    programs.Depth,
		Ground:   programs.Ground,
	}, textures, submit, logger)

	frame := renderer.FrameFromConfig(cfg, sc)
	frame.Style.AtlasSize = math.NewVec2(float32(atlas.Width), float32(atlas.Height))
	anim := newCameraAnimation(sc.Transform)
	dayNight := NewDayNight()
	aspect := float32(fbW) / float32(fbH)
	const dt = 1.0 / 60

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	for i := 0; i < frames && !win.ShouldClose(); i++ {
		win.PollEvents()

		anim.Update(sc.Transform, dt)
		dayNight.Update(dt)
		sky := dayNight.Apply(&sc.Light, &frame.Style)
		frame.Light = sc.Light

		gl.Viewport(0, 0, int32(fbW), int32(fbH))
		gl.ClearColor(sky.R, sky.G, sky.B, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		draws := make([]renderer.TileDraw, len(tiles))
		for j, t := range tiles {
			draws[j] = renderer.TileDraw{Tile: t, Matrix: tileMatrix(sc.Transform, t, aspect), Pattern: patterned[j]}
		}
		r.Draw(frame, draws)
		win.SwapBuffers()

		if i%60 == 0 {
			logger.Info("frame",
				zap.Int("index", i),
				zap.String("time", dayNight.TimeOfDayStr()),
				zap.Float64("zoom", sc.Transform.Zoom()),
				zap.String("projection", string(sc.Transform.Projection().Name())))
		}
	}
	return nil
}

// logBinder stands in for a GL program when no context exists.
type logBinder struct {
	name string
}

func newLogBinder(name string) *logBinder { return &logBinder{name: name} }

func (b *logBinder) Use() { logger.Debug("use program", zap.String("program", b.name)) }

func (b *logBinder) log(name string, v any) {
	logger.Debug("uniform", zap.String("program", b.name), zap.String("name", name), zap.Any("value", v))
}

func (b *logBinder) Uniform1f(name string, v float32)         { b.log(name, v) }
func (b *logBinder) Uniform2f(name string, v math.Vec2)       { b.log(name, v) }
func (b *logBinder) Uniform3f(name string, v math.Vec3)       { b.log(name, v) }
func (b *logBinder) UniformMatrix4f(name string, v math.Mat4) { b.log(name, v) }
func (b *logBinder) Uniform1i(name string, v int32)           { b.log(name, v) }
