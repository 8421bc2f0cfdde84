// Package config handles viewer configuration loading and management.
package config

import "fmt"

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Loader  LoaderConfig  `yaml:"loader"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // "sdl" or "glfw"
}

// SceneConfig describes what gets drawn.
type SceneConfig struct {
	Background [3]float32     `yaml:"background"`
	Curve      CurveConfig    `yaml:"curve"`
	Light      LightConfig    `yaml:"light"`
	Camera     CameraConfig   `yaml:"camera"`
	Objects    []ObjectConfig `yaml:"objects"`
}

// CurveConfig points at a control point file. An empty File disables the path.
type CurveConfig struct {
	File       string `yaml:"file"`
	Resolution int    `yaml:"resolution"`
}

// LightConfig is a single point light.
type LightConfig struct {
	Position [3]float32 `yaml:"position"`
	Color    [3]float32 `yaml:"color"`
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"`
}

// ObjectConfig is one model in the scene.
type ObjectConfig struct {
	Name     string         `yaml:"name"`
	Mesh     string         `yaml:"mesh"`
	Material string         `yaml:"material"`
	Texture  string         `yaml:"texture"`  // overrides the material's map_Kd
	MoveKey  int            `yaml:"move_key"` // digit 0-9; -1 never rides the curve
	Color    *[3]float32    `yaml:"color"`    // nil keeps the default vertex color
	Scale    float32        `yaml:"scale"`
	Position [3]float32     `yaml:"position"`
	Rotate   RotateConfig   `yaml:"rotate"`
	Defaults MaterialConfig `yaml:"defaults"`
}

// RotateConfig is a fixed rotation applied before any animation.
type RotateConfig struct {
	Degrees float32    `yaml:"degrees"`
	Axis    [3]float32 `yaml:"axis"`
}

// MaterialConfig holds fallbacks for lighting coefficients missing from the MTL file.
type MaterialConfig struct {
	Ka float32 `yaml:"ka"`
	Kd float32 `yaml:"kd"`
	Ks float32 `yaml:"ks"`
	Ns float32 `yaml:"ns"`
}

// LoaderConfig holds asset parsing settings.
type LoaderConfig struct {
	Strict bool `yaml:"strict"`
}

// AssetsConfig holds asset search roots.
type AssetsConfig struct {
	Roots []string `yaml:"roots"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Preset names.
const (
	PresetCurve = "curve"
	PresetCube  = "cube"
)

// DefaultMaterial returns the coefficient fallbacks used when an MTL file omits them.
func DefaultMaterial() MaterialConfig {
	return MaterialConfig{Ka: 0, Kd: 1.5, Ks: 0, Ns: 0}
}

// Default returns a Config with sensible default values: the curve preset.
func Default() *Config {
	cfg, _ := Preset(PresetCurve)
	return cfg
}

// Preset returns the built-in configuration called name.
func Preset(name string) (*Config, error) {
	cfg := base()

	switch name {
	case PresetCurve:
		cfg.Window.Title = "objcurve - curve"
		cfg.Scene.Curve = CurveConfig{File: "curves.txt", Resolution: 1200}
		cfg.Scene.Light = LightConfig{Position: [3]float32{15, 15, 2}, Color: [3]float32{1, 1, 1}}
		cfg.Scene.Camera.Position = [3]float32{0, 0, 10}
		cfg.Scene.Objects = []ObjectConfig{
			{
				Name:     "shield",
				Mesh:     "3d-models/shield/Shield.obj",
				Material: "3d-models/shield/Shield.mtl",
				MoveKey:  1,
				Scale:    2,
				Rotate:   RotateConfig{Degrees: 45, Axis: [3]float32{1, 1, 1}},
				Defaults: DefaultMaterial(),
			},
			{
				Name:     "memory-card",
				Mesh:     "3d-models/memory-card/MemoryCard.obj",
				Material: "3d-models/memory-card/MemoryCard.mtl",
				MoveKey:  2,
				Scale:    1,
				Position: [3]float32{4.5, -1, 0},
				Rotate:   RotateConfig{Degrees: 45, Axis: [3]float32{1, 1, 1}},
				Defaults: DefaultMaterial(),
			},
		}
	case PresetCube:
		green := [3]float32{0, 1, 0}
		cfg.Window.Title = "objcurve - cube"
		cfg.Scene.Background = [3]float32{1, 1, 1}
		cfg.Scene.Light = LightConfig{Position: [3]float32{-2, 5, 10}, Color: [3]float32{1, 1, 0}}
		cfg.Scene.Camera.Position = [3]float32{0, 0, 3}
		cfg.Scene.Objects = []ObjectConfig{
			{
				Name:     "cube",
				Mesh:     "cube.obj",
				Material: "cube.mtl",
				Texture:  "cube.png",
				MoveKey:  -1,
				Color:    &green,
				Scale:    1,
				Defaults: DefaultMaterial(),
			},
		}
	default:
		return nil, fmt.Errorf("unknown preset %q", name)
	}

	return cfg, nil
}

// base holds the settings shared by every preset.
func base() *Config {
	return &Config{
		Window: WindowConfig{
			Width:   1000,
			Height:  1000,
			VSync:   true,
			Backend: "sdl",
		},
		Scene: SceneConfig{
			Camera: CameraConfig{
				Speed:       0.05,
				Sensitivity: 0.05,
				FOV:         45,
			},
		},
		Assets: AssetsConfig{
			Roots: []string{".", "assets"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
