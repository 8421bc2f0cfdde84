package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1000 || cfg.Window.Height != 1000 {
		t.Errorf("expected 1000x1000 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Window.Backend != "sdl" {
		t.Errorf("expected sdl backend, got %s", cfg.Window.Backend)
	}

	if cfg.Scene.Curve.Resolution != 1200 {
		t.Errorf("expected curve resolution 1200, got %d", cfg.Scene.Curve.Resolution)
	}
	if cfg.Scene.Curve.File != "curves.txt" {
		t.Errorf("expected curves.txt, got %s", cfg.Scene.Curve.File)
	}
	if len(cfg.Scene.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(cfg.Scene.Objects))
	}
	if cfg.Scene.Objects[0].MoveKey != 1 || cfg.Scene.Objects[1].MoveKey != 2 {
		t.Errorf("expected move keys 1 and 2, got %d and %d", cfg.Scene.Objects[0].MoveKey, cfg.Scene.Objects[1].MoveKey)
	}
	if cfg.Scene.Objects[0].Defaults.Kd != 1.5 {
		t.Errorf("expected kd fallback 1.5, got %f", cfg.Scene.Objects[0].Defaults.Kd)
	}

	if cfg.Scene.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Scene.Camera.FOV)
	}
	if cfg.Loader.Strict {
		t.Error("expected lenient loading by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestPreset(t *testing.T) {
	cube, err := Preset(PresetCube)
	if err != nil {
		t.Fatalf("Preset(cube) failed: %v", err)
	}
	if cube.Scene.Curve.File != "" {
		t.Errorf("cube preset should have no curve, got %s", cube.Scene.Curve.File)
	}
	if len(cube.Scene.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(cube.Scene.Objects))
	}
	obj := cube.Scene.Objects[0]
	if obj.Color == nil || *obj.Color != [3]float32{0, 1, 0} {
		t.Errorf("expected green vertex color, got %v", obj.Color)
	}
	if obj.Texture != "cube.png" {
		t.Errorf("expected cube.png texture, got %s", obj.Texture)
	}
	if cube.Scene.Light.Color != [3]float32{1, 1, 0} {
		t.Errorf("expected yellow light, got %v", cube.Scene.Light.Color)
	}
	if err := cube.Validate(); err != nil {
		t.Errorf("cube preset invalid: %v", err)
	}

	if _, err := Preset("teapot"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  backend: glfw

scene:
  curve:
    file: "path.txt"
    resolution: 600
  light:
    position: [1, 2, 3]
    color: [0.5, 0.5, 0.5]
  objects:
    - name: ring
      mesh: ring.obj
      material: ring.mtl
      move_key: 3
      scale: 0.5
      color: [1, 0, 0]
      defaults:
        kd: 0.8

loader:
  strict: true

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.Backend != "glfw" {
		t.Errorf("expected glfw backend, got %s", cfg.Window.Backend)
	}

	if cfg.Scene.Curve.File != "path.txt" || cfg.Scene.Curve.Resolution != 600 {
		t.Errorf("unexpected curve config %+v", cfg.Scene.Curve)
	}
	if cfg.Scene.Light.Position != [3]float32{1, 2, 3} {
		t.Errorf("unexpected light position %v", cfg.Scene.Light.Position)
	}

	// The object list is replaced, not merged.
	if len(cfg.Scene.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(cfg.Scene.Objects))
	}
	ring := cfg.Scene.Objects[0]
	if ring.MoveKey != 3 || ring.Scale != 0.5 {
		t.Errorf("unexpected object %+v", ring)
	}
	if ring.Color == nil || *ring.Color != [3]float32{1, 0, 0} {
		t.Errorf("expected red color override, got %v", ring.Color)
	}
	if ring.Defaults.Kd != 0.8 {
		t.Errorf("expected kd 0.8, got %f", ring.Defaults.Kd)
	}

	// Untouched sections keep their defaults.
	if cfg.Scene.Camera.FOV != 45 {
		t.Errorf("expected default fov 45, got %f", cfg.Scene.Camera.FOV)
	}

	if !cfg.Loader.Strict {
		t.Error("expected strict loader")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Window.Backend = "x11" }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero resolution", func(c *Config) { c.Scene.Curve.Resolution = 0 }},
		{"object without mesh", func(c *Config) { c.Scene.Objects[0].Mesh = "" }},
		{"move key out of range", func(c *Config) { c.Scene.Objects[0].MoveKey = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "objcurve.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find objcurve.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "strict flag",
			setup: func() { *flagStrict = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Loader.Strict {
					t.Error("expected strict loader with strict flag")
				}
			},
			teardown: func() { *flagStrict = false },
		},
		{
			name:  "backend flag",
			setup: func() { *flagBackend = "glfw" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Backend != "glfw" {
					t.Errorf("expected glfw backend, got %s", cfg.Window.Backend)
				}
			},
			teardown: func() { *flagBackend = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagPreset = PresetCube
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagPreset = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
	// Scene comes from the preset the file did not override.
	if len(cfg.Scene.Objects) != 1 || cfg.Scene.Objects[0].Name != "cube" {
		t.Errorf("expected cube preset scene, got %+v", cfg.Scene.Objects)
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	*flagPreset = "teapot"
	defer func() { *flagPreset = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 640
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := &Config{}
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Window.Width != 640 {
		t.Errorf("expected width 640, got %d", loaded.Window.Width)
	}
	if len(loaded.Scene.Objects) != 2 {
		t.Errorf("expected 2 objects, got %d", len(loaded.Scene.Objects))
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir ignores XDG_CONFIG_HOME on this platform")
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	want := filepath.Join(tmpDir, "xdg", "objcurve", "config.yaml")
	if got := UserConfigPath(); got != want {
		t.Fatalf("UserConfigPath() = %s, want %s", got, want)
	}

	cfg := Default()
	cfg.Window.Height = 480
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A saved file is what Load finds next time.
	if got := findConfigFile(); got != want {
		t.Errorf("findConfigFile() = %q, want %q", got, want)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Window.Height != 480 {
		t.Errorf("expected height 480 from saved config, got %d", loaded.Window.Height)
	}
}

func TestSaveRequested(t *testing.T) {
	tests := []struct {
		set  bool
		want bool
	}{
		{false, false},
		{true, true},
	}

	for _, tt := range tests {
		*flagSaveConfig = tt.set
		if got := SaveRequested(); got != tt.want {
			t.Errorf("SaveRequested() with flag %v = %v, want %v", tt.set, got, tt.want)
		}
	}
	*flagSaveConfig = false
}
