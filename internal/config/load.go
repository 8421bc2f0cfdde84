package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < preset < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	if name := PresetName(); name != "" {
		p, err := Preset(name)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	// Explicit path takes priority over the standard locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	switch c.Window.Backend {
	case "sdl", "glfw":
	default:
		return fmt.Errorf("unknown window backend %q", c.Window.Backend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Scene.Curve.File != "" && c.Scene.Curve.Resolution < 1 {
		return fmt.Errorf("curve resolution must be positive, got %d", c.Scene.Curve.Resolution)
	}
	for _, obj := range c.Scene.Objects {
		if obj.Mesh == "" {
			return fmt.Errorf("object %q has no mesh", obj.Name)
		}
		if obj.MoveKey < -1 || obj.MoveKey > 9 {
			return fmt.Errorf("object %q: move_key %d outside 0-9", obj.Name, obj.MoveKey)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./objcurve.yaml",
		UserConfigPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "objcurve")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "objcurve")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "objcurve")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "objcurve")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
