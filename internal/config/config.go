// Package config loads the viewer configuration from TOML and holds the
// settings that can change at runtime.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is looked up in the asset root when no path is given.
const DefaultFileName = "scenery.toml"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Camera  CameraConfig  `toml:"camera"`
	World   WorldConfig   `toml:"world"`
	Render  RenderConfig  `toml:"render"`
	Terrain TerrainConfig `toml:"terrain"`
	Skybox  SkyboxConfig  `toml:"skybox"`
	Models  []ModelConfig `toml:"models"`
	Images  []ImageConfig `toml:"images"`
	Texts   []TextConfig  `toml:"texts"`
	Log     LogConfig     `toml:"log"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

type CameraConfig struct {
	Position        [3]float32 `toml:"position"`
	Direction       [3]float32 `toml:"direction"`
	FOV             float32    `toml:"fov"`
	LookSensitivity float32    `toml:"look_sensitivity"`
	MoveSensitivity float32    `toml:"move_sensitivity"`
	JumpSpeed       float32    `toml:"jump_speed"`
	Gravity         float32    `toml:"gravity"`
}

type WorldConfig struct {
	Ambient      float32    `toml:"ambient"`
	SunDirection [3]float32 `toml:"sun_direction"`
	SunColor     [3]float32 `toml:"sun_color"`
	SunStrength  float32    `toml:"sun_strength"`
	Gravity      bool       `toml:"gravity"`
	FloorHeight  float32    `toml:"floor_height"`
}

type RenderConfig struct {
	FPSLimit     int    `toml:"fps_limit"`
	Wireframe    bool   `toml:"wireframe"`
	ShaderDir    string `toml:"shader_dir"`
	WatchShaders bool   `toml:"watch_shaders"`
}

type TerrainConfig struct {
	Enabled     bool    `toml:"enabled"`
	Size        float32 `toml:"size"`
	Resolution  int     `toml:"resolution"`
	Amplitude   float32 `toml:"amplitude"`
	Seed        int64   `toml:"seed"`
	Octaves     int     `toml:"octaves"`
	Persistence float64 `toml:"persistence"`
	Lacunarity  float64 `toml:"lacunarity"`
	Frequency   float64 `toml:"frequency"`
	Texture     string  `toml:"texture"`
}

type SkyboxConfig struct {
	Enabled bool   `toml:"enabled"`
	Base    string `toml:"base"` // faces are <base>_right.png etc.
}

// ModelConfig places a model, or a Rows×Cols grid of instances of it.
type ModelConfig struct {
	Path      string     `toml:"path"`
	Position  [3]float32 `toml:"position"`
	Rotation  [3]float32 `toml:"rotation"` // degrees
	Scale     float32    `toml:"scale"`
	Rows      int        `toml:"rows"`
	Cols      int        `toml:"cols"`
	Spacing   float32    `toml:"spacing"`
	Variation float32    `toml:"variation"` // 0..1 random spread of rotation, scale and tint
	Seed      int64      `toml:"seed"`
	OnTerrain bool       `toml:"on_terrain"`
}

type ImageConfig struct {
	Path     string     `toml:"path"`
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"`
	Scale    float32    `toml:"scale"`
}

type TextConfig struct {
	Text     string     `toml:"text"`
	Font     string     `toml:"font"` // empty uses the embedded font
	Size     float64    `toml:"size"`
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"`
	Scale    float32    `toml:"scale"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "scenery", Width: 1280, Height: 720, VSync: true},
		Camera: CameraConfig{
			Position:        [3]float32{0, 2, 10},
			Direction:       [3]float32{0, 0, -1},
			FOV:             45,
			LookSensitivity: 0.5,
			MoveSensitivity: 10,
			JumpSpeed:       6,
			Gravity:         9.81,
		},
		World: WorldConfig{
			Ambient:      0.05,
			SunDirection: [3]float32{20, 100, 15},
			SunColor:     [3]float32{1, 1, 1},
			SunStrength:  0.75,
			Gravity:      true,
		},
		Render: RenderConfig{FPSLimit: 60, ShaderDir: "shaders"},
		Terrain: TerrainConfig{
			Enabled:     true,
			Size:        200,
			Resolution:  128,
			Amplitude:   8,
			Seed:        1337,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
			Frequency:   0.02,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("config %s: %s", path, strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate clamps numeric settings into range and rejects entries that
// cannot be acted on.
func (c *Config) Validate() error {
	c.Window.Width = max(c.Window.Width, 1)
	c.Window.Height = max(c.Window.Height, 1)
	c.Camera.FOV = min(max(c.Camera.FOV, 1), 45)
	c.Render.FPSLimit = min(max(c.Render.FPSLimit, 0), MaxFPSLimit)
	c.Terrain.Resolution = max(c.Terrain.Resolution, 1)
	c.Terrain.Octaves = max(c.Terrain.Octaves, 1)
	if c.Terrain.Size <= 0 {
		c.Terrain.Size = Default().Terrain.Size
	}
	if c.World.Ambient <= 0 || c.World.Ambient > 1 {
		c.World.Ambient = Default().World.Ambient
	}
	if c.World.SunStrength <= 0 || c.World.SunStrength > 1 {
		c.World.SunStrength = Default().World.SunStrength
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	var errs []error
	for i := range c.Models {
		m := &c.Models[i]
		if strings.TrimSpace(m.Path) == "" {
			errs = append(errs, fmt.Errorf("models[%d]: empty path", i))
		}
		if m.Scale == 0 {
			m.Scale = 1
		}
		m.Rows = max(m.Rows, 1)
		m.Cols = max(m.Cols, 1)
		m.Variation = min(max(m.Variation, 0), 1)
	}
	for i := range c.Images {
		if strings.TrimSpace(c.Images[i].Path) == "" {
			errs = append(errs, fmt.Errorf("images[%d]: empty path", i))
		}
		if c.Images[i].Scale == 0 {
			c.Images[i].Scale = 1
		}
	}
	for i := range c.Texts {
		if c.Texts[i].Text == "" {
			errs = append(errs, fmt.Errorf("texts[%d]: empty text", i))
		}
		if c.Texts[i].Scale == 0 {
			c.Texts[i].Scale = 1
		}
	}
	return errors.Join(errs...)
}

// Resolve makes a config-relative path absolute against root.
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
