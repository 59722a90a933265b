package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 800

[camera]
position = [1.0, 2.0, 3.0]
fov = 90

[world]
gravity = false

[[models]]
path = "models/tree.obj"
rows = 3
cols = 4
spacing = 5.0

[[texts]]
text = "hello"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "untouched keys keep defaults")
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, float32(45), cfg.Camera.FOV, "fov is clamped")
	assert.False(t, cfg.World.Gravity)

	require.Len(t, cfg.Models, 1)
	m := cfg.Models[0]
	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 4, m.Cols)
	assert.Equal(t, float32(1), m.Scale, "zero scale defaults to 1")

	require.Len(t, cfg.Texts, 1)
	assert.Equal(t, float32(1), cfg.Texts[0].Scale)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[window]\nwidht = 3\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "widht")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "[window\nwidth = 3\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = -5
	cfg.Camera.FOV = 0
	cfg.Terrain.Resolution = 0
	cfg.World.Ambient = 3
	cfg.Render.FPSLimit = -1
	cfg.Models = []ModelConfig{{Path: "a.obj", Rows: -2, Variation: 4}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1, cfg.Window.Width)
	assert.Equal(t, float32(1), cfg.Camera.FOV)
	assert.Equal(t, 1, cfg.Terrain.Resolution)
	assert.Equal(t, float32(0.05), cfg.World.Ambient)
	assert.Equal(t, 0, cfg.Render.FPSLimit)
	assert.Equal(t, 1, cfg.Models[0].Rows)
	assert.Equal(t, float32(1), cfg.Models[0].Variation)

	cfg.Models = append(cfg.Models, ModelConfig{})
	cfg.Texts = []TextConfig{{}}
	err := cfg.Validate()
	assert.ErrorContains(t, err, "models[1]")
	assert.ErrorContains(t, err, "texts[0]")
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("root", "a.obj"), Resolve("root", "a.obj"))
	abs, _ := filepath.Abs("x.obj")
	assert.Equal(t, abs, Resolve("root", abs))
	assert.Equal(t, "", Resolve("root", ""))
}

func TestRuntimeSettings(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())
	defer SetWireframe(GetWireframe())

	SetFPSLimit(-4)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, MaxFPSLimit, GetFPSLimit())

	SetWireframe(false)
	assert.True(t, ToggleWireframe())
	assert.True(t, GetWireframe())
	assert.False(t, ToggleWireframe())
}
