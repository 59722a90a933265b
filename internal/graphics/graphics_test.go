package graphics

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinShaderSources(t *testing.T) {
	for _, name := range []string{"default", "skybox", "crosshair"} {
		vs, fs, err := builtinSources(name)
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(vs, "#version 410 core"))
		assert.True(t, strings.HasPrefix(fs, "#version 410 core"))
	}
	_, _, err := builtinSources("missing")
	assert.Error(t, err)
}

func TestDefaultShaderDeclaresInstanceLayout(t *testing.T) {
	vs, _, err := builtinSources("default")
	require.NoError(t, err)
	assert.Contains(t, vs, "layout (location = 3) in mat4 instanceModel")
	assert.Contains(t, vs, "layout (location = 11) in vec4 instanceShininess")
}

func TestReadShaderSourcesMissingFile(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "lit")
	require.NoError(t, os.WriteFile(base+VertexExt, []byte("void main(){}"), 0o644))

	_, _, err := ReadShaderSources(base)
	assert.Error(t, err)
}

func TestUnloadedShaderIsInert(t *testing.T) {
	var s *Shader
	assert.False(t, s.Loaded())

	s = &Shader{Name: "broken"}
	assert.False(t, s.Use())
	assert.NotPanics(t, s.StopUse)
	assert.NotPanics(t, s.Dispose)
}

func TestShaderBase(t *testing.T) {
	base, ok := shaderBase("assets/shaders/default.fs")
	assert.True(t, ok)
	assert.Equal(t, "assets/shaders/default", base)

	_, ok = shaderBase("assets/shaders/notes.txt")
	assert.False(t, ok)
}

func TestTextureCacheLoadsOnceAndRemembersFailures(t *testing.T) {
	calls := map[string]int{}
	c := newTextureCache(func(path string) (*Texture, error) {
		calls[path]++
		if path == "bad.png" {
			return nil, errors.New("decode failed")
		}
		return &Texture{Path: path, Width: 1, Height: 1}, nil
	})

	a, err := c.Get("good.png")
	require.NoError(t, err)
	b, err := c.Get("good.png")
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = c.Get("bad.png")
	assert.Error(t, err)
	_, err = c.Get("bad.png")
	assert.Error(t, err)

	assert.Equal(t, 1, calls["good.png"])
	assert.Equal(t, 1, calls["bad.png"])
	assert.Equal(t, 1, c.Len())

	c.Dispose()
	assert.Equal(t, 0, c.Len())
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestLoadCubemapFacesRescales(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "sky")
	for i, suffix := range CubeFaceSuffixes {
		size := 8
		if i == 3 {
			size = 4
		}
		writePNG(t, base+suffix, size, size, color.RGBA{B: 255, A: 255})
	}

	faces, err := LoadCubemapFaces(base)
	require.NoError(t, err)
	for _, f := range faces {
		assert.Equal(t, image.Pt(8, 8), f.Rect.Size())
	}
	assert.Equal(t, uint8(255), faces[3].RGBAAt(4, 4).B)
}

func TestLoadCubemapFacesMissingFace(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "sky")
	for _, suffix := range CubeFaceSuffixes[:5] {
		writePNG(t, base+suffix, 2, 2, color.White)
	}
	_, err := LoadCubemapFaces(base)
	assert.ErrorContains(t, err, "_back.png")
}

func TestRasterizeText(t *testing.T) {
	img, err := RasterizeText(nil, "Hello", 32)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 32)
	assert.Greater(t, img.Bounds().Dy(), 16)

	r := opaqueBounds(img)
	require.False(t, r.Empty(), "glyphs were drawn")
	px := img.RGBAAt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	assert.Equal(t, px.R, px.G, "text is white")

	trimmed := TrimText(img)
	assert.Equal(t, r.Size(), trimmed.Bounds().Size())
}

func TestRasterizeTextErrors(t *testing.T) {
	_, err := RasterizeText(nil, "", 32)
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = RasterizeText([]byte("not a font"), "x", 32)
	assert.Error(t, err)
}

func TestShaderWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := WatchShaders(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lit.fs"), []byte("x"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, filepath.Join(dir, "lit"), got[0])
	for _, base := range got {
		assert.NotContains(t, base, "notes")
	}

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
