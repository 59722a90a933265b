package render

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"scenery/internal/assets"
	"scenery/internal/config"
	"scenery/internal/graphics"
	"scenery/internal/logging"
	"scenery/internal/terrain"

	"go.uber.org/zap"
)

// Shader names known to the factory.
const (
	ShaderDefault   = "default"
	ShaderSkybox    = "skybox"
	ShaderCrosshair = "crosshair"
)

// Factory builds renderables from paths relative to an asset root. It owns
// every shader, texture and model it hands out; entities only borrow them.
// All methods except Preload must run on the GL thread.
type Factory struct {
	root      string
	shaderDir string

	textures *graphics.TextureCache
	shaders  map[string]*graphics.Shader
	models   map[string]*Model
	parsed   map[string]*assets.ModelData
}

func NewFactory(root, shaderDir string) *Factory {
	return &Factory{
		root:      root,
		shaderDir: config.Resolve(root, shaderDir),
		textures:  graphics.NewTextureCache(),
		shaders:   make(map[string]*graphics.Shader),
		models:    make(map[string]*Model),
		parsed:    make(map[string]*assets.ModelData),
	}
}

// Root is the directory relative paths are resolved against.
func (f *Factory) Root() string { return f.root }

// ShaderDir is the resolved directory shader files are read from.
func (f *Factory) ShaderDir() string { return f.shaderDir }

func (f *Factory) path(p string) string { return config.Resolve(f.root, p) }

// Shader returns the named shader, compiling it on first use. Files in the
// shader directory win over the embedded sources.
func (f *Factory) Shader(name string) *graphics.Shader {
	if s, ok := f.shaders[name]; ok {
		return s
	}
	base := filepath.Join(f.shaderDir, name)
	var (
		s   *graphics.Shader
		err error
	)
	if fileExists(base+graphics.VertexExt) && fileExists(base+graphics.FragmentExt) {
		s, err = graphics.NewShader(base)
	} else {
		s, err = graphics.BuiltinShader(name)
	}
	if err != nil {
		logging.L().Error("shader compile failed", zap.String("shader", name), zap.Error(err))
	}
	f.shaders[name] = s
	return s
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// ReloadShader recompiles the file-backed shader with the given base path.
// It reports whether a shader matched.
func (f *Factory) ReloadShader(base string) bool {
	for name, s := range f.shaders {
		if s.Base() == "" || filepath.Clean(s.Base()) != filepath.Clean(base) {
			continue
		}
		if err := s.Reload(); err != nil {
			logging.L().Error("shader reload failed", zap.String("shader", name), zap.Error(err))
		} else {
			logging.L().Info("shader reloaded", zap.String("shader", name))
		}
		return true
	}
	return false
}

// ReloadShaders recompiles every file-backed shader.
func (f *Factory) ReloadShaders() {
	for _, s := range f.shaders {
		if s.Base() != "" {
			f.ReloadShader(s.Base())
		}
	}
}

// Preload parses model files in parallel so later Model calls only upload.
func (f *Factory) Preload(ctx context.Context, paths []string) error {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		resolved = append(resolved, f.path(p))
	}
	parsed, err := assets.LoadModels(ctx, resolved)
	if err != nil {
		return err
	}
	for p, data := range parsed {
		f.parsed[p] = data
	}
	return nil
}

// Model returns the cached model for path, uploading it on first use.
// A file that cannot be loaded yields an unloaded model.
func (f *Factory) Model(path string) *Model {
	full := f.path(path)
	if m, ok := f.models[full]; ok {
		return m
	}
	data, ok := f.parsed[full]
	if !ok {
		var err error
		data, err = assets.LoadModel(full)
		if err != nil {
			logging.L().Warn("model not loaded", zap.String("path", full), zap.Error(err))
		}
	}
	delete(f.parsed, full)

	m := NewModel(full, data, f.textures)
	f.models[full] = m
	return m
}

func (f *Factory) CreateEntity(path string) *Entity {
	return NewEntity(f.Model(path), f.Shader(ShaderDefault))
}

func (f *Factory) CreateImage(path string) *Image {
	full := f.path(path)
	img := NewImageFromFile(full, f.textures, f.Shader(ShaderDefault))
	if !img.Loaded() {
		logging.L().Warn("image not loaded", zap.String("path", full))
	}
	return img
}

// CreateTextImage renders text with the font at fontPath, or the embedded
// font when fontPath is empty.
func (f *Factory) CreateTextImage(text, fontPath string, size float64) *Image {
	var fontBytes []byte
	if fontPath != "" {
		b, err := os.ReadFile(f.path(fontPath))
		if err != nil {
			logging.L().Warn("font not loaded, using default", zap.String("path", fontPath), zap.Error(err))
		} else {
			fontBytes = b
		}
	}
	img, err := NewTextImage(fontBytes, fontPath, text, size, f.Shader(ShaderDefault))
	if err != nil {
		logging.L().Warn("text not rendered", zap.String("text", text), zap.Error(err))
	}
	return img
}

// CreateTerrain generates and uploads a terrain mesh. texture may be empty.
func (f *Factory) CreateTerrain(p terrain.Params, texture string) *Terrain {
	data := terrain.Generate(p)
	var tex *graphics.Texture
	if texture != "" {
		t, err := f.textures.Get(f.path(texture))
		if err == nil {
			tex = t
		}
	}
	return NewTerrain(&data, f.Shader(ShaderDefault), tex)
}

// CreateSkyBox loads the six faces <base>_right.png ... <base>_back.png.
func (f *Factory) CreateSkyBox(base string) *SkyBox {
	cube, err := graphics.LoadCubemap(f.path(base))
	if err != nil {
		logging.L().Warn("skybox not loaded", zap.String("base", base), zap.Error(err))
		cube = nil
	}
	return NewSkyBox(cube, f.Shader(ShaderSkybox))
}

func (f *Factory) CreateCrosshair() *Crosshair {
	return NewCrosshair(f.Shader(ShaderCrosshair))
}

// Dispose frees every GPU resource the factory created.
func (f *Factory) Dispose() {
	for _, m := range f.models {
		m.Dispose()
	}
	for _, s := range f.shaders {
		s.Dispose()
	}
	f.textures.Dispose()
	clear(f.models)
	clear(f.shaders)
	clear(f.parsed)
}
