package graphics

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader file suffixes. A shader named "assets/shaders/default" is read
// from default.vs and default.fs.
const (
	VertexExt   = ".vs"
	FragmentExt = ".fs"
)

//go:embed shaders/*.vs shaders/*.fs
var builtinShaders embed.FS

// Shader is an OpenGL program. A shader whose sources failed to compile or
// link is kept around unloaded: Use reports false and nothing is drawn.
type Shader struct {
	ID   uint32
	Name string

	base     string // file base path; empty for shaders built from source
	loaded   bool
	uniforms map[string]int32
}

// NewShader compiles base+".vs" and base+".fs". The returned shader is never
// nil; on error it is unloaded.
func NewShader(base string) (*Shader, error) {
	s := &Shader{Name: base, base: base}
	return s, s.Reload()
}

// NewShaderFromSource compiles a program from in-memory sources.
func NewShaderFromSource(name, vertexSrc, fragmentSrc string) (*Shader, error) {
	s := &Shader{Name: name}
	return s, s.compile(vertexSrc, fragmentSrc)
}

// BuiltinShader compiles one of the shaders embedded in the binary, e.g.
// "default" or "skybox".
func BuiltinShader(name string) (*Shader, error) {
	vs, fs, err := builtinSources(name)
	if err != nil {
		return &Shader{Name: name}, err
	}
	return NewShaderFromSource(name, vs, fs)
}

// DefaultShader is the lit, instanced shader used for models, terrain and images.
func DefaultShader() (*Shader, error) {
	return BuiltinShader("default")
}

func builtinSources(name string) (string, string, error) {
	vs, err := builtinShaders.ReadFile("shaders/" + name + VertexExt)
	if err != nil {
		return "", "", fmt.Errorf("builtin shader %q: %w", name, err)
	}
	fs, err := builtinShaders.ReadFile("shaders/" + name + FragmentExt)
	if err != nil {
		return "", "", fmt.Errorf("builtin shader %q: %w", name, err)
	}
	return string(vs), string(fs), nil
}

// ReadShaderSources reads the vertex and fragment files for base.
func ReadShaderSources(base string) (string, string, error) {
	vs, err := os.ReadFile(base + VertexExt)
	if err != nil {
		return "", "", fmt.Errorf("could not read vertex shader file: %w", err)
	}
	fs, err := os.ReadFile(base + FragmentExt)
	if err != nil {
		return "", "", fmt.Errorf("could not read fragment shader file: %w", err)
	}
	return string(vs), string(fs), nil
}

// Reload recompiles a file-backed shader. If the new sources fail, the
// previous program stays in use.
func (s *Shader) Reload() error {
	if s.base == "" {
		return nil
	}
	vs, fs, err := ReadShaderSources(s.base)
	if err != nil {
		return err
	}
	return s.compile(vs, fs)
}

func (s *Shader) compile(vertexSrc, fragmentSrc string) error {
	program, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return fmt.Errorf("shader %s: %w", s.Name, err)
	}
	if s.loaded {
		gl.DeleteProgram(s.ID)
	}
	s.ID = program
	s.loaded = true
	s.uniforms = make(map[string]int32)
	return nil
}

// Base returns the file base path, or "" for source-built shaders.
func (s *Shader) Base() string { return s.base }

func (s *Shader) Loaded() bool { return s != nil && s.loaded }

// Use binds the program and reports whether it is usable.
func (s *Shader) Use() bool {
	if !s.Loaded() {
		return false
	}
	gl.UseProgram(s.ID)
	return true
}

func (s *Shader) StopUse() {
	if s.Loaded() {
		gl.UseProgram(0)
	}
}

func (s *Shader) Dispose() {
	if s.Loaded() {
		gl.DeleteProgram(s.ID)
		s.loaded = false
	}
}

func (s *Shader) location(name string) int32 {
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	s.uniforms[name] = loc
	return loc
}

func (s *Shader) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	gl.Uniform1i(s.location(name), v)
}

func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.location(name), value)
}

func (s *Shader) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(s.location(name), v[0], v[1])
}

func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(s.location(name), v[0], v[1], v[2])
}

func (s *Shader) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(s.location(name), v[0], v[1], v[2], v[3])
}

func (s *Shader) SetMat3(name string, m mgl32.Mat3) {
	gl.UniformMatrix3fv(s.location(name), 1, false, &m[0])
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &m[0])
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
