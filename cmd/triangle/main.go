package main

import (
	"runtime"
	"time"

	"scenery/internal/assets"
	"scenery/internal/game"
	"scenery/internal/graphics"
	"scenery/internal/logging"
	"scenery/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	windowWidth  = 800
	windowHeight = 600

	// spinSpeed is the triangle's turn rate in radians per second.
	spinSpeed = 1.0
)

func init() {
	runtime.LockOSThread()
}

// triangleMesh is one green triangle in clip space, facing the viewer.
func triangleMesh() *assets.MeshData {
	normal := mgl32.Vec3{0, 0, 1}
	return &assets.MeshData{
		Name: "triangle",
		Vertices: []assets.Vertex{
			{Position: mgl32.Vec3{0, 0.5, 0}, Normal: normal, UV: mgl32.Vec2{0.5, 1}},
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: normal, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: normal, UV: mgl32.Vec2{1, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

// triangleMaterial lights the triangle through emission only, so it shows
// flat green with the sun and ambient light switched off.
func triangleMaterial() scene.Material {
	return scene.Material{
		Diffuse:  mgl32.Vec4{0, 0, 0, 1},
		Emissive: mgl32.Vec4{0, 1, 0, 1},
	}
}

// spin is the model matrix after elapsed seconds: a turn about Z, squeezed
// by the aspect so the triangle keeps its shape in a non-square window.
func spin(elapsed float64, aspect float32) mgl32.Mat4 {
	t := scene.IdentityTransform()
	t.Rotation = mgl32.Vec3{0, 0, float32(elapsed * spinSpeed)}
	if aspect <= 0 {
		return t.Matrix()
	}
	return mgl32.Scale3D(1/aspect, 1, 1).Mul4(t.Matrix())
}

// The triangle demo: the smallest program that drives the instanced mesh
// path end to end with the built-in shader.
func main() {
	if err := logging.Init("info", true); err != nil {
		panic(err)
	}
	defer logging.Sync()
	log := logging.L()

	if err := glfw.Init(); err != nil {
		log.Fatal("glfw init", zap.Error(err))
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "scenery - triangle", nil, nil)
	if err != nil {
		log.Fatal("create window", zap.Error(err))
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(0)

	if err := gl.Init(); err != nil {
		log.Fatal("gl init", zap.Error(err))
	}

	shader, err := graphics.DefaultShader()
	if err != nil {
		log.Fatal("default shader", zap.Error(err))
	}
	defer shader.Dispose()

	mesh := graphics.NewMesh(triangleMesh())
	defer mesh.Dispose()

	mat := triangleMaterial()
	limiter := game.NewFPSLimiter()

	gl.ClearColor(0, 0, 0, 1)
	start := time.Now()
	frames, lastReport := 0, start

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.Clear(gl.COLOR_BUFFER_BIT)

		aspect := float32(0)
		if h > 0 {
			aspect = float32(w) / float32(h)
		}
		if shader.Use() {
			shader.SetMat4("view", mgl32.Ident4())
			shader.SetMat4("projection", mgl32.Ident4())
			shader.SetVec3("eyePosition", mgl32.Vec3{0, 0, 1})
			shader.SetVec3("sunDirection", mgl32.Vec3{0, 0, 1})
			shader.SetVec3("sunLightColor", mgl32.Vec3{})
			shader.SetVec3("ambientLight", mgl32.Vec3{})
			shader.SetBool("hasDiffuseTexture", false)
			shader.SetBool("hasSpecularTexture", false)
			mesh.DrawInstanced(scene.SingleInstance(spin(time.Since(start).Seconds(), aspect), mat))
			shader.StopUse()
		}

		window.SwapBuffers()
		glfw.PollEvents()
		limiter.Wait(window.GetAttrib(glfw.Focused) == glfw.False)

		frames++
		if now := time.Now(); now.Sub(lastReport) >= time.Second {
			log.Info("fps", zap.Float64("fps", float64(frames)/now.Sub(lastReport).Seconds()))
			frames, lastReport = 0, now
		}
	}
}
