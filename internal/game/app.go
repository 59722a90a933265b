// Package game runs the viewer: it wires input, camera, world and scene
// together and drives the frame loop.
package game

import (
	"time"

	"scenery/internal/camera"
	"scenery/internal/config"
	"scenery/internal/graphics"
	"scenery/internal/graphics/renderer"
	"scenery/internal/input"
	"scenery/internal/logging"
	"scenery/internal/profiling"
	"scenery/internal/render"
	"scenery/internal/scene"
	"scenery/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

const (
	// MaxFrameDelta caps dt so a stalled frame does not teleport the camera.
	MaxFrameDelta = 0.25

	slowFrame = 16 * time.Millisecond
)

type App struct {
	window    *glfw.Window
	input     *input.InputManager
	camera    *camera.Camera
	world     *world.World
	scene     *scene.Scene
	renderer  *renderer.Renderer
	factory   *render.Factory
	watcher   *graphics.ShaderWatcher
	controls  *Controls
	crosshair *render.Crosshair

	fpsLimiter *FPSLimiter
	captured   bool

	lastTime         time.Time
	frames           int
	lastFPSCheckTime time.Time
}

// NewApp takes ownership of sc and watcher (which may be nil). The factory
// stays owned by the caller.
func NewApp(window *glfw.Window, cfg *config.Config, f *render.Factory, sc *scene.Scene, watcher *graphics.ShaderWatcher) *App {
	im := input.NewInputManager()
	im.Attach(window)

	cam := NewCamera(cfg.Camera)
	w := NewWorld(cfg.World)

	width, height := window.GetFramebufferSize()
	cam.SetAspect(width, height)
	r := renderer.New(width, height)

	a := &App{
		window:   window,
		input:    im,
		camera:   cam,
		world:    w,
		scene:    sc,
		renderer: r,
		factory:  f,
		watcher:  watcher,
		controls: &Controls{
			Input:  im,
			Camera: cam,
			World:  w,
			Ground: Ground(cfg.Terrain),
		},
		crosshair:        f.CreateCrosshair(),
		fpsLimiter:       NewFPSLimiter(),
		lastTime:         time.Now(),
		lastFPSCheckTime: time.Now(),
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.renderer.SetViewport(width, height)
		a.camera.SetAspect(width, height)
	})
	a.setCaptured(true)
	return a
}

func (a *App) Camera() *camera.Camera { return a.camera }

func (a *App) World() *world.World { return a.world }

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.Tick()
	}
}

// Tick runs one frame: input, camera, render, present, then pacing.
func (a *App) Tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := min(now.Sub(a.lastTime).Seconds(), MaxFrameDelta)
	a.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	var fx Effects
	func() {
		defer profiling.Track("controls.Update")()
		fx = a.controls.Update(float32(dt), a.captured)
	}()
	a.applyEffects(fx)
	a.reloadChangedShaders()

	a.renderer.SetWireframe(config.GetWireframe())
	a.renderer.Render(a.scene, scene.RenderContext{
		View:        a.camera.ViewMatrix(),
		Projection:  a.camera.ProjectionMatrix(),
		EyePosition: a.camera.Position(),
		Lighting:    a.world.Lighting(),
		DT:          dt,
	})

	if a.captured {
		a.crosshair.Render(a.camera.Aspect())
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	if d := time.Since(now); d > slowFrame {
		logging.L().Debug("slow frame", append([]zap.Field{zap.Duration("frame", d)}, profiling.Fields(5)...)...)
	}

	a.frames++
	if time.Since(a.lastFPSCheckTime) >= time.Second {
		logging.L().Info("fps",
			zap.Int("fps", a.frames),
			zap.Int("instances", a.scene.InstanceCount()),
			zap.Float32("fov", a.camera.FOV()),
		)
		a.frames = 0
		a.lastFPSCheckTime = time.Now()
	}

	a.input.PostUpdate() // Clear "JustPressed" flags

	a.fpsLimiter.Wait(a.window.GetAttrib(glfw.Focused) == glfw.False)
}

func (a *App) applyEffects(fx Effects) {
	if fx.ToggleCapture {
		a.setCaptured(!a.captured)
	}
	if fx.ToggleWireframe {
		on := config.ToggleWireframe()
		logging.L().Info("wireframe", zap.Bool("on", on))
	}
	if fx.ReloadShaders {
		a.factory.ReloadShaders()
	}
	if fx.Quit {
		a.window.SetShouldClose(true)
	}
}

func (a *App) reloadChangedShaders() {
	if a.watcher == nil {
		return
	}
	for _, base := range a.watcher.Drain() {
		a.factory.ReloadShader(base)
	}
}

func (a *App) setCaptured(on bool) {
	a.captured = on
	if on {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	a.input.ResetMouse()
}

// Close releases the scene and stops the shader watcher.
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logging.L().Warn("close shader watcher", zap.Error(err))
		}
		a.watcher = nil
	}
	if a.crosshair != nil {
		a.crosshair.Dispose()
		a.crosshair = nil
	}
	if a.scene != nil {
		a.scene.Dispose()
		a.scene = nil
	}
}
