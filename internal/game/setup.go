package game

import (
	"fmt"

	"scenery/internal/camera"
	"scenery/internal/config"
	"scenery/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// SetupWindow creates the window with an OpenGL 4.1 core context and makes
// it current. glfw.Init must have been called.
func SetupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	// Without vsync the FPS limiter paces frames on its own
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

// NewCamera builds the camera described by the config.
func NewCamera(cfg config.CameraConfig) *camera.Camera {
	opts := camera.DefaultOptions()
	if cfg.LookSensitivity > 0 {
		opts.LookSensitivity = cfg.LookSensitivity
	}
	if cfg.MoveSensitivity > 0 {
		opts.MoveSensitivity = cfg.MoveSensitivity
	}
	if cfg.JumpSpeed > 0 {
		opts.JumpSpeed = cfg.JumpSpeed
	}
	if cfg.Gravity > 0 {
		opts.Gravity = cfg.Gravity
	}
	if cfg.FOV > 0 {
		opts.FOV = cfg.FOV
	}
	return camera.New(mgl32.Vec3(cfg.Position), mgl32.Vec3(cfg.Direction), opts)
}

// NewWorld builds the lighting and physics state described by the config.
func NewWorld(cfg config.WorldConfig) *world.World {
	w := world.New()
	w.SetAmbientLightFactor(cfg.Ambient)
	w.SetSunDirection(mgl32.Vec3(cfg.SunDirection))
	w.SetSunLightColor(mgl32.Vec3(cfg.SunColor))
	w.SetSunLightStrength(cfg.SunStrength)
	w.SetGravity(cfg.Gravity)
	w.FloorHeight = cfg.FloorHeight
	return w
}
