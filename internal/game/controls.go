package game

import (
	"scenery/internal/camera"
	"scenery/internal/input"
	"scenery/internal/world"
)

// Effects are the outcomes of one frame of input that need the window or GL.
type Effects struct {
	ToggleCapture   bool
	ToggleWireframe bool
	ReloadShaders   bool
	Quit            bool
}

// Controls turns input state into camera and world changes. It holds no
// GL state, so the frame logic can run without a window.
type Controls struct {
	Input  *input.InputManager
	Camera *camera.Camera
	World  *world.World

	// Ground reports the surface height under (x, z). Nil means flat at 0.
	Ground func(x, z float32) float32
}

var movements = [...]struct {
	action input.Action
	move   camera.Movement
}{
	{input.ActionMoveForward, camera.MoveForward},
	{input.ActionMoveBackward, camera.MoveBackward},
	{input.ActionMoveLeft, camera.MoveLeft},
	{input.ActionMoveRight, camera.MoveRight},
}

// Floor is where the camera comes to rest at its current position.
func (c *Controls) Floor() float32 {
	floor := c.World.FloorHeight
	if c.Ground != nil {
		p := c.Camera.Position()
		floor += c.Ground(p.X(), p.Z())
	}
	return floor
}

// Update applies one frame of input. Mouse look only applies while the
// cursor is captured; motion from an uncaptured cursor is discarded.
func (c *Controls) Update(dt float32, captured bool) Effects {
	dx, dy := c.Input.ConsumeMouseDelta()
	if captured {
		c.Camera.UpdateDirection(float32(dx), float32(dy), dt)
	}

	for _, m := range movements {
		if c.Input.IsActive(m.action) {
			c.Camera.UpdateLocation(m.move, dt)
		}
	}

	if c.Input.JustPressed(input.ActionToggleGravity) {
		c.World.ToggleGravity()
	}
	if c.Input.IsActive(input.ActionJump) && c.World.HasGravity() {
		c.Camera.Jump()
	}
	c.Camera.UpdateYLocation(c.World.HasGravity(), c.Floor())

	if c.Input.JustPressed(input.ActionAmbientUp) {
		c.World.AdjustAmbient(world.AmbientStep)
	}
	if c.Input.JustPressed(input.ActionAmbientDown) {
		c.World.AdjustAmbient(-world.AmbientStep)
	}

	if _, scrollY := c.Input.ConsumeScroll(); scrollY != 0 {
		c.Camera.Zoom(float32(scrollY))
	}

	return Effects{
		ToggleCapture:   c.Input.JustReleased(input.ActionToggleMouseCapture),
		ToggleWireframe: c.Input.JustPressed(input.ActionToggleWireframe),
		ReloadShaders:   c.Input.JustPressed(input.ActionReloadShaders),
		Quit:            c.Input.JustPressed(input.ActionQuit),
	}
}
