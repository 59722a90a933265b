package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Grounded is the jump counter value of a camera resting on the floor.
	Grounded = -1
	// JumpCooldownFrames is how many frames must pass after landing before
	// another jump is accepted.
	JumpCooldownFrames = 8

	// FrameTick is the duration of one jump-counter step in seconds.
	FrameTick = float32(1.0 / 60.0)

	// PitchEpsilon keeps pitch off the singular values 0 and ±90°.
	PitchEpsilon = float32(0.001)

	MinFOV     = float32(1.0)
	MaxFOV     = float32(45.0)
	DefaultFOV = MaxFOV

	NearPlane = float32(0.01)
	FarPlane  = float32(1000.0)
)

var upVector = mgl32.Vec3{0, 1, 0}

// Movement is one of the four camera-relative directional moves.
type Movement int

const (
	MoveNone Movement = iota
	MoveForward
	MoveBackward
	MoveLeft
	MoveRight
)

// Options tune how fast the camera reacts to input.
type Options struct {
	LookSensitivity float32 // radians per mouse unit per second
	MoveSensitivity float32 // world units per second
	JumpSpeed       float32 // initial upward speed of a jump
	Gravity         float32 // g, world units per second squared
	FOV             float32 // degrees
}

// DefaultOptions returns the tuning used by the viewer when no config overrides it.
func DefaultOptions() Options {
	return Options{
		LookSensitivity: 0.5,
		MoveSensitivity: 10.0,
		JumpSpeed:       6.0,
		Gravity:         9.81,
		FOV:             DefaultFOV,
	}
}

// Camera is a free-look camera whose orientation is stored only as a unit
// direction vector. Pitch and yaw are derived from it on demand.
type Camera struct {
	position  mgl32.Vec3
	direction mgl32.Vec3

	opts   Options
	fov    float32
	aspect float32

	jumpFrame int
	jumpBase  float32
	jumpSpeed float32
}

// New creates a camera at position looking along direction.
// A zero-length direction falls back to +X.
func New(position, direction mgl32.Vec3, opts Options) *Camera {
	c := &Camera{
		position:  position,
		direction: mgl32.Vec3{1, 0, 0},
		opts:      opts,
		aspect:    1,
		jumpFrame: Grounded,
	}
	c.SetDirection(direction)
	c.SetFOV(opts.FOV)
	return c
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }

func (c *Camera) SetPosition(p mgl32.Vec3) { c.position = p }

func (c *Camera) Direction() mgl32.Vec3 { return c.direction }

// SetDirection stores the normalized direction. Zero-length input is ignored.
// Directions steeper than the pitch limit are tilted back under it so the
// view matrix never looks along the up vector.
func (c *Camera) SetDirection(d mgl32.Vec3) {
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	if pitch := math32.Asin(mgl32.Clamp(d.Y(), -1, 1)); math32.Abs(pitch) > math32.Pi/2-PitchEpsilon {
		pitch = clampPitch(pitch)
		yaw := math32.Atan2(d.Z(), d.X())
		d = mgl32.Vec3{
			math32.Cos(pitch) * math32.Cos(yaw),
			math32.Sin(pitch),
			math32.Cos(pitch) * math32.Sin(yaw),
		}
	}
	c.direction = d
}

// Pitch returns the elevation angle of the direction in radians.
func (c *Camera) Pitch() float32 {
	y := c.direction.Y()
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	return math32.Asin(y)
}

// Yaw returns the heading of the direction in the XZ plane in radians.
func (c *Camera) Yaw() float32 {
	return math32.Atan2(c.direction.Z(), c.direction.X())
}

// UpdateDirection turns the camera by a mouse delta.
func (c *Camera) UpdateDirection(deltaX, deltaY, dt float32) {
	step := c.opts.LookSensitivity * dt
	pitch := clampPitch(c.Pitch() - deltaY*step)
	yaw := c.Yaw() + deltaX*step

	c.SetDirection(mgl32.Vec3{
		math32.Cos(pitch) * math32.Cos(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch) * math32.Sin(yaw),
	})
}

func clampPitch(p float32) float32 {
	limit := math32.Pi/2 - PitchEpsilon
	switch {
	case p >= limit:
		return limit
	case p <= -limit:
		return -limit
	case p == 0:
		return PitchEpsilon
	}
	return p
}

// UpdateLocation moves the camera in the horizontal plane relative to where it
// is looking. Movements other than the four directions are ignored.
func (c *Camera) UpdateLocation(m Movement, dt float32) {
	if m < MoveForward || m > MoveRight {
		return
	}
	speed := c.opts.MoveSensitivity * dt
	pitch, yaw := c.Pitch(), c.Yaw()

	forwardX := math32.Cos(pitch) * math32.Cos(yaw)
	forwardZ := math32.Cos(pitch) * math32.Sin(yaw)
	strafeX := math32.Cos(yaw - math32.Pi/2)
	strafeZ := math32.Sin(yaw - math32.Pi/2)

	switch m {
	case MoveForward:
		c.position[0] += forwardX * speed
		c.position[2] += forwardZ * speed
	case MoveBackward:
		c.position[0] -= forwardX * speed
		c.position[2] -= forwardZ * speed
	case MoveLeft:
		c.position[0] += strafeX * speed
		c.position[2] += strafeZ * speed
	case MoveRight:
		c.position[0] -= strafeX * speed
		c.position[2] -= strafeZ * speed
	}
}

// JumpFrame exposes the jump counter: >0 airborne, Grounded idle, below
// Grounded cooling down after a landing.
func (c *Camera) JumpFrame() int { return c.jumpFrame }

// Jump starts a jump arc. It only succeeds while grounded.
func (c *Camera) Jump() bool {
	if c.jumpFrame != Grounded {
		return false
	}
	c.startArc(c.opts.JumpSpeed)
	return true
}

func (c *Camera) startArc(speed float32) {
	c.jumpFrame = 1
	c.jumpBase = c.position.Y()
	c.jumpSpeed = speed
}

// UpdateYLocation advances the vertical motion by one frame. Without gravity
// the camera flies freely and never counts as airborne.
func (c *Camera) UpdateYLocation(gravity bool, floor float32) {
	if !gravity {
		c.jumpFrame = Grounded
		return
	}

	switch {
	case c.jumpFrame > 0:
		t := float32(c.jumpFrame) * FrameTick
		y := c.jumpBase + c.jumpSpeed*t - 0.5*c.opts.Gravity*t*t
		c.jumpFrame++
		if y <= floor {
			y = floor
			c.jumpFrame = Grounded - JumpCooldownFrames
		}
		c.position[1] = y
	case c.jumpFrame < Grounded:
		c.jumpFrame++
		if c.position.Y() < floor {
			c.position[1] = floor
		}
	default:
		// Drops no larger than one frame of walking are followed directly,
		// so walking downhill keeps the camera grounded.
		if c.position.Y()-floor > c.opts.MoveSensitivity*FrameTick {
			c.startArc(0)
		} else {
			c.position[1] = floor
		}
	}
}

func (c *Camera) FOV() float32 { return c.fov }

// SetFOV sets the vertical field of view in degrees, clamped to [MinFOV, MaxFOV].
func (c *Camera) SetFOV(fov float32) {
	switch {
	case fov < MinFOV:
		fov = MinFOV
	case fov > MaxFOV:
		fov = MaxFOV
	}
	c.fov = fov
}

// Zoom narrows the field of view by a scroll-wheel offset.
func (c *Camera) Zoom(scrollY float32) {
	c.SetFOV(c.fov - scrollY)
}

func (c *Camera) Aspect() float32 { return c.aspect }

// SetAspect updates the aspect ratio from a framebuffer size.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.direction), upVector)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, NearPlane, FarPlane)
}
