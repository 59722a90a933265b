package world

import "github.com/go-gl/mathgl/mgl32"

const (
	DefaultAmbientLightFactor = float32(0.05)
	DefaultSunLightStrength   = float32(0.75)

	// AmbientStep is how much one key press changes the ambient factor.
	AmbientStep = float32(0.05)
	minAmbient  = float32(0.01)
)

var (
	DefaultSunDirection  = mgl32.Vec3{20, 100, 15}
	DefaultSunLightColor = mgl32.Vec3{1, 1, 1}
)

// Lighting is the snapshot of world lighting handed to shaders each frame.
type Lighting struct {
	AmbientLight  mgl32.Vec3
	SunDirection  mgl32.Vec3
	SunLightColor mgl32.Vec3
}

// World holds the global lighting and physics switches of the scene.
type World struct {
	ambientFactor float32
	sunStrength   float32
	sunDirection  mgl32.Vec3
	sunColor      mgl32.Vec3
	gravity       bool

	// FloorHeight is where a gravity-bound camera comes to rest.
	FloorHeight float32
}

func New() *World {
	return &World{
		ambientFactor: DefaultAmbientLightFactor,
		sunStrength:   DefaultSunLightStrength,
		sunDirection:  DefaultSunDirection,
		sunColor:      DefaultSunLightColor,
		gravity:       true,
	}
}

func (w *World) ToggleGravity() { w.gravity = !w.gravity }

func (w *World) HasGravity() bool { return w.gravity }

func (w *World) SetGravity(enabled bool) { w.gravity = enabled }

// SetAmbientLightFactor accepts values in (0, 1]; anything else is ignored.
func (w *World) SetAmbientLightFactor(f float32) {
	if f > 0 && f <= 1 {
		w.ambientFactor = f
	}
}

func (w *World) AmbientLightFactor() float32 { return w.ambientFactor }

// AdjustAmbient nudges the ambient factor, staying within [0.01, 1].
func (w *World) AdjustAmbient(delta float32) {
	f := w.ambientFactor + delta
	if f < minAmbient {
		f = minAmbient
	}
	if f > 1 {
		f = 1
	}
	w.ambientFactor = f
}

// SetSunLightStrength accepts values in (0, 1]; anything else is ignored.
func (w *World) SetSunLightStrength(s float32) {
	if s > 0 && s <= 1 {
		w.sunStrength = s
	}
}

func (w *World) SunLightStrength() float32 { return w.sunStrength }

func (w *World) SetSunDirection(d mgl32.Vec3) {
	if d.Len() > 0 {
		w.sunDirection = d
	}
}

func (w *World) SetSunLightColor(c mgl32.Vec3) { w.sunColor = c }

func (w *World) AmbientLight() mgl32.Vec3 {
	return mgl32.Vec3{1, 1, 1}.Mul(w.ambientFactor)
}

func (w *World) SunDirection() mgl32.Vec3 { return w.sunDirection }

func (w *World) SunLightColor() mgl32.Vec3 { return w.sunColor.Mul(w.sunStrength) }

func (w *World) Lighting() Lighting {
	return Lighting{
		AmbientLight:  w.AmbientLight(),
		SunDirection:  w.SunDirection(),
		SunLightColor: w.SunLightColor(),
	}
}
