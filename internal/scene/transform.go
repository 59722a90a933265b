package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform places a renderable in the world. Rotation holds per-axis
// angles in radians.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32
}

func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// SetRotationDegrees sets the per-axis rotation from degrees.
func (t *Transform) SetRotationDegrees(x, y, z float32) {
	t.Rotation = mgl32.Vec3{mgl32.DegToRad(x), mgl32.DegToRad(y), mgl32.DegToRad(z)}
}

// Matrix composes translate · rotX · rotY · rotZ · scale. The order is fixed;
// instances rely on it for consistent placement.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	if t.Rotation.X() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	}
	if t.Rotation.Y() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	}
	if t.Rotation.Z() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	}
	return m.Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
}
