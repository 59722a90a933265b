package scene

import "github.com/go-gl/mathgl/mgl32"

// MaterialFloats is the number of float32 values one material occupies in
// the per-instance buffer: four colours plus a vec4 carrying shininess.
const MaterialFloats = 5 * 4

// Material describes how a surface reacts to light.
type Material struct {
	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Emissive  mgl32.Vec4
	Shininess float32
}

func DefaultMaterial() Material {
	return Material{
		Ambient:   mgl32.Vec4{1, 1, 1, 1},
		Diffuse:   mgl32.Vec4{0.8, 0.8, 0.8, 1},
		Specular:  mgl32.Vec4{0.5, 0.5, 0.5, 1},
		Emissive:  mgl32.Vec4{0, 0, 0, 1},
		Shininess: 32,
	}
}

// AppendInstance appends the material's per-instance block to buf.
func (m Material) AppendInstance(buf []float32) []float32 {
	buf = append(buf, m.Ambient[:]...)
	buf = append(buf, m.Diffuse[:]...)
	buf = append(buf, m.Specular[:]...)
	buf = append(buf, m.Emissive[:]...)
	return append(buf, m.Shininess, 0, 0, 0)
}
