// Package terrain builds a heightfield mesh from octave value noise.
package terrain

import (
	"scenery/internal/assets"
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Params controls the size and shape of the generated terrain.
type Params struct {
	Size        float32 // world units spanned along X and Z
	Resolution  int     // cells per side
	Amplitude   float32 // maximum height
	Seed        int64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Frequency   float64 // noise lattice cells per world unit
}

func DefaultParams() Params {
	return Params{
		Size:        200,
		Resolution:  128,
		Amplitude:   8,
		Seed:        1337,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
		Frequency:   0.02,
	}
}

// HeightAt samples the terrain surface at world (x, z). It agrees with the
// heights of the generated vertices.
func (p Params) HeightAt(x, z float32) float32 {
	if p.Octaves <= 0 || p.Amplitude == 0 {
		return 0
	}
	n := octaveNoise2D(float64(x)*p.Frequency, float64(z)*p.Frequency, p.Seed,
		p.Octaves, p.Persistence, p.Lacunarity)
	return p.Amplitude * float32(n)
}

// Generate builds a (Resolution+1)² vertex grid centred on the origin with
// averaged vertex normals and two counter-clockwise triangles per cell.
func Generate(p Params) assets.MeshData {
	res := p.Resolution
	if res < 1 {
		res = 1
	}
	side := res + 1
	step := p.Size / float32(res)
	half := p.Size / 2

	vertices := make([]assets.Vertex, 0, side*side)
	for j := range side {
		for i := range side {
			x := -half + float32(i)*step
			z := -half + float32(j)*step
			vertices = append(vertices, assets.Vertex{
				Position: mgl32.Vec3{x, p.HeightAt(x, z), z},
				UV:       mgl32.Vec2{float32(i) / float32(res), float32(j) / float32(res)},
			})
		}
	}

	indices := make([]uint32, 0, res*res*6)
	for j := range res {
		for i := range res {
			a := uint32(j*side + i)
			b := a + uint32(side)
			c := a + 1
			d := b + 1
			indices = append(indices, a, b, c, c, b, d)
		}
	}

	assets.GenerateNormals(vertices, indices)

	mat := scene.DefaultMaterial()
	mat.Diffuse = mgl32.Vec4{0.35, 0.55, 0.25, 1}
	mat.Specular = mgl32.Vec4{0.05, 0.05, 0.05, 1}
	mat.Shininess = 4

	return assets.MeshData{
		Name:     "terrain",
		Vertices: vertices,
		Indices:  indices,
		Material: mat,
	}
}
