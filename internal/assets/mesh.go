package assets

import (
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout uploaded to the GPU: position, normal, uv.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexFloats is the number of float32 values per Vertex.
const VertexFloats = 3 + 3 + 2

// MeshData is one drawable piece of a model, still on the CPU.
type MeshData struct {
	Name            string
	Vertices        []Vertex
	Indices         []uint32
	Material        scene.Material
	DiffuseTexture  string
	SpecularTexture string
}

// ModelData is everything parsed from one model file.
type ModelData struct {
	Path   string
	Meshes []MeshData
}

// VertexCount sums vertices across meshes.
func (m *ModelData) VertexCount() int {
	n := 0
	for i := range m.Meshes {
		n += len(m.Meshes[i].Vertices)
	}
	return n
}

// Interleave flattens vertices into the layout expected by graphics.Mesh.
func (m *MeshData) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexFloats)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.UV[:]...)
	}
	return out
}

// GenerateNormals replaces every vertex normal with the normalized sum of
// the face normals of the triangles that use it. Vertices not referenced by
// any triangle, or whose faces cancel out, get +Y.
func GenerateNormals(vertices []Vertex, indices []uint32) {
	sums := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
			continue
		}
		pa, pb, pc := vertices[a].Position, vertices[b].Position, vertices[c].Position
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		} else {
			continue
		}
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}
	for i := range vertices {
		if sums[i].Len() < 1e-8 {
			vertices[i].Normal = mgl32.Vec3{0, 1, 0}
			continue
		}
		vertices[i].Normal = sums[i].Normalize()
	}
}
