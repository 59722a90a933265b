package scene

import (
	"scenery/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext carries the per-frame state every renderable needs.
type RenderContext struct {
	View        mgl32.Mat4
	Projection  mgl32.Mat4
	EyePosition mgl32.Vec3
	Lighting    world.Lighting
	DT          float64
}

// Renderable is anything the scene can draw. Renderables that report the
// same RenderableID must share mesh, shader and textures: they are drawn
// together in one instanced call through the first member of their group.
type Renderable interface {
	RenderableID() string
	TransformationMatrix() mgl32.Mat4
	Material() Material
	// Render draws the renderable once per entry of batch.
	Render(ctx RenderContext, batch *InstanceBatch)
	Dispose()
}

// InstanceBatch holds the per-instance data of one group for one frame.
// Matrices and Materials always have the same length and order.
type InstanceBatch struct {
	Matrices  []mgl32.Mat4
	Materials []Material
}

// SingleInstance wraps one transform/material pair, for renderables drawn
// outside a group.
func SingleInstance(m mgl32.Mat4, mat Material) *InstanceBatch {
	return &InstanceBatch{Matrices: []mgl32.Mat4{m}, Materials: []Material{mat}}
}

func (b *InstanceBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Matrices)
}

// Reset empties the batch, keeping its capacity.
func (b *InstanceBatch) Reset() {
	b.Matrices = b.Matrices[:0]
	b.Materials = b.Materials[:0]
}

// MatrixData flattens the matrices in column-major order for upload.
func (b *InstanceBatch) MatrixData() []float32 {
	out := make([]float32, 0, len(b.Matrices)*16)
	for _, m := range b.Matrices {
		out = append(out, m[:]...)
	}
	return out
}

// MaterialData flattens the materials for upload.
func (b *InstanceBatch) MaterialData() []float32 {
	out := make([]float32, 0, len(b.Materials)*MaterialFloats)
	for _, m := range b.Materials {
		out = m.AppendInstance(out)
	}
	return out
}
