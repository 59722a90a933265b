package graphics

import (
	"scenery/internal/assets"
	"scenery/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute locations shared with the shaders.
const (
	attribPosition = 0
	attribNormal   = 1
	attribUV       = 2
	// attribModel occupies four consecutive locations, one per column.
	attribModel = 3
	// attribMaterial occupies five: ambient, diffuse, specular, emissive, shininess.
	attribMaterial = 7
)

// Mesh is an indexed triangle mesh on the GPU with per-instance buffers for
// model matrices and materials.
type Mesh struct {
	vao, vbo, ebo uint32
	matrixVBO     uint32
	materialVBO   uint32
	indexCount    int32
	instanceCap   int
}

// NewMesh uploads data. Must be called on the GL thread.
func NewMesh(data *assets.MeshData) *Mesh {
	m := &Mesh{indexCount: int32(len(data.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.GenBuffers(1, &m.matrixVBO)
	gl.GenBuffers(1, &m.materialVBO)

	gl.BindVertexArray(m.vao)

	vertices := data.Interleave()
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(data.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}

	const stride = int32(assets.VertexFloats * 4)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(attribUV)
	gl.VertexAttribPointer(attribUV, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, m.matrixVBO)
	for i := uint32(0); i < 4; i++ {
		gl.EnableVertexAttribArray(attribModel + i)
		gl.VertexAttribPointer(attribModel+i, 4, gl.FLOAT, false, 16*4, gl.PtrOffset(int(i)*16))
		gl.VertexAttribDivisor(attribModel+i, 1)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, m.materialVBO)
	for i := uint32(0); i < 5; i++ {
		gl.EnableVertexAttribArray(attribMaterial + i)
		gl.VertexAttribPointer(attribMaterial+i, 4, gl.FLOAT, false, scene.MaterialFloats*4, gl.PtrOffset(int(i)*16))
		gl.VertexAttribDivisor(attribMaterial+i, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

// DrawInstanced uploads the batch and draws every instance in one call.
func (m *Mesh) DrawInstanced(batch *scene.InstanceBatch) {
	n := batch.Len()
	if n == 0 || m.indexCount == 0 {
		return
	}
	matrices := batch.MatrixData()
	materials := batch.MaterialData()

	// Orphan on growth, sub-upload otherwise.
	grow := n > m.instanceCap
	upload := func(vbo uint32, data []float32) {
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		if grow {
			gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
		} else {
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
		}
	}
	upload(m.matrixVBO, matrices)
	upload(m.materialVBO, materials)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if grow {
		m.instanceCap = n
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil, int32(n))
	gl.BindVertexArray(0)
}

func (m *Mesh) Dispose() {
	if m.vao == 0 {
		return
	}
	buffers := []uint32{m.vbo, m.ebo, m.matrixVBO, m.materialVBO}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteVertexArrays(1, &m.vao)
	m.vao = 0
}
