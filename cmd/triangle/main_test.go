package main

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangleMesh(t *testing.T) {
	m := triangleMesh()
	require.Len(t, m.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)

	// Counter-clockwise as seen from +Z.
	a, b, c := m.Vertices[0].Position, m.Vertices[1].Position, m.Vertices[2].Position
	assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Z(), float32(0))
	for _, v := range m.Vertices {
		assert.LessOrEqual(t, math32.Abs(v.Position.X()), float32(1), "inside clip space")
		assert.LessOrEqual(t, math32.Abs(v.Position.Y()), float32(1), "inside clip space")
	}
}

func TestTriangleMaterialIsEmissive(t *testing.T) {
	mat := triangleMaterial()
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, mat.Emissive)
	assert.Equal(t, float32(1), mat.Diffuse.W(), "opaque, so the fragment is kept")
}

func TestSpin(t *testing.T) {
	assert.True(t, mgl32.Ident4().ApproxEqual(spin(0, 1)))

	quarter := spin(math32.Pi/2/spinSpeed, 1)
	top := quarter.Mul4x1(mgl32.Vec4{0, 0.5, 0, 1})
	assert.InDelta(t, -0.5, top.X(), 1e-5)
	assert.InDelta(t, 0, top.Y(), 1e-5)

	wide := spin(0, 2).Mul4x1(mgl32.Vec4{0.5, 0.5, 0, 1})
	assert.InDelta(t, 0.25, wide.X(), 1e-6)
	assert.InDelta(t, 0.5, wide.Y(), 1e-6)

	assert.True(t, mgl32.Ident4().ApproxEqual(spin(0, 0)), "degenerate aspect is ignored")
}
