package terrain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGridCounts(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 8
	m := Generate(p)

	assert.Len(t, m.Vertices, 9*9)
	assert.Len(t, m.Indices, 8*8*6)
	for _, idx := range m.Indices {
		require.Less(t, int(idx), len(m.Vertices))
	}
}

func TestGenerateClampsResolution(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 0
	m := Generate(p)
	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Indices, 6)
}

func TestFlatTerrainNormalsPointUp(t *testing.T) {
	p := DefaultParams()
	p.Amplitude = 0
	p.Resolution = 4
	m := Generate(p)

	for _, v := range m.Vertices {
		assert.Equal(t, float32(0), v.Position.Y())
		assert.Equal(t, float32(0), v.Normal.X())
		assert.Equal(t, float32(0), v.Normal.Z())
		assert.InDelta(t, 1.0, v.Normal.Y(), 1e-6)
	}
}

func TestGridIsCentredWithUnitUVs(t *testing.T) {
	p := DefaultParams()
	p.Size = 10
	p.Resolution = 2
	m := Generate(p)

	first, last := m.Vertices[0], m.Vertices[len(m.Vertices)-1]
	assert.InDelta(t, -5.0, first.Position.X(), 1e-5)
	assert.InDelta(t, -5.0, first.Position.Z(), 1e-5)
	assert.InDelta(t, 5.0, last.Position.X(), 1e-5)
	assert.InDelta(t, 5.0, last.Position.Z(), 1e-5)
	assert.Equal(t, float32(0), first.UV.X())
	assert.Equal(t, float32(1), last.UV.Y())
}

func TestNormalsAreUnitAndFaceUpwards(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 32
	m := Generate(p)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Normal.Len(), 1e-4)
		assert.Greater(t, v.Normal.Y(), float32(0))
	}
}

func TestHeightAtMatchesVertices(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 16
	m := Generate(p)
	for _, v := range m.Vertices[:20] {
		assert.Equal(t, v.Position.Y(), p.HeightAt(v.Position.X(), v.Position.Z()))
	}
}

func TestHeightStaysWithinAmplitude(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(7))
	for range 1000 {
		x := rng.Float32()*400 - 200
		z := rng.Float32()*400 - 200
		h := p.HeightAt(x, z)
		assert.GreaterOrEqual(t, h, float32(0))
		assert.LessOrEqual(t, h, p.Amplitude)
	}
}

func TestNoiseDeterministicAndSeeded(t *testing.T) {
	a := octaveNoise2D(1.5, 2.7, 42, 4, 0.5, 2)
	b := octaveNoise2D(1.5, 2.7, 42, 4, 0.5, 2)
	c := octaveNoise2D(1.5, 2.7, 43, 4, 0.5, 2)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 0.0, octaveNoise2D(1, 1, 1, 0, 0.5, 2))
}

func TestValueNoiseContinuity(t *testing.T) {
	v1 := valueNoise2D(1.0, 1.0, 42)
	v2 := valueNoise2D(1.01, 1.0, 42)
	assert.InDelta(t, v1, v2, 0.1)
}

func BenchmarkGenerate(b *testing.B) {
	p := DefaultParams()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Generate(p)
	}
}
