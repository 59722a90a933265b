package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderable struct {
	id        string
	transform Transform
	material  Material
	log       *[]string
	batches   []int
	disposed  bool
}

func (f *fakeRenderable) RenderableID() string             { return f.id }
func (f *fakeRenderable) TransformationMatrix() mgl32.Mat4 { return f.transform.Matrix() }
func (f *fakeRenderable) Material() Material               { return f.material }
func (f *fakeRenderable) Dispose()                         { f.disposed = true }

func (f *fakeRenderable) Render(_ RenderContext, batch *InstanceBatch) {
	f.batches = append(f.batches, batch.Len())
	if f.log != nil {
		*f.log = append(*f.log, f.id)
	}
}

func newFake(id string, x float32, log *[]string) *fakeRenderable {
	tr := IdentityTransform()
	tr.Position = mgl32.Vec3{x, 0, 0}
	return &fakeRenderable{id: id, transform: tr, material: DefaultMaterial(), log: log}
}

func TestAddRenderableGroupsByID(t *testing.T) {
	s := New()
	s.AddRenderable(newFake("a.obj", 0, nil))
	s.AddRenderable(newFake("b.obj", 1, nil))
	s.AddRenderable(newFake("a.obj", 2, nil))
	s.AddRenderable(nil)

	assert.Equal(t, 2, s.GroupCount())
	assert.Equal(t, 3, s.InstanceCount())
	require.NotNil(t, s.Group("a.obj"))
	assert.Equal(t, 2, s.Group("a.obj").Len())
	assert.Nil(t, s.Group("missing"))
}

func TestGroupsKeepInsertionOrder(t *testing.T) {
	s := New()
	for _, id := range []string{"z", "a", "m", "a", "b"} {
		s.AddRenderable(newFake(id, 0, nil))
	}
	var ids []string
	for _, g := range s.Groups() {
		ids = append(ids, g.ID())
	}
	assert.Equal(t, []string{"z", "a", "m", "b"}, ids)
}

func TestGroupRenderUsesFirstMemberOnce(t *testing.T) {
	g := NewRenderableGroup("tree")
	first := newFake("tree", 0, nil)
	second := newFake("tree", 5, nil)
	g.Add(first)
	g.Add(second)
	g.Add(nil)

	g.Render(RenderContext{})
	assert.Equal(t, []int{2}, first.batches)
	assert.Empty(t, second.batches)
}

func TestEmptyGroupRenderIsNoop(t *testing.T) {
	g := NewRenderableGroup("empty")
	assert.NotPanics(t, func() { g.Render(RenderContext{}) })
	assert.Equal(t, 0, g.BuildBatch().Len())
}

func TestBuildBatchMatchesMembers(t *testing.T) {
	g := NewRenderableGroup("rock")
	var members []*fakeRenderable
	for i := range 4 {
		f := newFake("rock", float32(i), nil)
		f.material.Shininess = float32(i)
		g.Add(f)
		members = append(members, f)
	}

	b := g.BuildBatch()
	require.Equal(t, 4, b.Len())
	require.Len(t, b.Materials, 4)
	for i, m := range b.Matrices {
		assert.Equal(t, float32(i), m.Col(3).X())
		assert.Equal(t, float32(i), b.Materials[i].Shininess)
	}

	// Rebuilding does not accumulate stale entries and picks up moves.
	members[2].transform.Position = mgl32.Vec3{7, 8, 9}
	members[2].material.Shininess = 99
	b = g.BuildBatch()
	assert.Equal(t, 4, b.Len())
	assert.Len(t, b.MatrixData(), 4*16)
	assert.Len(t, b.MaterialData(), 4*MaterialFloats)
	assert.Equal(t, mgl32.Vec4{7, 8, 9, 1}, b.Matrices[2].Col(3))
	assert.Equal(t, float32(99), b.Materials[2].Shininess)
	assert.Equal(t, float32(1), b.Matrices[1].Col(3).X())
	assert.Equal(t, []float32{7, 8, 9}, b.MatrixData()[2*16+12:2*16+15])
}

func TestSceneRenderOrder(t *testing.T) {
	var log []string
	s := New()
	s.SetSky(newFake("sky", 0, &log))
	s.AddRenderable(newFake("house", 0, &log))
	s.SetTerrain(newFake("terrain", 0, &log))
	s.AddRenderable(newFake("tree", 0, &log))
	s.AddRenderable(newFake("house", 1, &log))

	s.Render(RenderContext{})
	assert.Equal(t, []string{"terrain", "house", "tree", "sky"}, log)
}

func TestSceneDispose(t *testing.T) {
	s := New()
	sky := newFake("sky", 0, nil)
	terrain := newFake("terrain", 0, nil)
	member := newFake("m", 0, nil)
	s.SetSky(sky)
	s.SetTerrain(terrain)
	s.AddRenderable(member)

	s.Dispose()
	assert.True(t, sky.disposed)
	assert.True(t, terrain.disposed)
	assert.True(t, member.disposed)
	assert.Equal(t, 0, s.GroupCount())
	assert.NotPanics(t, func() { s.Render(RenderContext{}) })
}

func TestTransformMatrixOrder(t *testing.T) {
	tr := Transform{Position: mgl32.Vec3{1, 2, 3}, Scale: 2}
	tr.SetRotationDegrees(0, 90, 0)

	// Scale first, then rotate, then translate.
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1.0, p.X(), 1e-5)
	assert.InDelta(t, 2.0, p.Y(), 1e-5)
	assert.InDelta(t, 1.0, p.Z(), 1e-5)

	assert.True(t, IdentityTransform().Matrix().ApproxEqual(mgl32.Ident4()))

	tr = Transform{Position: mgl32.Vec3{-4, 0.5, 6}, Scale: 1.5}
	tr.SetRotationDegrees(30, 45, 60)
	rx, ry, rz := mgl32.HomogRotate3DX(tr.Rotation.X()), mgl32.HomogRotate3DY(tr.Rotation.Y()), mgl32.HomogRotate3DZ(tr.Rotation.Z())
	translate, scale := mgl32.Translate3D(-4, 0.5, 6), mgl32.Scale3D(1.5, 1.5, 1.5)

	want := translate.Mul4(rx).Mul4(ry).Mul4(rz).Mul4(scale)
	assert.True(t, want.ApproxEqualThreshold(tr.Matrix(), 1e-5))

	reversed := translate.Mul4(rz).Mul4(ry).Mul4(rx).Mul4(scale)
	assert.False(t, reversed.ApproxEqualThreshold(tr.Matrix(), 1e-3), "rotations apply X, then Y, then Z")
}

func TestMaterialAppendInstance(t *testing.T) {
	m := DefaultMaterial()
	m.Shininess = 64
	buf := m.AppendInstance(nil)
	require.Len(t, buf, MaterialFloats)
	assert.Equal(t, m.Diffuse[:], buf[4:8])
	assert.Equal(t, []float32{64, 0, 0, 0}, buf[16:20])
}

func BenchmarkBuildBatch(b *testing.B) {
	g := NewRenderableGroup("bench")
	for i := range 1024 {
		f := newFake("bench", float32(i), nil)
		f.transform.SetRotationDegrees(10, float32(i), 0)
		g.Add(f)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		batch := g.BuildBatch()
		_ = batch.MatrixData()
		_ = batch.MaterialData()
	}
}
