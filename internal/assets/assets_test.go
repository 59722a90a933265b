package assets

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeOBJ = `# two quads, second one in its own object
mtllib cube.mtl
v 0 0 0
v 1 0 0
v 1 0 -1
v 0 0 -1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
usemtl red
f 1/1 2/2 3/3 4/4
o top
usemtl shiny
f -4/1 -3/2 -2/3
`

const cubeMTL = `newmtl red
Kd 1 0 0
Ka 0.1 0 0
map_Kd red.png
newmtl shiny
Ks 1 1 1
Ke 0.2 0.2 0.2
Ns 250
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadOBJWithMaterials(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cube.obj", cubeOBJ)
	writeFile(t, dir, "cube.mtl", cubeMTL)

	m, err := LoadModel(path)
	require.NoError(t, err)
	require.Len(t, m.Meshes, 2)

	quad := m.Meshes[0]
	assert.Len(t, quad.Indices, 6, "quad is fan triangulated")
	assert.Len(t, quad.Vertices, 4)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, quad.Material.Diffuse)
	assert.Equal(t, mgl32.Vec4{0.1, 0, 0, 1}, quad.Material.Ambient)
	assert.Equal(t, filepath.Join(dir, "red.png"), quad.DiffuseTexture)
	for _, v := range quad.Vertices {
		assert.InDelta(t, 1.0, v.Normal.Y(), 1e-6, "missing normals are generated")
	}

	top := m.Meshes[1]
	assert.Equal(t, "top", top.Name)
	assert.Len(t, top.Indices, 3)
	assert.Equal(t, float32(250), top.Material.Shininess)
	assert.Equal(t, mgl32.Vec4{0.2, 0.2, 0.2, 1}, top.Material.Emissive)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, top.Vertices[0].Position, "negative index -4")
}

func TestParseOBJKeepsFileNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n"
	meshes, err := parseOBJ(strings.NewReader(src), "")
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, meshes[0].Vertices[0].Normal)
}

func TestParseOBJErrors(t *testing.T) {
	cases := map[string]string{
		"no faces":     "v 0 0 0\n",
		"bad index":    "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"zero index":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"bad vertex":   "v 0 zero 0\n",
		"short vertex": "v 0 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseOBJ(strings.NewReader(src), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadModelUnsupported(t *testing.T) {
	_, err := LoadModel("scene.fbx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadModel(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}

func writeTriangleGLB(t *testing.T, dir string) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Materials = []*gltf.Material{{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0, 0, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0), Translation: [3]float64{0, 5, 0}}}
	doc.Scenes[0].Nodes = []int{0}

	path := filepath.Join(dir, "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLTF(t *testing.T) {
	path := writeTriangleGLB(t, t.TempDir())

	m, err := LoadModel(path)
	require.NoError(t, err)
	require.Len(t, m.Meshes, 1)

	mesh := m.Meshes[0]
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, mesh.Material.Diffuse)
	assert.InDelta(t, 5.0, mesh.Vertices[1].Position.Y(), 1e-6, "node translation is baked in")
	assert.InDelta(t, 1.0, mesh.Vertices[1].Position.X(), 1e-6)
	assert.InDelta(t, 1.0, mesh.Vertices[0].Normal.Y(), 1e-6)
	assert.Equal(t, 3, m.VertexCount())
}

func TestLoadModelsSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeTriangleGLB(t, dir)
	bad := writeFile(t, dir, "broken.obj", "v 0 0 0\n")

	out, err := LoadModels(context.Background(), []string{good, bad, good, "nope.3ds"})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Contains(t, out, good)
	assert.NotContains(t, out, bad)
}

func TestLoadGLTFDanglingAccessor(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "dangling.gltf",
		`{"asset":{"version":"2.0"},"meshes":[{"primitives":[{"attributes":{"POSITION":7}}]}]}`)

	var err error
	require.NotPanics(t, func() { _, err = LoadModel(bad) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accessor 7 out of range")

	good := writeTriangleGLB(t, dir)
	out, err := LoadModels(context.Background(), []string{bad, good})
	require.NoError(t, err)
	assert.Contains(t, out, good)
	assert.NotContains(t, out, bad)
}

func TestLoadModelsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadModels(ctx, []string{"a.obj"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateNormalsFallback(t *testing.T) {
	verts := []Vertex{{}, {}, {}, {Position: mgl32.Vec3{5, 5, 5}}}
	GenerateNormals(verts, []uint32{0, 1, 2})
	for _, v := range verts {
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, v.Normal)
	}
}

func TestInterleave(t *testing.T) {
	m := MeshData{Vertices: []Vertex{{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{0, 1, 0},
		UV:       mgl32.Vec2{0.5, 0.25},
	}}}
	assert.Equal(t, []float32{1, 2, 3, 0, 1, 0, 0.5, 0.25}, m.Interleave())
}

func TestLoadImageRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "px.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := LoadImageRGBA(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(2, 1))

	_, err = LoadImageRGBA(filepath.Join(t.TempDir(), "none.png"))
	assert.Error(t, err)
}
