package assets

import (
	"fmt"
	"path/filepath"

	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func loadGLTF(path string) ([]MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	l := gltfLoader{doc: doc, dir: filepath.Dir(path)}

	if len(doc.Nodes) == 0 {
		for i := range doc.Meshes {
			if err := l.appendMesh(i, mgl32.Ident4()); err != nil {
				return nil, err
			}
		}
		return l.meshes, nil
	}

	for _, root := range l.roots() {
		if err := l.walk(root, mgl32.Ident4(), 0); err != nil {
			return nil, err
		}
	}
	return l.meshes, nil
}

type gltfLoader struct {
	doc    *gltf.Document
	dir    string
	meshes []MeshData
}

// roots returns the default scene's nodes, or every parentless node when the
// document has no default scene.
func (l *gltfLoader) roots() []int {
	doc := l.doc
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// walk bakes node transforms into vertex positions while descending.
func (l *gltfLoader) walk(idx int, parent mgl32.Mat4, depth int) error {
	if idx < 0 || idx >= len(l.doc.Nodes) || depth > 64 {
		return nil
	}
	n := l.doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(n))
	if n.Mesh != nil {
		if err := l.appendMesh(*n.Mesh, world); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := l.walk(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // x, y, z, w
	s := n.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (l *gltfLoader) appendMesh(meshIdx int, xf mgl32.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(l.doc.Meshes) {
		return fmt.Errorf("gltf: mesh index %d out of range", meshIdx)
	}
	gm := l.doc.Meshes[meshIdx]
	normalXf := xf.Mat3().Inv().Transpose()
	for pi, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		m, err := l.primitive(prim)
		if err != nil {
			return fmt.Errorf("gltf: mesh %d prim %d: %w", meshIdx, pi, err)
		}
		m.Name = gm.Name
		for i := range m.Vertices {
			v := &m.Vertices[i]
			v.Position = xf.Mul4x1(v.Position.Vec4(1)).Vec3()
			if nn := normalXf.Mul3x1(v.Normal); nn.Len() > 0 {
				v.Normal = nn.Normalize()
			}
		}
		l.meshes = append(l.meshes, m)
	}
	return nil
}

// accessor resolves an accessor index from the file. References are not
// validated on decode, so a dangling index must not reach the slice.
func (l *gltfLoader) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(l.doc.Accessors) || l.doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("gltf: accessor %d out of range", idx)
	}
	return l.doc.Accessors[idx], nil
}

func (l *gltfLoader) primitive(prim *gltf.Primitive) (MeshData, error) {
	doc := l.doc
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return MeshData{}, fmt.Errorf("no POSITION attribute")
	}
	acr, err := l.accessor(posIdx)
	if err != nil {
		return MeshData{}, err
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return MeshData{}, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err = l.accessor(idx); err != nil {
			return MeshData{}, err
		}
		if normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
			return MeshData{}, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = l.accessor(idx); err != nil {
			return MeshData{}, err
		}
		if uvs, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
			return MeshData{}, fmt.Errorf("texcoords: %w", err)
		}
	}

	m := MeshData{Vertices: make([]Vertex, len(positions))}
	for i, p := range positions {
		v := Vertex{Position: p}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.UV = uvs[i]
		}
		m.Vertices[i] = v
	}

	if prim.Indices != nil {
		if acr, err = l.accessor(*prim.Indices); err != nil {
			return MeshData{}, err
		}
		if m.Indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return MeshData{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		m.Indices = make([]uint32, len(positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}

	if len(normals) == 0 {
		GenerateNormals(m.Vertices, m.Indices)
	}

	m.Material = scene.DefaultMaterial()
	if prim.Material != nil && *prim.Material < len(doc.Materials) {
		m.Material, m.DiffuseTexture = l.material(doc.Materials[*prim.Material])
	}
	return m, nil
}

// material approximates metallic-roughness with the Phong terms the shaders use.
func (l *gltfLoader) material(gm *gltf.Material) (scene.Material, string) {
	mat := scene.DefaultMaterial()
	e := gm.EmissiveFactor
	mat.Emissive = mgl32.Vec4{float32(e[0]), float32(e[1]), float32(e[2]), 1}

	pbr := gm.PBRMetallicRoughness
	if pbr == nil {
		return mat, ""
	}
	c := pbr.BaseColorFactorOrDefault()
	mat.Diffuse = mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
	mat.Ambient = mat.Diffuse

	roughness := float32(pbr.RoughnessFactorOrDefault())
	metallic := float32(pbr.MetallicFactorOrDefault())
	mat.Shininess = (1-roughness)*(1-roughness)*128 + 1
	s := 0.04 + metallic*0.7
	mat.Specular = mgl32.Vec4{s, s, s, 1}

	var texPath string
	if pbr.BaseColorTexture != nil {
		texPath = l.texturePath(pbr.BaseColorTexture.Index)
	}
	return mat, texPath
}

// texturePath resolves an external image URI. Images embedded in buffers or
// data URIs are not supported and yield "".
func (l *gltfLoader) texturePath(texIdx int) string {
	doc := l.doc
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return ""
	}
	src := *doc.Textures[texIdx].Source
	if src >= len(doc.Images) {
		return ""
	}
	img := doc.Images[src]
	if img.URI == "" || img.IsEmbeddedResource() {
		return ""
	}
	return filepath.Join(l.dir, img.URI)
}
