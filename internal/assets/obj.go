package assets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scenery/internal/logging"
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// objRef is one corner of a face: 0-based position, uv and normal indices,
// -1 when absent.
type objRef struct{ v, vt, vn int }

type objGroup struct {
	name     string
	material string
	faces    [][3]objRef
}

type objMaterial struct {
	mat      scene.Material
	diffuse  string
	specular string
}

func loadOBJ(path string) ([]MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()
	return parseOBJ(f, filepath.Dir(path))
}

func parseOBJ(r io.Reader, dir string) ([]MeshData, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		groups    []*objGroup
	)
	materials := map[string]objMaterial{}
	cur := &objGroup{name: "default"}

	// A new group starts at o/g, and at usemtl once the current one has faces.
	startGroup := func(name, material string) {
		if len(cur.faces) > 0 {
			groups = append(groups, cur)
		}
		cur = &objGroup{name: name, material: material}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "o", "g":
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			startGroup(name, cur.material)
		case "usemtl":
			if len(fields) > 1 && fields[1] != cur.material {
				if len(cur.faces) > 0 {
					startGroup(cur.name, fields[1])
				} else {
					cur.material = fields[1]
				}
			}
		case "mtllib":
			for _, lib := range fields[1:] {
				loaded, err := loadMTL(filepath.Join(dir, lib), dir)
				if err != nil {
					logging.L().Warn("mtllib not loaded", zap.String("path", lib), zap.Error(err))
					continue
				}
				for k, v := range loaded {
					materials[k] = v
				}
			}
		case "f":
			if len(fields) < 4 {
				continue
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := parseFaceRef(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				refs = append(refs, ref)
			}
			for i := 1; i+1 < len(refs); i++ {
				cur.faces = append(cur.faces, [3]objRef{refs[0], refs[i], refs[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(cur.faces) > 0 {
		groups = append(groups, cur)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("obj has no faces")
	}

	meshes := make([]MeshData, 0, len(groups))
	for _, g := range groups {
		m := buildOBJMesh(g, positions, normals, uvs)
		if om, ok := materials[g.material]; ok {
			m.Material = om.mat
			m.DiffuseTexture = om.diffuse
			m.SpecularTexture = om.specular
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceRef parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative indices
// count back from the end of the lists read so far.
func parseFaceRef(tok string, nv, nvt, nvn int) (objRef, error) {
	ref := objRef{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	counts := [3]int{nv, nvt, nvn}
	dst := [3]*int{&ref.v, &ref.vt, &ref.vn}
	for i := 0; i < len(parts) && i < 3; i++ {
		if parts[i] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return ref, fmt.Errorf("bad face index %q", tok)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += counts[i]
		default:
			return ref, fmt.Errorf("zero face index %q", tok)
		}
		if n < 0 || n >= counts[i] {
			return ref, fmt.Errorf("face index %q out of range", tok)
		}
		*dst[i] = n
	}
	if ref.v < 0 {
		return ref, fmt.Errorf("face %q has no position", tok)
	}
	return ref, nil
}

// buildOBJMesh deduplicates corners into an indexed mesh.
func buildOBJMesh(g *objGroup, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) MeshData {
	m := MeshData{Name: g.name, Material: scene.DefaultMaterial()}
	seen := map[objRef]uint32{}
	missingNormals := false

	for _, face := range g.faces {
		for _, ref := range face {
			if idx, ok := seen[ref]; ok {
				m.Indices = append(m.Indices, idx)
				continue
			}
			v := Vertex{Position: positions[ref.v]}
			if ref.vt >= 0 {
				v.UV = uvs[ref.vt]
			}
			if ref.vn >= 0 {
				v.Normal = normals[ref.vn]
			} else {
				missingNormals = true
			}
			idx := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, v)
			seen[ref] = idx
			m.Indices = append(m.Indices, idx)
		}
	}

	if missingNormals {
		GenerateNormals(m.Vertices, m.Indices)
	}
	return m
}

func loadMTL(path, dir string) (map[string]objMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseMTL(f, dir)
}

func parseMTL(r io.Reader, dir string) (map[string]objMaterial, error) {
	mats := map[string]objMaterial{}
	var name string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) > 1 {
				name = fields[1]
				mats[name] = objMaterial{mat: scene.DefaultMaterial()}
			}
			continue
		}
		cur, ok := mats[name]
		if !ok {
			continue
		}

		switch fields[0] {
		case "Ka", "Kd", "Ks", "Ke":
			c, err := parseFloats(fields[1:], 3)
			if err != nil {
				continue
			}
			col := mgl32.Vec4{c[0], c[1], c[2], 1}
			switch fields[0] {
			case "Ka":
				cur.mat.Ambient = col
			case "Kd":
				cur.mat.Diffuse = col
			case "Ks":
				cur.mat.Specular = col
			case "Ke":
				cur.mat.Emissive = col
			}
		case "Ns":
			if v, err := parseFloats(fields[1:], 1); err == nil {
				cur.mat.Shininess = max(1, v[0])
			}
		case "map_Kd":
			if len(fields) > 1 {
				cur.diffuse = filepath.Join(dir, fields[len(fields)-1])
			}
		case "map_Ks":
			if len(fields) > 1 {
				cur.specular = filepath.Join(dir, fields[len(fields)-1])
			}
		}
		mats[name] = cur
	}
	return mats, scanner.Err()
}
