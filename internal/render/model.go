// Package render holds the concrete renderables: models, entities, terrain,
// images and the skybox, plus the factory that builds them.
package render

import (
	"scenery/internal/assets"
	"scenery/internal/graphics"
	"scenery/internal/scene"
)

// Texture units used by the default shader.
const (
	diffuseUnit  = 0
	specularUnit = 1
)

// Model is a set of GPU meshes sharing one source file.
type Model struct {
	Path   string
	meshes []modelMesh
	loaded bool

	// scratch reused when instances take each mesh's own material
	materials []scene.Material
}

type modelMesh struct {
	mesh     *graphics.Mesh
	material scene.Material
	diffuse  *graphics.Texture
	specular *graphics.Texture
}

// NewModel uploads data to the GPU. A nil data yields an unloaded model that
// renders nothing. Must be called on the GL thread.
func NewModel(path string, data *assets.ModelData, textures *graphics.TextureCache) *Model {
	m := &Model{Path: path}
	if data == nil || len(data.Meshes) == 0 {
		return m
	}
	for i := range data.Meshes {
		md := &data.Meshes[i]
		mm := modelMesh{mesh: graphics.NewMesh(md), material: md.Material}
		if textures != nil {
			mm.diffuse = lookupTexture(textures, md.DiffuseTexture)
			mm.specular = lookupTexture(textures, md.SpecularTexture)
		}
		m.meshes = append(m.meshes, mm)
	}
	m.loaded = true
	return m
}

func lookupTexture(textures *graphics.TextureCache, path string) *graphics.Texture {
	if path == "" {
		return nil
	}
	tex, err := textures.Get(path)
	if err != nil {
		return nil
	}
	return tex
}

func (m *Model) Loaded() bool { return m != nil && m.loaded }

// Material is the material of the first mesh, used when an entity has no
// override.
func (m *Model) Material() scene.Material {
	if !m.Loaded() {
		return scene.DefaultMaterial()
	}
	return m.meshes[0].material
}

// Render draws every mesh once per batch entry. With meshMaterials set, each
// mesh substitutes its own material for the per-instance ones.
func (m *Model) Render(shader *graphics.Shader, batch *scene.InstanceBatch, meshMaterials bool) {
	if !m.Loaded() || batch.Len() == 0 {
		return
	}
	for i := range m.meshes {
		mm := &m.meshes[i]
		bindTexture(shader, "texture_diffuse0", "hasDiffuseTexture", mm.diffuse, diffuseUnit)
		bindTexture(shader, "texture_specular0", "hasSpecularTexture", mm.specular, specularUnit)

		b := batch
		if meshMaterials && i > 0 {
			b = m.withMaterial(batch, mm.material)
		}
		mm.mesh.DrawInstanced(b)
	}
}

func (m *Model) withMaterial(batch *scene.InstanceBatch, mat scene.Material) *scene.InstanceBatch {
	m.materials = m.materials[:0]
	for range batch.Matrices {
		m.materials = append(m.materials, mat)
	}
	return &scene.InstanceBatch{Matrices: batch.Matrices, Materials: m.materials}
}

func bindTexture(shader *graphics.Shader, sampler, flag string, tex *graphics.Texture, unit int32) {
	if tex == nil || tex.ID == 0 {
		shader.SetBool(flag, false)
		return
	}
	tex.Bind(uint32(unit))
	shader.SetInt(sampler, unit)
	shader.SetBool(flag, true)
}

// Dispose frees the meshes. Textures belong to the cache.
func (m *Model) Dispose() {
	if !m.Loaded() {
		return
	}
	for _, mm := range m.meshes {
		mm.mesh.Dispose()
	}
	m.meshes = nil
	m.loaded = false
}

// setFrameUniforms uploads camera and lighting state shared by all lit shaders.
func setFrameUniforms(shader *graphics.Shader, ctx scene.RenderContext) {
	shader.SetMat4("view", ctx.View)
	shader.SetMat4("projection", ctx.Projection)
	shader.SetVec3("eyePosition", ctx.EyePosition)
	shader.SetVec3("ambientLight", ctx.Lighting.AmbientLight)
	shader.SetVec3("sunDirection", ctx.Lighting.SunDirection)
	shader.SetVec3("sunLightColor", ctx.Lighting.SunLightColor)
}
