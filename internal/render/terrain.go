package render

import (
	"scenery/internal/assets"
	"scenery/internal/graphics"
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// TerrainID is the renderable ID of the terrain.
const TerrainID = "terrain"

// Terrain draws a generated heightfield as a single instance.
type Terrain struct {
	mesh     *graphics.Mesh
	shader   *graphics.Shader
	material scene.Material
	texture  *graphics.Texture
}

// NewTerrain uploads data. texture may be nil.
func NewTerrain(data *assets.MeshData, shader *graphics.Shader, texture *graphics.Texture) *Terrain {
	return &Terrain{
		mesh:     graphics.NewMesh(data),
		shader:   shader,
		material: data.Material,
		texture:  texture,
	}
}

func (t *Terrain) RenderableID() string { return TerrainID }

func (t *Terrain) TransformationMatrix() mgl32.Mat4 { return mgl32.Ident4() }

func (t *Terrain) Material() scene.Material { return t.material }

func (t *Terrain) Render(ctx scene.RenderContext, batch *scene.InstanceBatch) {
	if t.mesh == nil || !t.shader.Use() {
		return
	}
	defer t.shader.StopUse()
	setFrameUniforms(t.shader, ctx)
	bindTexture(t.shader, "texture_diffuse0", "hasDiffuseTexture", t.texture, diffuseUnit)
	t.shader.SetBool("hasSpecularTexture", false)
	t.mesh.DrawInstanced(batch)
}

func (t *Terrain) Dispose() {
	if t.mesh != nil {
		t.mesh.Dispose()
		t.mesh = nil
	}
}
