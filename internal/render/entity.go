package render

import (
	"scenery/internal/graphics"
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity is one placed instance of a model. Entities of the same model are
// grouped and drawn together through the first one.
type Entity struct {
	Transform scene.Transform

	model    *Model
	shader   *graphics.Shader
	material *scene.Material
}

func NewEntity(model *Model, shader *graphics.Shader) *Entity {
	return &Entity{Transform: scene.IdentityTransform(), model: model, shader: shader}
}

func (e *Entity) Model() *Model { return e.model }

// SetMaterial overrides the model's material for this instance. The group
// leader decides for the whole group whether meshes past the first keep
// their own materials, so entities of one model should either all override
// or none do.
func (e *Entity) SetMaterial(m scene.Material) { e.material = &m }

// ClearMaterial goes back to the model's own materials.
func (e *Entity) ClearMaterial() { e.material = nil }

func (e *Entity) RenderableID() string {
	if e.model == nil {
		return ""
	}
	return e.model.Path
}

func (e *Entity) TransformationMatrix() mgl32.Mat4 { return e.Transform.Matrix() }

func (e *Entity) Material() scene.Material {
	if e.material != nil {
		return *e.material
	}
	return e.model.Material()
}

// Render draws batch with this entity's model and shader.
func (e *Entity) Render(ctx scene.RenderContext, batch *scene.InstanceBatch) {
	if !e.model.Loaded() || !e.shader.Use() {
		return
	}
	defer e.shader.StopUse()
	setFrameUniforms(e.shader, ctx)
	e.model.Render(e.shader, batch, e.material == nil)
}

// Dispose is a no-op: models are shared and owned by the Factory.
func (e *Entity) Dispose() {}
