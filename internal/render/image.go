package render

import (
	"fmt"

	"scenery/internal/assets"
	"scenery/internal/graphics"
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// ImageSize is the edge length of the billboard quad in world units.
const ImageSize = 10

// TextIDPrefix marks the renderable ID of text images.
const TextIDPrefix = "text:"

// textID keys a text image by everything that shapes its texture, so labels
// only share a group when they would rasterize identically.
func textID(fontPath, text string, size float64) string {
	return fmt.Sprintf("%s%s|%s|%g", TextIDPrefix, fontPath, text, size)
}

// Image is a flat textured quad showing a picture or a line of text.
type Image struct {
	Transform scene.Transform

	id       string
	mesh     *graphics.Mesh
	texture  *graphics.Texture
	owned    bool // texture was created for this image, not taken from a cache
	shader   *graphics.Shader
	material scene.Material
}

// imageQuad is the 10×10 quad in the XY plane facing -Z. U runs right to
// left so the picture reads correctly from the side it faces.
func imageQuad() assets.MeshData {
	const w, h = ImageSize, ImageSize
	n := mgl32.Vec3{0, 0, -1}
	return assets.MeshData{
		Name: "image",
		Vertices: []assets.Vertex{
			{Position: mgl32.Vec3{0, h, 0}, Normal: n, UV: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{w, h, 0}, Normal: n, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{w, 0, 0}, Normal: n, UV: mgl32.Vec2{0, 1}},
			{Position: mgl32.Vec3{0, 0, 0}, Normal: n, UV: mgl32.Vec2{1, 1}},
		},
		Indices: []uint32{2, 3, 0, 1, 2, 0},
	}
}

func imageMaterial() scene.Material {
	m := scene.DefaultMaterial()
	m.Diffuse = mgl32.Vec4{1, 1, 1, 1}
	m.Specular = mgl32.Vec4{0, 0, 0, 1}
	m.Emissive = mgl32.Vec4{0.6, 0.6, 0.6, 1}
	return m
}

func newImage(id string, tex *graphics.Texture, owned bool, shader *graphics.Shader) *Image {
	img := &Image{
		Transform: scene.IdentityTransform(),
		id:        id,
		shader:    shader,
		material:  imageMaterial(),
	}
	if tex == nil {
		return img
	}
	quad := imageQuad()
	img.mesh = graphics.NewMesh(&quad)
	img.texture = tex
	img.owned = owned
	return img
}

// NewImageFromFile shows the picture at path. A texture that fails to load
// yields an image that renders nothing.
func NewImageFromFile(path string, textures *graphics.TextureCache, shader *graphics.Shader) *Image {
	tex, err := textures.Get(path)
	if err != nil {
		tex = nil
	}
	return newImage(path, tex, false, shader)
}

// NewTextImage shows text rendered with the given font, or the embedded
// default when fontBytes is nil. fontPath only feeds the renderable ID.
func NewTextImage(fontBytes []byte, fontPath, text string, size float64, shader *graphics.Shader) (*Image, error) {
	id := textID(fontPath, text, size)
	rgba, err := graphics.RasterizeText(fontBytes, text, size)
	if err != nil {
		return newImage(id, nil, false, shader), err
	}
	rgba = graphics.TrimText(rgba)
	return newImage(id, graphics.UploadImage(rgba), true, shader), nil
}

func (i *Image) Loaded() bool { return i.mesh != nil && i.texture != nil }

func (i *Image) RenderableID() string { return i.id }

func (i *Image) TransformationMatrix() mgl32.Mat4 { return i.Transform.Matrix() }

func (i *Image) Material() scene.Material { return i.material }

func (i *Image) SetMaterial(m scene.Material) { i.material = m }

func (i *Image) Render(ctx scene.RenderContext, batch *scene.InstanceBatch) {
	if !i.Loaded() || !i.shader.Use() {
		return
	}
	defer i.shader.StopUse()
	setFrameUniforms(i.shader, ctx)
	bindTexture(i.shader, "texture_diffuse0", "hasDiffuseTexture", i.texture, diffuseUnit)
	i.shader.SetBool("hasSpecularTexture", false)
	i.mesh.DrawInstanced(batch)
}

func (i *Image) Dispose() {
	if i.mesh != nil {
		i.mesh.Dispose()
		i.mesh = nil
	}
	if i.owned && i.texture != nil {
		i.texture.Dispose()
	}
	i.texture = nil
}
