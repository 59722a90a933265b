package render

import (
	"scenery/internal/graphics"
	"scenery/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SkyBoxID is the renderable ID of the sky.
const SkyBoxID = "skybox"

var skyboxVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// SkyBox draws a cube map around the camera, behind everything else.
type SkyBox struct {
	cubemap  *graphics.Cubemap
	shader   *graphics.Shader
	vao, vbo uint32
}

// NewSkyBox wraps an uploaded cubemap. A nil cubemap renders nothing.
func NewSkyBox(cubemap *graphics.Cubemap, shader *graphics.Shader) *SkyBox {
	s := &SkyBox{cubemap: cubemap, shader: shader}
	if cubemap == nil {
		return s
	}
	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVertices)*4, gl.Ptr(skyboxVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return s
}

func (s *SkyBox) Loaded() bool { return s.cubemap != nil && s.vao != 0 }

func (s *SkyBox) RenderableID() string { return SkyBoxID }

func (s *SkyBox) TransformationMatrix() mgl32.Mat4 { return mgl32.Ident4() }

func (s *SkyBox) Material() scene.Material { return scene.DefaultMaterial() }

// stripTranslation keeps only the rotation of a view matrix so the sky
// follows the camera.
func stripTranslation(view mgl32.Mat4) mgl32.Mat4 {
	view[12], view[13], view[14] = 0, 0, 0
	return view
}

// Render ignores batch; the sky is never instanced.
func (s *SkyBox) Render(ctx scene.RenderContext, _ *scene.InstanceBatch) {
	if !s.Loaded() || !s.shader.Use() {
		return
	}
	defer s.shader.StopUse()

	gl.DepthFunc(gl.LEQUAL)
	defer gl.DepthFunc(gl.LESS)

	s.shader.SetMat4("view", stripTranslation(ctx.View))
	s.shader.SetMat4("projection", ctx.Projection)
	s.shader.SetInt("skybox", 0)
	s.cubemap.Bind(0)

	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(skyboxVertices)/3))
	gl.BindVertexArray(0)
}

func (s *SkyBox) Dispose() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		gl.DeleteBuffers(1, &s.vbo)
		s.vao, s.vbo = 0, 0
	}
	if s.cubemap != nil {
		s.cubemap.Dispose()
		s.cubemap = nil
	}
}
