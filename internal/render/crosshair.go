package render

import (
	"scenery/internal/graphics"
	"scenery/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// crosshairVertices are two NDC line segments crossing at the screen centre.
var crosshairVertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// Crosshair is a screen-space overlay marking the view centre. It is not a
// scene renderable; the app draws it after the scene while looking around.
type Crosshair struct {
	Color  mgl32.Vec3
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

func NewCrosshair(shader *graphics.Shader) *Crosshair {
	c := &Crosshair{Color: mgl32.Vec3{1, 1, 1}, shader: shader}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(crosshairVertices)*4, gl.Ptr(crosshairVertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return c
}

// Render draws the crosshair on top of everything, corrected for aspect.
func (c *Crosshair) Render(aspect float32) {
	if c.vao == 0 || aspect <= 0 || !c.shader.Use() {
		return
	}
	defer profiling.Track("render.crosshair")()
	defer c.shader.StopUse()

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	c.shader.SetFloat("aspectRatio", aspect)
	c.shader.SetVec3("color", c.Color)
	gl.BindVertexArray(c.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(crosshairVertices)/2))
	gl.BindVertexArray(0)
}

func (c *Crosshair) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
		c.vbo = 0
	}
}
