package renderer

import (
	"scenery/internal/profiling"
	"scenery/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer owns the per-frame GL state and hands the scene its context.
type Renderer struct {
	clearColor mgl32.Vec4
	wireframe  bool
	width      int
	height     int
}

// New configures global GL state. Must be called after gl.Init.
func New(width, height int) *Renderer {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r := &Renderer{clearColor: mgl32.Vec4{0.53, 0.81, 0.92, 1.0}}
	r.SetViewport(width, height)
	return r
}

// SetWireframe switches polygon mode for the following frames.
func (r *Renderer) SetWireframe(on bool) {
	if on == r.wireframe {
		return
	}
	r.wireframe = on
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (r *Renderer) Wireframe() bool { return r.wireframe }

// Render clears the framebuffer and draws the scene.
func (r *Renderer) Render(s *scene.Scene, ctx scene.RenderContext) {
	func() {
		defer profiling.Track("render.clear")()
		c := r.clearColor
		gl.ClearColor(c[0], c[1], c[2], c[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}()

	defer profiling.Track("render.scene")()
	s.Render(ctx)
}

// SetViewport updates the GL viewport after a framebuffer resize.
func (r *Renderer) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) Size() (int, int) { return r.width, r.height }
