package graphics

import (
	"fmt"
	"image"

	"scenery/internal/assets"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
)

// CubeFaceSuffixes lists the face files in GL_TEXTURE_CUBE_MAP_POSITIVE_X order.
var CubeFaceSuffixes = [6]string{
	"_right.png",
	"_left.png",
	"_top.png",
	"_bottom.png",
	"_front.png",
	"_back.png",
}

// Cubemap is a GL cube map texture.
type Cubemap struct {
	ID   uint32
	Size int
}

// LoadCubemap reads the six faces base+suffix and uploads them. Any missing
// or undecodable face fails the whole cubemap.
func LoadCubemap(base string) (*Cubemap, error) {
	faces, err := LoadCubemapFaces(base)
	if err != nil {
		return nil, err
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, face := range faces {
		size := face.Rect.Size()
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8,
			int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(face.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return &Cubemap{ID: id, Size: faces[0].Rect.Dx()}, nil
}

// LoadCubemapFaces decodes the six faces. Faces whose size differs from the
// first are rescaled to match it.
func LoadCubemapFaces(base string) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA
	for i, suffix := range CubeFaceSuffixes {
		img, err := assets.LoadImageRGBA(base + suffix)
		if err != nil {
			return faces, fmt.Errorf("skybox face %s: %w", suffix, err)
		}
		if i > 0 && img.Rect.Size() != faces[0].Rect.Size() {
			img = resize(img, faces[0].Rect.Size())
		}
		faces[i] = img
	}
	return faces, nil
}

func resize(src *image.RGBA, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func (c *Cubemap) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.ID)
}

func (c *Cubemap) Dispose() {
	if c.ID != 0 {
		gl.DeleteTextures(1, &c.ID)
		c.ID = 0
	}
}
