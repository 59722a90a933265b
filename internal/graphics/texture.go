package graphics

import (
	"image"

	"scenery/internal/assets"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a 2D RGBA8 texture living on the GPU.
type Texture struct {
	ID     uint32
	Width  int
	Height int
	Path   string
}

// LoadTexture decodes an image file and uploads it with mipmaps.
func LoadTexture(path string) (*Texture, error) {
	rgba, err := assets.LoadImageRGBA(path)
	if err != nil {
		return nil, err
	}
	t := UploadImage(rgba)
	t.Path = path
	return t, nil
}

// UploadImage uploads an in-memory image, e.g. rasterized text.
func UploadImage(img image.Image) *Texture {
	rgba := assets.ToRGBA(img)
	size := rgba.Rect.Size()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: id, Width: size.X, Height: size.Y}
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Dispose() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
