package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultTextSize is the pixel size text images are rasterized at.
const DefaultTextSize = 80

var ErrEmptyText = errors.New("empty text")

// RasterizeText renders text in white onto a transparent image sized to fit
// it. With nil fontBytes the embedded Latin Modern Roman face is used.
func RasterizeText(fontBytes []byte, text string, size float64) (*image.RGBA, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if fontBytes == nil {
		fontBytes = lmroman10regular.TTF
	}
	if size <= 0 {
		size = DefaultTextSize
	}

	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("text %q has no visible extent", text)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)
	return img, nil
}

// opaqueBounds returns the smallest rectangle holding non-transparent pixels.
func opaqueBounds(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}

// TrimText crops transparent margins off a rasterized text image.
func TrimText(img *image.RGBA) *image.RGBA {
	r := opaqueBounds(img)
	if r.Empty() {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
