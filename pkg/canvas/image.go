package canvas

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/segbar/pkg/levelbar"
)

var _ levelbar.Canvas = &Image{}

// Image is a raster Canvas backed by a gg drawing context.
type Image struct {
	dc *gg.Context
}

// NewImage returns a transparent width x height raster. Sizes below one
// pixel are raised to one.
func NewImage(width, height int) *Image {
	return &Image{dc: gg.NewContext(max(width, 1), max(height, 1))}
}

func (i *Image) FillRect(r levelbar.Rect, c levelbar.Color) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	i.dc.SetColor(c)
	i.dc.DrawRectangle(float64(r.Left), float64(r.Top), float64(r.Dx()), float64(r.Dy()))
	i.dc.Fill()
}

func (i *Image) Image() image.Image {
	return i.dc.Image()
}

func (i *Image) EncodePNG(w io.Writer) error {
	return pkgerrors.Wrap(i.dc.EncodePNG(w), "failed to encode png")
}

// RenderPNG draws r on a raster of r's viewport size and writes it as PNG.
func RenderPNG(r *levelbar.Renderer, w io.Writer) error {
	img := NewImage(r.Width(), r.Height())
	r.Draw(img)
	return img.EncodePNG(w)
}
