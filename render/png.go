package render

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var ErrEmptyViewBox = errors.New("svg has an empty view box")

// Rasterizer converts SVG bytes to PNG bytes.
type Rasterizer interface {
	Rasterize(svg []byte) ([]byte, error)
}

// OksvgRasterizer rasterizes paths and shapes on a white background. Text
// elements are not supported by oksvg and are left out of the image.
type OksvgRasterizer struct {
	// Scale multiplies the view box size. Zero means 1.
	Scale float64
}

func (o OksvgRasterizer) Rasterize(data []byte) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}

	scale := o.Scale
	if scale <= 0 {
		scale = 1
	}

	w := int(icon.ViewBox.W * scale)
	h := int(icon.ViewBox.H * scale)
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyViewBox
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
