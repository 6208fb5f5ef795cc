package svg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

var errNoVectorOutput = errors.New("no vector output to rasterize")

// Rasterizer renders the SVG produced by the compiler into a bitmap, entirely in-process.
type Rasterizer struct{}

func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Rasterize renders at twice the requested resolution and downsamples, which noticeably improves
// antialiasing of the thin strokes typical for TikZ drawings.
func (r *Rasterizer) Rasterize(result *domain.CompileResult, size int) (image.Image, error) {
	if result == nil || len(result.SVG) == 0 {
		return nil, errNoVectorOutput
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(result.SVG), oksvg.WarnErrorMode)
	if err != nil {
		return nil, err
	}
	width, height := icon.ViewBox.W, icon.ViewBox.H
	if width <= 0 || height <= 0 {
		return nil, errNoVectorOutput
	}
	superWidth, superHeight := scaledBounds(width, height, size*2)
	img := image.NewRGBA(image.Rect(0, 0, superWidth, superHeight))
	// Compiled documents assume a white page, while the scanner leaves untouched pixels transparent.
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(superWidth, superHeight, img, img.Bounds())
	dasher := rasterx.NewDasher(superWidth, superHeight, scanner)
	icon.SetTarget(0, 0, float64(superWidth), float64(superHeight))
	icon.Draw(dasher, 1.0)
	targetWidth, targetHeight := scaledBounds(width, height, size)
	target := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	xdraw.CatmullRom.Scale(target, target.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return target, nil
}

// scaledBounds fits the view box into `size` pixels along the longest side, preserving the aspect ratio.
func scaledBounds(width, height float64, size int) (int, int) {
	var w, h int
	if width >= height {
		w = size
		h = int(float64(size)*height/width + 0.5)
	} else {
		h = size
		w = int(float64(size)*width/height + 0.5)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
