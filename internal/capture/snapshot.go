// Package capture bakes rendered ink into still images of a slide.
//
// It works from a render.Scene, the same output the on-screen overlay
// draws, and never reaches into the annotation engine.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"SlideInk/internal/render"
)

// ErrEmptyScene is returned when the scene has no size to rasterize at.
var ErrEmptyScene = errors.New("capture: scene has no size")

// Background fills the snapshot where no slide image is given.
var Background = color.White

// Snapshot draws the slide scaled to the scene size and strokes every line
// of the scene on top of it. slide may be nil.
func Snapshot(slide image.Image, scene render.Scene) (image.Image, error) {
	if scene.Empty() {
		return nil, ErrEmptyScene
	}
	w := int(math.Ceil(scene.Width))
	h := int(math.Ceil(scene.Height))

	base := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(base, base.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	if slide != nil {
		xdraw.CatmullRom.Scale(base, base.Bounds(), slide, slide.Bounds(), xdraw.Over, nil)
	}

	dc := gg.NewContextForImage(base)
	defer dc.Close()
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for i, line := range scene.Lines {
		if len(line.Points) < 2 {
			continue
		}
		dc.SetColor(line.Color)
		dc.SetLineWidth(line.Width)
		dc.MoveTo(line.Points[0].X, line.Points[0].Y)
		for _, p := range line.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("capture: stroke %d: %w", i, err)
		}
	}
	return dc.Image(), nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("capture: encode png: %w", err)
	}
	return nil
}
