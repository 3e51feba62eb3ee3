// Package render turns annotation strokes into drawable output: a Scene of
// surface-pixel polylines for widgets and raster capture, and an SVG
// document for the vector view.
package render

import (
	"image/color"

	"SlideInk/internal/ink"
)

// Source is anything that can report committed and in-progress strokes.
type Source interface {
	Strokes() []ink.Stroke
	Active() (ink.Stroke, bool)
}

// Polyline is one stroke mapped onto the surface.
type Polyline struct {
	Points []ink.Point
	Color  color.NRGBA
	Width  float64
}

// Scene is the render output for one surface size.
type Scene struct {
	Width, Height float64
	Lines         []Polyline
}

// Empty reports whether the scene has nothing to draw on.
func (s Scene) Empty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// Build maps the strokes of src onto a surface of the given size. Widths
// are left in surface pixels so line thickness does not follow the scale.
func Build(src Source, size ink.Size, space ink.Space, fit ink.Fit) Scene {
	strokes := src.Strokes()
	if active, ok := src.Active(); ok {
		strokes = append(strokes, active)
	}
	return BuildStrokes(strokes, size, space, fit)
}

// BuildStrokes is Build for a fixed stroke list.
func BuildStrokes(strokes []ink.Stroke, size ink.Size, space ink.Space, fit ink.Fit) Scene {
	scene := Scene{Width: size.Width, Height: size.Height}
	if size.Empty() {
		return scene
	}
	m := ink.FitTransform(space, size, fit)
	scene.Lines = make([]Polyline, 0, len(strokes))
	for _, st := range strokes {
		pts := make([]ink.Point, len(st.Points))
		for i, p := range st.Points {
			pts[i].X, pts[i].Y = m.Apply(p.X, p.Y)
		}
		scene.Lines = append(scene.Lines, Polyline{Points: pts, Color: st.Color, Width: st.Width})
	}
	return scene
}

// Controller adapts an *ink.Controller to a Scene at its current size.
func Controller(c *ink.Controller) Scene {
	return Build(c, c.SurfaceSize(), c.Space(), c.Fit())
}
