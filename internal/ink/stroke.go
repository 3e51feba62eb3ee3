package ink

import (
	"image/color"

	"github.com/google/uuid"
)

// DefaultColor is the navy ink used when no pen color is configured.
var DefaultColor = color.NRGBA{R: 0x00, G: 0x2b, B: 0x5c, A: 0xff}

// DefaultWidth is the default pen width in surface pixels.
const DefaultWidth = 4.0

// Pen is the style applied to new strokes.
type Pen struct {
	Color color.NRGBA
	Width float64
}

// DefaultPen returns the pen used when nothing else is configured.
func DefaultPen() Pen {
	return Pen{Color: DefaultColor, Width: DefaultWidth}
}

// normalized returns p with a usable width and an opaque color.
func (p Pen) normalized() Pen {
	if !(p.Width > 0) {
		p.Width = DefaultWidth
	}
	p.Color.A = 0xff
	return p
}

// Stroke is one freehand path. Width is in surface pixels and does not scale
// with the drawing space transform.
type Stroke struct {
	ID     string
	Points []Point
	Color  color.NRGBA
	Width  float64
}

func newStroke(pen Pen) *Stroke {
	pen = pen.normalized()
	return &Stroke{
		ID:    uuid.NewString(),
		Color: pen.Color,
		Width: pen.Width,
	}
}

// Clone returns a deep copy of s.
func (s Stroke) Clone() Stroke {
	s.Points = append([]Point(nil), s.Points...)
	return s
}

// Bounds returns the bounding box of the stroke's points.
func (s Stroke) Bounds() (lo, hi Point) {
	if len(s.Points) == 0 {
		return Point{}, Point{}
	}
	lo, hi = s.Points[0], s.Points[0]
	for _, p := range s.Points[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}

// last returns the most recently recorded point.
func (s *Stroke) last() Point {
	return s.Points[len(s.Points)-1]
}
