package ink

import "math"

// Point is a position in drawing space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a width/height pair, either in drawing units or surface pixels.
type Size struct {
	Width  float64
	Height float64
}

// Empty reports whether the size cannot host a drawing (not laid out yet).
func (s Size) Empty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// Rect is an axis-aligned rectangle in viewport pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Matrix is a 2D affine transform laid out like an SVG/CSS matrix(a,b,c,d,e,f):
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Apply transforms (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Invert returns the inverse of m. ok is false when m is singular or
// contains non-finite values.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix{}, false
	}
	inv = Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}
	return inv, true
}

// Fit controls how drawing space is mapped onto the surface.
type Fit int

const (
	// FitStretch scales x and y independently so the space fills the surface.
	FitStretch Fit = iota
	// FitContain scales uniformly and centres the space on the surface.
	FitContain
)

func (f Fit) String() string {
	switch f {
	case FitStretch:
		return "stretch"
	case FitContain:
		return "contain"
	}
	return "unknown"
}

// ParseFit parses "stretch" or "contain".
func ParseFit(s string) (Fit, bool) {
	switch s {
	case "stretch", "":
		return FitStretch, true
	case "contain":
		return FitContain, true
	}
	return FitStretch, false
}

// FitTransform returns the transform mapping drawing space onto a surface of
// the given size. The result is singular when either size is empty.
func FitTransform(space, surface Size, fit Fit) Matrix {
	if space.Empty() || surface.Empty() {
		return Matrix{}
	}
	sx := surface.Width / space.Width
	sy := surface.Height / space.Height
	if fit == FitContain {
		s := math.Min(sx, sy)
		dx := (surface.Width - space.Width*s) / 2
		dy := (surface.Height - space.Height*s) / 2
		return Matrix{A: s, D: s, E: dx, F: dy}
	}
	return Scale(sx, sy)
}

// round2 rounds v to two decimal digits.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
