package ink

// Geometry describes where the annotation surface currently sits on screen.
// Bounds is the surface's layout box in viewport pixels; Transform is any
// extra scaling/rotation applied to the surface around the top-left corner
// of that box. A zero Transform is treated as the identity.
type Geometry struct {
	Bounds    Rect
	Transform Matrix
}

// GeometryProvider reports the live geometry of the annotation surface.
type GeometryProvider func() Geometry

// Normalizer maps viewport coordinates into drawing space.
type Normalizer struct {
	space    Space
	fit      Fit
	geometry GeometryProvider

	// cached for the last surface size seen by Resync
	size    Size
	toSpace Matrix
	valid   bool
	synced  bool
}

// Space is the abstract drawing rectangle stroke points are stored in.
type Space = Size

// DefaultSpace is the drawing space used when none is configured.
var DefaultSpace = Space{Width: 2560, Height: 1440}

// NewNormalizer returns a Normalizer for the given space.
func NewNormalizer(space Space, fit Fit, geometry GeometryProvider) *Normalizer {
	if space.Empty() {
		space = DefaultSpace
	}
	return &Normalizer{space: space, fit: fit, geometry: geometry}
}

// Space returns the drawing space.
func (n *Normalizer) Space() Space { return n.space }

// Fit returns the fit mode.
func (n *Normalizer) Fit() Fit { return n.fit }

// SurfaceSize returns the cached surface size.
func (n *Normalizer) SurfaceSize() Size { return n.size }

// Resync recomputes the cached space<->surface mapping for a new surface
// size. It reports whether anything changed.
func (n *Normalizer) Resync(size Size) bool {
	if n.synced && size == n.size {
		return false
	}
	n.size, n.synced = size, true
	inv, ok := FitTransform(n.space, size, n.fit).Invert()
	n.toSpace, n.valid = inv, ok
	Logger().Debug("ink: surface resync", "width", size.Width, "height", size.Height, "valid", ok)
	return true
}

// Normalize converts a viewport position into drawing space. ok is false
// when the surface has no usable geometry; the origin is returned then.
func (n *Normalizer) Normalize(x, y float64) (Point, bool) {
	var g Geometry
	if n.geometry != nil {
		g = n.geometry()
	} else {
		g.Bounds = Rect{Width: n.size.Width, Height: n.size.Height}
	}
	n.Resync(Size{Width: g.Bounds.Width, Height: g.Bounds.Height})
	if !n.valid {
		return Point{}, false
	}

	t := g.Transform
	if t == (Matrix{}) {
		t = Scale(1, 1)
	}
	inner, ok := t.Invert()
	if !ok {
		return Point{}, false
	}

	lx, ly := x-g.Bounds.X, y-g.Bounds.Y
	lx, ly = inner.Apply(lx, ly)
	sx, sy := n.toSpace.Apply(lx, ly)
	return Point{X: round2(sx), Y: round2(sy)}, true
}
