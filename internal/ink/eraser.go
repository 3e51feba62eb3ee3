package ink

import "fmt"

// DefaultEraseRadius is the erase radius in drawing units.
const DefaultEraseRadius = 12.0

// Eraser removes whole strokes that pass near a query point.
//
// A stroke is hit when one of its recorded points lies within Radius of the
// query. Segments between points are not tested, so a fast sweep across a
// sparse stroke can miss it.
type Eraser struct {
	Radius float64
}

// NewEraser returns an Eraser. radius must exceed the decimation distance.
func NewEraser(radius, minDistance float64) (*Eraser, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("erase radius must be positive, got %v", radius)
	}
	if radius <= minDistance {
		return nil, fmt.Errorf("erase radius %v must exceed decimation distance %v", radius, minDistance)
	}
	return &Eraser{Radius: radius}, nil
}

// Hits reports whether st has a point within the radius of q.
func (e *Eraser) Hits(st *Stroke, q Point) bool {
	if len(st.Points) == 0 {
		return false
	}
	lo, hi := st.Bounds()
	if q.X < lo.X-e.Radius || q.X > hi.X+e.Radius ||
		q.Y < lo.Y-e.Radius || q.Y > hi.Y+e.Radius {
		return false
	}
	for _, p := range st.Points {
		if p.Dist(q) <= e.Radius {
			return true
		}
	}
	return false
}

// Erase removes every stroke in s hit by q and returns the number removed.
func (e *Eraser) Erase(s *Session, q Point) int {
	if s.Len() == 0 {
		return 0
	}
	n := s.removeWhere(func(st *Stroke) bool { return e.Hits(st, q) })
	if n > 0 {
		Logger().Debug("ink: erased", "strokes", n, "x", q.X, "y", q.Y)
	}
	return n
}
