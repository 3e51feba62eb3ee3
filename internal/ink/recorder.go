package ink

// DefaultMinDistance is the decimation distance in drawing units.
const DefaultMinDistance = 1.0

// Recorder turns one gesture's samples into a stroke. It has two states:
// idle (no stroke) and active (a stroke in progress).
//
// Fallback points from an unmeasured surface are never stored. A stroke
// begun on one stays unseeded until the first measured point arrives.
type Recorder struct {
	minDistance float64

	active *Stroke
}

// NewRecorder returns a Recorder that drops samples closer than minDistance
// to the previous kept point.
func NewRecorder(minDistance float64) *Recorder {
	if minDistance < 0 {
		minDistance = 0
	}
	return &Recorder{minDistance: minDistance}
}

// Current returns the in-progress stroke, or nil when idle. Its point list
// is empty while the stroke is unseeded.
func (r *Recorder) Current() *Stroke { return r.active }

// Begin starts a stroke at p. ok=false marks p as a fallback point; the
// stroke then starts without points. Begin is ignored unless the recorder
// is idle.
func (r *Recorder) Begin(p Point, pen Pen, ok bool) bool {
	if r.active != nil {
		return false
	}
	r.active = newStroke(pen)
	if ok {
		r.active.Points = append(r.active.Points, p)
	}
	return true
}

// Extend appends p when it is at least the decimation distance away from the
// last kept point. The first measured point of an unseeded stroke is always
// kept. Fallback points are dropped. It reports whether p was kept.
func (r *Recorder) Extend(p Point, ok bool) bool {
	if r.active == nil || !ok {
		return false
	}
	if len(r.active.Points) > 0 {
		d := p.Dist(r.active.last())
		if d == 0 || d < r.minDistance {
			return false
		}
	}
	r.active.Points = append(r.active.Points, p)
	return true
}

// End finishes the gesture. The stroke is returned for commit only when it
// moved, meaning two or more points were kept.
func (r *Recorder) End() (Stroke, bool) {
	if r.active == nil {
		return Stroke{}, false
	}
	st := r.active
	r.active = nil
	if len(st.Points) < 2 {
		Logger().Debug("ink: stroke discarded", "points", len(st.Points))
		return Stroke{}, false
	}
	return *st, true
}
