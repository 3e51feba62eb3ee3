package ink

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Space       Space
	Fit         Fit
	MinDistance float64
	EraseRadius float64
	Pen         Pen

	// Accept filters devices for draw and erase. Defaults to AcceptStylus.
	Accept DeviceFilter
	// Geometry reports the surface position on screen. When nil the surface
	// is assumed to sit at the viewport origin with the size given to Resize.
	Geometry GeometryProvider
	// Capture is told when a gesture grabs and releases its pointer.
	Capture DeviceCapture
	// OnChange is called after anything visible changed.
	OnChange func()
}

// Controller owns a drawing session and routes pointer input to the
// recorder or the eraser depending on the current mode.
//
// A Controller is not safe for concurrent use; drive it from one goroutine.
type Controller struct {
	norm    *Normalizer
	rec     *Recorder
	eraser  *Eraser
	session Session

	accept   DeviceFilter
	capture  DeviceCapture
	onChange func()

	mode Mode
	pen  Pen

	// gesture is set while a pointer holds the surface.
	gesture bool
	pointer int

	highlight   Point
	highlightOn bool
}

// NewController returns a Controller in inert mode.
func NewController(opts Options) (*Controller, error) {
	if opts.MinDistance == 0 {
		opts.MinDistance = DefaultMinDistance
	}
	if opts.EraseRadius == 0 {
		opts.EraseRadius = DefaultEraseRadius
	}
	eraser, err := NewEraser(opts.EraseRadius, opts.MinDistance)
	if err != nil {
		return nil, err
	}
	if opts.Accept == nil {
		opts.Accept = AcceptStylus
	}
	if opts.Pen == (Pen{}) {
		opts.Pen = DefaultPen()
	}
	return &Controller{
		norm:     NewNormalizer(opts.Space, opts.Fit, opts.Geometry),
		rec:      NewRecorder(opts.MinDistance),
		eraser:   eraser,
		accept:   opts.Accept,
		capture:  opts.Capture,
		onChange: opts.OnChange,
		pen:      opts.Pen.normalized(),
	}, nil
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Pen returns the style for new strokes.
func (c *Controller) Pen() Pen { return c.pen }

// Space returns the drawing space.
func (c *Controller) Space() Space { return c.norm.Space() }

// Fit returns how the space is mapped onto the surface.
func (c *Controller) Fit() Fit { return c.norm.Fit() }

// SurfaceSize returns the last surface size seen.
func (c *Controller) SurfaceSize() Size { return c.norm.SurfaceSize() }

// Len returns the number of committed strokes.
func (c *Controller) Len() int { return c.session.Len() }

// Strokes returns a copy of the committed strokes.
func (c *Controller) Strokes() []Stroke { return c.session.Strokes() }

// Active returns a copy of the in-progress stroke while drawing.
func (c *Controller) Active() (Stroke, bool) {
	st := c.rec.Current()
	if st == nil || c.mode != ModeDraw {
		return Stroke{}, false
	}
	return st.Clone(), true
}

// Highlight returns the laser position in drawing space while in
// highlight mode.
func (c *Controller) Highlight() (Point, bool) {
	return c.highlight, c.highlightOn && c.mode == ModeHighlight
}

// Gesture reports whether a pointer currently holds the surface, and which.
func (c *Controller) Gesture() (pointerID int, ok bool) {
	return c.pointer, c.gesture
}

// SetMode switches modes. A gesture in progress is finished first so a
// stroke the presenter already drew is kept.
func (c *Controller) SetMode(m Mode) {
	if m == c.mode {
		return
	}
	if c.gesture {
		c.finish(false)
	}
	Logger().Debug("ink: mode", "from", c.mode.String(), "to", m.String())
	c.mode = m
	c.highlightOn = false
	c.changed()
}

// SetPen sets the style for strokes started from now on.
func (c *Controller) SetPen(p Pen) {
	c.pen = p.normalized()
}

// Resize tells the controller the surface was laid out at a new size.
func (c *Controller) Resize(size Size) {
	if c.norm.Resync(size) {
		c.changed()
	}
}

// Reset clears every stroke, including one in progress.
func (c *Controller) Reset() {
	if c.gesture {
		c.rec.End()
		c.release()
	}
	c.session.clear()
	c.changed()
}

// PointerDown starts a gesture. It reports whether the event was used.
func (c *Controller) PointerDown(ev PointerEvent) bool {
	if c.mode == ModeHighlight {
		return c.track(ev)
	}
	if !c.mode.mutates() || !c.accept(ev) || c.gesture {
		return false
	}

	p, ok := c.norm.Normalize(ev.X, ev.Y)
	c.gesture, c.pointer = true, ev.ID
	if c.capture != nil {
		c.capture.Acquire(ev.ID)
	}

	switch c.mode {
	case ModeDraw:
		c.rec.Begin(p, c.pen, ok)
		Logger().Debug("ink: stroke begin", "pointer", ev.ID, "x", p.X, "y", p.Y)
	case ModeErase:
		if ok {
			c.eraser.Erase(&c.session, p)
		}
	}
	c.changed()
	return true
}

// PointerMove extends the current gesture.
func (c *Controller) PointerMove(ev PointerEvent) bool {
	if c.mode == ModeHighlight {
		return c.track(ev)
	}
	if !c.gesture || ev.ID != c.pointer {
		return false
	}

	p, ok := c.norm.Normalize(ev.X, ev.Y)
	switch c.mode {
	case ModeDraw:
		if c.rec.Extend(p, ok) {
			c.changed()
		}
	case ModeErase:
		if ok && c.eraser.Erase(&c.session, p) > 0 {
			c.changed()
		}
	}
	return true
}

// PointerUp ends the current gesture.
func (c *Controller) PointerUp(ev PointerEvent) bool {
	if !c.gesture || ev.ID != c.pointer {
		return false
	}
	c.finish(false)
	return true
}

// PointerCancel handles a lost or interrupted pointer like a normal end.
func (c *Controller) PointerCancel(ev PointerEvent) bool {
	if !c.gesture || ev.ID != c.pointer {
		return false
	}
	c.finish(true)
	return true
}

func (c *Controller) finish(cancelled bool) {
	// an interrupted stroke keeps what was drawn
	if st, ok := c.rec.End(); ok {
		c.session.commit(st)
		Logger().Debug("ink: stroke commit", "id", st.ID, "points", len(st.Points), "cancelled", cancelled)
	}
	c.release()
	c.changed()
}

func (c *Controller) release() {
	if c.capture != nil {
		c.capture.Release(c.pointer)
	}
	c.gesture, c.pointer = false, 0
}

// track moves the laser dot; every device is accepted since nothing changes.
func (c *Controller) track(ev PointerEvent) bool {
	p, ok := c.norm.Normalize(ev.X, ev.Y)
	c.highlight, c.highlightOn = p, ok
	c.changed()
	return ok
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
