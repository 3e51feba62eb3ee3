package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"SlideInk/internal/ink"
	remote "SlideInk/internal/net"
	"SlideInk/internal/render"
)

const (
	mousePointer = 0
	touchPointer = 1

	// pressure reported for a held mouse button
	mousePressure = 0.5
	laserDiameter = 28
)

var laserColor = color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xb0}

// OverlayWidget is the transparent drawing surface stacked over a slide. It
// turns fyne pointer callbacks into ink pointer events.
type OverlayWidget struct {
	widget.BaseWidget
	ctrl *ink.Controller

	// device of the button or finger currently held
	device ink.Device

	// pointer holding the surface, set between Acquire and Release
	held    int
	holding bool
}

var _ fyne.Widget = (*OverlayWidget)(nil)
var _ fyne.Draggable = (*OverlayWidget)(nil)
var _ desktop.Mouseable = (*OverlayWidget)(nil)
var _ desktop.Hoverable = (*OverlayWidget)(nil)
var _ mobile.Touchable = (*OverlayWidget)(nil)

// NewOverlayWidget builds an overlay around a new controller. opts.Geometry
// and opts.Capture are supplied by the widget; OnChange is chained.
func NewOverlayWidget(opts ink.Options) (*OverlayWidget, error) {
	o := &OverlayWidget{}
	onChange := opts.OnChange
	opts.Geometry = o.geometry
	opts.Capture = o
	opts.OnChange = func() {
		o.Refresh()
		if onChange != nil {
			onChange()
		}
	}
	ctrl, err := ink.NewController(opts)
	if err != nil {
		return nil, err
	}
	o.ctrl = ctrl
	o.ExtendBaseWidget(o)
	return o, nil
}

// Controller returns the controller behind the overlay.
func (o *OverlayWidget) Controller() *ink.Controller { return o.ctrl }

// Pointer positions arrive relative to the widget, so the surface sits at
// the origin with the widget's own size.
func (o *OverlayWidget) geometry() ink.Geometry {
	size := o.Size()
	return ink.Geometry{Bounds: ink.Rect{Width: float64(size.Width), Height: float64(size.Height)}}
}

// Acquire implements ink.DeviceCapture.
func (o *OverlayWidget) Acquire(id int) { o.held, o.holding = id, true }

// Release implements ink.DeviceCapture.
func (o *OverlayWidget) Release(int) { o.held, o.holding = 0, false }

// localGesture reports whether the surface is held by this widget's own
// mouse or touch pointer rather than a remote pen.
func (o *OverlayWidget) localGesture() bool {
	return o.holding && (o.held == mousePointer || o.held == touchPointer)
}

func (o *OverlayWidget) Resize(size fyne.Size) {
	o.BaseWidget.Resize(size)
	o.ctrl.Resize(ink.Size{Width: float64(size.Width), Height: float64(size.Height)})
}

func (o *OverlayWidget) event(id int, dev ink.Device, pressure float64, pos fyne.Position) ink.PointerEvent {
	return ink.PointerEvent{ID: id, Device: dev, Pressure: pressure, X: float64(pos.X), Y: float64(pos.Y)}
}

func (o *OverlayWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	o.device = ink.DeviceMouse
	o.ctrl.PointerDown(o.event(mousePointer, ink.DeviceMouse, mousePressure, e.Position))
}

func (o *OverlayWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	o.ctrl.PointerUp(o.event(mousePointer, ink.DeviceMouse, 0, e.Position))
}

func (o *OverlayWidget) MouseIn(*desktop.MouseEvent) {}

// MouseMoved drives the laser while hovering.
func (o *OverlayWidget) MouseMoved(e *desktop.MouseEvent) {
	o.ctrl.PointerMove(o.event(mousePointer, ink.DeviceMouse, 0, e.Position))
}

// MouseOut leaves gestures alone: fyne keeps delivering drag events to the
// widget after the pointer leaves it.
func (o *OverlayWidget) MouseOut() {}

func (o *OverlayWidget) Dragged(e *fyne.DragEvent) {
	id := mousePointer
	if o.device == ink.DeviceTouch {
		id = touchPointer
	}
	o.ctrl.PointerMove(o.event(id, o.device, mousePressure, e.Position))
}

// DragEnd closes a local gesture whose release was not seen as MouseUp.
func (o *OverlayWidget) DragEnd() {
	if o.localGesture() {
		o.ctrl.PointerUp(ink.PointerEvent{ID: o.held, Device: o.device})
	}
}

// Touch points carry no pressure in fyne, so a finger never passes the
// stylus filter.
func (o *OverlayWidget) TouchDown(e *mobile.TouchEvent) {
	o.device = ink.DeviceTouch
	o.ctrl.PointerDown(o.event(touchPointer, ink.DeviceTouch, 0, e.Position))
}

func (o *OverlayWidget) TouchUp(e *mobile.TouchEvent) {
	o.ctrl.PointerUp(o.event(touchPointer, ink.DeviceTouch, 0, e.Position))
}

func (o *OverlayWidget) TouchCancel(e *mobile.TouchEvent) {
	o.ctrl.PointerCancel(o.event(touchPointer, ink.DeviceTouch, 0, e.Position))
}

// HandleRemote applies an event from a remote pen device. Its coordinates
// are fractions of the surface. Call it on the UI goroutine.
func (o *OverlayWidget) HandleRemote(ev remote.Event) {
	size := o.Size()
	p := ev.Pointer
	p.X *= float64(size.Width)
	p.Y *= float64(size.Height)
	switch ev.Kind {
	case remote.EventDown:
		o.ctrl.PointerDown(p)
	case remote.EventMove:
		o.ctrl.PointerMove(p)
	case remote.EventUp:
		o.ctrl.PointerUp(p)
	case remote.EventCancel:
		o.ctrl.PointerCancel(p)
	default:
		log.Printf("[UI] Ignoring remote event %q", ev.Kind)
	}
}

func (o *OverlayWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &overlayRenderer{overlay: o, laser: canvas.NewCircle(laserColor)}
	r.laser.Hide()
	r.rebuild()
	return r
}

type overlayRenderer struct {
	overlay *OverlayWidget
	laser   *canvas.Circle
	objects []fyne.CanvasObject
}

// rebuild turns the current scene into line segments. The scene is already
// in widget pixels.
func (r *overlayRenderer) rebuild() {
	ctrl := r.overlay.ctrl
	scene := render.Controller(ctrl)
	objects := make([]fyne.CanvasObject, 0, len(r.objects))
	for _, line := range scene.Lines {
		if len(line.Points) == 1 {
			objects = append(objects, dot(line))
			continue
		}
		for i := 0; i < len(line.Points)-1; i++ {
			segment := canvas.NewLine(line.Color)
			segment.StrokeWidth = float32(line.Width)
			segment.Position1 = position(line.Points[i])
			segment.Position2 = position(line.Points[i+1])
			objects = append(objects, segment)
		}
	}

	if p, ok := ctrl.Highlight(); ok && !scene.Empty() {
		x, y := ink.FitTransform(ctrl.Space(), ctrl.SurfaceSize(), ctrl.Fit()).Apply(p.X, p.Y)
		r.laser.Resize(fyne.NewSquareSize(laserDiameter))
		r.laser.Move(fyne.NewPos(float32(x)-laserDiameter/2, float32(y)-laserDiameter/2))
		r.laser.Show()
	} else {
		r.laser.Hide()
	}
	r.objects = append(objects, r.laser)
}

func dot(line render.Polyline) fyne.CanvasObject {
	c := canvas.NewCircle(line.Color)
	w := float32(line.Width)
	c.Resize(fyne.NewSquareSize(w))
	c.Move(fyne.NewPos(float32(line.Points[0].X)-w/2, float32(line.Points[0].Y)-w/2))
	return c
}

func position(p ink.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *overlayRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.overlay)
}

func (r *overlayRenderer) Layout(fyne.Size) { r.rebuild() }

func (r *overlayRenderer) MinSize() fyne.Size { return fyne.NewSize(320, 180) }

func (r *overlayRenderer) Destroy() {}
