package ink

import "fmt"

// Mode selects what pointer input does on the surface.
type Mode int

const (
	// ModeInert ignores input.
	ModeInert Mode = iota
	// ModeDraw records strokes.
	ModeDraw
	// ModeErase removes strokes near the pointer.
	ModeErase
	// ModeHighlight tracks the pointer as a laser dot without drawing.
	ModeHighlight
)

func (m Mode) String() string {
	switch m {
	case ModeInert:
		return "inert"
	case ModeDraw:
		return "draw"
	case ModeErase:
		return "erase"
	case ModeHighlight:
		return "highlight"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "inert", "normal", "":
		return ModeInert, nil
	case "draw":
		return ModeDraw, nil
	case "erase":
		return ModeErase, nil
	case "highlight", "laser":
		return ModeHighlight, nil
	}
	return ModeInert, fmt.Errorf("unknown mode %q", s)
}

// mutates reports whether the mode changes the session.
func (m Mode) mutates() bool {
	return m == ModeDraw || m == ModeErase
}

// Device is the class of input device that produced an event.
type Device int

const (
	DeviceMouse Device = iota
	DeviceTouch
	DevicePen
)

func (d Device) String() string {
	switch d {
	case DeviceMouse:
		return "mouse"
	case DeviceTouch:
		return "touch"
	case DevicePen:
		return "pen"
	}
	return fmt.Sprintf("Device(%d)", int(d))
}

// ParseDevice parses a device class name.
func ParseDevice(s string) (Device, error) {
	switch s {
	case "mouse":
		return DeviceMouse, nil
	case "touch":
		return DeviceTouch, nil
	case "pen":
		return DevicePen, nil
	}
	return DeviceMouse, fmt.Errorf("unknown device %q", s)
}

// PointerEvent is one sample from an input device, in viewport pixels.
type PointerEvent struct {
	ID       int
	Device   Device
	Pressure float64
	X, Y     float64
}

// DeviceFilter decides whether an event may draw or erase.
type DeviceFilter func(PointerEvent) bool

// AcceptStylus admits pens, and touches that report pressure (some styluses
// arrive as touch events). Plain finger or palm contact has zero pressure.
func AcceptStylus(ev PointerEvent) bool {
	switch ev.Device {
	case DevicePen:
		return true
	case DeviceTouch:
		return ev.Pressure > 0
	}
	return false
}

// AcceptStylusOrMouse is AcceptStylus plus mouse input, for desktop hosts
// where a tablet pen reports as a mouse.
func AcceptStylusOrMouse(ev PointerEvent) bool {
	return ev.Device == DeviceMouse || AcceptStylus(ev)
}

// DeviceCapture routes every event of a pointer to the surface between
// Acquire and Release, even when the pointer leaves its bounds.
type DeviceCapture interface {
	Acquire(pointerID int)
	Release(pointerID int)
}
