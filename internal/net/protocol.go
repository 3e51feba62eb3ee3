package net

import (
	"errors"
	"fmt"
	"math"

	"SlideInk/internal/ink"
)

// ErrInvalidMessage marks a remote pen message that cannot be applied.
var ErrInvalidMessage = errors.New("invalid pen message")

// EventKind is the phase of a pointer sample.
type EventKind string

const (
	EventDown   EventKind = "down"
	EventMove   EventKind = "move"
	EventUp     EventKind = "up"
	EventCancel EventKind = "cancel"
)

// Message is one pen sample sent by a remote device. X and Y are fractions
// of the remote surface, 0..1 from the top-left corner.
type Message struct {
	Type     EventKind `json:"type"`
	ID       int       `json:"id"`
	Device   string    `json:"device"`
	Pressure float64   `json:"pressure"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
}

// Event is a validated remote sample. Pointer.X and Pointer.Y are still
// fractions of the surface; the host scales them to its own size.
type Event struct {
	Kind    EventKind
	Pointer ink.PointerEvent
}

// Event validates m and converts it.
func (m Message) Event() (Event, error) {
	switch m.Type {
	case EventDown, EventMove, EventUp, EventCancel:
	default:
		return Event{}, fmt.Errorf("%w: type %q", ErrInvalidMessage, m.Type)
	}
	if m.ID < 0 {
		return Event{}, fmt.Errorf("%w: negative pointer id %d", ErrInvalidMessage, m.ID)
	}
	dev, err := ink.ParseDevice(m.Device)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if !finite(m.X) || !finite(m.Y) || !finite(m.Pressure) {
		return Event{}, fmt.Errorf("%w: non-finite value", ErrInvalidMessage)
	}
	return Event{
		Kind: m.Type,
		Pointer: ink.PointerEvent{
			ID:       m.ID,
			Device:   dev,
			Pressure: m.Pressure,
			X:        clamp01(m.X),
			Y:        clamp01(m.Y),
		},
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
