package net

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SlideInk/internal/ink"
)

func startServer(t *testing.T) (*Server, string, chan Event) {
	t.Helper()
	events := make(chan Event, 16)
	s := NewServer(0, func(ev Event) { events <- ev })
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, "ws" + strings.TrimPrefix(ts.URL, "http") + "/pen", events
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	return conn
}

func next(t *testing.T, events chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestServer_ForwardsPenEvents(t *testing.T) {
	_, url, events := startServer(t)
	conn := dial(t, url)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Message{Type: EventDown, ID: 1, Device: "pen", Pressure: 0.4, X: 0.25, Y: 0.5}))
	require.NoError(t, conn.WriteJSON(Message{Type: EventUp, ID: 1, Device: "pen", X: 1.5, Y: -1}))

	down := next(t, events)
	assert.Equal(t, EventDown, down.Kind)
	assert.Equal(t, ink.DevicePen, down.Pointer.Device)
	assert.Equal(t, 0.25, down.Pointer.X)
	assert.Equal(t, 0.5, down.Pointer.Y)
	assert.Equal(t, 0.4, down.Pointer.Pressure)

	up := next(t, events)
	assert.Equal(t, EventUp, up.Kind)
	assert.Equal(t, down.Pointer.ID, up.Pointer.ID)
	assert.Equal(t, 1.0, up.Pointer.X, "clamped to the surface")
	assert.Equal(t, 0.0, up.Pointer.Y)
}

func TestServer_SkipsInvalidMessages(t *testing.T) {
	_, url, events := startServer(t)
	conn := dial(t, url)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{oops")))
	require.NoError(t, conn.WriteJSON(Message{Type: "hover", Device: "pen"}))
	require.NoError(t, conn.WriteJSON(Message{Type: EventDown, Device: "crayon"}))
	require.NoError(t, conn.WriteJSON(Message{Type: EventMove, ID: 2, Device: "touch", X: 0.1, Y: 0.1}))

	ev := next(t, events)
	assert.Equal(t, EventMove, ev.Kind, "only the valid message arrives")
	assert.Equal(t, ink.DeviceTouch, ev.Pointer.Device)
}

func TestServer_DisconnectCancelsOpenGesture(t *testing.T) {
	_, url, events := startServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(Message{Type: EventDown, ID: 3, Device: "pen", Pressure: 1, X: 0.5, Y: 0.5}))
	down := next(t, events)
	conn.Close()

	cancel := next(t, events)
	assert.Equal(t, EventCancel, cancel.Kind)
	assert.Equal(t, down.Pointer.ID, cancel.Pointer.ID)
}

func TestServer_PeersGetDistinctPointerIDs(t *testing.T) {
	_, url, events := startServer(t)
	a := dial(t, url)
	defer a.Close()
	b := dial(t, url)
	defer b.Close()

	require.NoError(t, a.WriteJSON(Message{Type: EventMove, ID: 1, Device: "pen"}))
	first := next(t, events)
	require.NoError(t, b.WriteJSON(Message{Type: EventMove, ID: 1, Device: "pen"}))
	second := next(t, events)

	assert.NotEqual(t, first.Pointer.ID, second.Pointer.ID)
}

func TestServer_Health(t *testing.T) {
	s := NewServer(0, func(Event) {})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive","peers":0}`, rec.Body.String())
}

func TestMessageEvent_RejectsNonFinite(t *testing.T) {
	_, err := Message{Type: EventMove, Device: "pen", X: 0.5, Y: math.NaN()}.Event()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestMessageEvent_RejectsNegativeID(t *testing.T) {
	_, err := Message{Type: EventDown, ID: -65535, Device: "pen", X: 0.5, Y: 0.5}.Event()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestServer_NegativeIDNeverReachesSink(t *testing.T) {
	_, url, events := startServer(t)
	conn := dial(t, url)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Message{Type: EventDown, ID: -65535, Device: "pen", X: 0.5, Y: 0.5}))
	require.NoError(t, conn.WriteJSON(Message{Type: EventDown, ID: 4, Device: "pen", X: 0.5, Y: 0.5}))

	ev := next(t, events)
	assert.Equal(t, 1*pointerStride+4, ev.Pointer.ID, "only the valid message arrives")
}

func TestPenURL(t *testing.T) {
	u := PenURL(8888)
	assert.True(t, strings.HasPrefix(u, "ws://"), u)
	assert.True(t, strings.HasSuffix(u, ":8888/pen"), u)
}
