package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CommitsMovedStroke(t *testing.T) {
	r := NewRecorder(1)
	require.True(t, r.Begin(Point{0, 0}, DefaultPen(), true))
	assert.NotNil(t, r.Current())

	r.Extend(Point{0, 5}, true)
	r.Extend(Point{0, 12}, true)

	st, ok := r.End()
	require.True(t, ok)
	assert.Nil(t, r.Current())
	assert.Equal(t, []Point{{0, 0}, {0, 5}, {0, 12}}, st.Points)
	assert.Equal(t, Point{0, 0}, st.Points[0])
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, DefaultColor, st.Color)
	assert.Equal(t, DefaultWidth, st.Width)
}

func TestRecorder_TapIsDiscarded(t *testing.T) {
	r := NewRecorder(1)
	r.Begin(Point{4, 4}, DefaultPen(), true)

	_, ok := r.End()
	assert.False(t, ok)
	assert.Nil(t, r.Current())
}

func TestRecorder_Decimation(t *testing.T) {
	r := NewRecorder(1)
	r.Begin(Point{0, 0}, DefaultPen(), true)

	assert.False(t, r.Extend(Point{0.5, 0}, true), "closer than the decimation distance")
	assert.False(t, r.Extend(Point{0, 0}, true), "duplicate")
	assert.True(t, r.Extend(Point{1, 0}, true), "exactly the decimation distance is kept")
	assert.False(t, r.Extend(Point{1.5, 0.5}, true))
	assert.True(t, r.Extend(Point{3, 0}, true))

	st, ok := r.End()
	require.True(t, ok)
	assert.Len(t, st.Points, 3)
}

func TestRecorder_JitterOnlyIsATap(t *testing.T) {
	r := NewRecorder(1)
	r.Begin(Point{10, 10}, DefaultPen(), true)
	r.Extend(Point{10.3, 10.2}, true)
	r.Extend(Point{9.8, 10.1}, true)

	_, ok := r.End()
	assert.False(t, ok)
}

func TestRecorder_FallbackOnlyStrokeIsDropped(t *testing.T) {
	r := NewRecorder(1)
	r.Begin(Point{}, DefaultPen(), false)
	r.Extend(Point{5, 5}, false)

	_, ok := r.End()
	assert.False(t, ok)
}

func TestRecorder_FallbackSeedIsNotStored(t *testing.T) {
	r := NewRecorder(1)
	r.Begin(Point{}, DefaultPen(), false)
	require.NotNil(t, r.Current())
	assert.Empty(t, r.Current().Points, "unseeded until a measured point arrives")

	assert.True(t, r.Extend(Point{500, 500}, true))
	assert.True(t, r.Extend(Point{510, 500}, true))

	st, ok := r.End()
	require.True(t, ok)
	assert.Equal(t, []Point{{500, 500}, {510, 500}}, st.Points)
}

func TestRecorder_FallbackDuringStrokeIsDropped(t *testing.T) {
	r := NewRecorder(1)
	r.Begin(Point{500, 500}, DefaultPen(), true)
	r.Extend(Point{510, 500}, true)
	assert.False(t, r.Extend(Point{}, false))
	r.Extend(Point{530, 500}, true)

	st, ok := r.End()
	require.True(t, ok)
	assert.Equal(t, []Point{{500, 500}, {510, 500}, {530, 500}}, st.Points)
	assert.NotContains(t, st.Points, Point{})
}

func TestRecorder_SingleMeasuredPointAfterFallbackIsATap(t *testing.T) {
	r := NewRecorder(1)
	r.Begin(Point{}, DefaultPen(), false)
	r.Extend(Point{40, 40}, true)

	_, ok := r.End()
	assert.False(t, ok)
}

func TestRecorder_IgnoresOutOfStateCalls(t *testing.T) {
	r := NewRecorder(1)
	assert.False(t, r.Extend(Point{1, 1}, true))
	_, ok := r.End()
	assert.False(t, ok)

	r.Begin(Point{0, 0}, DefaultPen(), true)
	assert.False(t, r.Begin(Point{9, 9}, DefaultPen(), true), "second begin while active")
	r.Extend(Point{0, 3}, true)

	st, ok := r.End()
	require.True(t, ok)
	assert.Equal(t, Point{0, 0}, st.Points[0])
	assert.Nil(t, r.Current())
}

func TestRecorder_PenIsCopiedPerStroke(t *testing.T) {
	r := NewRecorder(1)
	pen := Pen{Color: DefaultColor, Width: 7}
	r.Begin(Point{0, 0}, pen, true)
	r.Extend(Point{5, 0}, true)
	pen.Width = 20

	st, ok := r.End()
	require.True(t, ok)
	assert.Equal(t, 7.0, st.Width)
}
