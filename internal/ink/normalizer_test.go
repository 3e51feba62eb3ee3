package ink

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGeometry(g Geometry) GeometryProvider {
	return func() Geometry { return g }
}

func TestNormalize_IdentityWhenSurfaceMatchesSpace(t *testing.T) {
	n := NewNormalizer(DefaultSpace, FitStretch, fixedGeometry(Geometry{
		Bounds: Rect{Width: 2560, Height: 1440},
	}))

	p, ok := n.Normalize(100, 200)
	require.True(t, ok)
	assert.Equal(t, Point{X: 100, Y: 200}, p)
}

func TestNormalize_InvertsOffsetAndNonUniformScale(t *testing.T) {
	// 1280x360 surface at (10,20): x scale 0.5, y scale 0.25.
	n := NewNormalizer(DefaultSpace, FitStretch, fixedGeometry(Geometry{
		Bounds: Rect{X: 10, Y: 20, Width: 1280, Height: 360},
	}))

	p, ok := n.Normalize(10+640, 20+180)
	require.True(t, ok)
	assert.Equal(t, Point{X: 1280, Y: 720}, p)
}

func TestNormalize_InvertsExtraTransform(t *testing.T) {
	// Surface laid out at 2560x1440 but scaled down by half on screen.
	n := NewNormalizer(DefaultSpace, FitStretch, fixedGeometry(Geometry{
		Bounds:    Rect{X: 100, Y: 50, Width: 2560, Height: 1440},
		Transform: Scale(0.5, 0.5),
	}))

	p, ok := n.Normalize(100+50, 50+25)
	require.True(t, ok)
	assert.Equal(t, Point{X: 100, Y: 50}, p)
}

func TestNormalize_Rotation(t *testing.T) {
	n := NewNormalizer(Space{Width: 100, Height: 100}, FitStretch, fixedGeometry(Geometry{
		Bounds:    Rect{Width: 100, Height: 100},
		Transform: rotate(math.Pi / 2),
	}))

	// (10, 0) in space lands on (0, 10) on screen after a quarter turn.
	p, ok := n.Normalize(0, 10)
	require.True(t, ok)
	assert.InDelta(t, 10, p.X, 0.01)
	assert.InDelta(t, 0, p.Y, 0.01)
}

func TestNormalize_ContainCentres(t *testing.T) {
	// 200x200 surface, 100x50 space: uniform scale 2, 50px bars top and bottom.
	n := NewNormalizer(Space{Width: 100, Height: 50}, FitContain, fixedGeometry(Geometry{
		Bounds: Rect{Width: 200, Height: 200},
	}))

	p, ok := n.Normalize(100, 100)
	require.True(t, ok)
	assert.Equal(t, Point{X: 50, Y: 25}, p)
}

func TestNormalize_RoundsToTwoDecimals(t *testing.T) {
	n := NewNormalizer(Space{Width: 1, Height: 1}, FitStretch, fixedGeometry(Geometry{
		Bounds: Rect{Width: 3, Height: 3},
	}))

	p, ok := n.Normalize(1, 2)
	require.True(t, ok)
	assert.Equal(t, Point{X: 0.33, Y: 0.67}, p)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(DefaultSpace, FitStretch, fixedGeometry(Geometry{
		Bounds: Rect{X: 3, Y: 7, Width: 777, Height: 333},
	}))

	a, okA := n.Normalize(123.4, 56.7)
	b, okB := n.Normalize(123.4, 56.7)
	require.True(t, okA)
	require.True(t, okB)
	assert.InDelta(t, a.X, b.X, 0.01)
	assert.InDelta(t, a.Y, b.Y, 0.01)
}

func TestNormalize_ZeroSizeFallsBackToOrigin(t *testing.T) {
	n := NewNormalizer(DefaultSpace, FitStretch, fixedGeometry(Geometry{
		Bounds: Rect{X: 40, Y: 40},
	}))

	p, ok := n.Normalize(99, 99)
	assert.False(t, ok)
	assert.Equal(t, Point{}, p)
}

func TestNormalize_SingularTransformFallsBack(t *testing.T) {
	n := NewNormalizer(DefaultSpace, FitStretch, fixedGeometry(Geometry{
		Bounds:    Rect{Width: 100, Height: 100},
		Transform: Scale(0, 1),
	}))

	p, ok := n.Normalize(5, 5)
	assert.False(t, ok)
	assert.Equal(t, Point{}, p)
}

func TestResync(t *testing.T) {
	n := NewNormalizer(DefaultSpace, FitStretch, nil)

	assert.True(t, n.Resync(Size{Width: 1280, Height: 720}))
	assert.False(t, n.Resync(Size{Width: 1280, Height: 720}), "same size is a no-op")
	assert.True(t, n.Resync(Size{Width: 720, Height: 1280}), "rotation changes the mapping")

	p, ok := n.Normalize(360, 640)
	require.True(t, ok)
	assert.Equal(t, Point{X: 1280, Y: 720}, p)
}

func rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: s, C: -s, D: c}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	r := rotate(0.3)
	m := Matrix{A: 2 * r.A, B: 2 * r.B, C: 0.5 * r.C, D: 0.5 * r.D, E: 5, F: -3}
	inv, ok := m.Invert()
	require.True(t, ok)

	x, y := m.Apply(12, 34)
	bx, by := inv.Apply(x, y)
	assert.InDelta(t, 12, bx, 1e-9)
	assert.InDelta(t, 34, by, 1e-9)
}

func TestParseFit(t *testing.T) {
	f, ok := ParseFit("contain")
	assert.True(t, ok)
	assert.Equal(t, FitContain, f)

	_, ok = ParseFit("cover")
	assert.False(t, ok)
}
