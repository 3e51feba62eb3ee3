package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SlideInk/internal/ink"
	"SlideInk/internal/render"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSnapshot_EmptyScene(t *testing.T) {
	_, err := Snapshot(nil, render.Scene{})
	assert.ErrorIs(t, err, ErrEmptyScene)
}

func TestSnapshot_DrawsStrokeOverSlide(t *testing.T) {
	scene := render.Scene{
		Width: 100, Height: 50,
		Lines: []render.Polyline{{
			Points: []ink.Point{{X: 10, Y: 25}, {X: 90, Y: 25}},
			Color:  red,
			Width:  6,
		}},
	}
	slide := solid(20, 10, color.NRGBA{G: 0xff, A: 0xff})

	img, err := Snapshot(slide, scene)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())

	r, g, _, _ := img.At(50, 25).RGBA()
	assert.Greater(t, r, uint32(0xc000), "ink on the line")
	assert.Less(t, g, uint32(0x4000))

	_, g, _, _ = img.At(50, 5).RGBA()
	assert.Greater(t, g, uint32(0xc000), "slide shows elsewhere")
}

func TestSnapshot_NoSlideUsesBackground(t *testing.T) {
	img, err := Snapshot(nil, render.Scene{Width: 8, Height: 8})
	require.NoError(t, err)
	r, g, b, _ := img.At(4, 4).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, solid(3, 2, red)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
}
