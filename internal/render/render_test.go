package render_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slic-superpixels/internal/render"
	"slic-superpixels/internal/slic"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestParseColor(t *testing.T) {
	c, err := render.ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 128, 0, 255}, c)

	_, err = render.ParseColor("orange")
	assert.Error(t, err)
}

func TestContours(t *testing.T) {
	l, err := slic.NewLabelGrid(4, 4, []int{
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 1, 1,
	})
	require.NoError(t, err)

	gray := color.NRGBA{100, 100, 100, 255}
	red := color.NRGBA{255, 0, 0, 255}
	src := solid(4, 4, gray)
	out := render.Contours(src, slic.FindBoundaries(l), red)

	assert.Equal(t, red, out.NRGBAAt(1, 1))
	assert.Equal(t, red, out.NRGBAAt(1, 2))
	assert.Equal(t, gray, out.NRGBAAt(0, 0))
	assert.Equal(t, gray, src.NRGBAAt(1, 1), "source must not be modified")
}

func TestCenterGrid(t *testing.T) {
	blue := color.NRGBA{0, 0, 255, 255}
	src := solid(5, 5, color.NRGBA{0, 0, 0, 255})
	out := render.CenterGrid(src, []slic.Center{
		{X: 2, Y: 2, Count: 4},
		{X: 0, Y: 4, Count: 0},
	}, blue)

	for _, p := range []image.Point{{2, 2}, {1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		assert.Equal(t, blue, out.NRGBAAt(p.X, p.Y), "%v", p)
	}
	assert.NotEqual(t, blue, out.NRGBAAt(1, 1))
	assert.NotEqual(t, blue, out.NRGBAAt(0, 4), "empty centers are not drawn")
}

func TestFit(t *testing.T) {
	src := solid(40, 20, color.NRGBA{10, 200, 30, 255})

	assert.Same(t, src, render.Fit(src, 0))
	assert.Same(t, src, render.Fit(src, 40))

	out := render.Fit(src, 10)
	assert.Equal(t, image.Rect(0, 0, 10, 5), out.Bounds())
	got := out.NRGBAAt(5, 2)
	assert.InDelta(t, 10, got.R, 1)
	assert.InDelta(t, 200, got.G, 1)
	assert.InDelta(t, 30, got.B, 1)
	assert.Equal(t, uint8(255), got.A)

	tall := render.Fit(solid(3, 30, color.NRGBA{A: 255}), 6)
	assert.Equal(t, image.Rect(0, 0, 1, 6), tall.Bounds())
}
