package colorspace_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slic-superpixels/internal/colorspace"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{12, 200, 77, 255})
	img.SetNRGBA(1, 1, color.NRGBA{90, 90, 250, 255})
	img.SetNRGBA(2, 1, color.NRGBA{128, 128, 128, 255})
	return img
}

func TestLabUnits(t *testing.T) {
	g := colorspace.FromNRGBA(testImage(), colorspace.Lab)
	require.Equal(t, 3, g.Width())
	require.Equal(t, 2, g.Height())

	white, black := g.At(0, 0), g.At(1, 0)
	assert.InDeltaSlice(t, []float64{100, 0, 0}, white[:], 0.05, "white")
	assert.InDeltaSlice(t, []float64{0, 0, 0}, black[:], 1e-6, "black")
	red := g.At(2, 0)
	assert.InDelta(t, 53.2, red[0], 0.5)
	assert.Greater(t, red[1], 70.0)
}

func TestRoundTrip(t *testing.T) {
	src := testImage()
	for _, s := range []colorspace.Space{colorspace.Lab, colorspace.RGB} {
		out := colorspace.ToNRGBA(colorspace.FromNRGBA(src, s), s)
		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				want := src.NRGBAAt(x, y)
				got := out.NRGBAAt(x, y)
				assert.InDelta(t, want.R, got.R, 1, "%s (%d,%d)", s, x, y)
				assert.InDelta(t, want.G, got.G, 1, "%s (%d,%d)", s, x, y)
				assert.InDelta(t, want.B, got.B, 1, "%s (%d,%d)", s, x, y)
				assert.Equal(t, uint8(255), got.A)
			}
		}
	}
}

func TestParseSpace(t *testing.T) {
	s, err := colorspace.ParseSpace("RGB")
	require.NoError(t, err)
	assert.Equal(t, colorspace.RGB, s)

	s, err = colorspace.ParseSpace("")
	require.NoError(t, err)
	assert.Equal(t, colorspace.Lab, s)

	_, err = colorspace.ParseSpace("hsv")
	assert.Error(t, err)
	assert.Equal(t, "lab", colorspace.Lab.String())
}
