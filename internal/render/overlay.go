package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"

	"slic-superpixels/internal/slic"
)

// ParseColor parses a "#rrggbb" hex color into an opaque NRGBA.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render: color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Contours returns a copy of img with every boundary pixel painted in c.
func Contours(img *image.NRGBA, bs *slic.BoundarySet, c color.Color) *image.NRGBA {
	dst := clone(img)
	b := dst.Bounds()
	for _, p := range bs.Points() {
		dst.Set(b.Min.X+p.X, b.Min.Y+p.Y, c)
	}
	return dst
}

// CenterGrid returns a copy of img with a small cross drawn on every center
// that still owns pixels.
func CenterGrid(img *image.NRGBA, centers []slic.Center, c color.Color) *image.NRGBA {
	dst := clone(img)
	b := dst.Bounds()
	for _, ctr := range centers {
		if ctr.Count == 0 {
			continue
		}
		cx := b.Min.X + int(ctr.X+0.5)
		cy := b.Min.Y + int(ctr.Y+0.5)
		for d := -1; d <= 1; d++ {
			// Set ignores points outside the bounds.
			dst.Set(cx+d, cy, c)
			dst.Set(cx, cy+d, c)
		}
	}
	return dst
}

func clone(img *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
