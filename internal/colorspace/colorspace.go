// Package colorspace converts decoded images to and from the pixel grids the
// segmenter works on.
package colorspace

import (
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"slic-superpixels/internal/mathutil"
	"slic-superpixels/internal/slic"
)

// Space selects the channel encoding of a grid.
type Space int

const (
	// Lab is CIE L*a*b* (D65) with L in 0..100 and a/b roughly in -100..100.
	Lab Space = iota
	// RGB is sRGB with channels in 0..255.
	RGB
)

// labScale maps go-colorful's Lab units (L in 0..1) to CIE units.
const labScale = 100.0

func (s Space) String() string {
	switch s {
	case Lab:
		return "lab"
	case RGB:
		return "rgb"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// ParseSpace parses "lab" or "rgb" (case-insensitive).
func ParseSpace(name string) (Space, error) {
	switch strings.ToLower(name) {
	case "lab", "":
		return Lab, nil
	case "rgb":
		return RGB, nil
	}
	return 0, fmt.Errorf("colorspace: unknown space %q", name)
}

// FromNRGBA converts img to a grid in the given space. Alpha is ignored.
func FromNRGBA(img *image.NRGBA, s Space) *slic.Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	g := slic.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			r, gr, bl := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
			g.Set(x, y, encode(r, gr, bl, s))
		}
	}
	return g
}

// ToNRGBA converts a grid in the given space back to an opaque image.
func ToNRGBA(g *slic.Grid, s Space) *image.NRGBA {
	w, h := g.Width(), g.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gr, bl := decode(g.At(x, y), s)
			i := img.PixOffset(x, y)
			img.Pix[i] = r
			img.Pix[i+1] = gr
			img.Pix[i+2] = bl
			img.Pix[i+3] = 255
		}
	}
	return img
}

func encode(r, g, b uint8, s Space) mathutil.Vec3 {
	if s == RGB {
		return mathutil.Vec3{float64(r), float64(g), float64(b)}
	}
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	l, a, bb := c.Lab()
	return mathutil.Vec3{l * labScale, a * labScale, bb * labScale}
}

func decode(v mathutil.Vec3, s Space) (uint8, uint8, uint8) {
	if s == RGB {
		return clamp8(v[0]), clamp8(v[1]), clamp8(v[2])
	}
	c := colorful.Lab(v[0]/labScale, v[1]/labScale, v[2]/labScale).Clamped()
	return c.RGB255()
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
