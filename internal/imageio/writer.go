package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"slic-superpixels/internal/slic"
)

// Format is an output encoding.
type Format string

const (
	WebP Format = "webp"
	PNG  Format = "png"
)

// MaxLabels is the largest label count a 16-bit label image can hold.
const MaxLabels = 1 << 16

// ParseFormat parses an output format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case WebP, PNG:
		return f, nil
	}
	return "", fmt.Errorf("imageio: unknown format %q", name)
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Save encodes img to path, creating parent directories.
func Save(path string, img image.Image, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: mkdir %s: %w", filepath.Dir(path), err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	w := bufio.NewWriter(out)

	switch f {
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case PNG:
		err = png.Encode(w, img)
	default:
		err = fmt.Errorf("unknown format %q", f)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

// SaveLabels stores a label grid as a 16-bit grayscale PNG where each pixel
// value is its label.
func SaveLabels(path string, l *slic.LabelGrid) error {
	if l.NumLabels() > MaxLabels {
		return fmt.Errorf("imageio: %d labels exceed the 16-bit label format", l.NumLabels())
	}
	w, h := l.Width(), l.Height()
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(l.At(x, y))})
		}
	}
	return Save(path, img, PNG)
}

// LoadLabels reads a label grid written by SaveLabels.
func LoadLabels(path string) (*slic.LabelGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}

	b := img.Bounds()
	labels := make([]int, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			labels = append(labels, int(color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y))
		}
	}

	l, err := slic.NewLabelGrid(b.Dx(), b.Dy(), labels)
	if err != nil {
		return nil, fmt.Errorf("imageio: labels %s: %w", path, err)
	}
	return l, nil
}
