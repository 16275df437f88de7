package slic

import (
	"fmt"

	"slic-superpixels/internal/mathutil"
)

// MeanColors replaces every pixel of g by the mean color of its label.
// It returns the recolored grid and the per-label means.
func MeanColors(l *LabelGrid, g *Grid) (*Grid, []mathutil.Vec3, error) {
	if l.width != g.w || l.height != g.h {
		return nil, nil, fmt.Errorf("%w: labels %dx%d, pixels %dx%d",
			ErrDimensionMismatch, l.width, l.height, g.w, g.h)
	}

	sums := make([]mathutil.Vec3, l.n)
	counts := make([]int, l.n)
	for i, lbl := range l.labels {
		sums[lbl] = sums[lbl].Add(g.pix[i])
		counts[lbl]++
	}

	means := make([]mathutil.Vec3, l.n)
	for lbl, s := range sums {
		if counts[lbl] == 0 {
			continue
		}
		means[lbl] = s.Div(float64(counts[lbl]))
	}

	out := NewGrid(g.w, g.h)
	for i, lbl := range l.labels {
		out.pix[i] = means[lbl]
	}
	return out, means, nil
}
