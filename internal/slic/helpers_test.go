package slic_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"slic-superpixels/internal/mathutil"
	"slic-superpixels/internal/slic"
)

// uniformGrid returns a w×h grid filled with c.
func uniformGrid(w, h int, c mathutil.Vec3) *slic.Grid {
	g := slic.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, c)
		}
	}
	return g
}

// blockGrid returns a w×h grid of four colored quadrants with seeded noise.
func blockGrid(tb testing.TB, w, h int, seed int64) *slic.Grid {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	quads := [4]mathutil.Vec3{
		{20, 10, -30},
		{80, -40, 20},
		{50, 60, 5},
		{35, 0, 0},
	}
	pix := make([]mathutil.Vec3, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			q := 0
			if x >= w/2 {
				q++
			}
			if y >= h/2 {
				q += 2
			}
			c := quads[q]
			for k := range c {
				c[k] += rng.Float64()*6 - 3
			}
			pix = append(pix, c)
		}
	}
	g, err := slic.GridFromVectors(w, h, pix)
	require.NoError(tb, err)
	return g
}

// assignmentOf builds an Assignment from row-major ids.
func assignmentOf(w, h int, ids []int) *slic.Assignment {
	return &slic.Assignment{
		Width:  w,
		Height: h,
		IDs:    ids,
		Dist:   make([]float64, w*h),
	}
}
