package slic

import (
	"math"

	"slic-superpixels/internal/mathutil"
)

// Center is one cluster center. Its id is its index in the center slice.
type Center struct {
	Color mathutil.Vec3
	X, Y  float64
	// Count is the number of pixels assigned to the center after the last
	// recentering pass.
	Count int
}

// Spacing returns the grid interval S = sqrt(w*h/k).
func Spacing(w, h, k int) float64 {
	return math.Sqrt(float64(w*h) / float64(k))
}

// InitCenters seeds a center at every grid point (S/2 + i*S, S/2 + j*S) inside
// the image and moves it to the lowest-gradient pixel of its 3×3
// neighborhood, so no center starts on an edge. It returns the centers
// (row-major) and S. The grid may hold slightly more than k points; the label
// budget is enforced by EnforceConnectivity.
func InitCenters(g *Grid, k int) ([]Center, float64, error) {
	w, h := g.Width(), g.Height()
	if w <= 0 || h <= 0 {
		return nil, 0, &ParamError{Name: "grid", Value: [2]int{w, h}}
	}
	if k <= 0 || k > w*h {
		return nil, 0, &ParamError{Name: "superpixels", Value: k}
	}

	step := Spacing(w, h, k)
	xs, ys := seedCoords(step, w), seedCoords(step, h)
	centers := make([]Center, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			mx, my := localMinimum(g, x, y)
			centers = append(centers, Center{
				Color: g.At(mx, my),
				X:     float64(mx),
				Y:     float64(my),
			})
		}
	}
	return centers, step, nil
}

// seedCoords returns the lattice positions S/2 + i*S below n. A thin axis
// where S/2 >= n still gets one seed, clamped to its last pixel.
func seedCoords(step float64, n int) []int {
	var coords []int
	for i := 0; step/2+float64(i)*step < float64(n); i++ {
		coords = append(coords, int(step/2+float64(i)*step))
	}
	if len(coords) == 0 {
		coords = append(coords, min(int(step/2), n-1))
	}
	return coords
}

// localMinimum scans the 3×3 neighborhood of (cx, cy) and returns the first
// position, in row-major order, with the smallest gradient.
func localMinimum(g *Grid, cx, cy int) (int, int) {
	best := math.MaxFloat64
	bx, by := cx, cy
	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			if !g.In(x, y) {
				continue
			}
			if grad := gradient(g, x, y); grad < best {
				best, bx, by = grad, x, y
			}
		}
	}
	return bx, by
}

// gradient is the norm of the forward horizontal and vertical luma
// differences at (x, y). Neighbors past the border clamp to the edge pixel.
func gradient(g *Grid, x, y int) float64 {
	i := luma(g.At(x, y))
	dx := luma(g.At(min(x+1, g.w-1), y)) - i
	dy := luma(g.At(x, min(y+1, g.h-1))) - i
	return math.Sqrt(dx*dx + dy*dy)
}

var lumaWeights = mathutil.Vec3{0.114, 0.587, 0.299}

func luma(c mathutil.Vec3) float64 {
	return c.Dot(lumaWeights)
}
