package slic

import (
	"math"

	"golang.org/x/sync/errgroup"

	"slic-superpixels/internal/mathutil"
)

// Unassigned marks a pixel no center has reached yet.
const Unassigned = -1

// maxBands caps the number of row bands the sweeps are split into. The band
// layout depends on the image height only, so results do not depend on the
// worker count.
const maxBands = 32

// Assignment is the per-pixel output of the clustering loop.
type Assignment struct {
	Width, Height int
	// IDs holds a center id or Unassigned per pixel, row-major.
	IDs []int
	// Dist holds the best distance found in the last iteration.
	Dist []float64
}

// At returns the center id assigned to (x, y).
func (a *Assignment) At(x, y int) int {
	return a.IDs[y*a.Width+x]
}

type band struct {
	y0, y1 int // rows [y0, y1)
}

type accum struct {
	color mathutil.Vec3
	x, y  float64
	n     int
}

type engine struct {
	g           *Grid
	centers     []Center
	step        float64
	compactness float64
	workers     int
	bands       []band
	partial     [][]accum
	a           *Assignment
}

// Cluster runs the assign/update loop over g, mutating centers in place, and
// returns the final assignment. step is the grid interval S from InitCenters.
func Cluster(g *Grid, centers []Center, step float64, p Params) (*Assignment, error) {
	w, h := g.Width(), g.Height()
	if err := p.Validate(w, h); err != nil {
		return nil, err
	}
	if !(step > 0) || math.IsInf(step, 1) {
		return nil, &ParamError{Name: "step", Value: step}
	}

	e := newEngine(g, centers, step, p)
	for it := 0; it < p.iterations(); it++ {
		e.assign()
		e.recenter()
	}
	return e.a, nil
}

func newEngine(g *Grid, centers []Center, step float64, p Params) *engine {
	w, h := g.Width(), g.Height()
	ids := make([]int, w*h)
	for i := range ids {
		ids[i] = Unassigned
	}

	bands := splitRows(h, maxBands)
	partial := make([][]accum, len(bands))
	for i := range partial {
		partial[i] = make([]accum, len(centers))
	}

	return &engine{
		g:           g,
		centers:     centers,
		step:        step,
		compactness: p.Compactness,
		workers:     p.workers(),
		bands:       bands,
		partial:     partial,
		a: &Assignment{
			Width:  w,
			Height: h,
			IDs:    ids,
			Dist:   make([]float64, w*h),
		},
	}
}

// splitRows divides h rows into at most n contiguous bands of near-equal size.
func splitRows(h, n int) []band {
	n = max(1, min(n, h))
	bands := make([]band, n)
	for i := range bands {
		bands[i] = band{y0: i * h / n, y1: (i + 1) * h / n}
	}
	return bands
}

// parallel runs fn once per band. Each band touches only its own rows and its
// own partial accumulators.
func (e *engine) parallel(fn func(bi int, b band)) {
	if e.workers == 1 || len(e.bands) == 1 {
		for bi, b := range e.bands {
			fn(bi, b)
		}
		return
	}

	var eg errgroup.Group
	eg.SetLimit(e.workers)
	for bi, b := range e.bands {
		eg.Go(func() error {
			fn(bi, b)
			return nil
		})
	}
	_ = eg.Wait()
}

// assign resets the distances and lets every center claim the pixels of its
// 2S×2S window it is strictly closest to. Centers are visited in id order,
// so ties go to the lower id.
func (e *engine) assign() {
	w := e.g.w
	pix := e.g.pix
	ids := e.a.IDs
	dist := e.a.Dist
	invNc2 := 1 / (e.compactness * e.compactness)
	invNs2 := 1 / (e.step * e.step)

	e.parallel(func(_ int, b band) {
		for i := b.y0 * w; i < b.y1*w; i++ {
			dist[i] = math.Inf(1)
		}

		for ci := range e.centers {
			c := &e.centers[ci]
			y0 := max(b.y0, int(math.Ceil(c.Y-e.step)))
			y1 := min(b.y1-1, int(math.Floor(c.Y+e.step)))
			if y0 > y1 {
				continue
			}
			x0 := max(0, int(math.Ceil(c.X-e.step)))
			x1 := min(w-1, int(math.Floor(c.X+e.step)))

			for y := y0; y <= y1; y++ {
				dy := float64(y) - c.Y
				row := y * w
				for x := x0; x <= x1; x++ {
					i := row + x
					dx := float64(x) - c.X
					dc2 := c.Color.Dist2(pix[i])
					ds2 := dx*dx + dy*dy
					d := math.Sqrt(dc2*invNc2 + ds2*invNs2)
					if d < dist[i] {
						dist[i] = d
						ids[i] = ci
					}
				}
			}
		}
	})
}

// recenter moves every center to the mean color and position of its pixels.
// Centers without pixels keep their previous color and position.
func (e *engine) recenter() {
	w := e.g.w
	pix := e.g.pix
	ids := e.a.IDs

	e.parallel(func(bi int, b band) {
		acc := e.partial[bi]
		clear(acc)
		for y := b.y0; y < b.y1; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				id := ids[i]
				if id == Unassigned {
					continue
				}
				s := &acc[id]
				s.color = s.color.Add(pix[i])
				s.x += float64(x)
				s.y += float64(y)
				s.n++
			}
		}
	})

	for ci := range e.centers {
		var sum accum
		for bi := range e.partial {
			s := e.partial[bi][ci]
			sum.color = sum.color.Add(s.color)
			sum.x += s.x
			sum.y += s.y
			sum.n += s.n
		}

		c := &e.centers[ci]
		c.Count = sum.n
		if sum.n == 0 {
			continue
		}
		n := float64(sum.n)
		c.Color = sum.color.Div(n)
		c.X = sum.x / n
		c.Y = sum.y / n
	}
}
