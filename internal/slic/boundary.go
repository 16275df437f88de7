package slic

import (
	"image"
	"slices"
)

var (
	dx8 = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
	dy8 = [8]int{0, -1, -1, -1, 0, 1, 1, 1}
)

// BoundarySet is the set of contour pixels of a label grid.
type BoundarySet struct {
	width, height int
	mask          []bool
	points        []image.Point
}

// FindBoundaries marks a pixel as a contour pixel when at least three of its
// 8-neighbors carry a different label and are not contour pixels already.
// The result is a contour one pixel wide.
func FindBoundaries(l *LabelGrid) *BoundarySet {
	w, h := l.width, l.height
	bs := &BoundarySet{width: w, height: h, mask: make([]bool, w*h)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			lbl := l.labels[i]
			np := 0
			for k := 0; k < 8; k++ {
				nx, ny := x+dx8[k], y+dy8[k]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if !bs.mask[j] && l.labels[j] != lbl {
					np++
				}
			}
			if np >= 3 {
				bs.mask[i] = true
				bs.points = append(bs.points, image.Pt(x, y))
			}
		}
	}
	return bs
}

// Contains reports whether (x, y) is a contour pixel.
func (b *BoundarySet) Contains(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.mask[y*b.width+x]
}

// Points returns the contour pixels in row-major order.
func (b *BoundarySet) Points() []image.Point {
	return slices.Clone(b.points)
}

func (b *BoundarySet) Len() int { return len(b.points) }
