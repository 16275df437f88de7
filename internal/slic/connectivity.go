package slic

import (
	"fmt"
	"slices"
)

const (
	unlabeled = -1
	pending   = -2
)

var (
	dx4 = [4]int{-1, 0, 1, 0}
	dy4 = [4]int{0, -1, 0, 1}
)

// LabelGrid is the final, connectivity-repaired segmentation. Labels run
// from 0 to NumLabels()-1.
type LabelGrid struct {
	width, height int
	labels        []int
	n             int
}

// NewLabelGrid wraps a copy of labels as a w×h label grid. Every label must
// be non-negative.
func NewLabelGrid(w, h int, labels []int) (*LabelGrid, error) {
	if w <= 0 || h <= 0 || len(labels) != w*h {
		return nil, fmt.Errorf("%w: %d labels for %dx%d grid", ErrDimensionMismatch, len(labels), w, h)
	}
	n := 0
	for i, l := range labels {
		if l < 0 {
			return nil, fmt.Errorf("slic: negative label %d at pixel %d", l, i)
		}
		n = max(n, l+1)
	}
	return &LabelGrid{width: w, height: h, labels: slices.Clone(labels), n: n}, nil
}

func (l *LabelGrid) Width() int     { return l.width }
func (l *LabelGrid) Height() int    { return l.height }
func (l *LabelGrid) NumLabels() int { return l.n }

// At returns the label of (x, y).
func (l *LabelGrid) At(x, y int) int {
	return l.labels[y*l.width+x]
}

// Labels returns a row-major copy of the labels.
func (l *LabelGrid) Labels() []int {
	return slices.Clone(l.labels)
}

// Sizes returns the pixel count of every label.
func (l *LabelGrid) Sizes() []int {
	sizes := make([]int, l.n)
	for _, v := range l.labels {
		sizes[v]++
	}
	return sizes
}

// Disconnected returns, in ascending order, the labels whose pixels form more
// than one 4-connected component. It is empty for grids produced by
// EnforceConnectivity.
func (l *LabelGrid) Disconnected() []int {
	w, h := l.width, l.height
	visited := make([]bool, len(l.labels))
	seen := make([]bool, l.n)
	reported := make([]bool, l.n)
	var out []int
	queue := make([]int, 0, 1024)

	for seed := range l.labels {
		if visited[seed] {
			continue
		}
		lbl := l.labels[seed]
		if seen[lbl] {
			if !reported[lbl] {
				reported[lbl] = true
				out = append(out, lbl)
			}
		}
		seen[lbl] = true

		visited[seed] = true
		queue = append(queue[:0], seed)
		for len(queue) > 0 {
			p := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			px, py := p%w, p/w
			for k := 0; k < 4; k++ {
				x, y := px+dx4[k], py+dy4[k]
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}
				q := y*w + x
				if !visited[q] && l.labels[q] == lbl {
					visited[q] = true
					queue = append(queue, q)
				}
			}
		}
	}
	slices.Sort(out)
	return out
}

// EnforceConnectivity relabels a into 4-connected regions. Regions of at most
// (w*h/numCenters)/4 pixels are merged into an adjacent region. If more than
// maxLabels regions remain, the smallest ones are merged into the neighbor
// they share the longest border with. maxLabels <= 0 disables that cap.
func EnforceConnectivity(a *Assignment, numCenters, maxLabels int) *LabelGrid {
	w, h := a.Width, a.Height
	n := w * h
	limit := (n / max(1, numCenters)) / 4

	labels := make([]int, n)
	for i := range labels {
		labels[i] = unlabeled
	}

	region := make([]int, 0, 1024)
	var held []int
	next := 0

	for seed := 0; seed < n; seed++ {
		if labels[seed] != unlabeled {
			continue
		}

		id := a.IDs[seed]
		adj := unlabeled
		labels[seed] = next
		region = append(region[:0], seed)

		for c := 0; c < len(region); c++ {
			px, py := region[c]%w, region[c]/w
			for k := 0; k < 4; k++ {
				x, y := px+dx4[k], py+dy4[k]
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}
				q := y*w + x
				switch {
				case labels[q] == unlabeled && a.IDs[q] == id:
					labels[q] = next
					region = append(region, q)
				case adj == unlabeled && labels[q] >= 0 && labels[q] != next:
					adj = labels[q]
				}
			}
		}

		switch {
		case len(region) > limit:
			next++
		case adj >= 0:
			for _, p := range region {
				labels[p] = adj
			}
		default:
			// Nothing labeled borders the region yet. This only happens at
			// the start of the scan; it is resolved once the scan is done.
			for _, p := range region {
				labels[p] = pending
			}
			held = append(held, region...)
		}
	}

	if len(held) > 0 {
		target := neighborLabel(labels, held, w, h)
		if target == unlabeled {
			target = next
			next++
		}
		for _, p := range held {
			labels[p] = target
		}
	}

	if maxLabels > 0 {
		next = mergeExcess(labels, w, h, next, maxLabels)
	}

	return &LabelGrid{width: w, height: h, labels: labels, n: next}
}

// neighborLabel returns the first final label found 4-adjacent to pixels,
// or unlabeled if there is none.
func neighborLabel(labels, pixels []int, w, h int) int {
	for _, p := range pixels {
		px, py := p%w, p/w
		for k := 0; k < 4; k++ {
			x, y := px+dx4[k], py+dy4[k]
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			if l := labels[y*w+x]; l >= 0 {
				return l
			}
		}
	}
	return unlabeled
}

// mergeExcess merges the smallest region into its longest-border neighbor
// until at most maxLabels remain, keeping labels dense. It returns the new
// label count.
func mergeExcess(labels []int, w, h, n, maxLabels int) int {
	sizes := make([]int, n)
	border := make([]int, n)
	for n > maxLabels {
		clear(sizes[:n])
		for _, l := range labels {
			sizes[l]++
		}
		smallest := 0
		for l := 1; l < n; l++ {
			if sizes[l] < sizes[smallest] {
				smallest = l
			}
		}

		clear(border[:n])
		for p, l := range labels {
			if l != smallest {
				continue
			}
			px, py := p%w, p/w
			for k := 0; k < 4; k++ {
				x, y := px+dx4[k], py+dy4[k]
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}
				if q := labels[y*w+x]; q != smallest {
					border[q]++
				}
			}
		}
		target := -1
		for l := 0; l < n; l++ {
			if border[l] > 0 && (target < 0 || border[l] > border[target]) {
				target = l
			}
		}
		if target < 0 {
			// Disjoint label: cannot happen on a connected pixel grid.
			return n
		}

		for i, l := range labels {
			if l == smallest {
				l = target
			}
			if l > smallest {
				l--
			}
			labels[i] = l
		}
		n--
	}
	return n
}
