package slic

import (
	"math"
	"runtime"
)

// DefaultIterations is the number of assign/update rounds run when
// Params.Iterations is zero.
const DefaultIterations = 10

// Params configures one segmentation run.
type Params struct {
	// Superpixels is the target superpixel count K, 1 <= K <= width*height.
	Superpixels int
	// Compactness is the color normalizer Nc. Larger values favor compact,
	// grid-like regions over color fidelity.
	Compactness float64
	// Iterations overrides DefaultIterations when positive.
	Iterations int
	// Workers bounds the goroutines used by the clustering sweeps.
	// Zero means runtime.NumCPU().
	Workers int
}

// Validate checks p against a w×h grid.
func (p Params) Validate(w, h int) error {
	if w <= 0 {
		return &ParamError{Name: "width", Value: w}
	}
	if h <= 0 {
		return &ParamError{Name: "height", Value: h}
	}
	if p.Superpixels <= 0 || p.Superpixels > w*h {
		return &ParamError{Name: "superpixels", Value: p.Superpixels}
	}
	if !(p.Compactness > 0) || math.IsInf(p.Compactness, 1) {
		return &ParamError{Name: "compactness", Value: p.Compactness}
	}
	if p.Iterations < 0 {
		return &ParamError{Name: "iterations", Value: p.Iterations}
	}
	if p.Workers < 0 {
		return &ParamError{Name: "workers", Value: p.Workers}
	}
	return nil
}

func (p Params) iterations() int {
	if p.Iterations > 0 {
		return p.Iterations
	}
	return DefaultIterations
}

func (p Params) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.NumCPU()
}
