package slic

import "slic-superpixels/internal/mathutil"

// Result is the output of one segmentation run.
type Result struct {
	Labels  *LabelGrid
	Centers []Center
	// Step is the seed interval S used for the run.
	Step float64
}

// Segment runs the full pipeline on g: seeding, clustering, and
// connectivity enforcement. Parameters are validated before any work starts.
func Segment(g *Grid, p Params) (*Result, error) {
	if g == nil {
		return nil, &ParamError{Name: "grid", Value: nil}
	}
	if err := p.Validate(g.Width(), g.Height()); err != nil {
		return nil, err
	}

	centers, step, err := InitCenters(g, p.Superpixels)
	if err != nil {
		return nil, err
	}

	a, err := Cluster(g, centers, step, p)
	if err != nil {
		return nil, err
	}

	return &Result{
		Labels:  EnforceConnectivity(a, len(centers), p.Superpixels),
		Centers: centers,
		Step:    step,
	}, nil
}

// Boundaries returns the contour pixels of the segmentation.
func (r *Result) Boundaries() *BoundarySet {
	return FindBoundaries(r.Labels)
}

// MeanColors recolors g with the mean color of every superpixel. g is
// usually the grid that was segmented, but any grid of the same size works,
// e.g. the RGB source of a Lab segmentation.
func (r *Result) MeanColors(g *Grid) (*Grid, []mathutil.Vec3, error) {
	return MeanColors(r.Labels, g)
}
