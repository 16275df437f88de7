// Package slic computes SLIC superpixel over-segmentations: a localized
// k-means in joint color+space, a connectivity repair pass, and the derived
// boundary and mean-color views.
//
// The package is color-space agnostic. Callers convert pixels (usually to
// CIE Lab) before building a Grid.
package slic

import (
	"fmt"

	"slic-superpixels/internal/mathutil"
)

// Grid is a dense row-major array of per-pixel color vectors.
// A Grid handed to Segment must not be modified while the run is in progress.
type Grid struct {
	w, h int
	pix  []mathutil.Vec3
}

// NewGrid allocates a zeroed w×h grid.
func NewGrid(w, h int) *Grid {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Grid{w: w, h: h, pix: make([]mathutil.Vec3, w*h)}
}

// GridFromVectors wraps a copy of pix as a w×h grid.
func GridFromVectors(w, h int, pix []mathutil.Vec3) (*Grid, error) {
	if w < 0 || h < 0 || len(pix) != w*h {
		return nil, fmt.Errorf("%w: %d vectors for %dx%d grid", ErrDimensionMismatch, len(pix), w, h)
	}
	g := NewGrid(w, h)
	copy(g.pix, pix)
	return g, nil
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// At returns the color at (x, y). The coordinate must satisfy In.
func (g *Grid) At(x, y int) mathutil.Vec3 {
	return g.pix[y*g.w+x]
}

// Set stores c at (x, y). Only used while building a grid.
func (g *Grid) Set(x, y int, c mathutil.Vec3) {
	g.pix[y*g.w+x] = c
}
