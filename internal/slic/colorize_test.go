package slic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slic-superpixels/internal/mathutil"
	"slic-superpixels/internal/slic"
)

func TestMeanColors(t *testing.T) {
	g, err := slic.GridFromVectors(3, 1, []mathutil.Vec3{{0, 0, 0}, {2, 4, 6}, {9, 9, 9}})
	require.NoError(t, err)
	l, err := slic.NewLabelGrid(3, 1, []int{0, 0, 1})
	require.NoError(t, err)

	out, means, err := slic.MeanColors(l, g)
	require.NoError(t, err)
	assert.Equal(t, []mathutil.Vec3{{1, 2, 3}, {9, 9, 9}}, means)
	assert.Equal(t, mathutil.Vec3{1, 2, 3}, out.At(0, 0))
	assert.Equal(t, mathutil.Vec3{1, 2, 3}, out.At(1, 0))
	assert.Equal(t, mathutil.Vec3{9, 9, 9}, out.At(2, 0))
}

func TestMeanColorsDimensionMismatch(t *testing.T) {
	l, err := slic.NewLabelGrid(2, 2, make([]int, 4))
	require.NoError(t, err)
	_, _, err = slic.MeanColors(l, slic.NewGrid(2, 3))
	assert.ErrorIs(t, err, slic.ErrDimensionMismatch)
}

func TestGridFromVectorsDimensionMismatch(t *testing.T) {
	_, err := slic.GridFromVectors(2, 2, make([]mathutil.Vec3, 3))
	assert.ErrorIs(t, err, slic.ErrDimensionMismatch)
}
