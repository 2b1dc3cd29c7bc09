// SPDX-License-Identifier: MIT
package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/constraint"
)

var points = [][]float64{{0, 0}, {1, 1}, {5, 5}, {6, 6}}

func TestWrapPairs(t *testing.T) {
	s, err := constraint.WrapPairs(points, []int{0, 2}, []int{1, 3}, []int{0}, []int{3})
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []constraint.Label{constraint.Similar, constraint.Similar, constraint.Dissimilar}, s.Labels())
	assert.Equal(t, []float64{6, 6}, s.Pair(2).B)
}

func TestWrapPairs_EmptyKeepsDimension(t *testing.T) {
	s, err := constraint.WrapPairs(points, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 2, s.Dim())
}

func TestWrapPairs_Errors(t *testing.T) {
	_, err := constraint.WrapPairs(points, []int{0}, nil, nil, nil)
	assert.ErrorIs(t, err, constraint.ErrLength)

	_, err = constraint.WrapPairs(points, []int{0}, []int{4}, nil, nil)
	assert.ErrorIs(t, err, constraint.ErrIndex)

	_, err = constraint.WrapPairs(points, nil, nil, []int{-1}, []int{0})
	assert.ErrorIs(t, err, constraint.ErrIndex)
}

func TestQuadrupletsFromIndices(t *testing.T) {
	s, err := constraint.QuadrupletsFromIndices(points, [][4]int{{0, 1, 0, 3}})
	require.NoError(t, err)
	assert.Equal(t, constraint.Quadruplet{{0, 0}, {1, 1}, {0, 0}, {6, 6}}, s.At(0))

	_, err = constraint.QuadrupletsFromIndices(points, [][4]int{{0, 1, 2, 9}})
	assert.ErrorIs(t, err, constraint.ErrIndex)

	e, err := constraint.QuadrupletsFromIndices(points, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Dim())
}
