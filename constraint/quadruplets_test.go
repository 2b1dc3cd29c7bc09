// SPDX-License-Identifier: MIT
package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/constraint"
)

func TestNewQuadrupletSet(t *testing.T) {
	s, err := constraint.NewQuadrupletSet([][][]float64{
		{{0, 0}, {1, 0}, {0, 0}, {4, 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Dim())

	q := s.At(0)
	assert.Equal(t, []float64{1, 0}, q.Close().B)
	assert.Equal(t, []float64{4, 4}, q.Far().B)
	assert.Len(t, s.Points(), 3)
}

func TestNewQuadrupletSet_Errors(t *testing.T) {
	_, err := constraint.NewQuadrupletSet([][][]float64{{{0}, {1}, {2}}})
	assert.ErrorIs(t, err, constraint.ErrArity)

	_, err = constraint.NewQuadrupletSet([][][]float64{{{0}, {1}, {2}, {3, 4}}})
	assert.ErrorIs(t, err, constraint.ErrDimension)

	_, err = constraint.NewEmptyQuadrupletSet(-1)
	assert.ErrorIs(t, err, constraint.ErrEmpty)
}

func TestQuadrupletSet_Swapped(t *testing.T) {
	s, err := constraint.NewQuadrupletSet([][][]float64{
		{{0}, {1}, {2}, {3}},
		{{4}, {5}, {6}, {7}},
	})
	require.NoError(t, err)

	sw, err := s.Swapped(1)
	require.NoError(t, err)
	assert.Equal(t, constraint.Quadruplet{{6}, {7}, {4}, {5}}, sw.At(1))
	assert.Equal(t, s.At(0), sw.At(0))
	// original untouched
	assert.Equal(t, []float64{4}, s.At(1)[0])

	_, err = s.Swapped(2)
	assert.ErrorIs(t, err, constraint.ErrIndex)
}
