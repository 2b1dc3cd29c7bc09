// SPDX-License-Identifier: MIT
package constraint_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/solver"
)

func samplePairs(t *testing.T) *constraint.PairSet {
	t.Helper()
	s, err := constraint.NewPairSet([][][]float64{
		{{0, 0}, {1, 0}},
		{{0, 0}, {0, 3}},
		{{1, 0}, {5, 5}},
	}, []int{1, -1, 1})
	require.NoError(t, err)

	return s
}

func TestNewPairSet_Accessors(t *testing.T) {
	s := samplePairs(t)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Dim())
	assert.Equal(t, constraint.Similar, s.Label(0))
	assert.Equal(t, constraint.Dissimilar, s.Label(1))

	sim, dis := s.Count()
	assert.Equal(t, 2, sim)
	assert.Equal(t, 1, dis)
	assert.Len(t, s.Similar(), 2)
	assert.Len(t, s.Dissimilar(), 1)
	assert.Equal(t, []float64{0, 3}, s.Dissimilar()[0].B)

	assert.Equal(t, [][]float64{{-1, 0}, {0, -3}, {-4, -5}}, s.Differences())
	assert.Equal(t, [][]float64{{0, -3}}, s.DifferencesOf(constraint.Dissimilar))
}

func TestNewPairSet_CopiesInput(t *testing.T) {
	p := []float64{1, 2}
	s, err := constraint.NewPairSet([][][]float64{{p, {3, 4}}}, []int{1})
	require.NoError(t, err)
	p[0] = 99
	assert.Equal(t, 1.0, s.Pair(0).A[0])
}

func TestNewPairSet_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tuples [][][]float64
		labels []int
		want   error
	}{
		{"length", [][][]float64{{{1}, {2}}}, []int{1, 1}, constraint.ErrLength},
		{"arity", [][][]float64{{{1}, {2}, {3}}}, []int{1}, constraint.ErrArity},
		{"label", [][][]float64{{{1}, {2}}}, []int{0}, constraint.ErrLabel},
		{"dimension", [][][]float64{{{1}, {2, 3}}}, []int{1}, constraint.ErrDimension},
		{"dimension across tuples", [][][]float64{{{1}, {2}}, {{1, 1}, {2, 2}}}, []int{1, -1}, constraint.ErrDimension},
		{"empty point", [][][]float64{{{}, {}}}, []int{1}, constraint.ErrEmpty},
		{"nan", [][][]float64{{{math.NaN()}, {2}}}, []int{1}, constraint.ErrNonFinite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := constraint.NewPairSet(tc.tuples, tc.labels)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, errors.Is(err, solver.ErrConfiguration))
		})
	}
}

func TestNewPairSet_Empty(t *testing.T) {
	s, err := constraint.NewPairSet(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Dim())

	e, err := constraint.NewEmptyPairSet(3)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Dim())

	_, err = constraint.NewEmptyPairSet(0)
	assert.ErrorIs(t, err, constraint.ErrEmpty)
}

func TestParseLabel(t *testing.T) {
	l, err := constraint.ParseLabel(-1)
	require.NoError(t, err)
	assert.Equal(t, "dissimilar", l.String())
	_, err = constraint.ParseLabel(2)
	assert.ErrorIs(t, err, constraint.ErrLabel)
	assert.Equal(t, "Label(3)", constraint.Label(3).String())
}

func TestPairSet_IndexDeduplicates(t *testing.T) {
	s := samplePairs(t)
	points, a, b := s.Index()
	require.Len(t, points, 4)
	assert.Equal(t, []int{0, 0, 1}, a)
	assert.Equal(t, []int{1, 2, 3}, b)
	assert.Equal(t, []float64{5, 5}, points[3])
}

func TestPairSet_Collapsed(t *testing.T) {
	s, err := constraint.NewPairSet([][][]float64{
		{{1, 1}, {1, 1}},
		{{0, 0}, {1, 0}},
	}, []int{1, -1})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Collapsed(1e-12))
	assert.ErrorIs(t, s.ValidateNotCollapsed(1e-12), constraint.ErrCollapsed)
	assert.NoError(t, samplePairs(t).ValidateNotCollapsed(1e-12))
}
