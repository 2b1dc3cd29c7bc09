// SPDX-License-Identifier: MIT
package mmc_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/mmc"
	"github.com/katalvlaran/lvmetric/solver"
)

func quiet() solver.Trace {
	l := zerolog.Nop()
	return solver.Trace{Logger: &l}
}

func examplePairs(t *testing.T) *constraint.PairSet {
	t.Helper()
	s, err := constraint.NewPairSet([][][]float64{
		{{1.2, 7.5}, {1.3, 1.5}},
		{{6.4, 2.6}, {6.2, 9.7}},
		{{1.3, 4.5}, {3.2, 4.6}},
		{{6.2, 5.5}, {5.4, 5.4}},
		{{3.3, 1.1}, {3.1, 2.4}},
		{{0.4, 0.5}, {4.1, 0.9}},
	}, []int{1, 1, -1, -1, 1, -1})
	require.NoError(t, err)

	return s
}

func dissimilarSums(t *testing.T, m *matrix.Dense, s *constraint.PairSet) (sq, root float64) {
	t.Helper()
	for _, v := range s.DifferencesOf(constraint.Dissimilar) {
		d, err := matrix.QuadForm(m, v)
		require.NoError(t, err)
		sq += d
		root += math.Sqrt(math.Max(0, d))
	}

	return sq, root
}

func requirePSD(t *testing.T, m *matrix.Dense) {
	t.Helper()
	require.NoError(t, matrix.ValidateSymmetric(m, 0))
	require.NoError(t, matrix.ValidatePSD(m))
}

func TestFit_Full(t *testing.T) {
	s := examplePairs(t)
	opts := mmc.DefaultOptions()
	opts.Trace = quiet()

	res, err := mmc.Fit(s, nil, opts)
	require.NoError(t, err)
	require.NotNil(t, res.Metric)
	assert.Positive(t, res.Iterations)
	requirePSD(t, res.Metric)

	sq, root := dissimilarSums(t, res.Metric, s)
	assert.GreaterOrEqual(t, sq, 1-1e-9)
	assert.GreaterOrEqual(t, root, 1-1e-9)
}

func TestFit_Diagonal(t *testing.T) {
	s := examplePairs(t)
	opts := mmc.DefaultOptions()
	opts.Diagonal = true
	opts.Trace = quiet()

	res, err := mmc.Fit(s, nil, opts)
	require.NoError(t, err)
	requirePSD(t, res.Metric)

	zero, err := matrix.IsZeroOffDiagonal(res.Metric, 0)
	require.NoError(t, err)
	assert.True(t, zero)
	diag, err := matrix.Diagonal(res.Metric)
	require.NoError(t, err)
	for _, w := range diag {
		assert.GreaterOrEqual(t, w, 0.0)
	}
	sq, _ := dissimilarSums(t, res.Metric, s)
	assert.GreaterOrEqual(t, sq, 1-1e-9)
}

func TestFit_Deterministic(t *testing.T) {
	s := examplePairs(t)
	for _, diagonal := range []bool{false, true} {
		opts := mmc.DefaultOptions()
		opts.Diagonal = diagonal
		opts.Trace = quiet()
		a, err := mmc.Fit(s, nil, opts)
		require.NoError(t, err)
		b, err := mmc.Fit(s, nil, opts)
		require.NoError(t, err)
		ok, _ := matrix.AllClose(a.Metric, b.Metric, 0, 0)
		assert.True(t, ok, "diagonal=%v", diagonal)
		assert.Equal(t, a.Iterations, b.Iterations)
	}
}

func TestFit_IterationCapWarns(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	opts := mmc.DefaultOptions()
	opts.MaxIter = 1
	opts.ConvergenceThreshold = 1e-12
	opts.Logger = &l

	res, err := mmc.Fit(examplePairs(t), nil, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	assert.False(t, res.Converged)
	assert.Contains(t, buf.String(), "did not converge")
	requirePSD(t, res.Metric)
}

func TestFit_ConfigurationErrors(t *testing.T) {
	opts := mmc.DefaultOptions()
	opts.Trace = quiet()

	only, err := constraint.NewPairSet([][][]float64{{{0, 0}, {1, 1}}}, []int{-1})
	require.NoError(t, err)
	_, err = mmc.Fit(only, nil, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	empty, _ := constraint.NewEmptyPairSet(2)
	_, err = mmc.Fit(empty, nil, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	collapsed, err := constraint.NewPairSet([][][]float64{{{1, 1}, {1, 1}}, {{0, 0}, {1, 0}}}, []int{1, -1})
	require.NoError(t, err)
	_, err = mmc.Fit(collapsed, nil, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	bad := opts
	bad.MaxProj = 0
	_, err = mmc.Fit(examplePairs(t), nil, bad)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	bad = opts
	bad.Diagonal = true
	bad.DiagonalC = 0
	_, err = mmc.Fit(examplePairs(t), nil, bad)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	wrong, _ := matrix.NewIdentity(3)
	_, err = mmc.Fit(examplePairs(t), wrong, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)
}

func TestFit_DiagonalPriorMustBeDiagonal(t *testing.T) {
	opts := mmc.DefaultOptions()
	opts.Diagonal = true
	opts.Trace = quiet()

	full, err := matrix.NewFromRows([][]float64{{2, 0.5}, {0.5, 1}})
	require.NoError(t, err)
	_, err = mmc.Fit(examplePairs(t), full, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	diag, err := matrix.NewDiagonal([]float64{2, 1})
	require.NoError(t, err)
	res, err := mmc.Fit(examplePairs(t), diag, opts)
	require.NoError(t, err)
	ok, err := matrix.IsZeroOffDiagonal(res.Metric, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	// the full variant takes any SPD prior
	opts.Diagonal = false
	_, err = mmc.Fit(examplePairs(t), full, opts)
	assert.NoError(t, err)
}
