// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/matrix"
)

func TestProjectPSD_ClipsNegativeSpectrum(t *testing.T) {
	t.Parallel()
	// eigenvalues 3 and -1
	a := MustFromRows(t, [][]float64{{1, 2}, {2, 1}})
	p, err := matrix.ProjectPSD(a, 0)
	require.NoError(t, err)
	// V·diag(3,0)·Vᵀ with v = (1,1)/√2
	RequireClose(t, MustFromRows(t, [][]float64{{1.5, 1.5}, {1.5, 1.5}}), p, 1e-12)

	w, err := matrix.MinEigenvalue(p)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, w, -1e-12)
}

func TestProjectPSD_Floor(t *testing.T) {
	t.Parallel()
	a := randomSymmetric(t, 5, 21)
	p, err := matrix.ProjectPSD(a, 1e-8)
	require.NoError(t, err)
	w, err := matrix.MinEigenvalue(p)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, w, 1e-8-1e-12)
	assert.True(t, matrix.IsPositiveDefinite(p))
}

func TestProjectPSD_IdempotentOnPSD(t *testing.T) {
	t.Parallel()
	a := randomSPD(t, 4, 9)
	p, err := matrix.ProjectPSD(a, 0)
	require.NoError(t, err)
	RequireClose(t, a, p, 1e-12)

	// asymmetric input: the symmetric part is projected
	asym := MustFromRows(t, [][]float64{{2, 1}, {0, 2}})
	p, err = matrix.ProjectPSD(asym, 0)
	require.NoError(t, err)
	RequireClose(t, MustFromRows(t, [][]float64{{2, 0.5}, {0.5, 2}}), p, 1e-12)

	_, err = matrix.ProjectPSD(a, math.Inf(1))
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestValidatePSD(t *testing.T) {
	t.Parallel()
	require.NoError(t, matrix.ValidatePSD(MustFromRows(t, [][]float64{{1, 1}, {1, 1}})))
	assert.ErrorIs(t, matrix.ValidatePSD(MustFromRows(t, [][]float64{{1, 2}, {2, 1}})), matrix.ErrNotPSD)
}

// factorGram returns LᵀL.
func factorGram(t *testing.T, l *matrix.Dense) *matrix.Dense {
	t.Helper()
	lt, err := matrix.Transpose(l)
	require.NoError(t, err)
	g, err := matrix.Mul(lt, l)
	require.NoError(t, err)

	return g
}

func TestFactorPSD(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		m    *matrix.Dense
	}{
		{"diagonal", MustFromRows(t, [][]float64{{4, 0}, {0, 9}})},
		{"definite", randomSPD(t, 4, 13)},
		{"semidefinite", MustFromRows(t, [][]float64{{1, 1, 0}, {1, 1, 0}, {0, 0, 2}})},
		{"zero", MustDense(t, 3, 3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := matrix.FactorPSD(tc.m)
			require.NoError(t, err)
			RequireClose(t, tc.m, factorGram(t, l), 1e-10)
		})
	}

	d, err := matrix.FactorPSD(MustFromRows(t, [][]float64{{4, 0}, {0, 9}}))
	require.NoError(t, err)
	assert.Equal(t, 2.0, MustAt(t, d, 0, 0))
	assert.Equal(t, 3.0, MustAt(t, d, 1, 1))
}

func TestFactorPSD_RejectsIndefinite(t *testing.T) {
	t.Parallel()
	_, err := matrix.FactorPSD(MustFromRows(t, [][]float64{{1, 2}, {2, 1}}))
	assert.ErrorIs(t, err, matrix.ErrNotPSD)
	_, err = matrix.FactorPSD(MustFromRows(t, [][]float64{{-1, 0}, {0, 1}}))
	assert.ErrorIs(t, err, matrix.ErrNotPSD)
}
