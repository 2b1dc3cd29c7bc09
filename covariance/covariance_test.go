// SPDX-License-Identifier: MIT
package covariance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/covariance"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

func TestFit_InverseCovariance(t *testing.T) {
	x := [][]float64{{0, 1}, {2, 0}, {1, 3}, {3, 2}, {4, 5}}
	mt, err := covariance.Fit(x)
	require.NoError(t, err)

	d, _ := matrix.NewFromRows(x)
	cov, _, err := matrix.Covariance(d)
	require.NoError(t, err)
	prod, err := matrix.Mul(mt.Matrix(), cov)
	require.NoError(t, err)
	id, _ := matrix.NewIdentity(2)
	ok, _ := matrix.AllClose(prod, id, 0, 1e-10)
	assert.True(t, ok, "M·Cov = %v", prod)
}

func TestFit_OneFeature(t *testing.T) {
	mt, err := covariance.Fit([][]float64{{1}, {2}, {3}, {4}})
	require.NoError(t, err)
	v, _ := mt.Matrix().At(0, 0)
	assert.InDelta(t, 1/(5.0/3.0), v, 1e-12) // unbiased variance of 1..4 is 5/3
}

func TestFit_Errors(t *testing.T) {
	_, err := covariance.Fit([][]float64{{1, 2}})
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	_, err = covariance.Fit([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	_, err = covariance.Fit([][]float64{{1, math.NaN()}, {3, 4}})
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	_, err = covariance.Fit([][]float64{{0, 0}, {1, 1}, {2, 2}})
	assert.ErrorIs(t, err, solver.ErrNumerical)
}
