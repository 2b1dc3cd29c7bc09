// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/matrix"
)

func TestValidateNotNil(t *testing.T) {
	var typedNil *matrix.Dense
	assert.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	assert.ErrorIs(t, matrix.ValidateNotNil(typedNil), matrix.ErrNilMatrix)
	assert.NoError(t, matrix.ValidateNotNil(MustDense(t, 1, 1)))
}

func TestValidateShapes(t *testing.T) {
	a := MustDense(t, 2, 2)
	b := MustDense(t, 2, 3)
	assert.ErrorIs(t, matrix.ValidateSameShape(a, b), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateSquare(b), matrix.ErrNonSquare)
	assert.ErrorIs(t, matrix.ValidateSquareNonNil(nil), matrix.ErrNilMatrix)
	assert.NoError(t, matrix.ValidateMulCompatible(a, b))
	assert.ErrorIs(t, matrix.ValidateMulCompatible(b, a), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}

func TestValidateSymmetric(t *testing.T) {
	m := MustFromRows(t, [][]float64{{1, 2}, {2.001, 1}})
	assert.ErrorIs(t, matrix.ValidateSymmetric(m, 1e-6), matrix.ErrAsymmetry)
	assert.NoError(t, matrix.ValidateSymmetric(m, 1e-2))
	assert.NoError(t, matrix.ValidateSymmetric(m, -1e-2), "negative tolerance is flipped")
	assert.ErrorIs(t, matrix.ValidateSymmetric(m, math.NaN()), matrix.ErrNaNInf)
}

func TestIsZeroOffDiagonal(t *testing.T) {
	d, err := matrix.NewDiagonal([]float64{1, 2})
	require.NoError(t, err)
	ok, err := matrix.IsZeroOffDiagonal(d, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.IsZeroOffDiagonal(MustFromRows(t, [][]float64{{1, 1e-3}, {0, 1}}), 1e-6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateFinite(t *testing.T) {
	assert.NoError(t, matrix.ValidateFinite([]float64{1, 2}))
	assert.ErrorIs(t, matrix.ValidateFinite([]float64{1, math.Inf(1)}), matrix.ErrNaNInf)
}
