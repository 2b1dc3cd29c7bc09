// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/matrix"
)

func TestNewDenseDefaultZero(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{
		{1, 1},
		{3, 3},
		{2, 6},
	} {
		t.Run(fmt.Sprintf("%dx%d", tc.rows, tc.cols), func(t *testing.T) {
			m := MustDense(t, tc.rows, tc.cols)
			r, c := m.Shape()
			assert.Equal(t, tc.rows, r)
			assert.Equal(t, tc.cols, c)
			var i, j int
			for i = 0; i < tc.rows; i++ {
				for j = 0; j < tc.cols; j++ {
					assert.Zero(t, MustAt(t, m, i, j))
				}
			}
		})
	}
}

func TestNewDense_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := matrix.NewDense(dims[0], dims[1])
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()
	m := MustDense(t, 2, 3)

	_, err := m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)

	MustSet(t, m, 1, 2, 7.5)
	assert.Equal(t, 7.5, MustAt(t, m, 1, 2))
}

func TestNewFromRows(t *testing.T) {
	t.Parallel()
	m := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 6.0, MustAt(t, m, 1, 2))

	_, err := matrix.NewFromRows(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.NewFromRows([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestToRowsRoundTrip(t *testing.T) {
	t.Parallel()
	rows := [][]float64{{1, -2}, {3.5, 0}, {9, 10}}
	m := MustFromRows(t, rows)

	got, err := matrix.ToRows(m)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	// Non-Dense path yields the same copy.
	got, err = matrix.ToRows(hide{m})
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	// Mutating the copy leaves the source intact.
	got[0][0] = 100
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))

	_, err = matrix.ToRows(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestDense_CloneIsDeep(t *testing.T) {
	t.Parallel()
	m := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	MustSet(t, c, 0, 0, 42)
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
	assert.Equal(t, 42.0, MustAt(t, c, 0, 0))
	assert.Nil(t, matrix.CloneDense(nil))
}

func TestDense_Row(t *testing.T) {
	t.Parallel()
	m := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	r, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, r)
	r[0] = 0
	assert.Equal(t, 3.0, MustAt(t, m, 1, 0))

	_, err = m.Row(2)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_ApplyAndDo(t *testing.T) {
	t.Parallel()
	m := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, m.Apply(func(_, _ int, v float64) float64 { return 2 * v }))
	assert.Equal(t, 8.0, MustAt(t, m, 1, 1))

	var visited int
	m.Do(func(_, _ int, _ float64) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)

	err := m.Apply(func(_, _ int, _ float64) float64 { return math.Inf(1) })
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestDense_String(t *testing.T) {
	m := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	assert.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

func TestConstructors(t *testing.T) {
	t.Parallel()
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	tr, err := matrix.Trace(id)
	require.NoError(t, err)
	assert.Equal(t, 3.0, tr)

	tenth, err := matrix.NewScaledIdentity(2, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, MustAt(t, tenth, 1, 1))
	assert.Zero(t, MustAt(t, tenth, 0, 1))

	d, err := matrix.NewDiagonal([]float64{1, 2, 3})
	require.NoError(t, err)
	diag, err := matrix.Diagonal(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, diag)

	_, err = matrix.NewDiagonal(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	z, err := matrix.ZerosLike(d)
	require.NoError(t, err)
	assert.Equal(t, 3, z.Rows())
	il, err := matrix.IdentityLike(d)
	require.NoError(t, err)
	assert.Equal(t, 1.0, MustAt(t, il, 2, 2))
}
