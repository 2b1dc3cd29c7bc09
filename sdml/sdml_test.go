// SPDX-License-Identifier: MIT
package sdml_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/sdml"
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
	}, []int{1, 1, -1, -1})
	require.NoError(t, err)

	return s
}

func TestLossMatrix_MatchesOuterSum(t *testing.T) {
	s := examplePairs(t)
	got, err := sdml.LossMatrix(s)
	require.NoError(t, err)

	want, _ := matrix.NewZeros(2, 2)
	for i := 0; i < s.Len(); i++ {
		v := s.Pair(i).Diff()
		require.NoError(t, matrix.AddOuter(want, float64(s.Label(i)), v, v))
	}
	ok, err := matrix.AllClose(got, want, 1e-10, 1e-10)
	require.NoError(t, err)
	assert.True(t, ok, "got %v want %v", got, want)
}

func TestLaplacian_RowsSumToZero(t *testing.T) {
	_, k, err := sdml.Incidence(examplePairs(t))
	require.NoError(t, err)
	l, err := sdml.Laplacian(k)
	require.NoError(t, err)
	rows, _ := matrix.ToRows(l)
	for i, r := range rows {
		var sum float64
		for _, v := range r {
			sum += v
		}
		assert.InDelta(t, 0, sum, 1e-12, "row %d", i)
	}
}

func TestFit_ZeroSparsityIsInverse(t *testing.T) {
	s := examplePairs(t)
	opts := sdml.DefaultOptions()
	opts.BalanceParam = 0.1
	opts.SparsityParam = 0
	opts.Trace = quiet()

	res, err := sdml.Fit(s, nil, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged)

	id, _ := matrix.NewIdentity(2)
	target, err := sdml.Target(s, id, 0.1)
	require.NoError(t, err)
	want, err := matrix.InverseSPD(target)
	require.NoError(t, err)
	ok, _ := matrix.AllClose(res.Metric, want, 1e-9, 1e-12)
	assert.True(t, ok)
}

func TestFit_SmallPenaltyApproachesInverse(t *testing.T) {
	s := examplePairs(t)
	opts := sdml.DefaultOptions()
	opts.BalanceParam = 0.1
	opts.SparsityParam = 1e-6
	opts.Trace = quiet()

	res, err := sdml.Fit(s, nil, opts)
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.Less(t, math.Abs(res.Objective), opts.Tol)

	id, _ := matrix.NewIdentity(2)
	target, _ := sdml.Target(s, id, 0.1)
	want, _ := matrix.InverseSPD(target)
	ok, _ := matrix.AllClose(res.Metric, want, 1e-3, 1e-4)
	assert.True(t, ok, "got %v want %v", res.Metric, want)

	w, err := matrix.MinEigenvalue(res.Metric)
	require.NoError(t, err)
	assert.Greater(t, w, 0.0)
}

func TestGraphicalLasso_LargePenaltyIsDiagonal(t *testing.T) {
	emp := [][]float64{{2, 0.3, 0}, {0.3, 1, 0.1}, {0, 0.1, 1.5}}
	gl, err := sdml.GraphicalLasso(emp, emp, 0.5, 100, 1e-4, 100, 1e-4)
	require.NoError(t, err)
	prec := sdml.Precision(gl)
	for i := range prec {
		for j := range prec[i] {
			if i == j {
				assert.InDelta(t, 1/emp[i][i], prec[i][j], 1e-12)
			} else {
				assert.Equal(t, 0.0, prec[i][j], "(%d,%d)", i, j)
			}
		}
	}
}

func TestShrinkToIdentity(t *testing.T) {
	m, _ := matrix.NewFromRows([][]float64{{1, 0}, {0, -1}})
	out, s, err := sdml.ShrinkToIdentity(m, -1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s, 1e-6)
	w, err := matrix.MinEigenvalue(out)
	require.NoError(t, err)
	assert.Greater(t, w, 0.0)
}

func TestFit_Policies(t *testing.T) {
	s := examplePairs(t) // η = 0.5 makes the target indefinite here

	opts := sdml.DefaultOptions()
	opts.Policy = sdml.PolicyStrict
	opts.Trace = quiet()
	_, err := sdml.Fit(s, nil, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	opts = sdml.DefaultOptions()
	opts.Logger = &l
	res, err := sdml.Fit(s, nil, opts)
	assert.Contains(t, buf.String(), "not positive semi-definite")
	if err != nil {
		assert.ErrorIs(t, err, solver.ErrNumerical)
	} else {
		w, werr := matrix.MinEigenvalue(res.Metric)
		require.NoError(t, werr)
		assert.Greater(t, w, 0.0)
	}

	opts.Policy = sdml.PolicyShrink
	res, err = sdml.Fit(s, nil, opts)
	if err == nil {
		w, werr := matrix.MinEigenvalue(res.Metric)
		require.NoError(t, werr)
		assert.Greater(t, w, 0.0)
	} else {
		assert.ErrorIs(t, err, solver.ErrNumerical)
	}
}

func TestFit_RequiresBothKinds(t *testing.T) {
	opts := sdml.DefaultOptions()
	opts.Trace = quiet()

	only, err := constraint.NewPairSet([][][]float64{{{0, 0}, {1, 1}}}, []int{1})
	require.NoError(t, err)
	_, err = sdml.Fit(only, nil, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	empty, _ := constraint.NewEmptyPairSet(2)
	_, err = sdml.Fit(empty, nil, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)

	_, err = sdml.Fit(nil, nil, opts)
	assert.ErrorIs(t, err, solver.ErrConfiguration)
}

func TestOptions_Validate(t *testing.T) {
	o := sdml.DefaultOptions()
	require.NoError(t, o.Validate())
	o.SparsityParam = -1
	assert.ErrorIs(t, o.Validate(), solver.ErrConfiguration)
	o = sdml.DefaultOptions()
	o.Policy = sdml.Policy(7)
	assert.ErrorIs(t, o.Validate(), solver.ErrConfiguration)
}

func TestPolicy_Text(t *testing.T) {
	for _, p := range []sdml.Policy{sdml.PolicyShift, sdml.PolicyStrict, sdml.PolicyShrink} {
		b, err := p.MarshalText()
		require.NoError(t, err)
		var back sdml.Policy
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, p, back)
	}
	p, err := sdml.ParsePolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, sdml.PolicyStrict, p)
	_, err = sdml.ParsePolicy("lenient")
	assert.ErrorIs(t, err, solver.ErrConfiguration)
}

func TestInvert_ZeroLeadingPivot(t *testing.T) {
	got, err := sdml.Invert([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {1, 0}}, got)

	_, err = sdml.Invert([][]float64{{1, 2}, {2, 4}})
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

func TestFit_ZeroSparsityIndefiniteTarget(t *testing.T) {
	s, err := constraint.NewPairSet([][][]float64{
		{{1.2, 7.5}, {1.3, 1.5}},
		{{6.4, 2.6}, {6.2, 9.7}},
		{{1.3, 4.5}, {3.2, 4.6}},
		{{6.2, 5.5}, {5.4, 5.4}},
		{{3.3, 1.1}, {3.1, 2.4}},
		{{0.4, 0.5}, {4.1, 0.9}},
	}, []int{1, 1, -1, -1, 1, -1})
	require.NoError(t, err)

	opts := sdml.DefaultOptions()
	opts.BalanceParam = 0.1
	opts.SparsityParam = 0
	opts.Trace = quiet()

	_, err = sdml.Fit(s, nil, opts)
	assert.ErrorIs(t, err, solver.ErrNumerical)

	opts.Policy = sdml.PolicyShrink
	res, err := sdml.Fit(s, nil, opts)
	require.NoError(t, err)
	w, err := matrix.MinEigenvalue(res.Metric)
	require.NoError(t, err)
	assert.Greater(t, w, 0.0)
}
