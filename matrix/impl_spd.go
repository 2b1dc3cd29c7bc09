// SPDX-License-Identifier: MIT
// Package matrix - symmetric positive-definite toolkit backed by gonum.
//
// Purpose:
//   - Factor SPD matrices with gonum's mat.Cholesky and derive logdet and the
//     SPD inverse from the same factorization.
//   - Provide the two LogDet-family objectives used by the solvers:
//     LogDetDivergence (Bregman divergence to a prior) and LogDetRegularizer.
//
// Behavior highlights:
//   - A failed factorization (singular or indefinite input) surfaces as
//     ErrNotPositiveDefinite; callers at solver boundaries wrap it into their
//     numerical error category.
//   - Inputs are never mutated: the symmetric view is built from a copy.
//
// AI-Hints:
//   - Prefer InverseSPD over Inverse for metrics and priors; it is pivot-free
//     and numerically safer on well-conditioned SPD input.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opCholesky          = "Cholesky"
	opLogDet            = "LogDet"
	opInverseSPD        = "InverseSPD"
	opLogDetDivergence  = "LogDetDivergence"
	opLogDetRegularizer = "LogDetRegularizer"
	opInversePivoted    = "InversePivoted"
)

// symmetryRelTol is the relative tolerance used to accept "symmetric" input to
// SPD routines: |A[i,j]-A[j,i]| ≤ symmetryRelTol·max(1, max|A|).
const symmetryRelTol = 1e-8

// maxAbs returns max |d[i,j]|.
func maxAbs(d *Dense) float64 {
	var out float64
	for _, v := range d.data {
		if a := math.Abs(v); a > out {
			out = a
		}
	}

	return out
}

// SymmetryTol returns the scale-aware symmetry tolerance for m.
func SymmetryTol(m *Dense) float64 {
	return symmetryRelTol * math.Max(1, maxAbs(m))
}

// toSym validates m as square, finite and symmetric and copies it into a gonum SymDense.
func toSym(m Matrix) (*mat.SymDense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, err
	}
	d, err := asDense(m)
	if err != nil {
		return nil, err
	}
	if !d.IsFinite() {
		return nil, ErrNaNInf
	}
	if err = ValidateSymmetric(d, SymmetryTol(d)); err != nil {
		return nil, err
	}
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return mat.NewSymDense(d.r, buf), nil
}

// factor validates m and runs the gonum Cholesky factorization.
func factor(m Matrix) (*mat.Cholesky, int, error) {
	sym, err := toSym(m)
	if err != nil {
		return nil, 0, err
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, 0, ErrNotPositiveDefinite
	}
	n, _ := sym.Dims()

	return &chol, n, nil
}

// Cholesky returns the upper-triangular factor U with m = UᵀU.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrAsymmetry (validation).
//   - ErrNotPositiveDefinite (factorization failed).
//
// Complexity:
//   - Time O(n^3/3), Space O(n^2).
func Cholesky(m Matrix) (*Dense, error) {
	chol, n, err := factor(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	var u mat.TriDense
	chol.UTo(&u)
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.data[i*n+j] = u.At(i, j)
		}
	}

	return out, nil
}

// IsPositiveDefinite reports whether m is symmetric and admits a Cholesky factorization.
// Invalid input (nil, non-square, NaN) reports false.
func IsPositiveDefinite(m Matrix) bool {
	_, _, err := factor(m)

	return err == nil
}

// LogDet returns log det(m) for a symmetric positive-definite m.
//
// Errors:
//   - Validation sentinels as in Cholesky; ErrNotPositiveDefinite when the
//     determinant is non-positive or the factor is degenerate.
func LogDet(m Matrix) (float64, error) {
	chol, _, err := factor(m)
	if err != nil {
		return 0, matrixErrorf(opLogDet, err)
	}
	ld := chol.LogDet()
	if math.IsNaN(ld) || math.IsInf(ld, 0) {
		return 0, matrixErrorf(opLogDet, ErrNotPositiveDefinite)
	}

	return ld, nil
}

// InverseSPD returns m⁻¹ computed from the Cholesky factor.
// The result is exactly symmetric.
//
// Errors:
//   - Validation sentinels; ErrNotPositiveDefinite (including a non-finite inverse).
func InverseSPD(m Matrix) (*Dense, error) {
	chol, n, err := factor(m)
	if err != nil {
		return nil, matrixErrorf(opInverseSPD, err)
	}
	var inv mat.SymDense
	if err = chol.InverseTo(&inv); err != nil {
		// gonum reports ill-conditioning as mat.Condition; treat it as singular.
		return nil, matrixErrorf(opInverseSPD, ErrNotPositiveDefinite)
	}
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverseSPD, err)
	}
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v = inv.At(i, j)
			out.data[i*n+j], out.data[j*n+i] = v, v
		}
	}
	if !out.IsFinite() {
		return nil, matrixErrorf(opInverseSPD, ErrNotPositiveDefinite)
	}

	return out, nil
}

// InversePivoted returns m⁻¹ for any nonsingular square m via gonum's LU
// with partial pivoting. Unlike Inverse it survives a zero leading pivot, so
// it serves symmetric indefinite input that InverseSPD rejects.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (validation).
//   - ErrSingular (exactly singular, ill-conditioned or non-finite result).
func InversePivoted(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInversePivoted, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opInversePivoted, err)
	}
	if !d.IsFinite() {
		return nil, matrixErrorf(opInversePivoted, ErrNaNInf)
	}
	buf := make([]float64, len(d.data))
	copy(buf, d.data)
	var inv mat.Dense
	if err = inv.Inverse(mat.NewDense(d.r, d.c, buf)); err != nil {
		// mat.Condition included: the result is not trustworthy
		return nil, matrixErrorf(opInversePivoted, ErrSingular)
	}
	out := &Dense{r: d.r, c: d.c, data: make([]float64, len(buf)), validateNaNInf: DefaultValidateNaNInf}
	copy(out.data, inv.RawMatrix().Data)
	if !out.IsFinite() {
		return nil, matrixErrorf(opInversePivoted, ErrSingular)
	}

	return out, nil
}

// traceProduct returns tr(a·b) = Σ_i Σ_k a[i,k]·b[k,i] without forming the product.
func traceProduct(a, b *Dense) float64 {
	n := a.r
	var i, k int
	var acc float64
	for i = 0; i < n; i++ {
		for k = 0; k < n; k++ {
			acc += a.data[i*n+k] * b.data[k*n+i]
		}
	}

	return acc
}

// LogDetDivergence returns D_ld(M, M0) = tr(M·M0⁻¹) − logdet(M·M0⁻¹) − n.
//
// Implementation:
//   - logdet(M·M0⁻¹) is evaluated as logdet(M) − logdet(M0), both via Cholesky.
//
// Errors:
//   - ErrDimensionMismatch (shape), ErrNotPositiveDefinite (M or M0 singular/indefinite).
//
// Notes:
//   - D_ld(M, M) = 0 and D_ld ≥ 0 for SPD arguments.
func LogDetDivergence(m, m0 Matrix) (float64, error) {
	if err := ValidateBinarySameShape(m, m0); err != nil {
		return 0, matrixErrorf(opLogDetDivergence, err)
	}
	inv0, err := InverseSPD(m0)
	if err != nil {
		return 0, matrixErrorf(opLogDetDivergence, err)
	}
	ld, err := LogDet(m)
	if err != nil {
		return 0, matrixErrorf(opLogDetDivergence, err)
	}
	ld0, err := LogDet(m0)
	if err != nil {
		return 0, matrixErrorf(opLogDetDivergence, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opLogDetDivergence, err)
	}

	return traceProduct(dm, inv0) - (ld - ld0) - float64(dm.r), nil
}

// LogDetRegularizer returns tr(M·P) − logdet(M), the prior term with P = M0⁻¹.
//
// Errors:
//   - ErrDimensionMismatch, ErrNotPositiveDefinite (M singular/indefinite).
func LogDetRegularizer(m, p Matrix) (float64, error) {
	if err := ValidateBinarySameShape(m, p); err != nil {
		return 0, matrixErrorf(opLogDetRegularizer, err)
	}
	ld, err := LogDet(m)
	if err != nil {
		return 0, matrixErrorf(opLogDetRegularizer, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opLogDetRegularizer, err)
	}
	dp, err := asDense(p)
	if err != nil {
		return 0, matrixErrorf(opLogDetRegularizer, err)
	}

	return traceProduct(dm, dp) - ld, nil
}
