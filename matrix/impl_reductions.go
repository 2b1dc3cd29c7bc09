// SPDX-License-Identifier: MIT
// Package matrix - scalar reductions and rank-one updates.
//
// Purpose:
//   - Trace, Frobenius norm and inner product for convergence measures.
//   - Quadratic forms vᵀMv (Mahalanobis distances) and in-place rank-one updates
//     d += α·u·vᵀ (Bregman projections, scatter accumulation).
//
// Determinism:
//   - Flat loops in fixed order; vector reductions delegate to gonum/floats.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opTrace      = "Trace"
	opFrobenius  = "FrobeniusNorm"
	opDot        = "Dot"
	opQuadForm   = "QuadForm"
	opAddOuter   = "AddOuter"
	opSymmetrize = "Symmetrize"
	opAllClose   = "AllClose"
)

// Trace returns Σ_i m[i,i].
// Errors: ErrNilMatrix, ErrNonSquare.
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	sum := ZeroSum
	for i := 0; i < d.r; i++ {
		sum += d.data[i*d.c+i]
	}

	return sum, nil
}

// FrobeniusNorm returns sqrt(Σ m[i,j]²).
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}

	return floats.Norm(d.data, 2), nil
}

// Dot returns the Frobenius inner product ⟨a, b⟩ = Σ a[i,j]·b[i,j].
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Dot(a, b Matrix) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	da, err := asDense(a)
	if err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	db, err := asDense(b)
	if err != nil {
		return 0, matrixErrorf(opDot, err)
	}

	return floats.Dot(da.data, db.data), nil
}

// QuadForm returns vᵀ·m·v for a square m.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch (len(v) != n).
//
// Complexity:
//   - Time O(n^2), no allocations on the *Dense path.
//
// AI-Hints:
//   - With v = x − y this is the squared Mahalanobis distance d_M(x, y).
func QuadForm(m Matrix, v []float64) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}
	if err := ValidateVecLen(v, m.Rows()); err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}
	n := d.r
	var i, base int
	var acc float64
	for i = 0; i < n; i++ {
		if v[i] == 0 {
			continue
		}
		base = i * n
		acc += v[i] * floats.Dot(d.data[base:base+n], v)
	}

	return acc, nil
}

// AddOuter performs the in-place rank-one update d += alpha·u·vᵀ.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(u) != Rows or len(v) != Cols),
//     ErrNaNInf (non-finite alpha).
//
// Notes:
//   - The only in-place kernel besides Set/Apply; d is mutated, u and v are not.
func AddOuter(d *Dense, alpha float64, u, v []float64) error {
	if d == nil {
		return matrixErrorf(opAddOuter, ErrNilMatrix)
	}
	if err := ValidateVecLen(u, d.r); err != nil {
		return matrixErrorf(opAddOuter, err)
	}
	if err := ValidateVecLen(v, d.c); err != nil {
		return matrixErrorf(opAddOuter, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opAddOuter, ErrNaNInf)
	}
	var i, base int
	var s float64
	for i = 0; i < d.r; i++ {
		s = alpha * u[i]
		if s == 0 {
			continue
		}
		base = i * d.c
		floats.AddScaled(d.data[base:base+d.c], s, v)
	}

	return nil
}

// Symmetrize returns (m + mᵀ)/2.
// Errors: ErrNilMatrix, ErrNonSquare.
//
// AI-Hints: Repairs asymmetry drift after rank-one updates and products.
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	n := src.r
	out := src.clone()
	var i, j int
	var avg float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			avg = 0.5 * (src.data[i*n+j] + src.data[j*n+i])
			out.data[i*n+j], out.data[j*n+i] = avg, avg
		}
	}

	return out, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx, av := range da.data {
		if !(math.Abs(av-db.data[idx]) <= atol+rtol*math.Abs(db.data[idx])) { // NaN never compares close
			return false, nil
		}
	}

	return true, nil
}
