// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics over sample matrices X (rows = observations, cols = features):
//     centering, the sample covariance and the inverse-covariance metric.
//   - Delegate the estimator itself to gonum/stat so the numeric policy is shared
//     with the rest of the gonum-backed kernels.
//
// Exposed API:
//   - CenterColumns(X) -> (Xc, means)  // subtract per-column mean
//   - Covariance(X)    -> (Cov, means) // unbiased sample covariance of columns: (Xcᵀ Xc)/(r-1)
//
// Determinism & Performance:
//   - Fixed i→j traversal; gonum accumulates in a fixed order.

package matrix

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
)

// columnMeans returns the per-column means of d.
func columnMeans(d *Dense) []float64 {
	means := make([]float64, d.c)
	col := make([]float64, d.r)
	var i, j int
	for j = 0; j < d.c; j++ {
		for i = 0; i < d.r; i++ {
			col[i] = d.data[i*d.c+j]
		}
		means[j] = stat.Mean(col, nil)
	}

	return means
}

// CenterColumns returns a centered copy Xc = X − mean(X, by columns) and the column means.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for output (+ O(c) means).
//
// AI-Hints:
//   - Reuse the returned means to un-center later.
func CenterColumns(x Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(x); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	d, err := asDense(x)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	means := columnMeans(d)
	out := d.clone()
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out.data[base+j] -= means[j]
		}
	}

	return out, means, nil
}

// Covariance computes the unbiased sample covariance of the columns of X.
//
// Implementation:
//   - Stage 1: Validate X and require at least two observations.
//   - Stage 2: gonum stat.CovarianceMatrix over a mat.Dense view of the flat buffer.
//   - Stage 3: Copy the symmetric result into a Dense alongside the column means.
//
// Inputs:
//   - X: Matrix (r×c), r ≥ 2.
//
// Returns:
//   - *Dense: Cov (c×c), exactly symmetric.
//   - []float64: column means.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r < 2).
//
// Complexity:
//   - Time O(r*c^2), Space O(c^2).
func Covariance(x Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(x); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	d, err := asDense(x)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if d.r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, mat.NewDense(d.r, d.c, d.data), nil) // read-only view of d.data

	n := d.c
	out, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v = cov.At(i, j)
			out.data[i*n+j], out.data[j*n+i] = v, v
		}
	}

	return out, columnMeans(d), nil
}
