// SPDX-License-Identifier: MIT
// Package matrix - positive semi-definite projection and factorization.
//
// Purpose:
//   - EigenSym: sorted symmetric spectrum on top of the Jacobi kernel with a
//     scale-aware tolerance.
//   - ProjectPSD: nearest (Frobenius) matrix with eigenvalues ≥ floor.
//   - FactorPSD: a factor L with M = LᵀL, used to embed points (x ↦ Lx).
//
// Determinism:
//   - Jacobi pivoting is deterministic and the spectrum is stably sorted, so
//     identical input yields bit-identical output.

package matrix

import (
	"math"
	"sort"
)

const (
	opEigenSym      = "EigenSym"
	opProjectPSD    = "ProjectPSD"
	opMinEigenvalue = "MinEigenvalue"
	opFactorPSD     = "FactorPSD"
	opValidatePSD   = "ValidatePSD"
)

// jacobiRelTol scales the Jacobi off-diagonal tolerance by max(1, ‖A‖_F).
const jacobiRelTol = 1e-12

// PSDRelTol is the relative eigenvalue tolerance used to accept a matrix as PSD:
// λ_min ≥ −PSDRelTol·max(1, |λ_max|).
const PSDRelTol = 1e-8

// jacobiBudget returns the rotation cap for an n×n problem.
func jacobiBudget(n int) int { return 100*n*n + 100 }

// EigenSym returns the eigenvalues of a symmetric matrix in ascending order
// together with the matching eigenvectors as columns of V (A = V·diag(w)·Vᵀ).
//
// Implementation:
//   - Stage 1: accept asymmetry up to SymmetryTol, then symmetrize exactly.
//   - Stage 2: Jacobi with tol = 1e-12·max(1, ‖A‖_F) and an O(n²) rotation budget.
//   - Stage 3: stable ascending sort of (w, V columns).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrAsymmetry, ErrMatrixEigenFailed.
func EigenSym(m Matrix) ([]float64, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	if !d.IsFinite() {
		return nil, nil, matrixErrorf(opEigenSym, ErrNaNInf)
	}
	if err = ValidateSymmetric(d, SymmetryTol(d)); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	sym, err := Symmetrize(d)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	norm, _ := FrobeniusNorm(sym)
	tol := jacobiRelTol * math.Max(1, norm)
	w, q, err := Eigen(sym, tol, jacobiBudget(sym.r))
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}

	n := len(w)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return w[order[a]] < w[order[b]] })

	vals := make([]float64, n)
	vecs, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	var i, k, src int
	for k = 0; k < n; k++ {
		src = order[k]
		vals[k] = w[src]
		for i = 0; i < n; i++ {
			vecs.data[i*n+k] = q.data[i*n+src]
		}
	}

	return vals, vecs, nil
}

// reconstruct returns V·diag(w)·Vᵀ, exactly symmetric.
func reconstruct(w []float64, v *Dense) *Dense {
	n := len(w)
	out := &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: DefaultValidateNaNInf}
	var i, j, k int
	var acc float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			acc = ZeroSum
			for k = 0; k < n; k++ {
				if w[k] == 0 {
					continue
				}
				acc += v.data[i*n+k] * w[k] * v.data[j*n+k]
			}
			out.data[i*n+j], out.data[j*n+i] = acc, acc
		}
	}

	return out
}

// ProjectPSD projects A onto {X symmetric : eigenvalues(X) ≥ floor}.
//
// Implementation:
//   - Stage 1: Symmetrize A (asymmetric input is accepted; its symmetric part is projected).
//   - Stage 2: EigenSym, clip every eigenvalue below floor up to floor.
//   - Stage 3: Reconstruct V·diag(max(w,floor))·Vᵀ.
//
// Behavior highlights:
//   - floor = 0 gives the Frobenius projection onto the PSD cone.
//   - floor > 0 (e.g. 1e-8) yields a strictly positive-definite result.
//   - Input whose spectrum is already ≥ floor is returned as its symmetrized copy.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (including a non-finite floor), ErrMatrixEigenFailed.
func ProjectPSD(a Matrix, floor float64) (*Dense, error) {
	if math.IsNaN(floor) || math.IsInf(floor, 0) {
		return nil, matrixErrorf(opProjectPSD, ErrNaNInf)
	}
	sym, err := Symmetrize(a)
	if err != nil {
		return nil, matrixErrorf(opProjectPSD, err)
	}
	w, v, err := EigenSym(sym)
	if err != nil {
		return nil, matrixErrorf(opProjectPSD, err)
	}
	if w[0] >= floor {
		return sym, nil
	}
	for k := range w {
		if w[k] < floor {
			w[k] = floor
		}
	}

	return reconstruct(w, v), nil
}

// MinEigenvalue returns the smallest eigenvalue of a symmetric matrix.
func MinEigenvalue(m Matrix) (float64, error) {
	w, _, err := EigenSym(m)
	if err != nil {
		return 0, matrixErrorf(opMinEigenvalue, err)
	}

	return w[0], nil
}

// ValidatePSD checks symmetry and λ_min ≥ −PSDRelTol·max(1, |λ_max|).
// Errors: validation sentinels from EigenSym; ErrNotPSD.
func ValidatePSD(m Matrix) error {
	w, _, err := EigenSym(m)
	if err != nil {
		return matrixErrorf(opValidatePSD, err)
	}
	if w[0] < -PSDRelTol*math.Max(1, math.Abs(w[len(w)-1])) {
		return matrixErrorf(opValidatePSD, ErrNotPSD)
	}

	return nil
}

// FactorPSD returns L with M = LᵀL for a PSD matrix M.
//
// Implementation:
//   - Diagonal M: L = diag(sqrt(max(0, M[i,i]))).
//   - Positive-definite M: L = U, the upper Cholesky factor (M = UᵀU).
//   - Otherwise: L = diag(sqrt(max(0, w)))·Vᵀ from EigenSym (rows scaled eigenvectors).
//
// Errors:
//   - ErrNotPSD when M has an eigenvalue (or diagonal entry) below the PSD tolerance.
//   - Validation sentinels as in EigenSym.
//
// AI-Hints:
//   - The factor is not unique; only LᵀL = M is guaranteed. Distances computed
//     in the embedded space ‖Lx − Ly‖² equal d_M(x, y).
func FactorPSD(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opFactorPSD, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opFactorPSD, err)
	}
	n := d.r

	diag, err := IsZeroOffDiagonal(d, 0)
	if err != nil {
		return nil, matrixErrorf(opFactorPSD, err)
	}
	if diag {
		tol := PSDRelTol * math.Max(1, maxAbs(d))
		l, _ := NewDense(n, n)
		var v float64
		for i := 0; i < n; i++ {
			v = d.data[i*n+i]
			if math.IsNaN(v) || v < -tol {
				return nil, matrixErrorf(opFactorPSD, ErrNotPSD)
			}
			l.data[i*n+i] = math.Sqrt(math.Max(0, v))
		}

		return l, nil
	}

	if u, cholErr := Cholesky(d); cholErr == nil {
		return u, nil
	}

	if err = ValidatePSD(d); err != nil {
		return nil, matrixErrorf(opFactorPSD, err)
	}
	w, v, err := EigenSym(d)
	if err != nil {
		return nil, matrixErrorf(opFactorPSD, err)
	}
	l, _ := NewDense(n, n)
	var i, k int
	var s float64
	for k = 0; k < n; k++ {
		s = math.Sqrt(math.Max(0, w[k]))
		if s == 0 {
			continue
		}
		for i = 0; i < n; i++ {
			l.data[k*n+i] = s * v.data[i*n+k]
		}
	}

	return l, nil
}
