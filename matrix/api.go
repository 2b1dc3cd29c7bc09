// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common constructions.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//
// AI-Hints:
//   - Use NewIdentity/NewScaledIdentity to build default priors.
//   - Use NewFromRows/ToRows to cross the [][]float64 boundary.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
//
// AI-Hints: The default prior of ITML, SDML, LSML and diagonal MMC.
func NewIdentity(n int) (*Dense, error) {
	return NewScaledIdentity(n, 1.0)
}

// NewScaledIdentity returns alpha·I_n.
// Errors: ErrInvalidDimensions (n ≤ 0), ErrNaNInf (non-finite alpha).
func NewScaledIdentity(n int, alpha float64) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err = I.Set(i, i, alpha); err != nil {
			return nil, err
		}
	}

	return I, nil
}

// CloneDense returns a deep copy of d, or nil for a nil input.
func CloneDense(d *Dense) *Dense {
	if d == nil {
		return nil
	}

	return d.clone()
}

// ZerosLike returns a zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}

// IdentityLike returns I with the dimension of the square matrix m.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, err
	}

	return NewIdentity(m.Rows())
}

// Diagonal returns the main diagonal of a square matrix.
func Diagonal(m Matrix) ([]float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf("Diagonal", err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf("Diagonal", err)
	}
	out := make([]float64, d.r)
	for i := range out {
		out[i] = d.data[i*d.c+i]
	}

	return out, nil
}
