// SPDX-License-Identifier: MIT
package solver

import (
	"errors"

	"github.com/katalvlaran/lvmetric/matrix"
)

const (
	opResolvePrior = "ResolvePrior"
)

// ResolvePrior returns the starting matrix for a dim-dimensional problem.
//
// Behavior:
//   - nil prior → I_dim.
//   - A clone of prior otherwise, after checking shape, finiteness, symmetry
//     and positive definiteness.
//
// Errors (all ErrConfiguration):
//   - dimension mismatch, asymmetry, non-finite entries, not positive definite.
func ResolvePrior(prior matrix.Matrix, dim int) (*matrix.Dense, error) {
	return ResolveScaledPrior(prior, dim, 1.0)
}

// ResolveScaledPrior is ResolvePrior with a scale·I default.
func ResolveScaledPrior(prior matrix.Matrix, dim int, scale float64) (*matrix.Dense, error) {
	if dim <= 0 {
		return nil, Configf("%s: dimension %d", opResolvePrior, dim)
	}
	if prior == nil {
		id, err := matrix.NewScaledIdentity(dim, scale)
		if err != nil {
			return nil, Config(opResolvePrior, err)
		}

		return id, nil
	}
	if d, ok := prior.(*matrix.Dense); ok && d == nil {
		return ResolveScaledPrior(nil, dim, scale)
	}
	if prior.Rows() != dim || prior.Cols() != dim {
		return nil, Configf("%s: prior is %dx%d, want %dx%d", opResolvePrior, prior.Rows(), prior.Cols(), dim, dim)
	}
	rows, err := matrix.ToRows(prior)
	if err != nil {
		return nil, Config(opResolvePrior, err)
	}
	m0, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, Config(opResolvePrior, err)
	}
	if err = matrix.ValidateSymmetric(m0, matrix.SymmetryTol(m0)); err != nil {
		return nil, Config(opResolvePrior, err)
	}
	if !matrix.IsPositiveDefinite(m0) {
		return nil, Config(opResolvePrior, matrix.ErrNotPositiveDefinite)
	}

	return m0, nil
}

// ValidateIterations rejects non-positive iteration caps.
func ValidateIterations(name string, n int) error {
	if n <= 0 {
		return Configf("%s must be positive, got %d", name, n)
	}

	return nil
}

// ValidatePositive rejects non-positive or NaN float options.
func ValidatePositive(name string, v float64) error {
	if !(v > 0) {
		return Configf("%s must be positive, got %g", name, v)
	}

	return nil
}

// IsNumericalMatrixErr reports whether err is one of the matrix sentinels that
// describe a numerical (rather than structural) failure.
func IsNumericalMatrixErr(err error) bool {
	return errors.Is(err, matrix.ErrNotPositiveDefinite) ||
		errors.Is(err, matrix.ErrSingular) ||
		errors.Is(err, matrix.ErrNotPSD) ||
		errors.Is(err, matrix.ErrMatrixEigenFailed) ||
		errors.Is(err, matrix.ErrNaNInf)
}

// Classify wraps a matrix error into the taxonomy: numerical sentinels become
// ErrNumerical, everything else ErrConfiguration. nil stays nil.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNumerical) || errors.Is(err, ErrConfiguration) {
		return err
	}
	if IsNumericalMatrixErr(err) {
		return Numerical(op, err)
	}

	return Config(op, err)
}
