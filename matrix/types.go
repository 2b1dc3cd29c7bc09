// SPDX-License-Identifier: MIT
// Package matrix - core abstraction.
//
// Purpose:
//   - Declare the Matrix interface every kernel accepts.
//   - Keep the surface minimal: shape, safe element access, deep copy.

package matrix

// Matrix is the minimal read/write surface shared by all kernels.
// Implementations MUST return errors (never panic) on invalid indices.
//
// AI-Hints:
//   - *Dense is the only production implementation; kernels detect it and
//     switch to flat-slice fast paths.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At returns the element at (i, j) or ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set stores v at (i, j); ErrOutOfRange or ErrNaNInf on policy violation.
	Set(i, j int, v float64) error

	// Clone returns a deep, independent copy.
	Clone() Matrix
}
