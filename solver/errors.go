// SPDX-License-Identifier: MIT
package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid user input: malformed constraints,
	// out-of-range options, a prior of the wrong shape or not positive definite.
	ErrConfiguration = errors.New("solver: configuration error")

	// ErrNumerical marks a numerical failure during or after fitting:
	// a matrix that must be positive definite is singular or indefinite,
	// or the iterate became non-finite.
	ErrNumerical = errors.New("solver: numerical error")
)

// Configf returns an ErrConfiguration carrying a formatted message.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConfiguration)
}

// Numerical wraps cause (typically a matrix sentinel) into ErrNumerical with an operation tag.
// Both ErrNumerical and cause remain reachable through errors.Is.
func Numerical(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNumerical, cause)
}

// Config wraps cause into ErrConfiguration with an operation tag.
func Config(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrConfiguration, cause)
}
