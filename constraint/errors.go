// SPDX-License-Identifier: MIT
package constraint

import (
	"fmt"

	"github.com/katalvlaran/lvmetric/solver"
)

// Every sentinel wraps solver.ErrConfiguration, so
// errors.Is(err, solver.ErrConfiguration) holds for any constraint error.
var (
	// ErrArity indicates a tuple with the wrong number of points (2 for pairs, 4 for quadruplets).
	ErrArity = fmt.Errorf("constraint: tuple arity mismatch: %w", solver.ErrConfiguration)

	// ErrLabel indicates a pair label outside {+1, -1}.
	ErrLabel = fmt.Errorf("constraint: label must be +1 or -1: %w", solver.ErrConfiguration)

	// ErrLength indicates tuples and labels (or index lists) of different lengths.
	ErrLength = fmt.Errorf("constraint: length mismatch: %w", solver.ErrConfiguration)

	// ErrDimension indicates points of differing dimension within one set.
	ErrDimension = fmt.Errorf("constraint: point dimension mismatch: %w", solver.ErrConfiguration)

	// ErrEmpty indicates missing data: zero-dimensional points or no labeled points.
	ErrEmpty = fmt.Errorf("constraint: empty input: %w", solver.ErrConfiguration)

	// ErrNonFinite indicates a NaN or ±Inf coordinate.
	ErrNonFinite = fmt.Errorf("constraint: non-finite coordinate: %w", solver.ErrConfiguration)

	// ErrCollapsed indicates pairs whose two points coincide.
	ErrCollapsed = fmt.Errorf("constraint: collapsed pairs: %w", solver.ErrConfiguration)

	// ErrIndex indicates an index outside the point matrix or the set.
	ErrIndex = fmt.Errorf("constraint: index out of range: %w", solver.ErrConfiguration)

	// ErrChunks indicates that the labeled data cannot supply the requested chunklets.
	ErrChunks = fmt.Errorf("constraint: not enough chunks: %w", solver.ErrConfiguration)
)
