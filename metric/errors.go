// SPDX-License-Identifier: MIT
package metric

import (
	"fmt"

	"github.com/katalvlaran/lvmetric/solver"
)

var (
	// ErrDimension indicates a point whose length differs from the metric dimension.
	ErrDimension = fmt.Errorf("metric: dimension mismatch: %w", solver.ErrConfiguration)

	// ErrEmpty indicates an empty constraint set where at least one element is required.
	ErrEmpty = fmt.Errorf("metric: empty input: %w", solver.ErrConfiguration)
)
