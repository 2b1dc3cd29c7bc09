// SPDX-License-Identifier: MIT
package solver

import "github.com/katalvlaran/lvmetric/matrix"

// Result is the outcome of a fit.
type Result struct {
	// Metric is the learned d×d matrix M (symmetric, PSD).
	Metric *matrix.Dense

	// Converged reports whether the stopping rule fired before the iteration cap.
	Converged bool

	// Iterations is the number of outer iterations performed.
	Iterations int

	// Objective is the algorithm-specific final measure: the relative change
	// for ITML and MMC, the dual gap for SDML and the loss for LSML.
	Objective float64
}
