// SPDX-License-Identifier: MIT
package mmc

import "github.com/katalvlaran/lvmetric/solver"

// Name is the algorithm tag used in logs and telemetry.
const Name = "mmc"

// Options configures Fit.
type Options struct {
	MaxIter              int     `yaml:"max_iter"`              // outer cycles (Newton steps for Diagonal)
	MaxProj              int     `yaml:"max_proj"`              // alternating projections per cycle
	ConvergenceThreshold float64 `yaml:"convergence_threshold"` // relative step (relative objective change for Diagonal)
	Diagonal             bool    `yaml:"diagonal"`              // learn a diagonal A only
	DiagonalC            float64 `yaml:"diagonal_c"`            // weight of the dissimilar term in the diagonal objective

	solver.Trace `yaml:",inline"`
}

// DefaultOptions returns the full variant with customary limits.
func DefaultOptions() Options {
	return Options{
		MaxIter:              100,
		MaxProj:              10000,
		ConvergenceThreshold: 1e-3,
		DiagonalC:            1.0,
	}
}

// Validate checks the option ranges. Errors wrap solver.ErrConfiguration.
func (o Options) Validate() error {
	if err := solver.ValidateIterations("mmc: max_iter", o.MaxIter); err != nil {
		return err
	}
	if err := solver.ValidateIterations("mmc: max_proj", o.MaxProj); err != nil {
		return err
	}
	if err := solver.ValidatePositive("mmc: convergence_threshold", o.ConvergenceThreshold); err != nil {
		return err
	}
	if o.Diagonal {
		return solver.ValidatePositive("mmc: diagonal_c", o.DiagonalC)
	}

	return nil
}
