// SPDX-License-Identifier: MIT
package itml

import (
	"math"

	"github.com/katalvlaran/lvmetric/solver"
)

// Name is the algorithm tag used in logs and telemetry.
const Name = "itml"

// Options configures Fit. Use DefaultOptions and override fields.
type Options struct {
	// Gamma trades constraint satisfaction against divergence from the prior.
	// +Inf turns the bounds into hard constraints.
	Gamma float64 `yaml:"gamma"`

	// MaxIter caps the number of full sweeps.
	MaxIter int `yaml:"max_iter"`

	// ConvergenceThreshold bounds ‖M_k − M_{k−1}‖_F / ‖M_{k−1}‖_F.
	ConvergenceThreshold float64 `yaml:"convergence_threshold"`

	// Bounds is (u, l): the similar upper and dissimilar lower bound.
	// nil selects the 5th and 95th percentiles of the squared Euclidean
	// distances between the distinct points of the pair set. u > l is
	// accepted but logged as a warning.
	Bounds *[2]float64 `yaml:"bounds,omitempty"`

	solver.Trace `yaml:",inline"`
}

// DefaultOptions returns Gamma 1, MaxIter 1000, ConvergenceThreshold 1e-3 and data-driven bounds.
func DefaultOptions() Options {
	return Options{
		Gamma:                1.0,
		MaxIter:              1000,
		ConvergenceThreshold: 1e-3,
	}
}

// Validate checks the option ranges. Errors wrap solver.ErrConfiguration.
func (o Options) Validate() error {
	if !(o.Gamma > 0) {
		return solver.Configf("itml: gamma must be positive, got %g", o.Gamma)
	}
	if err := solver.ValidateIterations("itml: max_iter", o.MaxIter); err != nil {
		return err
	}
	if err := solver.ValidatePositive("itml: convergence_threshold", o.ConvergenceThreshold); err != nil {
		return err
	}
	if o.Bounds != nil {
		for _, b := range o.Bounds {
			if math.IsNaN(b) || math.IsInf(b, 0) || b < 0 {
				return solver.Configf("itml: bounds must be finite and non-negative, got %v", *o.Bounds)
			}
		}
	}

	return nil
}
