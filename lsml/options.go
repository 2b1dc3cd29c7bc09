// SPDX-License-Identifier: MIT
package lsml

import (
	"math"

	"github.com/katalvlaran/lvmetric/solver"
)

// Name is the algorithm tag used in logs and telemetry.
const Name = "lsml"

// Options configures Fit.
type Options struct {
	Tol     float64 `yaml:"tol"`
	MaxIter int     `yaml:"max_iter"`

	// Weights holds one non-negative weight per quadruplet; nil means uniform.
	// Weights are normalized to sum to 1.
	Weights []float64 `yaml:"weights,omitempty"`

	solver.Trace `yaml:",inline"`
}

// DefaultOptions returns Tol 1e-3, MaxIter 1000 and uniform weights.
func DefaultOptions() Options {
	return Options{Tol: 1e-3, MaxIter: 1000}
}

// Validate checks the option ranges. Errors wrap solver.ErrConfiguration.
func (o Options) Validate() error {
	if err := solver.ValidatePositive("lsml: tol", o.Tol); err != nil {
		return err
	}
	if err := solver.ValidateIterations("lsml: max_iter", o.MaxIter); err != nil {
		return err
	}
	for i, w := range o.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return solver.Configf("lsml: weight %d must be finite and non-negative, got %g", i, w)
		}
	}

	return nil
}

// normalized returns the weights for n quadruplets scaled to sum 1.
func (o Options) normalized(n int) ([]float64, error) {
	out := make([]float64, n)
	if o.Weights == nil {
		for i := range out {
			out[i] = 1 / float64(n)
		}

		return out, nil
	}
	if len(o.Weights) != n {
		return nil, solver.Configf("lsml: %d weights for %d quadruplets", len(o.Weights), n)
	}
	var sum float64
	for _, w := range o.Weights {
		sum += w
	}
	if sum == 0 {
		return nil, solver.Configf("lsml: weights sum to zero")
	}
	for i, w := range o.Weights {
		out[i] = w / sum
	}

	return out, nil
}
