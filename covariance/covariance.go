// SPDX-License-Identifier: MIT

// Package covariance provides the unsupervised baseline metric: the inverse
// of the sample covariance, M = Cov(X)⁻¹. It needs no constraints and is a
// common reference point for the learned metrics.
package covariance

import (
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/metric"
	"github.com/katalvlaran/lvmetric/solver"
)

const opFit = "covariance.Fit"

// Fit returns the metric M = Cov(x)⁻¹ over the rows of x. For one feature
// this is 1/var.
//
// Errors:
//   - solver.ErrConfiguration: fewer than two samples, ragged or non-finite rows.
//   - solver.ErrNumerical: the covariance is singular.
func Fit(x [][]float64) (*metric.Metric, error) {
	if len(x) < 2 {
		return nil, solver.Configf("%s: need at least 2 samples, got %d", opFit, len(x))
	}
	d, err := matrix.NewFromRows(x)
	if err != nil {
		return nil, solver.Config(opFit, err)
	}
	cov, _, err := matrix.Covariance(d)
	if err != nil {
		return nil, solver.Config(opFit, err)
	}
	inv, err := matrix.InverseSPD(cov)
	if err != nil {
		return nil, solver.Numerical(opFit, err)
	}

	return metric.New(inv)
}
