// SPDX-License-Identifier: MIT
package lsml

import (
	"math"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

const (
	// eigenFloor keeps every candidate strictly positive definite.
	eigenFloor = 1e-8

	// gridSize candidate steps, log-spaced over [1e-10, 1].
	gridSize = 10
	gridLow  = -10.0
	gridHigh = 0.0
)

// stepGrid returns logspace(gridLow, gridHigh, gridSize).
func stepGrid() []float64 {
	out := make([]float64, gridSize)
	span := (gridHigh - gridLow) / float64(gridSize-1)
	for i := range out {
		out[i] = math.Pow(10, gridLow+float64(i)*span)
	}

	return out
}

// Fit learns M from quadruplets starting at prior (nil = identity).
//
// Behavior:
//   - An empty set returns the prior with Converged == true.
//   - Stops with Converged == true when ‖grad‖_F < Tol, when the relative loss
//     decrease of an accepted step is below Tol, or when no grid step improves
//     the loss; hitting MaxIter leaves Converged == false.
//
// Errors:
//   - solver.ErrConfiguration: nil set, invalid options, weights or prior.
//   - solver.ErrNumerical: M⁻¹ failed even after the ridge retry.
func Fit(quads *constraint.QuadrupletSet, prior matrix.Matrix, opts Options) (solver.Result, error) {
	run := opts.Trace.Begin(Name)
	res, err := fit(run, quads, prior, opts)
	run.Finish(res, err)
	if err != nil {
		return solver.Result{}, err
	}

	return res, nil
}

func fit(run *solver.Run, quads *constraint.QuadrupletSet, prior matrix.Matrix, opts Options) (solver.Result, error) {
	if quads == nil {
		return solver.Result{}, solver.Configf("lsml: nil quadruplet set")
	}
	if err := opts.Validate(); err != nil {
		return solver.Result{}, err
	}
	dim := quads.Dim()
	if dim == 0 && prior != nil {
		dim = prior.Rows()
	}
	m0, err := solver.ResolvePrior(prior, dim)
	if err != nil {
		return solver.Result{}, err
	}
	if quads.Len() == 0 {
		return solver.Result{Metric: m0, Converged: true}, nil
	}
	weights, err := opts.normalized(quads.Len())
	if err != nil {
		return solver.Result{}, err
	}
	p, err := matrix.InverseSPD(m0)
	if err != nil {
		return solver.Result{}, solver.Config("lsml: prior inverse", err)
	}
	cs := comparisons(quads, weights)

	m := m0
	best := totalLoss(m, p, cs)
	run.Debug().Float64("loss", best).Msg("initial loss")
	grid := stepGrid()
	res := solver.Result{Objective: best}
	var gnorm, prevLoss, bestStep float64
	for it := 1; it <= opts.MaxIter; it++ {
		res.Iterations = it
		grad, err := gradient(m, p, cs)
		if err != nil {
			return res, solver.Classify("lsml: gradient", err)
		}
		gnorm, _ = matrix.FrobeniusNorm(grad)
		if gnorm < opts.Tol {
			res.Converged = true
			break
		}

		var next *matrix.Dense
		prevLoss = best
		for _, s := range grid {
			step := s / gnorm
			cand, err := matrix.Sub(m, mustScale(grad, step))
			if err != nil {
				return res, solver.Classify("lsml: step", err)
			}
			if cand, err = matrix.ProjectPSD(cand, eigenFloor); err != nil {
				return res, solver.Classify("lsml: step", err)
			}
			if l := totalLoss(cand, p, cs); l < best {
				best, bestStep, next = l, step, cand
			}
		}
		run.Debug().Int("iter", it).Float64("loss", best).Float64("grad", gnorm).
			Float64("step", bestStep*gnorm).Msg("iteration")
		if next == nil {
			res.Converged = true
			break
		}
		m = next
		if (prevLoss-best)/math.Max(math.Abs(prevLoss), 1) < opts.Tol {
			res.Converged = true
			break
		}
	}
	res.Objective = best
	if res.Metric, err = matrix.Symmetrize(m); err != nil {
		return res, solver.Classify("lsml: result", err)
	}

	return res, nil
}

func mustScale(m *matrix.Dense, c float64) *matrix.Dense {
	out, _ := matrix.Scale(m, c)

	return out
}

// CovariancePrior returns the inverse sample covariance of the distinct points
// of s, a data-driven alternative to the identity prior.
//
// Errors: solver.ErrConfiguration with fewer than two distinct points;
// solver.ErrNumerical when the covariance is singular.
func CovariancePrior(s *constraint.QuadrupletSet) (*matrix.Dense, error) {
	points := s.Points()
	if len(points) < 2 {
		return nil, solver.Configf("lsml: covariance prior needs at least 2 distinct points, got %d", len(points))
	}
	x, err := matrix.NewFromRows(points)
	if err != nil {
		return nil, solver.Config("lsml: covariance prior", err)
	}
	cov, _, err := matrix.Covariance(x)
	if err != nil {
		return nil, solver.Classify("lsml: covariance prior", err)
	}
	inv, err := matrix.InverseSPD(cov)
	if err != nil {
		return nil, solver.Numerical("lsml: covariance prior", err)
	}

	return inv, nil
}
