// SPDX-License-Identifier: MIT
package itml

import (
	"math"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

// degenerate is the quadratic-form floor below which a constraint is skipped:
// its two points coincide under the current metric.
const degenerate = 1e-12

// bound is one constraint in projection form.
type bound struct {
	v      []float64 // a − b
	lambda float64   // dual variable, ≥ 0
	target float64   // current slack-adjusted bound b̂
	upper  bool      // similar pair: d ≤ target
}

// Fit learns M from labeled pairs starting at prior (nil = identity).
//
// Behavior:
//   - An empty pair set returns the prior with Converged == true and 0 iterations.
//   - Constraints already satisfied with zero dual variable leave M untouched.
//   - Pairs collapsed under the current metric (vᵀMv ≤ 1e-12) are skipped.
//
// Errors:
//   - solver.ErrConfiguration: nil set, invalid options or prior.
//   - solver.ErrNumerical: the iterate became non-finite.
func Fit(pairs *constraint.PairSet, prior matrix.Matrix, opts Options) (solver.Result, error) {
	run := opts.Trace.Begin(Name)
	res, err := fit(run, pairs, prior, opts)
	run.Finish(res, err)
	if err != nil {
		return solver.Result{}, err
	}

	return res, nil
}

func fit(run *solver.Run, pairs *constraint.PairSet, prior matrix.Matrix, opts Options) (solver.Result, error) {
	if pairs == nil {
		return solver.Result{}, solver.Configf("itml: nil pair set")
	}
	if err := opts.Validate(); err != nil {
		return solver.Result{}, err
	}
	dim := pairs.Dim()
	if dim == 0 && prior != nil {
		dim = prior.Rows()
	}
	m0, err := solver.ResolvePrior(prior, dim)
	if err != nil {
		return solver.Result{}, err
	}
	if pairs.Len() == 0 {
		return solver.Result{Metric: m0, Converged: true}, nil
	}
	if n := pairs.Collapsed(0); n > 0 {
		run.Warn().Int("collapsed", n).Msg("pairs with identical points carry no information")
	}

	var bnd [2]float64
	if opts.Bounds != nil {
		bnd = [2]float64{nonZero(opts.Bounds[0]), nonZero(opts.Bounds[1])}
	} else {
		bnd = DefaultBounds(pairs)
	}
	if bnd[0] > bnd[1] {
		run.Warn().Float64("u", bnd[0]).Float64("l", bnd[1]).
			Msg("similar upper bound exceeds dissimilar lower bound; the constraints work against each other")
	}
	run.Debug().Float64("u", bnd[0]).Float64("l", bnd[1]).Msg("bounds")

	// similar constraints first, then dissimilar, as in the sweep order
	cons := make([]bound, 0, pairs.Len())
	for _, v := range pairs.DifferencesOf(constraint.Similar) {
		cons = append(cons, bound{v: v, target: bnd[0], upper: true})
	}
	for _, v := range pairs.DifferencesOf(constraint.Dissimilar) {
		cons = append(cons, bound{v: v, target: bnd[1]})
	}

	gammaProj := 1.0
	if !math.IsInf(opts.Gamma, 1) {
		gammaProj = opts.Gamma / (opts.Gamma + 1)
	}

	m := matrix.CloneDense(m0)
	res := solver.Result{Objective: math.Inf(1)}
	var prevNorm, change float64
	var skipped int
	for it := 1; it <= opts.MaxIter; it++ {
		prev := matrix.CloneDense(m)
		skipped = 0
		for k := range cons {
			applied, err := project(m, &cons[k], gammaProj, opts.Gamma)
			if err != nil {
				res.Iterations = it
				return res, solver.Classify("itml: projection", err)
			}
			if !applied {
				skipped++
			}
		}
		if !m.IsFinite() {
			res.Iterations = it
			return res, solver.Numerical("itml: sweep", matrix.ErrNaNInf)
		}

		delta, _ := matrix.Sub(m, prev)
		change, _ = matrix.FrobeniusNorm(delta)
		prevNorm, _ = matrix.FrobeniusNorm(prev)
		if prevNorm > 0 {
			change /= prevNorm
		}
		run.Progress(it, change)
		if skipped > 0 {
			run.Debug().Int("iter", it).Int("skipped", skipped).Msg("degenerate constraints skipped")
		}

		res.Iterations = it
		res.Objective = change
		if change < opts.ConvergenceThreshold {
			res.Converged = true
			break
		}
	}

	out, err := matrix.Symmetrize(m)
	if err != nil {
		return res, solver.Classify("itml: result", err)
	}
	res.Metric = out

	return res, nil
}

// project applies the Bregman projection of m onto constraint c in place.
// It reports false when the constraint is degenerate under m and was skipped.
func project(m *matrix.Dense, c *bound, gammaProj, gamma float64) (bool, error) {
	p, err := matrix.QuadForm(m, c.v)
	if err != nil {
		return false, err
	}
	if p <= degenerate {
		return false, nil
	}

	var alpha, beta float64
	if c.upper {
		alpha = math.Min(c.lambda, gammaProj*(1/p-1/c.target))
		beta = alpha / (1 - alpha*p)
		c.target = 1 / (1/c.target + alpha/gamma)
	} else {
		alpha = math.Min(c.lambda, gammaProj*(1/c.target-1/p))
		beta = -alpha / (1 + alpha*p)
		c.target = 1 / (1/c.target - alpha/gamma)
	}
	c.lambda -= alpha
	if alpha == 0 {
		return true, nil
	}

	mv, err := matrix.MatVec(m, c.v)
	if err != nil {
		return false, err
	}

	return true, matrix.AddOuter(m, beta, mv, mv)
}
