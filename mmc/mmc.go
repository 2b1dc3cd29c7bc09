// SPDX-License-Identifier: MIT
package mmc

import (
	"math"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

// fullPriorScale is the default prior I/10 of the full variant.
const fullPriorScale = 0.1

// Fit learns A from labeled pairs starting at prior (nil = I/10 for the full
// variant, I for the diagonal one).
//
// Behavior:
//   - With Diagonal set, a user prior must be diagonal; its diagonal is the
//     starting weight vector.
//   - The returned metric is scaled up (never down) so that both Σ_D sqrt(vᵀAv)
//     and Σ_D vᵀAv are at least 1.
//
// Errors:
//   - solver.ErrConfiguration: nil set, missing similar or dissimilar pairs,
//     all similar pairs collapsed, invalid options or prior, a non-diagonal
//     prior for the diagonal variant.
//   - solver.ErrNumerical: non-finite iterate, singular Newton system, or an
//     estimate that collapses every dissimilar pair.
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
		return solver.Result{}, solver.Configf("mmc: nil pair set")
	}
	if err := opts.Validate(); err != nil {
		return solver.Result{}, err
	}
	if sim, dis := pairs.Count(); sim == 0 || dis == 0 {
		return solver.Result{}, solver.Configf("mmc: need at least one similar and one dissimilar pair, got %d and %d", sim, dis)
	}
	scale := fullPriorScale
	if opts.Diagonal {
		scale = 1
	}
	a0, err := solver.ResolveScaledPrior(prior, pairs.Dim(), scale)
	if err != nil {
		return solver.Result{}, err
	}
	if opts.Diagonal {
		diag, derr := matrix.IsZeroOffDiagonal(a0, 0)
		if derr != nil {
			return solver.Result{}, solver.Config("mmc: prior", derr)
		}
		if !diag {
			return solver.Result{}, solver.Configf("mmc: diagonal variant needs a diagonal prior")
		}
	}
	if n := pairs.Collapsed(0); n > 0 {
		run.Warn().Int("collapsed", n).Msg("pairs with identical points carry no information")
	}
	pos := pairs.DifferencesOf(constraint.Similar)
	neg := pairs.DifferencesOf(constraint.Dissimilar)

	var res solver.Result
	if opts.Diagonal {
		res, err = fitDiagonal(run, pos, neg, a0, opts)
	} else {
		res, err = fitFull(run, pos, neg, a0, opts)
	}
	if err != nil {
		return res, err
	}
	if res.Metric, err = feasible(res.Metric, neg); err != nil {
		return res, err
	}

	return res, nil
}

// quad returns max(0, vᵀAv).
func quad(a *matrix.Dense, v []float64) float64 {
	d, _ := matrix.QuadForm(a, v)

	return math.Max(0, d)
}

// feasible scales a by c = max(1, 1/(Σ sqrt d)², 1/Σ d) over the dissimilar
// differences and symmetrizes the result.
func feasible(a *matrix.Dense, neg [][]float64) (*matrix.Dense, error) {
	var s1, s2, d float64
	for _, v := range neg {
		d = quad(a, v)
		s1 += math.Sqrt(d)
		s2 += d
	}
	if s1 == 0 || s2 == 0 {
		return nil, solver.Numerical("mmc: result collapses every dissimilar pair", matrix.ErrNotPSD)
	}
	c := math.Max(1, math.Max(1/(s1*s1), 1/s2))
	out, err := matrix.Scale(a, c)
	if err != nil {
		return nil, solver.Classify("mmc: scaling", err)
	}
	if out, err = matrix.Symmetrize(out); err != nil {
		return nil, solver.Classify("mmc: scaling", err)
	}

	return out, nil
}
