// SPDX-License-Identifier: MIT
package sdml

import (
	"math"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

const (
	// spectrumOffset is added to every eigenvalue of the starting covariance.
	spectrumOffset = 1e-10

	// shrinkMargin is the smallest eigenvalue a shrunk estimate is given.
	shrinkMargin = 1e-8
)

// Fit learns a sparse M from labeled pairs with prior (nil = identity).
//
// Errors:
//   - solver.ErrConfiguration: nil set, missing similar or dissimilar pairs,
//     invalid options or prior, a non-PSD target under PolicyStrict.
//   - solver.ErrNumerical: the estimate is non-finite or indefinite (and
//     PolicyShrink could not repair it).
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
		return solver.Result{}, solver.Configf("sdml: nil pair set")
	}
	if err := opts.Validate(); err != nil {
		return solver.Result{}, err
	}
	if sim, dis := pairs.Count(); sim == 0 || dis == 0 {
		return solver.Result{}, solver.Configf("sdml: need at least one similar and one dissimilar pair, got %d and %d", sim, dis)
	}
	m0, err := solver.ResolvePrior(prior, pairs.Dim())
	if err != nil {
		return solver.Result{}, err
	}
	if n := pairs.Collapsed(0); n > 0 {
		run.Warn().Int("collapsed", n).Msg("pairs with identical points carry no information")
	}

	target, err := Target(pairs, m0, opts.BalanceParam)
	if err != nil {
		return solver.Result{}, err
	}
	init, err := startingCovariance(run, target, opts.Policy)
	if err != nil {
		return solver.Result{}, err
	}

	var est *matrix.Dense
	res := solver.Result{Converged: true}
	emp, _ := matrix.ToRows(target)
	if opts.SparsityParam == 0 {
		inv, err := invert(emp)
		if err != nil {
			return solver.Result{}, solver.Classify("sdml: inverse", err)
		}
		if est, err = matrix.NewFromRows(inv); err != nil {
			return solver.Result{}, solver.Classify("sdml: inverse", err)
		}
	} else {
		start, _ := matrix.ToRows(init)
		gl, err := graphicalLasso(emp, start, opts.SparsityParam, opts.MaxIter, opts.Tol, opts.EnetMaxIter, opts.EnetTol)
		if err != nil {
			return solver.Result{}, solver.Classify("sdml: graphical lasso", err)
		}
		if est, err = matrix.NewFromRows(gl.precision); err != nil {
			return solver.Result{}, solver.Classify("sdml: graphical lasso", err)
		}
		res.Converged, res.Iterations, res.Objective = gl.converged, gl.iters, gl.gap
		run.Progress(gl.iters, gl.gap)
	}

	if est, err = matrix.Symmetrize(est); err != nil {
		return solver.Result{}, solver.Classify("sdml: result", err)
	}
	if est, err = checkEstimate(run, est, opts.Policy); err != nil {
		return solver.Result{}, err
	}
	res.Metric = est

	return res, nil
}

// Target returns Σ = M0⁻¹ + eta·XᵀLX for the pairs of s.
func Target(s *constraint.PairSet, m0 *matrix.Dense, eta float64) (*matrix.Dense, error) {
	p0, err := matrix.InverseSPD(m0)
	if err != nil {
		return nil, solver.Classify("sdml: prior inverse", err)
	}
	loss, err := LossMatrix(s)
	if err != nil {
		return nil, solver.Classify("sdml: loss", err)
	}
	scaled, err := matrix.Scale(loss, eta)
	if err != nil {
		return nil, solver.Classify("sdml: loss", err)
	}
	sum, err := matrix.Add(p0, scaled)
	if err != nil {
		return nil, solver.Classify("sdml: target", err)
	}
	out, err := matrix.Symmetrize(sum)
	if err != nil {
		return nil, solver.Classify("sdml: target", err)
	}

	return out, nil
}

// startingCovariance returns V·diag(w − min(0, λ_min) + offset)·Vᵀ.
func startingCovariance(run *solver.Run, target *matrix.Dense, policy Policy) (*matrix.Dense, error) {
	w, v, err := matrix.EigenSym(target)
	if err != nil {
		return nil, solver.Classify("sdml: target spectrum", err)
	}
	if w[0] < 0 {
		if policy == PolicyStrict {
			return nil, solver.Configf("sdml: graphical lasso input is not positive semi-definite (min eigenvalue %g); decrease balance_param or use the identity prior", w[0])
		}
		run.Warn().Float64("min_eigenvalue", w[0]).
			Msg("the input matrix of graphical lasso is not positive semi-definite; the algorithm may diverge; decrease balance_param or use the identity prior")
		shift := w[0]
		for k := range w {
			w[k] -= shift
		}
	}
	for k := range w {
		w[k] += spectrumOffset
	}
	d, err := matrix.NewDiagonal(w)
	if err != nil {
		return nil, solver.Classify("sdml: starting covariance", err)
	}
	vd, err := matrix.Mul(v, d)
	if err != nil {
		return nil, solver.Classify("sdml: starting covariance", err)
	}
	vt, err := matrix.Transpose(v)
	if err != nil {
		return nil, solver.Classify("sdml: starting covariance", err)
	}
	out, err := matrix.Mul(vd, vt)
	if err != nil {
		return nil, solver.Classify("sdml: starting covariance", err)
	}

	return matrix.Symmetrize(out)
}

// checkEstimate accepts a finite positive-definite estimate. Under
// PolicyShrink an indefinite (but finite) estimate is replaced by its shrunk
// version; otherwise it is a numerical error.
func checkEstimate(run *solver.Run, est *matrix.Dense, policy Policy) (*matrix.Dense, error) {
	if !est.IsFinite() {
		return nil, solver.Numerical("sdml: estimate", matrix.ErrNaNInf)
	}
	lmin, err := matrix.MinEigenvalue(est)
	if err != nil {
		return nil, solver.Classify("sdml: estimate", err)
	}
	if lmin > 0 {
		return est, nil
	}
	if policy != PolicyShrink {
		return nil, solver.Numerical("sdml: estimate", matrix.ErrNotPositiveDefinite)
	}
	out, s, err := shrinkToIdentity(est, lmin)
	if err != nil {
		return nil, solver.Classify("sdml: shrink", err)
	}
	run.Warn().Float64("min_eigenvalue", lmin).Float64("shrinkage", s).
		Msg("estimate is not positive definite; shrinking toward the identity (deprecated fallback)")

	return out, nil
}

// shrinkToIdentity returns (1−s)·M + s·I with the smallest s ∈ (0, 1) that
// lifts λ_min to shrinkMargin, together with s.
func shrinkToIdentity(m *matrix.Dense, lmin float64) (*matrix.Dense, float64, error) {
	s := (shrinkMargin - lmin) / (1 - lmin)
	s = math.Min(1, math.Max(0, s))
	scaled, err := matrix.Scale(m, 1-s)
	if err != nil {
		return nil, 0, err
	}
	id, err := matrix.NewScaledIdentity(m.Rows(), s)
	if err != nil {
		return nil, 0, err
	}
	out, err := matrix.Add(scaled, id)
	if err != nil {
		return nil, 0, err
	}

	return out, s, nil
}
