// SPDX-License-Identifier: MIT
package mmc

import (
	"math"

	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

const (
	// projTol is the relative violation of Σ_S vᵀAv ≤ t accepted after projection.
	projTol = 0.01

	// initialStep is the starting gradient step size.
	initialStep = 0.1

	// stepGrow and stepShrink adapt the step size after a cycle.
	stepGrow   = 1.05
	stepShrink = 0.5

	// distEps keeps the log and the distance derivatives finite.
	distEps = 1e-6
)

// scatter returns Σ v vᵀ over diffs.
func scatter(diffs [][]float64, n int) *matrix.Dense {
	w, _ := matrix.NewZeros(n, n)
	for _, v := range diffs {
		_ = matrix.AddOuter(w, 1, v, v)
	}

	return w
}

// spread returns g(A) = log(Σ_D sqrt(vᵀAv) + ε).
func spread(neg [][]float64, a *matrix.Dense) float64 {
	var sum float64
	for _, v := range neg {
		sum += math.Sqrt(quad(a, v))
	}

	return math.Log(sum + distEps)
}

// spreadGrad returns ∇g(A) = Σ_D vvᵀ/(2(d+ε)) / (Σ_D d + ε), d = sqrt(vᵀAv).
func spreadGrad(neg [][]float64, a *matrix.Dense) *matrix.Dense {
	n := a.Rows()
	g, _ := matrix.NewZeros(n, n)
	var sum, d float64
	for _, v := range neg {
		d = math.Sqrt(quad(a, v))
		sum += d
		_ = matrix.AddOuter(g, 0.5/(d+distEps), v, v)
	}
	out, _ := matrix.Scale(g, 1/(sum+distEps))

	return out
}

// ascentDirection returns grad with its component along ortho removed,
// normalized to unit Frobenius norm. A vanishing result is returned as zero.
func ascentDirection(grad, ortho *matrix.Dense) *matrix.Dense {
	on, _ := matrix.FrobeniusNorm(ortho)
	dir := matrix.CloneDense(grad)
	if on > 0 {
		unit, _ := matrix.Scale(ortho, 1/on)
		c, _ := matrix.Dot(grad, unit)
		dir, _ = matrix.Sub(grad, mustScale(unit, c))
	}
	dn, _ := matrix.FrobeniusNorm(dir)
	if dn == 0 {
		return dir
	}

	return mustScale(dir, 1/dn)
}

func mustScale(m *matrix.Dense, c float64) *matrix.Dense {
	out, _ := matrix.Scale(m, c)

	return out
}

// fitFull runs the alternating-projection / projected-gradient-ascent loop.
//
// Implementation:
//   - Stage 1: W = Σ_S vvᵀ, t = ⟨W, A0⟩/100.
//   - Stage 2 (per cycle): up to MaxProj rounds of projection onto
//     {⟨W, A⟩ ≤ t} then onto the PSD cone, until the relative violation < 1%.
//   - Stage 3: accept (grow step, move from A) when the projection succeeded
//     and g improved; otherwise halve the step and retry from A_old.
//   - Stop when ‖αM‖_F / ‖A_old‖_F < ConvergenceThreshold.
//
// The returned metric is A_old, the last accepted iterate.
func fitFull(run *solver.Run, pos, neg [][]float64, a0 *matrix.Dense, opts Options) (solver.Result, error) {
	n := a0.Rows()
	w := scatter(pos, n)
	wNorm, _ := matrix.FrobeniusNorm(w)
	if wNorm == 0 {
		return solver.Result{}, solver.Configf("mmc: every similar pair is collapsed")
	}
	wa, _ := matrix.Dot(w, a0)
	t := wa / 100

	a := matrix.CloneDense(a0)
	aOld := matrix.CloneDense(a0)
	alpha := initialStep
	dir := ascentDirection(spreadGrad(neg, a), w)

	res := solver.Result{Objective: math.Inf(1)}
	var (
		cycle, it   int
		satisfied   bool
		viol, delta float64
		err         error
	)
	for cycle = 0; cycle < opts.MaxIter; cycle++ {
		satisfied = false
		for it = 0; it < opts.MaxProj; it++ {
			// half-space {⟨W, A⟩ ≤ t}
			if wa, _ = matrix.Dot(w, a); wa > t {
				if err = addScaled(a, (t-wa)/(wNorm*wNorm), w); err != nil {
					return res, solver.Classify("mmc: projection", err)
				}
			}
			// PSD cone
			if a, err = matrix.ProjectPSD(a, 0); err != nil {
				return res, solver.Classify("mmc: projection", err)
			}
			wa, _ = matrix.Dot(w, a)
			if t > 0 {
				viol = (wa - t) / t
			} else {
				viol = wa
			}
			if viol < projTol {
				satisfied = true
				break
			}
		}

		if satisfied && (cycle == 0 || spread(neg, a) > spread(neg, aOld)) {
			alpha *= stepGrow
			aOld = matrix.CloneDense(a)
			dir = ascentDirection(spreadGrad(neg, a), w)
			if err = addScaled(a, alpha, dir); err != nil {
				return res, solver.Classify("mmc: ascent", err)
			}
		} else {
			alpha *= stepShrink
			a = matrix.CloneDense(aOld)
			if err = addScaled(a, alpha, dir); err != nil {
				return res, solver.Classify("mmc: ascent", err)
			}
		}
		if !a.IsFinite() {
			res.Iterations = cycle + 1
			return res, solver.Numerical("mmc: ascent", matrix.ErrNaNInf)
		}

		stepNorm, _ := matrix.FrobeniusNorm(dir)
		oldNorm, _ := matrix.FrobeniusNorm(aOld)
		delta = alpha * stepNorm
		if oldNorm > 0 {
			delta /= oldNorm
		}
		res.Iterations = cycle + 1
		res.Objective = delta
		run.Debug().Int("iter", cycle+1).Float64("conv", delta).Int("projections", it+1).Msg("iteration")
		if delta < opts.ConvergenceThreshold {
			res.Converged = true
			break
		}
	}
	res.Metric = aOld

	return res, nil
}

// addScaled performs a += c·b in place.
func addScaled(a *matrix.Dense, c float64, b *matrix.Dense) error {
	return a.Apply(func(i, j int, v float64) float64 {
		bv, _ := b.At(i, j)
		return v + c*bv
	})
}
