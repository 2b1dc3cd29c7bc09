// SPDX-License-Identifier: MIT
package mmc

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

const (
	// hessianRidge regularizes the Newton system.
	hessianRidge = 1e-6

	// maxHalvings caps the step-halving line search.
	maxHalvings = 60
)

// diagProblem is the diagonal MMC objective
//
//	f(w) = Σ_S ‖v‖²_w − c·log Σ_D sqrt(‖v‖²_w),   w ≥ 0.
type diagProblem struct {
	s   []float64   // Σ_S v∘v
	neg [][]float64 // v∘v per dissimilar pair
	c   float64
}

func newDiagProblem(pos, neg [][]float64, dim int, c float64) *diagProblem {
	p := &diagProblem{s: make([]float64, dim), neg: make([][]float64, len(neg)), c: c}
	sq := make([]float64, dim)
	for _, v := range pos {
		floats.MulTo(sq, v, v)
		floats.Add(p.s, sq)
	}
	for i, v := range neg {
		p.neg[i] = make([]float64, dim)
		floats.MulTo(p.neg[i], v, v)
	}

	return p
}

// value returns f(w), with a small offset inside each root.
func (p *diagProblem) value(w []float64) float64 {
	var sum float64
	for _, q := range p.neg {
		sum += math.Sqrt(floats.Dot(q, w) + distEps)
	}

	return floats.Dot(p.s, w) - p.c*math.Log(sum)
}

// spread returns log Σ_D d, its gradient and its Hessian with respect to w,
// d = sqrt(q·w).
func (p *diagProblem) spread(w []float64) (float64, []float64, *matrix.Dense) {
	n := len(w)
	d1 := make([]float64, n)
	d2, _ := matrix.NewZeros(n, n)
	var sum, d, g float64
	for _, q := range p.neg {
		d = math.Sqrt(math.Max(0, floats.Dot(q, w)))
		sum += d
		floats.AddScaled(d1, 0.5/math.Max(d, distEps), q)
		g = -1 / (4 * math.Max(distEps, d*d*d))
		_ = matrix.AddOuter(d2, g, q, q)
	}
	floats.Scale(1/sum, d1)
	h, _ := matrix.Scale(d2, 1/sum)
	_ = matrix.AddOuter(h, -1, d1, d1)

	return math.Log(sum), d1, h
}

// fitDiagonal minimizes the diagonal objective with damped Newton steps.
//
// Implementation:
//   - Gradient s − c·∇g, Hessian −c·∇²g + 1e-6·I, step = H⁻¹·grad (matrix.Inverse).
//   - Line search: λ = 1, halve while f(max(0, w − λ·step)) keeps decreasing.
//   - Stop when |f_new − f_old| / |f_new| ≤ ConvergenceThreshold.
func fitDiagonal(run *solver.Run, pos, neg [][]float64, a0 *matrix.Dense, opts Options) (solver.Result, error) {
	n := a0.Rows()
	w, err := matrix.Diagonal(a0)
	if err != nil {
		return solver.Result{}, solver.Classify("mmc: diagonal", err)
	}
	p := newDiagProblem(pos, neg, n, opts.DiagonalC)

	res := solver.Result{Objective: math.Inf(1)}
	grad := make([]float64, n)
	trial := make([]float64, n)
	prev := make([]float64, n)
	var (
		fd, f0, f, fPrev, lambda float64
		d1                       []float64
		d2, hess, inv            *matrix.Dense
		step                     []float64
	)
	for it := 1; it <= opts.MaxIter; it++ {
		fd, d1, d2 = p.spread(w)
		if math.IsNaN(fd) || math.IsInf(fd, 0) {
			return res, solver.Numerical("mmc: diagonal", matrix.ErrNaNInf)
		}
		f0 = floats.Dot(p.s, w) - p.c*fd
		floats.AddScaledTo(grad, p.s, -p.c, d1)
		if hess, err = matrix.Scale(d2, -p.c); err != nil {
			return res, solver.Classify("mmc: hessian", err)
		}
		for k := 0; k < n; k++ {
			v, _ := hess.At(k, k)
			_ = hess.Set(k, k, v+hessianRidge)
		}
		if inv, err = matrix.Inverse(hess); err != nil {
			return res, solver.Classify("mmc: hessian", err)
		}
		if step, err = matrix.MatVec(inv, grad); err != nil {
			return res, solver.Classify("mmc: newton step", err)
		}

		lambda = 1
		clampedStep(trial, w, step, lambda)
		f = p.value(trial)
		fPrev = math.Inf(1)
		for h := 0; f < fPrev && h < maxHalvings; h++ {
			fPrev = f
			copy(prev, trial)
			lambda /= 2
			clampedStep(trial, w, step, lambda)
			f = p.value(trial)
		}
		if math.IsNaN(fPrev) || math.IsInf(fPrev, 0) {
			return res, solver.Numerical("mmc: line search", matrix.ErrNaNInf)
		}
		copy(w, prev)

		res.Iterations = it
		res.Objective = math.Abs((fPrev - f0) / fPrev)
		run.Progress(it, res.Objective)
		if res.Objective <= opts.ConvergenceThreshold {
			res.Converged = true
			break
		}
	}

	out, err := matrix.NewDiagonal(w)
	if err != nil {
		return res, solver.Classify("mmc: diagonal", err)
	}
	res.Metric = out

	return res, nil
}

// clampedStep writes max(0, w − λ·step) into dst.
func clampedStep(dst, w, step []float64, lambda float64) {
	for i := range dst {
		dst[i] = math.Max(0, w[i]-lambda*step[i])
	}
}
