// SPDX-License-Identifier: MIT
package sdml

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmetric/matrix"
)

// shrinkInit scales the off-diagonal of the starting covariance.
const shrinkInit = 0.95

// machEps is the float64 unit roundoff.
var machEps = math.Nextafter(1, 2) - 1

// glasso holds the outcome of one graphical-lasso run.
type glasso struct {
	precision [][]float64
	gap       float64
	iters     int
	converged bool
}

// graphicalLasso estimates the precision matrix of the empirical covariance
// emp with off-diagonal L1 penalty alpha, starting from covariance init.
//
// Implementation:
//   - Stage 1: W = shrinkInit·init with emp's diagonal; Θ = W⁻¹.
//   - Stage 2: per sweep, for each column solve the lasso subproblem
//     min ½βᵀW₁₁β − s₁₂ᵀβ + alpha‖β‖₁ by coordinate descent and update
//     the column of Θ and W.
//   - Stage 3: stop when |dual gap| < tol.
//
// Errors: matrix.ErrSingular (starting covariance not invertible),
// matrix.ErrNaNInf (precision became non-finite).
func graphicalLasso(emp, init [][]float64, alpha float64, maxIter int, tol float64, enetMaxIter int, enetTol float64) (*glasso, error) {
	n := len(emp)
	cov := make([][]float64, n)
	var i, j int
	for i = 0; i < n; i++ {
		cov[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			cov[i][j] = shrinkInit * init[i][j]
		}
		cov[i][i] = emp[i][i]
	}
	prec, err := invert(cov)
	if err != nil {
		return nil, err
	}

	out := &glasso{precision: prec, gap: math.Inf(1)}
	others := make([]int, 0, n-1)
	coefs := make([]float64, n-1)
	row := make([]float64, n-1)
	sub := make([][]float64, n-1)
	for i = range sub {
		sub[i] = make([]float64, n-1)
	}
	var idx, a, b int
	var pii float64
	for out.iters = 1; out.iters <= maxIter; out.iters++ {
		for idx = 0; idx < n; idx++ {
			others = others[:0]
			for j = 0; j < n; j++ {
				if j != idx {
					others = append(others, j)
				}
			}
			for a = range others {
				for b = range others {
					sub[a][b] = cov[others[a]][others[b]]
				}
				row[a] = emp[idx][others[a]]
				coefs[a] = -prec[others[a]][idx] / (prec[idx][idx] + 1000*machEps)
			}
			lassoCD(coefs, alpha, sub, row, enetMaxIter, enetTol)

			pii = cov[idx][idx]
			for a = range others {
				pii -= cov[others[a]][idx] * coefs[a]
			}
			pii = 1 / pii
			prec[idx][idx] = pii
			for a, o := range others {
				prec[o][idx] = -pii * coefs[a]
				prec[idx][o] = prec[o][idx]
			}
			for a, o := range others {
				// W₁₂ ← W₁₁β
				cov[idx][o] = floats.Dot(sub[a], coefs)
				cov[o][idx] = cov[idx][o]
			}
		}
		for i = 0; i < n; i++ {
			if !isFinite(prec[i]) {
				return nil, matrix.ErrNaNInf
			}
		}
		out.gap = dualGap(emp, prec, alpha)
		if math.Abs(out.gap) < tol {
			out.converged = true

			return out, nil
		}
	}
	out.iters = maxIter

	return out, nil
}

// lassoCD minimizes ½wᵀQw − qᵀw + alpha‖w‖₁ in place by cyclic coordinate
// descent. It stops when the largest coordinate step relative to the largest
// coefficient drops below tol, or after maxIter passes.
func lassoCD(w []float64, alpha float64, q [][]float64, lin []float64, maxIter int, tol float64) {
	n := len(w)
	if n == 0 {
		return
	}
	hw := make([]float64, n) // Q·w
	var i int
	for i = 0; i < n; i++ {
		if w[i] != 0 {
			floats.AddScaled(hw, w[i], q[i])
		}
	}
	var it int
	var old, tmp, wMax, dMax float64
	for it = 0; it < maxIter; it++ {
		wMax, dMax = 0, 0
		for i = 0; i < n; i++ {
			if q[i][i] == 0 {
				continue
			}
			old = w[i]
			if old != 0 {
				floats.AddScaled(hw, -old, q[i])
			}
			tmp = lin[i] - hw[i]
			w[i] = softThreshold(tmp, alpha) / q[i][i]
			if w[i] != 0 {
				floats.AddScaled(hw, w[i], q[i])
			}
			dMax = math.Max(dMax, math.Abs(w[i]-old))
			wMax = math.Max(wMax, math.Abs(w[i]))
		}
		if wMax == 0 || dMax/wMax < tol {
			return
		}
	}
}

func softThreshold(x, t float64) float64 {
	switch {
	case x > t:
		return x - t
	case x < -t:
		return x + t
	default:
		return 0
	}
}

// dualGap returns Σ S∘Θ − n + alpha·‖Θ‖₁,off.
func dualGap(emp, prec [][]float64, alpha float64) float64 {
	n := len(emp)
	var gap, off float64
	var i, j int
	for i = 0; i < n; i++ {
		gap += floats.Dot(emp[i], prec[i])
		for j = 0; j < n; j++ {
			if i != j {
				off += math.Abs(prec[i][j])
			}
		}
	}

	return gap - float64(n) + alpha*off
}

// invert returns rows⁻¹, trying the SPD path first and pivoted LU otherwise.
func invert(rows [][]float64) ([][]float64, error) {
	d, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.InverseSPD(d)
	if err != nil {
		if inv, err = matrix.InversePivoted(d); err != nil {
			return nil, err
		}
	}

	return matrix.ToRows(inv)
}

func isFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}
