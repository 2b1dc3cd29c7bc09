// SPDX-License-Identifier: MIT
package lsml

import (
	"math"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

// comparison holds the two difference vectors of one quadruplet.
type comparison struct {
	ab, cd []float64
	w      float64
}

func comparisons(s *constraint.QuadrupletSet, weights []float64) []comparison {
	out := make([]comparison, s.Len())
	for i := range out {
		q := s.At(i)
		out[i] = comparison{ab: q.Close().Diff(), cd: q.Far().Diff(), w: weights[i]}
	}

	return out
}

func dist(m *matrix.Dense, v []float64) float64 {
	d, _ := matrix.QuadForm(m, v)

	return math.Sqrt(math.Max(0, d))
}

// Residual returns r = d_ab − d_cd for quadruplet q under m, with
// d = sqrt(vᵀMv), and its derivative ∂r/∂M = v_ab v_abᵀ/(2d_ab) − v_cd v_cdᵀ/(2d_cd).
// Exchanging the two pairs of q negates both exactly.
//
// Errors: solver.ErrConfiguration on a dimension mismatch; solver.ErrNumerical
// when either pair has zero length under m.
func Residual(m *matrix.Dense, q constraint.Quadruplet) (float64, *matrix.Dense, error) {
	ab, cd := q.Close().Diff(), q.Far().Diff()
	if len(ab) != m.Rows() || len(cd) != m.Rows() {
		return 0, nil, solver.Configf("lsml: quadruplet of dimension %d for a %dx%d metric", len(ab), m.Rows(), m.Cols())
	}
	dab, dcd := dist(m, ab), dist(m, cd)
	if dab == 0 || dcd == 0 {
		return 0, nil, solver.Numerical("lsml: residual", matrix.ErrSingular)
	}
	g, err := matrix.ZerosLike(m)
	if err != nil {
		return 0, nil, solver.Classify("lsml: residual", err)
	}
	_ = matrix.AddOuter(g, 1/(2*dab), ab, ab)
	_ = matrix.AddOuter(g, -1/(2*dcd), cd, cd)

	return dab - dcd, g, nil
}

// comparisonLoss returns Σ w·(d_ab − d_cd)² over violated comparisons.
func comparisonLoss(m *matrix.Dense, cs []comparison) float64 {
	var loss, r float64
	for _, c := range cs {
		if r = dist(m, c.ab) - dist(m, c.cd); r > 0 {
			loss += c.w * r * r
		}
	}

	return loss
}

// totalLoss adds the LogDet regularizer tr(M·P) − logdet(M), P = M0⁻¹.
// A metric that is not positive definite has infinite loss.
func totalLoss(m, p *matrix.Dense, cs []comparison) float64 {
	reg, err := matrix.LogDetRegularizer(m, p)
	if err != nil {
		return math.Inf(1)
	}

	return comparisonLoss(m, cs) + reg
}

// Loss evaluates the LSML objective of m on s with weights (nil = uniform) and prior m0.
func Loss(m *matrix.Dense, s *constraint.QuadrupletSet, weights []float64, m0 *matrix.Dense) (float64, error) {
	w, err := Options{Weights: weights}.normalized(s.Len())
	if err != nil {
		return 0, err
	}
	p, err := matrix.InverseSPD(m0)
	if err != nil {
		return 0, solver.Classify("lsml: prior inverse", err)
	}

	return totalLoss(m, p, comparisons(s, w)), nil
}

// gradient returns P − M⁻¹ + Σ_violated w·[(1 − d_cd/d_ab)·v_ab v_abᵀ + (1 − d_ab/d_cd)·v_cd v_cdᵀ].
func gradient(m, p *matrix.Dense, cs []comparison) (*matrix.Dense, error) {
	inv, err := inverse(m)
	if err != nil {
		return nil, err
	}
	g, err := matrix.Sub(p, inv)
	if err != nil {
		return nil, err
	}
	var dab, dcd float64
	for _, c := range cs {
		dab, dcd = dist(m, c.ab), dist(m, c.cd)
		if !(dab > dcd) || dcd == 0 {
			continue
		}
		if err = matrix.AddOuter(g, c.w*(1-dcd/dab), c.ab, c.ab); err != nil {
			return nil, err
		}
		if err = matrix.AddOuter(g, c.w*(1-dab/dcd), c.cd, c.cd); err != nil {
			return nil, err
		}
	}

	return matrix.Symmetrize(g)
}

// retryRidge is added to the diagonal when the SPD inverse fails once.
const retryRidge = 1e-10

// inverse returns m⁻¹, retrying once with m + εI.
func inverse(m *matrix.Dense) (*matrix.Dense, error) {
	inv, err := matrix.InverseSPD(m)
	if err == nil {
		return inv, nil
	}
	ridge, rerr := matrix.NewScaledIdentity(m.Rows(), retryRidge)
	if rerr != nil {
		return nil, rerr
	}
	shifted, rerr := matrix.Add(m, ridge)
	if rerr != nil {
		return nil, rerr
	}

	return matrix.InverseSPD(shifted)
}
