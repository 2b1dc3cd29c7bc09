// Package lsml implements Least Squared-residual Metric Learning on
// relative comparisons.
//
// Each quadruplet (a, b, c, d) asks for d(a, b) < d(c, d). With
// d = sqrt(vᵀMv) the loss is
//
//	Σ_q w_q·H(d_ab − d_cd) + tr(M·M0⁻¹) − logdet(M),   H(r) = r² for r > 0, else 0,
//
// minimized by projected gradient descent over a fixed logarithmic grid of
// step sizes; every candidate is projected onto {M : λ_min(M) ≥ 1e-8}.
package lsml
