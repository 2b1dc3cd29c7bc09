// Package itml implements Information-Theoretic Metric Learning.
//
// ITML minimizes the LogDet divergence D_ld(M, M0) subject to pair bounds:
// d_M(a, b) ≤ u for similar pairs and d_M(a, b) ≥ l for dissimilar ones.
// Each outer iteration sweeps every constraint once and applies the closed-form
// Bregman projection onto it, a rank-one update
//
//	M ← M + β·(Mv)(Mv)ᵀ,   v = a − b,
//
// with slack controlled by Gamma (Gamma = +Inf enforces the bounds exactly).
// The update family preserves positive definiteness, so no re-projection is
// needed. Iteration stops when the relative Frobenius change of M over a sweep
// falls below ConvergenceThreshold, or after MaxIter sweeps with
// Result.Converged == false.
package itml
