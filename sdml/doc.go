// Package sdml implements Sparse Determinant Metric Learning.
//
// SDML builds a covariance-like target from the prior and the pair Laplacian
//
//	Σ = M0⁻¹ + η·XᵀLX,   L = D − K,   K_ab = K_ba = ±1 per pair,
//
// and estimates a sparse precision matrix M minimizing
//
//	tr(Σ·M) − logdet(M) + λ‖M‖₁,off
//
// with a graphical-lasso coordinate descent. Σ need not be PSD when η is
// large; the Policy field decides what happens then and when the estimate
// comes out indefinite.
package sdml
