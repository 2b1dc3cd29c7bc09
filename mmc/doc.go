// Package mmc implements Mahalanobis Metric for Clustering.
//
// MMC maximizes the spread of dissimilar pairs while keeping similar pairs
// tight:
//
//	max g(A) = log Σ_D sqrt(vᵀAv)   s.t.   Σ_S vᵀAv ≤ t,   A ⪰ 0.
//
// The full variant alternates projections onto the half-space and the PSD
// cone, then takes a gradient step of g projected orthogonally to the
// similar-pair constraint gradient, adapting the step size. The diagonal
// variant runs a damped Newton method on the weights of a diagonal A.
//
// The model assumes each class forms one compact cluster; multimodal classes
// are not modeled well. This is not checked.
package mmc
