// Package lvmetric learns Mahalanobis distances from weak supervision.
//
// Instead of class labels, the learners see side information: pairs of
// points marked similar or dissimilar, or quadruplets stating that one pair
// is closer than another. Each produces a positive semi-definite matrix M,
// and the learned distance is d_M(x, y) = (x−y)ᵀ M (x−y).
//
// What is inside?
//
//	matrix/     — dense float64 kernels, Jacobi eigen, LU, gonum-backed Cholesky, PSD projection
//	constraint/ — PairSet, QuadrupletSet, indexed point stores, pair/chunk generators
//	solver/     — shared Result, error taxonomy, prior handling, zerolog run tracing
//	itml/       — Information-Theoretic Metric Learning (Bregman projections)
//	sdml/       — Sparse Determinant Metric Learning (graphical lasso)
//	mmc/        — Mahalanobis Metric for Clustering (full and diagonal)
//	lsml/       — Least Squared-residual Metric Learning (quadruplets)
//	covariance/ — inverse-covariance baseline
//	metric/     — frozen Metric: distances, transform, pair and quadruplet prediction
//	config/     — YAML options for every solver
//	telemetry/  — Prometheus collector for fit outcomes
//	learn/      — one entry point that routes an input to a solver
//
// Quick example:
//
//	pairs, _ := constraint.NewPairSet([][][]float64{
//		{{0, 0}, {0.1, 1}},
//		{{0, 0}, {1, 0.1}},
//	}, []int{1, -1})
//	model, err := learn.Fit(learn.ITML, learn.Input{Pairs: pairs}, nil, config.Default())
//	if err != nil {
//		// errors.Is(err, solver.ErrConfiguration) or solver.ErrNumerical
//	}
//	d, _ := model.Metric.Distance(x, y)
//
// Fits are deterministic: the same input and options give bit-identical
// matrices. Options and priors are read-only, so independent fits may run
// concurrently.
//
//	go get github.com/katalvlaran/lvmetric
package lvmetric
