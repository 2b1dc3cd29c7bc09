// Package metric evaluates a learned Mahalanobis matrix M on new data.
//
// A Metric is built once from a symmetric PSD matrix and is read-only
// afterwards, so one value may serve concurrent scorers.
//
//	d_M(x, y) = (x−y)ᵀ M (x−y)          // Distance, squared form
//	score     = sqrt(d_M(x, y))           // Score, a true metric
//	x ↦ L·x  with M = LᵀL                // Transform
//
// Pair and quadruplet helpers mirror the constraint vocabulary: PairScores
// and PairPredict work on a constraint.PairSet, QuadrupletDecision,
// QuadrupletPredict and QuadrupletAccuracy on a constraint.QuadrupletSet.
package metric
