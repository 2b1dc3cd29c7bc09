// Package matrix offers the dense linear-algebra primitives behind the metric
// learners.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors and a
//     NaN/Inf ingestion policy.
//   - Kernels (Add, Sub, Mul, Transpose, Scale, MatVec, Symmetrize, Dot,
//     QuadForm, AddOuter) that never mutate their operands, except the
//     explicitly in-place AddOuter.
//   - Decompositions: Jacobi Eigen/EigenSym, Doolittle LU and Inverse, and a
//     gonum-backed Cholesky toolkit (LogDet, InverseSPD, LogDetDivergence).
//   - PSD tools: ProjectPSD, MinEigenvalue, ValidatePSD, FactorPSD.
//   - Column statistics: CenterColumns, Covariance.
//
// Every failure is reported through the sentinels in errors.go, wrapped with
// the operation name ("Eigen: matrix: ..."), so callers match with errors.Is.
//
// Problem sizes are feature dimensions (tens to low hundreds), so all kernels
// are plain O(n^3) loops over flat slices.
package matrix
