// Package constraint turns raw tuples and labels into the weak-supervision
// sets consumed by the solvers.
//
//   - PairSet: pairs of points labeled Similar (+1) or Dissimilar (−1); the
//     similar set S and dissimilar set D are derived views, never stored twice.
//   - QuadrupletSet: ordered 4-tuples (a, b, c, d) stating that a,b should be
//     closer than c,d. Polarity is the ordering itself.
//   - WrapPairs / QuadrupletsFromIndices: build the sets from a point matrix
//     and index lists.
//   - Generator: draws similar/dissimilar index pairs and chunklets from
//     partially labeled data with a deterministic seed.
//
// Points are copied on construction and never mutated afterwards; sets are
// safe for concurrent reads.
package constraint
