// SPDX-License-Identifier: MIT
package itml

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvmetric/constraint"
)

const (
	lowerPercentile = 0.05
	upperPercentile = 0.95

	// zeroBound replaces a bound of exactly zero, which would make 1/b undefined.
	zeroBound = 1e-9
)

// DefaultBounds returns (u, l) as the 5th and 95th percentiles of the squared
// Euclidean distances over all distinct pairs of the distinct points in s.
// Zero results are replaced by 1e-9.
func DefaultBounds(s *constraint.PairSet) [2]float64 {
	points, _, _ := s.Index()
	n := len(points)
	dists := make([]float64, 0, n*(n-1)/2)
	var i, j int
	var d float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = floats.Distance(points[i], points[j], 2)
			dists = append(dists, d*d)
		}
	}
	if len(dists) == 0 {
		return [2]float64{zeroBound, zeroBound}
	}
	sort.Float64s(dists)

	return [2]float64{
		nonZero(stat.Quantile(lowerPercentile, stat.LinInterp, dists, nil)),
		nonZero(stat.Quantile(upperPercentile, stat.LinInterp, dists, nil)),
	}
}

func nonZero(b float64) float64 {
	if b == 0 {
		return zeroBound
	}

	return b
}
