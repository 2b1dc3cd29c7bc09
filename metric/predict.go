// SPDX-License-Identifier: MIT
package metric

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvmetric/constraint"
)

// pairDistances returns d_M for every pair of s in input order.
func (mt *Metric) pairDistances(s *constraint.PairSet) ([]float64, error) {
	out := make([]float64, s.Len())
	var err error
	for i := 0; i < s.Len(); i++ {
		p := s.Pair(i)
		if out[i], err = mt.Distance(p.A, p.B); err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
	}

	return out, nil
}

// PairScores returns −d_M per pair: higher means more similar.
func (mt *Metric) PairScores(s *constraint.PairSet) ([]float64, error) {
	d, err := mt.pairDistances(s)
	if err != nil {
		return nil, err
	}
	for i := range d {
		d[i] = -d[i]
	}

	return d, nil
}

// PairPredict labels a pair Similar when d_M ≤ threshold and Dissimilar otherwise.
func (mt *Metric) PairPredict(s *constraint.PairSet, threshold float64) ([]constraint.Label, error) {
	d, err := mt.pairDistances(s)
	if err != nil {
		return nil, err
	}
	out := make([]constraint.Label, len(d))
	for i, v := range d {
		if v <= threshold {
			out[i] = constraint.Similar
		} else {
			out[i] = constraint.Dissimilar
		}
	}

	return out, nil
}

// CalibrateThreshold picks the PairPredict threshold with the highest accuracy
// on the labeled set s. Candidates are the midpoints between consecutive
// sorted distances plus one value below the smallest; the first best wins.
//
// Errors: ErrEmpty for an empty set.
func (mt *Metric) CalibrateThreshold(s *constraint.PairSet) (float64, error) {
	if s.Len() == 0 {
		return 0, fmt.Errorf("CalibrateThreshold: %w", ErrEmpty)
	}
	d, err := mt.pairDistances(s)
	if err != nil {
		return 0, err
	}
	order := make([]int, len(d))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return d[order[a]] < d[order[b]] })

	// Start with every pair predicted dissimilar; moving the threshold past
	// sorted distance k flips pair order[k] to similar.
	correct := 0
	for i := range d {
		if s.Label(i) == constraint.Dissimilar {
			correct++
		}
	}
	best, bestCorrect := d[order[0]]-1, correct
	var k int
	for k = 0; k < len(order); k++ {
		if s.Label(order[k]) == constraint.Similar {
			correct++
		} else {
			correct--
		}
		if k+1 < len(order) && d[order[k+1]] == d[order[k]] {
			continue // ties move together
		}
		if correct > bestCorrect {
			bestCorrect = correct
			if k+1 < len(order) {
				best = 0.5 * (d[order[k]] + d[order[k+1]])
			} else {
				best = d[order[k]]
			}
		}
	}

	return best, nil
}

// QuadrupletDecision returns d_M(q2, q3) − d_M(q0, q1) per quadruplet:
// positive when the first pair is the closer one.
func (mt *Metric) QuadrupletDecision(s *constraint.QuadrupletSet) ([]float64, error) {
	out := make([]float64, s.Len())
	var near, far float64
	var err error
	for i := 0; i < s.Len(); i++ {
		q := s.At(i)
		if near, err = mt.Distance(q[0], q[1]); err != nil {
			return nil, fmt.Errorf("quadruplet %d: %w", i, err)
		}
		if far, err = mt.Distance(q[2], q[3]); err != nil {
			return nil, fmt.Errorf("quadruplet %d: %w", i, err)
		}
		out[i] = far - near
	}

	return out, nil
}

// QuadrupletPredict returns +1 where the decision is positive and −1 otherwise (ties included).
func (mt *Metric) QuadrupletPredict(s *constraint.QuadrupletSet) ([]int, error) {
	dec, err := mt.QuadrupletDecision(s)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(dec))
	for i, v := range dec {
		if v > 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}

	return out, nil
}

// QuadrupletAccuracy returns the fraction of quadruplets whose ordering the metric respects.
// Errors: ErrEmpty for an empty set.
func (mt *Metric) QuadrupletAccuracy(s *constraint.QuadrupletSet) (float64, error) {
	if s.Len() == 0 {
		return 0, fmt.Errorf("QuadrupletAccuracy: %w", ErrEmpty)
	}
	pred, err := mt.QuadrupletPredict(s)
	if err != nil {
		return 0, err
	}
	var ok int
	for _, p := range pred {
		if p > 0 {
			ok++
		}
	}

	return float64(ok) / float64(len(pred)), nil
}
