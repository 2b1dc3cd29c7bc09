// SPDX-License-Identifier: MIT
package constraint

import "fmt"

// lookup fetches row i of x with bounds checking.
func lookup(x [][]float64, i int) ([]float64, error) {
	if i < 0 || i >= len(x) {
		return nil, fmt.Errorf("point %d of %d: %w", i, len(x), ErrIndex)
	}

	return x[i], nil
}

// WrapPairs builds a labeled PairSet from a point matrix x and index lists:
// (x[a[i]], x[b[i]]) become similar pairs, followed by (x[c[j]], x[d[j]]) as
// dissimilar pairs.
//
// Errors: ErrLength (len(a) != len(b) or len(c) != len(d)), ErrIndex, and the
// NewPairSet validation errors.
func WrapPairs(x [][]float64, a, b, c, d []int) (*PairSet, error) {
	if len(a) != len(b) || len(c) != len(d) {
		return nil, fmt.Errorf("WrapPairs: |a|=%d |b|=%d |c|=%d |d|=%d: %w", len(a), len(b), len(c), len(d), ErrLength)
	}
	n := len(a) + len(c)
	tuples := make([][][]float64, 0, n)
	labels := make([]int, 0, n)
	add := func(l Label, i, j int) error {
		p, err := lookup(x, i)
		if err != nil {
			return fmt.Errorf("WrapPairs: %w", err)
		}
		q, err := lookup(x, j)
		if err != nil {
			return fmt.Errorf("WrapPairs: %w", err)
		}
		tuples = append(tuples, [][]float64{p, q})
		labels = append(labels, int(l))

		return nil
	}
	for k := range a {
		if err := add(Similar, a[k], b[k]); err != nil {
			return nil, err
		}
	}
	for k := range c {
		if err := add(Dissimilar, c[k], d[k]); err != nil {
			return nil, err
		}
	}
	if n == 0 && len(x) > 0 {
		return NewEmptyPairSet(len(x[0]))
	}

	return NewPairSet(tuples, labels)
}

// QuadrupletsFromIndices builds a QuadrupletSet from a point matrix and index 4-tuples.
// Errors: ErrIndex and the NewQuadrupletSet validation errors.
func QuadrupletsFromIndices(x [][]float64, idx [][4]int) (*QuadrupletSet, error) {
	tuples := make([][][]float64, len(idx))
	for i, q := range idx {
		tuples[i] = make([][]float64, 4)
		for k := 0; k < 4; k++ {
			p, err := lookup(x, q[k])
			if err != nil {
				return nil, fmt.Errorf("QuadrupletsFromIndices: tuple %d: %w", i, err)
			}
			tuples[i][k] = p
		}
	}
	if len(idx) == 0 && len(x) > 0 {
		return NewEmptyQuadrupletSet(len(x[0]))
	}

	return NewQuadrupletSet(tuples)
}
