// SPDX-License-Identifier: MIT
package sdml

import (
	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/matrix"
)

// Incidence returns the distinct points of s (as rows of X) and the signed
// incidence matrix K over them: K_ab = K_ba accumulates the label of every
// pair (a, b). Pairs whose two points coincide contribute nothing.
func Incidence(s *constraint.PairSet) (*matrix.Dense, *matrix.Dense, error) {
	points, a, b := s.Index()
	x, err := matrix.NewFromRows(points)
	if err != nil {
		return nil, nil, err
	}
	n := len(points)
	k, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, err
	}
	var v float64
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		y := float64(s.Label(i))
		v, _ = k.At(a[i], b[i])
		_ = k.Set(a[i], b[i], v+y)
		_ = k.Set(b[i], a[i], v+y)
	}

	return x, k, nil
}

// Laplacian returns L = D − K, D the diagonal of row sums of K.
func Laplacian(k *matrix.Dense) (*matrix.Dense, error) {
	n := k.Rows()
	l, err := matrix.Scale(k, -1)
	if err != nil {
		return nil, err
	}
	var i, j int
	var sum, v float64
	for i = 0; i < n; i++ {
		sum = 0
		for j = 0; j < n; j++ {
			v, _ = k.At(i, j)
			sum += v
		}
		v, _ = l.At(i, i)
		_ = l.Set(i, i, v+sum)
	}

	return l, nil
}

// LossMatrix returns XᵀLX, which equals Σ_pairs y·(a−b)(a−b)ᵀ.
func LossMatrix(s *constraint.PairSet) (*matrix.Dense, error) {
	x, k, err := Incidence(s)
	if err != nil {
		return nil, err
	}
	l, err := Laplacian(k)
	if err != nil {
		return nil, err
	}
	lx, err := matrix.Mul(l, x)
	if err != nil {
		return nil, err
	}
	xt, err := matrix.Transpose(x)
	if err != nil {
		return nil, err
	}
	out, err := matrix.Mul(xt, lx)
	if err != nil {
		return nil, err
	}

	return matrix.Symmetrize(out)
}
