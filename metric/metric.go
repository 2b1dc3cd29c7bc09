// SPDX-License-Identifier: MIT
package metric

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/solver"
)

const (
	opNew         = "metric.New"
	opMahalanobis = "Mahalanobis"
	opTransform   = "Transform"
)

// Mahalanobis returns (x−y)ᵀ·m·(x−y).
//
// Errors: ErrDimension (len(x) != len(y)); matrix validation errors wrapped
// as solver.ErrConfiguration.
func Mahalanobis(x, y []float64, m matrix.Matrix) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%s: |x|=%d |y|=%d: %w", opMahalanobis, len(x), len(y), ErrDimension)
	}
	v := make([]float64, len(x))
	floats.SubTo(v, x, y)
	d, err := matrix.QuadForm(m, v)
	if err != nil {
		return 0, solver.Classify(opMahalanobis, err)
	}

	return d, nil
}

// Metric is a frozen learned metric: the matrix M and a factor L with M = LᵀL.
type Metric struct {
	m   *matrix.Dense
	l   *matrix.Dense
	dim int
}

// New validates m (square, finite, symmetric, PSD within tolerance), copies it
// and precomputes its factor.
//
// Errors: solver.ErrConfiguration wrapping the matrix sentinel that failed.
func New(m matrix.Matrix) (*Metric, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, solver.Config(opNew, err)
	}
	rows, err := matrix.ToRows(m)
	if err != nil {
		return nil, solver.Config(opNew, err)
	}
	own, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, solver.Config(opNew, err)
	}
	if err = matrix.ValidatePSD(own); err != nil {
		return nil, solver.Config(opNew, err)
	}
	sym, err := matrix.Symmetrize(own)
	if err != nil {
		return nil, solver.Config(opNew, err)
	}
	l, err := matrix.FactorPSD(sym)
	if err != nil {
		return nil, solver.Config(opNew, err)
	}

	return &Metric{m: sym, l: l, dim: sym.Rows()}, nil
}

// Dim returns the feature dimension.
func (mt *Metric) Dim() int { return mt.dim }

// Matrix returns a copy of M.
func (mt *Metric) Matrix() *matrix.Dense { return matrix.CloneDense(mt.m) }

// Factor returns a copy of L (M = LᵀL).
func (mt *Metric) Factor() *matrix.Dense { return matrix.CloneDense(mt.l) }

func (mt *Metric) check(p []float64, where string) error {
	if len(p) != mt.dim {
		return fmt.Errorf("%s: got %d features, want %d: %w", where, len(p), mt.dim, ErrDimension)
	}

	return nil
}

// Distance returns the squared form d_M(x, y).
func (mt *Metric) Distance(x, y []float64) (float64, error) {
	if err := mt.check(x, "Distance"); err != nil {
		return 0, err
	}
	if err := mt.check(y, "Distance"); err != nil {
		return 0, err
	}
	v := make([]float64, mt.dim)
	floats.SubTo(v, x, y)
	d, err := matrix.QuadForm(mt.m, v)
	if err != nil {
		return 0, solver.Classify("Distance", err)
	}

	return math.Max(0, d), nil
}

// Score returns sqrt(d_M(x, y)).
func (mt *Metric) Score(x, y []float64) (float64, error) {
	d, err := mt.Distance(x, y)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(d), nil
}

// Transform maps every row x of X to L·x.
func (mt *Metric) Transform(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	var err error
	for i, row := range x {
		if err = mt.check(row, opTransform); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if out[i], err = matrix.MatVec(mt.l, row); err != nil {
			return nil, solver.Classify(opTransform, err)
		}
	}

	return out, nil
}
