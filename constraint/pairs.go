// SPDX-License-Identifier: MIT
package constraint

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Label marks a pair as similar or dissimilar.
type Label int

const (
	// Dissimilar pairs should end up far apart (lower-bound constraints).
	Dissimilar Label = -1

	// Similar pairs should end up close (upper-bound constraints).
	Similar Label = 1
)

// String returns "similar" or "dissimilar".
func (l Label) String() string {
	switch l {
	case Similar:
		return "similar"
	case Dissimilar:
		return "dissimilar"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// ParseLabel accepts +1 and -1.
func ParseLabel(v int) (Label, error) {
	switch Label(v) {
	case Similar, Dissimilar:
		return Label(v), nil
	default:
		return 0, fmt.Errorf("label %d: %w", v, ErrLabel)
	}
}

// Pair is two points of equal dimension. The slices are owned by the set
// that produced the pair and must be treated as read-only.
type Pair struct {
	A, B []float64
}

// Diff returns A − B in a fresh slice.
func (p Pair) Diff() []float64 {
	out := make([]float64, len(p.A))
	floats.SubTo(out, p.A, p.B)

	return out
}

// PairSet is an immutable, labeled collection of pairs.
type PairSet struct {
	pairs  []Pair
	labels []Label
	dim    int
}

// NewPairSet validates tuples (each exactly two points of one shared
// dimension) and labels (+1 / -1, one per tuple) and copies them.
//
// Errors: ErrLength, ErrArity, ErrLabel, ErrDimension, ErrEmpty, ErrNonFinite.
// An empty input yields an empty set of dimension 0; see NewEmptyPairSet.
func NewPairSet(tuples [][][]float64, labels []int) (*PairSet, error) {
	if len(tuples) != len(labels) {
		return nil, fmt.Errorf("NewPairSet: %d tuples, %d labels: %w", len(tuples), len(labels), ErrLength)
	}
	s := &PairSet{
		pairs:  make([]Pair, len(tuples)),
		labels: make([]Label, len(tuples)),
	}
	dim := -1
	var err error
	for i, tup := range tuples {
		if len(tup) != 2 {
			return nil, fmt.Errorf("NewPairSet: tuple %d has %d points: %w", i, len(tup), ErrArity)
		}
		if s.labels[i], err = ParseLabel(labels[i]); err != nil {
			return nil, fmt.Errorf("NewPairSet: tuple %d: %w", i, err)
		}
		if s.pairs[i].A, dim, err = copyPoint(tup[0], dim, fmt.Sprintf("NewPairSet: tuple %d point 0", i)); err != nil {
			return nil, err
		}
		if s.pairs[i].B, dim, err = copyPoint(tup[1], dim, fmt.Sprintf("NewPairSet: tuple %d point 1", i)); err != nil {
			return nil, err
		}
	}
	if dim > 0 {
		s.dim = dim
	}

	return s, nil
}

// NewEmptyPairSet returns a set with no pairs but a known dimension, so that
// solvers can still size their default prior.
func NewEmptyPairSet(dim int) (*PairSet, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("NewEmptyPairSet: dimension %d: %w", dim, ErrEmpty)
	}

	return &PairSet{dim: dim}, nil
}

// Len returns the number of pairs.
func (s *PairSet) Len() int { return len(s.pairs) }

// Dim returns the feature dimension (0 for an empty set built by NewPairSet).
func (s *PairSet) Dim() int { return s.dim }

// Pair returns pair i.
func (s *PairSet) Pair(i int) Pair { return s.pairs[i] }

// Label returns the label of pair i.
func (s *PairSet) Label(i int) Label { return s.labels[i] }

// Pairs returns the pairs in input order. The slice is a copy; the points are shared.
func (s *PairSet) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)

	return out
}

// Labels returns a copy of the labels in input order.
func (s *PairSet) Labels() []Label {
	out := make([]Label, len(s.labels))
	copy(out, s.labels)

	return out
}

// filter returns the pairs carrying label l, in input order.
func (s *PairSet) filter(l Label) []Pair {
	var out []Pair
	for i, lab := range s.labels {
		if lab == l {
			out = append(out, s.pairs[i])
		}
	}

	return out
}

// Similar returns the similar pairs S.
func (s *PairSet) Similar() []Pair { return s.filter(Similar) }

// Dissimilar returns the dissimilar pairs D.
func (s *PairSet) Dissimilar() []Pair { return s.filter(Dissimilar) }

// Count returns |S| and |D|.
func (s *PairSet) Count() (similar, dissimilar int) {
	for _, lab := range s.labels {
		if lab == Similar {
			similar++
		} else {
			dissimilar++
		}
	}

	return similar, dissimilar
}

// Differences returns a−b for every pair in input order.
func (s *PairSet) Differences() [][]float64 {
	out := make([][]float64, len(s.pairs))
	for i, p := range s.pairs {
		out[i] = p.Diff()
	}

	return out
}

// DifferencesOf returns a−b for the pairs labeled l.
func (s *PairSet) DifferencesOf(l Label) [][]float64 {
	var out [][]float64
	for i, p := range s.pairs {
		if s.labels[i] == l {
			out = append(out, p.Diff())
		}
	}

	return out
}

// Index deduplicates the points of all pairs (exact coordinate match, first-seen
// order) and returns them with per-pair indices: pair i is (points[a[i]], points[b[i]]).
func (s *PairSet) Index() (points [][]float64, a, b []int) {
	u := newUniquePoints()
	a = make([]int, len(s.pairs))
	b = make([]int, len(s.pairs))
	for i, p := range s.pairs {
		a[i] = u.add(p.A)
		b[i] = u.add(p.B)
	}

	return u.points, a, b
}

// Collapsed counts pairs with ‖a−b‖ ≤ tol (the two points coincide).
func (s *PairSet) Collapsed(tol float64) int {
	var n int
	for _, p := range s.pairs {
		if floats.Distance(p.A, p.B, 2) <= tol {
			n++
		}
	}

	return n
}

// ValidateNotCollapsed returns ErrCollapsed when any pair has ‖a−b‖ ≤ tol.
func (s *PairSet) ValidateNotCollapsed(tol float64) error {
	if n := s.Collapsed(tol); n > 0 {
		return fmt.Errorf("%d of %d pairs: %w", n, s.Len(), ErrCollapsed)
	}

	return nil
}
