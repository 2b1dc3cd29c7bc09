// SPDX-License-Identifier: MIT
package constraint

import "fmt"

// Quadruplet states that d(q[0], q[1]) should be smaller than d(q[2], q[3]).
type Quadruplet [4][]float64

// Close returns the pair expected to be closer, (q[0], q[1]).
func (q Quadruplet) Close() Pair { return Pair{A: q[0], B: q[1]} }

// Far returns the pair expected to be farther, (q[2], q[3]).
func (q Quadruplet) Far() Pair { return Pair{A: q[2], B: q[3]} }

// Swap returns the quadruplet with the two pairs exchanged (reversed polarity).
func (q Quadruplet) Swap() Quadruplet { return Quadruplet{q[2], q[3], q[0], q[1]} }

// QuadrupletSet is an immutable collection of quadruplets.
type QuadrupletSet struct {
	quads []Quadruplet
	dim   int
}

// NewQuadrupletSet validates tuples (each exactly four points of one shared dimension) and copies them.
// Errors: ErrArity, ErrDimension, ErrEmpty, ErrNonFinite.
func NewQuadrupletSet(tuples [][][]float64) (*QuadrupletSet, error) {
	s := &QuadrupletSet{quads: make([]Quadruplet, len(tuples))}
	dim := -1
	var err error
	for i, tup := range tuples {
		if len(tup) != 4 {
			return nil, fmt.Errorf("NewQuadrupletSet: tuple %d has %d points: %w", i, len(tup), ErrArity)
		}
		for k := 0; k < 4; k++ {
			if s.quads[i][k], dim, err = copyPoint(tup[k], dim, fmt.Sprintf("NewQuadrupletSet: tuple %d point %d", i, k)); err != nil {
				return nil, err
			}
		}
	}
	if dim > 0 {
		s.dim = dim
	}

	return s, nil
}

// NewEmptyQuadrupletSet returns an empty set with a known dimension.
func NewEmptyQuadrupletSet(dim int) (*QuadrupletSet, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("NewEmptyQuadrupletSet: dimension %d: %w", dim, ErrEmpty)
	}

	return &QuadrupletSet{dim: dim}, nil
}

// Len returns the number of quadruplets.
func (s *QuadrupletSet) Len() int { return len(s.quads) }

// Dim returns the feature dimension.
func (s *QuadrupletSet) Dim() int { return s.dim }

// At returns quadruplet i.
func (s *QuadrupletSet) At(i int) Quadruplet { return s.quads[i] }

// Quadruplets returns the quadruplets in input order (slice copied, points shared).
func (s *QuadrupletSet) Quadruplets() []Quadruplet {
	out := make([]Quadruplet, len(s.quads))
	copy(out, s.quads)

	return out
}

// Swapped returns a new set equal to s except that quadruplet i has its two pairs exchanged.
// Errors: ErrIndex.
func (s *QuadrupletSet) Swapped(i int) (*QuadrupletSet, error) {
	if i < 0 || i >= len(s.quads) {
		return nil, fmt.Errorf("Swapped(%d) of %d: %w", i, len(s.quads), ErrIndex)
	}
	out := &QuadrupletSet{quads: s.Quadruplets(), dim: s.dim}
	out.quads[i] = out.quads[i].Swap()

	return out, nil
}

// Points returns the distinct points of all quadruplets in first-seen order.
func (s *QuadrupletSet) Points() [][]float64 {
	u := newUniquePoints()
	for _, q := range s.quads {
		for k := 0; k < 4; k++ {
			u.add(q[k])
		}
	}

	return u.points
}
