// SPDX-License-Identifier: MIT
package constraint

import (
	"fmt"
	"math"
)

// copyPoint validates p against dim (dim < 0 adopts len(p)) and returns a copy.
func copyPoint(p []float64, dim int, where string) ([]float64, int, error) {
	if len(p) == 0 {
		return nil, dim, fmt.Errorf("%s: %w", where, ErrEmpty)
	}
	if dim >= 0 && len(p) != dim {
		return nil, dim, fmt.Errorf("%s: got %d features, want %d: %w", where, len(p), dim, ErrDimension)
	}
	for j, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, dim, fmt.Errorf("%s[%d]: %w", where, j, ErrNonFinite)
		}
	}
	out := make([]float64, len(p))
	copy(out, p)

	return out, len(p), nil
}

// pointKey is an exact-equality key for deduplicating points.
func pointKey(p []float64) string {
	buf := make([]byte, 0, 8*len(p))
	var bits uint64
	for _, v := range p {
		if v == 0 {
			v = 0 // fold -0 into +0
		}
		bits = math.Float64bits(v)
		buf = append(buf,
			byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24),
			byte(bits>>32), byte(bits>>40), byte(bits>>48), byte(bits>>56))
	}

	return string(buf)
}

// uniquePoints deduplicates points by exact coordinates in first-seen order.
type uniquePoints struct {
	points [][]float64
	index  map[string]int
}

func newUniquePoints() *uniquePoints {
	return &uniquePoints{index: make(map[string]int)}
}

// add returns the index of p, inserting it on first sight.
func (u *uniquePoints) add(p []float64) int {
	k := pointKey(p)
	if i, ok := u.index[k]; ok {
		return i
	}
	u.index[k] = len(u.points)
	u.points = append(u.points, p)

	return len(u.points) - 1
}
