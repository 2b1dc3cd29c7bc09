// SPDX-License-Identifier: MIT
package constraint

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// pairAttempts bounds the resampling rounds when drawing distinct pairs.
const pairAttempts = 10

// Generator draws weak constraints from partially labeled data.
// A negative label marks a point whose class is unknown; such points never
// take part in a constraint.
type Generator struct {
	labels []int
	logger *zerolog.Logger
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithLogger routes shortfall warnings to l instead of the global zerolog logger.
func WithLogger(l *zerolog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator copies partialLabels (one class id per point, < 0 = unknown).
func NewGenerator(partialLabels []int, opts ...GeneratorOption) *Generator {
	g := &Generator{labels: make([]int, len(partialLabels))}
	copy(g.labels, partialLabels)
	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *Generator) log() *zerolog.Logger {
	if g.logger != nil {
		return g.logger
	}

	return &log.Logger
}

// known returns the indices of labeled points and their labels.
func (g *Generator) known() (idx, labels []int) {
	for i, l := range g.labels {
		if l >= 0 {
			idx = append(idx, i)
			labels = append(labels, l)
		}
	}

	return idx, labels
}

// PositiveNegativePairs draws n similar pairs (a[i], b[i]) with equal labels and
// n dissimilar pairs (c[i], d[i]) with different labels, as point indices.
//
// Behavior:
//   - Pairs are distinct ordered index pairs; identity pairs are never drawn.
//   - When the data cannot supply n distinct pairs after a bounded number of
//     resampling rounds, fewer are returned and a warning is logged.
//   - sameLength truncates both sides to the shorter count.
//   - seed 0 selects a fixed default seed; equal seeds give equal output.
//
// Errors: ErrEmpty when no point is labeled; an n ≤ 0 request is ErrLength.
func (g *Generator) PositiveNegativePairs(n int, sameLength bool, seed int64) (a, b, c, d []int, err error) {
	if n <= 0 {
		return nil, nil, nil, nil, fmt.Errorf("PositiveNegativePairs: n=%d: %w", n, ErrLength)
	}
	idx, labels := g.known()
	if len(idx) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("PositiveNegativePairs: no labeled points: %w", ErrEmpty)
	}
	rng := rngFromSeed(seed)
	a, b = g.pairs(idx, labels, n, true, rng)
	c, d = g.pairs(idx, labels, n, false, rng)
	if sameLength && len(a) != len(c) {
		m := min(len(a), len(c))
		a, b, c, d = a[:m], b[:m], c[:m], d[:m]
	}

	return a, b, c, d, nil
}

// pairs draws up to n distinct (i, j) label-index pairs with equal (same=true)
// or different labels, mapped back to point indices.
func (g *Generator) pairs(idx, labels []int, n int, same bool, rng interface{ Intn(int) int }) (left, right []int) {
	type key struct{ i, j int }
	seen := make(map[key]struct{}, n)
	order := make([]key, 0, n)
	candidates := make([]int, 0, len(labels))
	var round, k, ai, want int
	for round = 0; round < pairAttempts && len(order) < n; round++ {
		want = n - len(order)
		for k = 0; k < want; k++ {
			ai = rng.Intn(len(labels))
			candidates = candidates[:0]
			for bi, l := range labels {
				if same && (l != labels[ai] || bi == ai) {
					continue
				}
				if !same && l == labels[ai] {
					continue
				}
				candidates = append(candidates, bi)
			}
			if len(candidates) == 0 {
				continue
			}
			kk := key{ai, candidates[rng.Intn(len(candidates))]}
			if _, dup := seen[kk]; dup {
				continue
			}
			seen[kk] = struct{}{}
			order = append(order, kk)
		}
	}
	if len(order) < n {
		kind := "negative"
		if same {
			kind = "positive"
		}
		g.log().Warn().Int("generated", len(order)).Int("requested", n).Str("kind", kind).
			Msgf("Only generated %d %s constraints (requested %d)", len(order), kind, n)
	}
	left = make([]int, len(order))
	right = make([]int, len(order))
	for k = range order {
		left[k] = idx[order[k].i]
		right[k] = idx[order[k].j]
	}

	return left, right
}

// Chunks partitions labeled points into num chunklets of size points each,
// every chunklet drawn from a single class. The result assigns a chunk id in
// [0, num) to each point, or -1 for points left out.
//
// Errors: ErrChunks when the classes cannot supply num chunks of the given size;
// ErrLength for non-positive arguments.
func (g *Generator) Chunks(num, size int, seed int64) ([]int, error) {
	if num <= 0 || size <= 0 {
		return nil, fmt.Errorf("Chunks: num=%d size=%d: %w", num, size, ErrLength)
	}
	byClass := make(map[int][]int)
	for i, l := range g.labels {
		if l >= 0 {
			byClass[l] = append(byClass[l], i)
		}
	}
	classes := make([]int, 0, len(byClass))
	for l := range byClass {
		classes = append(classes, l)
	}
	sort.Ints(classes) // map order is random; fix it

	pools := make([][]int, 0, len(classes))
	maxChunks := 0
	for _, l := range classes {
		pools = append(pools, byClass[l])
		maxChunks += len(byClass[l]) / size
	}
	if maxChunks < num {
		return nil, fmt.Errorf("Not enough possible chunks of %d elements in each class to form expected %d chunks - maximum number of chunks is %d: %w",
			size, num, maxChunks, ErrChunks)
	}

	out := make([]int, len(g.labels))
	for i := range out {
		out[i] = -1
	}
	rng := rngFromSeed(seed)
	var c int
	for id := 0; id < num && len(pools) > 0; {
		c = rng.Intn(len(pools))
		if len(pools[c]) < size {
			pools = append(pools[:c], pools[c+1:]...)
			continue
		}
		picked := sampleWithoutReplacement(rng, pools[c], size)
		taken := make(map[int]struct{}, size)
		for _, p := range picked {
			out[p] = id
			taken[p] = struct{}{}
		}
		rest := pools[c][:0:0]
		for _, p := range pools[c] {
			if _, ok := taken[p]; !ok {
				rest = append(rest, p)
			}
		}
		pools[c] = rest
		id++
	}

	return out, nil
}
