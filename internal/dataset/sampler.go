package dataset

import (
	"math/rand"
)

// Sampler draws batch indices uniformly with replacement. Every call is an
// independent draw; nothing is tracked across calls.
type Sampler struct {
	n   int
	rng *rand.Rand
}

// NewSampler returns a sampler over [0, n) seeded with seed.
func NewSampler(n int, seed int64) *Sampler {
	//nolint:gosec // sampling is not security-critical
	return &Sampler{n: n, rng: rand.New(rand.NewSource(seed))}
}

// Indices returns k indices in [0, n).
func (s *Sampler) Indices(k int) []int {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = s.rng.Intn(s.n)
	}
	return idx
}

// Len returns the population size.
func (s *Sampler) Len() int {
	return s.n
}
