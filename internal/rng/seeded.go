package rng

import "math/rand"

// Seeded is a deterministic Generator for tests.
// Never use it to shuffle a deck that players bet on.
type Seeded struct {
	r *rand.Rand
}

// NewSeeded returns a Generator seeded with the given value
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.r.Intn(n)
}
