package engine

import "math/rand"

// RNG is the source of randomness used for generation and shuffling.
// *math/rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// NewRNG returns a deterministic RNG for seed.
func NewRNG(seed int64) RNG {
	return rand.New(rand.NewSource(seed))
}

// shuffle performs a Fisher-Yates shuffle of s in place.
func shuffle[T any](rng RNG, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
