// Package dice provides the randomness primitives shared by the game engines.
//
// # Determinism
//
// Every function takes an explicit RNG so outcomes are reproducible: given the
// same seed and the same call sequence, results are identical. Production code
// seeds a *rand.Rand from crypto entropy; tests substitute fixed sources.
package dice

import "math/rand"

// RNG is the uniform random source consumed by the engines.
// *rand.Rand satisfies it.
type RNG interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// New returns a seeded RNG backed by math/rand.
func New(seed int64) RNG {
	return rand.New(rand.NewSource(seed))
}

// Roll rolls a single die with the provided number of sides.
func Roll(rng RNG, sides int) int {
	return rng.Intn(sides) + 1
}

// Uniform returns a uniform value in [lo, hi).
func Uniform(rng RNG, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Chance reports whether an event with probability p occurred.
func Chance(rng RNG, p float64) bool {
	return rng.Float64() < p
}
