// Package rng provides the single seeded PRNG that every stochastic
// engine decision draws from (spec §9 "RNG discipline"): spawn delay,
// attack/defense dice, damage rolls, and zone generation. One seed in,
// reproducible runs out.
package rng

import "math/rand/v2"

// Source wraps a seeded generator. It is not safe for concurrent use;
// the engine is single-threaded within a tick, so one Source is
// shared by all subsystems in call order.
type Source struct {
	r *rand.Rand
}

// New seeds a Source deterministically from seed.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntRange returns a uniform int in [min, max] inclusive.
func (s *Source) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.IntN(max-min+1)
}

// FloatRange returns a uniform float64 in [min, max).
func (s *Source) FloatRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

// Dice2d6 rolls two six-sided dice and returns their sum (2..12), the
// attack/defense roll of spec §4.9.
func (s *Source) Dice2d6() int {
	return s.IntRange(1, 6) + s.IntRange(1, 6)
}

// Bool returns true with probability p (0..1).
func (s *Source) Bool(p float64) bool {
	return s.r.Float64() < p
}

// Shuffle permutes a slice of length n in place using swap(i, j).
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}
