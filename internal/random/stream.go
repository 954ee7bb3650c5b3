// Package random provides the seeded pseudo-random streams that drive
// particle division.
//
// A [Stream] is a single sequential source and must not be shared between
// goroutines. A [Partition] derives an independent stream per (step, index)
// pair so that parallel division stays reproducible whatever the order in
// which particles are processed.
package random

import (
	"math/rand/v2"

	"github.com/bft-labs/weathering/internal/domain"
)

// Stream is a seeded PCG source. Not safe for concurrent use.
type Stream struct {
	seed uint64
	rng  *rand.Rand
}

// NewStream creates a stream seeded with seed.
func NewStream(seed uint64) *Stream {
	return &Stream{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, mix(seed))),
	}
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() uint64 {
	return s.seed
}

// ChooseAxis draws an axis uniformly from {1, 2, 3}.
func (s *Stream) ChooseAxis() domain.Axis {
	return domain.Axis(s.rng.IntN(3) + 1)
}

// Sample returns k distinct indices drawn uniformly from [0, n), in draw
// order. k is clamped to n.
func (s *Stream) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	// partial Fisher-Yates over a sparse permutation
	swapped := make(map[int]int, k)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}

	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(n-i)
		out[i] = at(j)
		swapped[j] = at(i)
	}
	return out
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
