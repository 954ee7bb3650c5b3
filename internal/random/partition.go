package random

import "math/rand/v2"

// Partition hands out independent streams keyed by a stable (step, index)
// pair. Streams obtained from a Partition may be used from different
// goroutines as long as each one stays on a single goroutine.
type Partition struct {
	seed uint64
}

// NewPartition creates a partition rooted at seed.
func NewPartition(seed uint64) *Partition {
	return &Partition{seed: seed}
}

// Seed returns the root seed.
func (p *Partition) Seed() uint64 {
	return p.seed
}

// Stream returns the sub-stream for particle index within step.
// The same (seed, step, index) always yields the same sequence.
func (p *Partition) Stream(step, index int) *Stream {
	hi := mix(p.seed ^ mix(uint64(step)))
	lo := mix(hi ^ uint64(index))
	return &Stream{
		seed: p.seed,
		rng:  rand.New(rand.NewPCG(hi, lo)),
	}
}
