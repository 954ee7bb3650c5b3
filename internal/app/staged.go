package app

import (
	"context"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/ports"
)

// growthTier maps a population ceiling to the number of particles that
// divide in one step while the population is at or below it.
type growthTier struct {
	ceiling int
	divide  int
}

var growthSchedule = []growthTier{
	{10, 1},
	{20, 10},
	{50, 20},
	{100, 50},
	{200, 100},
	{300, 200},
	{1000, 300},
}

// maxGrowth applies once the population exceeds the last tier.
const maxGrowth = 1000

// Growth returns how many particles of a population of size existing
// divide in the next step. It never exceeds existing for existing >= 1.
func Growth(existing int) int {
	for _, t := range growthSchedule {
		if existing <= t.ceiling {
			return t.divide
		}
	}
	return maxGrowth
}

// StagedDivider divides only a sample of the generation each step, all
// along the same axis. The sample size follows Growth, so the population
// grows roughly linearly instead of doubling. Particles that are not
// sampled carry over unchanged.
type StagedDivider struct {
	sampler ports.Sampler
}

// NewStagedDivider creates a staged-growth divider.
func NewStagedDivider(sampler ports.Sampler) *StagedDivider {
	return &StagedDivider{sampler: sampler}
}

// Divide replaces Growth(len(gen)) sampled particles with their halves.
func (d *StagedDivider) Divide(ctx context.Context, step int, gen domain.Generation) (domain.Generation, error) {
	if gen.Empty() {
		return nil, nil
	}

	picked := d.sampler.Sample(len(gen), Growth(len(gen)))
	axis := d.sampler.ChooseAxis()

	chosen := make([]bool, len(gen))
	for _, i := range picked {
		chosen[i] = true
	}

	next := make(domain.Generation, 0, len(gen)+len(picked))
	for i, p := range gen {
		if !chosen[i] {
			next = append(next, p)
		}
	}
	for _, i := range picked {
		first, second, err := gen[i].DivideAlong(axis)
		if err != nil {
			return nil, err
		}
		next = append(next, first, second)
	}
	return next, nil
}
