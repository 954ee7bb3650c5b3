package app

import (
	"fmt"

	"github.com/bft-labs/weathering/internal/domain"
)

// Characterize computes the aggregate statistics of a generation.
// Particle volumes within a generation differ between lineages, so the
// mean is always taken over the full sum. Returns ErrDegenerateProfile for
// an empty generation.
func Characterize(gen domain.Generation) (domain.Profile, error) {
	if gen.Empty() {
		return domain.Profile{}, fmt.Errorf("%w: empty generation", domain.ErrDegenerateProfile)
	}

	var area, volume, mass float64
	for _, p := range gen {
		area += p.SurfaceArea()
		volume += p.Volume()
		mass += p.Mass()
	}

	n := float64(len(gen))
	return domain.Profile{
		Count:               len(gen),
		SpecificSurfaceArea: area,
		TotalVolume:         volume,
		MeanVolume:          volume / n,
		MeanMass:            mass / n,
	}, nil
}
