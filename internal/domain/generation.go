package domain

// Generation is the soil profile at one time step: every particle that
// exists after that step's division pass. Order carries no meaning.
type Generation []Particle

// Len returns the number of particles in the generation.
func (g Generation) Len() int {
	return len(g)
}

// Empty returns true if the generation has no particles.
func (g Generation) Empty() bool {
	return len(g) == 0
}

// Profile holds the aggregate statistics of one generation.
type Profile struct {
	// Count is the number of particles
	Count int

	// SpecificSurfaceArea is the total surface area of all particles.
	// It is a plain sum, not normalized per unit mass or volume.
	SpecificSurfaceArea float64

	// TotalVolume is the sum of all particle volumes
	TotalVolume float64

	// MeanVolume is TotalVolume / Count
	MeanVolume float64

	// MeanMass is the arithmetic mean of all particle masses
	MeanMass float64
}
