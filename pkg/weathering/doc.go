// Package weathering provides an embeddable simulator of physical
// weathering: a rectangular-prism parent material is repeatedly bisected
// into smaller particles, and the total surface area and mean particle
// volume of every generation are recorded as a time series.
//
// # Basic Usage
//
//	cfg := weathering.Config{
//	    Side1:   2,
//	    Side2:   2,
//	    Side3:   2,
//	    Density: 1,
//	    Steps:   10,
//	    Seed:    42,
//	}
//
//	sim, err := weathering.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	series, err := sim.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range series.Rows() {
//	    fmt.Println(row.TimeStep, row.SpecificSurfaceArea, row.ParticleVolume)
//	}
//
// # Models
//
// [ModelBisection] (the default) divides every particle at every step, so
// step N holds exactly 2^N particles. [ModelStaged] divides only a sample
// of the population each step, all along one axis, so the population grows
// roughly linearly and long runs stay cheap.
//
// # Reproducibility
//
// A run is fully determined by its Config. Seed 0 is replaced by a
// clock-derived seed in [Config.SetDefaults]; read it back from
// [Simulation.Config] to replay the run. Setting Workers above 1 divides
// particles in parallel using one random sub-stream per particle: results
// are identical for any worker count above 1 but differ from the
// sequential stream of the same seed.
//
// # Errors
//
// All failures are fatal for the run and no partial series is returned.
// Use errors.Is with [ErrInvalidGeometry], [ErrDegenerateProfile],
// [ErrInvalidStepCount] or [ErrInvalidConfig].
package weathering
