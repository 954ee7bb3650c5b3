package weathering

import (
	"context"
	"time"

	"github.com/bft-labs/weathering/internal/app"
	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/ports"
	"github.com/bft-labs/weathering/internal/random"
	"github.com/bft-labs/weathering/pkg/log"
)

// Simulation is a configured weathering run.
// Use New() to create an instance, then Run() to produce the series.
// A Simulation holds a random stream and must not be run concurrently.
type Simulation struct {
	config    Config
	parent    domain.Particle
	simulator *app.Simulator
	logger    log.Logger
}

// New creates a Simulation with the given configuration.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	parent, err := cfg.Parent()
	if err != nil {
		return nil, err
	}

	var observer ports.StepObserver
	switch len(o.observers) {
	case 0:
	case 1:
		observer = o.observers[0]
	default:
		observer = observerGroup(o.observers)
	}

	return &Simulation{
		config:    cfg,
		parent:    parent,
		simulator: app.NewSimulator(newDivider(cfg, o), o.logger, observer, o.clock),
		logger:    o.logger,
	}, nil
}

func newDivider(cfg Config, o options) app.Divider {
	if cfg.Model == ModelStaged {
		return app.NewStagedDivider(random.NewStream(cfg.Seed))
	}
	if o.chooser != nil {
		return app.NewBisector(o.chooser)
	}
	if cfg.Workers > 1 {
		return app.NewParallelBisector(random.NewPartition(cfg.Seed), cfg.Workers)
	}
	return app.NewBisector(random.NewStream(cfg.Seed))
}

// Config returns the effective configuration, including the seed picked
// by SetDefaults.
func (s *Simulation) Config() Config {
	return s.config
}

// Run simulates every configured step and returns the series.
// Any error aborts the run; no partial series is returned.
func (s *Simulation) Run(ctx context.Context) (*Series, error) {
	s.logger.Info("simulation starting",
		log.String("model", string(s.config.Model)),
		log.Int("steps", s.config.Steps),
		log.Uint64("seed", s.config.Seed),
		log.Int("workers", s.config.Workers),
		log.String("parent", s.parent.String()),
	)

	start := time.Now()
	series, err := s.simulator.Run(ctx, s.parent, s.config.Steps)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("simulation failed", log.Err(err), log.Duration("elapsed", elapsed))
		return nil, err
	}

	last := series.Last()
	s.logger.Info("simulation complete",
		log.Int("steps", series.Len()),
		log.Int("particles", last.NumberOfParticles),
		log.Float64("specificSurfaceArea", last.SpecificSurfaceArea),
		log.Float64("particleVolume", last.ParticleVolume),
		log.Duration("elapsed", elapsed),
	)
	return series, nil
}

// Run is a convenience wrapper around New and Simulation.Run.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Series, error) {
	sim, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx)
}
