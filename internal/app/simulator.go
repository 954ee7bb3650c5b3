package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/ports"
	"github.com/bft-labs/weathering/pkg/log"
)

// Simulator drives repeated divide/characterize cycles over a bounded
// number of time steps.
type Simulator struct {
	divider  Divider
	logger   ports.Logger
	observer ports.StepObserver
	now      ports.Clock
}

// NewSimulator creates a simulator. observer may be nil. A nil logger
// discards output and a nil clock uses time.Now.
func NewSimulator(divider Divider, logger ports.Logger, observer ports.StepObserver, clock ports.Clock) *Simulator {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Simulator{
		divider:  divider,
		logger:   logger,
		observer: observer,
		now:      clock,
	}
}

// Run weathers parent for end time steps and returns one record per step.
// Any failure aborts the run and no partial series is returned.
func (s *Simulator) Run(ctx context.Context, parent domain.Particle, end int) (*domain.Series, error) {
	if end < 1 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidStepCount, end)
	}
	if err := parent.Validate(); err != nil {
		return nil, fmt.Errorf("parent material: %w", err)
	}

	series := domain.NewSeries(end)
	gen := domain.Generation{parent}

	var cumuCreation, cumuCalc time.Duration
	for step := 1; step <= end; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := s.now()
		next, err := s.divider.Divide(ctx, step, gen)
		if err != nil {
			return nil, fmt.Errorf("step %d: divide: %w", step, err)
		}
		created := s.now()

		profile, err := Characterize(next)
		if err != nil {
			return nil, fmt.Errorf("step %d: characterize: %w", step, err)
		}
		calculated := s.now()

		creation := created.Sub(start)
		calc := calculated.Sub(created)
		cumuCreation += creation
		cumuCalc += calc

		record := domain.StepRecord{
			TimeStep:             step,
			NumberOfParticles:    profile.Count,
			SpecificSurfaceArea:  profile.SpecificSurfaceArea,
			ParticleVolume:       profile.MeanVolume,
			MeanParticleMass:     profile.MeanMass,
			ModelCreationTime:    creation,
			CumuCreationTime:     cumuCreation,
			ModelCalculationTime: calc,
			CumuCalcTime:         cumuCalc,
			CumuModelTime:        cumuCreation + cumuCalc,
		}
		series.Append(record)
		s.logger.Debug("step complete",
			log.Step(step),
			log.Int("particles", profile.Count),
			log.Float64("specificSurfaceArea", profile.SpecificSurfaceArea),
			log.Float64("particleVolume", profile.MeanVolume),
			log.Duration("creation", creation),
			log.Duration("calculation", calc),
		)
		if s.observer != nil {
			s.observer.OnStep(record)
		}

		gen = next
	}

	return series, nil
}
