package weathering

import (
	"fmt"
	"time"

	"github.com/bft-labs/weathering/internal/domain"
)

// Model selects how a generation is divided each step.
type Model string

const (
	// ModelBisection divides every particle along an independently drawn
	// axis.
	ModelBisection Model = "bisection"

	// ModelStaged divides a growth-scheduled sample of particles, all along
	// one axis drawn per step.
	ModelStaged Model = "staged"
)

// MaxBisectionSteps bounds bisection runs so the particle count 2^Steps
// stays representable.
const MaxBisectionSteps = 62

// Config describes one simulation run.
type Config struct {
	// Side1, Side2, Side3 are the parent material dimensions
	Side1, Side2, Side3 float64

	// Density is shared by every particle of the run
	Density float64

	// Steps is the number of time steps to simulate (>= 1)
	Steps int

	// Seed for the random stream; 0 picks one from the clock
	Seed uint64

	// Model defaults to ModelBisection
	Model Model

	// Workers > 1 enables parallel bisection
	Workers int
}

// DefaultConfig returns a Config for a 1e4×100×100 prism of density 2.1
// weathered for 18 steps.
func DefaultConfig() Config {
	return Config{
		Side1:   1e4,
		Side2:   100,
		Side3:   100,
		Density: 2.1,
		Steps:   18,
		Model:   ModelBisection,
	}
}

// SetDefaults fills zero-valued optional fields.
func (c *Config) SetDefaults() {
	if c.Model == "" {
		c.Model = ModelBisection
	}
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if _, err := c.Parent(); err != nil {
		return fmt.Errorf("parent material: %w", err)
	}
	if c.Steps < 1 {
		return fmt.Errorf("%w: steps = %d", domain.ErrInvalidStepCount, c.Steps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", domain.ErrInvalidConfig)
	}

	switch c.Model {
	case ModelBisection:
		if c.Steps > MaxBisectionSteps {
			return fmt.Errorf("%w: bisection supports at most %d steps, got %d",
				domain.ErrInvalidConfig, MaxBisectionSteps, c.Steps)
		}
	case ModelStaged:
		if c.Workers > 1 {
			return fmt.Errorf("%w: the staged model runs sequentially", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown model %q", domain.ErrInvalidConfig, c.Model)
	}

	return nil
}

// Parent builds the parent material particle.
func (c Config) Parent() (domain.Particle, error) {
	return domain.NewParticle(c.Side1, c.Side2, c.Side3, c.Density)
}
