package weathering

import (
	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/ports"
	"github.com/bft-labs/weathering/pkg/log"
)

// Re-export domain types for library callers.
type (
	// Particle is an immutable rectangular prism with a density.
	Particle = domain.Particle

	// Series is the append-only time series of a run.
	Series = domain.Series

	// StepRecord is one row of a Series.
	StepRecord = domain.StepRecord

	// Axis identifies a particle side.
	Axis = domain.Axis

	// AxisChooser draws the side a particle is bisected along.
	AxisChooser = domain.AxisChooser

	// StepObserver is notified after each completed step.
	StepObserver = ports.StepObserver

	// Clock returns the current time.
	Clock = ports.Clock
)

// Errors returned by New and Run.
var (
	ErrInvalidGeometry   = domain.ErrInvalidGeometry
	ErrDegenerateProfile = domain.ErrDegenerateProfile
	ErrInvalidStepCount  = domain.ErrInvalidStepCount
	ErrInvalidConfig     = domain.ErrInvalidConfig
)

// Option configures optional behavior of a Simulation.
type Option func(*options)

type options struct {
	logger    log.Logger
	observers []ports.StepObserver
	clock     ports.Clock
	chooser   domain.AxisChooser
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver registers an observer for every completed step.
// Observers are called in registration order.
func WithObserver(observer StepObserver) Option {
	return func(o *options) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}

// WithClock overrides the clock used to time steps.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithAxisChooser replaces the seeded random stream of the bisection model
// with chooser. The run becomes sequential regardless of Workers.
func WithAxisChooser(chooser AxisChooser) Option {
	return func(o *options) {
		o.chooser = chooser
	}
}

// observerGroup fans a step out to several observers.
type observerGroup []ports.StepObserver

func (g observerGroup) OnStep(r domain.StepRecord) {
	for _, o := range g {
		o.OnStep(r)
	}
}
