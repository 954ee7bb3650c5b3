package ports

import (
	"context"
	"time"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/pkg/log"
)

// Logger is the structured logging abstraction.
type Logger = log.Logger

// Field represents a structured log field.
type Field = log.Field

// StepObserver is notified after each completed time step.
// Calls are synchronous from the simulation goroutine; implementations
// should return quickly.
type StepObserver interface {
	OnStep(record domain.StepRecord)
}

// SeriesRepository persists the series of a finished run.
type SeriesRepository interface {
	Save(ctx context.Context, series *domain.Series) error
}

// Clock returns the current time. time.Now satisfies it.
type Clock func() time.Time
