// Package weathering simulates physical weathering of a parent material.
//
// Example usage:
//
//	cfg := weathering.DefaultConfig()
//	cfg.Side1, cfg.Side2, cfg.Side3 = 2, 2, 2
//	cfg.Steps = 3
//	series, err := weathering.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range series.Rows() {
//	    fmt.Println(row.TimeStep, row.NumberOfParticles, row.ParticleVolume)
//	}
//
// The full API, including options for logging and step observers, lives in
// pkg/weathering.
package weathering

import (
	"context"

	"github.com/bft-labs/weathering/pkg/weathering"
)

// Config describes one simulation run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = weathering.Config

// Series is the time series produced by Run.
type Series = weathering.Series

// StepRecord is one row of a Series.
type StepRecord = weathering.StepRecord

// Run simulates cfg and blocks until every step is done, ctx is cancelled
// or an error occurs.
func Run(ctx context.Context, cfg Config) (*Series, error) {
	return weathering.Run(ctx, cfg)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return weathering.DefaultConfig()
}
