package domain

import "errors"

// Domain errors represent the failure conditions of a simulation run.
// They are returned wrapped with context and can be checked with errors.Is.
var (
	// ErrInvalidGeometry is returned when a side length or density is not
	// strictly positive and finite, either at construction or after a
	// division halved a side down to zero.
	ErrInvalidGeometry = errors.New("weathering: invalid geometry")

	// ErrDegenerateProfile is returned when an empty generation is
	// characterized.
	ErrDegenerateProfile = errors.New("weathering: degenerate profile")

	// ErrInvalidStepCount is returned when a run is requested with fewer
	// than one time step.
	ErrInvalidStepCount = errors.New("weathering: invalid step count")

	// ErrInvalidAxis is returned when an axis chooser yields a value outside
	// {1, 2, 3}.
	ErrInvalidAxis = errors.New("weathering: invalid axis")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("weathering: invalid configuration")
)
