// Package domain contains the core entities and value objects of the
// weathering model.
//
// This package is the innermost layer of the module. It has no dependencies
// on infrastructure concerns (files, logging, metrics) and contains only the
// geometry of particles and the records a simulation run produces.
//
// # Entities
//
//   - [Particle]: an immutable rectangular prism with a density
//   - [Generation]: every particle that exists at the end of one time step
//   - [StepRecord]: aggregate statistics of one generation plus step timings
//   - [Series]: the append-only sequence of step records of a run
//
// # Design Principles
//
// Domain values are:
//   - Immutable after construction
//   - Free of infrastructure dependencies
//   - Validated on construction, so invalid geometry never propagates
//   - Testable without mocks or external systems
package domain
