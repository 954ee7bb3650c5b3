// Package ports defines the interfaces that connect the simulation core to
// its collaborators.
//
// # Port Interfaces
//
//   - [AxisChooser]: draws the side a particle is bisected along
//   - [Sampler]: draws which particles divide under the staged model
//   - [StepObserver]: receives each completed step record
//   - [SeriesRepository]: persists a finished series
//   - [Logger]: structured logging abstraction
//   - [Clock]: wall-clock source used to time each step
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters, internal/random) provide the concrete
// implementations: seeded PCG streams, a JSON/CSV file writer, zerolog and
// Prometheus observers.
package ports
