// Package log provides the structured logging abstraction used by the
// weathering simulator.
//
// The simulator only depends on the [Logger] interface. A zerolog adapter
// is provided for applications and a no-op logger is used by default, so a
// library caller gets no output unless it asks for it.
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	sim, err := weathering.New(cfg, weathering.WithLogger(logger))
package log
