package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (WEATHERING_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(key string) string { return os.Getenv(EnvPrefix + key) }

	floats := []struct {
		flag, key string
		dst       *float64
	}{
		{"side1", "SIDE1", &cfg.Side1},
		{"side2", "SIDE2", &cfg.Side2},
		{"side3", "SIDE3", &cfg.Side3},
		{"density", "DENSITY", &cfg.Density},
	}
	for _, f := range floats {
		if err := s.setFloatFromString(f.flag, env(f.key), f.dst); err != nil {
			return err
		}
	}

	if err := s.setIntFromString("steps", env("STEPS"), &cfg.Steps); err != nil {
		return err
	}
	if err := s.setUint64FromString("seed", env("SEED"), &cfg.Seed); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", env("WORKERS"), &cfg.Workers); err != nil {
		return err
	}

	s.setString("model", env("MODEL"), &cfg.Model)
	s.setString("format", env("FORMAT"), &cfg.Format)
	s.setString("output", env("OUTPUT"), &cfg.Output)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("metrics-addr", env("METRICS_ADDR"), &cfg.MetricsAddr)

	s.setBoolFromString("watch", env("WATCH"), &cfg.Watch)
	if err := s.setDuration("watch-debounce", env("WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	return nil
}
