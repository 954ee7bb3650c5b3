package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/weathering/pkg/report"
	"github.com/bft-labs/weathering/pkg/weathering"
)

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "WEATHERING_"

// Config holds CLI configuration for weathering.
type Config struct {
	Side1   float64
	Side2   float64
	Side3   float64
	Density float64

	Steps   int
	Seed    uint64
	Model   string
	Workers int

	Format string
	Output string

	LogLevel      string
	MetricsAddr   string
	Watch         bool
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	sim := weathering.DefaultConfig()
	return Config{
		Side1:         sim.Side1,
		Side2:         sim.Side2,
		Side3:         sim.Side3,
		Density:       sim.Density,
		Steps:         sim.Steps,
		Model:         string(sim.Model),
		Format:        string(report.FormatTable),
		LogLevel:      "info",
		WatchDebounce: 200 * time.Millisecond,
	}
}

// Simulation converts the CLI configuration to a library Config.
func (c *Config) Simulation() weathering.Config {
	return weathering.Config{
		Side1:   c.Side1,
		Side2:   c.Side2,
		Side3:   c.Side3,
		Density: c.Density,
		Steps:   c.Steps,
		Seed:    c.Seed,
		Model:   weathering.Model(c.Model),
		Workers: c.Workers,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	sim := c.Simulation()
	sim.SetDefaults()
	if err := sim.Validate(); err != nil {
		return err
	}

	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}

	if c.MetricsAddr != "" && !c.Watch {
		return fmt.Errorf("metrics-addr requires watch mode")
	}
	if c.Watch && c.WatchDebounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if present and flag not changed.
// Zero and negative values are kept so Validate can reject them.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setUint64 sets a uint64 value if non-zero and flag not changed.
func (s *configSetter) setUint64(flag string, value uint64, dst *uint64) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if present and flag not changed.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setUint64FromString parses a string to uint64 and sets the destination if valid.
func (s *configSetter) setUint64FromString(flag, value string, dst *uint64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	u, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = u
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
