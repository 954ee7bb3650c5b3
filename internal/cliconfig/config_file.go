package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
// Numeric fields are pointers so an explicit zero is told apart from an
// absent key and reaches Validate. Seed stays a value: 0 already means
// "pick one".
type FileConfig struct {
	Side1         *float64 `toml:"side1"`
	Side2         *float64 `toml:"side2"`
	Side3         *float64 `toml:"side3"`
	Density       *float64 `toml:"density"`
	Steps         *int     `toml:"steps"`
	Seed          uint64   `toml:"seed"`
	Model         string   `toml:"model"`
	Workers       *int     `toml:"workers"`
	Format        string   `toml:"format"`
	Output        string   `toml:"output"`
	LogLevel      string   `toml:"log_level"`
	MetricsAddr   string   `toml:"metrics_addr"`
	Watch         *bool    `toml:"watch"`
	WatchDebounce string   `toml:"watch_debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.weathering/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".weathering", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setFloat("side1", fc.Side1, &cfg.Side1)
	s.setFloat("side2", fc.Side2, &cfg.Side2)
	s.setFloat("side3", fc.Side3, &cfg.Side3)
	s.setFloat("density", fc.Density, &cfg.Density)

	s.setInt("steps", fc.Steps, &cfg.Steps)
	s.setUint64("seed", fc.Seed, &cfg.Seed)
	s.setString("model", fc.Model, &cfg.Model)
	s.setInt("workers", fc.Workers, &cfg.Workers)

	s.setString("format", fc.Format, &cfg.Format)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)

	s.setBool("watch", fc.Watch, &cfg.Watch)
	if err := s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
