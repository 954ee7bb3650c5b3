package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/bft-labs/weathering/pkg/log"
)

// Logger returns the CLI logger: human-readable zerolog output on stderr so
// stdout stays free for the rendered series.
func Logger(level string) zerolog.Logger {
	return log.NewConsoleLogger(os.Stderr, level)
}
