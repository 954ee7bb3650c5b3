package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/weathering/internal/adapters/fs"
	"github.com/bft-labs/weathering/internal/adapters/metrics"
	"github.com/bft-labs/weathering/internal/cliconfig"
	"github.com/bft-labs/weathering/internal/ports"
	"github.com/bft-labs/weathering/internal/watch"
	"github.com/bft-labs/weathering/pkg/log"
	"github.com/bft-labs/weathering/pkg/report"
	"github.com/bft-labs/weathering/pkg/weathering"
)

const helpDescription = `
Weather a rectangular prism of parent material into ever smaller particles
and report, per time step, the particle count, total surface area and mean
particle volume.

Each step bisects particles along a randomly drawn side. The bisection
model splits every particle (2^N particles after N steps); the staged
model splits a growth-scheduled sample of them.

Configure via file ($HOME/.weathering/config.toml), WEATHERING_* env, or
flags. Flags win over env, env wins over the file.
`

var exampleUsage = strings.TrimSpace(`
  weathering --side1 2 --side2 2 --side3 2 --density 1 --steps 3
  weathering --steps 20 --workers 8 --format csv --output runs/cube.csv
  weathering --config ./run.toml --watch --metrics-addr :2112
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	// Replaced once the log level is known.
	zl := cliconfig.Logger(cfg.LogLevel)

	root := &cobra.Command{
		Use:           "weathering",
		Short:         "Simulate physical weathering of a parent material into particles",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// Flag values and defaults; every (re)load starts from here.
			base := cfg

			loaded, err := loadConfig(base, cfgFile, changed)
			if err != nil {
				return err
			}

			zl = cliconfig.Logger(loaded.LogLevel)
			logger := log.NewZerologAdapterWithLogger(zl)
			logger.Debug("configuration", log.Any("config", loaded))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !loaded.Watch {
				return runOnce(ctx, loaded, logger, cmd.OutOrStdout())
			}

			if cfgFile == "" || !cliconfig.FileExists(cfgFile) {
				return fmt.Errorf("watch mode requires an existing config file")
			}

			var opts []weathering.Option
			if loaded.MetricsAddr != "" {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector())
				observer, err := metrics.NewObserver(reg)
				if err != nil {
					return fmt.Errorf("create metrics observer: %w", err)
				}
				opts = append(opts, weathering.WithObserver(observer))

				shutdown, err := serveMetrics(loaded.MetricsAddr, reg, logger)
				if err != nil {
					return err
				}
				defer shutdown()
			}

			w := watch.New(cfgFile, loaded.WatchDebounce, logger)
			logger.Info("watching config file", log.String("path", w.Path()))

			return w.Run(ctx, func(ctx context.Context) error {
				c, err := loadConfig(base, cfgFile, changed)
				if err != nil {
					return err
				}
				return runOnce(ctx, c, logger, cmd.OutOrStdout(), opts...)
			})
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.weathering/config.toml)")

	root.Flags().Float64Var(&cfg.Side1, "side1", cfg.Side1, "first side length of the parent material")
	root.Flags().Float64Var(&cfg.Side2, "side2", cfg.Side2, "second side length of the parent material")
	root.Flags().Float64Var(&cfg.Side3, "side3", cfg.Side3, "third side length of the parent material")
	root.Flags().Float64Var(&cfg.Density, "density", cfg.Density, "density shared by every particle")

	root.Flags().IntVar(&cfg.Steps, "steps", cfg.Steps, "number of time steps to simulate")
	root.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one from the clock)")
	root.Flags().StringVar(&cfg.Model, "model", cfg.Model, "division model: bisection or staged")
	root.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel workers for bisection (0 or 1 runs sequentially)")

	root.Flags().StringVar(&cfg.Format, "format", cfg.Format, fmt.Sprintf("output format: %s", strings.Join(formatNames(), ", ")))
	root.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "write the series to this file instead of stdout")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run whenever the config file changes")
	root.Flags().DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "delay after a config change before re-running")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address while watching")

	if err := root.Execute(); err != nil {
		zl.Error().Err(err).Msg("weathering")
		os.Exit(1)
	}
}

// loadConfig layers the config file and WEATHERING_* env over base.
func loadConfig(base cliconfig.Config, cfgFile string, changed map[string]bool) (cliconfig.Config, error) {
	cfg := base

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runOnce simulates cfg and saves the series to cfg.Output or stdout.
func runOnce(ctx context.Context, cfg cliconfig.Config, logger log.Logger, stdout io.Writer, opts ...weathering.Option) error {
	repo, err := newRepository(cfg, stdout)
	if err != nil {
		return err
	}

	opts = append([]weathering.Option{weathering.WithLogger(logger)}, opts...)
	sim, err := weathering.New(cfg.Simulation(), opts...)
	if err != nil {
		return err
	}

	series, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	if err := repo.Save(ctx, series); err != nil {
		if cfg.Output != "" {
			return fmt.Errorf("write %s: %w", cfg.Output, err)
		}
		return err
	}
	if cfg.Output != "" {
		logger.Info("series written", log.String("path", cfg.Output), log.Int("rows", series.Len()))
	}
	return nil
}

// newRepository picks where a finished series goes.
func newRepository(cfg cliconfig.Config, stdout io.Writer) (ports.SeriesRepository, error) {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	if cfg.Output == "" {
		return fs.NewSeriesStream(stdout, format), nil
	}
	return fs.NewSeriesFile(cfg.Output, format), nil
}

// serveMetrics exposes reg on addr/metrics. The returned func shuts the
// server down.
func serveMetrics(addr string, reg *prometheus.Registry, logger log.Logger) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Surface immediate bind failures.
	select {
	case err := <-errCh:
		return nil, fmt.Errorf("serve metrics on %s: %w", addr, err)
	case <-time.After(100 * time.Millisecond):
	}
	logger.Info("serving metrics", log.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", log.Err(err))
		}
	}, nil
}

func formatNames() []string {
	names := make([]string, 0, len(report.Formats))
	for _, f := range report.Formats {
		names = append(names, string(f))
	}
	return names
}
