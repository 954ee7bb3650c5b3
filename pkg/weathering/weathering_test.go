package weathering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/pkg/log"
)

type countingObserver struct{ steps []int }

func (c *countingObserver) OnStep(r StepRecord) { c.steps = append(c.steps, r.TimeStep) }

// recordingLogger keeps the messages it receives.
type recordingLogger struct {
	log.NoopLogger
	infos  []string
	errors []string
}

func (r *recordingLogger) Info(msg string, fields ...log.Field)  { r.infos = append(r.infos, msg) }
func (r *recordingLogger) Error(msg string, fields ...log.Field) { r.errors = append(r.errors, msg) }

func cube() Config {
	return Config{Side1: 2, Side2: 2, Side3: 2, Density: 1, Steps: 3, Seed: 42}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"zero side", func(c *Config) { c.Side2 = 0 }, domain.ErrInvalidGeometry},
		{"negative density", func(c *Config) { c.Density = -1 }, domain.ErrInvalidGeometry},
		{"zero steps", func(c *Config) { c.Steps = 0 }, domain.ErrInvalidStepCount},
		{"negative steps", func(c *Config) { c.Steps = -4 }, domain.ErrInvalidStepCount},
		{"negative workers", func(c *Config) { c.Workers = -1 }, domain.ErrInvalidConfig},
		{"unknown model", func(c *Config) { c.Model = "shatter" }, domain.ErrInvalidConfig},
		{"too many steps", func(c *Config) { c.Steps = MaxBisectionSteps + 1 }, domain.ErrInvalidConfig},
		{"parallel staged", func(c *Config) { c.Model = ModelStaged; c.Workers = 4 }, domain.ErrInvalidConfig},
		{"long staged run", func(c *Config) { c.Model = ModelStaged; c.Steps = 500 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cube()
			tt.mutate(&cfg)
			cfg.SetDefaults()

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	cfg := Config{Seed: 0}
	cfg.SetDefaults()
	assert.Equal(t, ModelBisection, cfg.Model)
	assert.NotZero(t, cfg.Seed)

	cfg = Config{Seed: 9, Model: ModelStaged}
	cfg.SetDefaults()
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, ModelStaged, cfg.Model)
}

func TestRun_CubeScenario(t *testing.T) {
	obs := &countingObserver{}
	logger := &recordingLogger{}

	series, err := Run(context.Background(), cube(), WithObserver(obs), WithLogger(logger))
	require.NoError(t, err)

	rows := series.Rows()
	require.Len(t, rows, 3)
	for i, want := range []struct {
		n int
		v float64
	}{{2, 4}, {4, 2}, {8, 1}} {
		assert.Equal(t, want.n, rows[i].NumberOfParticles)
		assert.Equal(t, want.v, rows[i].ParticleVolume)
	}
	assert.Greater(t, rows[0].SpecificSurfaceArea, 24.0)
	assert.Greater(t, rows[1].SpecificSurfaceArea, rows[0].SpecificSurfaceArea)
	assert.Greater(t, rows[2].SpecificSurfaceArea, rows[1].SpecificSurfaceArea)

	assert.Equal(t, []int{1, 2, 3}, obs.steps)
	assert.Equal(t, []string{"simulation starting", "simulation complete"}, logger.infos)
	assert.Empty(t, logger.errors)
}

func TestRun_SameSeedSameSeries(t *testing.T) {
	cfg := Config{Side1: 3, Side2: 5, Side3: 7, Density: 2, Steps: 10, Seed: 1234}

	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.At(i).SpecificSurfaceArea, b.At(i).SpecificSurfaceArea)
	}
}

func TestRun_ParallelWorkerCountIndependent(t *testing.T) {
	cfg := Config{Side1: 3, Side2: 5, Side3: 7, Density: 2, Steps: 13, Seed: 5, Workers: 2}
	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Workers = 7
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.At(i).SpecificSurfaceArea, b.At(i).SpecificSurfaceArea)
		assert.Equal(t, 1<<(i+1), b.At(i).NumberOfParticles)
	}
}

func TestRun_Staged(t *testing.T) {
	cfg := Config{Side1: 1e4, Side2: 100, Side3: 100, Density: 2.1, Steps: 12, Seed: 8, Model: ModelStaged}

	series, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 12, series.Len())
	assert.Equal(t, 41, series.At(11).NumberOfParticles)

	total := cfg.Side1 * cfg.Side2 * cfg.Side3
	for _, row := range series.Rows() {
		assert.InEpsilon(t, total, row.ParticleVolume*float64(row.NumberOfParticles), 1e-9)
		assert.InEpsilon(t, row.ParticleVolume*cfg.Density, row.MeanParticleMass, 1e-9)
	}
}

func TestRun_WithAxisChooser(t *testing.T) {
	series, err := Run(context.Background(), cube(), WithAxisChooser(constantAxis(domain.Axis1)))
	require.NoError(t, err)

	// always halving side1: 2×2×2 -> 1×2×2 -> 0.5×2×2 -> 0.25×2×2
	assert.Equal(t, 2*16.0, series.At(0).SpecificSurfaceArea)
	assert.Equal(t, 4*12.0, series.At(1).SpecificSurfaceArea)
	assert.Equal(t, 8*10.0, series.At(2).SpecificSurfaceArea)
}

type constantAxis domain.Axis

func (c constantAxis) ChooseAxis() domain.Axis { return domain.Axis(c) }

func TestNew_InvalidConfig(t *testing.T) {
	cfg := cube()
	cfg.Steps = 0

	sim, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidStepCount)
	assert.Nil(t, sim)
}

func TestRun_CanceledLogsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := &recordingLogger{}
	series, err := Run(ctx, cube(), WithLogger(logger))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, series)
	assert.Equal(t, []string{"simulation failed"}, logger.errors)
}
