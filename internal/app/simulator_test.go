package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/random"
)

func TestSimulator_CubeScenario(t *testing.T) {
	obs := &recordingObserver{}
	sim := NewSimulator(NewBisector(random.NewStream(11)), &mockLogger{}, obs, tickingClock())

	series, err := sim.Run(context.Background(), mustParticle(2, 2, 2, 1), 3)
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())

	want := []struct {
		particles int
		volume    float64
	}{
		{2, 4},
		{4, 2},
		{8, 1},
	}

	prevArea := 24.0
	for i, w := range want {
		row := series.At(i)
		assert.Equal(t, i+1, row.TimeStep)
		assert.Equal(t, w.particles, row.NumberOfParticles)
		assert.Equal(t, w.volume, row.ParticleVolume)
		assert.Equal(t, w.volume, row.MeanParticleMass)
		assert.Greater(t, row.SpecificSurfaceArea, prevArea, "step %d", i+1)
		prevArea = row.SpecificSurfaceArea
	}

	assert.Equal(t, series.Rows(), obs.records)
}

func TestSimulator_Timings(t *testing.T) {
	sim := NewSimulator(NewBisector(random.NewStream(1)), nil, nil, tickingClock())

	series, err := sim.Run(context.Background(), mustParticle(1, 1, 1, 1), 4)
	require.NoError(t, err)

	for i, row := range series.Rows() {
		step := time.Duration(i + 1)
		assert.Equal(t, time.Millisecond, row.ModelCreationTime)
		assert.Equal(t, time.Millisecond, row.ModelCalculationTime)
		assert.Equal(t, step*time.Millisecond, row.CumuCreationTime)
		assert.Equal(t, step*time.Millisecond, row.CumuCalcTime)
		assert.Equal(t, 2*step*time.Millisecond, row.CumuModelTime)
	}
}

func TestSimulator_BisectionProperties(t *testing.T) {
	parents := []domain.Particle{
		mustParticle(2, 2, 2, 1),
		mustParticle(1e4, 100, 100, 2.1),
		mustParticle(0.3, 7.25, 1.125, 2.65),
	}
	const steps = 12

	for _, parent := range parents {
		t.Run(parent.String(), func(t *testing.T) {
			sim := NewSimulator(NewBisector(random.NewStream(3)), nil, nil, nil)
			series, err := sim.Run(context.Background(), parent, steps)
			require.NoError(t, err)
			require.Equal(t, steps, series.Len())

			prevArea := parent.SurfaceArea()
			prevVolume := parent.Volume()
			for i, row := range series.Rows() {
				assert.Equal(t, 1<<(i+1), row.NumberOfParticles)
				assert.GreaterOrEqual(t, row.SpecificSurfaceArea, prevArea)
				assert.InEpsilon(t, prevVolume/2, row.ParticleVolume, 1e-12)
				assert.InEpsilon(t, row.ParticleVolume*parent.Density(), row.MeanParticleMass, 1e-12)
				assert.GreaterOrEqual(t, row.ModelCreationTime, time.Duration(0))
				prevArea = row.SpecificSurfaceArea
				prevVolume = row.ParticleVolume
			}
		})
	}
}

func TestSimulator_ParallelMatchesItself(t *testing.T) {
	run := func(workers int) []domain.StepRecord {
		sim := NewSimulator(NewParallelBisector(random.NewPartition(77), workers), nil, nil, nil)
		series, err := sim.Run(context.Background(), mustParticle(3, 5, 7, 1.5), 13)
		require.NoError(t, err)
		return series.Rows()
	}

	a, b := run(1), run(6)
	for i := range a {
		assert.Equal(t, a[i].NumberOfParticles, b[i].NumberOfParticles)
		assert.Equal(t, a[i].SpecificSurfaceArea, b[i].SpecificSurfaceArea)
		assert.Equal(t, a[i].ParticleVolume, b[i].ParticleVolume)
	}
}

func TestSimulator_InvalidStepCount(t *testing.T) {
	for _, end := range []int{0, -1, -100} {
		obs := &recordingObserver{}
		sim := NewSimulator(NewBisector(random.NewStream(1)), nil, obs, nil)

		series, err := sim.Run(context.Background(), mustParticle(1, 1, 1, 1), end)
		assert.ErrorIs(t, err, domain.ErrInvalidStepCount)
		assert.Nil(t, series)
		assert.Empty(t, obs.records)
	}
}

func TestSimulator_InvalidParent(t *testing.T) {
	sim := NewSimulator(NewBisector(random.NewStream(1)), nil, nil, nil)

	_, err := sim.Run(context.Background(), domain.Particle{}, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
}

func TestSimulator_FailFast(t *testing.T) {
	obs := &recordingObserver{}
	// side1 survives one halving, the second one underflows to zero
	parent := mustParticle(1e-323, 1, 1, 1)
	sim := NewSimulator(NewBisector(fixedAxis(domain.Axis1)), nil, obs, nil)

	series, err := sim.Run(context.Background(), parent, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
	assert.Nil(t, series)
	assert.Len(t, obs.records, 1)
}

// failingDivider returns err on the given step.
type failingDivider struct {
	failAt int
	err    error
}

func (f failingDivider) Divide(ctx context.Context, step int, gen domain.Generation) (domain.Generation, error) {
	if step == f.failAt {
		return nil, f.err
	}
	return append(gen, gen...), nil
}

func TestSimulator_DegenerateProfile(t *testing.T) {
	sim := NewSimulator(failingDivider{failAt: 2, err: nil}, nil, nil, nil)

	// a divider returning no particles is caught by the characterizer
	_, err := sim.Run(context.Background(), mustParticle(1, 1, 1, 1), 3)
	assert.ErrorIs(t, err, domain.ErrDegenerateProfile)
}

func TestSimulator_DividerErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	sim := NewSimulator(failingDivider{failAt: 3, err: boom}, nil, nil, nil)

	_, err := sim.Run(context.Background(), mustParticle(1, 1, 1, 1), 5)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step 3")
}

func TestSimulator_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := NewSimulator(NewBisector(random.NewStream(1)), nil, nil, nil)
	series, err := sim.Run(ctx, mustParticle(1, 1, 1, 1), 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, series)
}

func TestSimulator_LogsEachStep(t *testing.T) {
	logger := &mockLogger{}
	obs := &recordingObserver{}
	sim := NewSimulator(NewBisector(fixedAxis(domain.Axis1)), logger, obs, tickingClock())

	_, err := sim.Run(context.Background(), mustParticle(2, 2, 2, 1), 2)
	require.NoError(t, err)

	require.Len(t, logger.debug, 2)
	for i, e := range logger.debug {
		assert.Equal(t, "step complete", e.msg)
		step, ok := e.field("step")
		require.True(t, ok)
		assert.Equal(t, i+1, step)
		particles, ok := e.field("particles")
		require.True(t, ok)
		assert.Equal(t, 2<<i, particles)
	}
}
