package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/random"
)

func TestBisector_DoublesGeneration(t *testing.T) {
	gen := domain.Generation{
		mustParticle(2, 2, 2, 1),
		mustParticle(1, 3, 5, 1),
		mustParticle(4, 1, 1, 1),
	}

	next, err := NewBisector(&cyclingAxis{}).Divide(context.Background(), 1, gen)
	require.NoError(t, err)
	require.Len(t, next, 2*len(gen))

	// children are appended pairwise in input order
	assert.Equal(t, 1.0, next[0].Side(domain.Axis1))
	assert.Equal(t, 1.5, next[2].Side(domain.Axis2))
	assert.Equal(t, 0.5, next[4].Side(domain.Axis3))

	var before, after float64
	for _, p := range gen {
		before += p.Volume()
	}
	for _, p := range next {
		after += p.Volume()
		assert.Equal(t, 1.0, p.Density())
	}
	assert.InDelta(t, before, after, 1e-12)
}

func TestBisector_PropagatesInvalidGeometry(t *testing.T) {
	gen := domain.Generation{
		mustParticle(1, 1, 1, 1),
		mustParticle(5e-324, 1, 1, 1),
	}

	next, err := NewBisector(fixedAxis(domain.Axis1)).Divide(context.Background(), 1, gen)
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
	assert.Nil(t, next)
}

func TestParallelBisector_MatchesAcrossWorkerCounts(t *testing.T) {
	seed := uint64(2024)
	gen := domain.Generation{mustParticle(8, 4, 2, 2.65)}

	single := NewParallelBisector(random.NewPartition(seed), 1)
	many := NewParallelBisector(random.NewPartition(seed), 8)

	a, b := gen, gen
	for step := 1; step <= 14; step++ {
		var err error
		a, err = single.Divide(context.Background(), step, a)
		require.NoError(t, err)
		b, err = many.Divide(context.Background(), step, b)
		require.NoError(t, err)
		require.Len(t, a, 1<<step)
	}
	assert.Equal(t, a, b)
}

func TestParallelBisector_PropagatesInvalidGeometry(t *testing.T) {
	gen := make(domain.Generation, 10000)
	for i := range gen {
		gen[i] = mustParticle(5e-324, 5e-324, 5e-324, 1)
	}

	_, err := NewParallelBisector(random.NewPartition(1), 4).Divide(context.Background(), 1, gen)
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
}

func TestParallelBisector_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := make(domain.Generation, 2*minChunk)
	for i := range gen {
		gen[i] = mustParticle(1, 1, 1, 1)
	}

	_, err := NewParallelBisector(random.NewPartition(1), 2).Divide(ctx, 1, gen)
	assert.ErrorIs(t, err, context.Canceled)
}
