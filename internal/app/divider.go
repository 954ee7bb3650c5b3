package app

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/ports"
	"github.com/bft-labs/weathering/internal/random"
)

// Divider applies one subdivision pass to a generation.
// step is the 1-based time step the new generation belongs to.
type Divider interface {
	Divide(ctx context.Context, step int, gen domain.Generation) (domain.Generation, error)
}

// Bisector replaces every particle with its two children, drawing axes
// from a single chooser in input order. The output has exactly twice as
// many particles as the input.
type Bisector struct {
	chooser ports.AxisChooser
}

// NewBisector creates a sequential full-bisection divider.
func NewBisector(chooser ports.AxisChooser) *Bisector {
	return &Bisector{chooser: chooser}
}

// Divide bisects every particle of gen. The first failing division aborts
// the pass and its error is returned unchanged.
func (b *Bisector) Divide(ctx context.Context, step int, gen domain.Generation) (domain.Generation, error) {
	next := make(domain.Generation, 0, 2*len(gen))
	for _, p := range gen {
		first, second, err := p.Divide(b.chooser)
		if err != nil {
			return nil, err
		}
		next = append(next, first, second)
	}
	return next, nil
}

// minChunk keeps tiny generations on a single goroutine.
const minChunk = 4096

// ParallelBisector performs full bisection with a bounded worker pool.
// Particle i of step s always draws from the sub-stream (s, i) of the
// partition and its children land at slots 2i and 2i+1, so a given seed
// yields the same series no matter how the work is scheduled.
type ParallelBisector struct {
	streams *random.Partition
	workers int
}

// NewParallelBisector creates a parallel divider. workers <= 0 uses
// GOMAXPROCS.
func NewParallelBisector(streams *random.Partition, workers int) *ParallelBisector {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ParallelBisector{streams: streams, workers: workers}
}

// Divide bisects every particle of gen concurrently.
func (b *ParallelBisector) Divide(ctx context.Context, step int, gen domain.Generation) (domain.Generation, error) {
	next := make(domain.Generation, 2*len(gen))

	chunk := (len(gen) + b.workers - 1) / b.workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for lo := 0; lo < len(gen); lo += chunk {
		hi := min(lo+chunk, len(gen))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%minChunk == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				first, second, err := gen[i].Divide(b.streams.Stream(step, i))
				if err != nil {
					return fmt.Errorf("particle %d: %w", i, err)
				}
				next[2*i], next[2*i+1] = first, second
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return next, nil
}
