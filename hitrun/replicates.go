// SPDX-License-Identifier: MIT

package hitrun

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/quaso/polytope"
)

// ErrSharedSource reports that WithSource was combined with RunReplicates.
// A rand.Source is not safe for concurrent use, so replicates derive their
// own generators from WithSeed instead.
var ErrSharedSource = errors.New("hitrun: a single rand.Source cannot drive concurrent replicates")

const opReplicates = "hitrun.RunReplicates"

// RunReplicates runs n independent chains concurrently and stacks their
// thinned samples in replicate order (n·⌈N/k⌉ × D).
//
// The Init phase runs once; every replicate starts at the same x0 and reads
// the same direction basis. Replicate i draws from MT19937 seeded with
// seed+i. The progress callback receives the mean fraction across
// replicates and is never invoked concurrently.
//
// The first failing replicate cancels the others; its error is returned.
func RunReplicates(ctx context.Context, sys *polytope.System, n int, opts ...Option) (*mat.Dense, error) {
	if n < 1 {
		return nil, fmt.Errorf("%s: n=%d, want >= 1: %w", opReplicates, n, polytope.ErrInvalidConstraintInput)
	}
	c := gatherOptions(opts...)
	if c.src != nil {
		return nil, fmt.Errorf("%s: %w", opReplicates, ErrSharedSource)
	}
	p, err := prepare(sys, &c)
	if err != nil {
		return nil, err
	}

	agg := newProgress(n, c.progress)
	results := make([]*mat.Dense, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			out, err := iterate(gctx, sys, p, &c, c.source(uint64(i)), agg.reporter(i), i)
			if err != nil {
				return fmt.Errorf("%s: replicate %d: %w", opReplicates, i, err)
			}
			results[i] = out

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	rows := c.rows()
	stacked := mat.NewDense(n*rows, sys.Dim(), nil)
	for i, r := range results {
		stacked.Slice(i*rows, (i+1)*rows, 0, sys.Dim()).(*mat.Dense).Copy(r)
	}

	return stacked, nil
}

// progress folds per-replicate fractions into one monotone stream.
type progress struct {
	mu   sync.Mutex
	frac []float64
	fn   func(float64)
}

func newProgress(n int, fn func(float64)) *progress {
	return &progress{frac: make([]float64, n), fn: fn}
}

func (p *progress) reporter(i int) func(float64) {
	return func(f float64) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if f < p.frac[i] {
			return
		}
		p.frac[i] = f
		p.fn(floats.Sum(p.frac) / float64(len(p.frac)))
	}
}
