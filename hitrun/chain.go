// SPDX-License-Identifier: MIT

package hitrun

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/quaso/direction"
	"github.com/katalvlaran/quaso/feasible"
	"github.com/katalvlaran/quaso/polytope"
)

const opRun = "hitrun.Run"

// prepared is the immutable output of the Init phase. Replicates share it.
type prepared struct {
	x0   []float64
	dirs *direction.Sampler
}

// Run samples the polytope sys with a single hit-and-run chain and returns
// the thinned samples, one row per kept point (⌈N/k⌉ × D). Row 0 is x0.
//
// Implementation:
//   - Stage 1 (Init): x0 from WithStart or feasible.Point; direction basis
//     from sys.B.
//   - Stage 2 (Iterate): N−1 steps; every k-th point is written to the
//     output as it is produced, so memory stays O(N/k · D).
//   - Stage 3 (Thin): implicit in Stage 2.
//
// Errors:
//   - ErrInvalidConstraintInput for a nil system or a WithStart point
//     outside the polytope.
//   - ErrInfeasibleConstraints, ErrDegenerateNullSpace and
//     ErrUnboundedDirection from the stage that raised them.
//   - ctx.Err() (wrapped) when the context is cancelled mid-chain.
func Run(ctx context.Context, sys *polytope.System, opts ...Option) (*mat.Dense, error) {
	c := gatherOptions(opts...)
	p, err := prepare(sys, &c)
	if err != nil {
		return nil, err
	}

	return iterate(ctx, sys, p, &c, c.source(0), c.progress, 0)
}

// prepare runs the Init phase.
func prepare(sys *polytope.System, c *config) (*prepared, error) {
	if sys == nil {
		return nil, fmt.Errorf("%s: nil system: %w", opRun, polytope.ErrInvalidConstraintInput)
	}
	d := sys.Dim()

	var x0 []float64
	if c.start != nil {
		if !sys.Contains(c.start, polytope.DefaultEqualityTolerance) {
			return nil, fmt.Errorf("%s: start point %v is outside the polytope: %w",
				opRun, c.start, polytope.ErrInvalidConstraintInput)
		}
		x0 = append([]float64(nil), c.start...)
		if sys.Pin(x0) > 0 && !sys.Contains(x0, polytope.DefaultEqualityTolerance) {
			return nil, fmt.Errorf("%s: pinned start point %v is outside the polytope: %w",
				opRun, x0, polytope.ErrInvalidConstraintInput)
		}
	} else {
		c.logger.Info("finding initial point", "dim", d)
		var err error
		if x0, err = feasible.Point(sys, c.feasibleOps...); err != nil {
			return nil, fmt.Errorf("%s: %w", opRun, err)
		}
	}

	c.logger.Info("precomputing search directions")
	dirs, err := direction.New(sys.B, c.directOps...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opRun, err)
	}
	c.logger.Debug("null space ready", "dim", d, "free", dirs.Rank())

	return &prepared{x0: x0, dirs: dirs}, nil
}

// iterate runs Stages 2 and 3 for one chain. replicate only labels logs.
func iterate(
	ctx context.Context,
	sys *polytope.System,
	p *prepared,
	c *config,
	src rand.Source,
	progress func(float64),
	replicate int,
) (*mat.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", opRun, err)
	}
	st, err := NewStepper(sys.A, sys.Ub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opRun, err)
	}
	d := sys.Dim()
	n, k := c.iterations, c.thinning
	out := mat.NewDense(c.rows(), d, nil)

	x := append([]float64(nil), p.x0...)
	s := make([]float64, d)
	out.SetRow(0, x)

	every := max(1, n/progressSteps)
	log := c.logger.With("replicate", replicate)
	log.Info("starting chain", "iterations", n, "thinning", k, "rows", c.rows())
	began := time.Now()
	progress(0)

	for i := 1; i < n; i++ {
		p.dirs.SampleInto(s, src)
		if _, err = st.Advance(x, s, src); err != nil {
			return nil, fmt.Errorf("%s: iteration %d: %w", opRun, i, err)
		}
		if i%k == 0 {
			out.SetRow(i/k, x)
		}
		if i%every == 0 {
			if err = ctx.Err(); err != nil {
				log.Warn("chain cancelled", "iteration", i)

				return nil, fmt.Errorf("%s: iteration %d: %w", opRun, i, err)
			}
			progress(float64(i) / float64(n))
		}
	}
	progress(1)
	log.Info("chain finished", "elapsed", time.Since(began))

	return out, nil
}
