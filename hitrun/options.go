// SPDX-License-Identifier: MIT
// Package: hitrun
//
// options.go - functional configuration of the chain driver.
//
// Policy:
//   • Option constructors panic on nonsensical values (programmer error).
//   • Run/RunReplicates never panic on user data; they return sentinels.
//   • Determinism is explicit: WithSeed for reproducible chains, otherwise a
//     time-seeded MT19937 per run.

package hitrun

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mathext/prng"

	"github.com/katalvlaran/quaso/direction"
	"github.com/katalvlaran/quaso/feasible"
)

// Defaults (single source of truth).
const (
	// DefaultIterations is the chain length before thinning.
	DefaultIterations = 100_000

	// DefaultSamples is the number of thinned rows aimed for when no thinning
	// stride is given: stride = max(1, iterations/DefaultSamples).
	DefaultSamples = 100

	// progressSteps is the number of progress/cancellation checkpoints.
	progressSteps = 100
)

const (
	panicIterations = "hitrun: WithIterations: n must be >= 1"
	panicThinning   = "hitrun: WithThinning: k must be >= 1"
	panicSource     = "hitrun: WithSource: nil source"
)

// Option configures Run and RunReplicates.
type Option func(*config)

type config struct {
	iterations int
	thinning   int // 0 means derive from iterations

	seed   uint64
	seeded bool
	src    rand.Source

	progress func(float64)
	logger   *slog.Logger

	start       []float64
	feasibleOps []feasible.Option
	directOps   []direction.Option
}

// WithIterations sets N, the number of chain points including x0.
func WithIterations(n int) Option {
	if n < 1 {
		panic(panicIterations)
	}

	return func(c *config) { c.iterations = n }
}

// WithThinning sets the stride k of the thinning phase.
func WithThinning(k int) Option {
	if k < 1 {
		panic(panicThinning)
	}

	return func(c *config) { c.thinning = k }
}

// WithSeed seeds a per-run MT19937 generator. RunReplicates seeds
// replicate i with seed+i.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithSource supplies the random source directly. The source is owned by
// the chain for the duration of Run; RunReplicates rejects it.
func WithSource(src rand.Source) Option {
	if src == nil {
		panic(panicSource)
	}

	return func(c *config) { c.src = src }
}

// WithProgress registers a callback receiving the completed fraction in
// [0,1], invoked at 1% granularity and once more at completion. Nil keeps
// the no-op default.
func WithProgress(fn func(float64)) Option {
	return func(c *config) {
		if fn != nil {
			c.progress = fn
		}
	}
}

// WithLogger routes phase logging to l. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStart skips the feasibility LP and starts the chain at x0. Run
// verifies that x0 lies in the polytope.
func WithStart(x0 []float64) Option {
	cp := append([]float64(nil), x0...)

	return func(c *config) { c.start = cp }
}

// WithFeasibleOptions forwards options to feasible.Point.
func WithFeasibleOptions(opts ...feasible.Option) Option {
	return func(c *config) { c.feasibleOps = append(c.feasibleOps, opts...) }
}

// WithDirectionOptions forwards options to direction.New.
func WithDirectionOptions(opts ...direction.Option) Option {
	return func(c *config) { c.directOps = append(c.directOps, opts...) }
}

func gatherOptions(opts ...Option) config {
	c := config{
		iterations: DefaultIterations,
		progress:   func(float64) {},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}
	if c.thinning == 0 {
		c.thinning = max(1, c.iterations/DefaultSamples)
	}

	return c
}

// source returns the generator for a single chain: the supplied source, a
// seeded MT19937, or a time-seeded one.
func (c *config) source(offset uint64) rand.Source {
	if c.src != nil {
		return c.src
	}
	mt := prng.NewMT19937()
	if c.seeded {
		mt.Seed(c.seed + offset)
	} else {
		mt.Seed(uint64(time.Now().UnixNano()) + offset)
	}

	return mt
}

// rows returns ⌈N/k⌉, the number of thinned rows.
func (c *config) rows() int { return (c.iterations + c.thinning - 1) / c.thinning }
