// SPDX-License-Identifier: MIT

// Package feasible: functional configuration for the feasibility LP.
//
// Design goals:
//   - Deterministic behavior: the LP has no randomness; the same system and
//     options always yield the same point.
//   - Safe by construction: WithX panics only on nonsensical values
//     (programmer error); Point itself never panics on user input.
package feasible

import "math"

// Objective selects the linear objective of the feasibility LP. Only
// feasibility matters to callers; the objective decides which feasible
// point comes back.
type Objective int

const (
	// MaxSlack maximizes the smallest inequality slack (capped at 1). The
	// result sits strictly inside every inequality whenever the polytope has
	// a non-empty interior relative to B·x = Eq.
	MaxSlack Objective = iota

	// MinSum minimizes Σx. Under the simplex row this is constant, so the
	// solver returns whichever vertex it reaches first.
	MinSum
)

// String implements fmt.Stringer.
func (o Objective) String() string {
	switch o {
	case MaxSlack:
		return "max-slack"
	case MinSum:
		return "min-sum"
	default:
		return "unknown"
	}
}

// Defaults (single source of truth).
const (
	// DefaultObjective is the LP objective used when none is given.
	DefaultObjective = MaxSlack

	// DefaultTolerance bounds |B·x − Eq| and the A·x ≤ Ub overshoot accepted
	// in the post-solve check.
	DefaultTolerance = 1e-8

	// DefaultSimplexTolerance is handed to lp.Simplex as its zero threshold.
	DefaultSimplexTolerance = 1e-10

	// DefaultRankTolerance is the relative threshold under which an equality
	// row is treated as a combination of the rows kept before it.
	DefaultRankTolerance = 1e-12

	// maxSlackCap bounds the auxiliary slack variable so the LP stays bounded.
	maxSlackCap = 1.0
)

const (
	panicToleranceInvalid = "feasible: WithTolerance: tol must be finite and > 0"
	panicSimplexTolerance = "feasible: WithSimplexTolerance: tol must be finite and >= 0"
	panicObjectiveInvalid = "feasible: WithObjective: unknown objective"
)

// Option mutates Options.
type Option func(*Options)

// Options is the resolved configuration; fields are unexported so callers go
// through the WithX constructors.
type Options struct {
	objective  Objective
	tol        float64
	simplexTol float64
	rankTol    float64
}

// WithObjective selects the LP objective.
func WithObjective(obj Objective) Option {
	if obj != MaxSlack && obj != MinSum {
		panic(panicObjectiveInvalid)
	}

	return func(o *Options) { o.objective = obj }
}

// WithTolerance sets the residual tolerance of the post-solve check.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithSimplexTolerance sets the zero threshold passed to lp.Simplex.
func WithSimplexTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSimplexTolerance)
	}

	return func(o *Options) { o.simplexTol = tol }
}

// defaultOptions returns the zero-configuration Options.
func defaultOptions() Options {
	return Options{
		objective:  DefaultObjective,
		tol:        DefaultTolerance,
		simplexTol: DefaultSimplexTolerance,
		rankTol:    DefaultRankTolerance,
	}
}

// gatherOptions applies opts over the defaults; nil entries are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
