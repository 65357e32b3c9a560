// SPDX-License-Identifier: MIT

package direction

import "math"

const (
	// DefaultSnapTolerance: singular values and basis entries below this are
	// replaced by exact zeros.
	DefaultSnapTolerance = 1e-12

	// DefaultMaxRedraws bounds the redraws of a zero-norm direction before
	// Sample falls back to a basis column.
	DefaultMaxRedraws = 16
)

const panicSnapInvalid = "direction: WithSnapTolerance: tol must be finite and >= 0"

// Option configures New.
type Option func(*options)

type options struct {
	snap float64
}

// WithSnapTolerance overrides DefaultSnapTolerance.
func WithSnapTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSnapInvalid)
	}

	return func(o *options) { o.snap = tol }
}

func gatherOptions(opts ...Option) options {
	o := options{snap: DefaultSnapTolerance}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
