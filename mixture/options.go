// SPDX-License-Identifier: MIT

package mixture

import (
	"log/slog"

	"github.com/katalvlaran/quaso/hitrun"
)

// DefaultReplicates is the number of independent chains Estimate runs.
const DefaultReplicates = 1

const panicReplicates = "mixture: WithReplicates: n must be >= 1"

// Option configures Estimate.
type Option func(*options)

type options struct {
	replicates int
	chain      []hitrun.Option
	logger     *slog.Logger
}

// WithReplicates runs n independent chains and pools their samples.
func WithReplicates(n int) Option {
	if n < 1 {
		panic(panicReplicates)
	}

	return func(o *options) { o.replicates = n }
}

// WithChain forwards options to the hit-and-run driver.
func WithChain(opts ...hitrun.Option) Option {
	return func(o *options) { o.chain = append(o.chain, opts...) }
}

// WithLogger logs the estimate and forwards l to the chain. Nil keeps the
// discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts ...Option) options {
	o := options{
		replicates: DefaultReplicates,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
