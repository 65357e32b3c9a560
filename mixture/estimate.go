// SPDX-License-Identifier: MIT

package mixture

import (
	"context"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/quaso/hitrun"
	"github.com/katalvlaran/quaso/polytope"
)

// Recipe is the label information for one dish.
type Recipe struct {
	Name        string
	Ingredients []string         // most to least abundant; may be empty
	Given       polytope.Amounts // one entry per ingredient
}

// names returns the ingredient labels, generating "x1", "x2", … when the
// recipe has none.
func (r Recipe) names() ([]string, error) {
	if len(r.Ingredients) == 0 {
		out := make([]string, len(r.Given))
		for i := range out {
			out[i] = "x" + strconv.Itoa(i+1)
		}

		return out, nil
	}
	if len(r.Ingredients) != len(r.Given) {
		return nil, fmt.Errorf("%s: %d ingredients but %d amounts: %w",
			opEstimate, len(r.Ingredients), len(r.Given), ErrInvalidConstraintInput)
	}

	return append([]string(nil), r.Ingredients...), nil
}

// Result holds the samples of one estimate and their summary.
type Result struct {
	Ingredients []string
	Samples     *mat.Dense // rows are admissible mixtures
	Shortcut    bool       // true when Samples is the single forced mixture
	Summary     Summary
}

// Estimate samples the admissible mixtures of r.
//
// Implementation:
//   - Stage 1: validate names and amounts.
//   - Stage 2: Shortcut; a forced mixture is returned as a single row.
//   - Stage 3: polytope.Build, then hitrun.Run (or RunReplicates).
//   - Stage 4: Summarize.
//
// Errors: every sentinel of package polytope, wrapped with "mixture.Estimate",
// plus ctx.Err() when cancelled.
func Estimate(ctx context.Context, r Recipe, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	log := o.logger.With("recipe", r.Name)

	// Stage 1 (Validate).
	names, err := r.names()
	if err != nil {
		return nil, err
	}

	// Stage 2 (Shortcut).
	x, ok, err := Shortcut(r.Given)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}
	if ok {
		log.Info("mixture fixed by the label, skipping chain", "given", r.Given.String())
		samples := mat.NewDense(1, len(x), x)

		return &Result{
			Ingredients: names,
			Samples:     samples,
			Shortcut:    true,
			Summary:     Summarize(samples, names),
		}, nil
	}
	if s := r.Given.KnownSum(); s >= 1-polytope.DefaultSumTolerance {
		return nil, fmt.Errorf("%s: known amounts sum to %g, leaving nothing for %d unknowns: %w",
			opEstimate, s, r.Given.CountUnknown(), ErrInvalidConstraintInput)
	}

	// Stage 3 (Sample).
	sys, err := polytope.Build(len(r.Given), r.Given)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}
	chain := append([]hitrun.Option{hitrun.WithLogger(o.logger)}, o.chain...)
	var samples *mat.Dense
	if o.replicates > 1 {
		samples, err = hitrun.RunReplicates(ctx, sys, o.replicates, chain...)
	} else {
		samples, err = hitrun.Run(ctx, sys, chain...)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}

	// Stage 4 (Summarize).
	sum := Summarize(samples, names)
	log.Debug("estimate ready", "samples", sum.Samples)

	return &Result{Ingredients: names, Samples: samples, Summary: sum}, nil
}
