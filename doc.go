// SPDX-License-Identifier: MIT

// Package quaso estimates how much of each ingredient a product contains when
// its label only tells part of the story.
//
// A label lists ingredients from most to least abundant and prints a few
// percentages. Everything consistent with that information forms a bounded
// polytope in ℝᴰ; quaso samples it uniformly with a hit-and-run Markov chain
// and reports the mean and spread of every fraction.
//
// What is inside:
//
//	polytope/  constraint system A·x ≤ Ub, B·x = Eq built from the label
//	feasible/  interior starting point via a linear program (gonum lp)
//	direction/ unit directions in null(B) from a double SVD
//	hitrun/    ray clipping, the chain driver and parallel replicates
//	mixture/   shortcuts for fixed labels, Estimate, summaries and ACF
//	cmd/quaso  command line front end reading YAML recipe files
//
// Pipeline:
//
//	label ──► polytope.Build ──► feasible.Point ──► x0
//	                   │                             │
//	                   └──► direction.New ──► hitrun.Run ──► samples ──► mixture.Summarize
//
// Quick start:
//
//	given := polytope.Amounts{polytope.Known(0.63), polytope.Unknown(), polytope.Unknown(), polytope.Known(0.016)}
//	res, err := mixture.Estimate(ctx, mixture.Recipe{Name: "lentil spread", Given: given},
//		mixture.WithChain(hitrun.WithIterations(100_000), hitrun.WithSeed(1)))
//
// The numerics run on gonum (mat, lp, distuv, stat); every failure is one of
// four sentinels in package polytope, checked with errors.Is.
//
//	go get github.com/katalvlaran/quaso
package quaso
