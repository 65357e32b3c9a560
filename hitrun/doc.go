// SPDX-License-Identifier: MIT

// Package hitrun samples a bounded polytope {x : A·x ≤ Ub, B·x = Eq} with a
// hit-and-run Markov chain.
//
// One step of the chain:
//
//  1. draw a unit direction s in null(B) (package direction);
//  2. clip the line x + t·s against every inequality row:
//     y = A·x − Ub, z = A·s;
//     z_k > 0 ⇒ t ≤ −y_k/z_k, z_k < 0 ⇒ t ≥ −y_k/z_k, z_k = 0 ⇒ no bound;
//  3. draw t uniformly in [lower, upper] and move to x + t·s.
//
// Run drives the chain through three phases that never cycle back:
//
//	Init     feasibility LP for x0 (package feasible), null-space basis from B
//	Iterate  N−1 steps, each from the previous point
//	Thin     keep rows 0, k, 2k, … (⌈N/k⌉ rows)
//
// A chain is inherently sequential. Independent replicates may run in
// parallel (RunReplicates), each with its own generator; they share only
// the immutable constraint system and direction basis.
//
// Progress is reported through an optional callback at 1% granularity, and
// the context is checked at the same granularity.
package hitrun
