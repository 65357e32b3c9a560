// SPDX-License-Identifier: MIT

// Package polytope turns partial recipe information into the linear
// constraint system that bounds every admissible mixture.
//
// A recipe lists D ingredients from most to least abundant. Some fractions
// are known exactly, the rest are unknown. Every admissible mixture x ∈ ℝᴰ
// satisfies
//
//	A·x ≤ Ub   (2D−1 rows: x ≥ 0 and x_i ≥ x_{i+1})
//	B·x = Eq   (1 + #known rows: Σx = 1 and x_k = given_k)
//
// The intersection is a bounded polytope; package feasible finds one point in
// it and package hitrun walks it.
//
// Layout of the inequality rows:
//
//	rows 0..D-1     -x_i ≤ 0             (non-negativity)
//	rows D..2D-2    x_{i+1} - x_i ≤ 0    (descending order)
//
// Layout of the equality rows:
//
//	row 0           Σ x_i = 1            (simplex)
//	rows 1..        x_k = given_k        (one per known slot, ascending k)
//
// Usage:
//
//	given := polytope.Amounts{
//		polytope.Known(0.63), polytope.Unknown(), polytope.Unknown(),
//		polytope.Unknown(), polytope.Known(0.016),
//	}
//	sys, err := polytope.Build(len(given), given)
//
// The error taxonomy shared by the whole module lives in this package
// (errors.go); the other packages re-export the sentinels they raise.
package polytope
