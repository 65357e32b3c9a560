// SPDX-License-Identifier: MIT

// Package mixture estimates the unknown ingredient fractions of a recipe.
//
// A Recipe lists its ingredients from most to least abundant together with
// the fractions printed on the label. Estimate turns it into a constraint
// system (package polytope), samples the admissible mixtures with hit-and-run
// (package hitrun) and summarizes the samples per ingredient.
//
// Recipes whose answer is fixed by the label alone skip the chain: no unknown
// slot, one unknown slot, or a neighbour fill that already sums to one (see
// Shortcut).
//
// Usage:
//
//	r := mixture.Recipe{
//		Name:        "lentil spread",
//		Ingredients: []string{"lentils", "coconut fat", "sunflower oil", "salt"},
//		Given: polytope.Amounts{
//			polytope.Known(0.63), polytope.Unknown(), polytope.Unknown(), polytope.Known(0.016),
//		},
//	}
//	res, err := mixture.Estimate(ctx, r, mixture.WithChain(hitrun.WithSeed(1)))
//	if err != nil { ... }
//	fmt.Print(res.Summary.Format(r.Name))
package mixture
