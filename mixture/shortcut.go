// SPDX-License-Identifier: MIT

package mixture

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/quaso/polytope"
)

// Shortcut returns the mixture directly when the label pins it down:
//
//   - no unknown slot: the given vector itself, which must sum to one;
//   - one unknown slot: 1 − Σ known;
//   - right fill: every unknown copies its right neighbour, trailing
//     unknowns become 0;
//   - left fill: every unknown copies its left neighbour, leading unknowns
//     become 0.
//
// A fill is accepted only when it sums to one and is non-increasing; it is
// then the only point of the polytope. ok is false when the chain must run.
//
// Errors:
//   - ErrInvalidConstraintInput for malformed amounts, a complete vector not
//     summing to one, or a known sum above one.
//   - ErrInfeasibleConstraints when a forced vector breaks the descending
//     order.
func Shortcut(given polytope.Amounts) (x []float64, ok bool, err error) {
	if err = polytope.ValidateAmounts(len(given), given); err != nil {
		return nil, false, fmt.Errorf("%s: %w", opShortcut, err)
	}
	tol := polytope.DefaultSumTolerance

	switch given.CountUnknown() {
	case 0:
		x = given.Values()
		if s := floats.Sum(x); math.Abs(s-1) > tol {
			return nil, false, fmt.Errorf("%s: complete amounts sum to %g, want 1: %w",
				opShortcut, s, ErrInvalidConstraintInput)
		}

		return forced(x, tol)
	case 1:
		x = given.Values()
		rest := math.Max(0, 1-given.KnownSum())
		for i := range x {
			if math.IsNaN(x[i]) {
				x[i] = rest
			}
		}

		return forced(x, tol)
	}

	for _, fill := range []func(polytope.Amounts) []float64{rightFill, leftFill} {
		x = fill(given)
		if math.Abs(floats.Sum(x)-1) <= tol && polytope.IsDescending(x, tol) {
			return x, true, nil
		}
	}

	return nil, false, nil
}

// forced accepts a vector with no degree of freedom left, provided it keeps
// the descending order.
func forced(x []float64, tol float64) ([]float64, bool, error) {
	if !polytope.IsDescending(x, tol) {
		return nil, false, fmt.Errorf("%s: %v is not descending: %w", opShortcut, x, ErrInfeasibleConstraints)
	}

	return x, true, nil
}

func rightFill(given polytope.Amounts) []float64 {
	x := make([]float64, len(given))
	for i := len(given) - 1; i >= 0; i-- {
		switch {
		case given[i].Known:
			x[i] = given[i].Value
		case i+1 < len(given):
			x[i] = x[i+1]
		}
	}

	return x
}

func leftFill(given polytope.Amounts) []float64 {
	x := make([]float64, len(given))
	for i := range given {
		switch {
		case given[i].Known:
			x[i] = given[i].Value
		case i > 0:
			x[i] = x[i-1]
		}
	}

	return x
}
