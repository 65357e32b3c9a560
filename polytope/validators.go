// SPDX-License-Identifier: MIT
// Package: polytope
//
// Purpose:
//   - Single source of truth for the input checks run by Build and NewSystem.
//   - Return plain sentinels (no wrapping); call sites wrap with their op tag.
//
// Note:
//   - Checks follow the documented priority: length -> finiteness -> range -> sum.

package polytope

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// validateFinite rejects NaN/Inf anywhere in the two systems.
func validateFinite(A mat.Matrix, ub []float64, B mat.Matrix, eq []float64) error {
	for _, m := range []mat.Matrix{A, B} {
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if isNonFinite(m.At(i, j)) {
					return ErrInvalidConstraintInput
				}
			}
		}
	}
	for _, v := range ub {
		if isNonFinite(v) {
			return ErrInvalidConstraintInput
		}
	}
	for _, v := range eq {
		if isNonFinite(v) {
			return ErrInvalidConstraintInput
		}
	}

	return nil
}

// ValidateAmounts checks a given-amounts vector against slot count d:
// matching length, finite known values inside [0,1], and a known sum that
// does not exceed 1 beyond DefaultSumTolerance.
func ValidateAmounts(d int, given Amounts) error {
	if d < 1 {
		return polytopeErrorf(opBuild, ErrInvalidConstraintInput, "need at least one ingredient, got %d", d)
	}
	if len(given) != d {
		return polytopeErrorf(opBuild, ErrInvalidConstraintInput, "len(given)=%d, want %d", len(given), d)
	}
	for i, am := range given {
		if !am.Known {
			continue
		}
		if isNonFinite(am.Value) {
			return polytopeErrorf(opBuild, ErrInvalidConstraintInput, "slot %d is not finite", i)
		}
		if am.Value < 0 || am.Value > 1 {
			return polytopeErrorf(opBuild, ErrInvalidConstraintInput, "slot %d = %g outside [0,1]", i, am.Value)
		}
	}
	if s := given.KnownSum(); s > 1+DefaultSumTolerance {
		return polytopeErrorf(opBuild, ErrInvalidConstraintInput, "known amounts sum to %g > 1", s)
	}

	return nil
}

// IsDescending reports whether x is non-increasing within tol.
func IsDescending(x []float64, tol float64) bool {
	for i := 0; i+1 < len(x); i++ {
		if x[i+1]-x[i] > tol {
			return false
		}
	}

	return true
}
