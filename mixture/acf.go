// SPDX-License-Identifier: MIT

package mixture

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultACFLags is the number of lags reported by the CLI.
const DefaultACFLags = 50

// Autocorrelation returns the sample autocorrelation of column col for lags
// 0..lags-1; entry 0 is 1. Lag l correlates rows [0, n−l) with [l, n).
// A constant column yields NaN for every lag above 0.
//
// Errors: ErrInvalidConstraintInput when col is out of range, lags < 1, or
// the matrix has fewer than lags+1 rows.
//
// Complexity: O(lags · n).
func Autocorrelation(samples mat.Matrix, col, lags int) ([]float64, error) {
	r, c := samples.Dims()
	if col < 0 || col >= c {
		return nil, fmt.Errorf("%s: column %d outside [0,%d): %w", opACF, col, c, ErrInvalidConstraintInput)
	}
	if lags < 1 || r < lags+1 {
		return nil, fmt.Errorf("%s: %d lags need more than %d rows: %w", opACF, lags, r, ErrInvalidConstraintInput)
	}

	x := mat.Col(nil, col, samples)
	out := make([]float64, lags)
	out[0] = 1
	for l := 1; l < lags; l++ {
		out[l] = stat.Correlation(x[:r-l], x[l:], nil)
	}

	return out, nil
}
