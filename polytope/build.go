// SPDX-License-Identifier: MIT

package polytope

import "gonum.org/v1/gonum/mat"

// Build returns the constraint system for d ingredient slots and the given
// amounts.
//
// Implementation:
//   - Stage 1: validate d and given (ValidateAmounts).
//   - Stage 2: fill the (2D−1)×D inequality block: −I on top, then one
//     ordering row x_{i+1} − x_i ≤ 0 per adjacent pair.
//   - Stage 3: fill the equality block: the all-ones simplex row followed by
//     one selector row per known slot in ascending slot order.
//
// Behavior highlights:
//   - All right-hand sides of A are zero.
//   - When every slot is known B is D×D and pins a single point; when exactly
//     one slot is unknown its value is forced. Build still returns these
//     systems; package mixture short-circuits them before sampling.
//
// Errors:
//   - ErrInvalidConstraintInput (wrapped with "polytope.Build").
//
// Complexity:
//   - Time O(D²), Space O(D²).
func Build(d int, given Amounts) (*System, error) {
	// Stage 1 (Validate).
	if err := ValidateAmounts(d, given); err != nil {
		return nil, err
	}

	// Stage 2 (Inequalities).
	rows := 2*d - 1
	A := mat.NewDense(rows, d, nil)
	ub := make([]float64, rows)
	for i := 0; i < d; i++ {
		A.Set(i, i, -1) // -x_i <= 0
	}
	for i := 0; i < d-1; i++ {
		A.Set(d+i, i+1, 1) // x_{i+1} - x_i <= 0
		A.Set(d+i, i, -1)
	}

	// Stage 3 (Equalities).
	m := 1 + given.CountKnown()
	B := mat.NewDense(m, d, nil)
	eq := make([]float64, m)
	for j := 0; j < d; j++ {
		B.Set(0, j, 1)
	}
	eq[0] = 1
	row := 1
	for i, am := range given {
		if !am.Known {
			continue
		}
		B.Set(row, i, 1)
		eq[row] = am.Value
		row++
	}

	return &System{A: A, Ub: ub, B: B, Eq: eq}, nil
}
