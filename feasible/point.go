// SPDX-License-Identifier: MIT

// Package feasible finds one point of a constraint polytope by linear
// programming.
//
// The general-form LP
//
//	minimize  cᵀ·x
//	s.t.      G·x ≤ h
//	          E·x = e
//
// is converted to standard form with lp.Convert and solved with gonum's
// simplex (lp.Simplex). The objective is irrelevant to the sampler: any
// point satisfying both systems is a valid chain start.
//
// With the default MaxSlack objective the LP is augmented with a slack
// variable τ:
//
//	minimize  −τ
//	s.t.      A·x + τ·1 ≤ Ub
//	          0 ≤ τ ≤ 1
//	          B·x = Eq
//
// so the returned point keeps every inequality strictly slack when the
// polytope has room to do so.
package feasible

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/quaso/polytope"
)

// ErrInfeasibleConstraints is polytope.ErrInfeasibleConstraints, re-exported
// for callers that only import this package.
var ErrInfeasibleConstraints = polytope.ErrInfeasibleConstraints

const opPoint = "feasible.Point"

// Point returns x0 with A·x0 ≤ Ub and B·x0 = Eq.
//
// Implementation:
//   - Stage 1: drop equality rows that are linear combinations of earlier
//     rows (lp.Simplex needs full row rank); consistency of dropped rows is
//     re-checked in Stage 4.
//   - Stage 2: assemble the general-form LP for the selected objective.
//   - Stage 3: lp.Convert + lp.Simplex; recover x = x⁺ − x⁻.
//   - Stage 4: verify the residuals of the full system.
//   - Stage 5: pin coordinates fixed by a single-entry equality row to their
//     exact value (System.Pin) and re-check membership.
//
// Errors:
//   - ErrInvalidConstraintInput for a nil system.
//   - ErrInfeasibleConstraints when the LP has no solution, when the simplex
//     fails for another reason (the lp error stays in the chain), or when the
//     verified residuals exceed the tolerance.
//   - ErrUnboundedDirection when the MinSum objective is unbounded below
//     (possible only for hand-built systems without the simplex row).
func Point(sys *polytope.System, opts ...Option) ([]float64, error) {
	if sys == nil {
		return nil, fmt.Errorf("%s: nil system: %w", opPoint, polytope.ErrInvalidConstraintInput)
	}
	o := gatherOptions(opts...)
	d := sys.Dim()

	// Stage 1 (Equalities).
	keep := independentRows(sys.B, o.rankTol)
	var (
		E mat.Matrix // stays a nil interface when no row survives
		e []float64
	)

	// Stage 2 (Assemble).
	var (
		c []float64
		G *mat.Dense
		h []float64
		n int
	)
	ra, _ := sys.A.Dims()
	switch o.objective {
	case MinSum:
		n = d
		c = make([]float64, n)
		for j := range c {
			c[j] = 1
		}
		G = mat.DenseCopyOf(sys.A)
		h = append([]float64(nil), sys.Ub...)
	default: // MaxSlack
		n = d + 1
		c = make([]float64, n)
		c[d] = -1
		G = mat.NewDense(ra+2, n, nil)
		h = make([]float64, ra+2)
		for i := 0; i < ra; i++ {
			for j := 0; j < d; j++ {
				G.Set(i, j, sys.A.At(i, j))
			}
			G.Set(i, d, 1)
			h[i] = sys.Ub[i]
		}
		G.Set(ra, d, -1) // -τ <= 0
		G.Set(ra+1, d, 1)
		h[ra+1] = maxSlackCap
	}
	if len(keep) > 0 {
		ed := mat.NewDense(len(keep), n, nil)
		e = make([]float64, len(keep))
		for r, i := range keep {
			for j := 0; j < d; j++ {
				ed.Set(r, j, sys.B.At(i, j))
			}
			e[r] = sys.Eq[i]
		}
		E = ed
	}

	// Stage 3 (Solve).
	x, err := solve(c, G, h, E, e, n, o.simplexTol)
	if err != nil {
		return nil, err
	}
	x = x[:d]

	// Stage 4 (Verify).
	slack, eqRes, err := sys.Residuals(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opPoint, err)
	}
	if r := floats.Max(slack); r > o.tol {
		return nil, fmt.Errorf("%s: inequality violated by %g: %w", opPoint, r, ErrInfeasibleConstraints)
	}
	if r := floats.Norm(eqRes, math.Inf(1)); r > o.tol {
		return nil, fmt.Errorf("%s: equality residual %g: %w", opPoint, r, ErrInfeasibleConstraints)
	}

	// Stage 5 (Pin): x⁺ − x⁻ leaves known slots a few ulps off.
	if sys.Pin(x) > 0 && !sys.Contains(x, o.tol) {
		return nil, fmt.Errorf("%s: pinned point left the polytope: %w", opPoint, ErrInfeasibleConstraints)
	}

	return x, nil
}

// solve runs the converted LP and maps its solution back to the n original
// variables. E may be nil (no equality constraints).
func solve(c []float64, G mat.Matrix, h []float64, E mat.Matrix, e []float64, n int, tol float64) ([]float64, error) {
	cStd, aStd, bStd := lp.Convert(c, G, h, E, e)
	_, xStd, err := lp.Simplex(cStd, aStd, bStd, tol, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, fmt.Errorf("%s: %w", opPoint, ErrInfeasibleConstraints)
		case errors.Is(err, lp.ErrUnbounded):
			return nil, fmt.Errorf("%s: objective unbounded: %w", opPoint, polytope.ErrUnboundedDirection)
		}

		return nil, fmt.Errorf("%s: %w: %w", opPoint, ErrInfeasibleConstraints, err)
	}
	// Convert lays the variables out as [x⁺; x⁻; s].
	x := make([]float64, n)
	for j := 0; j < n; j++ {
		x[j] = xStd[j] - xStd[n+j]
	}

	return x, nil
}

// independentRows returns the indices of a maximal set of linearly
// independent rows of B, scanning top to bottom (modified Gram–Schmidt).
func independentRows(B mat.Matrix, tol float64) []int {
	r, c := B.Dims()
	basis := make([][]float64, 0, r)
	keep := make([]int, 0, r)
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, B)
		scale := floats.Norm(row, 2)
		if scale == 0 {
			continue
		}
		for _, q := range basis {
			floats.AddScaled(row, -floats.Dot(row, q), q)
		}
		nrm := floats.Norm(row, 2)
		if nrm <= tol*scale*float64(c) {
			continue
		}
		floats.Scale(1/nrm, row)
		basis = append(basis, row)
		keep = append(keep, i)
	}

	return keep
}
