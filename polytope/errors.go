// SPDX-License-Identifier: MIT
// Package polytope: sentinel error set shared by the whole sampling pipeline.
//
// Every stage (builder, feasibility LP, direction sampler, chain) returns one
// of these sentinels, wrapped with an operation tag. Callers branch with
// errors.Is; nothing in the pipeline panics on user-triggered conditions.
// Panics are reserved for option constructors given nonsensical values.

package polytope

import (
	"errors"
	"fmt"
)

// ERROR PRIORITY (enforced by Build/NewSystem, asserted in tests):
// dimension -> length mismatch -> non-finite -> range -> known-sum.

var (
	// ErrInvalidConstraintInput reports malformed given amounts or an
	// ill-shaped constraint system: wrong lengths, values outside [0,1],
	// NaN/Inf, or a known sum already exceeding 1.
	ErrInvalidConstraintInput = errors.New("quaso: invalid constraint input")

	// ErrInfeasibleConstraints reports that no point satisfies both
	// A·x ≤ Ub and B·x = Eq (the feasibility LP has no solution).
	ErrInfeasibleConstraints = errors.New("quaso: infeasible constraints")

	// ErrDegenerateNullSpace reports that B has full column rank, so no
	// free direction remains although sampling was requested.
	ErrDegenerateNullSpace = errors.New("quaso: degenerate null space")

	// ErrUnboundedDirection reports that ray clipping produced a non-finite
	// step interval: the polytope is unbounded along a sampled direction.
	ErrUnboundedDirection = errors.New("quaso: unbounded direction")
)

// Operation tags for error wrapping (kept as constants for grep-ability).
const (
	opBuild     = "Build"
	opNewSystem = "NewSystem"
	opResiduals = "Residuals"
	opRank      = "EqualityRank"
)

// polytopeErrorf wraps err with an operation tag and a formatted detail.
// The sentinel stays reachable through errors.Is.
func polytopeErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("polytope.%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
