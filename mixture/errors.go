// SPDX-License-Identifier: MIT

package mixture

import "github.com/katalvlaran/quaso/polytope"

// Sentinels re-exported from polytope so callers of Estimate need a single
// import for errors.Is checks.
var (
	ErrInvalidConstraintInput = polytope.ErrInvalidConstraintInput
	ErrInfeasibleConstraints  = polytope.ErrInfeasibleConstraints
	ErrDegenerateNullSpace    = polytope.ErrDegenerateNullSpace
	ErrUnboundedDirection     = polytope.ErrUnboundedDirection
)

const (
	opShortcut = "mixture.Shortcut"
	opEstimate = "mixture.Estimate"
	opACF      = "mixture.Autocorrelation"
)
