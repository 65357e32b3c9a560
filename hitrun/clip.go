// SPDX-License-Identifier: MIT

package hitrun

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/quaso/polytope"
)

// ErrUnboundedDirection is polytope.ErrUnboundedDirection, re-exported.
var ErrUnboundedDirection = polytope.ErrUnboundedDirection

const (
	opClip    = "hitrun.Clip"
	opStep    = "hitrun.Step"
	opStepper = "hitrun.NewStepper"
)

// Stepper performs hit-and-run steps against a fixed inequality system
// A·x ≤ Ub. It owns scratch vectors for A·x and A·s, so one Stepper must not
// be shared between goroutines.
type Stepper struct {
	a  *mat.Dense
	ub []float64
	y  *mat.VecDense // A·x, then A·x − Ub
	z  *mat.VecDense // A·s
}

// NewStepper copies A and Ub.
func NewStepper(A mat.Matrix, ub []float64) (*Stepper, error) {
	if A == nil {
		return nil, fmt.Errorf("%s: nil matrix: %w", opStepper, polytope.ErrInvalidConstraintInput)
	}
	r, _ := A.Dims()
	if len(ub) != r {
		return nil, fmt.Errorf("%s: len(Ub)=%d, rows(A)=%d: %w", opStepper, len(ub), r, polytope.ErrInvalidConstraintInput)
	}

	return &Stepper{
		a:  mat.DenseCopyOf(A),
		ub: append([]float64(nil), ub...),
		y:  mat.NewVecDense(r, nil),
		z:  mat.NewVecDense(r, nil),
	}, nil
}

// Dim returns the number of columns of A.
func (st *Stepper) Dim() int {
	_, c := st.a.Dims()

	return c
}

// Clip returns the interval [lower, upper] of t for which x + t·s stays in
// A·x ≤ Ub. Rows with (A·s)_k == 0 impose no bound.
//
// Errors:
//   - ErrInvalidConstraintInput if len(x) or len(s) differs from Dim.
//   - ErrUnboundedDirection if either end is infinite or NaN.
//
// Complexity: O(R·D) for R rows of A.
func (st *Stepper) Clip(x, s []float64) (lower, upper float64, err error) {
	d := st.Dim()
	if len(x) != d || len(s) != d {
		return 0, 0, fmt.Errorf("%s: len(x)=%d len(s)=%d, want %d: %w",
			opClip, len(x), len(s), d, polytope.ErrInvalidConstraintInput)
	}
	st.y.MulVec(st.a, mat.NewVecDense(d, x))
	st.z.MulVec(st.a, mat.NewVecDense(d, s))
	y := st.y.RawVector().Data
	z := st.z.RawVector().Data
	floats.Sub(y, st.ub)

	lower, upper = math.Inf(-1), math.Inf(1)
	for k, zk := range z {
		switch {
		case zk > 0:
			upper = math.Min(upper, -y[k]/zk)
		case zk < 0:
			lower = math.Max(lower, -y[k]/zk)
		}
	}
	if math.IsInf(lower, 0) || math.IsInf(upper, 0) || math.IsNaN(lower) || math.IsNaN(upper) {
		return lower, upper, fmt.Errorf("%s: step interval [%g, %g]: %w", opClip, lower, upper, ErrUnboundedDirection)
	}

	return lower, upper, nil
}

// Advance moves x in place to x + t·s with t ~ Uniform[lower, upper] and
// returns t.
func (st *Stepper) Advance(x, s []float64, src rand.Source) (float64, error) {
	lower, upper, err := st.Clip(x, s)
	if err != nil {
		return 0, err
	}
	t := uniform(lower, upper, src)
	floats.AddScaled(x, t, s)

	return t, nil
}

// uniform draws from [lower, upper]. Round-off can leave a point a hair
// outside the polytope, which may invert the interval by a few ulps; the
// draw then still lands between the two ends.
func uniform(lower, upper float64, src rand.Source) float64 {
	if lower == upper {
		return lower
	}
	if lower > upper {
		lower, upper = upper, lower
	}

	return distuv.Uniform{Min: lower, Max: upper, Src: src}.Rand()
}

// Clip is the one-shot form of Stepper.Clip.
func Clip(A mat.Matrix, ub, x, s []float64) (lower, upper float64, err error) {
	st, err := NewStepper(A, ub)
	if err != nil {
		return 0, 0, err
	}

	return st.Clip(x, s)
}

// Step returns x + t·s with t drawn uniformly from the clip interval. x is
// not modified.
func Step(A mat.Matrix, ub, x, s []float64, src rand.Source) (next []float64, t float64, err error) {
	st, err := NewStepper(A, ub)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opStep, err)
	}
	next = append([]float64(nil), x...)
	if t, err = st.Advance(next, s, src); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opStep, err)
	}

	return next, t, nil
}
