// SPDX-License-Identifier: MIT

// Package polytope - System type and pure residual queries.
//
// Purpose:
//   - Hold the pair of linear systems (A, Ub) and (B, Eq) as gonum matrices.
//   - Answer membership/residual questions without mutating anything, so a
//     single *System can be shared read-only across concurrent chains.
//
// Complexity quicksheet:
//   - Residuals: O((2D−1)·D + m·D); Contains: same; EqualityRank: one thin SVD of B.

package polytope

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Numeric policy.
const (
	// DefaultSnapTolerance is the threshold under which singular values and
	// basis entries are treated as exact zeros.
	DefaultSnapTolerance = 1e-12

	// DefaultSumTolerance is the tolerance for "fractions sum to one" checks.
	DefaultSumTolerance = 1e-9

	// DefaultEqualityTolerance is the residual bound for B·x = Eq.
	DefaultEqualityTolerance = 1e-8
)

// System is the constraint pair describing the admissible mixtures:
//
//	A·x ≤ Ub, B·x = Eq.
//
// A is (2D−1)×D for systems produced by Build, but NewSystem accepts any
// row count so callers can add constraints of their own.
type System struct {
	A  *mat.Dense // inequality matrix
	Ub []float64  // inequality right-hand side, len == rows(A)
	B  *mat.Dense // equality matrix
	Eq []float64  // equality right-hand side, len == rows(B)
}

// NewSystem validates shapes and finiteness and returns a System that owns
// copies of the inputs.
func NewSystem(A mat.Matrix, ub []float64, B mat.Matrix, eq []float64) (*System, error) {
	if A == nil || B == nil {
		return nil, polytopeErrorf(opNewSystem, ErrInvalidConstraintInput, "nil matrix")
	}
	ra, ca := A.Dims()
	rb, cb := B.Dims()
	if ca != cb {
		return nil, polytopeErrorf(opNewSystem, ErrInvalidConstraintInput,
			"column mismatch: A is %dx%d, B is %dx%d", ra, ca, rb, cb)
	}
	if len(ub) != ra || len(eq) != rb {
		return nil, polytopeErrorf(opNewSystem, ErrInvalidConstraintInput,
			"rhs length mismatch: len(Ub)=%d rows(A)=%d len(Eq)=%d rows(B)=%d", len(ub), ra, len(eq), rb)
	}
	if err := validateFinite(A, ub, B, eq); err != nil {
		return nil, polytopeErrorf(opNewSystem, err, "non-finite entry")
	}

	return &System{
		A:  mat.DenseCopyOf(A),
		Ub: append([]float64(nil), ub...),
		B:  mat.DenseCopyOf(B),
		Eq: append([]float64(nil), eq...),
	}, nil
}

// Dim returns D, the number of ingredient slots.
func (s *System) Dim() int {
	_, c := s.A.Dims()

	return c
}

// Clone returns a deep copy.
func (s *System) Clone() *System {
	return &System{
		A:  mat.DenseCopyOf(s.A),
		Ub: append([]float64(nil), s.Ub...),
		B:  mat.DenseCopyOf(s.B),
		Eq: append([]float64(nil), s.Eq...),
	}
}

// Residuals returns the inequality slack A·x − Ub (≤ 0 when feasible) and
// the equality residual B·x − Eq (≈ 0 when feasible).
func (s *System) Residuals(x []float64) (slack, eqRes []float64, err error) {
	d := s.Dim()
	if len(x) != d {
		return nil, nil, polytopeErrorf(opResiduals, ErrInvalidConstraintInput, "len(x)=%d, want %d", len(x), d)
	}
	xv := mat.NewVecDense(d, x)

	ra, _ := s.A.Dims()
	sv := mat.NewVecDense(ra, nil)
	sv.MulVec(s.A, xv)
	slack = sv.RawVector().Data
	for i := range slack {
		slack[i] -= s.Ub[i]
	}

	rb, _ := s.B.Dims()
	ev := mat.NewVecDense(rb, nil)
	ev.MulVec(s.B, xv)
	eqRes = ev.RawVector().Data
	for i := range eqRes {
		eqRes[i] -= s.Eq[i]
	}

	return slack, eqRes, nil
}

// Contains reports whether x satisfies A·x ≤ Ub + tol and |B·x − Eq| ≤ tol.
func (s *System) Contains(x []float64, tol float64) bool {
	slack, eqRes, err := s.Residuals(x)
	if err != nil {
		return false
	}
	for _, v := range slack {
		if v > tol || math.IsNaN(v) {
			return false
		}
	}
	for _, v := range eqRes {
		if math.Abs(v) > tol || math.IsNaN(v) {
			return false
		}
	}

	return true
}

// Pin overwrites, in place, every coordinate that an equality row fixes on
// its own (a row of B with exactly one non-zero entry) with Eq[i]/B[i][j],
// and returns how many coordinates it set. For systems from Build this puts
// the known label amounts back bit for bit.
func (s *System) Pin(x []float64) int {
	rb, c := s.B.Dims()
	if len(x) != c {
		return 0
	}
	n := 0
	for i := 0; i < rb; i++ {
		col, nz := -1, 0
		for j := 0; j < c; j++ {
			if s.B.At(i, j) != 0 {
				col = j
				nz++
			}
		}
		if nz != 1 {
			continue
		}
		x[col] = s.Eq[i] / s.B.At(i, col)
		n++
	}

	return n
}

// EqualityRank returns the numerical rank of B: the number of singular
// values above DefaultSnapTolerance·max(1, σ_max).
func (s *System) EqualityRank() (int, error) {
	var svd mat.SVD
	if ok := svd.Factorize(s.B, mat.SVDNone); !ok {
		return 0, polytopeErrorf(opRank, ErrDegenerateNullSpace, "SVD of B did not converge")
	}
	sv := svd.Values(nil)

	return countAbove(sv, DefaultSnapTolerance), nil
}

// Free returns D − rank(B): the dimension of the equality hyperplane and
// hence the number of independent sampling directions.
func (s *System) Free() (int, error) {
	r, err := s.EqualityRank()
	if err != nil {
		return 0, err
	}

	return s.Dim() - r, nil
}

// countAbove counts singular values above tol scaled by the largest one
// (descending input, as returned by gonum).
func countAbove(sv []float64, tol float64) int {
	if len(sv) == 0 {
		return 0
	}
	cut := tol * math.Max(1, sv[0])
	n := 0
	for _, v := range sv {
		if v > cut {
			n++
		}
	}

	return n
}
