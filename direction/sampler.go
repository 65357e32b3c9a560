// SPDX-License-Identifier: MIT

package direction

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/quaso/polytope"
)

// ErrDegenerateNullSpace is polytope.ErrDegenerateNullSpace, re-exported.
var ErrDegenerateNullSpace = polytope.ErrDegenerateNullSpace

const opNew = "direction.New"

// Sampler draws unit vectors from the null space of a fixed matrix B.
//
//   - basis is R, D×K with orthonormal columns spanning null(B).
//   - weight[k] multiplies the k-th standard normal; it is √S_k of the
//     square-rooted singular values, i.e. S_k^(1/4) of P's raw spectrum.
//     For an exact projector every kept S_k is 1, so the weights only absorb
//     round-off.
type Sampler struct {
	dim    int
	basis  *mat.Dense
	weight []float64
}

// New precomputes the null-space basis of B.
//
// Implementation:
//   - Stage 1: thin SVD of B; keep right singular vectors whose singular
//     value exceeds snap·max(1, σ_max).
//   - Stage 2: P = I − V·Vᵀ.
//   - Stage 3: SVD of P; snap small singular values and basis entries to 0.
//   - Stage 4: collect the columns with non-zero singular value.
//
// Errors:
//   - ErrInvalidConstraintInput for a nil or empty B.
//   - ErrDegenerateNullSpace when an SVD fails or no free direction remains.
func New(B mat.Matrix, opts ...Option) (*Sampler, error) {
	if B == nil {
		return nil, fmt.Errorf("%s: nil matrix: %w", opNew, polytope.ErrInvalidConstraintInput)
	}
	o := gatherOptions(opts...)
	_, d := B.Dims()

	// Stage 1 (Row space).
	var svdB mat.SVD
	if ok := svdB.Factorize(B, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%s: SVD of B did not converge: %w", opNew, ErrDegenerateNullSpace)
	}
	sigma := svdB.Values(nil)
	var v mat.Dense
	svdB.VTo(&v)
	r := 0
	cut := o.snap * math.Max(1, sigma[0])
	for _, s := range sigma {
		if s > cut {
			r++
		}
	}

	// Stage 2 (Projector).
	P := mat.NewDense(d, d, nil)
	if r > 0 {
		vr := v.Slice(0, d, 0, r)
		P.Mul(vr, vr.T())
		P.Scale(-1, P)
	}
	for i := 0; i < d; i++ {
		P.Set(i, i, P.At(i, i)+1)
	}

	// Stage 3 (Snap).
	var svdP mat.SVD
	if ok := svdP.Factorize(P, mat.SVDFull); !ok {
		return nil, fmt.Errorf("%s: SVD of projector did not converge: %w", opNew, ErrDegenerateNullSpace)
	}
	spectrum := svdP.Values(nil)
	var q mat.Dense
	svdP.UTo(&q)
	for i, s := range spectrum {
		if s < o.snap {
			spectrum[i] = 0
		}
	}
	q.Apply(func(_, _ int, x float64) float64 {
		if math.Abs(x) < o.snap {
			return 0
		}

		return x
	}, &q)

	// Stage 4 (Basis).
	cols := make([]int, 0, d)
	for i, s := range spectrum {
		if s != 0 {
			cols = append(cols, i)
		}
	}
	k := len(cols)
	if k == 0 {
		return nil, fmt.Errorf("%s: rank(B)=%d leaves no free direction in %d dimensions: %w",
			opNew, r, d, ErrDegenerateNullSpace)
	}
	basis := mat.NewDense(d, k, nil)
	weight := make([]float64, k)
	col := make([]float64, d)
	for j, c := range cols {
		mat.Col(col, c, &q)
		basis.SetCol(j, col)
		weight[j] = math.Sqrt(math.Sqrt(spectrum[c]))
	}

	return &Sampler{dim: d, basis: basis, weight: weight}, nil
}

// Dim returns D, the length of every sampled vector.
func (s *Sampler) Dim() int { return s.dim }

// Rank returns K, the dimension of the null space.
func (s *Sampler) Rank() int { return len(s.weight) }

// Basis returns a copy of R (D×K).
func (s *Sampler) Basis() *mat.Dense { return mat.DenseCopyOf(s.basis) }

// Sample returns a fresh unit vector in null(B). A nil src uses the global
// math/rand/v2 generator.
func (s *Sampler) Sample(src rand.Source) []float64 {
	return s.SampleInto(make([]float64, s.dim), src)
}

// SampleInto writes a unit vector in null(B) into dst (len D) and returns
// it. It does not allocate.
func (s *Sampler) SampleInto(dst []float64, src rand.Source) []float64 {
	if len(dst) != s.dim {
		panic(fmt.Sprintf("direction: SampleInto: len(dst)=%d, want %d", len(dst), s.dim))
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	k := len(s.weight)
	raw := s.basis.RawMatrix()
	for attempt := 0; attempt < DefaultMaxRedraws; attempt++ {
		for i := range dst {
			dst[i] = 0
		}
		for j := 0; j < k; j++ {
			z := s.weight[j] * normal.Rand()
			for i := 0; i < s.dim; i++ {
				dst[i] += raw.Data[i*raw.Stride+j] * z
			}
		}
		if n := floats.Norm(dst, 2); n > 0 {
			floats.Scale(1/n, dst)

			return dst
		}
	}
	// Zero-norm draws have probability zero; reaching here means the source
	// is broken (e.g. constant). Fall back to the first basis direction.
	mat.Col(dst, 0, s.basis)
	floats.Scale(1/floats.Norm(dst, 2), dst)

	return dst
}

// InSpan reports whether v lies in span(R) within tol·max(1, ‖v‖).
func (s *Sampler) InSpan(v []float64, tol float64) bool {
	if len(v) != s.dim {
		return false
	}
	_, k := s.basis.Dims()
	vv := mat.NewVecDense(s.dim, append([]float64(nil), v...))
	coef := mat.NewVecDense(k, nil)
	coef.MulVec(s.basis.T(), vv)
	proj := mat.NewVecDense(s.dim, nil)
	proj.MulVec(s.basis, coef)
	proj.SubVec(vv, proj)

	return mat.Norm(proj, 2) <= tol*math.Max(1, mat.Norm(vv, 2))
}
