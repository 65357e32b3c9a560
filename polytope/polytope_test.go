// SPDX-License-Identifier: MIT

package polytope_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/quaso/polytope"
)

// leberwurst is the eight-ingredient spread used throughout the tests:
// lentils 0.63 first, smoked salt 0.016 last, everything else unknown.
func leberwurst() polytope.Amounts {
	return polytope.Amounts{
		polytope.Known(0.63),
		polytope.Unknown(), polytope.Unknown(), polytope.Unknown(),
		polytope.Unknown(), polytope.Unknown(), polytope.Unknown(),
		polytope.Known(0.016),
	}
}

// TestBuild_Layout checks every block of A, Ub, B and Eq for D=8.
func TestBuild_Layout(t *testing.T) {
	t.Parallel()

	const d = 8
	sys, err := polytope.Build(d, leberwurst())
	require.NoError(t, err)

	ra, ca := sys.A.Dims()
	require.Equal(t, 2*d-1, ra)
	require.Equal(t, d, ca)
	require.Len(t, sys.Ub, 2*d-1)
	for _, v := range sys.Ub {
		assert.Zero(t, v)
	}

	// Non-negativity block is -I.
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			want := 0.0
			if i == j {
				want = -1
			}
			assert.Equal(t, want, sys.A.At(i, j), "A[%d,%d]", i, j)
		}
	}
	// Ordering rows: x_{i+1} - x_i <= 0.
	for i := 0; i < d-1; i++ {
		row := mat.Row(nil, d+i, sys.A)
		for j, v := range row {
			switch j {
			case i:
				assert.Equal(t, -1.0, v)
			case i + 1:
				assert.Equal(t, 1.0, v)
			default:
				assert.Zero(t, v)
			}
		}
	}

	rb, cb := sys.B.Dims()
	require.Equal(t, 3, rb)
	require.Equal(t, d, cb)
	assert.Equal(t, []float64{1, 0.63, 0.016}, sys.Eq)
	for j := 0; j < d; j++ {
		assert.Equal(t, 1.0, sys.B.At(0, j))
	}
	assert.Equal(t, 1.0, sys.B.At(1, 0))
	assert.Equal(t, 1.0, sys.B.At(2, 7))
	assert.Equal(t, 1.0, mat.Sum(sys.B.RowView(1)))
	assert.Equal(t, 1.0, mat.Sum(sys.B.RowView(2)))
}

func TestBuild_SingleIngredient(t *testing.T) {
	t.Parallel()

	sys, err := polytope.Build(1, polytope.Amounts{polytope.Unknown()})
	require.NoError(t, err)
	ra, _ := sys.A.Dims()
	assert.Equal(t, 1, ra)
	assert.True(t, sys.Contains([]float64{1}, 1e-12))
}

func TestBuild_InvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		d     int
		given polytope.Amounts
	}{
		{"zero slots", 0, nil},
		{"length mismatch", 3, polytope.Amounts{polytope.Unknown()}},
		{"NaN", 2, polytope.Amounts{polytope.Known(math.NaN()), polytope.Unknown()}},
		{"Inf", 2, polytope.Amounts{polytope.Known(math.Inf(1)), polytope.Unknown()}},
		{"negative", 2, polytope.Amounts{polytope.Known(-0.1), polytope.Unknown()}},
		{"above one", 2, polytope.Amounts{polytope.Known(1.5), polytope.Unknown()}},
		{"sum above one", 3, polytope.Amounts{polytope.Known(0.7), polytope.Known(0.5), polytope.Unknown()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := polytope.Build(tc.d, tc.given)
			require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)
		})
	}
}

func TestSystem_ResidualsAndContains(t *testing.T) {
	t.Parallel()

	sys, err := polytope.Build(3, polytope.Amounts{polytope.Known(0.5), polytope.Unknown(), polytope.Unknown()})
	require.NoError(t, err)

	inside := []float64{0.5, 0.3, 0.2}
	slack, eqRes, err := sys.Residuals(inside)
	require.NoError(t, err)
	for _, v := range slack {
		assert.Less(t, v, 0.0)
	}
	for _, v := range eqRes {
		assert.InDelta(t, 0, v, 1e-15)
	}
	assert.True(t, sys.Contains(inside, 1e-12))

	// Violates ordering (x2 > x1).
	assert.False(t, sys.Contains([]float64{0.5, 0.2, 0.3}, 1e-12))
	// Violates the simplex row.
	assert.False(t, sys.Contains([]float64{0.5, 0.3, 0.1}, 1e-12))

	_, _, err = sys.Residuals([]float64{1})
	require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)
}

func TestSystem_Pin(t *testing.T) {
	t.Parallel()

	sys, err := polytope.Build(8, leberwurst())
	require.NoError(t, err)

	// Known slots a few ulps off, as an LP solution leaves them.
	x := []float64{0.63 + 1e-16, 0.1, 0.08, 0.06, 0.05, 0.04, 0.024, 0.016 - 3.5e-17}
	assert.Equal(t, 2, sys.Pin(x))
	assert.Equal(t, 0.63, x[0])
	assert.Equal(t, 0.016, x[7])
	assert.Equal(t, 0.1, x[1], "free slots are untouched")

	// Scaled single-entry rows divide through; the sum row is skipped.
	scaled, err := polytope.NewSystem(
		mat.NewDense(1, 2, []float64{-1, 0}), []float64{0},
		mat.NewDense(2, 2, []float64{1, 1, 0, 4}), []float64{1, 1},
	)
	require.NoError(t, err)
	y := []float64{0.75, 0.25000000001}
	assert.Equal(t, 1, scaled.Pin(y))
	assert.Equal(t, []float64{0.75, 0.25}, y)

	assert.Equal(t, 0, sys.Pin([]float64{1}))
}

func TestSystem_RankAndFree(t *testing.T) {
	t.Parallel()

	sys, err := polytope.Build(8, leberwurst())
	require.NoError(t, err)
	r, err := sys.EqualityRank()
	require.NoError(t, err)
	assert.Equal(t, 3, r)
	free, err := sys.Free()
	require.NoError(t, err)
	assert.Equal(t, 5, free)

	// Fully specified vector: the simplex row is the sum of the selectors.
	full := polytope.Amounts{polytope.Known(0.5), polytope.Known(0.3), polytope.Known(0.2)}
	sys, err = polytope.Build(3, full)
	require.NoError(t, err)
	free, err = sys.Free()
	require.NoError(t, err)
	assert.Equal(t, 0, free)
}

func TestNewSystem_Validation(t *testing.T) {
	t.Parallel()

	A := mat.NewDense(2, 2, []float64{-1, 0, 0, -1})
	B := mat.NewDense(1, 2, []float64{1, 1})

	sys, err := polytope.NewSystem(A, []float64{0, 0}, B, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, 2, sys.Dim())

	// Copies, not aliases.
	A.Set(0, 0, 42)
	assert.Equal(t, -1.0, sys.A.At(0, 0))

	_, err = polytope.NewSystem(A, []float64{0}, B, []float64{1})
	require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)

	_, err = polytope.NewSystem(A, []float64{0, 0}, mat.NewDense(1, 3, nil), []float64{1})
	require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)

	_, err = polytope.NewSystem(A, []float64{0, math.NaN()}, B, []float64{1})
	require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)

	_, err = polytope.NewSystem(nil, nil, B, []float64{1})
	require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)
}

func TestAmounts_Helpers(t *testing.T) {
	t.Parallel()

	half, fifth := 0.5, 0.2
	g := polytope.FromPointers([]*float64{&half, nil, &fifth})
	assert.Equal(t, 1, g.CountUnknown())
	assert.Equal(t, 2, g.CountKnown())
	assert.InDelta(t, 0.7, g.KnownSum(), 1e-15)
	assert.Equal(t, "[0.5 ? 0.2]", g.String())

	v := g.Values()
	assert.Equal(t, 0.5, v[0])
	assert.True(t, math.IsNaN(v[1]))

	c := g.Clone()
	c[0] = polytope.Unknown()
	assert.True(t, g[0].Known, "Clone must not alias")

	assert.True(t, polytope.IsDescending([]float64{0.5, 0.3, 0.3, 0}, 0))
	assert.False(t, polytope.IsDescending([]float64{0.3, 0.5}, 1e-9))
}
