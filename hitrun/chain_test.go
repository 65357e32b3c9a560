// SPDX-License-Identifier: MIT

package hitrun_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext/prng"

	"github.com/katalvlaran/quaso/hitrun"
	"github.com/katalvlaran/quaso/polytope"
)

// lentilSpread is the 8-ingredient reference recipe: the first and last
// fractions are printed on the label, the rest are unknown.
func lentilSpread(t *testing.T) *polytope.System {
	t.Helper()

	given := polytope.Amounts{polytope.Known(0.63)}
	for i := 0; i < 6; i++ {
		given = append(given, polytope.Unknown())
	}
	given = append(given, polytope.Known(0.016))
	sys, err := polytope.Build(8, given)
	require.NoError(t, err)

	return sys
}

func TestRun_LentilSpread(t *testing.T) {
	t.Parallel()

	sys := lentilSpread(t)
	samples, err := hitrun.Run(context.Background(), sys,
		hitrun.WithIterations(10_000),
		hitrun.WithThinning(100),
		hitrun.WithSeed(1),
	)
	require.NoError(t, err)

	r, c := samples.Dims()
	require.Equal(t, 100, r)
	require.Equal(t, 8, c)

	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, samples)
		require.InDelta(t, 1.0, floats.Sum(row), 1e-6, "row %d", i)
		require.Equal(t, 0.63, row[0], "row %d", i)
		require.Equal(t, 0.016, row[7], "row %d", i)
		require.True(t, polytope.IsDescending(row, 1e-9), "row %d not descending: %v", i, row)
		for _, v := range row {
			require.GreaterOrEqual(t, v, -1e-9)
		}
	}

	// The chain moves: the free slots are not all frozen at x0.
	first, last := mat.Row(nil, 0, samples), mat.Row(nil, r-1, samples)
	assert.False(t, floats.EqualApprox(first, last, 1e-6))
}

func TestRun_DefaultThinning(t *testing.T) {
	t.Parallel()

	samples, err := hitrun.Run(context.Background(), lentilSpread(t),
		hitrun.WithIterations(1000), hitrun.WithSeed(2))
	require.NoError(t, err)
	r, _ := samples.Dims()
	assert.Equal(t, hitrun.DefaultSamples, r)

	// ⌈N/k⌉ when k does not divide N.
	samples, err = hitrun.Run(context.Background(), lentilSpread(t),
		hitrun.WithIterations(1001), hitrun.WithThinning(100), hitrun.WithSeed(2))
	require.NoError(t, err)
	r, _ = samples.Dims()
	assert.Equal(t, 11, r)
}

func TestRun_SeedDeterminism(t *testing.T) {
	t.Parallel()

	sys := lentilSpread(t)
	opts := []hitrun.Option{hitrun.WithIterations(2000), hitrun.WithThinning(50)}

	a, err := hitrun.Run(context.Background(), sys, append(opts, hitrun.WithSeed(42))...)
	require.NoError(t, err)
	b, err := hitrun.Run(context.Background(), sys, append(opts, hitrun.WithSeed(42))...)
	require.NoError(t, err)
	c, err := hitrun.Run(context.Background(), sys, append(opts, hitrun.WithSeed(43))...)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a, b))
	assert.False(t, mat.Equal(a, c))

	// WithSource with an identically seeded MT19937 reproduces WithSeed.
	src := prng.NewMT19937()
	src.Seed(42)
	d, err := hitrun.Run(context.Background(), sys, append(opts, hitrun.WithSource(src))...)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a, d))
}

func TestRun_Progress(t *testing.T) {
	t.Parallel()

	var seen []float64
	_, err := hitrun.Run(context.Background(), lentilSpread(t),
		hitrun.WithIterations(1000),
		hitrun.WithSeed(3),
		hitrun.WithProgress(func(f float64) { seen = append(seen, f) }),
	)
	require.NoError(t, err)

	require.NotEmpty(t, seen)
	assert.Equal(t, 0.0, seen[0])
	assert.Equal(t, 1.0, seen[len(seen)-1])
	assert.Len(t, seen, 101)
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1])
	}
}

func TestRun_Cancellation(t *testing.T) {
	t.Parallel()

	sys := lentilSpread(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := hitrun.Run(ctx, sys, hitrun.WithIterations(1000), hitrun.WithSeed(4))
	require.ErrorIs(t, err, context.Canceled)

	// Cancelled from the progress callback mid-chain.
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	var last float64
	_, err = hitrun.Run(ctx, sys,
		hitrun.WithIterations(100_000),
		hitrun.WithSeed(4),
		hitrun.WithProgress(func(f float64) {
			last = f
			if f >= 0.1 {
				cancel()
			}
		}),
	)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, last, 0.2)
}

func TestRun_WithStart(t *testing.T) {
	t.Parallel()

	sys := lentilSpread(t)
	x0 := []float64{0.63, 0.1, 0.08, 0.06, 0.05, 0.04, 0.024, 0.016}
	samples, err := hitrun.Run(context.Background(), sys,
		hitrun.WithStart(x0), hitrun.WithIterations(100), hitrun.WithThinning(10), hitrun.WithSeed(5))
	require.NoError(t, err)
	assert.Equal(t, x0, mat.Row(nil, 0, samples))

	// A start within tolerance has its label amounts restored exactly.
	nudged := append([]float64(nil), x0...)
	nudged[0] += 1e-12
	nudged[7] -= 1e-12
	samples, err = hitrun.Run(context.Background(), sys,
		hitrun.WithStart(nudged), hitrun.WithIterations(100), hitrun.WithThinning(10), hitrun.WithSeed(5))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.Equal(t, 0.63, samples.At(i, 0), "row %d", i)
		require.Equal(t, 0.016, samples.At(i, 7), "row %d", i)
	}

	outside := []float64{0.63, 0.01, 0.3, 0.0, 0.0, 0.0, 0.044, 0.016}
	_, err = hitrun.Run(context.Background(), sys, hitrun.WithStart(outside), hitrun.WithIterations(10))
	require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	_, err := hitrun.Run(context.Background(), nil)
	require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)

	// Known amounts out of order: 0.1 must not precede 0.2.
	sys, err := polytope.Build(3, polytope.Amounts{polytope.Known(0.1), polytope.Unknown(), polytope.Known(0.2)})
	require.NoError(t, err)
	_, err = hitrun.Run(context.Background(), sys, hitrun.WithIterations(10))
	require.ErrorIs(t, err, polytope.ErrInfeasibleConstraints)

	// Everything known: nothing left to sample.
	sys, err = polytope.Build(2, polytope.Amounts{polytope.Known(0.6), polytope.Known(0.4)})
	require.NoError(t, err)
	_, err = hitrun.Run(context.Background(), sys, hitrun.WithIterations(10))
	require.ErrorIs(t, err, polytope.ErrDegenerateNullSpace)

	// The diagonal x = y is bounded above only.
	sys, err = polytope.NewSystem(
		mat.NewDense(2, 2, []float64{1, 0, 0, 1}), []float64{1, 1},
		mat.NewDense(1, 2, []float64{1, -1}), []float64{0},
	)
	require.NoError(t, err)
	_, err = hitrun.Run(context.Background(), sys, hitrun.WithStart([]float64{0, 0}), hitrun.WithIterations(10))
	require.ErrorIs(t, err, hitrun.ErrUnboundedDirection)
}

func TestRunReplicates(t *testing.T) {
	t.Parallel()

	sys := lentilSpread(t)
	opts := []hitrun.Option{hitrun.WithIterations(1000), hitrun.WithThinning(20), hitrun.WithSeed(9)}

	var (
		mu   sync.Mutex
		seen []float64
	)
	stacked, err := hitrun.RunReplicates(context.Background(), sys, 3,
		append(opts, hitrun.WithProgress(func(f float64) {
			mu.Lock()
			seen = append(seen, f)
			mu.Unlock()
		}))...)
	require.NoError(t, err)
	r, c := stacked.Dims()
	require.Equal(t, 150, r)
	require.Equal(t, 8, c)

	// Replicate 0 is the single chain with the same seed.
	single, err := hitrun.Run(context.Background(), sys, opts...)
	require.NoError(t, err)
	assert.True(t, mat.Equal(single, stacked.Slice(0, 50, 0, 8)))
	assert.False(t, mat.Equal(single, stacked.Slice(50, 100, 0, 8)))

	require.NotEmpty(t, seen)
	assert.Equal(t, 1.0, seen[len(seen)-1])
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1])
	}

	_, err = hitrun.RunReplicates(context.Background(), sys, 0)
	require.ErrorIs(t, err, polytope.ErrInvalidConstraintInput)

	_, err = hitrun.RunReplicates(context.Background(), sys, 2, hitrun.WithSource(prng.NewMT19937()))
	require.ErrorIs(t, err, hitrun.ErrSharedSource)
}

func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { hitrun.WithIterations(0) })
	assert.Panics(t, func() { hitrun.WithThinning(0) })
	assert.Panics(t, func() { hitrun.WithSource(nil) })
	assert.NotPanics(t, func() { hitrun.WithProgress(nil) })
	assert.NotPanics(t, func() { hitrun.WithLogger(nil) })
}
