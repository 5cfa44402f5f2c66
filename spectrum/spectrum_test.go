// SPDX-License-Identifier: MIT
package spectrum_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/diffusion"
	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/matrix"
	"github.com/katalvlaran/diffentropy/spectrum"
)

func cloud(t *testing.T, n, d int, seed int64, offset float64) [][]float64 {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, d)
		for j := range rows[i] {
			rows[i][j] = rng.NormFloat64() + offset
		}
	}

	return rows
}

func operator(t *testing.T, rows [][]float64, opts ...kernel.Option) *diffusion.Operator {
	t.Helper()
	ps, err := kernel.NewPointSet(rows)
	require.NoError(t, err)
	g, err := kernel.Build(ps, opts...)
	require.NoError(t, err)
	op, err := diffusion.New(g.Affinity)
	require.NoError(t, err)

	return op
}

func TestExactSpectrum(t *testing.T) {
	t.Parallel()

	op := operator(t, cloud(t, 50, 3, 1, 0), kernel.WithK(6))
	s, err := spectrum.Exact(op)
	require.NoError(t, err)
	require.Len(t, s.Values, 50)
	assert.Equal(t, spectrum.MethodExact, s.Method)
	assert.True(t, sort.IsSorted(sort.Reverse(sort.Float64Slice(s.Values))))
	assert.InDelta(t, 1, s.Values[0], 1e-10)
	for _, v := range s.Values {
		assert.LessOrEqual(t, math.Abs(v), 1+1e-10)
	}

	again, err := spectrum.Exact(op)
	require.NoError(t, err)
	assert.Equal(t, s.Values, again.Values)

	_, err = spectrum.Estimate(nil)
	assert.ErrorIs(t, err, spectrum.ErrNilOperator)
}

func TestTrivialEigenvaluesCountComponents(t *testing.T) {
	t.Parallel()

	rows := append(cloud(t, 30, 2, 2, 0), cloud(t, 30, 2, 3, 1000)...)
	ps, err := kernel.NewPointSet(rows)
	require.NoError(t, err)
	g, err := kernel.Build(ps, kernel.WithK(5))
	require.NoError(t, err)
	op, err := diffusion.New(g.Affinity)
	require.NoError(t, err)

	s, err := spectrum.Exact(op)
	require.NoError(t, err)
	comps := matrix.Components(g.Affinity.Sparse())
	ones := spectrum.CountAbove(s.Values, []float64{1 - 1e-9}, 1)[0]
	assert.Equal(t, len(comps), ones)
	assert.GreaterOrEqual(t, ones, 2)
}

func TestPartialMatchesExactTop(t *testing.T) {
	t.Parallel()

	const k = 8
	op := operator(t, cloud(t, 120, 4, 4, 0), kernel.WithK(10))
	full, err := spectrum.Exact(op)
	require.NoError(t, err)

	byMagnitude := append([]float64(nil), full.Values...)
	sort.Slice(byMagnitude, func(i, j int) bool { return math.Abs(byMagnitude[i]) > math.Abs(byMagnitude[j]) })
	want := byMagnitude[:k]
	sort.Sort(sort.Reverse(sort.Float64Slice(want)))

	s, err := spectrum.Estimate(op,
		spectrum.WithMethod(spectrum.MethodPartial), spectrum.WithPartialK(k),
		spectrum.WithKrylov(60), spectrum.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 120, s.N)
	assert.InDeltaSlice(t, want, s.Values, 1e-6)
}

func TestPartialNeedsSymmetricOperator(t *testing.T) {
	t.Parallel()

	a, err := kernel.NewDenseAffinity(mat.NewDense(2, 2, []float64{1, 2, 1, 1}))
	require.NoError(t, err)
	op, err := diffusion.New(a)
	require.NoError(t, err)

	_, err = spectrum.Estimate(op, spectrum.WithMethod(spectrum.MethodPartial))
	assert.ErrorIs(t, err, spectrum.ErrNotSymmetric)

	// The exact path falls back to the general solver.
	s, err := spectrum.Exact(op)
	require.NoError(t, err)
	assert.InDelta(t, 1, s.Values[0], 1e-12)
}

// ksDistance is the Kolmogorov–Smirnov distance between two samples.
func ksDistance(a, b []float64) float64 {
	x := append([]float64(nil), a...)
	y := append([]float64(nil), b...)
	sort.Float64s(x)
	sort.Float64s(y)
	var worst float64
	for _, v := range append(append([]float64(nil), x...), y...) {
		fx := float64(sort.SearchFloat64s(x, math.Nextafter(v, math.Inf(1)))) / float64(len(x))
		fy := float64(sort.SearchFloat64s(y, math.Nextafter(v, math.Inf(1)))) / float64(len(y))
		worst = math.Max(worst, math.Abs(fx-fy))
	}

	return worst
}

func TestChebyshevApproximatesHistogram(t *testing.T) {
	t.Parallel()

	const n = 80
	op := operator(t, cloud(t, n, 3, 5, 0), kernel.WithKind(kernel.KindGaussian), kernel.WithSigma(1))
	exact, err := spectrum.Exact(op)
	require.NoError(t, err)

	s, err := spectrum.Estimate(op,
		spectrum.WithMethod(spectrum.MethodChebyshev), spectrum.WithOrder(200), spectrum.WithProbes(n))
	require.NoError(t, err)
	require.NotNil(t, s.Density)
	require.Len(t, s.Values, n)
	assert.InDelta(t, 1, floats.Sum(s.Density.Weights), 1e-9)
	assert.InDelta(t, 1, s.Density.Moments[0], 1e-12)
	assert.True(t, sort.Float64sAreSorted(s.Density.Grid))

	assert.InDelta(t, floats.Sum(exact.Values)/n, floats.Sum(s.Values)/n, 0.03)
	assert.Less(t, ksDistance(exact.Values, s.Values), 0.25)
}

func TestChebyshevProbesAreSeeded(t *testing.T) {
	t.Parallel()

	op := operator(t, cloud(t, 60, 2, 6, 0), kernel.WithK(5))
	opts := []spectrum.Option{
		spectrum.WithMethod(spectrum.MethodChebyshev), spectrum.WithProbes(10), spectrum.WithSeed(42),
	}
	a, err := spectrum.Estimate(op, opts...)
	require.NoError(t, err)
	b, err := spectrum.Estimate(op, opts...)
	require.NoError(t, err)
	assert.Equal(t, a.Values, b.Values)
	assert.Equal(t, 10, a.Density.Probes)
}

func TestPowAndCountAbove(t *testing.T) {
	t.Parallel()

	vals := []float64{1, 0.9, 0.5, -0.7}
	assert.InDeltaSlice(t, []float64{1, 0.81, 0.25, 0.49}, spectrum.Pow(vals, 2), 1e-15)
	assert.Equal(t, vals, spectrum.Pow(vals, 1))
	assert.Equal(t, []int{2, 3}, spectrum.CountAbove(vals, []float64{0.8, 0.2}, 1))
	assert.Equal(t, []int{2, 4}, spectrum.CountAbove(vals, []float64{0.8, 0.2}, 2))

	m, err := spectrum.ParseMethod("Chebyshev")
	require.NoError(t, err)
	assert.Equal(t, spectrum.MethodChebyshev, m)
	_, err = spectrum.ParseMethod("lobpcg")
	assert.ErrorIs(t, err, spectrum.ErrUnknownMethod)
}
