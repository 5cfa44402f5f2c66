// SPDX-License-Identifier: MIT
package extrema_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/diffentropy/extrema"
	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/matrix"
)

func pathLaplacian(t *testing.T, n int) *matrix.CSR {
	t.Helper()
	coo := matrix.NewCOO(n, n)
	for i := 0; i+1 < n; i++ {
		require.NoError(t, coo.Add(i, i+1, 1))
		require.NoError(t, coo.Add(i+1, i, 1))
	}
	l, err := matrix.Laplacian(coo.ToCSR(matrix.DupSum))
	require.NoError(t, err)
	return l
}

func TestReducedToOriginalMultiStep(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, extrema.ReducedToOriginal([]int{2, 5}, 2))
	assert.Equal(t, 6, extrema.ReducedToOriginal([]int{2, 5}, 4))
	assert.Equal(t, 1, extrema.ReducedToOriginal([]int{2, 5}, 1))
	assert.Equal(t, 0, extrema.ReducedToOriginal(nil, 0))
	assert.Equal(t, 3, extrema.ReducedToOriginal([]int{0, 1, 2}, 0))

	// Remove random positions one at a time and compare with an explicit
	// list of surviving indices.
	rng := rand.New(rand.NewSource(1))
	const n = 50
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	var removed []int
	for step := 0; step < 30; step++ {
		r := rng.Intn(len(remaining))
		got := extrema.ReducedToOriginal(removed, r)
		require.Equal(t, remaining[r], got, "step %d", step)

		remaining = append(remaining[:r], remaining[r+1:]...)
		removed = append(removed, got)
		sort.Ints(removed)
	}
}

func TestFiedlerOfPath(t *testing.T) {
	t.Parallel()

	const n = 20
	v, lambda, err := extrema.Fiedler(pathLaplacian(t, n))
	require.NoError(t, err)
	assert.InDelta(t, 2-2*math.Cos(math.Pi/n), lambda, 1e-8)
	assert.InDelta(t, 0, floats.Sum(v), 1e-8)
	assert.InDelta(t, 1, floats.Norm(v, 2), 1e-12)

	// monotone along the path, largest magnitude entry positive
	increasing := v[n-1] > v[0]
	for i := 0; i+1 < n; i++ {
		assert.Equal(t, increasing, v[i+1] > v[i])
	}
	assert.Greater(t, floats.Max(v), -floats.Min(v)-1e-6)
}

func TestPathExtremaAreEndpoints(t *testing.T) {
	t.Parallel()

	res, err := extrema.SelectFromLaplacian(pathLaplacian(t, 20), extrema.WithCount(2))
	require.NoError(t, err)
	got := append([]int(nil), res.Indices...)
	sort.Ints(got)
	assert.Equal(t, []int{0, 19}, got)
	assert.Equal(t, res.Vertices, res.Indices)
}

func TestSelectReturnsUniqueIndices(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(4))
	rows := make([][]float64, 150)
	for i := range rows {
		rows[i] = []float64{rng.NormFloat64(), rng.NormFloat64(), 0.2 * rng.NormFloat64()}
	}
	ps, err := kernel.NewPointSet(rows)
	require.NoError(t, err)

	res, err := extrema.Select(ps, extrema.WithCount(8))
	require.NoError(t, err)
	require.Len(t, res.Indices, 8)
	seen := make(map[int]bool)
	for _, i := range res.Indices {
		assert.False(t, seen[i], "duplicate extremum %d", i)
		assert.True(t, i >= 0 && i < 150)
		seen[i] = true
	}
	assert.Equal(t, 150, res.Graph.N())
	assert.Len(t, res.Fiedler, 150)

	stats, err := extrema.PairwiseDistances(ps, res.Indices)
	require.NoError(t, err)
	assert.Equal(t, 28, stats.Pairs)
	assert.Greater(t, stats.Mean, 0.0)
}

func TestSelectMapsSubsampleBackToInput(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(5))
	rows := make([][]float64, 120)
	for i := range rows {
		rows[i] = []float64{rng.NormFloat64(), rng.NormFloat64()}
	}
	ps, err := kernel.NewPointSet(rows)
	require.NoError(t, err)

	res, err := extrema.Select(ps, extrema.WithCount(4), extrema.WithSubsample(60, 0))
	require.NoError(t, err)
	require.NotNil(t, res.Graph.Index)
	for i, v := range res.Vertices {
		assert.Equal(t, res.Graph.Index[v], res.Indices[i])
		assert.Equal(t, res.Graph.Points.Row(v), ps.Row(res.Indices[i]))
	}
}

func TestSelectArguments(t *testing.T) {
	t.Parallel()

	_, err := extrema.SelectFromLaplacian(pathLaplacian(t, 5), extrema.WithCount(5))
	assert.ErrorIs(t, err, extrema.ErrConfiguration)

	ps, err := kernel.NewPointSet([][]float64{{0}, {1}, {2}, {3}, {4}})
	require.NoError(t, err)
	_, err = extrema.Select(ps)
	assert.ErrorIs(t, err, kernel.ErrConfiguration)

	_, err = extrema.PairwiseDistances(ps, []int{1})
	assert.ErrorIs(t, err, extrema.ErrConfiguration)
	_, err = extrema.PairwiseDistances(ps, []int{1, 9})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	stats, err := extrema.PairwiseDistances(ps, []int{0, 1, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2, stats.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), stats.Std, 1e-12)
}
