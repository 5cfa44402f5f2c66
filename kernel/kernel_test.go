// SPDX-License-Identifier: MIT
package kernel_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/matrix"
)

// line returns points 0,1,2,...,n-1 on the real line.
func line(t *testing.T, n int) *kernel.PointSet {
	t.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	ps, err := kernel.NewPointSet(rows)
	require.NoError(t, err)

	return ps
}

func gaussianCloud(t *testing.T, n, d int, seed int64) *kernel.PointSet {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*d)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	ps, err := kernel.NewPointSetFromSlice(n, d, data)
	require.NoError(t, err)

	return ps
}

func TestNewPointSetValidation(t *testing.T) {
	t.Parallel()

	_, err := kernel.NewPointSet(nil)
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
	_, err = kernel.NewPointSet([][]float64{{}})
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
	_, err = kernel.NewPointSet([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
	_, err = kernel.NewPointSet([][]float64{{math.NaN()}})
	assert.ErrorIs(t, err, kernel.ErrNotFinite)
}

func TestBuildRejectsKNotBelowN(t *testing.T) {
	t.Parallel()

	ps := gaussianCloud(t, 5, 3, 1)
	_, err := kernel.Build(ps, kernel.WithK(10))
	require.ErrorIs(t, err, kernel.ErrConfiguration)

	g, err := kernel.Build(ps, kernel.WithK(10), kernel.WithFullyConnectedFallback())
	require.NoError(t, err)
	assert.Equal(t, 4, g.K)
	// k = N-1 with binary weights: complete graph without self-loops.
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := 1.0
			if i == j {
				want = 0
			}
			assert.Equal(t, want, g.Affinity.At(i, j))
		}
	}

	// The fixed-bandwidth Gaussian does not depend on k.
	_, err = kernel.Build(ps, kernel.WithKind(kernel.KindGaussian), kernel.WithK(10))
	require.NoError(t, err)
}

func TestBuildRejectsBadSigma(t *testing.T) {
	t.Parallel()

	_, err := kernel.Build(line(t, 4), kernel.WithKind(kernel.KindGaussian), kernel.WithSigma(0))
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
}

func TestKNNGraphIsSymmetricBinary(t *testing.T) {
	t.Parallel()

	ps := gaussianCloud(t, 60, 4, 2)
	g, err := kernel.Build(ps, kernel.WithK(5))
	require.NoError(t, err)
	require.True(t, g.Affinity.IsSparse())
	require.True(t, g.Affinity.IsSymmetric(0))

	w := g.Affinity.Sparse()
	for i := 0; i < g.N(); i++ {
		cols, vals := w.Row(i)
		assert.GreaterOrEqual(t, len(cols), 5, "row %d keeps its own neighbors", i)
		for _, v := range vals {
			assert.Equal(t, 1.0, v)
		}
	}
}

func TestKNNMutualModeDropsOneSidedEdges(t *testing.T) {
	t.Parallel()

	// 0,1,2 clustered, 10 far away: 10's nearest neighbor is 2 but not vice versa.
	ps, err := kernel.NewPointSet([][]float64{{0}, {1}, {2}, {10}})
	require.NoError(t, err)

	union, err := kernel.Build(ps, kernel.WithK(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, union.Affinity.At(3, 2))

	mutual, err := kernel.Build(ps, kernel.WithK(1), kernel.WithSymmetrize(matrix.SymMin))
	require.NoError(t, err)
	assert.Equal(t, 0.0, mutual.Affinity.At(3, 2))
}

func TestGaussianWeights(t *testing.T) {
	t.Parallel()

	g, err := kernel.Build(line(t, 3), kernel.WithKind(kernel.KindGaussian), kernel.WithSigma(2))
	require.NoError(t, err)
	assert.False(t, g.Affinity.IsSparse())
	assert.InDelta(t, 1.0, g.Affinity.At(1, 1), 1e-15)
	assert.InDelta(t, math.Exp(-0.25), g.Affinity.At(0, 1), 1e-15)
	assert.InDelta(t, math.Exp(-1), g.Affinity.At(2, 0), 1e-15)
}

func TestAdaptiveBandwidthAndDuplicates(t *testing.T) {
	t.Parallel()

	g, err := kernel.Build(line(t, 5), kernel.WithKind(kernel.KindAdaptive), kernel.WithK(2))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 1, 1, 2}, g.Bandwidth)
	assert.InDelta(t, math.Exp(-1.0/2), g.Affinity.At(0, 1), 1e-12)

	dup, err := kernel.NewPointSet([][]float64{{1, 1}, {1, 1}, {1, 1}, {5, 5}})
	require.NoError(t, err)
	for _, kind := range []kernel.Kind{kernel.KindAdaptive, kernel.KindAnisotropic} {
		g, err := kernel.Build(dup, kernel.WithKind(kind), kernel.WithK(1))
		require.NoError(t, err, kind.String())
		w := g.Affinity.Dense()
		r, c := w.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				assert.False(t, math.IsNaN(w.At(i, j)))
			}
		}
	}
}

func TestAnisotropicIsSymmetric(t *testing.T) {
	t.Parallel()

	g, err := kernel.Build(gaussianCloud(t, 30, 3, 4),
		kernel.WithKind(kernel.KindAnisotropic), kernel.WithK(4), kernel.WithAnisotropy(0.5))
	require.NoError(t, err)
	assert.True(t, g.Affinity.IsSymmetric(1e-12))
}

func TestSubsampleIsSeededAndSorted(t *testing.T) {
	t.Parallel()

	ps := gaussianCloud(t, 200, 2, 5)
	a, err := kernel.Build(ps, kernel.WithSubsample(50, 7))
	require.NoError(t, err)
	b, err := kernel.Build(ps, kernel.WithSubsample(50, 7))
	require.NoError(t, err)

	require.Len(t, a.Index, 50)
	assert.Equal(t, a.Index, b.Index)
	assert.True(t, sort.IntsAreSorted(a.Index))
	assert.Equal(t, ps.Row(a.Index[3]), a.Points.Row(3))
	assert.Equal(t, a.Index[3], a.Original(3))

	c, err := kernel.Build(ps, kernel.WithSubsample(500, 7))
	require.NoError(t, err)
	assert.Nil(t, c.Index)
	assert.Equal(t, 12, c.Original(12))
}

func TestPCAPreservesDistancesInSubspace(t *testing.T) {
	t.Parallel()

	// Points in a 2-D plane embedded in 5-D.
	rng := rand.New(rand.NewSource(9))
	rows := make([][]float64, 40)
	for i := range rows {
		a, b := rng.NormFloat64(), rng.NormFloat64()
		rows[i] = []float64{a, b, a + b, a - b, 0}
	}
	ps, err := kernel.NewPointSet(rows)
	require.NoError(t, err)

	proj, err := ps.PCA(2)
	require.NoError(t, err)
	require.Equal(t, 2, proj.Dim())
	for _, pair := range [][2]int{{0, 1}, {5, 17}, {3, 39}} {
		want := floats.Distance(ps.Row(pair[0]), ps.Row(pair[1]), 2)
		got := floats.Distance(proj.Row(pair[0]), proj.Row(pair[1]), 2)
		assert.InDelta(t, want, got, 1e-9)
	}

	same, err := ps.PCA(10)
	require.NoError(t, err)
	assert.Same(t, ps, same)
}

func TestNearestNeighborsOnLine(t *testing.T) {
	t.Parallel()

	nbs, err := kernel.NearestNeighbors(line(t, 6), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, nbs[0].Index)
	assert.Equal(t, []int{2, 4}, nbs[3].Index, "ties resolve to the lower index")
	assert.Equal(t, []float64{1, 1}, nbs[3].Distance)

	_, err = kernel.NearestNeighbors(line(t, 3), 3)
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := kernel.ParseKind(" Gaussian ")
	require.NoError(t, err)
	assert.Equal(t, kernel.KindGaussian, k)
	_, err = kernel.ParseKind("laplace")
	assert.ErrorIs(t, err, kernel.ErrConfiguration)
	assert.Panics(t, func() { kernel.WithK(0) })
}
