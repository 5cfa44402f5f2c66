// SPDX-License-Identifier: MIT
package diffusion_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/diffusion"
	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/matrix"
)

func cloud(t *testing.T, n, d int, seed int64) *kernel.PointSet {
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

func buildOperator(t *testing.T, opts ...kernel.Option) *diffusion.Operator {
	t.Helper()
	g, err := kernel.Build(cloud(t, 40, 3, 1), opts...)
	require.NoError(t, err)
	op, err := diffusion.New(g.Affinity)
	require.NoError(t, err)

	return op
}

func TestRowsSumToOne(t *testing.T) {
	t.Parallel()

	for name, opts := range map[string][]kernel.Option{
		"knn":         {kernel.WithK(5)},
		"knn-decay":   {kernel.WithK(5), kernel.WithDecay(2)},
		"gaussian":    {kernel.WithKind(kernel.KindGaussian), kernel.WithSigma(1)},
		"anisotropic": {kernel.WithKind(kernel.KindAnisotropic), kernel.WithK(5)},
	} {
		opts := opts
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			op := buildOperator(t, opts...)
			for i, s := range op.RowSums() {
				assert.InDelta(t, 1, s, 1e-6, "row %d", i)
			}
			assert.True(t, op.Symmetric())
		})
	}
}

func TestIsolatedVerticesGetSelfLoops(t *testing.T) {
	t.Parallel()

	coo := matrix.NewCOO(3, 3)
	require.NoError(t, coo.Add(0, 1, 2))
	require.NoError(t, coo.Add(1, 0, 2))
	a, err := kernel.NewSparseAffinity(coo.ToCSR(matrix.DupSum))
	require.NoError(t, err)

	op, err := diffusion.New(a)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, op.Isolated())
	assert.Equal(t, 1.0, op.At(2, 2))
	assert.Equal(t, 1.0, op.At(0, 1))
	assert.Equal(t, []float64{1, 1, 1}, op.RowSums())

	_, err = diffusion.New(nil)
	assert.ErrorIs(t, err, diffusion.ErrNilAffinity)
}

func sortedEigen(t *testing.T, m mat.Matrix) []float64 {
	t.Helper()
	var eig mat.Eigen
	require.True(t, eig.Factorize(m, mat.EigenNone))
	vals := eig.Values(nil)
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = real(v)
	}
	sort.Float64s(out)

	return out
}

func TestConjugateSharesSpectrum(t *testing.T) {
	t.Parallel()

	for _, op := range []*diffusion.Operator{
		buildOperator(t, kernel.WithK(6)),
		buildOperator(t, kernel.WithKind(kernel.KindGaussian), kernel.WithSigma(1.5)),
	} {
		sym, err := op.ConjugateDense()
		require.NoError(t, err)
		var es mat.EigenSym
		require.True(t, es.Factorize(sym, false))
		got := es.Values(nil)
		assert.InDeltaSlice(t, sortedEigen(t, op.Matrix()), got, 1e-8)

		lin, err := op.Conjugate()
		require.NoError(t, err)
		assert.Equal(t, op.N(), lin.Dim())
	}
}

func TestInducedOperators(t *testing.T) {
	t.Parallel()

	op := buildOperator(t, kernel.WithK(5))
	idx := []int{0, 3, 5, 7, 11, 13, 17, 19}

	raw, err := op.Induced(idx, false)
	require.NoError(t, err)
	assert.False(t, raw.Stochastic())
	assert.Equal(t, op.At(3, 5), raw.At(1, 2))
	for _, s := range raw.RowSums() {
		assert.LessOrEqual(t, s, 1+1e-12)
	}
	_, err = raw.ConjugateDense()
	require.NoError(t, err)

	renorm, err := op.Induced(idx, true)
	require.NoError(t, err)
	assert.True(t, renorm.Stochastic())
	for _, s := range renorm.RowSums() {
		assert.InDelta(t, 1, s, 1e-6)
	}

	_, err = op.Induced([]int{1, 1}, false)
	assert.ErrorIs(t, err, diffusion.ErrIndex)
	_, err = op.Induced(nil, true)
	assert.ErrorIs(t, err, diffusion.ErrIndex)
}

func TestPower(t *testing.T) {
	t.Parallel()

	op := buildOperator(t, kernel.WithK(4))
	p2, err := op.Power(2)
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(op.Dense(), op.Dense())
	assert.True(t, mat.EqualApprox(p2, &want, 1e-12))

	_, err = op.Power(0)
	assert.ErrorIs(t, err, diffusion.ErrInvalidPower)
}

func TestNonSymmetricAffinityHasNoConjugate(t *testing.T) {
	t.Parallel()

	w := mat.NewDense(2, 2, []float64{1, 2, 1, 1})
	a, err := kernel.NewDenseAffinity(w)
	require.NoError(t, err)
	op, err := diffusion.New(a)
	require.NoError(t, err)
	assert.False(t, op.Symmetric())
	_, err = op.Conjugate()
	assert.ErrorIs(t, err, diffusion.ErrNotSymmetric)
}
