// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/matrix"
)

func randomSym(t *testing.T, n int, seed int64) *mat.SymDense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, rng.NormFloat64())
		}
	}

	return s
}

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

func TestLanczosLargestMagnitudeMatchesEigenSym(t *testing.T) {
	t.Parallel()

	const n, k = 60, 5
	s := randomSym(t, n, 7)
	var es mat.EigenSym
	require.True(t, es.Factorize(s, false))
	want := es.Values(nil)
	sort.Slice(want, func(i, j int) bool { return math.Abs(want[i]) > math.Abs(want[j]) })

	op, err := matrix.NewDenseOperator(s)
	require.NoError(t, err)
	res, err := matrix.Lanczos(op, k, matrix.LargestMagnitude, matrix.WithLanczosSeed(1))
	require.NoError(t, err)
	require.True(t, res.Converged)
	for i := 0; i < k; i++ {
		assert.InDelta(t, want[i], res.Values[i], 1e-6)
	}

	// Ritz vectors satisfy A·y ≈ θ·y.
	y := res.Vectors.ColView(0)
	var ay mat.VecDense
	ay.MulVec(s, y)
	ay.AddScaledVec(&ay, -res.Values[0], y)
	assert.Less(t, ay.Norm(2), 1e-5)
}

func TestLanczosSmallestOfPathLaplacian(t *testing.T) {
	t.Parallel()

	const n = 40
	l := pathLaplacian(t, n)
	res, err := matrix.Lanczos(l, 3, matrix.SmallestAlgebraic,
		matrix.WithKrylov(n), matrix.WithLanczosSeed(3))
	require.NoError(t, err)
	require.True(t, res.Converged)
	for k := 0; k < 3; k++ {
		exact := 2 - 2*math.Cos(math.Pi*float64(k)/float64(n))
		assert.InDelta(t, exact, res.Values[k], 1e-8)
	}
}

func TestLanczosArguments(t *testing.T) {
	t.Parallel()

	_, err := matrix.Lanczos(nil, 1, matrix.LargestMagnitude)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Lanczos(matrix.Identity(3), 4, matrix.LargestMagnitude)
	assert.ErrorIs(t, err, matrix.ErrInvalidArgument)

	// Identity: every start vector spans an invariant subspace at once.
	res, err := matrix.Lanczos(matrix.Identity(5), 2, matrix.LargestMagnitude)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, res.Values, 1e-12)
}

func TestPCGSolvesShiftedLaplacian(t *testing.T) {
	t.Parallel()

	const n, shift = 30, 0.5
	l := pathLaplacian(t, n)
	rng := rand.New(rand.NewSource(11))
	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64()
	}
	inv := l.Diagonal()
	for i := range inv {
		inv[i] = 1 / (inv[i] + shift)
	}

	res, err := matrix.PCG(l, b, nil, matrix.WithShift(shift), matrix.WithJacobi(inv))
	require.NoError(t, err)
	require.True(t, res.Converged)

	check := make([]float64, n)
	l.MulVecTo(check, res.X)
	floats.AddScaled(check, shift, res.X)
	assert.InDeltaSlice(t, b, check, 1e-8)
}

func TestPCGProjectorKeepsMeanZero(t *testing.T) {
	t.Parallel()

	const n = 20
	l := pathLaplacian(t, n)
	b := make([]float64, n)
	b[0], b[n-1] = 1, -1
	center := func(v []float64) {
		m := floats.Sum(v) / float64(len(v))
		floats.AddConst(-m, v)
	}
	res, err := matrix.PCG(l, b, nil, matrix.WithProjector(center), matrix.WithShift(1e-10))
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.InDelta(t, 0, floats.Sum(res.X), 1e-8)

	_, err = matrix.PCG(l, []float64{1}, nil)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
