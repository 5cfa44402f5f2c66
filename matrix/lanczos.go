// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Iterative eigensolver for a few extreme eigenpairs of a large symmetric
//     operator available only through y = A·x.
//
// Algorithm (thick-restart Lanczos with full reorthogonalization):
//   - Expand an orthonormal Krylov basis V up to m vectors. Every new vector is
//     orthogonalized twice against the whole basis, so the projected matrix
//     H = VᵀAV is assembled column by column from the Gram–Schmidt
//     coefficients.
//   - Solve the small m×m problem with gonum's EigenSym; Ritz residual norms
//     are β·|s_m,i|.
//   - Restart with the wanted Ritz vectors plus the current residual direction
//     (H becomes diag(θ) bordered by the couplings).
//   - On breakdown (invariant subspace) a seeded random direction orthogonal to
//     V is injected so that more than one eigenvector can still be found.
//
// Limitations:
//   - Exactly repeated eigenvalues may be reported with lower multiplicity
//     than they have; the exact dense path is the reference for such spectra.

package matrix

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearOperator is a square linear map available through matrix-vector
// products. CSR implements it; callers wrap dense or implicit operators.
type LinearOperator interface {
	// Dim returns n for an n×n operator.
	Dim() int
	// MulVecTo writes A·x into dst (len(dst) == len(x) == Dim()).
	MulVecTo(dst, x []float64)
}

// Which selects the end of the spectrum Lanczos converges to.
type Which int

const (
	// LargestMagnitude selects eigenvalues with the largest |λ|.
	LargestMagnitude Which = iota
	// LargestAlgebraic selects the largest λ.
	LargestAlgebraic
	// SmallestAlgebraic selects the smallest λ.
	SmallestAlgebraic
)

// Lanczos defaults.
const (
	DefaultLanczosTol         = 1e-8
	DefaultLanczosMaxRestarts = 300
	minKrylovExtra            = 20
	breakdownTol              = 1e-12
)

// LanczosOptions configures Lanczos. Use the With* helpers.
type LanczosOptions struct {
	krylov      int
	maxRestarts int
	tol         float64
	start       []float64
	seed        int64
}

// LanczosOption mutates LanczosOptions.
type LanczosOption func(*LanczosOptions)

// WithKrylov sets the maximal basis size m (clamped to [k+1, n]).
// Panics if m < 0.
func WithKrylov(m int) LanczosOption {
	if m < 0 {
		panic("matrix: WithKrylov(m<0)")
	}
	return func(o *LanczosOptions) { o.krylov = m }
}

// WithMaxRestarts bounds the number of thick restarts.
// Panics if r < 0.
func WithMaxRestarts(r int) LanczosOption {
	if r < 0 {
		panic("matrix: WithMaxRestarts(r<0)")
	}
	return func(o *LanczosOptions) { o.maxRestarts = r }
}

// WithTol sets the relative Ritz residual tolerance.
// Panics if tol <= 0 or is not finite.
func WithTol(tol float64) LanczosOption {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic("matrix: WithTol(tol<=0)")
	}
	return func(o *LanczosOptions) { o.tol = tol }
}

// WithStart seeds the Krylov basis with v (copied). A zero or wrong-length
// vector falls back to a random start.
func WithStart(v []float64) LanczosOption {
	return func(o *LanczosOptions) { o.start = append([]float64(nil), v...) }
}

// WithLanczosSeed fixes the seed of the random start and breakdown vectors.
func WithLanczosSeed(seed int64) LanczosOption {
	return func(o *LanczosOptions) { o.seed = seed }
}

// EigenResult holds Ritz pairs ordered by the requested Which.
type EigenResult struct {
	Values    []float64
	Vectors   *mat.Dense // n×k, column c pairs with Values[c]
	Residuals []float64
	Restarts  int
	Converged bool
}

// Lanczos computes k eigenpairs of the symmetric operator a.
//
// Implementation:
//   - Stage 1: validate, size the basis (m = max(2k+1, k+20) by default),
//     normalize the start vector.
//   - Stage 2: expand → Rayleigh–Ritz → convergence test → thick restart.
//
// Errors:
//   - ErrNilMatrix: a == nil.
//   - ErrInvalidArgument: k < 1 or k > n.
//   - ErrNoConvergence: the projected eigenproblem itself failed.
//
// A result that exhausted maxRestarts is returned with Converged == false and
// a nil error; callers decide whether approximate pairs are acceptable.
//
// Complexity: O(restarts · (m·nnz + n·m²)) time, O(n·m) memory.
func Lanczos(a LinearOperator, k int, which Which, opts ...LanczosOption) (*EigenResult, error) {
	if a == nil {
		return nil, matrixErrorf("Lanczos", ErrNilMatrix)
	}
	n := a.Dim()
	if k < 1 || k > n {
		return nil, matrixErrorf("Lanczos", ErrInvalidArgument)
	}
	o := LanczosOptions{maxRestarts: DefaultLanczosMaxRestarts, tol: DefaultLanczosTol}
	for _, opt := range opts {
		opt(&o)
	}
	// Stage 1: basis size and unit start vector.
	m := o.krylov
	if m <= 0 {
		m = max(2*k+1, k+minKrylovExtra)
	}
	m = min(max(m, k+1), n)

	rng := rand.New(rand.NewSource(o.seed))
	v0 := o.start
	if len(v0) != n || floats.Norm(v0, 2) == 0 {
		v0 = randomVector(rng, n)
	}
	v0 = append([]float64(nil), v0...)
	floats.Scale(1/floats.Norm(v0, 2), v0)

	basis := [][]float64{v0}
	var theta []float64 // Ritz values carried across a restart
	w := make([]float64, n)
	coef := make([]float64, m)

	// Stage 2: one pass per restart.
	for restart := 0; ; restart++ {
		// 2a: kept Ritz values become the leading diagonal of H; their
		// couplings to the residual direction are filled by the first
		// expansion step below.
		keep := len(theta)
		h := mat.NewSymDense(m, nil)
		for i, t := range theta {
			h.SetSym(i, i, t)
		}

		// 2b: expansion. Column j of H is the Gram–Schmidt coefficient
		// vector of A·v_j against v_0..v_j; β = ‖w‖ after projection.
		var beta float64
		size := keep
		for j := keep; j < m; j++ {
			a.MulVecTo(w, basis[j])
			orthogonalize(w, basis[:j+1], coef[:j+1])
			for i := 0; i <= j; i++ {
				h.SetSym(i, j, coef[i])
			}
			size = j + 1
			beta = floats.Norm(w, 2)
			if size == m || size == n {
				break
			}
			if beta <= breakdownTol*math.Max(1, math.Abs(coef[j])) {
				// invariant subspace: continue with a fresh orthogonal direction
				beta = 0
				next := injectDirection(rng, basis)
				if next == nil {
					break
				}
				basis = append(basis, next)
				continue
			}
			next := make([]float64, n)
			floats.ScaleTo(next, 1/beta, w)
			basis = append(basis, next)
		}

		// 2c: Rayleigh–Ritz on the leading size×size block.
		var es mat.EigenSym
		if ok := es.Factorize(h.SliceSym(0, size), true); !ok {
			return nil, matrixErrorf("Lanczos", ErrNoConvergence)
		}
		vals := es.Values(nil)
		var s mat.Dense
		es.VectorsTo(&s)

		// 2d: convergence. The residual of Ritz pair i is β·|s_{m,i}|; it
		// is exactly zero when the basis spans an invariant subspace.
		want := min(k, size)
		order := rankRitz(vals, which)
		exact := size == n || beta == 0
		res := make([]float64, size)
		converged := want == k
		for c := 0; c < want; c++ {
			idx := order[c]
			if !exact {
				res[idx] = math.Abs(beta * s.At(size-1, idx))
			}
			if res[idx] > o.tol*math.Max(1, math.Abs(vals[idx])) {
				converged = false
			}
		}

		if converged || exact || restart >= o.maxRestarts {
			out := &EigenResult{
				Values:    make([]float64, want),
				Vectors:   mat.NewDense(n, want, nil),
				Residuals: make([]float64, want),
				Restarts:  restart,
				Converged: converged || (exact && want == k),
			}
			for c := 0; c < want; c++ {
				idx := order[c]
				out.Values[c] = vals[idx]
				out.Residuals[c] = res[idx]
				y := ritzVector(basis[:size], &s, idx)
				out.Vectors.SetCol(c, y)
			}
			return out, nil
		}

		// 2e: thick restart. Keep the best k+(m−k)/2 Ritz vectors and append
		// w/β: A·y_i = θ_i·y_i + β·s_{m,i}·(w/β), so the new basis is still a
		// Krylov-type decomposition.
		keepN := min(size-1, k+(m-k)/2)
		next := make([][]float64, 0, m)
		theta = theta[:0]
		for c := 0; c < keepN; c++ {
			idx := order[c]
			next = append(next, ritzVector(basis[:size], &s, idx))
			theta = append(theta, vals[idx])
		}
		r := make([]float64, n)
		floats.ScaleTo(r, 1/beta, w)
		basis = append(next, r)
	}
}

// orthogonalize removes from w its components along the orthonormal basis,
// two classical Gram–Schmidt passes, accumulating the coefficients.
func orthogonalize(w []float64, basis [][]float64, coef []float64) {
	for i := range coef {
		coef[i] = 0
	}
	for pass := 0; pass < 2; pass++ {
		for i, v := range basis {
			c := floats.Dot(v, w)
			floats.AddScaled(w, -c, v)
			coef[i] += c
		}
	}
}

// injectDirection returns a unit vector orthogonal to basis, or nil when the
// basis already spans the space.
func injectDirection(rng *rand.Rand, basis [][]float64) []float64 {
	n := len(basis[0])
	scratch := make([]float64, len(basis))
	for attempt := 0; attempt < 3; attempt++ {
		v := randomVector(rng, n)
		orthogonalize(v, basis, scratch)
		if nrm := floats.Norm(v, 2); nrm > 1e-8 {
			floats.Scale(1/nrm, v)
			return v
		}
	}

	return nil
}

func randomVector(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 2*rng.Float64() - 1
	}

	return v
}

// rankRitz orders Ritz value indices from most to least wanted.
func rankRitz(vals []float64, which Which) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool {
		a, b := vals[idx[x]], vals[idx[y]]
		switch which {
		case LargestAlgebraic:
			return a > b
		case SmallestAlgebraic:
			return a < b
		default:
			return math.Abs(a) > math.Abs(b)
		}
	})

	return idx
}

// ritzVector returns y = V·s[:, col].
func ritzVector(basis [][]float64, s *mat.Dense, col int) []float64 {
	y := make([]float64, len(basis[0]))
	for j, v := range basis {
		floats.AddScaled(y, s.At(j, col), v)
	}

	return y
}
