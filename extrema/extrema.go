// SPDX-License-Identifier: MIT
// Package: extrema
//
// extrema.go — Select, SelectFromLaplacian, Fiedler and index remapping.

package extrema

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/matrix"
)

// Result is the outcome of Select.
type Result struct {
	// Indices are extrema in discovery order, as rows of the input PointSet
	// for Select and as Laplacian vertices for SelectFromLaplacian.
	Indices []int
	// Vertices are the same extrema as graph vertices.
	Vertices []int
	// Fiedler is the Fiedler vector over graph vertices and FiedlerValue its
	// eigenvalue.
	Fiedler      []float64
	FiedlerValue float64
	// Graph is the kNN graph Select ran on (nil for SelectFromLaplacian).
	Graph *kernel.Graph
}

// Select finds extrema of the point cloud ps.
//
// Errors: ErrConfiguration (count ≥ graph size, invalid kNN setup), and
// wrapped graph or solver errors.
//
// Complexity: dominated by count sparse eigensolves on an N×N Laplacian
// with O(N·k) nonzeros.
func Select(ps *kernel.PointSet, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	kopts := []kernel.Option{kernel.WithKind(kernel.KindKNN), kernel.WithK(cfg.k)}
	if cfg.npca > 0 {
		kopts = append(kopts, kernel.WithPCA(cfg.npca))
	}
	if cfg.subsample > 0 {
		kopts = append(kopts, kernel.WithSubsample(cfg.subsample, cfg.seed))
	}
	g, err := kernel.Build(ps, kopts...)
	if err != nil {
		return nil, extremaErrorf("Select", err)
	}
	l, err := matrix.Laplacian(g.Affinity.Sparse())
	if err != nil {
		return nil, extremaErrorf("Select", err)
	}

	res, err := selectExtrema(l, cfg)
	if err != nil {
		return nil, extremaErrorf("Select", err)
	}
	res.Graph = g
	res.Indices = make([]int, len(res.Vertices))
	for i, v := range res.Vertices {
		res.Indices[i] = g.Original(v)
	}

	return res, nil
}

// SelectFromLaplacian runs the selection on a given symmetric Laplacian.
// Result.Indices equals Result.Vertices.
//
// Errors: as Select.
func SelectFromLaplacian(l *matrix.CSR, opts ...Option) (*Result, error) {
	if err := matrix.ValidateNotNil(l); err != nil {
		return nil, extremaErrorf("SelectFromLaplacian", err)
	}
	res, err := selectExtrema(l, newConfig(opts...))
	if err != nil {
		return nil, extremaErrorf("SelectFromLaplacian", err)
	}
	res.Indices = append([]int(nil), res.Vertices...)
	return res, nil
}

func selectExtrema(l *matrix.CSR, cfg config) (*Result, error) {
	n := l.Dim()
	if cfg.count >= n {
		return nil, configErrorf("select", "count=%d must be < graph size %d", cfg.count, n)
	}

	// Stage 1: Fiedler vector.
	fv, lambda, err := fiedler(l, cfg)
	if err != nil {
		return nil, err
	}
	first := floats.MaxIdx(fv)
	res := &Result{Vertices: []int{first}, Fiedler: fv, FiedlerValue: lambda}

	// Stage 2: constrained eigenvectors of reduced Laplacians.
	removed := []int{first}
	prev := dropIndex(fv, first)
	for len(res.Vertices) < cfg.count {
		keep := complement(removed, n)
		lr, err := l.Induced(keep)
		if err != nil {
			return nil, err
		}
		eig, err := matrix.Lanczos(lr, 1, matrix.SmallestAlgebraic,
			matrix.WithStart(prev),
			matrix.WithTol(cfg.tol),
			matrix.WithMaxRestarts(cfg.maxIter),
			matrix.WithLanczosSeed(cfg.seed),
		)
		if err != nil {
			return nil, err
		}
		if !eig.Converged {
			cfg.log.Warn("reduced Laplacian eigenvector did not converge",
				"step", len(res.Vertices), "size", len(keep), "residual", eig.Residuals[0])
		}
		v := make([]float64, len(keep))
		for i := range v {
			v[i] = eig.Vectors.At(i, 0)
		}

		r := argmaxAbs(v)
		orig := ReducedToOriginal(removed, r)
		res.Vertices = append(res.Vertices, orig)
		pos := sort.SearchInts(removed, orig)
		removed = append(removed, 0)
		copy(removed[pos+1:], removed[pos:])
		removed[pos] = orig
		prev = dropIndex(v, r)
	}

	return res, nil
}

// ReducedToOriginal maps index r of a matrix from which the sorted indices
// removed were deleted back to the index in the full matrix: every removed
// index at or below the running position shifts it up by one.
func ReducedToOriginal(removed []int, r int) int {
	orig := r
	for _, x := range removed {
		if x > orig {
			break
		}
		orig++
	}
	return orig
}

// Fiedler returns the eigenvector of the second-smallest eigenvalue of the
// Laplacian l (unit norm, orthogonal to the constant vector, largest
// magnitude entry positive) and that eigenvalue.
//
// Errors: ErrConfiguration for graphs with fewer than two vertices.
func Fiedler(l *matrix.CSR, opts ...Option) ([]float64, float64, error) {
	if err := matrix.ValidateNotNil(l); err != nil {
		return nil, 0, extremaErrorf("Fiedler", err)
	}
	v, lambda, err := fiedler(l, newConfig(opts...))
	if err != nil {
		return nil, 0, extremaErrorf("Fiedler", err)
	}
	return v, lambda, nil
}

// fiedler runs shifted inverse iteration on the complement of the constant
// vector; every step solves (L + σI)y = x with Jacobi-preconditioned CG.
func fiedler(l *matrix.CSR, cfg config) ([]float64, float64, error) {
	n := l.Dim()
	if n < 2 {
		return nil, 0, configErrorf("fiedler", "graph has %d vertices", n)
	}
	diag := l.Diagonal()
	norm := floats.Max(diag) * 2
	shift := shiftFactor * math.Max(floats.Sum(diag)/float64(n), 1)
	inv := make([]float64, n)
	for i, d := range diag {
		inv[i] = 1 / (d + shift)
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	center(x)
	floats.Scale(1/floats.Norm(x, 2), x)

	lx := make([]float64, n)
	var lambda float64
	converged := false
	for it := 0; it < cfg.maxIter; it++ {
		sol, err := matrix.PCG(l, x, nil,
			matrix.WithShift(shift),
			matrix.WithJacobi(inv),
			matrix.WithProjector(center),
		)
		if err != nil {
			return nil, 0, err
		}
		y := sol.X
		center(y)
		ny := floats.Norm(y, 2)
		if ny == 0 {
			break
		}
		floats.Scale(1/ny, y)
		x = y

		l.MulVecTo(lx, x)
		lambda = floats.Dot(x, lx)
		floats.AddScaled(lx, -lambda, x)
		if floats.Norm(lx, 2) <= cfg.tol*math.Max(norm, 1) {
			converged = true
			break
		}
	}
	if !converged {
		cfg.log.Warn("Fiedler vector did not converge", "vertices", n, "iterations", cfg.maxIter)
	}
	if i := argmaxAbs(x); x[i] < 0 {
		floats.Scale(-1, x)
	}

	return x, lambda, nil
}

// center removes the mean (projection onto the complement of 1).
func center(x []float64) {
	m := floats.Sum(x) / float64(len(x))
	floats.AddConst(-m, x)
}

// argmaxAbs returns the first index of the largest |v_i|.
func argmaxAbs(v []float64) int {
	best, bi := -1.0, 0
	for i, x := range v {
		if a := math.Abs(x); a > best {
			best, bi = a, i
		}
	}
	return bi
}

// dropIndex returns v without entry i.
func dropIndex(v []float64, i int) []float64 {
	out := make([]float64, 0, len(v)-1)
	out = append(out, v[:i]...)
	return append(out, v[i+1:]...)
}

// complement returns 0..n−1 without the sorted indices removed.
func complement(removed []int, n int) []int {
	out := make([]int, 0, n-len(removed))
	j := 0
	for i := 0; i < n; i++ {
		if j < len(removed) && removed[j] == i {
			j++
			continue
		}
		out = append(out, i)
	}
	return out
}
