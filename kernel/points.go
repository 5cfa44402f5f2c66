// SPDX-License-Identifier: MIT
// Package: kernel
//
// points.go — the immutable N×D point cloud and its pre-processing steps
// (seeded subsampling, PCA projection).

package kernel

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// PointSet is an immutable N×D matrix of float64 coordinates (row-major).
type PointSet struct {
	n, d int
	data []float64
}

// NewPointSet copies rows into a PointSet.
//
// Errors: ErrConfiguration (no rows, D == 0, ragged rows), ErrNotFinite.
// Complexity: O(N·D).
func NewPointSet(rows [][]float64) (*PointSet, error) {
	if len(rows) == 0 {
		return nil, configErrorf("NewPointSet", "empty point set")
	}
	d := len(rows[0])
	if d == 0 {
		return nil, configErrorf("NewPointSet", "zero-dimensional points")
	}
	data := make([]float64, 0, len(rows)*d)
	for i, r := range rows {
		if len(r) != d {
			return nil, configErrorf("NewPointSet", "row %d has %d columns, want %d", i, len(r), d)
		}
		data = append(data, r...)
	}

	return NewPointSetFromSlice(len(rows), d, data)
}

// NewPointSetFromSlice wraps a row-major buffer of n·d values (not copied).
//
// Errors: ErrConfiguration (n == 0, d == 0, wrong length), ErrNotFinite.
func NewPointSetFromSlice(n, d int, data []float64) (*PointSet, error) {
	if n <= 0 {
		return nil, configErrorf("NewPointSetFromSlice", "empty point set")
	}
	if d <= 0 {
		return nil, configErrorf("NewPointSetFromSlice", "zero-dimensional points")
	}
	if len(data) != n*d {
		return nil, configErrorf("NewPointSetFromSlice", "buffer has %d values, want %d", len(data), n*d)
	}
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, kernelErrorf("NewPointSetFromSlice", ErrNotFinite)
		}
	}

	return &PointSet{n: n, d: d, data: data}, nil
}

// Len returns N.
func (p *PointSet) Len() int { return p.n }

// Dim returns D.
func (p *PointSet) Dim() int { return p.d }

// Row returns a read-only view of row i.
func (p *PointSet) Row(i int) []float64 { return p.data[i*p.d : (i+1)*p.d] }

// Matrix returns an N×D gonum view sharing the PointSet buffer. Callers must
// not write through it.
func (p *PointSet) Matrix() *mat.Dense { return mat.NewDense(p.n, p.d, p.data) }

// Subset returns the rows idx in the given order (copied).
// Panics on out-of-range indices; idx comes from package code or from
// validated partitions.
func (p *PointSet) Subset(idx []int) *PointSet {
	data := make([]float64, 0, len(idx)*p.d)
	for _, i := range idx {
		data = append(data, p.Row(i)...)
	}

	return &PointSet{n: len(idx), d: p.d, data: data}
}

// Subsample returns at most limit rows drawn without replacement with a
// rand.Rand seeded by seed, together with their original indices in
// ascending order. When N ≤ limit (or limit ≤ 0) the PointSet itself is
// returned with a nil index.
// Complexity: O(N) time and memory.
func (p *PointSet) Subsample(limit int, seed int64) (*PointSet, []int) {
	if limit <= 0 || p.n <= limit {
		return p, nil
	}
	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(p.n)[:limit]
	sort.Ints(idx)

	return p.Subset(idx), idx
}

// PCA projects the centered points onto their first n principal components
// (thin SVD). When n ≥ min(N, D) the PointSet is returned unchanged.
//
// Errors: ErrConfiguration (n < 1), ErrNotFinite (SVD failure).
// Complexity: O(N·D·min(N, D)).
func (p *PointSet) PCA(n int) (*PointSet, error) {
	if n < 1 {
		return nil, configErrorf("PCA", "components must be >= 1, got %d", n)
	}
	if n >= min(p.n, p.d) {
		return p, nil
	}

	centered := mat.DenseCopyOf(p.Matrix())
	for j := 0; j < p.d; j++ {
		var mean float64
		for i := 0; i < p.n; i++ {
			mean += centered.At(i, j)
		}
		mean /= float64(p.n)
		for i := 0; i < p.n; i++ {
			centered.Set(i, j, centered.At(i, j)-mean)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThinV); !ok {
		return nil, kernelErrorf("PCA", ErrNotFinite)
	}
	var v mat.Dense
	svd.VTo(&v)

	var proj mat.Dense
	proj.Mul(centered, v.Slice(0, p.d, 0, n))
	out := make([]float64, p.n*n)
	for i := 0; i < p.n; i++ {
		copy(out[i*n:(i+1)*n], proj.RawRowView(i))
	}

	return &PointSet{n: p.n, d: n, data: out}, nil
}
