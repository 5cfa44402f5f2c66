// SPDX-License-Identifier: MIT
// Package: kernel
//
// build.go — Build: PointSet → Graph.
//
// Pipeline:
//   - Stage 1: resolve options, validate σ, subsample (seeded), project (PCA).
//   - Stage 2: check k against N (fallback to k = N−1 when allowed).
//   - Stage 3: evaluate the kernel (sparse kNN or dense Gaussian family).
//   - Stage 4: wrap into a validated Affinity.

package kernel

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/matrix"
)

// Graph is the outcome of Build.
type Graph struct {
	// Affinity is the symmetric non-negative weight matrix W.
	Affinity *Affinity
	// Points are the coordinates the kernel was evaluated on (after
	// subsampling and PCA).
	Points *PointSet
	// Index maps graph vertex → row of the input PointSet; nil means identity.
	Index []int
	// K is the effective neighbor count (0 for KindGaussian).
	K int
	// Bandwidth holds per-point σᵢ for the adaptive kernels, nil otherwise.
	Bandwidth []float64
}

// N returns the number of graph vertices.
func (g *Graph) N() int { return g.Affinity.N() }

// Original maps a graph vertex back to the input row.
func (g *Graph) Original(v int) int {
	if g.Index == nil {
		return v
	}
	return g.Index[v]
}

// Build evaluates the configured kernel on ps.
//
// Errors:
//   - ErrConfiguration: nil/empty input, σ ≤ 0 for KindGaussian, k ≥ N for
//     neighbor-based kernels without WithFullyConnectedFallback.
//   - ErrNotFinite: PCA failure or non-finite weights.
//
// Complexity: O(N²·D) distance work for every kernel; O(N·k) memory for
// KindKNN, O(N²) for the dense kernels.
func Build(ps *PointSet, opts ...Option) (*Graph, error) {
	if ps == nil || ps.Len() == 0 {
		return nil, configErrorf("Build", "empty point set")
	}
	if ps.Dim() == 0 {
		return nil, configErrorf("Build", "zero-dimensional points")
	}
	cfg := newBuildConfig(opts...)
	if cfg.kind == KindGaussian && !(cfg.sigma > 0) {
		return nil, configErrorf("Build", "sigma must be > 0, got %g", cfg.sigma)
	}

	points, index := ps, []int(nil)
	if cfg.subsample > 0 {
		points, index = ps.Subsample(cfg.subsample, cfg.seed)
	}
	if cfg.npca > 0 {
		var err error
		if points, err = points.PCA(cfg.npca); err != nil {
			return nil, kernelErrorf("Build", err)
		}
	}

	n := points.Len()
	k := 0
	if cfg.kind.needsNeighbors() {
		k = cfg.k
		if k >= n {
			if !cfg.fallback {
				return nil, configErrorf("Build", "k=%d must be < N=%d", k, n)
			}
			k = n - 1
		}
	}

	g := &Graph{Points: points, Index: index, K: k}
	var err error
	switch cfg.kind {
	case KindKNN:
		g.Affinity, err = knnAffinity(points, k, cfg)
	case KindGaussian:
		g.Affinity, err = NewDenseAffinity(gaussian(PairwiseDistances(points), cfg.sigma, cfg.decay))
	default:
		var w *mat.Dense
		w, g.Bandwidth = adaptive(PairwiseDistances(points), k, cfg.decay)
		if cfg.kind == KindAnisotropic {
			anisotropic(w, cfg.anisotropy)
		}
		g.Affinity, err = NewDenseAffinity(w)
	}
	if err != nil {
		return nil, kernelErrorf("Build", err)
	}

	return g, nil
}

// knnAffinity builds the directed kNN relation then symmetrizes it.
// Weights: 1 when decay == 0, else exp(-(d/d_k)^decay).
func knnAffinity(ps *PointSet, k int, cfg buildConfig) (*Affinity, error) {
	nbs, err := NearestNeighbors(ps, k)
	if err != nil {
		return nil, err
	}
	n := ps.Len()
	coo := matrix.NewCOO(n, n)
	for i, nb := range nbs {
		if len(nb.Distance) == 0 {
			continue
		}
		bw := math.Max(nb.Distance[len(nb.Distance)-1], minBandwidth)
		for q, j := range nb.Index {
			w := 1.0
			if cfg.decay > 0 {
				w = math.Exp(-math.Pow(nb.Distance[q]/bw, cfg.decay))
			}
			if err := coo.Add(i, j, w); err != nil {
				return nil, err
			}
		}
	}
	w, err := matrix.Symmetrize(coo.ToCSR(matrix.DupMax), cfg.symmetrize)
	if err != nil {
		return nil, err
	}

	return NewSparseAffinity(w)
}

// gaussian evaluates exp(-(d/σ)^α) in place over the distance matrix.
func gaussian(dist *mat.Dense, sigma, decay float64) *mat.Dense {
	dist.Apply(func(_, _ int, d float64) float64 {
		return math.Exp(-math.Pow(d/sigma, decay))
	}, dist)

	return dist
}

// adaptive evaluates exp(-(d/√(σᵢσⱼ))^α) with σᵢ the distance to the k-th
// neighbor, in place over the distance matrix.
func adaptive(dist *mat.Dense, k int, decay float64) (*mat.Dense, []float64) {
	n, _ := dist.Dims()
	bw := make([]float64, n)
	others := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		others = others[:0]
		for j, d := range dist.RawRowView(i) {
			if j != i {
				others = append(others, d)
			}
		}
		if k > 0 {
			sort.Float64s(others)
			bw[i] = others[k-1]
		}
		bw[i] = math.Max(bw[i], minBandwidth)
	}
	dist.Apply(func(i, j int, d float64) float64 {
		return math.Exp(-math.Pow(d/math.Sqrt(bw[i]*bw[j]), decay))
	}, dist)

	return dist, bw
}

// anisotropic applies W_ij / (q_i q_j)^a in place, q being the row sums.
func anisotropic(w *mat.Dense, a float64) {
	if a == 0 {
		return
	}
	n, _ := w.Dims()
	q := make([]float64, n)
	for i := range q {
		for _, v := range w.RawRowView(i) {
			q[i] += v
		}
		q[i] = math.Pow(q[i], a)
	}
	w.Apply(func(i, j int, v float64) float64 {
		return v / (q[i] * q[j])
	}, w)
}
