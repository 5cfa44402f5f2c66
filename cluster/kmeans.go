// SPDX-License-Identifier: MIT
// Package: cluster
//
// kmeans.go — k-means with BLAS distance evaluation.
//
// Implementation:
//   - Stage 1: copy rows into a contiguous row-major buffer, cache ‖xᵢ‖².
//   - Stage 2: per restart, k-means++ seeding (D² sampling), then Lloyd
//     steps: dots = X·Cᵀ (Gemm), assign, re-seed empty clusters, average.
//   - Stage 3: stop on relative objective improvement below Tolerance or
//     after MaxIterations; keep the restart with the lowest objective.

package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Defaults.
const (
	DefaultMaxIterations = 300
	DefaultRestarts      = 3
	DefaultTolerance     = 1e-6
)

// Config configures KMeans. Zero fields take the defaults above.
type Config struct {
	K             int
	MaxIterations int
	Restarts      int
	Tolerance     float64
	Seed          int64
}

// DefaultConfig returns the configuration for k clusters with seed 0.
func DefaultConfig(k int) Config {
	return Config{
		K:             k,
		MaxIterations: DefaultMaxIterations,
		Restarts:      DefaultRestarts,
		Tolerance:     DefaultTolerance,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Restarts <= 0 {
		c.Restarts = DefaultRestarts
	}
	if !(c.Tolerance > 0) {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// Model is a fitted clustering.
type Model struct {
	K   int
	Dim int
	// Centroids is K×Dim, row-major.
	Centroids []float64
	// Labels assigns every training row to a centroid.
	Labels []int
	// Objective is the sum of squared distances to assigned centroids.
	Objective float64
}

// Centroid returns a view of centroid j.
func (m *Model) Centroid(j int) []float64 { return m.Centroids[j*m.Dim : (j+1)*m.Dim] }

// Sizes returns the number of training rows per cluster.
func (m *Model) Sizes() []int {
	out := make([]int, m.K)
	for _, l := range m.Labels {
		out[l]++
	}
	return out
}

// state is the working memory of one KMeans call.
type state struct {
	n, k, dim int
	x         []float64 // n×dim
	c         []float64 // k×dim
	xNorm     []float64
	cNorm     []float64
	dots      []float64 // n×k
	labels    []int
	counts    []int
	acc       []float64 // k×dim
}

// KMeans clusters the rows of x into cfg.K groups.
//
// Errors: ErrEmptyInput, ErrInvalidK.
// Complexity: O(restarts · iterations · n·k·dim).
func KMeans(x mat.Matrix, cfg Config) (*Model, error) {
	n, dim := x.Dims()
	if n == 0 || dim == 0 {
		return nil, clusterErrorf("KMeans", ErrEmptyInput)
	}
	if cfg.K < 1 || cfg.K > n {
		return nil, clusterErrorf("KMeans", ErrInvalidK)
	}
	cfg = cfg.withDefaults()

	s := newState(x, n, dim, cfg.K)
	rng := rand.New(rand.NewSource(cfg.Seed))

	var best *Model
	for r := 0; r < cfg.Restarts; r++ {
		obj := s.run(cfg, rng)
		if best == nil || obj < best.Objective {
			best = &Model{
				K:         s.k,
				Dim:       dim,
				Centroids: append([]float64(nil), s.c...),
				Labels:    append([]int(nil), s.labels...),
				Objective: obj,
			}
		}
	}

	return best, nil
}

func newState(x mat.Matrix, n, dim, k int) *state {
	s := &state{
		n: n, k: k, dim: dim,
		x:      make([]float64, n*dim),
		c:      make([]float64, k*dim),
		xNorm:  make([]float64, n),
		cNorm:  make([]float64, k),
		dots:   make([]float64, n*k),
		labels: make([]int, n),
		counts: make([]int, k),
		acc:    make([]float64, k*dim),
	}
	for i := 0; i < n; i++ {
		row := s.row(i)
		for j := 0; j < dim; j++ {
			row[j] = x.At(i, j)
		}
		s.xNorm[i] = dot(row, row)
	}
	return s
}

func (s *state) row(i int) []float64      { return s.x[i*s.dim : (i+1)*s.dim] }
func (s *state) centroid(j int) []float64 { return s.c[j*s.dim : (j+1)*s.dim] }

func dot(a, b []float64) float64 {
	return blas64.Dot(blas64.Vector{N: len(a), Inc: 1, Data: a}, blas64.Vector{N: len(b), Inc: 1, Data: b})
}

// run performs one seeded restart and returns its objective.
func (s *state) run(cfg Config, rng *rand.Rand) float64 {
	s.seed(rng)
	prev := math.Inf(1)
	var obj float64
	for it := 0; it < cfg.MaxIterations; it++ {
		s.norms()
		s.gemm()
		obj = s.assign()
		if s.reseedEmpty() {
			continue
		}
		if prev < math.Inf(1) && prev-obj <= cfg.Tolerance*math.Max(obj, math.SmallestNonzeroFloat64) {
			break
		}
		prev = obj
		s.update()
	}

	return obj
}

// seed picks initial centroids with k-means++ (D² sampling).
func (s *state) seed(rng *rand.Rand) {
	copy(s.centroid(0), s.row(rng.Intn(s.n)))
	dist := make([]float64, s.n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	for c := 1; c < s.k; c++ {
		prev := s.centroid(c - 1)
		pn := dot(prev, prev)
		var total float64
		for i := 0; i < s.n; i++ {
			d := math.Max(s.xNorm[i]+pn-2*dot(s.row(i), prev), 0)
			dist[i] = math.Min(dist[i], d)
			total += dist[i]
		}
		pick := rng.Intn(s.n)
		if total > 0 {
			target := rng.Float64() * total
			var cum float64
			for i, d := range dist {
				cum += d
				if cum >= target {
					pick = i
					break
				}
			}
		}
		copy(s.centroid(c), s.row(pick))
	}
}

func (s *state) norms() {
	for j := 0; j < s.k; j++ {
		c := s.centroid(j)
		s.cNorm[j] = dot(c, c)
	}
}

// gemm computes dots = X·Cᵀ.
func (s *state) gemm() {
	blas64.Gemm(blas.NoTrans, blas.Trans, 1,
		blas64.General{Rows: s.n, Cols: s.dim, Stride: s.dim, Data: s.x},
		blas64.General{Rows: s.k, Cols: s.dim, Stride: s.dim, Data: s.c},
		0,
		blas64.General{Rows: s.n, Cols: s.k, Stride: s.k, Data: s.dots},
	)
}

// assign labels every row with its nearest centroid (lowest index on ties).
func (s *state) assign() float64 {
	for j := range s.counts {
		s.counts[j] = 0
	}
	var obj float64
	for i := 0; i < s.n; i++ {
		best, bestJ := math.Inf(1), 0
		for j := 0; j < s.k; j++ {
			d := math.Max(s.xNorm[i]+s.cNorm[j]-2*s.dots[i*s.k+j], 0)
			if d < best {
				best, bestJ = d, j
			}
		}
		s.labels[i] = bestJ
		s.counts[bestJ]++
		obj += best
	}
	return obj
}

// reseedEmpty moves every empty centroid onto the row farthest from its
// own centroid. Reports whether anything moved.
func (s *state) reseedEmpty() bool {
	moved := false
	for j := 0; j < s.k; j++ {
		if s.counts[j] > 0 {
			continue
		}
		far, farI := -1.0, -1
		for i := 0; i < s.n; i++ {
			l := s.labels[i]
			if s.counts[l] < 2 {
				continue
			}
			d := s.xNorm[i] + s.cNorm[l] - 2*s.dots[i*s.k+l]
			if d > far {
				far, farI = d, i
			}
		}
		if farI < 0 {
			continue
		}
		s.counts[s.labels[farI]]--
		s.labels[farI] = j
		s.counts[j] = 1
		copy(s.centroid(j), s.row(farI))
		moved = true
	}
	return moved
}

// update replaces centroids by cluster means.
func (s *state) update() {
	for i := range s.acc {
		s.acc[i] = 0
	}
	for i := 0; i < s.n; i++ {
		l := s.labels[i]
		blas64.Axpy(1,
			blas64.Vector{N: s.dim, Inc: 1, Data: s.row(i)},
			blas64.Vector{N: s.dim, Inc: 1, Data: s.acc[l*s.dim : (l+1)*s.dim]})
	}
	for j := 0; j < s.k; j++ {
		if s.counts[j] == 0 {
			copy(s.acc[j*s.dim:(j+1)*s.dim], s.centroid(j))
			continue
		}
		blas64.Scal(1/float64(s.counts[j]), blas64.Vector{N: s.dim, Inc: 1, Data: s.acc[j*s.dim : (j+1)*s.dim]})
	}
	s.c, s.acc = s.acc, s.c
}

// Assign labels the rows of x with the nearest centroid of m.
//
// Errors: ErrEmptyInput, ErrDimensionMismatch.
func (m *Model) Assign(x mat.Matrix) ([]int, error) {
	n, dim := x.Dims()
	if n == 0 {
		return nil, clusterErrorf("Assign", ErrEmptyInput)
	}
	if dim != m.Dim {
		return nil, clusterErrorf("Assign", ErrDimensionMismatch)
	}
	out := make([]int, n)
	row := make([]float64, dim)
	for i := 0; i < n; i++ {
		for j := range row {
			row[j] = x.At(i, j)
		}
		best := math.Inf(1)
		for j := 0; j < m.K; j++ {
			var d float64
			for t, v := range m.Centroid(j) {
				diff := row[t] - v
				d += diff * diff
			}
			if d < best {
				best, out[i] = d, j
			}
		}
	}
	return out, nil
}
