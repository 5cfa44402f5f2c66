// SPDX-License-Identifier: MIT
// Package: spectrum
//
// chebyshev.go — spectral density by the kernel polynomial method (KPM).
//
// Implementation:
//   - Stage 1: rescale P to Ã = P / (1 + margin) so that spec(Ã) ⊂ (−1, 1).
//   - Stage 2: moments μ_m = tr T_m(Ã) / N, estimated with Rademacher probes
//     (or exactly with unit vectors when probes ≥ N), using the three-term
//     recurrence t_{m+1} = 2Ã t_m − t_{m−1}.
//   - Stage 3: Jackson damping g_m, then the mass at Chebyshev node
//     x_i = cos(π(i+½)/G) is (1/G)·[g_0μ_0 + 2Σ g_m μ_m T_m(x_i)]
//     (Gauss–Chebyshev quadrature of the density).
//   - Stage 4: clip negative masses (Gibbs oscillations), renormalize.

package spectrum

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/diffentropy/diffusion"
)

// Density is a discretized spectral density over an ascending grid.
type Density struct {
	// Grid holds eigenvalue positions in ascending order, within [−1, 1].
	Grid []float64
	// Weights holds the probability mass at each grid point (Σ = 1).
	Weights []float64
	// Moments are the undamped Chebyshev moments μ_m (μ_0 = 1).
	Moments []float64
	Order   int
	Probes  int
	// N is the dimension of the operator.
	N int
}

// chebyshev estimates the density and samples N representative eigenvalues.
// Complexity: O(probes·order·nnz + grid·order).
func chebyshev(op *diffusion.Operator, cfg config) (*Spectrum, error) {
	d := Chebyshev(op, cfg.order, cfg.probes, cfg.grid, cfg.seed)

	return &Spectrum{Values: d.Eigenvalues(op.N()), Method: MethodChebyshev, N: op.N(), Density: d}, nil
}

// Chebyshev computes the KPM density of op with the given order, number of
// trace probes (probes ≥ N: exact trace), grid size and probe seed.
// order must be ≥ 2 and grid ≥ 2, as enforced by WithOrder and WithGrid.
func Chebyshev(op *diffusion.Operator, order, probes, grid int, seed int64) *Density {
	n := op.N()
	scale := 1 + spectralMargin
	mu := moments(op, n, order, probes, scale, seed)
	g := jackson(order)

	// Gauss–Chebyshev quadrature: node i carries the damped series at
	// θ_i = π(i+½)/G; T_m(cos θ) = cos(mθ) avoids a second recurrence.
	weights := make([]float64, grid)
	nodes := make([]float64, grid)
	for i := 0; i < grid; i++ {
		theta := math.Pi * (float64(i) + 0.5) / float64(grid)
		nodes[i] = math.Cos(theta)
		s := g[0] * mu[0]
		for m := 1; m < order; m++ {
			s += 2 * g[m] * mu[m] * math.Cos(float64(m)*theta)
		}
		weights[i] = math.Max(s, 0) / float64(grid)
	}
	// Gibbs ripples are clipped above; renormalize to a distribution.
	if total := floats.Sum(weights); total > 0 {
		floats.Scale(1/total, weights)
	}

	// nodes descend from ≈1 to ≈−1; store ascending positions on P's scale
	out := &Density{
		Grid:    make([]float64, grid),
		Weights: make([]float64, grid),
		Moments: mu,
		Order:   order,
		Probes:  min(probes, n),
		N:       n,
	}
	for i := 0; i < grid; i++ {
		// spec(P) ⊂ [−1, 1]; the margin only guards the recurrence
		out.Grid[i] = math.Max(-1, math.Min(1, nodes[grid-1-i]*scale))
		out.Weights[i] = weights[grid-1-i]
	}

	return out
}

// moments returns μ_m = tr T_m(P/scale) / n for m < order.
//
// Implementation:
//   - Stage 1: pick probe vectors z: Rademacher ±1 entries (E[zzᵀ] = I, so
//     E[zᵀT_m z] = tr T_m) or, for exact traces, the unit vectors e_r.
//   - Stage 2: per probe, run the recurrence t_0 = z, t_1 = Ãz,
//     t_{m+1} = 2Ãt_m − t_{m−1} and accumulate zᵀt_m into μ_m.
//   - Stage 3: average over probes and divide by n.
//
// Complexity: O(count·order·nnz) time, O(n) memory (three rolling vectors).
func moments(op *diffusion.Operator, n, order, probes int, scale float64, seed int64) []float64 {
	mu := make([]float64, order)
	exactTrace := probes >= n
	count := probes
	if exactTrace {
		count = n
	}
	rng := rand.New(rand.NewSource(seed))

	z := make([]float64, n)
	prev := make([]float64, n)
	cur := make([]float64, n)
	next := make([]float64, n)
	for r := 0; r < count; r++ {
		// Stage 1: probe vector.
		for i := range z {
			z[i] = 0
			if !exactTrace {
				z[i] = 1
				if rng.Intn(2) == 0 {
					z[i] = -1
				}
			}
		}
		if exactTrace {
			z[r] = 1
		}
		// Stage 2: t_0 = z contributes zᵀz.
		copy(prev, z)
		mu[0] += floats.Dot(z, prev)
		if order == 1 {
			continue
		}
		// t_1 = Ãz
		op.MulVecTo(cur, prev)
		floats.Scale(1/scale, cur)
		mu[1] += floats.Dot(z, cur)
		// t_{m+1} = 2Ãt_m − t_{m−1}; the three buffers rotate in place
		for m := 2; m < order; m++ {
			op.MulVecTo(next, cur)
			for i := range next {
				next[i] = 2*next[i]/scale - prev[i]
			}
			mu[m] += floats.Dot(z, next)
			prev, cur, next = cur, next, prev
		}
	}
	// Stage 3: mean over probes, per dimension.
	floats.Scale(1/float64(count*n), mu)

	return mu
}

// jackson returns the Jackson damping factors g_0..g_{M−1}.
func jackson(m int) []float64 {
	g := make([]float64, m)
	a := math.Pi / float64(m+1)
	cot := math.Cos(a) / math.Sin(a)
	for k := 0; k < m; k++ {
		g[k] = (float64(m-k+1)*math.Cos(a*float64(k)) + math.Sin(a*float64(k))*cot) / float64(m+1)
	}

	return g
}

// Eigenvalues samples n representative eigenvalues from the density by
// inverse-CDF at the mid-quantiles (j+½)/n, returned in descending order.
func (d *Density) Eigenvalues(n int) []float64 {
	cdf := make([]float64, len(d.Weights))
	floats.CumSum(cdf, d.Weights)
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		q := (float64(j) + 0.5) / float64(n)
		i := sort.SearchFloat64s(cdf, q)
		if i >= len(d.Grid) {
			i = len(d.Grid) - 1
		}
		out[j] = d.Grid[i]
	}
	sortDescending(out)

	return out
}
