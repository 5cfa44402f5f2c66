// SPDX-License-Identifier: MIT
// Package: spectrum
//
// spectrum.go — Estimate dispatch, the exact and partial strategies, and
// helpers over eigenvalue lists.

package spectrum

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/diffusion"
	"github.com/katalvlaran/diffentropy/matrix"
)

// Spectrum is an eigenvalue list sorted in descending order.
type Spectrum struct {
	Values []float64
	Method Method
	// N is the dimension of the operator the values came from; len(Values)
	// is smaller for MethodPartial.
	N int
	// Density is set by MethodChebyshev only.
	Density *Density
}

// Estimate computes the spectrum of op with the configured method.
//
// Errors: ErrNilOperator, ErrEigenFailed, ErrNoConvergence, ErrNotSymmetric.
func Estimate(op *diffusion.Operator, opts ...Option) (*Spectrum, error) {
	if op == nil {
		return nil, spectrumErrorf("Estimate", ErrNilOperator)
	}
	cfg := newConfig(opts...)
	switch cfg.method {
	case MethodPartial:
		return partial(op, cfg)
	case MethodChebyshev:
		return chebyshev(op, cfg)
	default:
		return exact(op)
	}
}

// Exact returns all eigenvalues of op.
func Exact(op *diffusion.Operator) (*Spectrum, error) {
	return Estimate(op, WithMethod(MethodExact))
}

// exact uses EigenSym on the symmetric conjugate, falling back to the
// general solver for non-symmetric operators.
// Complexity: O(N³) time, O(N²) memory.
func exact(op *diffusion.Operator) (*Spectrum, error) {
	var vals []float64
	if op.Symmetric() {
		sym, err := op.ConjugateDense()
		if err != nil {
			return nil, spectrumErrorf("Exact", err)
		}
		var es mat.EigenSym
		if ok := es.Factorize(sym, false); !ok {
			return nil, spectrumErrorf("Exact", ErrEigenFailed)
		}
		vals = es.Values(nil)
	} else {
		var eig mat.Eigen
		if ok := eig.Factorize(op.Dense(), mat.EigenNone); !ok {
			return nil, spectrumErrorf("Exact", ErrEigenFailed)
		}
		for _, v := range eig.Values(nil) {
			vals = append(vals, real(v))
		}
	}
	sortDescending(vals)

	return &Spectrum{Values: vals, Method: MethodExact, N: op.N()}, nil
}

// partial runs Lanczos for the partialK largest-magnitude eigenvalues of the
// symmetric conjugate.
// Complexity: O(restarts·(m·nnz + N·m²)).
func partial(op *diffusion.Operator, cfg config) (*Spectrum, error) {
	if !op.Symmetric() {
		return nil, spectrumErrorf("Partial", ErrNotSymmetric)
	}
	a, err := op.Conjugate()
	if err != nil {
		return nil, spectrumErrorf("Partial", err)
	}
	k := min(cfg.partialK, op.N())
	lopts := []matrix.LanczosOption{
		matrix.WithMaxRestarts(cfg.maxRestarts),
		matrix.WithTol(cfg.tol),
		matrix.WithLanczosSeed(cfg.seed),
	}
	if cfg.krylov > 0 {
		lopts = append(lopts, matrix.WithKrylov(cfg.krylov))
	}
	res, err := matrix.Lanczos(a, k, matrix.LargestMagnitude, lopts...)
	if err != nil {
		return nil, spectrumErrorf("Partial", err)
	}
	if !res.Converged {
		return nil, spectrumErrorf("Partial", ErrNoConvergence)
	}
	vals := append([]float64(nil), res.Values...)
	sortDescending(vals)

	return &Spectrum{Values: vals, Method: MethodPartial, N: op.N()}, nil
}

// Pow returns λᵗ for every value (t ≥ 1; t ≤ 1 returns a copy).
func Pow(values []float64, t int) []float64 {
	out := append([]float64(nil), values...)
	if t <= 1 {
		return out
	}
	for i, v := range out {
		out[i] = math.Pow(v, float64(t))
	}

	return out
}

// CountAbove returns, for each threshold, how many of the values raised to
// the power t exceed it.
func CountAbove(values []float64, thresholds []float64, t int) []int {
	powered := Pow(values, t)
	out := make([]int, len(thresholds))
	for i, thr := range thresholds {
		for _, v := range powered {
			if v > thr {
				out[i]++
			}
		}
	}

	return out
}

// CountAbove is the method form of the package-level CountAbove.
func (s *Spectrum) CountAbove(thresholds []float64, t int) []int {
	return CountAbove(s.Values, thresholds, t)
}

// Pow is the method form of the package-level Pow.
func (s *Spectrum) Pow(t int) []float64 { return Pow(s.Values, t) }

func sortDescending(v []float64) {
	sort.Sort(sort.Reverse(sort.Float64Slice(v)))
}
