// SPDX-License-Identifier: MIT
// Package: entropy
//
// vonneumann.go — spectral von Neumann entropy over eigenvalue lists and
// Chebyshev densities.

package entropy

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/diffentropy/spectrum"
)

// Retained returns the filtered, clipped and shifted eigenvalues that
// VonNeumann normalizes, in descending order. All returned values are ≥ 0.
//
// Errors: ErrNumericalInstability, ErrDegenerateSpectrum.
func Retained(values []float64, opts ...Option) ([]float64, error) {
	cfg := newConfig(opts...)
	kept, _, err := retain(values, nil, cfg)
	if err != nil {
		return nil, entropyErrorf("Retained", err)
	}
	return kept, nil
}

// retain applies the trivial, instability, shift and zero policies. When
// mass is non-nil it is filtered alongside values (density route).
func retain(values, mass []float64, cfg config) ([]float64, []float64, error) {
	type pair struct{ v, m float64 }
	ps := make([]pair, 0, len(values))
	for i, v := range values {
		p := pair{v: v, m: 1}
		if mass != nil {
			// empty grid points carry no eigenvalue to check
			if p.m = mass[i]; !(p.m > 0) {
				continue
			}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < -1-cfg.instability {
			return nil, nil, ErrNumericalInstability
		}
		p.v = math.Max(v, -1)
		ps = append(ps, p)
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].v > ps[j].v })

	// Stage 1: trivial eigenvalues.
	kept := ps[:0:0]
	for _, p := range ps {
		if cfg.t > 1 {
			p.v = math.Pow(p.v, float64(cfg.t))
			if p.v > 1-cfg.powerEps {
				continue
			}
		} else if p.v > cfg.tau {
			continue
		}
		kept = append(kept, p)
	}
	if cfg.t > 1 {
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].v > kept[j].v })
	}
	if len(kept) == 0 {
		return nil, nil, ErrDegenerateSpectrum
	}

	// Stage 2: shift negative rounding artifacts.
	if lo := kept[len(kept)-1].v; lo < 0 {
		for i := range kept {
			kept[i].v -= lo
		}
	}

	// Stage 3: near-zero values.
	if cfg.zero > 0 {
		out := kept[:0]
		for _, p := range kept {
			if p.v >= cfg.zero {
				out = append(out, p)
			}
		}
		kept = out
	}

	vals := make([]float64, len(kept))
	var ms []float64
	if mass != nil {
		ms = make([]float64, len(kept))
	}
	var count, sum float64
	for i, p := range kept {
		vals[i] = p.v
		count += p.m
		sum += p.v * p.m
		if ms != nil {
			ms[i] = p.m
		}
	}
	if count < 2-1e-9 || !(sum > 0) {
		return nil, nil, ErrDegenerateSpectrum
	}

	return vals, ms, nil
}

// VonNeumann returns −Σ p log p of the retained spectrum normalized to a
// distribution (p = λ/Σλ + floor). The input is not modified and its order
// does not matter.
//
// Errors: ErrDegenerateSpectrum, ErrNumericalInstability; the value is NaN
// whenever an error is returned.
//
// Complexity: O(N log N).
func VonNeumann(values []float64, opts ...Option) (float64, error) {
	cfg := newConfig(opts...)
	kept, _, err := retain(values, nil, cfg)
	if err != nil {
		return math.NaN(), entropyErrorf("VonNeumann", err)
	}
	sum := floats.Sum(kept)
	p := make([]float64, len(kept))
	for i, v := range kept {
		p[i] = v/sum + cfg.floor
	}

	return stat.Entropy(p), nil
}

// VonNeumannDensity is VonNeumann for a Chebyshev density: grid point i
// stands for N·wᵢ eigenvalues equal to gridᵢ, so with q_i = wᵢλᵢ/Λ and
// Λ = Σ wᵢλᵢ the entropy is −Σ qᵢ log(λᵢ/(N·Λ)). Grid points without mass
// are ignored, as is the lower tail below half an eigenvalue of mass.
//
// Errors: as VonNeumann.
// Complexity: O(G log G) for G grid points.
func VonNeumannDensity(d *spectrum.Density, opts ...Option) (float64, error) {
	if d == nil || len(d.Grid) == 0 {
		return math.NaN(), entropyErrorf("VonNeumannDensity", ErrDegenerateSpectrum)
	}
	cfg := newConfig(opts...)
	n := float64(d.N)
	mass := make([]float64, len(d.Weights))
	for i, w := range d.Weights {
		mass[i] = w * n
	}

	// Stage 1: drop the lower tail holding less than half an eigenvalue.
	// Jackson smoothing leaks a little mass below the smallest eigenvalue;
	// left in, it would set the shift of the negative-value policy.
	// Density.Eigenvalues never samples below the same cut.
	lo, below := 0, 0.0
	for lo < len(mass) && below+mass[lo] < tailMass {
		below += mass[lo]
		lo++
	}

	// Stage 2: the list policies, with grid points weighted by their mass.
	vals, ms, err := retain(d.Grid[lo:], mass[lo:], cfg)
	if err != nil {
		return math.NaN(), entropyErrorf("VonNeumannDensity", err)
	}
	var total float64
	for i, v := range vals {
		total += ms[i] * v
	}
	var h float64
	for i, v := range vals {
		if v == 0 {
			continue
		}
		p := v/total + cfg.floor
		h -= ms[i] * (v / total) * math.Log(p)
	}

	return h, nil
}

// OfSpectrum dispatches to VonNeumannDensity when s carries a density and
// to VonNeumann otherwise.
func OfSpectrum(s *spectrum.Spectrum, opts ...Option) (float64, error) {
	if s == nil {
		return math.NaN(), entropyErrorf("OfSpectrum", ErrDegenerateSpectrum)
	}
	if s.Density != nil {
		return VonNeumannDensity(s.Density, opts...)
	}
	return VonNeumann(s.Values, opts...)
}
