// SPDX-License-Identifier: MIT
// Package: kernel
//
// options.go — functional options for Build.
//
// Contract:
//   - Options are functional (type Option func(*buildConfig)).
//   - Option constructors validate and PANIC on meaningless inputs; Build
//     itself never panics and reports data-dependent problems as errors.
//   - Determinism is explicit: subsampling is seeded through WithSubsample.

package kernel

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/diffentropy/matrix"
)

// Kind selects the kernel family.
type Kind int

const (
	// KindKNN connects each point to its k nearest neighbors (sparse).
	KindKNN Kind = iota
	// KindGaussian uses a fixed bandwidth over all pairs (dense).
	KindGaussian
	// KindAdaptive uses per-point bandwidths from the k-th neighbor (dense).
	KindAdaptive
	// KindAnisotropic is KindAdaptive followed by density normalization.
	KindAnisotropic
)

var kindNames = map[Kind]string{
	KindKNN:         "knn",
	KindGaussian:    "gaussian",
	KindAdaptive:    "adaptive",
	KindAnisotropic: "anisotropic",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a configuration name to a Kind (case-insensitive).
//
// Errors: ErrConfiguration for unknown names.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}

	return 0, configErrorf("ParseKind", "unknown kernel %q", s)
}

// needsNeighbors reports whether the kernel depends on k.
func (k Kind) needsNeighbors() bool { return k != KindGaussian }

// Option customizes Build.
type Option func(*buildConfig)

// WithK sets the neighbor count. Panics if k < 1.
func WithK(k int) Option {
	if k < 1 {
		panic("kernel: WithK(k<1)")
	}
	return func(c *buildConfig) { c.k = k }
}

// WithKind selects the kernel family. Panics on unknown kinds.
func WithKind(kind Kind) Option {
	if _, ok := kindNames[kind]; !ok {
		panic("kernel: WithKind(unknown)")
	}
	return func(c *buildConfig) { c.kind = kind }
}

// WithSigma sets the fixed Gaussian bandwidth. Panics if sigma is NaN or Inf;
// non-positive values are rejected by Build with ErrConfiguration.
func WithSigma(sigma float64) Option {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		panic("kernel: WithSigma(non-finite)")
	}
	return func(c *buildConfig) { c.sigma = sigma }
}

// WithDecay sets the kernel exponent α. For KindKNN, α == 0 yields binary
// weights. Panics if alpha < 0 or is not finite.
func WithDecay(alpha float64) Option {
	if !(alpha >= 0) || math.IsInf(alpha, 0) {
		panic("kernel: WithDecay(alpha<0)")
	}
	return func(c *buildConfig) { c.decay = alpha }
}

// WithAnisotropy sets the density normalization exponent used by
// KindAnisotropic. Panics if a < 0 or a > 1.
func WithAnisotropy(a float64) Option {
	if !(a >= 0 && a <= 1) {
		panic("kernel: WithAnisotropy(a not in [0,1])")
	}
	return func(c *buildConfig) { c.anisotropy = a }
}

// WithSymmetrize selects how directed kNN relations are combined.
func WithSymmetrize(mode matrix.SymmetrizeMode) Option {
	return func(c *buildConfig) { c.symmetrize = mode }
}

// WithPCA projects points onto n principal components before distances.
// Panics if n < 1.
func WithPCA(n int) Option {
	if n < 1 {
		panic("kernel: WithPCA(n<1)")
	}
	return func(c *buildConfig) { c.npca = n }
}

// WithSubsample keeps at most limit points, drawn with a rand.Rand seeded by
// seed. Panics if limit < 1.
func WithSubsample(limit int, seed int64) Option {
	if limit < 1 {
		panic("kernel: WithSubsample(limit<1)")
	}
	return func(c *buildConfig) {
		c.subsample = limit
		c.seed = seed
	}
}

// WithFullyConnectedFallback lets Build use k = N−1 instead of failing when
// k ≥ N.
func WithFullyConnectedFallback() Option {
	return func(c *buildConfig) { c.fallback = true }
}
