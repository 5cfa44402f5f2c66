// SPDX-License-Identifier: MIT

package entropy

import "math"

// Defaults.
const (
	DefaultTrivialThreshold     = 0.9
	DefaultPowerEpsilon         = 1e-3
	DefaultInstabilityTolerance = 1e-3
	DefaultShannonClusters      = 10
	machineEpsilon              = 2.220446049250313e-16
	// tailMass is the eigenvalue count below which the lower tail of a
	// density is discarded.
	tailMass = 0.5
)

type config struct {
	tau         float64
	t           int
	powerEps    float64
	instability float64
	zero        float64 // ≤ 0 disables the near-zero filter
	floor       float64

	// ShannonPoints
	clusters int
	bins     int // > 0 selects Discretize over KMeans
	seed     int64
}

func newConfig(opts ...Option) config {
	c := config{
		tau:         DefaultTrivialThreshold,
		t:           1,
		powerEps:    DefaultPowerEpsilon,
		instability: DefaultInstabilityTolerance,
		floor:       machineEpsilon,
		clusters:    DefaultShannonClusters,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option customizes the estimators of this package.
type Option func(*config)

// WithTrivialThreshold sets τ: eigenvalues above it are dropped.
// Panics unless 0 < τ ≤ 1.
func WithTrivialThreshold(tau float64) Option {
	if !(tau > 0 && tau <= 1) {
		panic("entropy: WithTrivialThreshold(tau not in (0,1])")
	}
	return func(c *config) { c.tau = tau }
}

// WithT selects the t-step variant: eigenvalues are raised to t and those
// above 1−ε are dropped. t == 1 keeps the τ policy. Panics if t < 1.
func WithT(t int) Option {
	if t < 1 {
		panic("entropy: WithT(t<1)")
	}
	return func(c *config) { c.t = t }
}

// WithPowerEpsilon sets ε of the t-step variant. Panics unless 0 < ε < 1.
func WithPowerEpsilon(eps float64) Option {
	if !(eps > 0 && eps < 1) {
		panic("entropy: WithPowerEpsilon(eps not in (0,1))")
	}
	return func(c *config) { c.powerEps = eps }
}

// WithInstabilityTolerance sets how far below −1 an eigenvalue may fall
// before it is reported instead of clipped. Panics if tol < 0.
func WithInstabilityTolerance(tol float64) Option {
	if !(tol >= 0) {
		panic("entropy: WithInstabilityTolerance(tol<0)")
	}
	return func(c *config) { c.instability = tol }
}

// WithZeroThreshold drops retained values below eps after the shift.
// Panics if eps < 0 or NaN.
func WithZeroThreshold(eps float64) Option {
	if !(eps >= 0) {
		panic("entropy: WithZeroThreshold(eps<0)")
	}
	return func(c *config) { c.zero = eps }
}

// WithFloor sets the constant added to probabilities before the logarithm.
// Panics if f < 0 or not finite.
func WithFloor(f float64) Option {
	if !(f >= 0) || math.IsInf(f, 0) {
		panic("entropy: WithFloor(f<0)")
	}
	return func(c *config) { c.floor = f }
}

// WithClusters sets the k-means cluster count of ShannonPoints.
// Panics if k < 1.
func WithClusters(k int) Option {
	if k < 1 {
		panic("entropy: WithClusters(k<1)")
	}
	return func(c *config) { c.clusters = k; c.bins = 0 }
}

// WithBins makes ShannonPoints discretize each column into bins uniform
// bins instead of running k-means. Panics if bins < 1.
func WithBins(bins int) Option {
	if bins < 1 {
		panic("entropy: WithBins(bins<1)")
	}
	return func(c *config) { c.bins = bins }
}

// WithSeed fixes the k-means seed of ShannonPoints.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}
