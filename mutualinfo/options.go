// SPDX-License-Identifier: MIT

package mutualinfo

import (
	"log/slog"

	"github.com/katalvlaran/diffentropy/entropy"
	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/spectrum"
)

// Defaults.
const (
	DefaultEpsilon       = 1e-3
	DefaultInputClusters = 10
)

// Option customizes an Estimator.
type Option func(*Estimator)

// WithKernelOptions sets the graph construction used for every entropy.
func WithKernelOptions(opts ...kernel.Option) Option {
	return func(e *Estimator) { e.kernelOpts = append([]kernel.Option(nil), opts...) }
}

// WithSpectrumOptions sets the spectrum strategy.
func WithSpectrumOptions(opts ...spectrum.Option) Option {
	return func(e *Estimator) { e.spectrumOpts = append([]spectrum.Option(nil), opts...) }
}

// WithEntropyOptions sets the von Neumann policy (τ, t, ε, …) and the
// Shannon clustering of the Shannon estimators.
func WithEntropyOptions(opts ...entropy.Option) Option {
	return func(e *Estimator) { e.entropyOpts = append([]entropy.Option(nil), opts...) }
}

// WithClassBudget caps the number of points per class drawn by
// PerClassRandomSample. 0 keeps every point. Panics if n < 0.
func WithClassBudget(n int) Option {
	if n < 0 {
		panic("mutualinfo: WithClassBudget(n<0)")
	}
	return func(e *Estimator) { e.budget = n }
}

// WithSeed fixes every random draw (class subsamples, baselines, input
// clustering).
func WithSeed(seed int64) Option {
	return func(e *Estimator) { e.seed = seed }
}

// WithEpsilon sets the anomaly floor: MI < −ε is flagged.
// Panics if eps < 0.
func WithEpsilon(eps float64) Option {
	if !(eps >= 0) {
		panic("mutualinfo: WithEpsilon(eps<0)")
	}
	return func(e *Estimator) { e.eps = eps }
}

// WithInputClusters sets the number of k-means clusters of raw inputs.
// Panics if k < 1.
func WithInputClusters(k int) Option {
	if k < 1 {
		panic("mutualinfo: WithInputClusters(k<1)")
	}
	return func(e *Estimator) { e.inputClusters = k }
}

// WithMatchedBaseline makes PerClassRandomSample compare every class with a
// random subset of the same size drawn from all points, instead of with the
// global H(Z).
func WithMatchedBaseline() Option {
	return func(e *Estimator) { e.matched = true }
}

// WithRenormalizedClasses makes PerClassSimple renormalize class-induced
// operators to be row-stochastic.
func WithRenormalizedClasses() Option {
	return func(e *Estimator) { e.renormalize = true }
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Estimator) {
		if l != nil {
			e.log = l
		}
	}
}
