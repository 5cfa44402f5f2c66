// SPDX-License-Identifier: MIT
// Package: extrema
//
// options.go — functional options for Select.
//
// Deterministic defaults:
//   - count     = 10 extrema
//   - k         = 10 neighbors, binary weights
//   - pca       = 100 components (skipped when D ≤ 100)
//   - subsample = 10000 points, seed 0
//   - tol       = 1e-6 relative eigen-residual

package extrema

import (
	"log/slog"
)

// Defaults.
const (
	DefaultCount         = 10
	DefaultK             = 10
	DefaultPCA           = 100
	DefaultSubsample     = 10000
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 200
	// shiftFactor scales the mean degree into the inverse-iteration shift.
	shiftFactor = 1e-6
)

type config struct {
	count     int
	k         int
	npca      int
	subsample int
	seed      int64
	tol       float64
	maxIter   int
	log       *slog.Logger
}

func newConfig(opts ...Option) config {
	c := config{
		count:     DefaultCount,
		k:         DefaultK,
		npca:      DefaultPCA,
		subsample: DefaultSubsample,
		tol:       DefaultTolerance,
		maxIter:   DefaultMaxIterations,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option customizes Select and SelectFromLaplacian.
type Option func(*config)

// WithCount sets the number of extrema. Panics if n < 1.
func WithCount(n int) Option {
	if n < 1 {
		panic("extrema: WithCount(n<1)")
	}
	return func(c *config) { c.count = n }
}

// WithK sets the kNN neighbor count. Panics if k < 1.
func WithK(k int) Option {
	if k < 1 {
		panic("extrema: WithK(k<1)")
	}
	return func(c *config) { c.k = k }
}

// WithPCA sets the number of principal components; 0 disables PCA.
// Panics if n < 0.
func WithPCA(n int) Option {
	if n < 0 {
		panic("extrema: WithPCA(n<0)")
	}
	return func(c *config) { c.npca = n }
}

// WithSubsample caps the graph size; limit 0 disables subsampling.
// Panics if limit < 0.
func WithSubsample(limit int, seed int64) Option {
	if limit < 0 {
		panic("extrema: WithSubsample(limit<0)")
	}
	return func(c *config) {
		c.subsample = limit
		c.seed = seed
	}
}

// WithTolerance sets the relative eigen-residual tolerance.
// Panics if tol <= 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("extrema: WithTolerance(tol<=0)")
	}
	return func(c *config) { c.tol = tol }
}

// WithMaxIterations bounds inverse iteration steps and Lanczos restarts.
// Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic("extrema: WithMaxIterations(n<1)")
	}
	return func(c *config) { c.maxIter = n }
}

// WithLogger sets the logger used for convergence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}
