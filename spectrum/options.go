// SPDX-License-Identifier: MIT
// Package: spectrum
//
// options.go — functional options for Estimate.
//
// Deterministic defaults:
//   - method     = MethodExact
//   - partialK   = 100
//   - order      = 100 Chebyshev moments
//   - probes     = 30 Rademacher probes (probes ≥ N switches to exact trace)
//   - grid       = max(4·order, 512) Chebyshev nodes
//   - seed       = 0

package spectrum

import (
	"fmt"
	"strings"
)

// Method selects the spectrum strategy.
type Method int

const (
	// MethodExact computes all eigenvalues with a dense solver.
	MethodExact Method = iota
	// MethodPartial computes the k largest-magnitude eigenvalues (Lanczos).
	MethodPartial
	// MethodChebyshev approximates the spectral density (KPM).
	MethodChebyshev
)

var methodNames = map[Method]string{
	MethodExact:     "exact",
	MethodPartial:   "partial",
	MethodChebyshev: "chebyshev",
}

// String implements fmt.Stringer.
func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a configuration name to a Method.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}

	return 0, spectrumErrorf("ParseMethod", fmt.Errorf("%w %q", ErrUnknownMethod, s))
}

// Defaults.
const (
	DefaultPartialK    = 100
	DefaultOrder       = 100
	DefaultProbes      = 30
	DefaultMaxRestarts = 300
	DefaultTolerance   = 1e-8
	minGrid            = 512
	// spectralMargin widens [-1, 1] so rounding never pushes an eigenvalue
	// outside the Chebyshev interval.
	spectralMargin = 1e-2
)

type config struct {
	method      Method
	partialK    int
	krylov      int
	maxRestarts int
	tol         float64
	order       int
	probes      int
	grid        int
	seed        int64
}

func newConfig(opts ...Option) config {
	c := config{
		method:      MethodExact,
		partialK:    DefaultPartialK,
		maxRestarts: DefaultMaxRestarts,
		tol:         DefaultTolerance,
		order:       DefaultOrder,
		probes:      DefaultProbes,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.grid == 0 {
		c.grid = max(4*c.order, minGrid)
	}

	return c
}

// Option customizes Estimate.
type Option func(*config)

// WithMethod selects the strategy. Panics on unknown methods.
func WithMethod(m Method) Option {
	if _, ok := methodNames[m]; !ok {
		panic("spectrum: WithMethod(unknown)")
	}
	return func(c *config) { c.method = m }
}

// WithPartialK sets the number of eigenvalues computed by MethodPartial.
// Panics if k < 1.
func WithPartialK(k int) Option {
	if k < 1 {
		panic("spectrum: WithPartialK(k<1)")
	}
	return func(c *config) { c.partialK = k }
}

// WithKrylov sets the Lanczos basis size. Panics if m < 1.
func WithKrylov(m int) Option {
	if m < 1 {
		panic("spectrum: WithKrylov(m<1)")
	}
	return func(c *config) { c.krylov = m }
}

// WithMaxRestarts bounds Lanczos restarts. Panics if r < 0.
func WithMaxRestarts(r int) Option {
	if r < 0 {
		panic("spectrum: WithMaxRestarts(r<0)")
	}
	return func(c *config) { c.maxRestarts = r }
}

// WithTolerance sets the Lanczos residual tolerance. Panics if tol <= 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("spectrum: WithTolerance(tol<=0)")
	}
	return func(c *config) { c.tol = tol }
}

// WithOrder sets the number of Chebyshev moments. Panics if m < 2.
func WithOrder(m int) Option {
	if m < 2 {
		panic("spectrum: WithOrder(m<2)")
	}
	return func(c *config) { c.order = m }
}

// WithProbes sets the number of random trace probes; probes ≥ N uses the
// exact trace. Panics if r < 1.
func WithProbes(r int) Option {
	if r < 1 {
		panic("spectrum: WithProbes(r<1)")
	}
	return func(c *config) { c.probes = r }
}

// WithGrid sets the number of Chebyshev nodes the density is evaluated on.
// Panics if g < 2.
func WithGrid(g int) Option {
	if g < 2 {
		panic("spectrum: WithGrid(g<2)")
	}
	return func(c *config) { c.grid = g }
}

// WithSeed fixes the seed for Lanczos start vectors and trace probes.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}
