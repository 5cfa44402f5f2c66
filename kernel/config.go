// SPDX-License-Identifier: MIT
// Package: kernel
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - k          = 10
//   - kind       = KindKNN
//   - sigma      = 10.0
//   - decay      = 0 for KindKNN (binary), 2 for the Gaussian family
//   - anisotropy = 1
//   - symmetrize = matrix.SymMax
//   - npca, subsample = off

package kernel

import "github.com/katalvlaran/diffentropy/matrix"

// Defaults.
const (
	DefaultK          = 10
	DefaultSigma      = 10.0
	DefaultAnisotropy = 1.0
	defaultGaussDecay = 2.0
	unsetDecay        = -1.0
	// minBandwidth floors adaptive bandwidths of duplicated points.
	minBandwidth = 1e-12
)

// buildConfig aggregates all knobs used by Build.
type buildConfig struct {
	k          int
	kind       Kind
	sigma      float64
	decay      float64
	anisotropy float64
	symmetrize matrix.SymmetrizeMode
	npca       int
	subsample  int
	seed       int64
	fallback   bool
}

// newBuildConfig applies options in order over the defaults.
func newBuildConfig(opts ...Option) buildConfig {
	cfg := buildConfig{
		k:          DefaultK,
		kind:       KindKNN,
		sigma:      DefaultSigma,
		decay:      unsetDecay,
		anisotropy: DefaultAnisotropy,
		symmetrize: matrix.SymMax,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.decay == unsetDecay {
		if cfg.kind == KindKNN {
			cfg.decay = 0
		} else {
			cfg.decay = defaultGaussDecay
		}
	}

	return cfg
}
