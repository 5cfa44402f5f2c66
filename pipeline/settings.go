// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/katalvlaran/diffentropy/config"
	"github.com/katalvlaran/diffentropy/entropy"
	"github.com/katalvlaran/diffentropy/extrema"
	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/spectrum"
)

// CountThresholds are the levels at which eigenvalues are counted.
var CountThresholds = []float64{0.5, 0.2, 0.1, 5e-2, 1e-2, 1e-3, 1e-4}

// SweepThresholds are the trivial thresholds of the τ sweep.
var SweepThresholds = []float64{0.5, 0.7, 0.8, 0.9, 0.95, 0.99, 1.0}

// settings are the package options derived from a Config.
type settings struct {
	kernel   []kernel.Option
	spectrum []spectrum.Option
	entropy  []entropy.Option
	extrema  []extrema.Option
}

func newSettings(cfg *config.Config) (settings, error) {
	kind, err := kernel.ParseKind(cfg.Kernel)
	if err != nil {
		return settings{}, err
	}
	s := settings{
		kernel: []kernel.Option{kernel.WithKind(kind), kernel.WithK(cfg.K)},
	}
	if cfg.Sigma > 0 {
		s.kernel = append(s.kernel, kernel.WithSigma(cfg.Sigma))
	}
	if cfg.Decay > 0 {
		s.kernel = append(s.kernel, kernel.WithDecay(cfg.Decay))
	}
	if cfg.SubsampleCap > 0 {
		s.kernel = append(s.kernel, kernel.WithSubsample(cfg.SubsampleCap, cfg.RandomSeed))
	}

	switch {
	case cfg.UseChebyshev:
		s.spectrum = []spectrum.Option{
			spectrum.WithMethod(spectrum.MethodChebyshev),
			spectrum.WithOrder(cfg.ChebyshevOrder),
			spectrum.WithProbes(cfg.ChebyshevProbes),
			spectrum.WithSeed(cfg.RandomSeed),
		}
	case cfg.PartialK > 0:
		s.spectrum = []spectrum.Option{
			spectrum.WithMethod(spectrum.MethodPartial),
			spectrum.WithPartialK(cfg.PartialK),
			spectrum.WithSeed(cfg.RandomSeed),
		}
	default:
		s.spectrum = []spectrum.Option{spectrum.WithMethod(spectrum.MethodExact)}
	}

	s.entropy = []entropy.Option{
		entropy.WithTrivialThreshold(cfg.TrivialThreshold),
		entropy.WithT(cfg.T),
		entropy.WithClusters(cfg.ShannonClusters),
		entropy.WithSeed(cfg.RandomSeed),
	}
	if cfg.Eps > 0 {
		s.entropy = append(s.entropy, entropy.WithPowerEpsilon(cfg.Eps))
	}

	s.extrema = []extrema.Option{
		extrema.WithCount(cfg.Extrema.Count),
		extrema.WithK(cfg.Extrema.K),
		extrema.WithPCA(cfg.Extrema.NPCA),
		extrema.WithSubsample(cfg.SubsampleCap, cfg.RandomSeed),
	}

	return s, nil
}

// sweepOptions returns the entropy options for one τ of the sweep (t = 1).
func (s settings) sweepOptions(tau float64) []entropy.Option {
	return append(append([]entropy.Option(nil), s.entropy...), entropy.WithTrivialThreshold(tau), entropy.WithT(1))
}
