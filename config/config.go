// SPDX-License-Identifier: MIT

// Package config loads and validates the analysis configuration from YAML.
//
// Every numeric package keeps its own functional options; Config is the
// flat, file-friendly view the pipeline and the CLI translate into those
// options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and Load for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the analysis configuration.
type Config struct {
	Kernel           string  `yaml:"kernel"`
	K                int     `yaml:"k"`
	Sigma            float64 `yaml:"sigma"`
	// Decay 0 keeps the kernel's own default exponent.
	Decay            float64 `yaml:"decay"`
	T                int     `yaml:"t"`
	TrivialThreshold float64 `yaml:"trivial_threshold"`
	Eps              float64 `yaml:"eps"`

	UseChebyshev    bool `yaml:"use_chebyshev"`
	ChebyshevOrder  int  `yaml:"chebyshev_order"`
	ChebyshevProbes int  `yaml:"chebyshev_probes"`
	// PartialK > 0 selects the partial (Lanczos) spectrum.
	PartialK int `yaml:"partial_k"`

	SubsampleCap      int   `yaml:"subsample_cap"`
	RandomSeed        int64 `yaml:"random_seed"`
	ClassSampleBudget int   `yaml:"class_sample_budget"`
	InputClusters     int   `yaml:"input_clusters"`
	ShannonClusters   int   `yaml:"shannon_clusters"`
	Threads           int   `yaml:"threads"`

	Extrema  ExtremaConfig  `yaml:"extrema"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
	Resample ResampleConfig `yaml:"resample"`
}

// ExtremaConfig configures Laplacian extrema selection.
type ExtremaConfig struct {
	Enabled bool `yaml:"enabled"`
	Count   int  `yaml:"count"`
	K       int  `yaml:"k"`
	NPCA    int  `yaml:"n_pca"`
}

// CacheConfig configures the artifact cache. Both zero disables caching.
type CacheConfig struct {
	Path          string `yaml:"path"`
	MemoryMaxCost int64  `yaml:"memory_max_cost"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ResampleConfig configures random-batch entropy resampling.
type ResampleConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Fraction float64 `yaml:"fraction"`
}

// DefaultConfig returns the defaults: kNN kernel with k = 10, t = 1,
// τ = 0.9, exact spectrum, seed 0, single thread.
func DefaultConfig() *Config {
	return &Config{
		Kernel:           "knn",
		K:                10,
		T:                1,
		TrivialThreshold: 0.9,
		Eps:              1e-3,
		ChebyshevOrder:   100,
		ChebyshevProbes:  30,
		SubsampleCap:     10000,
		InputClusters:    10,
		ShannonClusters:  10,
		Threads:          1,
		Extrema: ExtremaConfig{
			Count: 10,
			K:     10,
			NPCA:  100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Resample: ResampleConfig{
			Fraction: 0.1,
		},
	}
}

// Load reads the YAML file at path over DefaultConfig and validates the
// result. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, rejecting unknown keys, then fills zero
// fields with defaults and validates.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	cfg.applyDefaults()

	return cfg.Validate()
}

// applyDefaults fills fields left at zero by an explicit YAML value.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Kernel == "" {
		c.Kernel = d.Kernel
	}
	if c.T == 0 {
		c.T = d.T
	}
	if c.ChebyshevOrder == 0 {
		c.ChebyshevOrder = d.ChebyshevOrder
	}
	if c.ChebyshevProbes == 0 {
		c.ChebyshevProbes = d.ChebyshevProbes
	}
	if c.InputClusters == 0 {
		c.InputClusters = d.InputClusters
	}
	if c.ShannonClusters == 0 {
		c.ShannonClusters = d.ShannonClusters
	}
	if c.Extrema.Count == 0 {
		c.Extrema.Count = d.Extrema.Count
	}
	if c.Extrema.K == 0 {
		c.Extrema.K = d.Extrema.K
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Resample.Fraction == 0 {
		c.Resample.Fraction = d.Resample.Fraction
	}
}

// Validate checks ranges and names.
//
// Errors: ErrInvalidConfig naming the first offending key.
func (c *Config) Validate() error {
	switch {
	case !oneOf(c.Kernel, "knn", "gaussian", "adaptive", "anisotropic"):
		return invalid("kernel", c.Kernel)
	case c.K < 1:
		return invalid("k", c.K)
	case c.Kernel == "gaussian" && !(c.Sigma > 0):
		return invalid("sigma", c.Sigma)
	case c.Sigma < 0:
		return invalid("sigma", c.Sigma)
	case c.Decay < 0:
		return invalid("decay", c.Decay)
	case c.T < 1:
		return invalid("t", c.T)
	case !(c.TrivialThreshold > 0 && c.TrivialThreshold <= 1):
		return invalid("trivial_threshold", c.TrivialThreshold)
	case !(c.Eps >= 0 && c.Eps < 1):
		return invalid("eps", c.Eps)
	case c.PartialK < 0:
		return invalid("partial_k", c.PartialK)
	case c.UseChebyshev && c.PartialK > 0:
		return invalid("partial_k", "set together with use_chebyshev")
	case c.ChebyshevOrder < 2:
		return invalid("chebyshev_order", c.ChebyshevOrder)
	case c.ChebyshevProbes < 1:
		return invalid("chebyshev_probes", c.ChebyshevProbes)
	case c.SubsampleCap < 0:
		return invalid("subsample_cap", c.SubsampleCap)
	case c.ClassSampleBudget < 0:
		return invalid("class_sample_budget", c.ClassSampleBudget)
	case c.InputClusters < 1:
		return invalid("input_clusters", c.InputClusters)
	case c.ShannonClusters < 1:
		return invalid("shannon_clusters", c.ShannonClusters)
	case c.Threads < 0:
		return invalid("threads", c.Threads)
	case c.Extrema.Count < 1:
		return invalid("extrema.count", c.Extrema.Count)
	case c.Extrema.K < 1:
		return invalid("extrema.k", c.Extrema.K)
	case c.Extrema.NPCA < 0:
		return invalid("extrema.n_pca", c.Extrema.NPCA)
	case c.Cache.MemoryMaxCost < 0:
		return invalid("cache.memory_max_cost", c.Cache.MemoryMaxCost)
	case !oneOf(strings.ToLower(c.Log.Level), "debug", "info", "warn", "error"):
		return invalid("log.level", c.Log.Level)
	case !oneOf(strings.ToLower(c.Log.Format), "text", "json"):
		return invalid("log.format", c.Log.Format)
	case !(c.Resample.Fraction > 0 && c.Resample.Fraction <= 0.5):
		return invalid("resample.fraction", c.Resample.Fraction)
	}
	return nil
}

// CacheParams renders the settings that change numeric artifacts as a
// canonical string for cache keys. Logging, caching, threading and
// extrema settings are excluded.
func (c *Config) CacheParams() string {
	return fmt.Sprintf("kernel=%s;k=%d;sigma=%g;decay=%g;subsample=%d;seed=%d;spectrum=%s",
		c.Kernel, c.K, c.Sigma, c.Decay, c.SubsampleCap, c.RandomSeed, c.spectrumParams())
}

func (c *Config) spectrumParams() string {
	switch {
	case c.UseChebyshev:
		return fmt.Sprintf("chebyshev/%d/%d", c.ChebyshevOrder, c.ChebyshevProbes)
	case c.PartialK > 0:
		return fmt.Sprintf("partial/%d", c.PartialK)
	default:
		return "exact"
	}
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func invalid(key string, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidConfig, key, value)
}

func oneOf(s string, options ...string) bool {
	return slices.Contains(options, s)
}
