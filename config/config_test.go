// SPDX-License-Identifier: MIT
package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diffentropy/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "knn", cfg.Kernel)
	assert.Equal(t, 10, cfg.K)
	assert.Equal(t, 1, cfg.T)
	assert.Equal(t, 0.9, cfg.TrivialThreshold)
	assert.Equal(t, 1e-3, cfg.Eps)
	assert.False(t, cfg.UseChebyshev)
	assert.Equal(t, 10000, cfg.SubsampleCap)
	assert.Equal(t, int64(0), cfg.RandomSeed)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "diffent.yaml")
	body := `
kernel: anisotropic
k: 15
t: 3
trivial_threshold: 0.95
use_chebyshev: true
chebyshev_order: 80
random_seed: 7
extrema:
  enabled: true
  count: 4
cache:
  path: /tmp/diffent.db
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anisotropic", cfg.Kernel)
	assert.Equal(t, 15, cfg.K)
	assert.Equal(t, 3, cfg.T)
	assert.Equal(t, 0.95, cfg.TrivialThreshold)
	assert.True(t, cfg.UseChebyshev)
	assert.Equal(t, 80, cfg.ChebyshevOrder)
	assert.Equal(t, 30, cfg.ChebyshevProbes)
	assert.Equal(t, int64(7), cfg.RandomSeed)
	assert.Equal(t, config.ExtremaConfig{Enabled: true, Count: 4, K: 10, NPCA: 100}, cfg.Extrema)
	assert.Equal(t, "/tmp/diffent.db", cfg.Cache.Path)
	assert.Equal(t, "json", cfg.Log.Format)

	empty, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), empty)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		key  string
	}{
		{"kernel", "kernel: cosine", "kernel"},
		{"k", "k: 0", "k"},
		{"gaussian without sigma", "kernel: gaussian", "sigma"},
		{"threshold above one", "trivial_threshold: 1.5", "trivial_threshold"},
		{"threshold zero", "trivial_threshold: 0", "trivial_threshold"},
		{"negative t", "t: -2", "t"},
		{"two spectrum methods", "use_chebyshev: true\npartial_k: 20", "partial_k"},
		{"chebyshev order", "chebyshev_order: 1", "chebyshev_order"},
		{"negative budget", "class_sample_budget: -1", "class_sample_budget"},
		{"log level", "log: {level: loud}", "log.level"},
		{"resample fraction", "resample: {fraction: 0.9}", "resample.fraction"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := config.Parse([]byte(tc.yaml), config.DefaultConfig())
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.key+"=")
		})
	}

	err := config.Parse([]byte("neighbours: 5"), config.DefaultConfig())
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalidConfig)
}

func TestParseFillsZeroFields(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	require.NoError(t, config.Parse([]byte("k: 5\ntrivial_threshold: 0.8"), cfg))
	assert.Equal(t, "knn", cfg.Kernel)
	assert.Equal(t, 1, cfg.T)
	assert.Equal(t, 10, cfg.Extrema.Count)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestCacheParams(t *testing.T) {
	t.Parallel()

	a := config.DefaultConfig()
	b := config.DefaultConfig()
	assert.Equal(t, a.CacheParams(), b.CacheParams())

	// settings that do not change eigenvalues leave the key alone
	b.Log.Level = "debug"
	b.Threads = 8
	b.TrivialThreshold = 0.5
	b.Extrema.Count = 3
	assert.Equal(t, a.CacheParams(), b.CacheParams())

	b.K = 11
	assert.NotEqual(t, a.CacheParams(), b.CacheParams())

	c := config.DefaultConfig()
	c.UseChebyshev = true
	assert.Contains(t, c.CacheParams(), "spectrum=chebyshev/100/30")
	c.UseChebyshev, c.PartialK = false, 20
	assert.Contains(t, c.CacheParams(), "spectrum=partial/20")
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.K = 12
	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "trivial_threshold: 0.9")

	back := config.DefaultConfig()
	require.NoError(t, config.Parse(data, back))
	assert.Equal(t, cfg, back)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := config.LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 10)
	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"k":10`)

	buf.Reset()
	config.LogConfig{Level: "info", Format: "text"}.NewLogger(&buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
