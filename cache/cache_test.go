// SPDX-License-Identifier: MIT
package cache_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diffentropy/cache"
)

var key = cache.Key{Checkpoint: "run1/epoch10.csv", Artifact: "eigenvalues", Params: "k=10"}

func TestKeyID(t *testing.T) {
	t.Parallel()

	id := key.ID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
	assert.Equal(t, id, cache.Key{Checkpoint: "run1/epoch10.csv", Artifact: "eigenvalues", Params: "k=10"}.ID())

	others := []cache.Key{
		{Checkpoint: "run1/epoch11.csv", Artifact: "eigenvalues", Params: "k=10"},
		{Checkpoint: "run1/epoch10.csv", Artifact: "density", Params: "k=10"},
		{Checkpoint: "run1/epoch10.csv", Artifact: "eigenvalues", Params: "k=11"},
		// field boundaries are part of the identity
		{Checkpoint: "run1/epoch10.csveigenvalues", Artifact: "", Params: "k=10"},
	}
	for _, o := range others {
		assert.NotEqual(t, id, o.ID(), o.String())
	}

	assert.NoError(t, key.Validate())
	assert.ErrorIs(t, cache.Key{Artifact: "x"}.Validate(), cache.ErrInvalidKey)
}

func TestCodec(t *testing.T) {
	t.Parallel()

	in := []float64{1, -0.5, 0, math.Inf(1), 1e-300}
	b := cache.EncodeFloats(in)
	assert.Len(t, b, 40)
	out, err := cache.DecodeFloats(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	nan, err := cache.DecodeFloats(cache.EncodeFloats([]float64{math.NaN()}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan[0]))

	_, err = cache.DecodeFloats(b[:7])
	assert.ErrorIs(t, err, cache.ErrCorrupt)
}

// exerciseStore runs the Store contract against s.
func exerciseStore(t *testing.T, s cache.Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	vals := []float64{1, 0.75, 0.5, -0.25}
	require.NoError(t, s.Put(ctx, key, vals))
	got, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, vals, got)

	// stored values are isolated from the caller
	got[0] = 42
	again, _, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1.0, again[0])

	require.NoError(t, s.Put(ctx, key, []float64{2}))
	got, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{2}, got)

	require.NoError(t, s.Put(ctx, cache.Key{Checkpoint: "c", Artifact: "empty"}, nil))
	got, ok, err = s.Get(ctx, cache.Key{Checkpoint: "c", Artifact: "empty"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)

	assert.ErrorIs(t, s.Put(ctx, cache.Key{}, vals), cache.ErrInvalidKey)

	require.NoError(t, s.Close())
	_, _, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrClosed)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	m, err := cache.NewMemory(nil)
	require.NoError(t, err)
	exerciseStore(t, m)
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	s, err := cache.NewSQLite(cache.MemoryPath)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.db")

	s, err := cache.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, key, []float64{0.9, 0.1}))
	require.NoError(t, s.Put(ctx, cache.Key{Checkpoint: "a.csv", Artifact: "eigenvalues"}, []float64{1}))
	require.NoError(t, s.Close())

	s, err = cache.NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{0.9, 0.1}, got)

	cps, err := s.Checkpoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "run1/epoch10.csv"}, cps)

	require.NoError(t, s.Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLayeredPromotesBackHits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	front, err := cache.NewMemory(&cache.MemoryConfig{MaxCost: 1 << 20})
	require.NoError(t, err)
	back, err := cache.NewSQLite(cache.MemoryPath)
	require.NoError(t, err)
	l := cache.NewLayered(front, back)
	defer l.Close()

	require.NoError(t, back.Put(ctx, key, []float64{3, 2, 1}))
	_, ok, err := front.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := l.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{3, 2, 1}, got)

	got, ok, err = front.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{3, 2, 1}, got)

	other := cache.Key{Checkpoint: "b", Artifact: "eigenvalues"}
	require.NoError(t, l.Put(ctx, other, []float64{7}))
	got, ok, err = back.Get(ctx, other)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{7}, got)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	none, err := cache.Open("", 0)
	require.NoError(t, err)
	assert.Nil(t, none)

	tests := []struct {
		name string
		path string
		cost int64
		want any
	}{
		{"memory", "", 1 << 20, &cache.Memory{}},
		{"sqlite", filepath.Join(t.TempDir(), "a.db"), 0, &cache.SQLite{}},
		{"layered", filepath.Join(t.TempDir(), "b.db"), 1 << 20, &cache.Layered{}},
	}
	for _, tc := range tests {
		s, err := cache.Open(tc.path, tc.cost)
		require.NoError(t, err, tc.name)
		assert.IsType(t, tc.want, s, tc.name)
		require.NoError(t, s.Close())
	}
}

func TestGetOrCompute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := cache.NewSQLite(cache.MemoryPath)
	require.NoError(t, err)
	defer s.Close()

	calls := 0
	compute := func() ([]float64, error) {
		calls++
		return []float64{0.5, 0.25}, nil
	}

	v, hit, err := cache.GetOrCompute(ctx, s, key, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []float64{0.5, 0.25}, v)

	v, hit, err = cache.GetOrCompute(ctx, s, key, compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []float64{0.5, 0.25}, v)
	assert.Equal(t, 1, calls)

	// a nil store always computes
	_, hit, err = cache.GetOrCompute(ctx, nil, key, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)

	// failures are returned and never stored
	boom := errors.New("boom")
	failing := cache.Key{Checkpoint: "x", Artifact: "eigenvalues"}
	_, _, err = cache.GetOrCompute(ctx, s, failing, func() ([]float64, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok, err := s.Get(ctx, failing)
	require.NoError(t, err)
	assert.False(t, ok)
}
