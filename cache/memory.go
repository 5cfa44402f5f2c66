// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"sync"

	"github.com/dgraph-io/ristretto"
)

const (
	defaultNumCounters = 1e6     // admission-policy counters
	defaultMaxCost     = 1 << 28 // 256 MiB of float64 payload
	defaultBufferItems = 64
	// entryOverhead is the cost charged per entry on top of its payload.
	entryOverhead = 64
)

// MemoryConfig configures a Memory store. Zero fields take defaults.
type MemoryConfig struct {
	NumCounters int64
	MaxCost     int64 // bytes
	BufferItems int64
}

// Memory is a bounded in-process Store. Entries may be evicted at any time.
type Memory struct {
	cache  *ristretto.Cache
	mu     sync.RWMutex
	closed bool
}

// NewMemory returns an empty Memory store; cfg may be nil.
func NewMemory(cfg *MemoryConfig) (*Memory, error) {
	c := applyMemoryDefaults(cfg)
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: c.NumCounters,
		MaxCost:     c.MaxCost,
		BufferItems: c.BufferItems,
	})
	if err != nil {
		return nil, cacheErrorf("NewMemory", err)
	}

	return &Memory{cache: rc}, nil
}

func applyMemoryDefaults(cfg *MemoryConfig) MemoryConfig {
	c := MemoryConfig{
		NumCounters: defaultNumCounters,
		MaxCost:     defaultMaxCost,
		BufferItems: defaultBufferItems,
	}
	if cfg == nil {
		return c
	}
	if cfg.NumCounters > 0 {
		c.NumCounters = cfg.NumCounters
	}
	if cfg.MaxCost > 0 {
		c.MaxCost = cfg.MaxCost
	}
	if cfg.BufferItems > 0 {
		c.BufferItems = cfg.BufferItems
	}
	return c
}

// Get returns a copy of the stored vector.
func (m *Memory) Get(_ context.Context, k Key) ([]float64, bool, error) {
	if err := m.check(k); err != nil {
		return nil, false, cacheErrorf("Memory.Get", err)
	}
	v, ok := m.cache.Get(k.ID())
	if !ok {
		return nil, false, nil
	}
	vals, ok := v.([]float64)
	if !ok {
		return nil, false, cacheErrorf("Memory.Get", ErrCorrupt)
	}

	return append([]float64(nil), vals...), true, nil
}

// Put stores a copy of v and waits until it is visible to Get. The
// admission policy may still drop the entry; that is not an error.
func (m *Memory) Put(_ context.Context, k Key, v []float64) error {
	if err := m.check(k); err != nil {
		return cacheErrorf("Memory.Put", err)
	}
	cost := int64(len(v)*floatSize + entryOverhead)
	m.cache.Set(k.ID(), append([]float64(nil), v...), cost)
	m.cache.Wait()

	return nil
}

// Delete removes k.
func (m *Memory) Delete(k Key) {
	m.cache.Del(k.ID())
}

// Close releases the cache. Further calls return ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.cache.Close()
	return nil
}

func (m *Memory) check(k Key) error {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	return k.Validate()
}
