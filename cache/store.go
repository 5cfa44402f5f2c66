// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
)

// Store is a keyed float64-vector cache.
//
// Get reports a miss as (nil, false, nil); errors are reserved for failing
// or closed stores and invalid keys.
type Store interface {
	Get(ctx context.Context, k Key) ([]float64, bool, error)
	Put(ctx context.Context, k Key, v []float64) error
	Close() error
}

// Layered reads from Front first and falls back to Back, promoting hits.
// Writes go to Back and then Front.
type Layered struct {
	Front Store
	Back  Store
}

// NewLayered returns a Layered store over front and back.
func NewLayered(front, back Store) *Layered {
	return &Layered{Front: front, Back: back}
}

// Get implements Store.
func (l *Layered) Get(ctx context.Context, k Key) ([]float64, bool, error) {
	v, ok, err := l.Front.Get(ctx, k)
	if err != nil || ok {
		return v, ok, err
	}
	v, ok, err = l.Back.Get(ctx, k)
	if err != nil || !ok {
		return v, ok, err
	}
	if err := l.Front.Put(ctx, k, v); err != nil {
		return nil, false, cacheErrorf("Layered.Get", err)
	}
	return v, true, nil
}

// Put implements Store.
func (l *Layered) Put(ctx context.Context, k Key, v []float64) error {
	if err := l.Back.Put(ctx, k, v); err != nil {
		return err
	}
	return l.Front.Put(ctx, k, v)
}

// Close closes both layers.
func (l *Layered) Close() error {
	return errors.Join(l.Front.Close(), l.Back.Close())
}

// Open builds the store described by path and memoryCost:
//
//   - path == "" and memoryCost == 0: nil (caching disabled)
//   - path == "":  Memory
//   - memoryCost == 0: SQLite
//   - otherwise:   Layered(Memory, SQLite)
func Open(path string, memoryCost int64) (Store, error) {
	switch {
	case path == "" && memoryCost == 0:
		return nil, nil
	case path == "":
		m, err := NewMemory(&MemoryConfig{MaxCost: memoryCost})
		if err != nil {
			return nil, err
		}
		return m, nil
	case memoryCost == 0:
		s, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	back, err := NewSQLite(path)
	if err != nil {
		return nil, err
	}
	front, err := NewMemory(&MemoryConfig{MaxCost: memoryCost})
	if err != nil {
		back.Close()
		return nil, err
	}
	return NewLayered(front, back), nil
}

// GetOrCompute returns the cached value for k, or runs compute and stores
// its result. A nil store always computes. The boolean reports a hit.
//
// Errors: store errors and the error of compute, which is never cached.
func GetOrCompute(ctx context.Context, s Store, k Key, compute func() ([]float64, error)) ([]float64, bool, error) {
	if s != nil {
		v, ok, err := s.Get(ctx, k)
		if err != nil {
			return nil, false, cacheErrorf("GetOrCompute", err)
		}
		if ok {
			return v, true, nil
		}
	}
	v, err := compute()
	if err != nil {
		return nil, false, err
	}
	if s != nil {
		if err := s.Put(ctx, k, v); err != nil {
			return nil, false, cacheErrorf("GetOrCompute", err)
		}
	}
	return v, false, nil
}
