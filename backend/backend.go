// SPDX-License-Identifier: MIT

// Package backend performs the once-per-process numeric backend setup:
// the number of OS threads Go may run concurrently and the BLAS
// implementation used by gonum. Numeric packages never change these
// settings themselves.
package backend

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/gonum"
)

// ErrInvalidThreads is returned for a negative thread count.
var ErrInvalidThreads = errors.New("backend: threads must be >= 0")

// Config describes the backend. Threads == 0 keeps runtime.NumCPU().
type Config struct {
	Threads int
}

// Applied reports the settings in effect after Configure.
type Applied struct {
	Threads int
	BLAS    string
}

var (
	once    sync.Once
	applied Applied
	onceErr error
)

// Configure applies cfg the first time it is called; later calls return
// the first outcome unchanged.
//
// Errors: ErrInvalidThreads.
func Configure(cfg Config) (Applied, error) {
	once.Do(func() {
		if cfg.Threads < 0 {
			onceErr = fmt.Errorf("Configure: %w", ErrInvalidThreads)
			return
		}
		threads := cfg.Threads
		if threads == 0 {
			threads = runtime.NumCPU()
		}
		runtime.GOMAXPROCS(threads)
		blas64.Use(gonum.Implementation{})
		applied = Applied{Threads: threads, BLAS: "gonum"}
	})

	return applied, onceErr
}
