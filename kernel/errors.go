// SPDX-License-Identifier: MIT

package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports parameters that cannot produce a graph for the
	// given data: k ≥ N, D == 0, empty or ragged point sets, σ ≤ 0.
	ErrConfiguration = errors.New("kernel: invalid configuration")

	// ErrNegativeWeight is returned when an affinity holds a negative entry.
	ErrNegativeWeight = errors.New("kernel: negative affinity weight")

	// ErrNotFinite is returned when points or weights hold NaN or ±Inf.
	ErrNotFinite = errors.New("kernel: NaN or Inf value")
)

// kernelErrorf wraps err with an operation tag.
func kernelErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// configErrorf wraps ErrConfiguration with a formatted reason.
func configErrorf(tag, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", tag, ErrConfiguration, fmt.Sprintf(format, args...))
}
