// SPDX-License-Identifier: MIT

package entropy

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateSpectrum is returned (with a NaN value) when fewer than two
	// eigenvalues survive filtering or their sum is zero.
	ErrDegenerateSpectrum = errors.New("entropy: degenerate spectrum")

	// ErrNumericalInstability is returned when eigenvalues fall below −1 by
	// more than the instability tolerance, or are not finite.
	ErrNumericalInstability = errors.New("entropy: numerical instability")

	// ErrEmptyInput is returned for empty label or point sets.
	ErrEmptyInput = errors.New("entropy: empty input")
)

func entropyErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
