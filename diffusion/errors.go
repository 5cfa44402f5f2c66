// SPDX-License-Identifier: MIT

package diffusion

import (
	"errors"
	"fmt"
)

var (
	// ErrNilAffinity is returned when New receives a nil affinity.
	ErrNilAffinity = errors.New("diffusion: nil affinity")

	// ErrNotStochastic reports rows whose sum deviates from 1 beyond the
	// configured tolerance.
	ErrNotStochastic = errors.New("diffusion: operator is not row-stochastic")

	// ErrNotSymmetric is returned when a symmetric conjugate is requested for
	// an operator built from a non-symmetric affinity.
	ErrNotSymmetric = errors.New("diffusion: affinity is not symmetric")

	// ErrInvalidPower is returned by Power for t < 1.
	ErrInvalidPower = errors.New("diffusion: power must be >= 1")

	// ErrIndex reports an invalid induced index set.
	ErrIndex = errors.New("diffusion: invalid index set")
)

func diffusionErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
