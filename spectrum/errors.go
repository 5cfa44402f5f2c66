// SPDX-License-Identifier: MIT

package spectrum

import (
	"errors"
	"fmt"
)

var (
	// ErrNilOperator is returned when no operator is supplied.
	ErrNilOperator = errors.New("spectrum: nil operator")

	// ErrEigenFailed reports a dense eigendecomposition failure.
	ErrEigenFailed = errors.New("spectrum: eigendecomposition failed")

	// ErrNoConvergence reports that the partial solver stopped before all
	// requested eigenvalues converged.
	ErrNoConvergence = errors.New("spectrum: partial eigensolver did not converge")

	// ErrNotSymmetric is returned by the partial solver for operators without
	// a symmetric conjugate.
	ErrNotSymmetric = errors.New("spectrum: operator has no symmetric conjugate")

	// ErrUnknownMethod is returned for unrecognized method names.
	ErrUnknownMethod = errors.New("spectrum: unknown method")
)

func spectrumErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
