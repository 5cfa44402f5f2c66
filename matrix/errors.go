// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Algorithms return these sentinels (optionally wrapped with an
// operation tag) and tests check them via errors.Is. No algorithm panics on
// user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is invalid (rows<0, cols<0,
	// or CSR arrays whose lengths disagree with the declared shape).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands
	// (vector length vs. matrix columns, induced index sets, etc.).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated
	// symmetry within the configured tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix or operator was passed.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrUnsortedIndices indicates that CSR column indices within a row are
	// not strictly increasing.
	ErrUnsortedIndices = errors.New("matrix: column indices not strictly increasing")

	// ErrNoConvergence is returned by iterative solvers that exhausted their
	// iteration budget before reaching the requested tolerance.
	ErrNoConvergence = errors.New("matrix: iterative solver did not converge")

	// ErrInvalidArgument covers solver parameters outside their domain
	// (k<1, k>n, non-positive tolerances, ...).
	ErrInvalidArgument = errors.New("matrix: invalid argument")
)

// matrixErrorf wraps err with an operation tag, keeping errors.Is matching.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
