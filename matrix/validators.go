// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single source of truth for the shape/symmetry/finiteness
//     checks run before spectral work.
//   - Return sentinel errors tagged with the validator name so call sites can
//     wrap uniformly.
//
// Determinism & Performance:
//   - All checks are pure and deterministic.
//   - Symmetry checks scan the upper triangle only (dense) or the stored
//     entries only (CSR fast-path).

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return matrixErrorf(tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if c, ok := m.(*CSR); ok && c == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m mat.Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if r, c := m.Dims(); r != c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil && n > 0 {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] − A[j,i]| ≤ tol for all i<j.
//
// Implementation:
//   - Stage 1: NotNil → Square → finite tolerance.
//   - Stage 2: CSR inputs take the sparse path (stored entries only);
//     everything else scans the dense upper triangle through At.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf (bad tol), ErrAsymmetry.
// Complexity: O(n²) dense, O(nnz·log(deg)) CSR.
func ValidateSymmetric(m mat.Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	if c, ok := m.(*CSR); ok {
		if !c.IsSymmetric(tol) {
			return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
		}
		return nil
	}

	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateFinite rejects matrices holding NaN or ±Inf.
//
// Errors: ErrNilMatrix, ErrNaNInf.
// Complexity: O(nnz) for CSR, O(r·c) otherwise.
func ValidateFinite(m mat.Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFinite", err)
	}
	if c, ok := m.(*CSR); ok {
		for _, v := range c.data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", ErrNaNInf)
			}
		}
		return nil
	}
	r, cols := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateIndexSet checks that every index lies in [0,n) and appears once.
//
// Errors: ErrOutOfRange, ErrDimensionMismatch (duplicate index).
// Complexity: O(len(idx)) time, O(n) space.
func ValidateIndexSet(idx []int, n int) error {
	seen := make([]bool, n)
	for _, i := range idx {
		if i < 0 || i >= n {
			return validatorErrorf("ValidateIndexSet", ErrOutOfRange)
		}
		if seen[i] {
			return validatorErrorf("ValidateIndexSet", ErrDimensionMismatch)
		}
		seen[i] = true
	}

	return nil
}
