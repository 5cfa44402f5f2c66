// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/matrix"
)

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	var nilCSR *matrix.CSR
	tests := []struct {
		name string
		m    mat.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"typed nil csr", nilCSR, matrix.ErrNilMatrix},
		{"1x1", mat.NewDense(1, 1, nil), nil},
		{"3x3 csr", matrix.Identity(3), nil},
		{"2x3", mat.NewDense(2, 3, nil), matrix.ErrNonSquare},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.Truef(t, errors.Is(err, tc.want), "expected errors.Is(%v, %v)", err, tc.want)
		})
	}
}

// TestValidateSymmetric covers dense and sparse paths and the tolerance.
func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	sym := mat.NewDense(2, 2, []float64{1, 2, 2, 1})
	asym := mat.NewDense(2, 2, []float64{1, 2, 2.1, 1})

	require.NoError(t, matrix.ValidateSymmetric(sym, 0))
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 1e-3), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, 0.2))

	coo := matrix.NewCOO(3, 3)
	require.NoError(t, coo.Add(0, 1, 1))
	sparse := coo.ToCSR(matrix.DupSum)
	require.ErrorIs(t, matrix.ValidateSymmetric(sparse, 1e-12), matrix.ErrAsymmetry)

	require.NoError(t, coo.Add(1, 0, 1))
	require.NoError(t, matrix.ValidateSymmetric(coo.ToCSR(matrix.DupSum), 1e-12))
}

// TestValidateIndexSet rejects out-of-range and duplicate indices.
func TestValidateIndexSet(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateIndexSet([]int{2, 0, 1}, 3))
	require.ErrorIs(t, matrix.ValidateIndexSet([]int{3}, 3), matrix.ErrOutOfRange)
	require.ErrorIs(t, matrix.ValidateIndexSet([]int{1, 1}, 3), matrix.ErrDimensionMismatch)
}

// TestValidateFinite detects NaN in both storage kinds.
func TestValidateFinite(t *testing.T) {
	t.Parallel()

	d := mat.NewDense(2, 2, nil)
	require.NoError(t, matrix.ValidateFinite(d))

	csr, err := matrix.NewCSR(1, 1, []int{0, 1}, []int{0}, []float64{nan()})
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateFinite(csr), matrix.ErrNaNInf)
}
