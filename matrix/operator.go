// SPDX-License-Identifier: MIT

package matrix

import "gonum.org/v1/gonum/mat"

// DenseOperator adapts a square gonum matrix to LinearOperator.
type DenseOperator struct {
	m mat.Matrix
	n int
}

// NewDenseOperator wraps m.
//
// Errors: ErrNilMatrix, ErrNonSquare.
func NewDenseOperator(m mat.Matrix) (*DenseOperator, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("NewDenseOperator", err)
	}
	n, _ := m.Dims()

	return &DenseOperator{m: m, n: n}, nil
}

// Dim implements LinearOperator.
func (d *DenseOperator) Dim() int { return d.n }

// MulVecTo implements LinearOperator.
func (d *DenseOperator) MulVecTo(dst, x []float64) {
	out := mat.NewVecDense(d.n, dst)
	out.MulVec(d.m, mat.NewVecDense(d.n, x))
}

// OperatorFunc adapts a mat-vec closure of dimension n to LinearOperator.
type OperatorFunc struct {
	N   int
	Mul func(dst, x []float64)
}

// Dim implements LinearOperator.
func (f OperatorFunc) Dim() int { return f.N }

// MulVecTo implements LinearOperator.
func (f OperatorFunc) MulVecTo(dst, x []float64) { f.Mul(dst, x) }
