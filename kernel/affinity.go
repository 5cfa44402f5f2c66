// SPDX-License-Identifier: MIT
// Package: kernel
//
// affinity.go — the N×N non-negative symmetric weight matrix W, stored
// either sparse (kNN kernels) or dense (Gaussian kernels). An Affinity is
// never mutated after construction.

package kernel

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/matrix"
)

// Affinity is a non-negative N×N weight matrix.
type Affinity struct {
	n      int
	sparse *matrix.CSR
	dense  *mat.Dense
}

// NewSparseAffinity wraps a CSR weight matrix after validation.
//
// Errors: ErrConfiguration (nil or non-square), ErrNotFinite, ErrNegativeWeight.
func NewSparseAffinity(w *matrix.CSR) (*Affinity, error) {
	if err := matrix.ValidateSquare(w); err != nil {
		return nil, configErrorf("NewSparseAffinity", "%v", err)
	}
	n, _ := w.Dims()
	for i := 0; i < n; i++ {
		_, vals := w.Row(i)
		if err := checkWeights(vals); err != nil {
			return nil, kernelErrorf("NewSparseAffinity", err)
		}
	}

	return &Affinity{n: n, sparse: w}, nil
}

// NewDenseAffinity wraps a dense weight matrix after validation.
//
// Errors: ErrConfiguration (nil or non-square), ErrNotFinite, ErrNegativeWeight.
func NewDenseAffinity(w *mat.Dense) (*Affinity, error) {
	if w == nil {
		return nil, configErrorf("NewDenseAffinity", "nil matrix")
	}
	if err := matrix.ValidateSquare(w); err != nil {
		return nil, configErrorf("NewDenseAffinity", "%v", err)
	}
	n, _ := w.Dims()
	for i := 0; i < n; i++ {
		if err := checkWeights(w.RawRowView(i)); err != nil {
			return nil, kernelErrorf("NewDenseAffinity", err)
		}
	}

	return &Affinity{n: n, dense: w}, nil
}

func checkWeights(vals []float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNotFinite
		}
		if v < 0 {
			return ErrNegativeWeight
		}
	}

	return nil
}

// N returns the number of vertices.
func (a *Affinity) N() int { return a.n }

// Dim implements matrix.LinearOperator.
func (a *Affinity) Dim() int { return a.n }

// IsSparse reports whether W is stored in CSR form.
func (a *Affinity) IsSparse() bool { return a.sparse != nil }

// Sparse returns the CSR backing, or nil for dense affinities.
func (a *Affinity) Sparse() *matrix.CSR { return a.sparse }

// Matrix returns the backing matrix as a gonum mat.Matrix.
func (a *Affinity) Matrix() mat.Matrix {
	if a.sparse != nil {
		return a.sparse
	}
	return a.dense
}

// Dense returns W as a dense matrix; for dense affinities this is the
// backing store itself and must not be modified.
func (a *Affinity) Dense() *mat.Dense {
	if a.sparse != nil {
		return a.sparse.ToDense()
	}
	return a.dense
}

// At returns W[i,j].
func (a *Affinity) At(i, j int) float64 { return a.Matrix().At(i, j) }

// RowSums returns the degree vector d_i = Σ_j W[i,j].
func (a *Affinity) RowSums() []float64 {
	if a.sparse != nil {
		return a.sparse.RowSums()
	}
	out := make([]float64, a.n)
	for i := range out {
		for _, v := range a.dense.RawRowView(i) {
			out[i] += v
		}
	}

	return out
}

// MulVecTo implements matrix.LinearOperator.
func (a *Affinity) MulVecTo(dst, x []float64) {
	if a.sparse != nil {
		a.sparse.MulVecTo(dst, x)
		return
	}
	mat.NewVecDense(a.n, dst).MulVec(a.dense, mat.NewVecDense(a.n, x))
}

// IsSymmetric reports whether |W[i,j] − W[j,i]| ≤ tol everywhere.
func (a *Affinity) IsSymmetric(tol float64) bool {
	return matrix.ValidateSymmetric(a.Matrix(), tol) == nil
}

// Induced returns W[idx, idx] with the storage kind preserved.
//
// Errors: ErrConfiguration wrapping matrix.ErrOutOfRange or duplicate indices.
func (a *Affinity) Induced(idx []int) (*Affinity, error) {
	if len(idx) == 0 {
		return nil, configErrorf("Induced", "empty index set")
	}
	if a.sparse != nil {
		sub, err := a.sparse.Induced(idx)
		if err != nil {
			return nil, configErrorf("Induced", "%v", err)
		}
		return &Affinity{n: len(idx), sparse: sub}, nil
	}
	if err := matrix.ValidateIndexSet(idx, a.n); err != nil {
		return nil, configErrorf("Induced", "%v", err)
	}
	sub := mat.NewDense(len(idx), len(idx), nil)
	for r, i := range idx {
		row := a.dense.RawRowView(i)
		dst := sub.RawRowView(r)
		for c, j := range idx {
			dst[c] = row[j]
		}
	}

	return &Affinity{n: len(idx), dense: sub}, nil
}
