// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - CSR: compressed sparse row storage for kNN affinities, diffusion
//     operators and graph Laplacians, held in a james-bowman/sparse CSR.
//   - Satisfies mat.Matrix (Dims/At/T) so gonum dense routines accept it,
//     and LinearOperator (Dim/MulVecTo) so the iterative solvers accept it.
//   - Adds what the graph code needs on top of the storage: sorted row
//     views, principal submatrices, row/column scaling, diagonal edits and
//     symmetry checks.
//
// Invariants (checked by NewCSR, preserved by every method):
//   - len(indptr) == rows+1, indptr[0] == 0, indptr non-decreasing.
//   - Column indices of each row are strictly increasing and in [0, cols).
//   - A CSR is never mutated after construction; transforms return copies.

package matrix

import (
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// CSR is an immutable compressed-sparse-row matrix. indptr, indices and
// data are the arrays of sp, kept for direct row access.
type CSR struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
	sp         *sparse.CSR
}

// newCSR wraps arrays that already satisfy the CSR invariants.
func newCSR(rows, cols int, indptr, indices []int, data []float64) *CSR {
	return &CSR{
		rows:    rows,
		cols:    cols,
		indptr:  indptr,
		indices: indices,
		data:    data,
		sp:      sparse.NewCSR(rows, cols, indptr, indices, data),
	}
}

var (
	_ mat.Matrix     = (*CSR)(nil)
	_ LinearOperator = (*CSR)(nil)
)

// NewCSR validates and wraps raw CSR arrays. The slices are owned by the
// returned matrix afterwards.
//
// Errors:
//   - ErrBadShape: negative dims or inconsistent array lengths.
//   - ErrOutOfRange: a column index outside [0, cols).
//   - ErrUnsortedIndices: columns within a row not strictly increasing.
//
// Complexity: O(rows + nnz).
func NewCSR(rows, cols int, indptr, indices []int, data []float64) (*CSR, error) {
	if rows < 0 || cols < 0 || len(indptr) != rows+1 || len(indices) != len(data) {
		return nil, matrixErrorf("NewCSR", ErrBadShape)
	}
	if indptr[0] != 0 || indptr[rows] != len(indices) {
		return nil, matrixErrorf("NewCSR", ErrBadShape)
	}
	for i := 0; i < rows; i++ {
		lo, hi := indptr[i], indptr[i+1]
		if hi < lo {
			return nil, matrixErrorf("NewCSR", ErrBadShape)
		}
		for p := lo; p < hi; p++ {
			j := indices[p]
			if j < 0 || j >= cols {
				return nil, matrixErrorf("NewCSR", ErrOutOfRange)
			}
			if p > lo && indices[p-1] >= j {
				return nil, matrixErrorf("NewCSR", ErrUnsortedIndices)
			}
		}
	}

	return newCSR(rows, cols, indptr, indices, data), nil
}

// Identity returns the n×n sparse identity.
func Identity(n int) *CSR {
	indptr := make([]int, n+1)
	indices := make([]int, n)
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		indptr[i+1] = i + 1
		indices[i] = i
		data[i] = 1
	}

	return newCSR(n, n, indptr, indices, data)
}

// Dims returns the matrix shape.
func (m *CSR) Dims() (int, int) { return m.rows, m.cols }

// Dim returns the operator dimension (rows). Used by LinearOperator callers
// on square matrices.
func (m *CSR) Dim() int { return m.rows }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return m.sp.NNZ() }

// Sparse returns the underlying james-bowman/sparse matrix. It shares
// storage with m and must not be modified.
func (m *CSR) Sparse() *sparse.CSR { return m.sp }

// At returns element (i, j); missing entries are zero.
// Panics with mat.ErrIndexOutOfRange on bad indices, as gonum matrices do.
// Complexity: O(deg(i)).
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(mat.ErrIndexOutOfRange)
	}

	return m.sp.At(i, j)
}

// T returns the implicit transpose.
func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Row returns views of the column indices and values stored in row i.
// The returned slices must not be modified.
func (m *CSR) Row(i int) ([]int, []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return m.indices[lo:hi], m.data[lo:hi]
}

// Diagonal returns the main diagonal as a dense slice.
func (m *CSR) Diagonal() []float64 {
	n := min(m.rows, m.cols)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = m.At(i, i)
	}

	return d
}

// RowSums returns Σ_j A[i,j] for every row.
// Complexity: O(nnz).
func (m *CSR) RowSums() []float64 {
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		var s float64
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			s += m.data[p]
		}
		out[i] = s
	}

	return out
}

// MulVecTo computes dst = A·x. dst and x must not alias.
// Panics on length mismatch (hot path; callers validate once up-front).
// Complexity: O(nnz).
func (m *CSR) MulVecTo(dst, x []float64) {
	if len(x) != m.cols || len(dst) != m.rows {
		panic(ErrDimensionMismatch)
	}
	if m.rows == 0 || m.cols == 0 {
		return
	}
	// sparse accumulates into dst
	for i := range dst {
		dst[i] = 0
	}
	m.sp.MulVecTo(dst, false, x)
}

// ScaleRowsCols returns diag(r)·A·diag(c). A nil r or c means ones.
//
// Errors: ErrDimensionMismatch when a scale vector has the wrong length.
// Complexity: O(nnz).
func (m *CSR) ScaleRowsCols(r, c []float64) (*CSR, error) {
	if r != nil && len(r) != m.rows {
		return nil, matrixErrorf("ScaleRowsCols", ErrDimensionMismatch)
	}
	if c != nil && len(c) != m.cols {
		return nil, matrixErrorf("ScaleRowsCols", ErrDimensionMismatch)
	}
	out := m.clone()
	for i := 0; i < out.rows; i++ {
		for p := out.indptr[i]; p < out.indptr[i+1]; p++ {
			if r != nil {
				out.data[p] *= r[i]
			}
			if c != nil {
				out.data[p] *= c[out.indices[p]]
			}
		}
	}

	return out, nil
}

// WithDiagonal returns a copy where the listed diagonal entries are set to v
// (inserted when absent).
func (m *CSR) WithDiagonal(rows []int, v float64) (*CSR, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("WithDiagonal", err)
	}
	coo := NewCOO(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		cols, vals := m.Row(i)
		for k, j := range cols {
			coo.add(i, j, vals[k])
		}
	}
	for _, i := range rows {
		if i < 0 || i >= m.rows {
			return nil, matrixErrorf("WithDiagonal", ErrOutOfRange)
		}
		coo.add(i, i, v)
	}

	return coo.ToCSR(DupLast), nil
}

// Induced returns the principal submatrix A[idx, idx], preserving the order
// of idx.
//
// Errors: ErrNonSquare, ErrOutOfRange, ErrDimensionMismatch (duplicates).
// Complexity: O(n + Σ deg(idx)·log).
func (m *CSR) Induced(idx []int) (*CSR, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("Induced", err)
	}
	if err := ValidateIndexSet(idx, m.rows); err != nil {
		return nil, matrixErrorf("Induced", err)
	}
	pos := make([]int, m.rows)
	for i := range pos {
		pos[i] = -1
	}
	for k, i := range idx {
		pos[i] = k
	}

	coo := NewCOO(len(idx), len(idx))
	for k, i := range idx {
		cols, vals := m.Row(i)
		for q, j := range cols {
			if pj := pos[j]; pj >= 0 {
				coo.add(k, pj, vals[q])
			}
		}
	}

	return coo.ToCSR(DupSum), nil
}

// Transpose materializes Aᵀ in CSR form.
// Complexity: O(rows + cols + nnz).
func (m *CSR) Transpose() *CSR {
	indptr := make([]int, m.cols+1)
	for _, j := range m.indices {
		indptr[j+1]++
	}
	for j := 0; j < m.cols; j++ {
		indptr[j+1] += indptr[j]
	}
	next := make([]int, m.cols)
	copy(next, indptr[:m.cols])
	indices := make([]int, len(m.indices))
	data := make([]float64, len(m.data))
	for i := 0; i < m.rows; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			j := m.indices[p]
			q := next[j]
			indices[q] = i
			data[q] = m.data[p]
			next[j]++
		}
	}

	return newCSR(m.cols, m.rows, indptr, indices, data)
}

// IsSymmetric reports whether |A[i,j] − A[j,i]| ≤ tol for all stored entries.
// Complexity: O(nnz·log deg).
func (m *CSR) IsSymmetric(tol float64) bool {
	if m.rows != m.cols {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			if math.Abs(m.data[p]-m.At(m.indices[p], i)) > tol {
				return false
			}
		}
	}

	return true
}

// ToDense materializes the matrix as a gonum Dense.
// Complexity: O(rows·cols) memory.
func (m *CSR) ToDense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}
	}

	return m.sp.ToDense()
}

func (m *CSR) clone() *CSR {
	return newCSR(m.rows, m.cols,
		append([]int(nil), m.indptr...),
		append([]int(nil), m.indices...),
		append([]float64(nil), m.data...),
	)
}
