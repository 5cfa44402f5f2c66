// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - COO: append-only (row, col, value) triplet builder.
//   - ToCSR compacts the triplets, sorting columns per row and resolving
//     duplicates with an explicit DuplicatePolicy.

package matrix

import (
	"math"
	"sort"
)

// DuplicatePolicy decides how repeated (i, j) triplets are merged.
type DuplicatePolicy int

const (
	// DupSum adds repeated values (scipy-style COO semantics).
	DupSum DuplicatePolicy = iota
	// DupMax keeps the largest value.
	DupMax
	// DupMin keeps the smallest value.
	DupMin
	// DupLast keeps the value appended last.
	DupLast
)

// COO collects triplets for a rows×cols matrix.
type COO struct {
	rows, cols int
	r, c       []int
	v          []float64
}

// NewCOO returns an empty builder for a rows×cols matrix.
func NewCOO(rows, cols int) *COO {
	return &COO{rows: rows, cols: cols}
}

// Add appends one triplet.
//
// Errors: ErrOutOfRange on bad indices, ErrNaNInf on non-finite values.
func (b *COO) Add(i, j int, v float64) error {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		return matrixErrorf("COO.Add", ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return matrixErrorf("COO.Add", ErrNaNInf)
	}
	b.add(i, j, v)

	return nil
}

// add is the unchecked variant used by package code with known-good indices.
func (b *COO) add(i, j int, v float64) {
	b.r = append(b.r, i)
	b.c = append(b.c, j)
	b.v = append(b.v, v)
}

// Len returns the number of appended triplets (duplicates included).
func (b *COO) Len() int { return len(b.v) }

// ToCSR compacts the triplets into CSR.
//
// Implementation:
//   - Stage 1: counting sort of triplets by row (stable, keeps append order).
//   - Stage 2: stable sort by column inside each row.
//   - Stage 3: merge runs of equal columns with the duplicate policy.
//
// Complexity: O(nnz·log(maxdeg) + rows).
func (b *COO) ToCSR(policy DuplicatePolicy) *CSR {
	nnz := len(b.v)
	start := make([]int, b.rows+1)
	for _, i := range b.r {
		start[i+1]++
	}
	for i := 0; i < b.rows; i++ {
		start[i+1] += start[i]
	}
	next := make([]int, b.rows)
	copy(next, start[:b.rows])
	order := make([]int, nnz)
	for k, i := range b.r {
		order[next[i]] = k
		next[i]++
	}

	indptr := make([]int, b.rows+1)
	indices := make([]int, 0, nnz)
	data := make([]float64, 0, nnz)
	for i := 0; i < b.rows; i++ {
		row := order[start[i]:start[i+1]]
		sort.SliceStable(row, func(x, y int) bool { return b.c[row[x]] < b.c[row[y]] })
		for q := 0; q < len(row); {
			j := b.c[row[q]]
			v := b.v[row[q]]
			q++
			for q < len(row) && b.c[row[q]] == j {
				v = merge(policy, v, b.v[row[q]])
				q++
			}
			indices = append(indices, j)
			data = append(data, v)
		}
		indptr[i+1] = len(indices)
	}

	return newCSR(b.rows, b.cols, indptr, indices, data)
}

func merge(policy DuplicatePolicy, acc, v float64) float64 {
	switch policy {
	case DupMax:
		return math.Max(acc, v)
	case DupMin:
		return math.Min(acc, v)
	case DupLast:
		return v
	default:
		return acc + v
	}
}
