// SPDX-License-Identifier: MIT
// Package: kernel
//
// neighbors.go — exact (brute-force) Euclidean neighbor search.
//
// Each query scans all N points and keeps the k best candidates in a small
// sorted buffer (insertion from the tail). Ties are broken by the lower
// index, so results are deterministic.

package kernel

import (
	"github.com/viterin/vek"
	"gonum.org/v1/gonum/mat"
)

// Neighbors holds, for one point, its k nearest other points sorted by
// ascending distance.
type Neighbors struct {
	Index    []int
	Distance []float64
}

// NearestNeighbors returns the k nearest neighbors (self excluded) of every
// point.
//
// Errors: ErrConfiguration when k < 0 or k ≥ N.
// Complexity: O(N²·(D + k)) time, O(N·k) memory.
func NearestNeighbors(ps *PointSet, k int) ([]Neighbors, error) {
	n := ps.Len()
	if k < 0 || k >= n {
		return nil, configErrorf("NearestNeighbors", "k=%d must be in [0, N=%d)", k, n)
	}
	out := make([]Neighbors, n)
	for i := 0; i < n; i++ {
		out[i] = queryRow(ps, i, k)
	}

	return out, nil
}

// queryRow keeps the k closest points to row i in an ascending buffer.
func queryRow(ps *PointSet, i, k int) Neighbors {
	nb := Neighbors{Index: make([]int, 0, k), Distance: make([]float64, 0, k)}
	if k == 0 {
		return nb
	}
	xi := ps.Row(i)
	for j := 0; j < ps.Len(); j++ {
		if j == i {
			continue
		}
		d := vek.Distance(xi, ps.Row(j))
		if len(nb.Index) == k && d >= nb.Distance[k-1] {
			continue
		}
		if len(nb.Index) < k {
			nb.Index = append(nb.Index, j)
			nb.Distance = append(nb.Distance, d)
		} else {
			nb.Index[k-1] = j
			nb.Distance[k-1] = d
		}
		// bubble the new candidate towards the front
		for p := len(nb.Index) - 1; p > 0 && nb.Distance[p] < nb.Distance[p-1]; p-- {
			nb.Index[p], nb.Index[p-1] = nb.Index[p-1], nb.Index[p]
			nb.Distance[p], nb.Distance[p-1] = nb.Distance[p-1], nb.Distance[p]
		}
	}

	return nb
}

// PairwiseDistances returns the symmetric N×N Euclidean distance matrix.
// Complexity: O(N²·D) time, O(N²) memory.
func PairwiseDistances(ps *PointSet) *mat.Dense {
	n := ps.Len()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		xi := ps.Row(i)
		for j := i + 1; j < n; j++ {
			v := vek.Distance(xi, ps.Row(j))
			d.Set(i, j, v)
			d.Set(j, i, v)
		}
	}

	return d
}
