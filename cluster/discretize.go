// SPDX-License-Identifier: MIT

package cluster

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Discretize labels rows of x by the tuple of per-column uniform bins
// (bins per column between the column min and max). Constant columns fall
// into bin 0. Labels are numbered in order of first appearance; the second
// return value is the number of distinct labels.
//
// Errors: ErrEmptyInput, ErrInvalidK (bins < 1).
// Complexity: O(N·D).
func Discretize(x mat.Matrix, bins int) ([]int, int, error) {
	n, dim := x.Dims()
	if n == 0 || dim == 0 {
		return nil, 0, clusterErrorf("Discretize", ErrEmptyInput)
	}
	if bins < 1 {
		return nil, 0, clusterErrorf("Discretize", ErrInvalidK)
	}

	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for j := 0; j < dim; j++ {
		lo[j], hi[j] = math.Inf(1), math.Inf(-1)
		for i := 0; i < n; i++ {
			v := x.At(i, j)
			lo[j] = math.Min(lo[j], v)
			hi[j] = math.Max(hi[j], v)
		}
	}

	labels := make([]int, n)
	seen := make(map[string]int)
	var key strings.Builder
	for i := 0; i < n; i++ {
		key.Reset()
		for j := 0; j < dim; j++ {
			b := 0
			if width := hi[j] - lo[j]; width > 0 {
				b = min(int(float64(bins)*(x.At(i, j)-lo[j])/width), bins-1)
			}
			key.WriteString(strconv.Itoa(b))
			key.WriteByte(',')
		}
		id, ok := seen[key.String()]
		if !ok {
			id = len(seen)
			seen[key.String()] = id
		}
		labels[i] = id
	}

	return labels, len(seen), nil
}
