// SPDX-License-Identifier: MIT

package extrema

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/matrix"
)

// DistanceStats summarizes Euclidean distances among all pairs of extrema.
type DistanceStats struct {
	Mean  float64
	Std   float64 // population standard deviation
	Pairs int
}

// PairwiseDistances returns mean and standard deviation of the distances
// between every pair of rows idx of ps.
//
// Errors: ErrConfiguration for fewer than two indices, matrix.ErrOutOfRange
// for invalid ones.
// Complexity: O(|idx|²·D).
func PairwiseDistances(ps *kernel.PointSet, idx []int) (DistanceStats, error) {
	if ps == nil || len(idx) < 2 {
		return DistanceStats{}, configErrorf("PairwiseDistances", "need at least two points")
	}
	if err := matrix.ValidateIndexSet(idx, ps.Len()); err != nil {
		return DistanceStats{}, extremaErrorf("PairwiseDistances", err)
	}
	d := make([]float64, 0, len(idx)*(len(idx)-1)/2)
	for a := 0; a < len(idx); a++ {
		for b := a + 1; b < len(idx); b++ {
			d = append(d, floats.Distance(ps.Row(idx[a]), ps.Row(idx[b]), 2))
		}
	}
	mean, std := stat.PopMeanStdDev(d, nil)

	return DistanceStats{Mean: mean, Std: std, Pairs: len(d)}, nil
}
