// SPDX-License-Identifier: MIT

package entropy

import (
	"maps"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/diffentropy/cluster"
)

// Shannon returns −Σ p_c log p_c over the occupancy fractions of labels.
//
// Errors: ErrEmptyInput.
// Complexity: O(N).
func Shannon(labels []int) (float64, error) {
	if len(labels) == 0 {
		return 0, entropyErrorf("Shannon", ErrEmptyInput)
	}
	counts := make(map[int]float64)
	for _, l := range labels {
		counts[l]++
	}
	p := make([]float64, 0, len(counts))
	for _, l := range slices.Sorted(maps.Keys(counts)) {
		p = append(p, counts[l]/float64(len(labels)))
	}

	return stat.Entropy(p), nil
}

// ShannonPoints clusters the rows of x (k-means with WithClusters/WithSeed,
// or uniform bins with WithBins) and returns the Shannon entropy of the
// cluster occupancy together with the labels. The cluster count is capped
// at the number of rows.
//
// Errors: ErrEmptyInput, or the wrapped clustering error.
func ShannonPoints(x mat.Matrix, opts ...Option) (float64, []int, error) {
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return 0, nil, entropyErrorf("ShannonPoints", ErrEmptyInput)
	}
	cfg := newConfig(opts...)

	var labels []int
	if cfg.bins > 0 {
		l, _, err := cluster.Discretize(x, cfg.bins)
		if err != nil {
			return 0, nil, entropyErrorf("ShannonPoints", err)
		}
		labels = l
	} else {
		kc := cluster.DefaultConfig(min(cfg.clusters, n))
		kc.Seed = cfg.seed
		m, err := cluster.KMeans(x, kc)
		if err != nil {
			return 0, nil, entropyErrorf("ShannonPoints", err)
		}
		labels = m.Labels
	}
	h, err := Shannon(labels)
	if err != nil {
		return 0, nil, err
	}

	return h, labels, nil
}
