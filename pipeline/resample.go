// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/diffentropy/entropy"
	"github.com/katalvlaran/diffentropy/kernel"
)

// Resample splits a seeded permutation of ps into disjoint batches of
// ⌊N·fraction⌋ points and reports, per SweepThresholds entry, the mean and
// standard deviation of H(Z) over the batches (t = 1). Batches whose
// entropy is undefined are left out of that threshold's statistics.
//
// Errors: kernel.ErrConfiguration when a batch is too small for the
// kernel; ctx.Err() between batches; graph or spectrum errors.
func (a *Analyzer) Resample(ctx context.Context, ps *kernel.PointSet) ([]ResampleEntry, error) {
	n := ps.Len()
	size := int(float64(n) * a.cfg.Resample.Fraction)
	if size < 2 || size <= a.cfg.K {
		return nil, pipelineErrorf("Resample",
			fmt.Errorf("%w: batch of %d points with k=%d", kernel.ErrConfiguration, size, a.cfg.K))
	}
	batches := n / size
	rng := rand.New(rand.NewSource(a.cfg.RandomSeed))
	perm := rng.Perm(n)

	samples := make([][]float64, len(SweepThresholds))
	for b := 0; b < batches; b++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := append([]int(nil), perm[b*size:(b+1)*size]...)
		sort.Ints(idx)
		values, err := a.computeSpectrum(ps.Subset(idx))
		if err != nil {
			return nil, pipelineErrorf("Resample", err)
		}
		for i, tau := range SweepThresholds {
			h, err := entropy.VonNeumann(values, a.settings.sweepOptions(tau)...)
			if err != nil {
				if errors.Is(err, entropy.ErrDegenerateSpectrum) {
					continue
				}
				return nil, pipelineErrorf("Resample", err)
			}
			samples[i] = append(samples[i], h)
		}
	}

	out := make([]ResampleEntry, len(SweepThresholds))
	for i, tau := range SweepThresholds {
		out[i] = ResampleEntry{Threshold: tau, Mean: math.NaN(), Std: math.NaN(), Batches: len(samples[i])}
		if len(samples[i]) > 0 {
			out[i].Mean, out[i].Std = stat.PopMeanStdDev(samples[i], nil)
		}
	}
	a.log.Debug("resampled entropy", "points", n, "batch", size, "batches", batches)

	return out, nil
}
