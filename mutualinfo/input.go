// SPDX-License-Identifier: MIT
// Package: mutualinfo
//
// input.go — Shannon estimators and the estimators with respect to raw
// inputs.

package mutualinfo

import (
	"github.com/katalvlaran/diffentropy/cluster"
	"github.com/katalvlaran/diffentropy/entropy"
	"github.com/katalvlaran/diffentropy/kernel"
)

// InputClusters are k-means labels of the raw inputs, returned by the input
// estimators and accepted back to skip re-clustering.
type InputClusters struct {
	Labels []int
	K      int
	Seed   int64
}

// ClusterInputs returns reuse when it is non-nil, and otherwise clusters the
// rows of inputs into min(WithInputClusters, N) groups with the Estimator
// seed.
//
// Errors: ErrNoInputs, or the wrapped clustering error.
func (e *Estimator) ClusterInputs(inputs *kernel.PointSet, reuse *InputClusters) (*InputClusters, error) {
	if reuse != nil {
		return reuse, nil
	}
	if inputs == nil || inputs.Len() == 0 {
		return nil, miErrorf("ClusterInputs", ErrNoInputs)
	}
	cfg := cluster.DefaultConfig(min(e.inputClusters, inputs.Len()))
	cfg.Seed = e.seed
	m, err := cluster.KMeans(inputs.Matrix(), cfg)
	if err != nil {
		return nil, miErrorf("ClusterInputs", err)
	}
	e.log.Debug("clustered inputs", "points", inputs.Len(), "clusters", m.K, "objective", m.Objective)

	return &InputClusters{Labels: m.Labels, K: m.K, Seed: e.seed}, nil
}

func (e *Estimator) inputPartition(ps, inputs *kernel.PointSet, reuse *InputClusters) (*ClassPartition, *InputClusters, error) {
	ic, err := e.ClusterInputs(inputs, reuse)
	if err != nil {
		return nil, nil, err
	}
	if ps == nil || len(ic.Labels) != ps.Len() {
		return nil, nil, ErrLabelMismatch
	}
	part, err := NewPartition(ic.Labels)
	if err != nil {
		return nil, nil, err
	}
	return part, ic, nil
}

// WrtInput estimates I(Z;X) with PerClassRandomSample, Y being the input
// clusters. inputs may be nil when clusters is given.
//
// Errors: ErrNoInputs, ErrLabelMismatch, and the errors of
// PerClassRandomSample.
func (e *Estimator) WrtInput(ps, inputs *kernel.PointSet, clusters *InputClusters) (*Result, *InputClusters, error) {
	part, ic, err := e.inputPartition(ps, inputs, clusters)
	if err != nil {
		return nil, nil, miErrorf("WrtInput", err)
	}
	res, err := e.PerClassRandomSample(ps, part, nil)
	if err != nil {
		return nil, nil, miErrorf("WrtInput", err)
	}
	return res, ic, nil
}

// ShannonWrtInput is WrtInput with ShannonPerClass.
func (e *Estimator) ShannonWrtInput(ps, inputs *kernel.PointSet, clusters *InputClusters) (*Result, *InputClusters, error) {
	part, ic, err := e.inputPartition(ps, inputs, clusters)
	if err != nil {
		return nil, nil, miErrorf("ShannonWrtInput", err)
	}
	res, err := e.ShannonPerClass(ps, part)
	if err != nil {
		return nil, nil, miErrorf("ShannonWrtInput", err)
	}
	return res, ic, nil
}

// ShannonPerClass returns the plug-in I(C;Y) where C are the ShannonPoints
// clusters of the embeddings (entropy options and Estimator seed apply).
//
// Errors: ErrEmptyPartition, ErrLabelMismatch, clustering errors.
func (e *Estimator) ShannonPerClass(ps *kernel.PointSet, part *ClassPartition) (*Result, error) {
	if err := checkPartition(ps, part); err != nil {
		return nil, miErrorf("ShannonPerClass", err)
	}
	opts := append([]entropy.Option{entropy.WithSeed(e.seed)}, e.entropyOpts...)
	hz, labels, err := entropy.ShannonPoints(ps.Matrix(), opts...)
	if err != nil {
		return nil, miErrorf("ShannonPerClass", err)
	}

	res := newResult()
	res.HZ = hz
	weights := part.Weights()
	for c, key := range part.Keys {
		sub := make([]int, len(part.Indices[c]))
		for i, idx := range part.Indices[c] {
			sub[i] = labels[idx]
		}
		h, err := entropy.Shannon(sub)
		if err != nil {
			return nil, miErrorf("ShannonPerClass", err)
		}
		res.Conditional[key] = h
		res.Weights[key] = weights[c]
		res.HZGivenY += weights[c] * h
	}

	return e.finish("shannon", res), nil
}
