// SPDX-License-Identifier: MIT
// Package: mutualinfo
//
// estimator.go — diffusion-entropy estimators of I(Z;Y).

package mutualinfo

import (
	"errors"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/katalvlaran/diffentropy/diffusion"
	"github.com/katalvlaran/diffentropy/entropy"
	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/spectrum"
)

// Estimator bundles the graph, spectrum and entropy settings shared by all
// estimators. It is immutable after New and safe for concurrent use.
type Estimator struct {
	kernelOpts    []kernel.Option
	spectrumOpts  []spectrum.Option
	entropyOpts   []entropy.Option
	budget        int
	seed          int64
	eps           float64
	inputClusters int
	matched       bool
	renormalize   bool
	log           *slog.Logger
}

// New returns an Estimator with deterministic defaults: kNN kernel with
// k = 10, exact spectrum, τ = 0.9, no class budget, seed 0, ε = 1e-3,
// 10 input clusters.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		eps:           DefaultEpsilon,
		inputClusters: DefaultInputClusters,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is one mutual-information estimate.
type Result struct {
	MI       float64
	HZ       float64
	HZGivenY float64
	// Conditional holds H(Z|Y=y) per class key.
	Conditional map[string]float64
	// Weights holds the occupancy fraction per class key.
	Weights map[string]float64
	// Degenerate lists classes whose entropy was undefined and counted as 0.
	Degenerate []string
	// Anomaly is set when MI < −ε.
	Anomaly bool
}

func newResult() *Result {
	return &Result{Conditional: make(map[string]float64), Weights: make(map[string]float64)}
}

// Entropy returns the diffusion entropy H(Z) of ps.
//
// Errors: kernel, diffusion, spectrum and entropy errors, wrapped.
func (e *Estimator) Entropy(ps *kernel.PointSet) (float64, error) {
	h, _, err := e.entropyWithOperator(ps)
	if err != nil {
		return h, miErrorf("Entropy", err)
	}
	return h, nil
}

func (e *Estimator) entropyWithOperator(ps *kernel.PointSet) (float64, *kernelOperator, error) {
	g, err := kernel.Build(ps, e.kernelOpts...)
	if err != nil {
		return 0, nil, err
	}
	op, err := diffusion.New(g.Affinity)
	if err != nil {
		return 0, nil, err
	}
	h, err := e.operatorEntropy(op)

	return h, &kernelOperator{graph: g, op: op}, err
}

// kernelOperator keeps a graph together with its diffusion operator.
type kernelOperator struct {
	graph *kernel.Graph
	op    *diffusion.Operator
}

func (e *Estimator) operatorEntropy(op *diffusion.Operator) (float64, error) {
	s, err := spectrum.Estimate(op, e.spectrumOpts...)
	if err != nil {
		return 0, err
	}
	return entropy.OfSpectrum(s, e.entropyOpts...)
}

// degenerate reports errors that make a class entropy undefined rather than
// the whole estimate invalid.
func degenerate(err error) bool {
	return errors.Is(err, entropy.ErrDegenerateSpectrum) || errors.Is(err, kernel.ErrConfiguration)
}

func checkPartition(ps *kernel.PointSet, part *ClassPartition) error {
	if part == nil || part.Len() == 0 {
		return ErrEmptyPartition
	}
	if ps == nil || part.N != ps.Len() {
		return ErrLabelMismatch
	}
	return nil
}

// PerClassSimple estimates I(Z;Y) from one operator over all points and its
// class-induced sub-operators.
//
// Errors: ErrEmptyPartition, ErrLabelMismatch, and any error computing H(Z).
func (e *Estimator) PerClassSimple(ps *kernel.PointSet, part *ClassPartition) (*Result, error) {
	if err := checkPartition(ps, part); err != nil {
		return nil, miErrorf("PerClassSimple", err)
	}
	hz, ko, err := e.entropyWithOperator(ps)
	if err != nil {
		return nil, miErrorf("PerClassSimple", err)
	}

	res := newResult()
	res.HZ = hz
	classes := part.restrict(ko.graph.Index)
	weights := classes.Weights()
	for c, key := range classes.Keys {
		sub, err := ko.op.Induced(classes.Indices[c], e.renormalize)
		if err != nil {
			return nil, miErrorf("PerClassSimple", err)
		}
		h, err := e.operatorEntropy(sub)
		if err != nil {
			if !degenerate(err) {
				return nil, miErrorf("PerClassSimple", err)
			}
			e.log.Debug("degenerate class entropy", "estimator", "simple", "class", key,
				"size", len(classes.Indices[c]), "err", err)
			res.Degenerate = append(res.Degenerate, key)
			h = 0
		}
		res.Conditional[key] = h
		res.Weights[key] = weights[c]
		res.HZGivenY += weights[c] * h
	}

	return e.finish("simple", res), nil
}

// PerClassRandomSample estimates I(Z;Y) with an independent graph per class.
// Class entropies found in known (keyed like ClassPartition.Keys) are reused
// instead of recomputed; the returned Conditional map can be passed back as
// known.
//
// Implementation:
//   - Stage 1: H(Z) of the whole set (skipped with WithMatchedBaseline).
//   - Stage 2: per class, in key order, draw at most WithClassBudget points
//     from one seeded generator, build a fresh graph on them and take its
//     entropy as H(Z|Y=y); classes too small for the kernel count as 0.
//   - Stage 3 (matched baseline): H(Z) becomes Σ_y w_y·H(random subset of
//     the same size), drawn from the same generator right after the class.
//   - Stage 4: MI = H(Z) − Σ_y w_y·H(Z|Y=y), with the anomaly check.
//
// The draw order is fixed, so equal seeds give equal estimates.
//
// Errors: ErrEmptyPartition, ErrLabelMismatch, and any error computing H(Z).
// Complexity: one graph and spectrum per class plus one for H(Z).
func (e *Estimator) PerClassRandomSample(ps *kernel.PointSet, part *ClassPartition, known map[string]float64) (*Result, error) {
	if err := checkPartition(ps, part); err != nil {
		return nil, miErrorf("PerClassRandomSample", err)
	}
	res := newResult()
	if !e.matched {
		hz, err := e.Entropy(ps)
		if err != nil {
			return nil, miErrorf("PerClassRandomSample", err)
		}
		res.HZ = hz
	}

	// Stage 2: one generator for every class draw.
	rng := rand.New(rand.NewSource(e.seed))
	weights := part.Weights()
	for c, key := range part.Keys {
		// known classes still consume their draw
		idx := e.draw(rng, part.Indices[c])
		res.Weights[key] = weights[c]

		h, ok := known[key]
		if !ok {
			var undefined bool
			var err error
			if h, undefined, err = e.classEntropy(ps.Subset(idx)); err != nil {
				return nil, miErrorf("PerClassRandomSample", err)
			}
			if undefined {
				res.Degenerate = append(res.Degenerate, key)
			}
		}
		res.Conditional[key] = h
		res.HZGivenY += weights[c] * h

		// Stage 3: size-matched baseline.
		if e.matched {
			base := rng.Perm(ps.Len())[:len(idx)]
			sort.Ints(base)
			hb, _, err := e.classEntropy(ps.Subset(base))
			if err != nil {
				return nil, miErrorf("PerClassRandomSample", err)
			}
			res.HZ += weights[c] * hb
		}
	}

	// Stage 4.
	return e.finish("random-sample", res), nil
}

// draw returns the class indices, subsampled to the budget when set: a
// seeded permutation picks budget positions, sorted so the subset keeps the
// original row order.
func (e *Estimator) draw(rng *rand.Rand, idx []int) []int {
	if e.budget == 0 || len(idx) <= e.budget {
		return idx
	}
	pick := rng.Perm(len(idx))[:e.budget]
	sort.Ints(pick)
	out := make([]int, len(pick))
	for i, p := range pick {
		out[i] = idx[p]
	}
	return out
}

// classEntropy returns 0 and undefined == true for degenerate classes.
func (e *Estimator) classEntropy(ps *kernel.PointSet) (h float64, undefined bool, err error) {
	h, _, err = e.entropyWithOperator(ps)
	if err != nil {
		if degenerate(err) {
			e.log.Debug("degenerate class entropy", "estimator", "random-sample", "size", ps.Len(), "err", err)
			return 0, true, nil
		}
		return 0, false, err
	}
	return h, false, nil
}

// finish computes MI and flags anomalies.
func (e *Estimator) finish(name string, res *Result) *Result {
	res.MI = res.HZ - res.HZGivenY
	if res.MI < -e.eps {
		res.Anomaly = true
		e.log.Warn("negative mutual information", "estimator", name,
			"mi", res.MI, "h_z", res.HZ, "h_z_given_y", res.HZGivenY)
	}
	return res
}
