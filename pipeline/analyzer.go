// SPDX-License-Identifier: MIT
// Package: pipeline
//
// analyzer.go — Analyzer, Analyze and Run.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/diffentropy/cache"
	"github.com/katalvlaran/diffentropy/config"
	"github.com/katalvlaran/diffentropy/diffusion"
	"github.com/katalvlaran/diffentropy/entropy"
	"github.com/katalvlaran/diffentropy/extrema"
	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/mutualinfo"
	"github.com/katalvlaran/diffentropy/spectrum"
)

// artifactEigenvalues names cached eigenvalue lists.
const artifactEigenvalues = "eigenvalues"

// Checkpoint is one set of embeddings to analyze.
type Checkpoint struct {
	// Name identifies the checkpoint in reports and logs.
	Name string
	// Identity keys cached artifacts; empty means Name. It should change
	// whenever the embeddings change (e.g. include a content digest).
	Identity   string
	Embeddings *kernel.PointSet
	// Labels, index-aligned with Embeddings, enable the label estimators.
	Labels []int
	// Inputs, row-aligned with Embeddings, enable the input estimators.
	Inputs *kernel.PointSet
}

func (c Checkpoint) identity() string {
	if c.Identity != "" {
		return c.Identity
	}
	return c.Name
}

// Analyzer runs the analysis stages with one configuration. It is safe for
// concurrent use; the input-cluster memo is shared between calls.
type Analyzer struct {
	cfg       *config.Config
	settings  settings
	estimator *mutualinfo.Estimator
	store     cache.Store
	log       *slog.Logger

	mu       sync.Mutex
	clusters *mutualinfo.InputClusters
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithStore caches eigenvalues in s. Without a store every run recomputes.
func WithStore(s cache.Store) Option {
	return func(a *Analyzer) { a.store = s }
}

// WithLogger sets the logger for the Analyzer and its estimators.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// New validates cfg and returns an Analyzer.
//
// Errors: ErrNilConfig, config.ErrInvalidConfig, kernel.ErrConfiguration.
func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		return nil, pipelineErrorf("New", ErrNilConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, pipelineErrorf("New", err)
	}
	s, err := newSettings(cfg)
	if err != nil {
		return nil, pipelineErrorf("New", err)
	}
	a := &Analyzer{cfg: cfg, settings: s, log: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	a.settings.extrema = append(a.settings.extrema, extrema.WithLogger(a.log))
	a.estimator = mutualinfo.New(
		mutualinfo.WithKernelOptions(s.kernel...),
		mutualinfo.WithSpectrumOptions(s.spectrum...),
		mutualinfo.WithEntropyOptions(s.entropy...),
		mutualinfo.WithClassBudget(cfg.ClassSampleBudget),
		mutualinfo.WithSeed(cfg.RandomSeed),
		mutualinfo.WithEpsilon(cfg.Eps),
		mutualinfo.WithInputClusters(cfg.InputClusters),
		mutualinfo.WithLogger(a.log),
	)

	return a, nil
}

// Analyze runs every enabled stage on cp.
//
// Errors: ErrNoEmbeddings, ctx.Err(), and the wrapped errors of stages 1–4.
func (a *Analyzer) Analyze(ctx context.Context, cp Checkpoint) (*Report, error) {
	if cp.Embeddings == nil || cp.Embeddings.Len() == 0 {
		return nil, pipelineErrorf("Analyze", ErrNoEmbeddings)
	}
	log := a.log.With("checkpoint", cp.Name)
	rep := &Report{Checkpoint: cp.Name, Points: cp.Embeddings.Len(), Dim: cp.Embeddings.Dim()}

	// Stage 1: Shannon entropy.
	h, _, err := entropy.ShannonPoints(cp.Embeddings.Matrix(), a.settings.entropy...)
	if err != nil {
		return nil, pipelineErrorf("Analyze", err)
	}
	rep.Shannon = h
	log.Info("shannon entropy", "value", h)

	// Stage 2: eigenvalues.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values, hit, err := a.eigenvalues(ctx, cp)
	if err != nil {
		return nil, pipelineErrorf("Analyze", err)
	}
	rep.Eigenvalues, rep.EigenvaluesCached = len(values), hit
	log.Info("eigenvalues", "count", len(values), "cached", hit)

	// Stage 3: counts.
	t1 := spectrum.CountAbove(values, CountThresholds, 1)
	tt := spectrum.CountAbove(values, CountThresholds, a.cfg.T)
	for i, thr := range CountThresholds {
		rep.Counts = append(rep.Counts, ThresholdCount{Threshold: thr, T1: t1[i], T: tt[i]})
	}
	log.Debug("eigenvalues above thresholds", "thresholds", CountThresholds, "t1", t1, "t", a.cfg.T, "tt", tt)

	// Stage 4: von Neumann entropy and τ sweep.
	rep.VonNeumann, err = entropy.VonNeumann(values, a.settings.entropy...)
	if err != nil {
		if !errors.Is(err, entropy.ErrDegenerateSpectrum) {
			return nil, pipelineErrorf("Analyze", err)
		}
		rep.warn(log, "von Neumann entropy", err)
	}
	log.Info("diffusion entropy", "value", rep.VonNeumann, "t", a.cfg.T, "tau", a.cfg.TrivialThreshold)
	for _, tau := range SweepThresholds {
		v, err := entropy.VonNeumann(values, a.settings.sweepOptions(tau)...)
		if err != nil && !errors.Is(err, entropy.ErrDegenerateSpectrum) {
			return nil, pipelineErrorf("Analyze", err)
		}
		rep.Sweep = append(rep.Sweep, SweepEntry{Threshold: tau, Entropy: v})
	}

	// Stage 5: MI with labels.
	if cp.Labels != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := a.labelMI(cp, rep, log); err != nil {
			rep.warn(log, "label mutual information", err)
		}
	}

	// Stage 6: MI with inputs.
	if cp.Inputs != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := a.inputMI(cp, rep, log); err != nil {
			rep.warn(log, "input mutual information", err)
		}
	}

	// Stage 7: extrema.
	if a.cfg.Extrema.Enabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := a.selectExtrema(cp, rep); err != nil {
			rep.warn(log, "extrema", err)
		}
	}

	// Stage 8: resampling.
	if a.cfg.Resample.Enabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := a.Resample(ctx, cp.Embeddings)
		if err != nil {
			rep.warn(log, "resampled entropy", err)
		}
		rep.Resampled = entries
	}

	return rep, nil
}

// Run analyzes every checkpoint in order. Failing checkpoints are logged,
// skipped, and reported through the returned error (joined, each matching
// ErrCheckpointFailed); the reports of the others are returned. A cancelled
// context stops the run.
func (a *Analyzer) Run(ctx context.Context, cps []Checkpoint) ([]*Report, error) {
	reports := make([]*Report, 0, len(cps))
	var failures []error
	for _, cp := range cps {
		if err := ctx.Err(); err != nil {
			return reports, errors.Join(append(failures, err)...)
		}
		rep, err := a.Analyze(ctx, cp)
		if err != nil {
			if ctx.Err() != nil {
				return reports, errors.Join(append(failures, ctx.Err())...)
			}
			a.log.Error("checkpoint failed", "checkpoint", cp.Name, "err", err)
			failures = append(failures, fmt.Errorf("%w: %s: %w", ErrCheckpointFailed, cp.Name, err))
			continue
		}
		reports = append(reports, rep)
	}
	return reports, errors.Join(failures...)
}

// eigenvalues returns the cached or freshly computed spectrum of cp.
func (a *Analyzer) eigenvalues(ctx context.Context, cp Checkpoint) ([]float64, bool, error) {
	key := cache.Key{Checkpoint: cp.identity(), Artifact: artifactEigenvalues, Params: a.cfg.CacheParams()}
	return cache.GetOrCompute(ctx, a.store, key, func() ([]float64, error) {
		return a.computeSpectrum(cp.Embeddings)
	})
}

func (a *Analyzer) computeSpectrum(ps *kernel.PointSet) ([]float64, error) {
	g, err := kernel.Build(ps, a.settings.kernel...)
	if err != nil {
		return nil, err
	}
	op, err := diffusion.New(g.Affinity)
	if err != nil {
		return nil, err
	}
	s, err := spectrum.Estimate(op, a.settings.spectrum...)
	if err != nil {
		return nil, err
	}
	return s.Values, nil
}

// labelMI runs the three label estimators. Conditional entropies of the
// simple estimator are reused by the random-sample one.
func (a *Analyzer) labelMI(cp Checkpoint, rep *Report, log *slog.Logger) error {
	part, err := mutualinfo.NewPartition(cp.Labels)
	if err != nil {
		return err
	}
	rep.Labels = &LabelMI{}

	simple, err := a.estimator.PerClassSimple(cp.Embeddings, part)
	if err != nil {
		return err
	}
	rep.Labels.Simple = newMIEntry(simple)

	sampled, err := a.estimator.PerClassRandomSample(cp.Embeddings, part, simple.Conditional)
	if err != nil {
		return err
	}
	rep.Labels.RandomSample = newMIEntry(sampled)

	shannon, err := a.estimator.ShannonPerClass(cp.Embeddings, part)
	if err != nil {
		return err
	}
	rep.Labels.Shannon = newMIEntry(shannon)

	log.Info("mutual information with labels",
		"simple", simple.MI, "random_sample", sampled.MI, "shannon", shannon.MI)
	return nil
}

// inputMI runs the input estimators with memoized input clusters.
func (a *Analyzer) inputMI(cp Checkpoint, rep *Report, log *slog.Logger) error {
	a.mu.Lock()
	memo := a.clusters
	a.mu.Unlock()
	if memo != nil && len(memo.Labels) != cp.Embeddings.Len() {
		log.Debug("input clusters do not match checkpoint size, reclustering",
			"clusters", len(memo.Labels), "points", cp.Embeddings.Len())
		memo = nil
	}

	diff, ic, err := a.estimator.WrtInput(cp.Embeddings, cp.Inputs, memo)
	if err != nil {
		return err
	}
	rep.Inputs = &InputMI{Diffusion: newMIEntry(diff), Clusters: ic.K, Reused: memo != nil}
	a.mu.Lock()
	a.clusters = ic
	a.mu.Unlock()

	shannon, _, err := a.estimator.ShannonWrtInput(cp.Embeddings, nil, ic)
	if err != nil {
		return err
	}
	rep.Inputs.Shannon = newMIEntry(shannon)

	log.Info("mutual information with inputs", "diffusion", diff.MI, "shannon", shannon.MI, "reused", memo != nil)
	return nil
}

func (a *Analyzer) selectExtrema(cp Checkpoint, rep *Report) error {
	res, err := extrema.Select(cp.Embeddings, a.settings.extrema...)
	if err != nil {
		return err
	}
	rep.Extrema = &ExtremaSummary{Indices: res.Indices, FiedlerValue: res.FiedlerValue}
	if len(res.Indices) < 2 {
		return nil
	}
	stats, err := extrema.PairwiseDistances(cp.Embeddings, res.Indices)
	if err != nil {
		return err
	}
	rep.Extrema.DistanceMean, rep.Extrema.DistanceStd = stats.Mean, stats.Std
	return nil
}

// warn records a non-fatal stage failure.
func (r *Report) warn(log *slog.Logger, stage string, err error) {
	log.Warn(stage+" failed", "err", err)
	r.Warnings = append(r.Warnings, stage+": "+err.Error())
}
