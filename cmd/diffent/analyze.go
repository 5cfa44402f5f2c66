// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/diffentropy/backend"
	"github.com/katalvlaran/diffentropy/cache"
	"github.com/katalvlaran/diffentropy/config"
	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/pipeline"
)

type analyzeFlags struct {
	config string
	labels string
	inputs string
	output string
}

func newAnalyzeCmd() *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze [flags] checkpoint.csv...",
		Short: "Analyze embedding checkpoints",
		Long: `Analyze one or more embedding checkpoints (one point per CSV row) and
write a YAML report.

Labels and inputs are shared by every checkpoint and must have one row per
point. Checkpoints that fail are reported on stderr and left out of the
report.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, f, args)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&f.labels, "labels", "", "CSV with one integer label per point")
	cmd.Flags().StringVar(&f.inputs, "inputs", "", "CSV with the raw input of each point")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "report file (default stdout)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, f analyzeFlags, paths []string) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	log := cfg.Log.NewLogger(cmd.ErrOrStderr())
	applied, err := backend.Configure(backend.Config{Threads: cfg.Threads})
	if err != nil {
		return err
	}
	log.Debug("backend configured", "threads", applied.Threads, "blas", applied.BLAS)

	store, err := cache.Open(cfg.Cache.Path, cfg.Cache.MemoryMaxCost)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	a, err := pipeline.New(cfg, pipeline.WithStore(store), pipeline.WithLogger(log))
	if err != nil {
		return err
	}

	var (
		labels []int
		inputs *kernel.PointSet
	)
	if f.labels != "" {
		if labels, err = loadLabels(f.labels); err != nil {
			return err
		}
	}
	if f.inputs != "" {
		if inputs, _, err = loadPoints(f.inputs); err != nil {
			return err
		}
	}

	cps := make([]pipeline.Checkpoint, 0, len(paths))
	for _, path := range paths {
		ps, digest, err := loadPoints(path)
		if err != nil {
			return err
		}
		cps = append(cps, pipeline.Checkpoint{
			Name:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Identity:   path + "@" + digest,
			Embeddings: ps,
			Labels:     labels,
			Inputs:     inputs,
		})
	}

	reports, runErr := a.Run(cmd.Context(), cps)
	if runErr != nil {
		log.Error("analysis incomplete", "analyzed", len(reports), "requested", len(cps), "err", runErr)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no checkpoint analyzed: %w", runErr)
	}

	out, err := pipeline.MarshalReports(reports)
	if err != nil {
		return err
	}
	if f.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	return os.WriteFile(f.output, out, 0o644)
}
