// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/diffentropy/extrema"
)

type extremaFlags struct {
	count     int
	k         int
	pca       int
	subsample int
	seed      int64
}

func (f extremaFlags) validate() error {
	switch {
	case f.count < 1:
		return fmt.Errorf("--count must be >= 1, got %d", f.count)
	case f.k < 1:
		return fmt.Errorf("--k must be >= 1, got %d", f.k)
	case f.pca < 0:
		return fmt.Errorf("--pca must be >= 0, got %d", f.pca)
	case f.subsample < 0:
		return fmt.Errorf("--subsample must be >= 0, got %d", f.subsample)
	}
	return nil
}

type extremaOutput struct {
	Indices      []int   `yaml:"indices"`
	FiedlerValue float64 `yaml:"fiedler_value"`
	DistanceMean float64 `yaml:"distance_mean"`
	DistanceStd  float64 `yaml:"distance_std"`
}

func newExtremaCmd() *cobra.Command {
	var f extremaFlags
	cmd := &cobra.Command{
		Use:   "extrema [flags] points.csv",
		Short: "Select Laplacian extrema of a point cloud",
		Long: `Select points at the extremes of the data manifold: the maximum of the
Fiedler vector, then repeatedly the largest entry of the lowest eigenvector
of the Laplacian with earlier picks removed. Indices refer to CSV rows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			ps, _, err := loadPoints(args[0])
			if err != nil {
				return err
			}
			res, err := extrema.Select(ps,
				extrema.WithCount(f.count),
				extrema.WithK(f.k),
				extrema.WithPCA(f.pca),
				extrema.WithSubsample(f.subsample, f.seed),
			)
			if err != nil {
				return err
			}
			out := extremaOutput{Indices: res.Indices, FiedlerValue: res.FiedlerValue}
			if len(res.Indices) > 1 {
				stats, err := extrema.PairwiseDistances(ps, res.Indices)
				if err != nil {
					return err
				}
				out.DistanceMean, out.DistanceStd = stats.Mean, stats.Std
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().IntVarP(&f.count, "count", "n", extrema.DefaultCount, "number of extrema")
	cmd.Flags().IntVarP(&f.k, "k", "k", extrema.DefaultK, "nearest neighbors of the graph")
	cmd.Flags().IntVar(&f.pca, "pca", extrema.DefaultPCA, "principal components (0 disables)")
	cmd.Flags().IntVar(&f.subsample, "subsample", extrema.DefaultSubsample, "maximum graph size (0 disables)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "subsampling seed")
	return cmd
}
