// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "diffent",
		Short: "Diffusion entropy of embeddings",
		Long: `diffent measures the information content of learned embeddings.

It builds a kernel graph over the points of each checkpoint, computes the
spectrum of the diffusion operator and reports von Neumann entropy, mutual
information with labels and inputs, and Laplacian extrema.

Examples:
  diffent analyze --config diffent.yaml --labels labels.csv epoch-*.csv
  diffent extrema --count 10 points.csv`,
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newExtremaCmd())
	return root
}
