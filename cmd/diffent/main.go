// SPDX-License-Identifier: MIT

// Command diffent computes diffusion entropy, mutual information and
// Laplacian extrema of embedding checkpoints stored as CSV files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
