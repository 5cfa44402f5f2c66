// SPDX-License-Identifier: MIT

// Package pipeline runs the full diffusion-entropy analysis of one or more
// embedding checkpoints.
//
// For every Checkpoint the Analyzer computes, in order:
//
//   - Stage 1: Shannon entropy of the embeddings (k-means partition).
//   - Stage 2: diffusion eigenvalues, read through the artifact cache.
//   - Stage 3: eigenvalue counts above CountThresholds for λ and λᵗ.
//   - Stage 4: von Neumann entropy H(Z) at the configured t and τ, and the
//     τ sweep over SweepThresholds.
//   - Stage 5: mutual information with the labels (simple, random-sample
//     and Shannon) when labels are present.
//   - Stage 6: mutual information with the raw inputs (diffusion and
//     Shannon) when inputs are present; input clusters are computed once
//     and reused for later checkpoints of the same size.
//   - Stage 7: Laplacian extrema and their pairwise distances (optional).
//   - Stage 8: entropy of random disjoint batches (optional).
//
// Failures of stages 1 to 4 fail the checkpoint. Later stages record a
// warning in the Report and the analysis continues. Run analyzes many
// checkpoints and skips the ones that fail.
//
// The context is checked between stages; numeric kernels themselves are
// not interruptible.
package pipeline
