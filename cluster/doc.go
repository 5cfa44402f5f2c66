// SPDX-License-Identifier: MIT

// Package cluster groups points into discrete labels.
//
// Two routes are provided:
//
//   - KMeans: seeded k-means++ initialization followed by Lloyd iterations.
//     Distances use ‖x‖² + ‖c‖² − 2·x·c with all dot products computed by a
//     single BLAS GEMM per iteration; empty clusters are re-seeded from the
//     point farthest from its centroid. Several restarts keep the run with
//     the lowest objective.
//   - Discretize: uniform per-dimension binning; every occupied bin tuple
//     becomes a label, numbered in order of first appearance.
//
// Both return dense labels 0..K−1 aligned with the input rows, suitable for
// plug-in Shannon entropies and for partitioning raw inputs.
package cluster
