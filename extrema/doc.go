// SPDX-License-Identifier: MIT

// Package extrema selects landmark points that lie at the extremes of a
// point cloud manifold.
//
// Select builds a binary kNN graph (optionally after PCA and a seeded
// subsample), forms the combinatorial Laplacian L = D − W and then:
//
//  1. computes the Fiedler vector of L by shifted inverse iteration, each
//     step solved with Jacobi-preconditioned conjugate gradient on the
//     complement of the constant vector. The first extremum is the
//     vertex with the largest Fiedler entry (after fixing the sign so that
//     the largest-magnitude entry is positive);
//  2. repeatedly removes the rows and columns of the extrema found so far
//     and takes the smallest eigenvector of the reduced Laplacian (Lanczos,
//     started from the previous reduced vector). The next extremum is the
//     entry of largest magnitude, mapped back to the full index space with
//     ReducedToOriginal.
//
// Extrema never repeat and are returned in discovery order.
package extrema
