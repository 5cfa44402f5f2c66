// SPDX-License-Identifier: MIT

// Package kernel turns a point cloud into a weighted affinity graph.
//
// A PointSet (N×D, row-major) goes in; a Graph comes out, holding a
// non-negative symmetric Affinity matrix W plus the bookkeeping that maps
// graph vertices back to the caller's rows after optional subsampling.
//
// Kernels:
//
//	KindKNN          k nearest neighbors, binary or α-decay weights, sparse.
//	KindGaussian     exp(-(d/σ)^α) over all pairs, dense, fixed σ.
//	KindAdaptive     exp(-(d/√(σᵢσⱼ))^α), σᵢ = distance to the k-th neighbor.
//	KindAnisotropic  adaptive kernel followed by Wᵢⱼ / (qᵢ^a · qⱼ^a).
//
// Pre-processing, applied in this order when configured:
//
//	WithSubsample(cap, seed)  keep at most cap rows (seeded, sorted indices)
//	WithPCA(n)                project onto the first n principal components
//
// Options are functional; option constructors panic on meaningless values,
// while Build reports data-dependent problems (k ≥ N, D == 0, ...) through
// ErrConfiguration.
//
// Distances are Euclidean and computed row-by-row with
// github.com/viterin/vek; dense kernels materialize an N×N gonum matrix, so
// they are intended for N in the low thousands.
package kernel
