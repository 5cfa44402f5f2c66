// SPDX-License-Identifier: MIT

// Package mutualinfo estimates I(Z;Y) = H(Z) − H(Z|Y) between an embedding
// point cloud Z and a labelling Y (class labels or clusters of raw inputs).
//
// Estimators (methods on Estimator):
//
//   - PerClassSimple: one diffusion operator over all points; every class
//     entropy comes from the spectrum of the operator restricted to that
//     class (rows and columns of the class, not renormalized by default).
//     This ignores diffusion paths that leave the class and is an
//     approximation of the true conditional entropy.
//   - PerClassRandomSample: a fresh graph and operator per class, optionally
//     subsampled to a fixed budget with the caller's seed. Optionally H(Z)
//     is replaced by a matched-size random baseline per class.
//   - ShannonPerClass: plug-in I(C;Y) where C are global k-means clusters of
//     the embeddings.
//   - WrtInput / ShannonWrtInput: Y is the k-means clustering of the raw
//     inputs. Cluster assignments are returned so callers can pass them back
//     on later calls (for example across checkpoints).
//
// H(Z|Y) is always the occupancy-weighted mean of the class entropies.
// Classes with a degenerate spectrum contribute 0 and are listed in
// Result.Degenerate. Estimates below −ε are reported through Result.Anomaly
// and logged; they are never clamped.
package mutualinfo
