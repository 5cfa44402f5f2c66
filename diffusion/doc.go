// SPDX-License-Identifier: MIT

// Package diffusion builds the Markov diffusion operator P = D⁻¹W of an
// affinity graph.
//
// P is row-stochastic: every row sums to 1 within 1e-6. Vertices with zero
// degree receive a self-loop (P[i,i] = 1), so the invariant holds for
// graphs with isolated points too.
//
// When W is symmetric, P is similar to the symmetric matrix
//
//	A = D^{1/2} P D^{-1/2} = D^{-1/2} W D^{-1/2}
//
// which shares P's eigenvalues. The spectrum package works on A through
// Conjugate and ConjugateDense, which lets it use symmetric eigensolvers.
//
// Operators restricted to a subset of vertices (Induced) come in two forms:
// the raw principal submatrix P[S,S], which is sub-stochastic but keeps the
// similarity to a symmetric matrix, and a renormalized operator rebuilt
// from W[S,S].
package diffusion
