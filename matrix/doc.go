// SPDX-License-Identifier: MIT

// Package matrix provides the sparse linear-algebra layer shared by the
// diffusion, spectrum and extrema packages.
//
// The package offers:
//
//   - CSR, a compressed sparse row matrix that satisfies gonum's mat.Matrix
//     interface and the package-local LinearOperator interface.
//   - COO, an append-only triplet builder that compacts into CSR with a
//     configurable duplicate policy.
//   - Symmetrize (max / min / mean), Laplacian (L = D − W) and the
//     breadth-first Components scan over the sparsity pattern.
//   - Lanczos, a thick-restart Lanczos eigensolver with full
//     reorthogonalization for a few extreme eigenpairs of a symmetric
//     operator, and PCG, a preconditioned conjugate gradient solver.
//   - Validators returning plain sentinels (see errors.go).
//
// Dense work (full eigendecompositions, SVD, matrix powers) is delegated to
// gonum.org/v1/gonum/mat; this package only covers what gonum does not ship:
// sparse storage and iterative solvers driven by a mat-vec callback.
//
// Determinism:
//   - CSR rows keep column indices strictly increasing.
//   - Iterative solvers take an explicit seed for their random start vector.
package matrix
