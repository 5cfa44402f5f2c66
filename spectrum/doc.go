// SPDX-License-Identifier: MIT

// Package spectrum estimates the eigenvalues of a diffusion operator.
//
// Three strategies share one entry point, Estimate:
//
//	MethodExact      all N eigenvalues. Uses gonum's EigenSym on the
//	                 symmetric conjugate, or the general Eigen solver
//	                 (real parts) when the affinity is not symmetric.
//	MethodPartial    the k eigenvalues of largest magnitude, computed by
//	                 thick-restart Lanczos on the sparse conjugate.
//	MethodChebyshev  a spectral density computed with the kernel polynomial
//	                 method: Chebyshev moments by trace estimation, Jackson
//	                 damping, evaluation on Chebyshev nodes. The density is
//	                 turned back into N representative eigenvalues by
//	                 inverse-CDF sampling, so entropy estimators can use it
//	                 as a plain list. It is an approximation that converges
//	                 to the exact eigenvalue histogram as the order grows.
//
// Values are always sorted in descending order. Trivial eigenvalues (≈1)
// are kept; excluding them is the entropy estimator's job.
package spectrum
