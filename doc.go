// SPDX-License-Identifier: MIT

// Package diffentropy measures how much information learned embeddings
// carry, using the spectrum of a diffusion operator built over the points.
//
// 🚀 What is diffentropy?
//
//	A numeric toolkit that turns a cloud of N embedding vectors into:
//		• Diffusion entropy H(Z): von Neumann entropy of the non-trivial
//		  eigenvalues of a Markov diffusion operator
//		• Mutual information I(Z;Y) with class labels and I(Z;X) with raw
//		  inputs, by per-class conditioning
//		• Laplacian extrema: points at the ends of the data manifold
//		• Shannon baselines on k-means partitions
//
// Under the hood, the work is split into small packages, leaves first:
//
//	matrix/     — CSR/COO storage, graph Laplacians, Lanczos and PCG solvers
//	kernel/     — point sets and kNN / Gaussian / adaptive / anisotropic kernels
//	diffusion/  — row-stochastic operator P and its symmetric conjugate
//	spectrum/   — exact, partial (Lanczos) and Chebyshev (KPM) spectra
//	entropy/    — von Neumann policy and Shannon entropy
//	cluster/    — seeded k-means and uniform binning
//	mutualinfo/ — simple, random-sample, Shannon and input estimators
//	extrema/    — Fiedler vector and constrained Laplacian extrema
//	backend/    — once-per-process thread and BLAS setup
//	cache/      — ristretto and sqlite artifact stores
//	config/     — YAML configuration and logger setup
//	pipeline/   — per-checkpoint analysis and multi-checkpoint runs
//	cmd/diffent — command-line interface
//
// Quick example (two well-separated copies of one cloud, labelled by copy):
//
//	H(Z) − H(Z|Y) = log 2
//
// because each copy contributes the same spectrum and the label splits the
// operator into two equal, disconnected halves.
//
// Every random draw goes through a caller-supplied seed, so identical inputs
// and configuration produce identical numbers.
package diffentropy
