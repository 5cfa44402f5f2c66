// SPDX-License-Identifier: MIT

// Package entropy turns diffusion spectra and raw point clouds into scalar
// entropies.
//
// Spectral von Neumann entropy (VonNeumann):
//
//  1. sort eigenvalues in descending order;
//  2. drop trivial eigenvalues λ > τ, or with WithT(t), t > 1, drop λᵗ > 1−ε;
//  3. reject excursions below −1 beyond tolerance, clip smaller ones, shift
//     the retained set by its minimum when that minimum is negative;
//  4. optionally drop near-zero values;
//  5. normalize to a distribution, add a floor against log(0);
//  6. return −Σ p log p.
//
// Fewer than two retained values, or a zero retained sum, yield NaN together
// with ErrDegenerateSpectrum.
//
// VonNeumannDensity applies the same policy to a Chebyshev spectral density,
// treating grid point i as N·wᵢ copies of eigenvalue gridᵢ.
//
// Shannon and ShannonPoints are the data-driven variant: the plug-in entropy
// of cluster occupancy (k-means or uniform binning of the raw vectors).
//
// All entropies use the natural logarithm.
package entropy
