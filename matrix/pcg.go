// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Preconditioned conjugate gradient for (A + σI)·x = b with A symmetric
//     positive semi-definite, a diagonal (Jacobi) preconditioner and an
//     optional projector keeping iterates inside an invariant subspace
//     (e.g. the complement of the constant vector for graph Laplacians).

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PCG defaults.
const (
	DefaultPCGTol     = 1e-10
	DefaultPCGMaxIter = 1000
)

// PCGOptions configures PCG. Use the With* helpers.
type PCGOptions struct {
	tol     float64
	maxIter int
	shift   float64
	precond []float64
	project func([]float64)
}

// PCGOption mutates PCGOptions.
type PCGOption func(*PCGOptions)

// WithPCGTol sets the relative residual tolerance ‖r‖ ≤ tol·‖b‖.
// Panics if tol <= 0.
func WithPCGTol(tol float64) PCGOption {
	if !(tol > 0) {
		panic("matrix: WithPCGTol(tol<=0)")
	}
	return func(o *PCGOptions) { o.tol = tol }
}

// WithPCGMaxIter bounds the iteration count. Panics if n < 1.
func WithPCGMaxIter(n int) PCGOption {
	if n < 1 {
		panic("matrix: WithPCGMaxIter(n<1)")
	}
	return func(o *PCGOptions) { o.maxIter = n }
}

// WithShift solves (A + σI)x = b instead of Ax = b.
func WithShift(sigma float64) PCGOption {
	return func(o *PCGOptions) { o.shift = sigma }
}

// WithJacobi sets the inverse diagonal M⁻¹ used as preconditioner.
func WithJacobi(invDiag []float64) PCGOption {
	return func(o *PCGOptions) { o.precond = invDiag }
}

// WithProjector applies p in place to the right-hand side, residuals and
// preconditioned residuals.
func WithProjector(p func([]float64)) PCGOption {
	return func(o *PCGOptions) { o.project = p }
}

// PCGResult reports the solution and solver statistics.
type PCGResult struct {
	X          []float64
	Iterations int
	Residual   float64 // final ‖r‖ / ‖b‖
	Converged  bool
}

// PCG solves (A + σI)x = b.
//
// Implementation:
//   - Stage 1: validate, project b, start from x0 (zero when nil).
//   - Stage 2: classic PCG recurrence; stops on tolerance, on the iteration
//     budget, or when pᵀ(A+σI)p ≤ 0 (operator not positive on the search
//     direction).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch. Non-convergence is reported in
// PCGResult.Converged, not as an error.
//
// Complexity: O(iter · nnz).
func PCG(a LinearOperator, b, x0 []float64, opts ...PCGOption) (*PCGResult, error) {
	if a == nil {
		return nil, matrixErrorf("PCG", ErrNilMatrix)
	}
	n := a.Dim()
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf("PCG", err)
	}
	o := PCGOptions{tol: DefaultPCGTol, maxIter: DefaultPCGMaxIter}
	for _, opt := range opts {
		opt(&o)
	}
	if o.precond != nil && len(o.precond) != n {
		return nil, matrixErrorf("PCG", ErrDimensionMismatch)
	}
	// Stage 1: operator, preconditioner and projected right-hand side.
	// The shift is applied on the fly, so A is never copied.
	project := o.project
	if project == nil {
		project = func([]float64) {}
	}
	apply := func(dst, x []float64) {
		a.MulVecTo(dst, x)
		if o.shift != 0 {
			floats.AddScaled(dst, o.shift, x)
		}
	}
	precondition := func(dst, r []float64) {
		copy(dst, r)
		if o.precond != nil {
			floats.Mul(dst, o.precond)
		}
		project(dst)
	}

	rhs := append([]float64(nil), b...)
	project(rhs)
	bnorm := floats.Norm(rhs, 2)
	x := make([]float64, n)
	if x0 != nil {
		if len(x0) != n {
			return nil, matrixErrorf("PCG", ErrDimensionMismatch)
		}
		copy(x, x0)
		project(x)
	}
	if bnorm == 0 {
		return &PCGResult{X: make([]float64, n), Converged: true}, nil
	}

	// Stage 2: r₀ = b − (A+σI)x₀, z₀ = M⁻¹r₀, p₀ = z₀.
	r := make([]float64, n)
	ap := make([]float64, n)
	apply(ap, x)
	floats.SubTo(r, rhs, ap)
	project(r)
	z := make([]float64, n)
	precondition(z, r)
	p := append([]float64(nil), z...)
	rz := floats.Dot(r, z)

	// Stage 3: iterate. Each step costs one mat-vec and two dot products.
	res := &PCGResult{X: x}
	for it := 0; it < o.maxIter; it++ {
		rel := floats.Norm(r, 2) / bnorm
		res.Residual = rel
		if rel <= o.tol {
			res.Converged = true
			return res, nil
		}
		// step length α = rᵀz / pᵀ(A+σI)p; a non-positive curvature means
		// the operator is singular on p and no further progress is possible
		apply(ap, p)
		pap := floats.Dot(p, ap)
		if pap <= 0 || math.IsNaN(pap) {
			return res, nil
		}
		alpha := rz / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)
		project(r)
		precondition(z, r)
		// β = r₊ᵀz₊ / rᵀz keeps p conjugate to the previous directions
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
		res.Iterations = it + 1
	}
	res.Residual = floats.Norm(r, 2) / bnorm
	res.Converged = res.Residual <= o.tol

	return res, nil
}
