// SPDX-License-Identifier: MIT
// Package: diffusion
//
// conjugate.go — the symmetric conjugate A = D^{1/2} P D^{-1/2} and
// class-restricted sub-operators.

package diffusion

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/matrix"
)

// Conjugate returns A = D^{1/2} P D^{-1/2} as a linear operator. A has the
// same eigenvalues as P and is symmetric whenever W is.
//
// Errors: ErrNotSymmetric when W is not symmetric.
// Complexity: O(nnz) sparse, O(N²) dense.
func (op *Operator) Conjugate() (matrix.LinearOperator, error) {
	if !op.symmetric {
		return nil, diffusionErrorf("Conjugate", ErrNotSymmetric)
	}
	if op.sparse != nil {
		inv := make([]float64, op.n)
		for i, s := range op.sqrtDeg {
			inv[i] = 1 / s
		}
		a, err := op.sparse.ScaleRowsCols(op.sqrtDeg, inv)
		if err != nil {
			return nil, diffusionErrorf("Conjugate", err)
		}
		return a, nil
	}
	sym, err := op.ConjugateDense()
	if err != nil {
		return nil, err
	}
	d, err := matrix.NewDenseOperator(sym)
	if err != nil {
		return nil, diffusionErrorf("Conjugate", err)
	}

	return d, nil
}

// ConjugateDense returns A as a gonum SymDense, averaging A and Aᵀ to remove
// rounding asymmetry.
//
// Errors: ErrNotSymmetric when W is not symmetric.
// Complexity: O(N²) memory.
func (op *Operator) ConjugateDense() (*mat.SymDense, error) {
	if !op.symmetric {
		return nil, diffusionErrorf("ConjugateDense", ErrNotSymmetric)
	}
	p := op.Matrix()
	out := mat.NewSymDense(op.n, nil)
	for i := 0; i < op.n; i++ {
		for j := i; j < op.n; j++ {
			aij := op.sqrtDeg[i] * p.At(i, j) / op.sqrtDeg[j]
			aji := op.sqrtDeg[j] * p.At(j, i) / op.sqrtDeg[i]
			out.SetSym(i, j, (aij+aji)/2)
		}
	}

	return out, nil
}

// Induced restricts the operator to the vertices idx (in that order).
//
// With renormalize == false the result is the principal submatrix P[S,S]:
// rows sum to at most 1 and the degrees of the full graph are kept, so the
// conjugate stays symmetric. With renormalize == true a fresh operator is
// built from W[S,S].
//
// Errors: ErrIndex (empty, out of range or duplicate indices), plus New's
// errors when renormalizing.
func (op *Operator) Induced(idx []int, renormalize bool) (*Operator, error) {
	if len(idx) == 0 {
		return nil, diffusionErrorf("Induced", ErrIndex)
	}
	if err := matrix.ValidateIndexSet(idx, op.n); err != nil {
		return nil, diffusionErrorf("Induced", ErrIndex)
	}
	if renormalize {
		sub, err := op.affinity.Induced(idx)
		if err != nil {
			return nil, diffusionErrorf("Induced", err)
		}
		return New(sub, WithStochasticTolerance(op.cfg.stochasticTol), WithSymmetryTolerance(op.cfg.symmetryTol))
	}

	out := &Operator{
		n:          len(idx),
		sqrtDeg:    make([]float64, len(idx)),
		symmetric:  op.symmetric,
		stochastic: false,
		cfg:        op.cfg,
	}
	for k, i := range idx {
		out.sqrtDeg[k] = op.sqrtDeg[i]
	}
	sub, err := op.affinity.Induced(idx)
	if err != nil {
		return nil, diffusionErrorf("Induced", err)
	}
	out.affinity = sub
	if op.sparse != nil {
		p, err := op.sparse.Induced(idx)
		if err != nil {
			return nil, diffusionErrorf("Induced", err)
		}
		out.sparse = p
		return out, nil
	}
	p := mat.NewDense(len(idx), len(idx), nil)
	for r, i := range idx {
		src := op.dense.RawRowView(i)
		dst := p.RawRowView(r)
		for c, j := range idx {
			dst[c] = src[j]
		}
	}
	out.dense = p

	return out, nil
}
