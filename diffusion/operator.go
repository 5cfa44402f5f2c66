// SPDX-License-Identifier: MIT
// Package: diffusion
//
// operator.go — P = D⁻¹W with self-loops for isolated vertices.

package diffusion

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/diffentropy/kernel"
	"github.com/katalvlaran/diffentropy/matrix"
)

// Tolerances.
const (
	DefaultStochasticTol = 1e-6
	DefaultSymmetryTol   = 1e-10
)

// Option customizes New.
type Option func(*config)

type config struct {
	stochasticTol float64
	symmetryTol   float64
}

// WithStochasticTolerance sets the accepted |row sum − 1|. Panics if tol <= 0.
func WithStochasticTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("diffusion: WithStochasticTolerance(tol<=0)")
	}
	return func(c *config) { c.stochasticTol = tol }
}

// WithSymmetryTolerance sets the tolerance used to decide whether W is
// symmetric. Panics if tol < 0.
func WithSymmetryTolerance(tol float64) Option {
	if !(tol >= 0) {
		panic("diffusion: WithSymmetryTolerance(tol<0)")
	}
	return func(c *config) { c.symmetryTol = tol }
}

// Operator is the row-stochastic diffusion operator of an affinity graph.
// It is immutable.
type Operator struct {
	n          int
	sparse     *matrix.CSR
	dense      *mat.Dense
	sqrtDeg    []float64
	isolated   []int
	symmetric  bool
	stochastic bool
	affinity   *kernel.Affinity
	cfg        config
}

// New builds P = D⁻¹W.
//
// Implementation:
//   - Stage 1: degrees d = W·1; zero-degree rows get W[i,i] = 1.
//   - Stage 2: scale rows by 1/d (sparse stays sparse).
//   - Stage 3: verify row sums within tolerance.
//
// Errors: ErrNilAffinity, ErrNotStochastic.
// Complexity: O(nnz) sparse, O(N²) dense.
func New(a *kernel.Affinity, opts ...Option) (*Operator, error) {
	if a == nil {
		return nil, diffusionErrorf("New", ErrNilAffinity)
	}
	cfg := config{stochasticTol: DefaultStochasticTol, symmetryTol: DefaultSymmetryTol}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := a.N()
	deg := a.RowSums()
	var isolated []int
	for i, d := range deg {
		if d <= 0 {
			isolated = append(isolated, i)
			deg[i] = 1
		}
	}
	inv := make([]float64, n)
	sq := make([]float64, n)
	for i, d := range deg {
		inv[i] = 1 / d
		sq[i] = math.Sqrt(d)
	}

	op := &Operator{
		n:          n,
		sqrtDeg:    sq,
		isolated:   isolated,
		symmetric:  a.IsSymmetric(cfg.symmetryTol),
		stochastic: true,
		affinity:   a,
		cfg:        cfg,
	}
	if a.IsSparse() {
		w := a.Sparse()
		if len(isolated) > 0 {
			var err error
			if w, err = w.WithDiagonal(isolated, 1); err != nil {
				return nil, diffusionErrorf("New", err)
			}
		}
		p, err := w.ScaleRowsCols(inv, nil)
		if err != nil {
			return nil, diffusionErrorf("New", err)
		}
		op.sparse = p
	} else {
		p := mat.DenseCopyOf(a.Dense())
		for _, i := range isolated {
			p.Set(i, i, 1)
		}
		for i := 0; i < n; i++ {
			row := p.RawRowView(i)
			for j := range row {
				row[j] *= inv[i]
			}
		}
		op.dense = p
	}

	if err := op.CheckStochastic(cfg.stochasticTol); err != nil {
		return nil, diffusionErrorf("New", err)
	}

	return op, nil
}

// N returns the number of states.
func (op *Operator) N() int { return op.n }

// Dim implements matrix.LinearOperator.
func (op *Operator) Dim() int { return op.n }

// IsSparse reports whether P is stored in CSR form.
func (op *Operator) IsSparse() bool { return op.sparse != nil }

// Sparse returns the CSR form of P, or nil for dense operators.
func (op *Operator) Sparse() *matrix.CSR { return op.sparse }

// Symmetric reports whether W (and therefore the conjugate) is symmetric.
func (op *Operator) Symmetric() bool { return op.symmetric }

// Stochastic reports whether P is row-stochastic (false for raw induced
// sub-operators).
func (op *Operator) Stochastic() bool { return op.stochastic }

// Isolated returns the vertices that received a self-loop.
func (op *Operator) Isolated() []int { return append([]int(nil), op.isolated...) }

// Degree returns d_i (1 for isolated vertices).
func (op *Operator) Degree() []float64 {
	d := make([]float64, op.n)
	for i, s := range op.sqrtDeg {
		d[i] = s * s
	}

	return d
}

// Matrix returns P as a gonum mat.Matrix (CSR or Dense backing).
func (op *Operator) Matrix() mat.Matrix {
	if op.sparse != nil {
		return op.sparse
	}
	return op.dense
}

// At returns P[i,j].
func (op *Operator) At(i, j int) float64 { return op.Matrix().At(i, j) }

// Dense returns a dense copy of P.
func (op *Operator) Dense() *mat.Dense {
	if op.sparse != nil {
		return op.sparse.ToDense()
	}
	return mat.DenseCopyOf(op.dense)
}

// MulVecTo writes P·x into dst.
func (op *Operator) MulVecTo(dst, x []float64) {
	if op.sparse != nil {
		op.sparse.MulVecTo(dst, x)
		return
	}
	mat.NewVecDense(op.n, dst).MulVec(op.dense, mat.NewVecDense(op.n, x))
}

// RowSums returns Σ_j P[i,j].
func (op *Operator) RowSums() []float64 {
	if op.sparse != nil {
		return op.sparse.RowSums()
	}
	out := make([]float64, op.n)
	for i := range out {
		for _, v := range op.dense.RawRowView(i) {
			out[i] += v
		}
	}

	return out
}

// CheckStochastic verifies |Σ_j P[i,j] − 1| ≤ tol for every row. Raw induced
// sub-operators are exempt.
//
// Errors: ErrNotStochastic.
func (op *Operator) CheckStochastic(tol float64) error {
	if !op.stochastic {
		return nil
	}
	for _, s := range op.RowSums() {
		if math.Abs(s-1) > tol {
			return ErrNotStochastic
		}
	}

	return nil
}

// Power returns the dense matrix Pᵗ. Prefer spectral powers (λᵗ) when only
// eigenvalues are needed.
//
// Errors: ErrInvalidPower (t < 1).
// Complexity: O(N³·log t).
func (op *Operator) Power(t int) (*mat.Dense, error) {
	if t < 1 {
		return nil, diffusionErrorf("Power", ErrInvalidPower)
	}
	var out mat.Dense
	out.Pow(op.Matrix(), t)

	return &out, nil
}
