package linalg

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// DefaultRankTolerance is the relative cutoff on |R[j,j]| used by Decompose
// to determine the numerical rank of the model matrix. It matches the
// tolerance R's qr() applies to model matrices.
const DefaultRankTolerance = 1e-7

// Want selects which projections Factor.Project produces.
type Want uint8

const (
	// WantFitted requests the projection onto the factor's column space.
	WantFitted Want = 1 << iota
	// WantResiduals requests the projection onto the orthogonal complement.
	WantResiduals
)

// Factor is a precomputed orthogonal-triangular factorization of a model
// matrix: the packed reflector/R matrix from dgeqrf, the Householder scalars,
// and the numerical rank. A Factor is immutable and safe for concurrent use
// by any number of goroutines.
type Factor struct {
	qr   blas64.General // nr×p, reflectors below the diagonal, R on and above
	tau  []float64      // min(nr, p) Householder scalars
	rank int
}

// Rows returns the number of rows of the factored model matrix, which is the
// required length of every column projected through the factor.
func (f *Factor) Rows() int { return f.qr.Rows }

// Cols returns the number of columns of the factored model matrix.
func (f *Factor) Cols() int { return f.qr.Cols }

// Rank returns the numerical rank of the factorization. Only the first Rank
// elementary reflectors participate in projections.
func (f *Factor) Rank() int { return f.rank }

// Decompose computes the QR factorization of the model matrix x and derives
// its numerical rank from the diagonal of R using the relative tolerance tol
// (DefaultRankTolerance if tol <= 0).
//
// The factorization is unpivoted, so rank detection stops at the first
// negligible pivot. Callers holding a pivoted decomposition from elsewhere
// should adopt its parts via NewFactor instead.
func Decompose(x mat.Matrix, tol float64) (*Factor, error) {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	if tol <= 0 {
		tol = DefaultRankTolerance
	}

	a := blas64.General{Rows: r, Cols: c, Stride: c, Data: make([]float64, r*c)}
	if d, ok := x.(*mat.Dense); ok {
		raw := d.RawMatrix()
		for i := 0; i < r; i++ {
			copy(a.Data[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
		}
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				a.Data[i*c+j] = x.At(i, j)
			}
		}
	}

	minrc := min(r, c)
	tau := make([]float64, minrc)

	// Workspace query, then the factorization proper.
	var query [1]float64
	lapack64.Geqrf(a, tau, query[:], -1)
	lwork := max(int(query[0]), c)
	work := make([]float64, lwork)
	lapack64.Geqrf(a, tau, work, lwork)

	rank := 0
	d0 := math.Abs(a.Data[0])
	for j := 0; j < minrc; j++ {
		if math.Abs(a.Data[j*c+j]) <= tol*d0 {
			break
		}
		rank++
	}

	return &Factor{qr: a, tau: tau, rank: rank}, nil
}

// NewFactor adopts the parts of a factorization computed elsewhere: the
// packed dgeqrf-form matrix, its rank, and the auxiliary Householder scalar
// vector. The parts are copied; the caller keeps ownership of its buffers.
func NewFactor(qr *mat.Dense, rank int, tau []float64) (*Factor, error) {
	if qr == nil {
		return nil, ErrEmptyMatrix
	}
	r, c := qr.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	minrc := min(r, c)
	if len(tau) != minrc {
		return nil, &ErrDimensionMismatch{What: "auxiliary vector length", Expected: minrc, Actual: len(tau)}
	}
	if rank < 0 || rank > minrc {
		return nil, &ErrInvalidRank{Rank: rank, Max: minrc}
	}

	a := blas64.General{Rows: r, Cols: c, Stride: c, Data: make([]float64, r*c)}
	raw := qr.RawMatrix()
	for i := 0; i < r; i++ {
		copy(a.Data[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
	}
	t := make([]float64, minrc)
	copy(t, tau)

	return &Factor{qr: a, tau: t, rank: rank}, nil
}

// Scratch holds the per-worker buffers Project reuses across calls: the
// Qᵀy block and the Ormqr workspace. The zero value is ready to use. A
// Scratch must not be shared between goroutines.
type Scratch struct {
	qty  []float64
	work []float64
}

func (s *Scratch) general(r, c int) blas64.General {
	n := r * c
	if cap(s.qty) < n {
		s.qty = make([]float64, n)
	}
	return blas64.General{Rows: r, Cols: c, Stride: c, Data: s.qty[:n]}
}

// ormqr applies Q or Qᵀ from the left, sizing its workspace with the
// standard negative-lwork query on first use.
func (s *Scratch) ormqr(trans blas.Transpose, a blas64.General, tau []float64, c blas64.General) {
	var query [1]float64
	lapack64.Ormqr(blas.Left, trans, a, tau, c, query[:], -1)
	lwork := max(int(query[0]), c.Cols)
	if cap(s.work) < lwork {
		s.work = make([]float64, lwork)
	}
	lapack64.Ormqr(blas.Left, trans, a, tau, c, s.work[:lwork], lwork)
}

// Project decomposes the nr×nc block y against the factor, writing the
// projection onto the factor's column space into fitted and/or the
// projection onto its orthogonal complement into resid, as selected by want.
// Each column of y is projected independently; nc=1 is the single-column
// case.
//
// The fitted buffer must not alias y. The resid buffer may alias y, which
// is how the partial-model step residualizes a working block in place.
// Buffers for unrequested outputs are ignored and may be zero values.
//
// Shape violations are reported before any numeric work; once the shapes
// check out the projection cannot fail.
func (f *Factor) Project(y blas64.General, want Want, fitted, resid blas64.General, s *Scratch) error {
	wantFit := want&WantFitted != 0
	wantRes := want&WantResiduals != 0
	if !wantFit && !wantRes {
		return ErrNoRequest
	}

	nr, nc := y.Rows, y.Cols
	if nr != f.qr.Rows {
		return &ErrDimensionMismatch{What: "input rows", Expected: f.qr.Rows, Actual: nr}
	}
	if wantFit {
		if fitted.Rows != nr || fitted.Cols != nc {
			return &ErrDimensionMismatch{What: "fitted rows*cols", Expected: nr * nc, Actual: fitted.Rows * fitted.Cols}
		}
	}
	if wantRes {
		if resid.Rows != nr || resid.Cols != nc {
			return &ErrDimensionMismatch{What: "residual rows*cols", Expected: nr * nc, Actual: resid.Rows * resid.Cols}
		}
	}
	if s == nil {
		s = &Scratch{}
	}

	k := f.rank
	if k == 0 {
		// Empty model: everything is residual.
		if wantRes {
			copyGeneral(resid, y)
		}
		if wantFit {
			zeroRows(fitted, 0, nr)
		}
		return nil
	}

	// qty = Qᵀ y, using only the rank leading reflectors.
	qty := s.general(nr, nc)
	copyGeneral(qty, y)
	a := blas64.General{Rows: nr, Cols: k, Stride: f.qr.Stride, Data: f.qr.Data}
	tau := f.tau[:k]
	s.ormqr(blas.Trans, a, tau, qty)

	if wantFit {
		// Back-transform the leading rank coordinates.
		copyGeneral(fitted, qty)
		zeroRows(fitted, k, nr)
		s.ormqr(blas.NoTrans, a, tau, fitted)
		if wantRes {
			subGeneral(resid, y, fitted)
		}
		return nil
	}

	// Residuals only: back-transform the trailing coordinates.
	copyGeneral(resid, qty)
	zeroRows(resid, 0, k)
	s.ormqr(blas.NoTrans, a, tau, resid)
	return nil
}

func copyGeneral(dst, src blas64.General) {
	for i := 0; i < src.Rows; i++ {
		copy(dst.Data[i*dst.Stride:i*dst.Stride+src.Cols], src.Data[i*src.Stride:i*src.Stride+src.Cols])
	}
}

func zeroRows(x blas64.General, from, to int) {
	for i := from; i < to; i++ {
		row := x.Data[i*x.Stride : i*x.Stride+x.Cols]
		for j := range row {
			row[j] = 0
		}
	}
}

// subGeneral computes dst = a - b. dst may alias a.
func subGeneral(dst, a, b blas64.General) {
	for i := 0; i < a.Rows; i++ {
		da := a.Data[i*a.Stride : i*a.Stride+a.Cols]
		db := b.Data[i*b.Stride : i*b.Stride+b.Cols]
		dd := dst.Data[i*dst.Stride : i*dst.Stride+dst.Cols]
		for j := range dd {
			dd[j] = da[j] - db[j]
		}
	}
}
