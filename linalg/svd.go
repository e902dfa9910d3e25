package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"
)

// SVDScratch holds the buffers LeadingSingularValue reuses across calls:
// the defensive copy of the input, the singular values, and the dgesvd
// work array. The zero value is ready to use. An SVDScratch must not be
// shared between goroutines.
type SVDScratch struct {
	a    []float64
	s    []float64
	work []float64
}

// LeadingSingularValue returns the largest singular value of the nr×nc
// row-major matrix x (contiguous, stride nc). The square of the returned
// value is the largest eigenvalue of xᵀx.
//
// The decomposition is computed with no singular vectors, which is the
// cheapest dgesvd mode. The input is copied first because dgesvd destroys
// its argument, and the workspace is sized with the usual two-call
// convention: a negative-lwork query followed by the decomposition proper.
func LeadingSingularValue(x []float64, nr, nc int, sc *SVDScratch) (float64, error) {
	if nr == 0 || nc == 0 {
		return 0, ErrEmptyMatrix
	}
	if len(x) < nr*nc {
		return 0, &ErrDimensionMismatch{What: "matrix length", Expected: nr * nc, Actual: len(x)}
	}
	if sc == nil {
		sc = &SVDScratch{}
	}

	n := nr * nc
	if cap(sc.a) < n {
		sc.a = make([]float64, n)
	}
	a := blas64.General{Rows: nr, Cols: nc, Stride: nc, Data: sc.a[:n]}
	copy(a.Data, x[:n])

	minrc := min(nr, nc)
	if cap(sc.s) < minrc {
		sc.s = make([]float64, minrc)
	}
	sv := sc.s[:minrc]

	// Singular values only; u and vt are never referenced.
	var u, vt blas64.General

	var query [1]float64
	if ok := lapack64.Gesvd(lapack.SVDNone, lapack.SVDNone, a, u, vt, sv, query[:], -1); !ok {
		return 0, fmt.Errorf("%w (workspace query)", ErrSVDConvergence)
	}
	lwork := int(query[0])
	if cap(sc.work) < lwork {
		sc.work = make([]float64, lwork)
	}
	if ok := lapack64.Gesvd(lapack.SVDNone, lapack.SVDNone, a, u, vt, sv, sc.work[:lwork], lwork); !ok {
		return 0, ErrSVDConvergence
	}
	return sv[0], nil
}
