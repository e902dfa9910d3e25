package linalg

import "gonum.org/v1/gonum/blas/blas64"

// SumSquares returns the sum of the squared entries of x, the squared
// Frobenius norm. For a fitted or residual block this equals the sum of all
// eigenvalues of the corresponding crossproduct matrix.
func SumSquares(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	v := blas64.Vector{N: len(x), Inc: 1, Data: x}
	return blas64.Dot(v, v)
}

// SumSquaresDiag returns the sum of squared diagonal entries of the n×n
// row-major matrix x with the given row stride. This is the reduction used
// for distance-based (dbRDA-style) analyses, where only X[i,i] carries
// eigenvalue mass.
func SumSquaresDiag(x []float64, n, stride int) float64 {
	if n == 0 {
		return 0
	}
	v := blas64.Vector{N: n, Inc: stride + 1, Data: x}
	return blas64.Dot(v, v)
}
