// Package linalg provides the numeric primitives behind the permutation
// engine: projection through a precomputed QR factorization, leading
// singular values, and sum-of-squares reductions.
//
// All routines are backed by gonum's BLAS/LAPACK implementations. A Factor
// is immutable once built and safe for concurrent use; per-worker state
// lives in the Scratch types so the engine can run projections in parallel
// without locking.
package linalg
