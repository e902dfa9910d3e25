package linalg

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMatrix is returned when a matrix argument has no elements.
	ErrEmptyMatrix = errors.New("linalg: matrix has no elements")

	// ErrNoRequest is returned when Project is asked for neither fitted
	// values nor residuals.
	ErrNoRequest = errors.New("linalg: no projection output requested")

	// ErrSVDConvergence is returned when the singular value decomposition
	// fails to converge. The whole permutation batch is unreliable in that
	// case and must be abandoned.
	ErrSVDConvergence = errors.New("linalg: singular value decomposition did not converge")
)

// ErrDimensionMismatch indicates that a buffer or matrix does not match the
// dimensions implied by the factor object.
type ErrDimensionMismatch struct {
	What     string
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("linalg: %s mismatch: expected %d, got %d", e.What, e.Expected, e.Actual)
}

// ErrInvalidRank indicates a rank outside [0, min(rows, cols)] when adopting
// a precomputed factorization.
type ErrInvalidRank struct {
	Rank int
	Max  int
}

func (e *ErrInvalidRank) Error() string {
	return fmt.Sprintf("linalg: invalid rank %d: must be in [0, %d]", e.Rank, e.Max)
}
