package vegan

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when the response matrix has no elements.
	ErrNoData = errors.New("vegan: response matrix has no elements")

	// ErrNilFactor is returned when a required QR factor object is missing.
	ErrNilFactor = errors.New("vegan: nil QR factor")
)

// ErrDimensionMismatch indicates inputs whose shapes do not agree: a factor
// or permutation row sized for a different number of response rows.
type ErrDimensionMismatch struct {
	What     string
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("vegan: %s mismatch: expected %d, got %d", e.What, e.Expected, e.Actual)
}

// ErrMalformedPermutation indicates a permutation row that is not a
// bijection of {1,…,nr}: an index out of range or a repeated index.
type ErrMalformedPermutation struct {
	Row   int // row of the permutation table, 0-based
	Index int // offending 1-based index value
}

func (e *ErrMalformedPermutation) Error() string {
	return fmt.Sprintf("vegan: permutation row %d is not a bijection: index %d", e.Row, e.Index)
}
