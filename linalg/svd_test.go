package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadingSingularValue(t *testing.T) {
	tests := []struct {
		name     string
		x        []float64
		nr, nc   int
		expected float64
	}{
		{"Diagonal", []float64{3, 0, 0, 0, 2, 0, 0, 0, 1}, 3, 3, 3},
		{"Wide", []float64{3, 0, 0, 0, 2, 0}, 2, 3, 3},
		{"Tall", []float64{0, 2, 0, 0, 3, 0}, 3, 2, 3},
		{"Zero", []float64{0, 0, 0, 0}, 2, 2, 0},
		{"Single", []float64{-7}, 1, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LeadingSingularValue(tt.x, tt.nr, tt.nc, nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, tol)
		})
	}
}

func TestLeadingSingularValueRankOne(t *testing.T) {
	// Rank-1 matrix: the leading singular value carries the whole
	// Frobenius norm, so σ₁² equals the sum of squares exactly.
	x := []float64{
		3, 4,
		6, 8,
	}
	sv, err := LeadingSingularValue(x, 2, 2, nil)
	require.NoError(t, err)
	assert.InDelta(t, SumSquares(x), sv*sv, tol)
}

func TestLeadingSingularValueBoundedByFrobenius(t *testing.T) {
	tests := []struct {
		name   string
		x      []float64
		nr, nc int
	}{
		{"Square", []float64{
			1, -2, 0.5,
			3, 4, -1,
			0, 2, 5,
		}, 3, 3},
		{"Tall", []float64{
			2, -1, 3,
			0, 4, 1,
			-2, 5, 0,
			1, 1, -3,
		}, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv, err := LeadingSingularValue(tt.x, tt.nr, tt.nc, nil)
			require.NoError(t, err)
			assert.Greater(t, sv, 0.0)
			assert.LessOrEqual(t, sv*sv, SumSquares(tt.x)+tol)
		})
	}
}

func TestLeadingSingularValueDestructiveCopy(t *testing.T) {
	x := []float64{3, 0, 0, 2}
	orig := append([]float64(nil), x...)
	_, err := LeadingSingularValue(x, 2, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, orig, x, "input must survive the decomposition")
}

func TestLeadingSingularValueScratchReuse(t *testing.T) {
	var sc SVDScratch

	sv, err := LeadingSingularValue([]float64{3, 0, 0, 2}, 2, 2, &sc)
	require.NoError(t, err)
	assert.InDelta(t, 3, sv, tol)

	// Larger problem through the same scratch forces regrowth.
	sv, err = LeadingSingularValue([]float64{5, 0, 0, 0, 1, 0, 0, 0, 2}, 3, 3, &sc)
	require.NoError(t, err)
	assert.InDelta(t, 5, sv, tol)

	// Smaller again, reusing the grown buffers.
	sv, err = LeadingSingularValue([]float64{math.Pi}, 1, 1, &sc)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, sv, tol)
}

func TestLeadingSingularValueErrors(t *testing.T) {
	_, err := LeadingSingularValue(nil, 0, 3, nil)
	require.ErrorIs(t, err, ErrEmptyMatrix)

	var dim *ErrDimensionMismatch
	_, err = LeadingSingularValue([]float64{1, 2}, 2, 2, nil)
	require.ErrorAs(t, err, &dim)
}
