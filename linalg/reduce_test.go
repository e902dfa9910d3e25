package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumSquares(t *testing.T) {
	tests := []struct {
		name     string
		x        []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, 14},
		{"Negative", []float64{-1, 2, -2}, 9},
		{"Empty", nil, 0},
		{"Single", []float64{-4}, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SumSquares(tt.x), tol)
		})
	}
}

func TestSumSquaresDiag(t *testing.T) {
	// 3×3, diagonal {1, 5, 9}.
	x := []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	assert.InDelta(t, 1+25+81, SumSquaresDiag(x, 3, 3), tol)
	assert.InDelta(t, 0, SumSquaresDiag(nil, 0, 0), tol)

	// Strided view: logical 2×2 inside a row stride of 3.
	assert.InDelta(t, 1+25, SumSquaresDiag(x, 2, 3), tol)
}

func BenchmarkSumSquares(b *testing.B) {
	x := make([]float64, 100*64)
	for i := range x {
		x[i] = float64(i%13) - 6
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		SumSquares(x)
	}
}
