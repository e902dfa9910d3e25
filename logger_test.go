package vegan_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vegan "github.com/MichaelChirico/vegan"
)

func TestLoggerFieldHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := vegan.NewLogger(slog.NewJSONHandler(&buf, nil))

	logger.WithPermutations(999).WithDims(8, 3).Info("batch scheduled")

	logOutput := buf.String()
	require.Contains(t, logOutput, `"permutations":999`)
	require.Contains(t, logOutput, `"rows":8`)
	require.Contains(t, logOutput, `"cols":3`)
}

func TestLogBatch(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	logger := vegan.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	logger.LogBatch(ctx, 99, 4, time.Millisecond, nil)
	require.Contains(t, buf.String(), "permutation batch completed")
	require.Contains(t, buf.String(), `"permutations":99`)

	buf.Reset()
	logger.LogBatch(ctx, 99, 4, time.Millisecond, errors.New("boom"))
	require.Contains(t, buf.String(), "permutation batch failed")
	require.Contains(t, buf.String(), `"error":"boom"`)
}
