//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"screen-match/internal/domain/entity"
)

func TestStubComparer_EngineUnavailable(t *testing.T) {
	c := NewGoCVComparer(DefaultOptions(), logr.Discard())
	ctx := context.Background()

	require.ErrorIs(t, EnsureEngine(), entity.ErrEngineUnavailable)

	_, err := c.PixelSimilarity(ctx, "a.png", "b.png")
	require.ErrorIs(t, err, entity.ErrEngineUnavailable)
	require.NotErrorIs(t, err, entity.ErrLoadFailure)

	_, err = c.HistogramSimilarity(ctx, "a.png", "b.png")
	require.ErrorIs(t, err, entity.ErrEngineUnavailable)

	_, err = c.RobustSimilarity(ctx, "a.png", "b.png")
	require.ErrorIs(t, err, entity.ErrEngineUnavailable)

	report, err := c.SaveComparisonReport(ctx, "a.png", "b.png", "diff.png")
	require.ErrorIs(t, err, entity.ErrEngineUnavailable)
	require.Nil(t, report)
}
