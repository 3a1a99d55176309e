//go:build gocv
// +build gocv

package vision

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"screen-match/internal/domain/entity"
)

func TestSaveComparisonReport_ColourDiff(t *testing.T) {
	c := newTestComparer(t, nil)
	a := writePNG(t, "red.png", solid(t, 40, 30, red))
	b := writePNG(t, "blue.png", solid(t, 40, 30, blue))
	out := filepath.Join(t.TempDir(), "diff.png")

	report, err := c.SaveComparisonReport(context.Background(), a, b, out)
	require.NoError(t, err)
	require.Equal(t, out, report.DiffPath)
	require.Equal(t, 40, report.Width)
	require.Equal(t, 30, report.Height)
	require.Equal(t, 0.0, report.Result.Similarity)

	written := gocv.IMRead(out, gocv.IMReadColor)
	defer written.Close()
	require.False(t, written.Empty())
	require.Equal(t, 40, written.Cols())
	require.Equal(t, 30, written.Rows())
	// BGR: |(0,0,255) - (255,0,0)| = (255,0,255)
	require.Equal(t, []uint8{255, 0, 255}, []uint8{
		written.GetUCharAt3(10, 10, 0),
		written.GetUCharAt3(10, 10, 1),
		written.GetUCharAt3(10, 10, 2),
	})
}

func TestSaveComparisonReport_Percentages(t *testing.T) {
	c := newTestComparer(t, nil)
	ctx := context.Background()
	dir := t.TempDir()

	img := gradient(t, 64, 48)
	same, err := c.SaveComparisonReport(ctx, writePNG(t, "a.png", img), writePNG(t, "b.png", img), filepath.Join(dir, "same.png"))
	require.NoError(t, err)
	require.Equal(t, 100.0, same.Result.Similarity)

	bw, err := c.SaveComparisonReport(ctx,
		writePNG(t, "black.png", solid(t, 20, 20, black)),
		writePNG(t, "white.png", solid(t, 20, 20, white)),
		filepath.Join(dir, "bw.jpg"))
	require.NoError(t, err)
	require.Equal(t, 0.0, bw.Result.Similarity)

	// разные размеры выравниваются так же, как в попиксельном сравнении
	resized, err := c.SaveComparisonReport(ctx,
		writePNG(t, "big.png", solid(t, 80, 60, red)),
		writePNG(t, "small.png", solid(t, 20, 15, red)),
		filepath.Join(dir, "resized.bmp"))
	require.NoError(t, err)
	require.Equal(t, 80, resized.Width)
	require.Equal(t, 100.0, resized.Result.Similarity)
}

func TestSaveComparisonReport_WriteFailure(t *testing.T) {
	c := newTestComparer(t, nil)
	ctx := context.Background()
	a := writePNG(t, "a.png", solid(t, 10, 10, red))
	b := writePNG(t, "b.png", solid(t, 10, 10, blue))
	dir := t.TempDir()

	for _, out := range []string{
		filepath.Join(dir, "missing", "diff.png"),
		filepath.Join(dir, "diff.gif"),
		filepath.Join(dir, "diff"),
		a + "/diff.png",
	} {
		report, err := c.SaveComparisonReport(ctx, a, b, out)
		require.ErrorIs(t, err, entity.ErrWriteFailure, out)
		require.Nil(t, report)
	}
}

func TestSaveComparisonReport_LoadFailureWins(t *testing.T) {
	c := newTestComparer(t, nil)
	ok := writePNG(t, "ok.png", solid(t, 10, 10, red))
	missing := filepath.Join(t.TempDir(), "missing.png")
	badOut := filepath.Join(t.TempDir(), "nowhere", "diff.gif")

	_, err := c.SaveComparisonReport(context.Background(), ok, missing, badOut)
	require.ErrorIs(t, err, entity.ErrLoadFailure)
	require.NotErrorIs(t, err, entity.ErrWriteFailure)
}

func TestHistogram_NegativeCorrelation(t *testing.T) {
	ctx := context.Background()
	a := writePNG(t, "red.png", solid(t, 30, 30, red))
	b := writePNG(t, "blue.png", solid(t, 30, 30, blue))

	clamped, err := newTestComparer(t, nil).HistogramSimilarity(ctx, a, b)
	require.NoError(t, err)
	require.Equal(t, 0.0, clamped.Similarity)
	require.Less(t, clamped.Raw, 0.0)
	require.True(t, clamped.Clamped())

	reject := newTestComparer(t, func(o *Options) { o.Correlation = entity.CorrelationReject })
	_, err = reject.HistogramSimilarity(ctx, a, b)
	require.ErrorIs(t, err, entity.ErrNegativeCorrelation)

	_, err = reject.RobustSimilarity(ctx, a, b)
	require.ErrorIs(t, err, entity.ErrNegativeCorrelation)

	res, err := reject.HistogramSimilarity(ctx, a, a)
	require.NoError(t, err)
	require.InDelta(t, 100.0, res.Similarity, 1e-3)
}
