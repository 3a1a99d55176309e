//go:build gocv
// +build gocv

package vision

import (
	"fmt"

	"gocv.io/x/gocv"

	"screen-match/internal/domain/entity"
)

// PixelSimilarityOf считает долю пикселей, совпавших точно после перевода в серый.
// Растры должны быть уже выровнены, размеры здесь не подгоняются.
func (c *GoCVComparer) PixelSimilarityOf(a, b *Raster) (entity.ComparisonResult, error) {
	if a.Size() != b.Size() {
		return entity.ComparisonResult{}, &entity.CompareError{
			Op:   "pixel",
			Kind: entity.ErrDimensionMismatch,
			Err:  fmt.Errorf("%dx%d vs %dx%d", a.Width(), a.Height(), b.Width(), b.Height()),
		}
	}

	grayA := a.convert(entity.ColorSpaceGray)
	defer grayA.Close()
	grayB := b.convert(entity.ColorSpaceGray)
	defer grayB.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(grayA.mat, grayB.mat, &diff)

	return entity.NewComparisonResult(entity.MethodPixel, matchingPercent(diff)), nil
}

// matchingPercent процент нулевых пикселей одноканальной разницы.
func matchingPercent(diff gocv.Mat) float64 {
	total := diff.Rows() * diff.Cols()
	if total <= 0 {
		return 0
	}
	nonZero := gocv.CountNonZero(diff)
	return float64(total-nonZero) / float64(total) * 100
}
