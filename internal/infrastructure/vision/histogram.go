//go:build gocv
// +build gocv

package vision

import (
	"fmt"

	"gocv.io/x/gocv"

	"screen-match/internal/domain/entity"
)

const (
	hueRange        = 180
	saturationRange = 256
	valueRange      = 256
)

// HistogramSimilarityOf сравнивает распределения цвета двух растров через
// корреляцию H×S гистограмм. Размеры растров могут различаться.
func (c *GoCVComparer) HistogramSimilarityOf(a, b *Raster) (entity.ComparisonResult, error) {
	hsvA := a.convert(entity.ColorSpaceHSV)
	defer hsvA.Close()
	hsvB := b.convert(entity.ColorSpaceHSV)
	defer hsvB.Close()

	histA := c.hueSaturationHistogram(hsvA)
	defer histA.Close()
	histB := c.hueSaturationHistogram(hsvB)
	defer histB.Close()

	threshold := c.opts.AchromaticShare
	if threshold > 0 &&
		achromaticShare(histA, hsvA) >= threshold &&
		achromaticShare(histB, hsvB) >= threshold {
		// Тон и насыщенность у серых картинок не несут информации, сравниваем яркость.
		valA := c.valueHistogram(hsvA)
		defer valA.Close()
		valB := c.valueHistogram(hsvB)
		defer valB.Close()
		return c.correlate(valA, valB)
	}

	return c.correlate(histA, histB)
}

// correlate нормирует гистограммы в [0, 1] и переводит корреляцию в проценты.
func (c *GoCVComparer) correlate(histA, histB gocv.Mat) (entity.ComparisonResult, error) {
	normA := gocv.NewMat()
	defer normA.Close()
	gocv.Normalize(histA, &normA, 0, 1, gocv.NormMinMax)

	normB := gocv.NewMat()
	defer normB.Close()
	gocv.Normalize(histB, &normB, 0, 1, gocv.NormMinMax)

	correlation := float64(gocv.CompareHist(normA, normB, gocv.HistCmpCorrel))
	raw := correlation * 100
	if raw < 0 && c.opts.Correlation == entity.CorrelationReject {
		return entity.ComparisonResult{}, &entity.CompareError{
			Op:   "histogram",
			Kind: entity.ErrNegativeCorrelation,
			Err:  fmt.Errorf("correlation %.4f", correlation),
		}
	}
	return entity.NewComparisonResult(entity.MethodHistogram, raw), nil
}

// hueSaturationHistogram строит сырую (ненормированную) 2-D гистограмму тон × насыщенность.
func (c *GoCVComparer) hueSaturationHistogram(hsv *Raster) gocv.Mat {
	mask := gocv.NewMat()
	defer mask.Close()

	hist := gocv.NewMat()
	gocv.CalcHist(
		[]gocv.Mat{hsv.mat},
		[]int{0, 1},
		mask,
		&hist,
		[]int{c.opts.HueBins, c.opts.SaturationBins},
		[]float64{0, hueRange, 0, saturationRange},
		false,
	)
	return hist
}

// valueHistogram строит 1-D гистограмму яркости с тем же числом корзин, что и насыщенность.
func (c *GoCVComparer) valueHistogram(hsv *Raster) gocv.Mat {
	mask := gocv.NewMat()
	defer mask.Close()

	hist := gocv.NewMat()
	gocv.CalcHist(
		[]gocv.Mat{hsv.mat},
		[]int{2},
		mask,
		&hist,
		[]int{c.opts.SaturationBins},
		[]float64{0, valueRange},
		false,
	)
	return hist
}

// achromaticShare доля пикселей, попавших в нулевую корзину насыщенности.
func achromaticShare(hist gocv.Mat, hsv *Raster) float64 {
	total := hsv.Width() * hsv.Height()
	if total == 0 {
		return 0
	}
	var gray float64
	for h := 0; h < hist.Rows(); h++ {
		gray += float64(hist.GetFloatAt(h, 0))
	}
	return gray / float64(total)
}
