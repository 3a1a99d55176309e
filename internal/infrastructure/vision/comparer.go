//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"gocv.io/x/gocv"

	"screen-match/internal/domain/entity"
	"screen-match/internal/domain/port"
)

// GoCVComparer сравнивает скриншоты средствами OpenCV.
type GoCVComparer struct {
	opts Options
	log  logr.Logger
}

// NewGoCVComparer создаёт движок сравнения с заданными настройками.
func NewGoCVComparer(opts Options, log logr.Logger) *GoCVComparer {
	return &GoCVComparer{
		opts: opts.withDefaults(),
		log:  log.WithName("vision"),
	}
}

// PixelSimilarity выравнивает изображения и сравнивает их попиксельно.
func (c *GoCVComparer) PixelSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	_ = ctx
	a, b, err := c.LoadAndAlign(pathA, pathB)
	if err != nil {
		return entity.ComparisonResult{}, err
	}
	defer a.Close()
	defer b.Close()

	res, err := c.PixelSimilarityOf(a, b)
	if err != nil {
		return entity.ComparisonResult{}, err
	}
	c.log.V(1).Info("pixel comparison", "a", pathA, "b", pathB, "similarity", res.Similarity)
	return res, nil
}

// HistogramSimilarity сравнивает гистограммы исходных (не масштабированных) изображений.
func (c *GoCVComparer) HistogramSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	_ = ctx
	if err := EnsureEngine(); err != nil {
		return entity.ComparisonResult{}, err
	}
	a, b, err := loadPair(pathA, pathB)
	if err != nil {
		return entity.ComparisonResult{}, err
	}
	defer a.Close()
	defer b.Close()

	res, err := c.HistogramSimilarityOf(a, b)
	if err != nil {
		return entity.ComparisonResult{}, err
	}
	c.log.V(1).Info("histogram comparison", "a", pathA, "b", pathB, "similarity", res.Similarity, "raw", res.Raw)
	return res, nil
}

// RobustSimilarity берёт большую из двух оценок. Гистограмма считается по
// исходным изображениям, попиксельная оценка по выровненным.
func (c *GoCVComparer) RobustSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	_ = ctx
	if err := EnsureEngine(); err != nil {
		return entity.ComparisonResult{}, err
	}
	a, b, err := loadPair(pathA, pathB)
	if err != nil {
		return entity.ComparisonResult{}, err
	}
	defer a.Close()
	defer b.Close()

	hist, err := c.HistogramSimilarityOf(a, b)
	if err != nil {
		return entity.ComparisonResult{}, err
	}
	if err := align(a, b, c.opts); err != nil {
		return entity.ComparisonResult{}, err
	}
	pixel, err := c.PixelSimilarityOf(a, b)
	if err != nil {
		return entity.ComparisonResult{}, err
	}

	res := entity.Max(pixel, hist)
	c.log.V(1).Info("robust comparison", "a", pathA, "b", pathB,
		"pixel", pixel.Similarity, "histogram", hist.Similarity, "similarity", res.Similarity)
	return res, nil
}

// SaveComparisonReport записывает цветное изображение абсолютной разницы в
// outputPath и возвращает процент совпадения пикселей. Каталог должен существовать.
func (c *GoCVComparer) SaveComparisonReport(ctx context.Context, pathA, pathB, outputPath string) (*entity.ComparisonReport, error) {
	_ = ctx
	a, b, err := c.LoadAndAlign(pathA, pathB)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	defer b.Close()

	ext, err := checkOutputPath(outputPath)
	if err != nil {
		return nil, err
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(a.mat, b.mat, &diff)

	buf, err := gocv.IMEncode(ext, diff)
	if err != nil {
		return nil, entity.NewWriteError(outputPath, err)
	}
	defer buf.Close()
	if err := os.WriteFile(outputPath, buf.GetBytes(), 0o644); err != nil {
		return nil, entity.NewWriteError(outputPath, err)
	}

	grayDiff := gocv.NewMat()
	defer grayDiff.Close()
	gocv.CvtColor(diff, &grayDiff, gocv.ColorBGRToGray)

	res := entity.NewComparisonResult(entity.MethodPixel, matchingPercent(grayDiff))
	c.log.V(1).Info("comparison report saved", "path", outputPath, "similarity", res.Similarity)

	return &entity.ComparisonReport{
		Result:   res,
		DiffPath: outputPath,
		Width:    a.Width(),
		Height:   a.Height(),
	}, nil
}

// checkOutputPath проверяет формат и наличие каталога до кодирования.
func checkOutputPath(outputPath string) (gocv.FileExt, error) {
	var ext gocv.FileExt
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".png":
		ext = gocv.PNGFileExt
	case ".jpg", ".jpeg":
		ext = gocv.JPEGFileExt
	case ".bmp", ".tif", ".tiff":
		ext = gocv.FileExt(strings.ToLower(filepath.Ext(outputPath)))
	default:
		return "", entity.NewWriteError(outputPath, fmt.Errorf("unsupported image format %q", filepath.Ext(outputPath)))
	}

	dir := filepath.Dir(outputPath)
	info, err := os.Stat(dir)
	if err != nil {
		return "", entity.NewWriteError(outputPath, err)
	}
	if !info.IsDir() {
		return "", entity.NewWriteError(outputPath, fmt.Errorf("%s is not a directory", dir))
	}
	return ext, nil
}

// Проверка реализации интерфейса
var _ port.ImageComparer = (*GoCVComparer)(nil)
