//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"github.com/go-logr/logr"

	"screen-match/internal/domain/entity"
	"screen-match/internal/domain/port"
)

var errNoGoCV = &entity.CompareError{
	Op:   "engine",
	Kind: entity.ErrEngineUnavailable,
	Err:  errors.New("gocv build tag is not enabled"),
}

// EnsureEngine в сборке без OpenCV всегда сообщает о недоступности движка.
func EnsureEngine() error {
	return errNoGoCV
}

// GoCVComparer заглушка движка для сборки без тега gocv.
type GoCVComparer struct {
	opts Options
	log  logr.Logger
}

// NewGoCVComparer создаёт движок-заглушку (без OpenCV).
func NewGoCVComparer(opts Options, log logr.Logger) *GoCVComparer {
	return &GoCVComparer{
		opts: opts.withDefaults(),
		log:  log.WithName("vision"),
	}
}

// PixelSimilarity возвращает ошибку, если сборка без тега gocv.
func (c *GoCVComparer) PixelSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	return entity.ComparisonResult{}, errNoGoCV
}

// HistogramSimilarity возвращает ошибку, если сборка без тега gocv.
func (c *GoCVComparer) HistogramSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	return entity.ComparisonResult{}, errNoGoCV
}

// RobustSimilarity возвращает ошибку, если сборка без тега gocv.
func (c *GoCVComparer) RobustSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	return entity.ComparisonResult{}, errNoGoCV
}

// SaveComparisonReport возвращает ошибку, если сборка без тега gocv.
func (c *GoCVComparer) SaveComparisonReport(ctx context.Context, pathA, pathB, outputPath string) (*entity.ComparisonReport, error) {
	return nil, errNoGoCV
}

var _ port.ImageComparer = (*GoCVComparer)(nil)
