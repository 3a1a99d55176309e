package port

import (
	"context"

	"screen-match/internal/domain/entity"
)

// ImageComparer интерфейс движка сравнения изображений
type ImageComparer interface {
	// PixelSimilarity строгое попиксельное сравнение в оттенках серого
	PixelSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error)

	// HistogramSimilarity корреляция H×S гистограмм, не зависит от размера
	HistogramSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error)

	// RobustSimilarity максимум из попиксельной и гистограммной оценок
	RobustSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error)

	// SaveComparisonReport сохраняет цветное diff-изображение и возвращает процент совпадения
	SaveComparisonReport(ctx context.Context, pathA, pathB, outputPath string) (*entity.ComparisonReport, error)
}
