package port

import "screen-match/internal/domain/entity"

// ResultRecorder учитывает результаты и отказы сравнений
type ResultRecorder interface {
	Observe(method entity.Method, result entity.ComparisonResult, err error)
}
