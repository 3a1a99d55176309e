package entity

import "math"

// Method способ, которым получена оценка сходства
type Method string

const (
	MethodPixel     Method = "pixel"     // попиксельное сравнение в оттенках серого
	MethodHistogram Method = "histogram" // корреляция H×S гистограмм
	MethodRobust    Method = "robust"    // максимум из двух оценок
)

// ParseMethod разбирает имя метода из конфигурации или манифеста.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodPixel, MethodHistogram, MethodRobust:
		return Method(s), nil
	case "":
		return MethodRobust, nil
	}
	return "", &ParseError{Field: "method", Value: s}
}

// ComparisonResult процент сходства двух изображений.
type ComparisonResult struct {
	Similarity float64 // значение в [0, 100]
	Raw        float64 // исходное значение до ограничения (для гистограммы может быть < 0)
	Method     Method
}

// NewComparisonResult ограничивает значение диапазоном [0, 100].
func NewComparisonResult(method Method, raw float64) ComparisonResult {
	return ComparisonResult{
		Similarity: clampPercent(raw),
		Raw:        raw,
		Method:     method,
	}
}

// Clamped сообщает, было ли значение обрезано.
func (r ComparisonResult) Clamped() bool {
	return r.Similarity != r.Raw
}

// Max возвращает результат с большим сходством, помеченный как robust.
func Max(a, b ComparisonResult) ComparisonResult {
	best := a
	if b.Similarity > a.Similarity {
		best = b
	}
	return ComparisonResult{
		Similarity: best.Similarity,
		Raw:        best.Raw,
		Method:     MethodRobust,
	}
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
