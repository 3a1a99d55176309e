package entity

import "fmt"

// Range допустимый диапазон сходства в процентах, границы включаются.
type Range struct {
	Min float64
	Max float64
}

// FullRange принимает любой результат.
var FullRange = Range{Min: 0, Max: 100}

// Contains проверяет, попадает ли значение в диапазон.
func (r Range) Contains(similarity float64) bool {
	return similarity >= r.Min && similarity <= r.Max
}

// Check возвращает ErrOutOfRange, если результат вне диапазона.
func (r Range) Check(res ComparisonResult) error {
	if r.Contains(res.Similarity) {
		return nil
	}
	return fmt.Errorf("%w: %s %.2f%% not within %.0f-%.0f%%", ErrOutOfRange, res.Method, res.Similarity, r.Min, r.Max)
}

func (r Range) String() string {
	return fmt.Sprintf("%.0f-%.0f%%", r.Min, r.Max)
}
