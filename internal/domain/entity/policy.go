package entity

// ResizePolicy определяет, какое изображение подгоняется под размер другого.
// Первый аргумент сравнения по умолчанию считается эталоном размера.
type ResizePolicy string

const (
	ResizeSecondToFirst ResizePolicy = "second_to_first"
	ResizeFirstToSecond ResizePolicy = "first_to_second"
	RejectMismatch      ResizePolicy = "reject"
)

// ParseResizePolicy разбирает политику выравнивания, пустая строка даёт значение по умолчанию.
func ParseResizePolicy(s string) (ResizePolicy, error) {
	switch ResizePolicy(s) {
	case "":
		return ResizeSecondToFirst, nil
	case ResizeSecondToFirst, ResizeFirstToSecond, RejectMismatch:
		return ResizePolicy(s), nil
	}
	return "", &ParseError{Field: "resize policy", Value: s}
}

// Interpolation способ ресэмплинга при выравнивании
type Interpolation string

const (
	InterpolationNearest Interpolation = "nearest"
	InterpolationLinear  Interpolation = "linear"
	InterpolationArea    Interpolation = "area"
)

// ParseInterpolation разбирает способ интерполяции.
func ParseInterpolation(s string) (Interpolation, error) {
	switch Interpolation(s) {
	case "":
		return InterpolationLinear, nil
	case InterpolationNearest, InterpolationLinear, InterpolationArea:
		return Interpolation(s), nil
	}
	return "", &ParseError{Field: "interpolation", Value: s}
}

// CorrelationPolicy что делать с отрицательной корреляцией гистограмм
type CorrelationPolicy string

const (
	CorrelationClamp  CorrelationPolicy = "clamp"  // сообщаем 0, знак сохраняется в Raw
	CorrelationReject CorrelationPolicy = "reject" // возвращаем ErrNegativeCorrelation
)

// ParseCorrelationPolicy разбирает политику для отрицательной корреляции.
func ParseCorrelationPolicy(s string) (CorrelationPolicy, error) {
	switch CorrelationPolicy(s) {
	case "":
		return CorrelationClamp, nil
	case CorrelationClamp, CorrelationReject:
		return CorrelationPolicy(s), nil
	}
	return "", &ParseError{Field: "correlation policy", Value: s}
}
