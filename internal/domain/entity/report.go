package entity

// ComparisonReport итог построения diff-артефакта.
type ComparisonReport struct {
	Result      ComparisonResult // процент совпадения пикселей (grayscale)
	DiffPath    string           // путь к сохранённому diff-изображению
	ArtifactURL string           // адрес копии в хранилище артефактов, если она есть
	Width       int              // ширина выровненных изображений
	Height      int              // высота выровненных изображений
}

// Breakdown подробное сравнение: все три оценки и отчёт.
type Breakdown struct {
	Pixel     ComparisonResult
	Histogram ComparisonResult
	Robust    ComparisonResult
	Report    *ComparisonReport
}
