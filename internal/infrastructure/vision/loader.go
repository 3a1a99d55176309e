//go:build gocv
// +build gocv

package vision

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"screen-match/internal/domain/entity"
)

// loadPair декодирует оба файла. Если не загрузился ни один, возвращаются обе причины.
func loadPair(pathA, pathB string) (*Raster, *Raster, error) {
	a, errA := readRaster(pathA)
	b, errB := readRaster(pathB)

	switch {
	case errA != nil && errB != nil:
		var result *multierror.Error
		result = multierror.Append(result, errA, errB)
		return nil, nil, result
	case errA != nil:
		b.Close()
		return nil, nil, errA
	case errB != nil:
		a.Close()
		return nil, nil, errB
	}
	return a, b, nil
}

// align приводит растры к общему размеру согласно политике. Подгоняемый растр
// меняется на месте, исходные файлы не трогаются.
func align(a, b *Raster, opts Options) error {
	if a.Size() == b.Size() {
		return nil
	}

	switch opts.Resize {
	case entity.RejectMismatch:
		return &entity.CompareError{
			Op:   "align",
			Kind: entity.ErrDimensionMismatch,
			Err:  fmt.Errorf("%dx%d vs %dx%d", a.Width(), a.Height(), b.Width(), b.Height()),
		}
	case entity.ResizeFirstToSecond:
		a.resize(b.Size(), opts.Interpolation)
	default:
		b.resize(a.Size(), opts.Interpolation)
	}
	return nil
}

// LoadAndAlign загружает два изображения и выравнивает их размеры. По умолчанию
// эталоном размера служит первое изображение. Оба растра нужно закрыть.
func (c *GoCVComparer) LoadAndAlign(pathA, pathB string) (*Raster, *Raster, error) {
	if err := EnsureEngine(); err != nil {
		return nil, nil, err
	}

	a, b, err := loadPair(pathA, pathB)
	if err != nil {
		return nil, nil, err
	}
	if err := align(a, b, c.opts); err != nil {
		a.Close()
		b.Close()
		return nil, nil, err
	}
	return a, b, nil
}
