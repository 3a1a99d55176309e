//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"
	"os"

	"gocv.io/x/gocv"

	"screen-match/internal/domain/entity"
)

// Raster владеет декодированным буфером пикселей. Закрывать через Close.
type Raster struct {
	mat   gocv.Mat
	space entity.ColorSpace
}

// readRaster декодирует файл в BGR-буфер. Пустой результат считается отказом
// загрузки. Вызывается только после EnsureEngine.
func readRaster(path string) (*Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, entity.NewLoadError(path, err)
	}
	mat, err := decodeToMat(data)
	if err != nil {
		return nil, entity.NewLoadError(path, err)
	}
	return &Raster{mat: mat, space: entity.ColorSpaceBGR}, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.Mat{}, errors.New("file is empty")
	}
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, err
	}
	if mat.Empty() || mat.Rows() == 0 || mat.Cols() == 0 {
		mat.Close()
		return gocv.Mat{}, errors.New("failed to decode image")
	}
	return mat, nil
}

func (r *Raster) Width() int                    { return r.mat.Cols() }
func (r *Raster) Height() int                   { return r.mat.Rows() }
func (r *Raster) Channels() int                 { return r.mat.Channels() }
func (r *Raster) ColorSpace() entity.ColorSpace { return r.space }

// Size возвращает размеры как image.Point (X ширина, Y высота).
func (r *Raster) Size() image.Point {
	return image.Pt(r.Width(), r.Height())
}

// Close освобождает нативный буфер.
func (r *Raster) Close() error {
	return r.mat.Close()
}

// convert возвращает новый растр в другом цветовом пространстве.
func (r *Raster) convert(space entity.ColorSpace) *Raster {
	dst := gocv.NewMat()
	switch {
	case r.space == space:
		r.mat.CopyTo(&dst)
	case r.space == entity.ColorSpaceBGR && space == entity.ColorSpaceGray:
		gocv.CvtColor(r.mat, &dst, gocv.ColorBGRToGray)
	case r.space == entity.ColorSpaceBGR && space == entity.ColorSpaceHSV:
		gocv.CvtColor(r.mat, &dst, gocv.ColorBGRToHSV)
	case r.space == entity.ColorSpaceGray && space == entity.ColorSpaceBGR:
		gocv.CvtColor(r.mat, &dst, gocv.ColorGrayToBGR)
	case r.space == entity.ColorSpaceHSV && space == entity.ColorSpaceBGR:
		gocv.CvtColor(r.mat, &dst, gocv.ColorHSVToBGR)
	default:
		// HSV <-> Gray идёт через BGR
		bgr := r.convert(entity.ColorSpaceBGR)
		defer bgr.Close()
		return bgr.convert(space)
	}
	return &Raster{mat: dst, space: space}
}

// resize заменяет буфер растра отмасштабированной копией.
func (r *Raster) resize(size image.Point, interp entity.Interpolation) {
	dst := gocv.NewMat()
	gocv.Resize(r.mat, &dst, size, 0, 0, interpolationFlag(interp))
	r.mat.Close()
	r.mat = dst
}

func interpolationFlag(interp entity.Interpolation) gocv.InterpolationFlags {
	switch interp {
	case entity.InterpolationNearest:
		return gocv.InterpolationNearestNeighbor
	case entity.InterpolationArea:
		return gocv.InterpolationArea
	default:
		return gocv.InterpolationLinear
	}
}
