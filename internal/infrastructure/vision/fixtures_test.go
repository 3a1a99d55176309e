//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var (
	red    = color.RGBA{R: 255, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	black  = color.RGBA{A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// solid создаёт однотонное изображение.
func solid(t *testing.T, w, h int, c color.RGBA) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0), h, w, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })
	return mat
}

// checkerboard рисует шахматку из клеток размером cell.
func checkerboard(t *testing.T, w, h, cell int, c1, c2 color.RGBA) gocv.Mat {
	t.Helper()
	mat := solid(t, w, h, c1)
	for y := 0; y < h; y += cell {
		for x := 0; x < w; x += cell {
			if (x/cell+y/cell)%2 == 1 {
				gocv.Rectangle(&mat, image.Rect(x, y, x+cell, y+cell), c2, -1)
			}
		}
	}
	return mat
}

// gradient рисует горизонтальные полосы с плавно меняющимся цветом.
func gradient(t *testing.T, w, h int) gocv.Mat {
	t.Helper()
	mat := solid(t, w, h, black)
	for x := 0; x < w; x += 4 {
		v := uint8(x * 255 / w)
		gocv.Rectangle(&mat, image.Rect(x, 0, x+4, h), color.RGBA{R: v, G: 255 - v, B: 128, A: 255}, -1)
	}
	return mat
}

func scaled(t *testing.T, src gocv.Mat, w, h int, interp gocv.InterpolationFlags) gocv.Mat {
	t.Helper()
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Pt(w, h), 0, 0, interp)
	t.Cleanup(func() { dst.Close() })
	return dst
}

func inverted(t *testing.T, src gocv.Mat) gocv.Mat {
	t.Helper()
	dst := gocv.NewMat()
	gocv.BitwiseNot(src, &dst)
	t.Cleanup(func() { dst.Close() })
	return dst
}

// writePNG сохраняет Mat во временный каталог теста и возвращает путь.
func writePNG(t *testing.T, name string, mat gocv.Mat) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.True(t, gocv.IMWrite(path, mat), "write %s", path)
	return path
}
