package entity

// ColorSpace цветовое пространство буфера пикселей
type ColorSpace string

const (
	ColorSpaceBGR  ColorSpace = "bgr"
	ColorSpaceGray ColorSpace = "gray"
	ColorSpaceHSV  ColorSpace = "hsv"
)

// Channels возвращает число каналов для цветового пространства.
func (c ColorSpace) Channels() int {
	if c == ColorSpaceGray {
		return 1
	}
	return 3
}
