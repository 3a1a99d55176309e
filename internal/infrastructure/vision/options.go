package vision

import "screen-match/internal/domain/entity"

const (
	defaultHueBins         = 50
	defaultSaturationBins  = 60
	defaultAchromaticShare = 0.9
)

// Options настройки движка сравнения.
type Options struct {
	Resize        entity.ResizePolicy
	Interpolation entity.Interpolation
	Correlation   entity.CorrelationPolicy

	HueBins        int // число корзин по тону, диапазон [0, 180)
	SaturationBins int // число корзин по насыщенности, диапазон [0, 256)

	// AchromaticShare доля пикселей в нулевой корзине насыщенности у обоих
	// изображений, начиная с которой сравниваются гистограммы яркости. 0 отключает.
	AchromaticShare float64
}

// DefaultOptions возвращает настройки, совпадающие с исходным поведением тестов.
func DefaultOptions() Options {
	return Options{
		Resize:          entity.ResizeSecondToFirst,
		Interpolation:   entity.InterpolationLinear,
		Correlation:     entity.CorrelationClamp,
		HueBins:         defaultHueBins,
		SaturationBins:  defaultSaturationBins,
		AchromaticShare: defaultAchromaticShare,
	}
}

// withDefaults подставляет значения по умолчанию для незаданных полей.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Resize == "" {
		o.Resize = d.Resize
	}
	if o.Interpolation == "" {
		o.Interpolation = d.Interpolation
	}
	if o.Correlation == "" {
		o.Correlation = d.Correlation
	}
	if o.HueBins <= 0 {
		o.HueBins = d.HueBins
	}
	if o.SaturationBins <= 0 {
		o.SaturationBins = d.SaturationBins
	}
	if o.AchromaticShare < 0 {
		o.AchromaticShare = 0
	}
	return o
}
