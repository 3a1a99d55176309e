//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"screen-match/internal/domain/entity"
)

var (
	engineOnce sync.Once
	engineErr  error
)

// EnsureEngine один раз на процесс проверяет, что OpenCV загружен и умеет
// кодировать PNG. Результат проверки запоминается, повторных попыток нет.
// Глобальных ресурсов, требующих освобождения, движок не держит.
func EnsureEngine() error {
	engineOnce.Do(func() {
		engineErr = probeEngine()
	})
	return engineErr
}

func probeEngine() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = engineError(fmt.Errorf("probe panicked: %v", r))
		}
	}()

	if gocv.OpenCVVersion() == "" {
		return engineError(errors.New("OpenCV version is empty"))
	}

	probe := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 1, 1, gocv.MatTypeCV8UC3)
	defer probe.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, probe)
	if err != nil {
		return engineError(fmt.Errorf("png encode: %w", err))
	}
	defer buf.Close()

	decoded, err := gocv.IMDecode(buf.GetBytes(), gocv.IMReadColor)
	if err != nil {
		return engineError(fmt.Errorf("png decode: %w", err))
	}
	defer decoded.Close()
	if decoded.Empty() {
		return engineError(errors.New("png round trip produced an empty image"))
	}
	return nil
}

func engineError(cause error) error {
	return &entity.CompareError{Op: "engine", Kind: entity.ErrEngineUnavailable, Err: cause}
}
