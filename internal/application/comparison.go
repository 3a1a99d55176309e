package app

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"screen-match/internal/domain/entity"
	"screen-match/internal/domain/port"
)

// ComparisonService сравнивает скриншоты, проверяет пороги и публикует отчёты.
type ComparisonService struct {
	comparer port.ImageComparer
	store    port.ArtifactStore
	notifier port.ReportNotifier
	recorder port.ResultRecorder
	log      logr.Logger
}

// NewComparisonService создаёт сервис. store, notifier и recorder могут быть nil.
func NewComparisonService(
	comparer port.ImageComparer,
	store port.ArtifactStore,
	notifier port.ReportNotifier,
	recorder port.ResultRecorder,
	log logr.Logger,
) *ComparisonService {
	return &ComparisonService{
		comparer: comparer,
		store:    store,
		notifier: notifier,
		recorder: recorder,
		log:      log.WithName("comparison"),
	}
}

// Compare запускает сравнение выбранным методом.
func (s *ComparisonService) Compare(ctx context.Context, method entity.Method, pathA, pathB string) (entity.ComparisonResult, error) {
	if s.comparer == nil {
		return entity.ComparisonResult{}, errors.New("comparer is not configured")
	}

	var (
		res entity.ComparisonResult
		err error
	)
	switch method {
	case entity.MethodPixel:
		res, err = s.comparer.PixelSimilarity(ctx, pathA, pathB)
	case entity.MethodHistogram:
		res, err = s.comparer.HistogramSimilarity(ctx, pathA, pathB)
	case entity.MethodRobust:
		res, err = s.comparer.RobustSimilarity(ctx, pathA, pathB)
	default:
		return entity.ComparisonResult{}, &entity.ParseError{Field: "method", Value: string(method)}
	}

	s.observe(method, res, err)
	if err != nil {
		s.log.Error(err, "comparison failed", "method", method, "a", pathA, "b", pathB)
		return entity.ComparisonResult{}, err
	}
	s.log.Info("comparison", "method", method, "a", pathA, "b", pathB, "similarity", res.Similarity)
	return res, nil
}

// Assert сравнивает и проверяет, что сходство попало в диапазон. Результат
// возвращается и при выходе за диапазон, вместе с ErrOutOfRange.
func (s *ComparisonService) Assert(ctx context.Context, method entity.Method, pathA, pathB string, rng entity.Range) (entity.ComparisonResult, error) {
	res, err := s.Compare(ctx, method, pathA, pathB)
	if err != nil {
		return entity.ComparisonResult{}, err
	}
	if err := rng.Check(res); err != nil {
		s.log.Info("similarity out of range", "method", method, "similarity", res.Similarity, "range", rng.String())
		return res, err
	}
	return res, nil
}

// Report сохраняет diff-изображение, копирует его в хранилище артефактов и
// оповещает. Публикация и оповещение не влияют на результат.
func (s *ComparisonService) Report(ctx context.Context, label, pathA, pathB, outputPath string) (*entity.ComparisonReport, error) {
	if s.comparer == nil {
		return nil, errors.New("comparer is not configured")
	}

	report, err := s.comparer.SaveComparisonReport(ctx, pathA, pathB, outputPath)
	if err != nil {
		s.observe(entity.MethodPixel, entity.ComparisonResult{}, err)
		s.log.Error(err, "comparison report failed", "a", pathA, "b", pathB, "out", outputPath)
		return nil, err
	}
	s.observe(entity.MethodPixel, report.Result, nil)
	s.log.Info("comparison report saved", "path", report.DiffPath, "similarity", report.Result.Similarity)

	if s.store != nil {
		if url, err := s.publish(ctx, label, report.DiffPath); err != nil {
			s.log.Error(err, "could not publish comparison report", "path", report.DiffPath)
		} else {
			report.ArtifactURL = url
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyReport(ctx, label, report); err != nil {
			s.log.Error(err, "could not send comparison report", "label", label)
		}
	}
	return report, nil
}

// Breakdown считает все три оценки и, если задан outputPath, строит отчёт.
func (s *ComparisonService) Breakdown(ctx context.Context, label, pathA, pathB, outputPath string) (*entity.Breakdown, error) {
	pixel, err := s.Compare(ctx, entity.MethodPixel, pathA, pathB)
	if err != nil {
		return nil, err
	}
	hist, err := s.Compare(ctx, entity.MethodHistogram, pathA, pathB)
	if err != nil {
		return nil, err
	}

	out := &entity.Breakdown{
		Pixel:     pixel,
		Histogram: hist,
		Robust:    entity.Max(pixel, hist),
	}
	s.log.Info("detailed comparison", "pixel", pixel.Similarity, "histogram", hist.Similarity, "robust", out.Robust.Similarity)

	if outputPath != "" {
		report, err := s.Report(ctx, label, pathA, pathB, outputPath)
		if err != nil {
			return nil, err
		}
		out.Report = report
	}
	return out, nil
}

func (s *ComparisonService) publish(ctx context.Context, label, diffPath string) (string, error) {
	data, err := os.ReadFile(diffPath)
	if err != nil {
		return "", errors.Wrap(err, "read diff")
	}
	key, err := artifactKey(label, diffPath)
	if err != nil {
		return "", err
	}
	return s.store.Put(ctx, key, data)
}

// artifactKey ключ diff-артефакта в хранилище: reports/<label>/<файл>. Метка
// (в пакетном режиме имя пары) разводит одноимённые отчёты. Без метки ключом
// служит абсолютный путь diff-файла.
func artifactKey(label, diffPath string) (string, error) {
	base := filepath.Base(diffPath)
	label = strings.Trim(labelReplacer.Replace(label), ".")
	if label != "" {
		return path.Join("reports", label, base), nil
	}

	abs, err := filepath.Abs(diffPath)
	if err != nil {
		return "", errors.Wrap(err, "resolve diff path")
	}
	return path.Join("reports", strings.TrimLeft(filepath.ToSlash(abs), "/")), nil
}

var labelReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_")

func (s *ComparisonService) observe(method entity.Method, res entity.ComparisonResult, err error) {
	if s.recorder != nil {
		s.recorder.Observe(method, res, err)
	}
}
