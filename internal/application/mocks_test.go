package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"screen-match/internal/domain/entity"
)

type mockComparer struct {
	mock.Mock
}

func (m *mockComparer) PixelSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	args := m.Called(ctx, pathA, pathB)
	return args.Get(0).(entity.ComparisonResult), args.Error(1)
}

func (m *mockComparer) HistogramSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	args := m.Called(ctx, pathA, pathB)
	return args.Get(0).(entity.ComparisonResult), args.Error(1)
}

func (m *mockComparer) RobustSimilarity(ctx context.Context, pathA, pathB string) (entity.ComparisonResult, error) {
	args := m.Called(ctx, pathA, pathB)
	return args.Get(0).(entity.ComparisonResult), args.Error(1)
}

func (m *mockComparer) SaveComparisonReport(ctx context.Context, pathA, pathB, outputPath string) (*entity.ComparisonReport, error) {
	args := m.Called(ctx, pathA, pathB, outputPath)
	report, _ := args.Get(0).(*entity.ComparisonReport)
	return report, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyReport(ctx context.Context, label string, report *entity.ComparisonReport) error {
	return m.Called(ctx, label, report).Error(0)
}

type recordedObservation struct {
	method entity.Method
	result entity.ComparisonResult
	err    error
}

type fakeRecorder struct {
	observations []recordedObservation
}

func (f *fakeRecorder) Observe(method entity.Method, result entity.ComparisonResult, err error) {
	f.observations = append(f.observations, recordedObservation{method, result, err})
}

func result(method entity.Method, v float64) entity.ComparisonResult {
	return entity.NewComparisonResult(method, v)
}
