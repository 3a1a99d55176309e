// Package metrics учитывает сравнения в Prometheus и отправляет их в Pushgateway
// после прогона тестов.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"screen-match/internal/domain/entity"
	"screen-match/internal/domain/port"
)

const namespace = "screen_match"

// Recorder набор метрик сравнений на собственном реестре.
type Recorder struct {
	registry    *prometheus.Registry
	comparisons *prometheus.CounterVec
	failures    *prometheus.CounterVec
	similarity  *prometheus.HistogramVec
}

// NewRecorder создаёт и регистрирует метрики.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Completed image comparisons by method.",
		}, []string{"method"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparison_failures_total",
			Help:      "Failed image comparisons by method and failure kind.",
		}, []string{"method", "kind"}),
		similarity: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "similarity_percent",
			Help:      "Reported similarity percentage.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}, []string{"method"}),
	}
	r.registry.MustRegister(r.comparisons, r.failures, r.similarity)
	return r
}

// Observe учитывает успешный результат или отказ.
func (r *Recorder) Observe(method entity.Method, result entity.ComparisonResult, err error) {
	if err != nil {
		r.failures.WithLabelValues(string(method), FailureKind(err)).Inc()
		return
	}
	r.comparisons.WithLabelValues(string(method)).Inc()
	r.similarity.WithLabelValues(string(method)).Observe(result.Similarity)
}

// Registry реестр для экспорта или тестов.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Push отправляет накопленные метрики в Pushgateway под именем job.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(r.registry).PushContext(ctx)
}

// FailureKind короткое имя вида отказа для меток.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, entity.ErrEngineUnavailable):
		return "engine_unavailable"
	case errors.Is(err, entity.ErrLoadFailure):
		return "load_failure"
	case errors.Is(err, entity.ErrDimensionMismatch):
		return "dimension_mismatch"
	case errors.Is(err, entity.ErrWriteFailure):
		return "write_failure"
	case errors.Is(err, entity.ErrNegativeCorrelation):
		return "negative_correlation"
	case errors.Is(err, entity.ErrOutOfRange):
		return "out_of_range"
	}
	return "other"
}

var _ port.ResultRecorder = (*Recorder)(nil)
