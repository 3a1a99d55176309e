package port

import (
	"context"

	"screen-match/internal/domain/entity"
)

// ReportNotifier отправляет отчёты о сравнении людям
type ReportNotifier interface {
	NotifyReport(ctx context.Context, label string, report *entity.ComparisonReport) error
}
