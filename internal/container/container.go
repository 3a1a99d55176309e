package container

import (
	"github.com/go-logr/logr"

	app "screen-match/internal/application"
	"screen-match/internal/domain/port"
	"screen-match/internal/infrastructure/storage"
)

type Container struct {
	ComparisonService *app.ComparisonService
	SessionService    *app.SessionService
	BatchService      *app.BatchService
}

// Deps внешние зависимости сервисов. Store, Notifier и Recorder могут быть nil.
type Deps struct {
	Comparer port.ImageComparer
	Sessions port.SessionRepository
	Store    port.ArtifactStore
	Notifier port.ReportNotifier
	Recorder port.ResultRecorder
	Workers  int
	Log      logr.Logger
}

func New(d Deps) *Container {
	if d.Sessions == nil {
		d.Sessions = storage.NewMemorySessionRepository()
	}

	comparisonService := app.NewComparisonService(d.Comparer, d.Store, d.Notifier, d.Recorder, d.Log)
	sessionService := app.NewSessionService(d.Sessions, comparisonService)
	batchService := app.NewBatchService(comparisonService, d.Workers, d.Log)

	return &Container{
		ComparisonService: comparisonService,
		SessionService:    sessionService,
		BatchService:      batchService,
	}
}
