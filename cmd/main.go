package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"screen-match/config"
	telegram "screen-match/internal/api"
	"screen-match/internal/container"
	"screen-match/internal/domain/port"
	"screen-match/internal/infrastructure/metrics"
	"screen-match/internal/infrastructure/storage"
	"screen-match/internal/infrastructure/vision"
)

// rootEnv общее окружение всех команд.
type rootEnv struct {
	cfg       *config.Config
	log       logr.Logger
	recorder  *metrics.Recorder
	container *container.Container
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	env := &rootEnv{log: logr.Discard()}

	err := rootCmd(env).ExecuteContext(ctx)
	env.pushMetrics(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func rootCmd(env *rootEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen-match",
		Short: "Compare UI screenshots by pixels and colour histograms",
		Long: `
Compares two screenshots of the same UI element, for example a search-result
thumbnail and the image on the product page, and reports a similarity
percentage from 0 to 100.
`,
		SilenceUsage:      true,
		PersistentPreRunE: env.setup,
	}

	cmd.AddCommand(
		compareCmd(env),
		reportCmd(env),
		breakdownCmd(env),
		batchCmd(env),
	)
	return cmd
}

func (e *rootEnv) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	e.cfg = cfg

	stdr.SetVerbosity(cfg.LogVerbosity)
	e.log = stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("screen-match")

	ctx := cmd.Context()
	if err := vision.EnsureEngine(); err != nil {
		return err
	}
	comparer := vision.NewGoCVComparer(vision.Options{
		Resize:          cfg.ResizePolicy,
		Interpolation:   cfg.Interpolation,
		Correlation:     cfg.Correlation,
		HueBins:         cfg.HueBins,
		SaturationBins:  cfg.SaturationBins,
		AchromaticShare: cfg.AchromaticShare,
	}, e.log)

	store, err := newArtifactStore(ctx, cfg)
	if err != nil {
		return err
	}

	var notifier port.ReportNotifier
	if cfg.TelegramToken != "" {
		n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, e.log)
		if err != nil {
			return errors.Wrap(err, "failed to create telegram notifier")
		}
		notifier = n
	}

	e.recorder = metrics.NewRecorder()
	e.container = container.New(container.Deps{
		Comparer: comparer,
		Store:    store,
		Notifier: notifier,
		Recorder: e.recorder,
		Workers:  cfg.Workers,
		Log:      e.log,
	})
	return nil
}

func newArtifactStore(ctx context.Context, cfg *config.Config) (port.ArtifactStore, error) {
	switch cfg.ArtifactBackend {
	case config.BackendFile:
		return storage.NewFileStorage(storage.FileConfig{Directory: cfg.ArtifactDir}), nil
	case config.BackendS3:
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			Endpoint: cfg.S3Endpoint,
		})
	default:
		return nil, nil
	}
}

// pushMetrics отправляет метрики прогона, если настроен Pushgateway.
func (e *rootEnv) pushMetrics(ctx context.Context) {
	if e.cfg == nil || e.recorder == nil || e.cfg.PushgatewayURL == "" {
		return
	}
	if err := e.recorder.Push(ctx, e.cfg.PushgatewayURL, e.cfg.MetricsJob); err != nil {
		e.log.Error(err, "failed to push metrics", "url", e.cfg.PushgatewayURL)
	}
}
