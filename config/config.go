package config

import (
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"screen-match/internal/domain/entity"
)

// Backend хранилища diff-артефактов
const (
	BackendNone = ""
	BackendFile = "file"
	BackendS3   = "s3"
)

type Config struct {
	ResizePolicy    entity.ResizePolicy
	Interpolation   entity.Interpolation
	Correlation     entity.CorrelationPolicy
	HueBins         int
	SaturationBins  int
	AchromaticShare float64

	Workers int // параллельность пакетного режима

	ArtifactBackend string
	ArtifactDir     string
	S3Bucket        string
	S3Prefix        string
	S3Endpoint      string

	TelegramToken  string
	TelegramChatID int64

	PushgatewayURL string
	MetricsJob     string

	LogVerbosity int
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	resize, err := entity.ParseResizePolicy(os.Getenv("SCREEN_MATCH_RESIZE_POLICY"))
	if err != nil {
		return nil, err
	}
	interp, err := entity.ParseInterpolation(os.Getenv("SCREEN_MATCH_INTERPOLATION"))
	if err != nil {
		return nil, err
	}
	correlation, err := entity.ParseCorrelationPolicy(os.Getenv("SCREEN_MATCH_CORRELATION_POLICY"))
	if err != nil {
		return nil, err
	}

	env := &envReader{}
	cfg := &Config{
		ResizePolicy:    resize,
		Interpolation:   interp,
		Correlation:     correlation,
		HueBins:         envOrDefault(env, "SCREEN_MATCH_HUE_BINS", 50),
		SaturationBins:  envOrDefault(env, "SCREEN_MATCH_SATURATION_BINS", 60),
		AchromaticShare: envOrDefault(env, "SCREEN_MATCH_ACHROMATIC_SHARE", 0.9),
		Workers:         envOrDefault(env, "SCREEN_MATCH_WORKERS", 4),
		ArtifactBackend: os.Getenv("SCREEN_MATCH_ARTIFACT_BACKEND"),
		ArtifactDir:     envOrDefault(env, "SCREEN_MATCH_ARTIFACT_DIR", "target/artifacts"),
		S3Bucket:        os.Getenv("SCREEN_MATCH_S3_BUCKET"),
		S3Prefix:        os.Getenv("SCREEN_MATCH_S3_PREFIX"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT_URL"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID:  envOrDefault(env, "TELEGRAM_CHAT_ID", int64(0)),
		PushgatewayURL:  os.Getenv("SCREEN_MATCH_PUSHGATEWAY_URL"),
		MetricsJob:      envOrDefault(env, "SCREEN_MATCH_METRICS_JOB", "screen-match"),
		LogVerbosity:    envOrDefault(env, "SCREEN_MATCH_LOG_V", 0),
	}
	if err := env.err.ErrorOrNil(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.ArtifactBackend {
	case BackendNone, BackendFile:
	case BackendS3:
		if c.S3Bucket == "" {
			return errors.New("SCREEN_MATCH_S3_BUCKET is required for the s3 artifact backend")
		}
	default:
		return errors.Errorf("unknown artifact backend %q", c.ArtifactBackend)
	}
	if c.HueBins <= 0 || c.SaturationBins <= 0 {
		return errors.Errorf("histogram bins must be positive: %dx%d", c.HueBins, c.SaturationBins)
	}
	if c.AchromaticShare < 0 || c.AchromaticShare > 1 {
		return errors.Errorf("achromatic share must be within [0, 1]: %v", c.AchromaticShare)
	}
	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive: %d", c.Workers)
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}

// envReader накапливает ошибки разбора переменных окружения
type envReader struct {
	err *multierror.Error
}

// envOrDefault возвращает значение переменной или значение по умолчанию, если
// она не задана. Нечисловое значение для числового поля считается ошибкой.
func envOrDefault[T string | int | int64 | float64](r *envReader, key string, defaultValue T) T {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}

	var (
		parsed any
		err    error
	)
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		parsed, err = strconv.Atoi(value)
	case int64:
		parsed, err = strconv.ParseInt(value, 10, 64)
	case float64:
		parsed, err = strconv.ParseFloat(value, 64)
	}
	if err != nil {
		r.err = multierror.Append(r.err, errors.Wrapf(err, "invalid %s=%q", key, value))
		return defaultValue
	}
	return parsed.(T)
}
