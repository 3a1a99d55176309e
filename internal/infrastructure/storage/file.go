package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"screen-match/internal/domain/port"
)

// FileConfig настройки файлового хранилища артефактов
type FileConfig struct {
	Directory string
}

type fileStorage struct {
	config FileConfig
}

// NewFileStorage создаёт хранилище артефактов в локальном каталоге
func NewFileStorage(f FileConfig) port.ArtifactStore {
	if f.Directory == "" {
		f.Directory = "."
	}
	return &fileStorage{config: f}
}

func (a *fileStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	filePath := filepath.Join(a.config.Directory, key)

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create artifact directory")
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write artifact")
	}
	return filePath, nil
}

func (a *fileStorage) Get(ctx context.Context, url string) ([]byte, error) {
	data, err := os.ReadFile(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read artifact")
	}
	return data, nil
}
