package port

import "context"

// ArtifactStore хранилище diff-артефактов
type ArtifactStore interface {
	// Put сохраняет данные под ключом и возвращает адрес в хранилище
	Put(ctx context.Context, key string, data []byte) (string, error)

	// Get читает данные по адресу, который вернул Put
	Get(ctx context.Context, url string) ([]byte, error)
}
