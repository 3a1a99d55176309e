package port

import (
	"context"

	"screen-match/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий захвата
type SessionRepository interface {
	// Get возвращает сессию по ID, создаёт новую если не найдена
	Get(ctx context.Context, id string) (*entity.Session, error)

	// Save сохраняет сессию
	Save(ctx context.Context, session *entity.Session) error

	// Delete удаляет сессию
	Delete(ctx context.Context, id string) error
}
