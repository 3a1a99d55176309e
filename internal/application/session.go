package app

import (
	"context"

	"github.com/pkg/errors"

	"screen-match/internal/domain/entity"
	"screen-match/internal/domain/port"
)

var (
	ErrNoReference = errors.New("reference screenshot is not captured")
	ErrNoCandidate = errors.New("candidate screenshot is not captured")
)

// SessionService ведёт сценарий "сняли эталон, сняли кандидата, сравнили".
type SessionService struct {
	repo        port.SessionRepository
	comparisons *ComparisonService
}

func NewSessionService(repo port.SessionRepository, comparisons *ComparisonService) *SessionService {
	return &SessionService{repo: repo, comparisons: comparisons}
}

func (s *SessionService) Get(ctx context.Context, id string) (*entity.Session, error) {
	return s.repo.Get(ctx, id)
}

// Begin начинает сессию заново.
func (s *SessionService) Begin(ctx context.Context, id string) (*entity.Session, error) {
	return s.update(ctx, id, func(session *entity.Session) error {
		session.Reset()
		return nil
	})
}

// AttachReference запоминает эталонный скриншот и ждёт кандидата.
func (s *SessionService) AttachReference(ctx context.Context, id, path string) (*entity.Session, error) {
	return s.update(ctx, id, func(session *entity.Session) error {
		session.ReferencePath = path
		session.CandidatePath = ""
		session.Result = nil
		session.SetState(entity.StateAwaitingCandidate)
		return nil
	})
}

// AttachCandidate запоминает скриншот для сравнения с эталоном.
func (s *SessionService) AttachCandidate(ctx context.Context, id, path string) (*entity.Session, error) {
	return s.update(ctx, id, func(session *entity.Session) error {
		if session.ReferencePath == "" {
			return ErrNoReference
		}
		session.CandidatePath = path
		session.Result = nil
		session.SetState(entity.StateAwaitingCandidate)
		return nil
	})
}

// Compare сравнивает эталон с кандидатом и проверяет диапазон. Результат
// сохраняется в сессии, даже если он вне диапазона.
func (s *SessionService) Compare(ctx context.Context, id string, method entity.Method, rng entity.Range) (entity.ComparisonResult, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return entity.ComparisonResult{}, err
	}
	switch {
	case session.ReferencePath == "":
		return entity.ComparisonResult{}, ErrNoReference
	case session.CandidatePath == "":
		return entity.ComparisonResult{}, ErrNoCandidate
	}

	res, assertErr := s.comparisons.Assert(ctx, method, session.ReferencePath, session.CandidatePath, rng)
	if assertErr != nil && !errors.Is(assertErr, entity.ErrOutOfRange) {
		return entity.ComparisonResult{}, assertErr
	}

	session.Result = &res
	session.SetState(entity.StateCompared)
	if err := s.repo.Save(ctx, session); err != nil {
		return entity.ComparisonResult{}, err
	}
	return res, assertErr
}

// Reset удаляет сессию.
func (s *SessionService) Reset(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *SessionService) update(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
