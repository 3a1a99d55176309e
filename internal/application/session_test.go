package app

import (
	"context"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"

	"screen-match/internal/domain/entity"
	"screen-match/internal/infrastructure/storage"
)

func newSessionService(t *testing.T, cmp *mockComparer) *SessionService {
	t.Helper()
	comparisons := NewComparisonService(cmp, nil, nil, nil, testr.New(t))
	return NewSessionService(storage.NewMemorySessionRepository(), comparisons)
}

func TestSessionService_Flow(t *testing.T) {
	cmp := &mockComparer{}
	svc := newSessionService(t, cmp)
	ctx := context.Background()

	session, err := svc.Begin(ctx, "checkout")
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingReference, session.State)

	session, err = svc.AttachReference(ctx, "checkout", "ref.png")
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingCandidate, session.State)

	_, err = svc.Compare(ctx, "checkout", entity.MethodRobust, entity.FullRange)
	require.ErrorIs(t, err, ErrNoCandidate)

	_, err = svc.AttachCandidate(ctx, "checkout", "cand.png")
	require.NoError(t, err)

	cmp.On("RobustSimilarity", ctx, "ref.png", "cand.png").Return(result(entity.MethodRobust, 64), nil)
	res, err := svc.Compare(ctx, "checkout", entity.MethodRobust, entity.Range{Min: 80, Max: 100})
	require.ErrorIs(t, err, entity.ErrOutOfRange)
	require.Equal(t, 64.0, res.Similarity)

	session, err = svc.Get(ctx, "checkout")
	require.NoError(t, err)
	require.Equal(t, entity.StateCompared, session.State)
	require.NotNil(t, session.Result)
	require.Equal(t, 64.0, session.Result.Similarity)

	require.NoError(t, svc.Reset(ctx, "checkout"))
	session, err = svc.Get(ctx, "checkout")
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingReference, session.State)
	require.Empty(t, session.ReferencePath)
}

func TestSessionService_CandidateNeedsReference(t *testing.T) {
	svc := newSessionService(t, &mockComparer{})
	ctx := context.Background()

	_, err := svc.AttachCandidate(ctx, "s", "cand.png")
	require.ErrorIs(t, err, ErrNoReference)

	_, err = svc.Compare(ctx, "s", entity.MethodPixel, entity.FullRange)
	require.ErrorIs(t, err, ErrNoReference)
}

func TestSessionService_FailedComparisonKeepsState(t *testing.T) {
	cmp := &mockComparer{}
	svc := newSessionService(t, cmp)
	ctx := context.Background()

	_, err := svc.AttachReference(ctx, "s", "ref.png")
	require.NoError(t, err)
	_, err = svc.AttachCandidate(ctx, "s", "broken.png")
	require.NoError(t, err)

	cmp.On("PixelSimilarity", ctx, "ref.png", "broken.png").
		Return(entity.ComparisonResult{}, entity.NewLoadError("broken.png", nil))
	_, err = svc.Compare(ctx, "s", entity.MethodPixel, entity.FullRange)
	require.ErrorIs(t, err, entity.ErrLoadFailure)

	session, err := svc.Get(ctx, "s")
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingCandidate, session.State)
	require.Nil(t, session.Result)
}
