package inbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/afercon/delivery-notifier/internal/apperr"
	"github.com/afercon/delivery-notifier/internal/domain"
)

type stubRepo struct {
	listFn     func(ctx context.Context, userID string, limit, offset *int) ([]domain.NotificationRecord, error)
	markReadFn func(ctx context.Context, id string) (bool, error)
}

func (s *stubRepo) ListByRecipient(ctx context.Context, userID string, limit, offset *int) ([]domain.NotificationRecord, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, userID, limit, offset)
}

func (s *stubRepo) MarkRead(ctx context.Context, id string) (bool, error) {
	if s.markReadFn == nil {
		return false, nil
	}
	return s.markReadFn(ctx, id)
}

func TestList_Success(t *testing.T) {
	t.Parallel()

	want := []domain.NotificationRecord{{ID: "n1", RecipientUserID: "user-1"}}
	repo := &stubRepo{listFn: func(_ context.Context, userID string, limit, offset *int) ([]domain.NotificationRecord, error) {
		require.Equal(t, "user-1", userID)
		return want, nil
	}}

	svc := NewService(repo, time.Second)
	got, err := svc.List(context.Background(), "user-1", nil, nil)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestList_TrimsUserID(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{listFn: func(_ context.Context, userID string, _, _ *int) ([]domain.NotificationRecord, error) {
		require.Equal(t, "user-1", userID)
		return nil, nil
	}}

	svc := NewService(repo, time.Second)
	_, err := svc.List(context.Background(), "  user-1  ", nil, nil)
	require.NoError(t, err)
}

func TestList_ValidationErrors(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubRepo{}, time.Second)
	neg := -1

	_, err := svc.List(context.Background(), "", nil, nil)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.List(context.Background(), "user-1", &neg, nil)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.List(context.Background(), "user-1", nil, &neg)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestList_AppliesTimeout(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{listFn: func(ctx context.Context, _ string, _, _ *int) ([]domain.NotificationRecord, error) {
		_, ok := ctx.Deadline()
		require.True(t, ok, "repository call must carry a deadline")
		return nil, nil
	}}

	svc := NewService(repo, time.Second)
	_, err := svc.List(context.Background(), "user-1", nil, nil)
	require.NoError(t, err)
}

func TestMarkRead_Success(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{markReadFn: func(_ context.Context, id string) (bool, error) {
		require.Equal(t, "n1", id)
		return true, nil
	}}

	svc := NewService(repo, time.Second)
	require.NoError(t, svc.MarkRead(context.Background(), "n1"))
}

func TestMarkRead_NotFound(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{markReadFn: func(_ context.Context, _ string) (bool, error) {
		return false, nil
	}}

	svc := NewService(repo, time.Second)
	require.ErrorIs(t, svc.MarkRead(context.Background(), "ghost"), apperr.ErrNotFound)
}

func TestMarkRead_EmptyID(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubRepo{}, time.Second)
	require.ErrorIs(t, svc.MarkRead(context.Background(), "   "), apperr.ErrInvalid)
}

func TestMarkRead_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("db down")
	repo := &stubRepo{markReadFn: func(_ context.Context, _ string) (bool, error) {
		return false, wantErr
	}}

	svc := NewService(repo, time.Second)
	require.ErrorIs(t, svc.MarkRead(context.Background(), "n1"), wantErr)
}
