package inbox

import (
	"context"
	"strings"
	"time"

	"github.com/afercon/delivery-notifier/internal/apperr"
	"github.com/afercon/delivery-notifier/internal/domain"
)

// Service exposes the per-user notification inbox to the HTTP layer.
type Service struct {
	repo             inboxRepository
	operationTimeout time.Duration
}

// NewService creates and configures an inbox Service.
func NewService(r inboxRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// List returns a user's notifications, newest first, with optional pagination.
func (s *Service) List(ctx context.Context, userID string, limit, offset *int) ([]domain.NotificationRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.ErrInvalid
	}
	if limit != nil && *limit < 0 {
		return nil, apperr.ErrInvalid
	}
	if offset != nil && *offset < 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByRecipient(ctx, userID, limit, offset)
}

// MarkRead marks a single notification as read.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}
