package handlers

import (
	"context"

	"github.com/afercon/delivery-notifier/internal/domain"
	"github.com/afercon/delivery-notifier/internal/service/inbox"
)

// InboxUsecase abstracts the inbox operations exposed over HTTP.
type InboxUsecase interface {
	List(ctx context.Context, userID string, limit, offset *int) ([]domain.NotificationRecord, error)
	MarkRead(ctx context.Context, id string) error
}

// NewInboxUsecase adapts the inbox service to the handler contract.
func NewInboxUsecase(s *inbox.Service) InboxUsecase { return s }
