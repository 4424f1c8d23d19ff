package inbox

import (
	"context"

	"github.com/afercon/delivery-notifier/internal/domain"
)

// inboxRepository defines storage operations required by the business layer.
type inboxRepository interface {
	ListByRecipient(ctx context.Context, userID string, limit, offset *int) ([]domain.NotificationRecord, error)
	MarkRead(ctx context.Context, id string) (bool, error)
}
