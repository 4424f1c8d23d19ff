package handlers

import (
	"time"

	"github.com/afercon/delivery-notifier/internal/domain"
)

// NotificationDTO is the wire shape of one inbox entry.
type NotificationDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	DeliveryID string    `json:"delivery_id"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

func toNotificationDTO(rec domain.NotificationRecord) NotificationDTO {
	return NotificationDTO{
		ID:         rec.ID,
		Title:      rec.Title,
		Body:       rec.Body,
		DeliveryID: rec.DeliveryID,
		CreatedAt:  rec.CreatedAt,
		IsRead:     rec.IsRead,
	}
}

func toNotificationDTOs(recs []domain.NotificationRecord) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toNotificationDTO(rec))
	}
	return out
}
