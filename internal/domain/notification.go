package domain

import "time"

// NotificationRecord - struct representing a persisted inbox entry for one recipient.
// Created once by the dispatcher; later marked read by the client app.
type NotificationRecord struct {
	ID              string
	RecipientUserID string
	Title           string
	Body            string
	DeliveryID      string // back-reference to the triggering delivery, non-owning
	CreatedAt       time.Time
	IsRead          bool
}
