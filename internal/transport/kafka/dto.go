package kafka

import (
	"fmt"
	"strings"

	"github.com/afercon/delivery-notifier/internal/domain"
	"github.com/afercon/delivery-notifier/internal/service/events"
	"github.com/afercon/delivery-notifier/internal/service/rules"
)

// Collections this consumer understands.
const (
	collectionDeliveries = "deliveries"
	collectionUsers      = "users"
)

// DocumentDTO is the loose document shape carried by change events. Which
// fields are meaningful depends on the collection.
type DocumentDTO struct {
	// deliveries
	Title    string `json:"title"`
	Status   string `json:"status"`
	UserID   string `json:"userId"`
	DriverID string `json:"driverId"`
	// users
	Name     string `json:"name"`
	IsDriver bool   `json:"isDriver"`
	FCMToken string `json:"fcmToken"`
}

// ChangeEventDTO is a data transfer object for one document mutation.
// Previous is null for creations, New is null for deletions.
type ChangeEventDTO struct {
	Collection string       `json:"collection"`
	DocumentID string       `json:"document_id"`
	Previous   *DocumentDTO `json:"previous"`
	New        *DocumentDTO `json:"new"`
}

// ToDomain validates a ChangeEventDTO and converts it to a typed event.
// Malformed documents are rejected here so undefined fields never propagate
// past the transport boundary.
func ToDomain(dto ChangeEventDTO) (events.Event, error) {
	docID := strings.TrimSpace(dto.DocumentID)
	if docID == "" {
		return events.Event{}, Permanent(fmt.Errorf("empty document_id"))
	}
	if dto.Previous == nil && dto.New == nil {
		return events.Event{}, Permanent(fmt.Errorf("change event with no document state"))
	}

	switch strings.TrimSpace(dto.Collection) {
	case collectionDeliveries:
		prev, err := toDelivery(docID, dto.Previous)
		if err != nil {
			return events.Event{}, err
		}
		next, err := toDelivery(docID, dto.New)
		if err != nil {
			return events.Event{}, err
		}
		return events.Event{Delivery: &rules.ChangeEvent{
			Collection: rules.CollectionDeliveries,
			DocumentID: docID,
			Previous:   prev,
			New:        next,
		}}, nil

	case collectionUsers:
		return events.Event{Profile: &events.ProfileChange{
			UserID: docID,
			New:    toProfile(docID, dto.New),
		}}, nil

	default:
		return events.Event{}, Permanent(fmt.Errorf("unknown collection %q", dto.Collection))
	}
}

func toDelivery(id string, doc *DocumentDTO) (*domain.Delivery, error) {
	if doc == nil {
		return nil, nil
	}
	status := domain.DeliveryStatus(strings.TrimSpace(doc.Status))
	if !status.Valid() {
		return nil, Permanent(fmt.Errorf("delivery %s: invalid status %q", id, doc.Status))
	}
	return &domain.Delivery{
		ID:       id,
		Title:    strings.TrimSpace(doc.Title),
		Status:   status,
		UserID:   strings.TrimSpace(doc.UserID),
		DriverID: strings.TrimSpace(doc.DriverID),
	}, nil
}

func toProfile(id string, doc *DocumentDTO) *domain.UserProfile {
	if doc == nil {
		return nil
	}
	return &domain.UserProfile{
		ID:        id,
		Name:      strings.TrimSpace(doc.Name),
		IsDriver:  doc.IsDriver,
		PushToken: strings.TrimSpace(doc.FCMToken),
	}
}
