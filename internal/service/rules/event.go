package rules

import "github.com/afercon/delivery-notifier/internal/domain"

// CollectionDeliveries is the change-event collection the rule engine reacts to.
const CollectionDeliveries = "deliveries"

// ChangeEvent is a single observed mutation of a delivery document.
// Previous is nil for a newly created document.
type ChangeEvent struct {
	Collection string
	DocumentID string
	Previous   *domain.Delivery
	New        *domain.Delivery
}

// Created reports whether the event describes a document creation.
func (e ChangeEvent) Created() bool {
	return e.Previous == nil && e.New != nil
}
