package events

import (
	"github.com/afercon/delivery-notifier/internal/domain"
	"github.com/afercon/delivery-notifier/internal/service/rules"
)

// ProfileChange is a single observed mutation of a users-collection document.
// New is nil when the document was deleted.
type ProfileChange struct {
	UserID string
	New    *domain.UserProfile
}

// Event is one validated change event from the upstream document store.
// Exactly one of the fields is set.
type Event struct {
	Delivery *rules.ChangeEvent
	Profile  *ProfileChange
}
