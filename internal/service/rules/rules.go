package rules

import (
	"fmt"

	"github.com/afercon/delivery-notifier/internal/apperr"
	"github.com/afercon/delivery-notifier/internal/domain"
)

// IntentKind identifies which rule produced an intent.
type IntentKind string

// List of intent kinds
const (
	KindNewDeliveryBroadcast  IntentKind = "newDeliveryBroadcast"
	KindDeliveryAcceptedNotice IntentKind = "deliveryAcceptedNotice"
)

// Persistent reports whether intents of this kind produce inbox records in
// addition to push messages. The broadcast is push-only.
func (k IntentKind) Persistent() bool {
	return k == KindDeliveryAcceptedNotice
}

// Transition returns the stable transition name used in idempotency keys.
func (k IntentKind) Transition() string {
	switch k {
	case KindNewDeliveryBroadcast:
		return "created"
	case KindDeliveryAcceptedNotice:
		return "accepted"
	default:
		return string(k)
	}
}

// TargetSelector describes who should receive an intent, prior to resolving
// profiles and tokens.
type TargetSelector struct {
	Broadcast bool
	UserID    string
}

// AllDrivers selects every user profile with isDriver set.
func AllDrivers() TargetSelector { return TargetSelector{Broadcast: true} }

// SingleUser selects exactly one user by id.
func SingleUser(id string) TargetSelector { return TargetSelector{UserID: id} }

// Intent is a decision to notify, produced by Evaluate and consumed
// immediately by the dispatcher. Never persisted.
type Intent struct {
	Kind       IntentKind
	Target     TargetSelector
	Title      string
	Body       string
	DeliveryID string
}

// IdempotencyKey returns the deterministic key identifying this intent across
// redeliveries of the same underlying change event.
func (i Intent) IdempotencyKey() string {
	return i.DeliveryID + ":" + i.Kind.Transition()
}

// Notification copy. Kept byte-identical to the strings the mobile app ships with.
const (
	broadcastTitle = "Nova Entrega Disponível!"
	acceptedTitle  = "O seu pedido foi aceite!"
	genericTitle   = "O seu pedido"
)

func broadcastBody(deliveryTitle string) string {
	return fmt.Sprintf("Uma nova entrega %q está disponível para aceitação.", deliveryTitle)
}

func acceptedBody(deliveryTitle string) string {
	return fmt.Sprintf("Um motorista está a caminho para recolher a encomenda %q.", deliveryTitle)
}

// Evaluate maps one change event to zero or more notification intents.
// The rule set is a strict allow-list: unmodeled transitions and collections
// other than deliveries never fire, so unrelated field edits cannot cause
// notification spam.
func Evaluate(e ChangeEvent) ([]Intent, error) {
	if e.Collection != CollectionDeliveries || e.New == nil {
		return nil, nil
	}

	var intents []Intent

	if e.Created() {
		intents = append(intents, Intent{
			Kind:       KindNewDeliveryBroadcast,
			Target:     AllDrivers(),
			Title:      broadcastTitle,
			Body:       broadcastBody(e.New.Title),
			DeliveryID: e.DocumentID,
		})
	}

	if accepted(e) {
		if e.New.UserID == "" {
			return intents, fmt.Errorf("delivery %s has no userId: %w", e.DocumentID, apperr.ErrMissingRecipient)
		}
		title := e.New.Title
		if title == "" {
			title = genericTitle
		}
		intents = append(intents, Intent{
			Kind:       KindDeliveryAcceptedNotice,
			Target:     SingleUser(e.New.UserID),
			Title:      acceptedTitle,
			Body:       acceptedBody(title),
			DeliveryID: e.DocumentID,
		})
	}

	return intents, nil
}

// accepted reports whether the event is the available → inProgress transition.
func accepted(e ChangeEvent) bool {
	return e.Previous != nil &&
		e.Previous.Status == domain.StatusAvailable &&
		e.New.Status == domain.StatusInProgress
}
