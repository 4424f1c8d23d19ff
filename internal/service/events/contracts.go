//go:generate mockgen -source=contracts.go -destination=events_mocks_test.go -package=events_test

package events

import (
	"context"

	"github.com/afercon/delivery-notifier/internal/domain"
	"github.com/afercon/delivery-notifier/internal/service/dispatch"
	"github.com/afercon/delivery-notifier/internal/service/rules"
)

// DispatcherPort abstracts the dispatcher operations needed by the Processor
// when handling delivery change events.
type DispatcherPort interface {
	Dispatch(ctx context.Context, intent rules.Intent) (dispatch.Outcome, error)
}

// ProfileWriter abstracts profile store mutations driven by users-collection
// change events.
type ProfileWriter interface {
	Upsert(ctx context.Context, p *domain.UserProfile) error
	Delete(ctx context.Context, id string) error
}
