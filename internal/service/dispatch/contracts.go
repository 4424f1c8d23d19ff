//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"

	"github.com/afercon/delivery-notifier/internal/domain"
)

// ProfileDirectory abstracts the user profile store lookups needed to resolve
// intent targets.
type ProfileDirectory interface {
	Get(ctx context.Context, id string) (*domain.UserProfile, error)
	ListDrivers(ctx context.Context) ([]domain.UserProfile, error)
}

// NotificationStore abstracts inbox record writes and dispatch bookkeeping.
type NotificationStore interface {
	Insert(ctx context.Context, rec *domain.NotificationRecord) error
	// ClaimDispatch records key atomically and returns false if it was
	// already claimed by an earlier dispatch of the same intent.
	ClaimDispatch(ctx context.Context, key string) (bool, error)
	// ReleaseDispatch removes a claim so a redelivered event can retry.
	ReleaseDispatch(ctx context.Context, key string) error
}

// Message is one push send request covering a set of device tokens.
type Message struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

// TokenResult is the per-token outcome of a push send.
type TokenResult struct {
	Token     string
	OK        bool
	Permanent bool // token rejected as permanently invalid, never retry
	Reason    string
}

// Report aggregates per-token outcomes of one push send.
type Report struct {
	Results []TokenResult
}

// InvalidTokens returns the set of tokens the push service rejected permanently.
func (r Report) InvalidTokens() map[string]bool {
	out := make(map[string]bool)
	for _, res := range r.Results {
		if !res.OK && res.Permanent {
			out[res.Token] = true
		}
	}
	return out
}

// PushSender sends one message to a set of tokens and reports per-token results.
// A returned error means the transport as a whole was unreachable.
type PushSender interface {
	Send(ctx context.Context, msg Message) (Report, error)
}
