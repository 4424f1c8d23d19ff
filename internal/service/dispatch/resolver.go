package dispatch

import (
	"context"
	"fmt"

	"github.com/afercon/delivery-notifier/internal/apperr"
	"github.com/afercon/delivery-notifier/internal/service/rules"
)

// Recipient is one concrete delivery target. Token may be empty: the user
// exists but has no registered device, so only an inbox record is possible.
type Recipient struct {
	UserID string
	Token  string
}

// ResolvedTarget is the concrete audience of an intent.
type ResolvedTarget struct {
	Recipients []Recipient
}

// Empty reports whether nobody can receive the intent. An empty broadcast is
// a successful no-op, not an error.
func (t ResolvedTarget) Empty() bool { return len(t.Recipients) == 0 }

// Tokens returns the non-empty push tokens of the target.
func (t ResolvedTarget) Tokens() []string {
	out := make([]string, 0, len(t.Recipients))
	for _, r := range t.Recipients {
		if r.Token != "" {
			out = append(out, r.Token)
		}
	}
	return out
}

// Resolver turns target selectors into concrete recipients.
type Resolver struct {
	profiles ProfileDirectory
}

// NewResolver creates a Resolver over the given profile directory.
func NewResolver(profiles ProfileDirectory) *Resolver {
	return &Resolver{profiles: profiles}
}

// Resolve looks up the profiles selected by sel.
//
// For a broadcast, drivers without a push token are dropped: there is nothing
// to deliver to them. For a single user the profile is kept even without a
// token, since the inbox record must not depend on push registration.
func (r *Resolver) Resolve(ctx context.Context, sel rules.TargetSelector) (ResolvedTarget, error) {
	if sel.Broadcast {
		drivers, err := r.profiles.ListDrivers(ctx)
		if err != nil {
			return ResolvedTarget{}, fmt.Errorf("list drivers: %w", err)
		}
		var target ResolvedTarget
		for _, d := range drivers {
			if !d.Deliverable() {
				continue
			}
			target.Recipients = append(target.Recipients, Recipient{UserID: d.ID, Token: d.PushToken})
		}
		return target, nil
	}

	p, err := r.profiles.Get(ctx, sel.UserID)
	if err != nil {
		return ResolvedTarget{}, fmt.Errorf("get profile %s: %w", sel.UserID, err)
	}
	if p == nil {
		return ResolvedTarget{}, fmt.Errorf("profile %s: %w", sel.UserID, apperr.ErrUnknownRecipient)
	}
	return ResolvedTarget{Recipients: []Recipient{{UserID: p.ID, Token: p.PushToken}}}, nil
}
