package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/afercon/delivery-notifier/internal/apperr"
	"github.com/afercon/delivery-notifier/internal/domain"
	"github.com/afercon/delivery-notifier/internal/logx"
	"github.com/afercon/delivery-notifier/internal/service/rules"
)

// clickAction is the routing hint the mobile app matches on to open the
// right screen from a notification tap.
const clickAction = "FLUTTER_NOTIFICATION_CLICK"

type counter interface {
	Inc()
}

// Counters holds the dispatcher metrics. Any field may be nil.
type Counters struct {
	Dispatches    counter
	Duplicates    counter
	InvalidTokens counter
	PushFailures  counter
}

func inc(c counter) {
	if c != nil {
		c.Inc()
	}
}

func add(c counter, n int) {
	for i := 0; i < n; i++ {
		inc(c)
	}
}

type targetResolver interface {
	Resolve(ctx context.Context, sel rules.TargetSelector) (ResolvedTarget, error)
}

// Dispatcher sends one intent exactly once per triggering change event:
// push to every resolved token, plus an inbox record per recipient for
// persistent intents.
type Dispatcher struct {
	resolver         targetResolver
	store            NotificationStore
	push             PushSender
	logger           logx.Logger
	counters         Counters
	operationTimeout time.Duration
	newID            func() string
}

// NewDispatcher creates and configures a Dispatcher.
func NewDispatcher(r targetResolver, store NotificationStore, push PushSender, logger logx.Logger, counters Counters, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{
		resolver:         r,
		store:            store,
		push:             push,
		logger:           logger,
		counters:         counters,
		operationTimeout: timeout,
		newID:            uuid.NewString,
	}
}

func (d *Dispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.operationTimeout)
}

// Dispatch performs the side effects of one intent.
//
// The idempotency claim happens first: a redelivered event finds the key
// already claimed and skips. On transient failure the claim is released so
// the upstream redelivery can retry; data-integrity failures keep the claim
// and are never retried.
func (d *Dispatcher) Dispatch(ctx context.Context, intent rules.Intent) (Outcome, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	key := intent.IdempotencyKey()

	first, err := d.store.ClaimDispatch(ctx, key)
	if err != nil {
		return Outcome{Status: StatusFailed}, fmt.Errorf("claim dispatch %s: %w", key, err)
	}
	if !first {
		inc(d.counters.Duplicates)
		d.logger.Info("duplicate dispatch skipped",
			logx.String("key", key),
			logx.String("kind", string(intent.Kind)),
		)
		return Outcome{Status: StatusDuplicate}, nil
	}

	target, err := d.resolver.Resolve(ctx, intent.Target)
	if err != nil {
		if !apperr.IsIntegrity(err) {
			d.releaseClaim(key)
		}
		return Outcome{Status: StatusFailed}, err
	}
	if target.Empty() {
		d.logger.Info("no recipients for intent",
			logx.String("key", key),
			logx.String("kind", string(intent.Kind)),
		)
		return Outcome{Status: StatusNoRecipients}, nil
	}

	report, pushErr := d.sendPush(ctx, intent, target)
	invalid := report.InvalidTokens()

	// The inbox write is attempted even when push transport is down:
	// in-app visibility must not depend on push health.
	records, recordErr := d.writeRecords(ctx, intent, target, invalid)

	out := Outcome{
		Status:         StatusSent,
		PushedTokens:   len(target.Tokens()) - len(invalid),
		InvalidTokens:  len(invalid),
		RecordsWritten: records,
	}

	if pushErr != nil || recordErr != nil {
		d.releaseClaim(key)
		out.Status = StatusFailed
		return out, fmt.Errorf("dispatch %s: %w", key, errors.Join(pushErr, recordErr))
	}

	inc(d.counters.Dispatches)
	add(d.counters.InvalidTokens, len(invalid))
	d.logger.Info("intent dispatched",
		logx.String("event", "intent_dispatched"),
		logx.String("key", key),
		logx.String("kind", string(intent.Kind)),
		logx.Int("pushed", out.PushedTokens),
		logx.Int("invalid_tokens", out.InvalidTokens),
		logx.Int("records", out.RecordsWritten),
	)
	return out, nil
}

func (d *Dispatcher) sendPush(ctx context.Context, intent rules.Intent, target ResolvedTarget) (Report, error) {
	tokens := target.Tokens()
	if len(tokens) == 0 {
		return Report{}, nil
	}

	report, err := d.push.Send(ctx, Message{
		Tokens: tokens,
		Title:  intent.Title,
		Body:   intent.Body,
		Data: map[string]string{
			"deliveryId":   intent.DeliveryID,
			"click_action": clickAction,
		},
	})
	if err != nil {
		inc(d.counters.PushFailures)
		d.logger.Error("push send failed",
			logx.String("key", intent.IdempotencyKey()),
			logx.Int("tokens", len(tokens)),
			logx.Any("err", err),
		)
		return report, fmt.Errorf("send push: %w: %w", apperr.ErrUnavailable, err)
	}

	for token := range report.InvalidTokens() {
		d.logger.Warn("push token permanently invalid",
			logx.String("key", intent.IdempotencyKey()),
			logx.String("token", token),
		)
	}
	return report, nil
}

// writeRecords persists one inbox record per recipient for persistent intents.
// Recipients whose token was reported permanently invalid are excluded.
func (d *Dispatcher) writeRecords(ctx context.Context, intent rules.Intent, target ResolvedTarget, invalid map[string]bool) (int, error) {
	if !intent.Kind.Persistent() {
		return 0, nil
	}

	written := 0
	var lastErr error
	for _, rcpt := range target.Recipients {
		if rcpt.Token != "" && invalid[rcpt.Token] {
			continue
		}
		rec := &domain.NotificationRecord{
			ID:              d.newID(),
			RecipientUserID: rcpt.UserID,
			Title:           intent.Title,
			Body:            intent.Body,
			DeliveryID:      intent.DeliveryID,
		}
		if err := d.store.Insert(ctx, rec); err != nil {
			lastErr = fmt.Errorf("insert record for %s: %w", rcpt.UserID, err)
			d.logger.Error("inbox record write failed",
				logx.String("key", intent.IdempotencyKey()),
				logx.String("recipient", rcpt.UserID),
				logx.Any("err", err),
			)
			continue
		}
		written++
	}
	return written, lastErr
}

// releaseClaim is best effort: a leaked claim only suppresses a retry that
// idempotency would have allowed, it never duplicates a send.
func (d *Dispatcher) releaseClaim(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.operationTimeout)
	defer cancel()
	if err := d.store.ReleaseDispatch(ctx, key); err != nil {
		d.logger.Error("release dispatch claim failed",
			logx.String("key", key),
			logx.Any("err", err),
		)
	}
}
