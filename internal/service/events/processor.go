package events

import (
	"context"
	"fmt"

	"github.com/afercon/delivery-notifier/internal/apperr"
	"github.com/afercon/delivery-notifier/internal/logx"
	"github.com/afercon/delivery-notifier/internal/service/rules"
)

// Processor handles validated change events: delivery mutations run through
// the rule engine and dispatcher, users mutations keep the profile store
// current.
type Processor struct {
	dispatcher DispatcherPort
	profiles   ProfileWriter
	logger     logx.Logger
}

// NewProcessor creates a new events.Processor.
func NewProcessor(d DispatcherPort, profiles ProfileWriter, logger logx.Logger) *Processor {
	return &Processor{dispatcher: d, profiles: profiles, logger: logger}
}

// Handle processes a single change event. A returned error is transient:
// the caller should redeliver the event, which idempotent dispatch makes
// safe. Data-integrity defects are logged and swallowed so the event is
// committed and never retried.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	switch {
	case e.Profile != nil:
		return p.handleProfile(ctx, *e.Profile)
	case e.Delivery != nil:
		return p.handleDelivery(ctx, *e.Delivery)
	default:
		return nil
	}
}

func (p *Processor) handleProfile(ctx context.Context, ch ProfileChange) error {
	if ch.New == nil {
		if err := p.profiles.Delete(ctx, ch.UserID); err != nil {
			return fmt.Errorf("delete profile %s: %w", ch.UserID, err)
		}
		return nil
	}
	if err := p.profiles.Upsert(ctx, ch.New); err != nil {
		return fmt.Errorf("upsert profile %s: %w", ch.UserID, err)
	}
	return nil
}

func (p *Processor) handleDelivery(ctx context.Context, ch rules.ChangeEvent) error {
	intents, err := rules.Evaluate(ch)
	if err != nil {
		if apperr.IsIntegrity(err) {
			p.logger.Error("rule evaluation rejected event",
				logx.String("delivery_id", ch.DocumentID),
				logx.Any("err", err),
			)
			err = nil
		} else {
			return err
		}
	}

	// One intent failing must not affect its siblings: the broadcast and
	// the acceptance notice target disjoint audiences.
	var transient error
	for _, intent := range intents {
		out, err := p.dispatcher.Dispatch(ctx, intent)
		if err != nil {
			if apperr.IsIntegrity(err) {
				p.logger.Error("intent dropped",
					logx.String("key", intent.IdempotencyKey()),
					logx.Any("err", err),
				)
				continue
			}
			transient = err
			continue
		}
		p.logger.Debug("intent handled",
			logx.String("key", intent.IdempotencyKey()),
			logx.String("status", string(out.Status)),
		)
	}
	return transient
}
