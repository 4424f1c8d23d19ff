package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"github.com/afercon/delivery-notifier/internal/config"
	"github.com/afercon/delivery-notifier/internal/gateway/push"
	"github.com/afercon/delivery-notifier/internal/logx"
	"github.com/afercon/delivery-notifier/internal/metrics"
	"github.com/afercon/delivery-notifier/internal/repository"
	"github.com/afercon/delivery-notifier/internal/service/dispatch"
	"github.com/afercon/delivery-notifier/internal/service/events"
	"github.com/afercon/delivery-notifier/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the DI container for the change-event worker.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	container, err := buildWorkerContainer(ctx, connectDbWithRetry)
	if err != nil {
		log.Fatalf("failed to build worker container: %v", err)
	}
	return container
}

func buildWorkerContainer(
	ctx context.Context,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerDispatch(container); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}
	if err := registerConsumer(container); err != nil {
		return nil, fmt.Errorf("consumer: %w", err)
	}
	return container, nil
}

func registerDispatch(container *dig.Container) error {
	return provideAll(container,
		repository.NewProfileRepo,
		repository.NewNotificationRepo,
		func(profiles *repository.ProfileRepo) *dispatch.Resolver {
			return dispatch.NewResolver(profiles)
		},
		newPushSender,
		newDispatcher,
		func(d *dispatch.Dispatcher, profiles *repository.ProfileRepo, logger logx.Logger) *events.Processor {
			return events.NewProcessor(d, profiles, logger)
		},
	)
}

func newPushSender(cfg *config.Config, logger logx.Logger) *push.RetryingSender {
	client := push.NewClient(cfg.Push.Endpoint, cfg.Push.APIKey, cfg.Push.Timeout)
	return push.NewRetryingSender(client, logger, registerCounter(metrics.NewPushRetriesTotal()), push.RetryConfig{
		MaxAttempts: cfg.Push.MaxAttempts,
		BaseDelay:   cfg.Push.BaseDelay,
		MaxDelay:    cfg.Push.MaxDelay,
	})
}

func newDispatcher(
	cfg *config.Config,
	resolver *dispatch.Resolver,
	store *repository.NotificationRepo,
	sender *push.RetryingSender,
	logger logx.Logger,
) *dispatch.Dispatcher {
	counters := dispatch.Counters{
		Dispatches:    registerCounter(metrics.NewDispatchesTotal()),
		Duplicates:    registerCounter(metrics.NewDuplicateDispatchesTotal()),
		InvalidTokens: registerCounter(metrics.NewInvalidTokensTotal()),
		PushFailures:  registerCounter(metrics.NewPushSendFailuresTotal()),
	}
	return dispatch.NewDispatcher(resolver, store, sender, logger, counters, cfg.Dispatch.OperationTimeout)
}

func registerConsumer(container *dig.Container) error {
	return provideAll(container,
		func(p *events.Processor) kafka.HandleFunc { return p.Handle },
		func(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
			if len(cfg.Kafka.Brokers) == 0 {
				return nil, fmt.Errorf("no kafka brokers configured")
			}
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h, logger)
		},
	)
}
