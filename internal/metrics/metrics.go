package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewPushRetriesTotal returns a Prometheus counter for the number of retry attempts performed by the push gateway
func NewPushRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "push_retries_total",
		Help: "Total number of retry attempts performed by the push gateway",
	})
}

// NewDispatchesTotal returns a Prometheus counter for the number of successfully dispatched intents
func NewDispatchesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_dispatches_total",
		Help: "Total number of successfully dispatched notification intents",
	})
}

// NewDuplicateDispatchesTotal returns a Prometheus counter for the number of duplicate dispatches skipped by idempotency
func NewDuplicateDispatchesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_duplicate_dispatches_total",
		Help: "Total number of duplicate dispatches skipped by the idempotency check",
	})
}

// NewInvalidTokensTotal returns a Prometheus counter for push tokens reported permanently invalid
func NewInvalidTokensTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "push_invalid_tokens_total",
		Help: "Total number of push tokens reported permanently invalid by the push service",
	})
}

// NewPushSendFailuresTotal returns a Prometheus counter for push sends that failed at the transport level
func NewPushSendFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "push_send_failures_total",
		Help: "Total number of push sends that failed at the transport level",
	})
}
