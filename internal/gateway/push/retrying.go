package push

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/afercon/delivery-notifier/internal/logx"
	"github.com/afercon/delivery-notifier/internal/service/dispatch"
)

type sender interface {
	Send(ctx context.Context, msg dispatch.Message) (dispatch.Report, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes RetryingSender behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingSender retries transient push transport failures with exponential
// backoff before giving up and letting the event be redelivered.
type RetryingSender struct {
	next    sender
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingSender wraps next with retry behavior. Returns nil if next is nil.
func NewRetryingSender(next sender, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingSender {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingSender{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Send forwards to the wrapped sender, retrying retryable failures.
func (g *RetryingSender) Send(ctx context.Context, msg dispatch.Message) (dispatch.Report, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		report, err := g.next.Send(ctx, msg)
		if err == nil {
			return report, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("push gateway retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return dispatch.Report{}, lastErr
}

// isRetryable classifies push transport errors. Server-side overload and
// plain network failures are worth another attempt; client errors and
// cancellation are not.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	var netErr *url.Error
	return errors.As(err, &netErr)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
