package routing

import (
	"context"
	"errors"
	"net/http"
	"time"

	"freightline/internal/domain"
	"freightline/internal/logx"
)

type gateway interface {
	RoadMiles(context.Context, domain.Address, domain.Address) (float64, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes RetryingGateway behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient routing failures with exponential
// backoff before giving up.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetryingGateway wraps next with retries; returns nil when next is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if g, ok := next.(*HTTPGateway); ok && g == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// RoadMiles delegates to the wrapped gateway, retrying retryable errors.
func (g *RetryingGateway) RoadMiles(ctx context.Context, pickup, destination domain.Address) (float64, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		miles, err := g.next.RoadMiles(ctx, pickup, destination)
		if err == nil {
			return miles, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("routing gateway retry",
			logx.String("method", "RoadMiles"),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, g.sleep, delay) {
			break
		}
	}
	return 0, lastErr
}

// isRetryable treats transport failures and throttling or server-side
// statuses as transient. Anything else (4xx, malformed replies) will not
// improve on retry.
func isRetryable(err error) bool {
	var st StatusError
	if errors.As(err, &st) {
		return st.Code == http.StatusTooManyRequests || st.Code >= http.StatusInternalServerError
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// plain transport errors (refused connection, reset) are worth a retry
	return true
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
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
