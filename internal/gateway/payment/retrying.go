package payment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"eats-backend/internal/apperr"
	"eats-backend/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes the retry behavior of RetryingGateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway wraps a Gateway and retries transient processor faults.
// Only errors wrapping apperr.ErrUnavailable are retried: the idempotency
// key is stable per order, so a retried capture can never double-charge.
// Declines are terminal and pass through untouched.
type RetryingGateway struct {
	next    Gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway creates a RetryingGateway around next.
func NewRetryingGateway(next Gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Capture calls the wrapped gateway, retrying transient failures with
// capped exponential backoff.
func (g *RetryingGateway) Capture(ctx context.Context, orderID int64, amount decimal.Decimal, method string) (CaptureResult, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		res, err := g.next.Capture(ctx, orderID, amount, method)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !errors.Is(err, apperr.ErrUnavailable) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("payment capture retry",
			logx.Int64("order_id", orderID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return CaptureResult{}, lastErr
}

// backoff computes the retry delay.
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
