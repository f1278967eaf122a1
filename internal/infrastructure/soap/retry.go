package soap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/DanielPopoola/payline-gateway/internal/config"
	"github.com/DanielPopoola/payline-gateway/internal/message"
)

// RetryClient resends calls that failed with a transient transport error.
// Validation and interpretation errors never reach it: they are raised
// before or after the transport.
type RetryClient struct {
	inner      message.RemoteClient
	baseDelay  time.Duration
	maxRetries int
	logger     *slog.Logger
}

func NewRetryClient(inner message.RemoteClient, cfg config.RetryConfig, logger *slog.Logger) *RetryClient {
	if logger == nil {
		logger = slog.Default()
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryClient{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (r *RetryClient) Call(ctx context.Context, method string, payload *message.Payload) (message.Tree, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tree, err := r.inner.Call(ctx, method, payload)
		if err == nil {
			return tree, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			delay := r.backoff(attempt)
			r.logger.Warn("retrying remote call",
				"method", method,
				"attempt", attempt+1,
				"delay", delay,
				"error", err,
			)
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	if r.maxRetries == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	if transportErr, ok := IsTransportError(err); ok {
		return transportErr.IsRetryable()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// backoff doubles the base delay per attempt and adds up to a second of
// jitter, capped by the base delay itself when that is shorter.
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	maxJitter := time.Second
	if r.baseDelay < maxJitter {
		maxJitter = r.baseDelay
	}
	if maxJitter <= 0 {
		return base
	}

	return base + time.Duration(rand.Int63n(int64(maxJitter)))
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
