// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// # Transport Resilience
//
// Only request-level timeouts are retried: the store regularly stalls under
// batch imports, and a timed-out request is safe to repeat because every
// call is a single request/response unit. Application errors (4xx/5xx,
// malformed bodies) propagate immediately — repeating them cannot succeed
// and on the create path could write twice.

const (
	// maxAttempts bounds the total tries per operation (1 initial + 9 retries).
	maxAttempts = 10

	// baseRetryDelay is the backoff's starting interval.
	baseRetryDelay = 500 * time.Millisecond
)

// retryPolicy runs operation with bounded exponential backoff, logging a
// warning before each retry and an info line once a retried operation
// recovers. The operation name and the relevant external identifier go into
// every line to aid diagnosis against the store's own logs.
type retryPolicy struct {
	log *slog.Logger
}

func (policy *retryPolicy) run(ctx context.Context, operationName, externalID string, operation func() error) error {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = baseRetryDelay

	schedule := backoff.WithContext(backoff.WithMaxRetries(exponential, maxAttempts-1), ctx)

	attempts := 0
	wrapped := func() error {
		attempts++
		err := operation()
		if err == nil {
			return nil
		}
		if isTimeout(err) {
			return err
		}
		// Not retryable: stop the schedule immediately.
		return backoff.Permanent(err)
	}

	notify := func(err error, wait time.Duration) {
		policy.log.Warn("collections_retrying_after_timeout",
			slog.String("operation", operationName),
			slog.String("external_id", externalID),
			slog.Int("attempt", attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
	}

	err := backoff.RetryNotify(wrapped, schedule, notify)
	if err == nil && attempts > 1 {
		policy.log.Info("collections_recovered_after_retry",
			slog.String("operation", operationName),
			slog.String("external_id", externalID),
			slog.Int("attempts", attempts),
		)
	}
	return err
}

// isTimeout classifies a transport failure as a request-level timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
