// Package storeretry wraps durable-store calls with a bounded exponential backoff.
// Only errors that look like a connection-level failure are retried; anything else
// (constraint violations, bad SQL, canceled contexts) propagates immediately.
package storeretry

import (
	"context"
	"database/sql/driver"
	"net"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const maxAttempts = 3

// Do runs fn, retrying transient store failures up to maxAttempts times.
// The retries block only the calling operation.
func Do(ctx context.Context, op string, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(time.Millisecond*100),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsTransient),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Err(err).
				Str("op", op).
				Uint("attempt", n+1).
				Msg("transient store error; retrying")
		}),
	)
}

// IsTransient reports whether err is a connection/timeout/unavailable class error.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
