package utils

import (
	"context"
	"time"
)

// Retry invokes fn up to retries+1 times, doubling the delay between
// attempts. It returns nil on the first success, otherwise the last error.
// Only reads should go through here; writes always surface their first
// failure to the user.
func Retry(ctx context.Context, retries int, baseDelay time.Duration, fn func() error) error {
	var err error
	delay := baseDelay
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
