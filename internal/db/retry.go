package db

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// RetryConfig bounds the backoff applied to record-store calls.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	JitterFrac  float64
}

// DefaultRetryConfig returns the retry policy for store writes that must
// not be lost to a transient lock.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
		JitterFrac:  0.2,
	}
}

// WithRetry runs fn with bounded exponential backoff. The last error is
// returned after MaxAttempts; callers log and abandon the operation rather
// than crash a tick.
func WithRetry(ctx context.Context, cfg RetryConfig, logger *zerolog.Logger, op string, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	delay := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		wait := delay
		if cfg.JitterFrac > 0 {
			jitter := time.Duration(float64(delay) * cfg.JitterFrac * rand.Float64())
			wait += jitter
		}
		if logger != nil {
			logger.Warn().Err(lastErr).
				Str("op", op).
				Int("attempt", attempt).
				Dur("retry_in", wait).
				Msg("store call failed, retrying")
		}

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return lastErr
}
