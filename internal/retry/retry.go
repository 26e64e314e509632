// Package retry runs a fallible operation with bounded retries on transient
// failures.
//
// Only errors accepted by the policy's predicate are retried. Any other error
// is returned unchanged after the first invocation, and when attempts run out
// the last transient error is returned unchanged as well.
package retry

import (
	"context"
	"math"
	"time"

	goretry "github.com/sethvargo/go-retry"

	"weatherstack-check/config"
	"weatherstack-check/internal/apierr"
	"weatherstack-check/pkg/logger"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1 * time.Second
	DefaultMaxDelay    = 8 * time.Second
)

// BackoffFunc returns the delay before retry number attempt (1-based).
type BackoffFunc func(attempt int) time.Duration

// Policy describes when and how often to retry.
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
	IsRetryable func(err error) bool
	Logger      *logger.Logger
}

// DefaultPolicy retries transient network failures 3 times in total with
// 1s, 2s, 4s delays.
func DefaultPolicy(l *logger.Logger) *Policy {
	return &Policy{
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     ExponentialBackoff(DefaultBaseDelay, DefaultMaxDelay),
		IsRetryable: IsTransient,
		Logger:      l,
	}
}

// PolicyFromConfig builds the default policy with the configured limits.
func PolicyFromConfig(cfg config.WeatherstackConfig, l *logger.Logger) *Policy {
	p := DefaultPolicy(l)
	if cfg.MaxAttempts > 0 {
		p.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.BaseDelay > 0 {
		p.Backoff = ExponentialBackoff(cfg.BaseDelay, max(cfg.MaxDelay, cfg.BaseDelay))
	}
	return p
}

// ExponentialBackoff doubles base on every attempt, capped at maxDelay.
func ExponentialBackoff(base, maxDelay time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		delay := float64(base) * math.Pow(2, float64(attempt-1))
		if delay > float64(maxDelay) {
			return maxDelay
		}
		return time.Duration(delay)
	}
}

// NoBackoff retries immediately. Meant for tests.
func NoBackoff(int) time.Duration { return 0 }

// IsTransient accepts only TransientNetworkError.
func IsTransient(err error) bool {
	return apierr.Is(err, apierr.KindTransientNetwork)
}

// Do invokes op until it succeeds, fails with a non-retryable error, or the
// policy runs out of attempts. A cancelled ctx stops the backoff wait and
// returns ctx.Err().
func Do[T any](ctx context.Context, p *Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var (
		result  T
		attempt int
		lastErr error
		start   = time.Now()
	)

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	isRetryable := p.IsRetryable
	if isRetryable == nil {
		isRetryable = IsTransient
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = NoBackoff
	}

	next := goretry.BackoffFunc(func() (time.Duration, bool) {
		delay := backoff(attempt)
		if p.Logger != nil {
			p.Logger.Warning("retrying after transient failure", map[string]any{
				"attempt":      attempt,
				"max_attempts": maxAttempts,
				"error_kind":   apierr.KindOf(lastErr).String(),
				"error":        lastErr,
				"delay":        delay.String(),
				"elapsed":      time.Since(start).String(),
			})
		}
		return delay, false
	})

	err := goretry.Do(ctx, goretry.WithMaxRetries(uint64(maxAttempts-1), next), func(ctx context.Context) error {
		attempt++
		v, err := op(ctx)
		if err == nil {
			result = v
			return nil
		}
		lastErr = err
		if isRetryable(err) {
			return goretry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
