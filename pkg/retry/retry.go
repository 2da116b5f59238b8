// Package retry repeats audit service calls after transient failures.
// Callers mark permanent failures with Stop so they return at once.
//
//	rules, err := retry.Do(ctx, retry.DefaultConfig(), func(ctx context.Context) ([]model.Rule, error) {
//	    rules, err := fetch(ctx)
//	    if isClientError(err) {
//	        return nil, retry.Stop(err)
//	    }
//	    return rules, err
//	})
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/duration"
)

// Strategy selects how the wait grows between attempts.
type Strategy int

const (
	// Exponential waits InitDelay, 2*InitDelay, 4*InitDelay, ...
	Exponential Strategy = iota
	// Linear waits InitDelay, 2*InitDelay, 3*InitDelay, ...
	Linear
	// Constant always waits InitDelay.
	Constant
)

// Config controls retry behaviour. MaxAttempts counts the first try; values
// below 1 are treated as 1.
type Config struct {
	MaxAttempts int
	InitDelay   time.Duration
	// MaxDelay caps a single wait; zero means duration.RetryMax.
	MaxDelay time.Duration
	Strategy Strategy
	// Jitter spreads each wait by up to 25% either way, still capped.
	Jitter bool

	// OnRetry, when set, is called after failed attempt n and before the
	// wait that follows it.
	OnRetry func(n int, err error, wait time.Duration)
}

// DefaultConfig is used for idempotent reads such as rule listings: the
// first try plus defaults.RetryLow retries, exponential from
// duration.RetryFast up to duration.RetryMax, with jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 1 + defaults.RetryLow,
		InitDelay:   duration.RetryFast,
		MaxDelay:    duration.RetryMax,
		Strategy:    Exponential,
		Jitter:      true,
	}
}

// Once runs a call a single time. Scans and uploads use it so a slow server
// never sees the same work twice.
func Once() Config {
	return Config{MaxAttempts: 1 + defaults.RetryNone}
}

// StopError marks an error as permanent.
type StopError struct {
	Err error
}

func (e *StopError) Error() string { return e.Err.Error() }
func (e *StopError) Unwrap() error { return e.Err }

// Stop wraps err so that Do returns it without further attempts.
func Stop(err error) error {
	return &StopError{Err: err}
}

// Backoff returns the wait after failed attempt n (1-based).
func (c Config) Backoff(n int) time.Duration {
	if n < 1 || c.InitDelay <= 0 {
		return 0
	}
	limit := c.MaxDelay
	if limit <= 0 {
		limit = duration.RetryMax
	}

	base := float64(c.InitDelay)
	var d float64
	switch c.Strategy {
	case Linear:
		d = base * float64(n)
	case Constant:
		d = base
	default:
		d = base * math.Pow(2, float64(n-1))
	}
	if c.Jitter {
		d += d * (rand.Float64()*0.5 - 0.25)
	}
	// Float math keeps huge attempt numbers from wrapping negative.
	if math.IsInf(d, 0) || math.IsNaN(d) || d > float64(limit) {
		d = float64(limit)
	}
	return time.Duration(d)
}

// Do calls fn until it succeeds, returns a StopError, runs out of attempts
// or ctx ends. On failure it returns the last error from fn, unwrapped from
// any StopError, or ctx.Err() if the context ended first.
func Do[T any](ctx context.Context, cfg Config, fn func(context.Context) (T, error)) (T, error) {
	return do(ctx, cfg, fn, sleep)
}

func do[T any](ctx context.Context, cfg Config, fn func(context.Context) (T, error), wait func(context.Context, time.Duration) error) (T, error) {
	var zero T
	attempts := max(cfg.MaxAttempts, 1)

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		var stop *StopError
		if errors.As(err, &stop) {
			return zero, stop.Err
		}
		if n >= attempts {
			return zero, err
		}

		d := cfg.Backoff(n)
		if cfg.OnRetry != nil {
			cfg.OnRetry(n, err, d)
		}
		if err := wait(ctx, d); err != nil {
			return zero, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
