package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/avast/retry-go"
)

// RetryProvider re-issues failed calls. Outages and rate limits are
// retried up to the attempt budget; schema violations get a single second
// chance since the model may well produce valid output next time.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry returns p itself when cfg allows only one attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 2 {
		return p
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		out        *Response
		reprompted bool
	)
	attempt := func() error {
		resp, err := r.inner.Generate(ctx, req)
		out = resp
		return err
	}
	retryable := func(err error) bool {
		if invalid := (*ErrInvalidResponse)(nil); errors.As(err, &invalid) {
			if reprompted {
				return false
			}
			reprompted = true
			return true
		}
		return IsTransient(err)
	}

	err := retry.Do(attempt,
		retry.Context(ctx),
		retry.Attempts(uint(r.config.MaxAttempts)),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.DelayType(func(n uint, err error, _ *retry.Config) time.Duration {
			return r.backoff(int(n), err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// backoff is the pause before retry number n+1. A vendor supplied
// Retry-After wins; otherwise the wait grows geometrically up to MaxWait
// with 20% jitter either way.
func (r *RetryProvider) backoff(n int, err error) time.Duration {
	if rl := (*ErrRateLimit)(nil); errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(n))
	if limit := float64(r.config.MaxWait); limit > 0 {
		d = math.Min(d, limit)
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(math.Max(d, 0))
}

// TimeoutProvider puts a deadline on each call, retries included when it
// sits outside a RetryProvider.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout returns p itself for a non-positive d.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string { return t.inner.ModelID() }

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
