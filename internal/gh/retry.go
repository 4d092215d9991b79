package gh

import (
	"context"
	"errors"
	"time"

	"github.com/google/go-github/v60/github"
)

// Rate-limit waits are clamped so a distant reset window can't stall a
// tool call for most of an hour.
const (
	minRateLimitWait = time.Second
	maxRateLimitWait = 2 * time.Minute
)

// call paces the request through the limiter and retries it when the API
// reports a rate limit. Only rate-limit errors are retried — auth and
// not-found failures surface immediately. Attempts are bounded by the
// configured retry count and the wait honors context cancellation.
func (c *Client) call(ctx context.Context, op string, fn func() error) error {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}

		wait, retryable := rateLimitWait(err)
		if !retryable || attempt >= c.retries {
			return err
		}

		c.log.Warn().
			Str("op", op).
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Msg("rate limited, backing off")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// rateLimitWait reports whether err is a retryable rate-limit error and
// how long to wait before the next attempt.
func rateLimitWait(err error) (time.Duration, bool) {
	var primary *github.RateLimitError
	if errors.As(err, &primary) {
		return clampWait(time.Until(primary.Rate.Reset.Time) + time.Second), true
	}

	var secondary *github.AbuseRateLimitError
	if errors.As(err, &secondary) {
		if secondary.RetryAfter != nil {
			return clampWait(*secondary.RetryAfter), true
		}
		return 30 * time.Second, true
	}

	return 0, false
}

func clampWait(d time.Duration) time.Duration {
	if d < minRateLimitWait {
		return minRateLimitWait
	}
	if d > maxRateLimitWait {
		return maxRateLimitWait
	}
	return d
}
