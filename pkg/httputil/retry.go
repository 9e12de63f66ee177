package httputil

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// jitterMax bounds the random jitter added to every retry wait.
const jitterMax = 250 * time.Millisecond

// RetryPolicy controls the retry loop of [FetchJSON]. Policies are never
// mutated by the fetcher and may be shared across concurrent calls.
type RetryPolicy struct {
	// MaxAttempts bounds the total number of attempts. Values below 1
	// are treated as 1.
	MaxAttempts int

	// BackoffBase scales the exponential backoff: the wait after attempt
	// n is 2^n * BackoffBase, before jitter.
	BackoffBase time.Duration

	// BackoffCap is the upper bound for the exponential term.
	// Header-derived waits (Retry-After, rate-limit reset) may exceed it.
	BackoffCap time.Duration

	// RetryStatuses holds the HTTP status codes that trigger a retry.
	RetryStatuses map[int]bool
}

// DefaultPolicy returns the policy used by the registry tooling: six
// attempts, 500ms base, 60s cap, retrying 403, 429 and the transient
// 5xx statuses.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 6,
		BackoffBase: 500 * time.Millisecond,
		BackoffCap:  60 * time.Second,
		RetryStatuses: map[int]bool{
			http.StatusForbidden:           true,
			http.StatusTooManyRequests:     true,
			http.StatusInternalServerError: true,
			http.StatusBadGateway:          true,
			http.StatusServiceUnavailable:  true,
			http.StatusGatewayTimeout:      true,
		},
	}
}

// maxAttempts normalizes MaxAttempts to at least one attempt.
func (p RetryPolicy) maxAttempts() int { return max(p.MaxAttempts, 1) }

// retryable reports whether status triggers another attempt.
func (p RetryPolicy) retryable(status int) bool { return p.RetryStatuses[status] }

// backoff returns the capped exponential wait after the given 1-based
// attempt. The cap is applied before conversion so large attempt numbers
// cannot overflow.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := float64(p.BackoffBase) * math.Exp2(float64(attempt))
	return time.Duration(min(d, float64(p.BackoffCap)))
}

// retryWait computes the pre-jitter wait after a failed attempt: the
// exponential backoff, raised to an integer Retry-After when present,
// raised again to the rate-limit reset wait. Only the exponential term
// honors BackoffCap.
func retryWait(policy RetryPolicy, attempt int, headers map[string]string, now time.Time) time.Duration {
	wait := policy.backoff(attempt)
	if ra, ok := retryAfterSeconds(headers); ok {
		if d := time.Duration(ra) * time.Second; d > wait {
			wait = d
		}
	}
	if d, ok := rateLimitResetWait(headers, now); ok && d > wait {
		wait = d
	}
	return wait
}

// jitter returns a random duration in [0, jitterMax).
func jitter() time.Duration {
	return time.Duration(rand.Float64() * float64(jitterMax))
}

// sleep waits for d or until ctx is done, returning ctx.Err() in that
// case.
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
