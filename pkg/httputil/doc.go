// Package httputil implements the retrying JSON fetch used by the
// registry tooling.
//
// # Overview
//
// [FetchJSON] issues a single HTTP GET, decodes the body as JSON, and
// retries transient failures according to a [RetryPolicy]. Every call
// produces exactly one [Result]; fetch errors are captured in the result
// rather than returned, so callers branch on Result.OK:
//
//	res := httputil.FetchJSON(ctx, url, httputil.FetchOptions{}, httputil.DefaultPolicy())
//	if !res.OK {
//	    return fmt.Errorf("fetch %s: %s", url, res.Error)
//	}
//
// # Retry behavior
//
// Network errors and the statuses in RetryPolicy.RetryStatuses are
// retried up to MaxAttempts. The wait before the next attempt is the
// capped exponential backoff min(BackoffCap, 2^attempt * BackoffBase),
// raised to an integer Retry-After when the response carries one, and
// raised again to the rate-limit reset wait when the response reports an
// exhausted quota (X-RateLimit-Remaining absent or zero together with a
// parsable X-RateLimit-Reset). Header-derived floors are not capped. A
// random jitter below 250ms is added to every wait. Waits end early when
// the caller's context is done, in which case the fetch returns a
// terminal failure result.
//
// A 2xx response whose body is not valid JSON is a terminal failure and
// is never retried.
//
// # Headers
//
// Response headers are matched case-insensitively and returned flattened
// to a name→value map for the final response actually seen. Request
// headers from [FetchOptions] are sent verbatim on every attempt.
package httputil
