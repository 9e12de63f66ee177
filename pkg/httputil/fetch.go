package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single attempt when FetchOptions.Timeout is
// zero.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how many characters of a failing response body are
// echoed into Result.Error.
const maxErrorBody = 5000

// defaultClient serves fetches that do not bring their own client.
// Per-attempt deadlines come from the request context, so the client
// carries no timeout of its own.
var defaultClient = &http.Client{}

// FetchOptions carries the per-call knobs for [FetchJSON]. The zero
// value is usable: shared client, [DefaultTimeout], no extra headers, no
// attempt logging.
type FetchOptions struct {
	// Headers are set verbatim on every attempt's request.
	Headers map[string]string

	// Timeout bounds each individual attempt, not the whole call.
	Timeout time.Duration

	// Client overrides the shared HTTP client.
	Client *http.Client

	// Logger, when set, receives a debug line per retried attempt.
	Logger *log.Logger
}

// Result is the outcome of one [FetchJSON] call. Exactly one Result is
// produced per call; fetch errors are captured here rather than
// returned. OK is true exactly when Data holds the decoded payload and
// Error is empty.
type Result struct {
	OK bool `json:"ok"`

	// Status is the HTTP status of the last response seen; zero when no
	// response arrived at all.
	Status int `json:"status,omitempty"`

	// Data is the decoded JSON payload on success.
	Data any `json:"data,omitempty"`

	// Headers holds the final response's headers flattened to single
	// values.
	Headers map[string]string `json:"headers,omitempty"`

	// Error describes the terminal failure.
	Error string `json:"error,omitempty"`

	// Attempts counts requests actually issued, between 1 and the
	// policy's MaxAttempts.
	Attempts int `json:"attempts"`

	// RetryAfterSec is the most recent integer Retry-After observed
	// across all attempts, even when the final response lacks the
	// header.
	RetryAfterSec *int `json:"last_retry_after_s,omitempty"`
}

// FetchJSON issues a GET against url and decodes the response body as
// JSON, retrying network errors and the policy's retryable statuses with
// exponential backoff. It honors Retry-After and X-RateLimit-Reset waits
// as documented on [RetryPolicy]. A 2xx response with an undecodable
// body fails immediately without further attempts.
func FetchJSON(ctx context.Context, url string, opts FetchOptions, policy RetryPolicy) Result {
	client := opts.Client
	if client == nil {
		client = defaultClient
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	attempts := policy.maxAttempts()
	var lastRetryAfter *int

	for attempt := 1; attempt <= attempts; attempt++ {
		status, headers, body, err := get(ctx, client, url, opts.Headers, timeout)
		if err != nil {
			if attempt >= attempts {
				return Result{
					Error:         err.Error(),
					Attempts:      attempt,
					RetryAfterSec: lastRetryAfter,
				}
			}
			wait := policy.backoff(attempt) + jitter()
			debugf(opts.Logger, "retrying after network error",
				"url", url, "attempt", attempt, "wait", wait, "err", err)
			if serr := sleep(ctx, wait); serr != nil {
				return cancelResult(serr, attempt, 0, nil, lastRetryAfter)
			}
			continue
		}

		if status >= 200 && status < 300 {
			var data any
			if uerr := json.Unmarshal(body, &data); uerr != nil {
				return Result{
					Status:        status,
					Headers:       headers,
					Error:         fmt.Sprintf("invalid JSON payload: %v", uerr),
					Attempts:      attempt,
					RetryAfterSec: lastRetryAfter,
				}
			}
			return Result{
				OK:            true,
				Status:        status,
				Data:          data,
				Headers:       headers,
				Attempts:      attempt,
				RetryAfterSec: lastRetryAfter,
			}
		}

		ra, hasRA := retryAfterSeconds(headers)
		if hasRA {
			lastRetryAfter = &ra
		}

		if policy.retryable(status) && attempt < attempts {
			wait := retryWait(policy, attempt, headers, time.Now()) + jitter()
			debugf(opts.Logger, "retrying after status",
				"url", url, "status", status, "attempt", attempt, "wait", wait)
			if serr := sleep(ctx, wait); serr != nil {
				return cancelResult(serr, attempt, status, headers, lastRetryAfter)
			}
			continue
		}

		return Result{
			Status:        status,
			Headers:       headers,
			Error:         statusError(status, body, ra, hasRA),
			Attempts:      attempt,
			RetryAfterSec: lastRetryAfter,
		}
	}

	// Every terminal path returns inside the loop.
	return Result{Error: "unknown error", Attempts: attempts}
}

// get runs one GET attempt under its own timeout, returning the status,
// flattened headers and full body. Transport and body-read failures are
// both reported as the error; the response then counts as never seen.
func get(ctx context.Context, client *http.Client, url string, headers map[string]string, timeout time.Duration) (int, map[string]string, []byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, err
	}
	return resp.StatusCode, flattenHeader(resp.Header), body, nil
}

// statusError formats the terminal failure for a non-2xx response:
// "HTTP {status}", the leading portion of the body when present, and the
// Retry-After value when that response carried one.
func statusError(status int, body []byte, retryAfter int, hasRetryAfter bool) string {
	msg := fmt.Sprintf("HTTP %d", status)
	if text := strings.TrimSpace(string(body)); text != "" {
		msg += ": " + truncate(text, maxErrorBody)
	}
	if hasRetryAfter {
		msg += fmt.Sprintf(" (Retry-After=%ds)", retryAfter)
	}
	return msg
}

// cancelResult is the terminal result when the caller's context ends
// during a backoff wait.
func cancelResult(err error, attempt, status int, headers map[string]string, lastRetryAfter *int) Result {
	return Result{
		Status:        status,
		Headers:       headers,
		Error:         fmt.Sprintf("fetch cancelled during backoff: %v", err),
		Attempts:      attempt,
		RetryAfterSec: lastRetryAfter,
	}
}

// truncate limits s to n characters without splitting a multi-byte rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// debugf logs through the optional fetch logger.
func debugf(logger *log.Logger, msg string, keyvals ...any) {
	if logger != nil {
		logger.Debug(msg, keyvals...)
	}
}
