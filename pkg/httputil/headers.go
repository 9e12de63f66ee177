package httputil

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// headerValue looks up name in a flattened header map, matching names
// case-insensitively and ignoring surrounding whitespace. The lookup
// never relies on the transport's canonical casing.
func headerValue(headers map[string]string, name string) (string, bool) {
	for k, v := range headers {
		if strings.EqualFold(strings.TrimSpace(k), name) {
			return v, true
		}
	}
	return "", false
}

// intHeader parses the named header as a base-10 integer.
func intHeader(headers map[string]string, name string) (int, bool) {
	v, ok := headerValue(headers, name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// retryAfterSeconds extracts an integer Retry-After value. The HTTP-date
// form of the header is ignored.
func retryAfterSeconds(headers map[string]string) (int, bool) {
	return intHeader(headers, "Retry-After")
}

// rateLimitResetWait derives a wait from GitHub-style rate-limit headers.
// It applies only when the quota is exhausted or unreported
// (X-RateLimit-Remaining absent, unparsable, or <= 0) and X-RateLimit-Reset
// parses as epoch seconds. A reset already in the past yields a zero wait.
func rateLimitResetWait(headers map[string]string, now time.Time) (time.Duration, bool) {
	reset, ok := intHeader(headers, "X-RateLimit-Reset")
	if !ok {
		return 0, false
	}
	if remaining, ok := intHeader(headers, "X-RateLimit-Remaining"); ok && remaining > 0 {
		return 0, false
	}
	return time.Duration(max(int64(reset)-now.Unix(), 0)) * time.Second, true
}

// flattenHeader collapses an http.Header into a name→value map, joining
// repeated values with ", ".
func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		out[k] = strings.Join(vv, ", ")
	}
	return out
}
