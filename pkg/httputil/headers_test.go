package httputil

import (
	"net/http"
	"testing"
	"time"
)

func TestHeaderValueCaseInsensitive(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		lookup  string
		want    string
		wantOK  bool
	}{
		{
			name:    "exact match",
			headers: map[string]string{"Retry-After": "7"},
			lookup:  "Retry-After",
			want:    "7",
			wantOK:  true,
		},
		{
			name:    "lowercase stored",
			headers: map[string]string{"retry-after": "7"},
			lookup:  "Retry-After",
			want:    "7",
			wantOK:  true,
		},
		{
			name:    "uppercase stored",
			headers: map[string]string{"RETRY-AFTER": "7"},
			lookup:  "Retry-After",
			want:    "7",
			wantOK:  true,
		},
		{
			name:    "whitespace around stored name",
			headers: map[string]string{"  Retry-After  ": "7"},
			lookup:  "Retry-After",
			want:    "7",
			wantOK:  true,
		},
		{
			name:    "missing",
			headers: map[string]string{"Content-Type": "application/json"},
			lookup:  "Retry-After",
			wantOK:  false,
		},
		{
			name:   "nil map",
			lookup: "Retry-After",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := headerValue(tt.headers, tt.lookup)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("headerValue(%v, %q) = (%q, %v), want (%q, %v)",
					tt.headers, tt.lookup, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIntHeader(t *testing.T) {
	tests := []struct {
		value  string
		want   int
		wantOK bool
	}{
		{"42", 42, true},
		{"  42  ", 42, true},
		{"0", 0, true},
		{"-5", -5, true},
		{"4.5", 0, false},
		{"soon", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		headers := map[string]string{"X-Value": tt.value}
		got, ok := intHeader(headers, "X-Value")
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("intHeader(%q) = (%d, %v), want (%d, %v)", tt.value, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRateLimitResetWait(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name    string
		headers map[string]string
		want    time.Duration
		wantOK  bool
	}{
		{
			name: "remaining zero with future reset",
			headers: map[string]string{
				"X-RateLimit-Remaining": "0",
				"X-RateLimit-Reset":     "1700000060",
			},
			want:   time.Minute,
			wantOK: true,
		},
		{
			name:    "remaining absent with future reset",
			headers: map[string]string{"X-RateLimit-Reset": "1700000030"},
			want:    30 * time.Second,
			wantOK:  true,
		},
		{
			name: "remaining unparsable counts as exhausted",
			headers: map[string]string{
				"X-RateLimit-Remaining": "lots",
				"X-RateLimit-Reset":     "1700000010",
			},
			want:   10 * time.Second,
			wantOK: true,
		},
		{
			name: "reset in the past clamps to zero",
			headers: map[string]string{
				"X-RateLimit-Remaining": "0",
				"X-RateLimit-Reset":     "1699999000",
			},
			want:   0,
			wantOK: true,
		},
		{
			name: "quota still available",
			headers: map[string]string{
				"X-RateLimit-Remaining": "3",
				"X-RateLimit-Reset":     "1700000060",
			},
			wantOK: false,
		},
		{
			name:    "no reset header",
			headers: map[string]string{"X-RateLimit-Remaining": "0"},
			wantOK:  false,
		},
		{
			name:    "reset unparsable",
			headers: map[string]string{"X-RateLimit-Reset": "tomorrow"},
			wantOK:  false,
		},
		{
			name: "case-insensitive names",
			headers: map[string]string{
				"x-ratelimit-remaining": "0",
				"X-RATELIMIT-RESET":     "1700000005",
			},
			want:   5 * time.Second,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rateLimitResetWait(tt.headers, now)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("rateLimitResetWait() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFlattenHeader(t *testing.T) {
	h := http.Header{}
	h.Add("Content-Type", "application/json")
	h.Add("X-Multi", "a")
	h.Add("X-Multi", "b")

	flat := flattenHeader(h)

	if flat["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q", flat["Content-Type"])
	}
	if flat["X-Multi"] != "a, b" {
		t.Errorf("X-Multi = %q, want joined values", flat["X-Multi"])
	}

	if got := flattenHeader(http.Header{}); len(got) != 0 {
		t.Errorf("flattenHeader(empty) = %v, want empty map", got)
	}
}
