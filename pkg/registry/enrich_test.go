package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/componentry/regtool/pkg/httputil"
)

func fastEnrichOptions(server *httptest.Server, token string) EnrichOptions {
	return EnrichOptions{
		APIBase: server.URL,
		Token:   token,
		Timeout: 5 * time.Second,
		Policy: httputil.RetryPolicy{
			MaxAttempts:   2,
			BackoffBase:   time.Millisecond,
			BackoffCap:    10 * time.Millisecond,
			RetryStatuses: map[int]bool{http.StatusServiceUnavailable: true},
		},
	}
}

const repoPayload = `{
	"id": 1296269,
	"archived": false,
	"default_branch": "main",
	"description": "Relational database",
	"forks_count": 12,
	"full_name": "acme/widget",
	"language": "C",
	"license": {"key": "mit", "spdx_id": "MIT"},
	"open_issues_count": 3,
	"pushed_at": "2024-03-01T10:00:00Z",
	"stargazers_count": 420,
	"watchers_count": 17
}`

func TestEnrich(t *testing.T) {
	var gotPath, gotAccept, gotAuth, gotAgent, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(repoPayload))
	}))
	defer server.Close()

	c := Component{Name: "widget", Repo: "https://github.com/acme/widget"}
	meta, err := Enrich(context.Background(), c, fastEnrichOptions(server, "tok123"))
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}

	if gotPath != "/repos/acme/widget" {
		t.Errorf("request path = %q, want /repos/acme/widget", gotPath)
	}
	if gotAccept != "application/vnd.github.v3+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
	if !strings.HasPrefix(gotAgent, "regtool/") {
		t.Errorf("User-Agent = %q, want regtool/ prefix", gotAgent)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header not sent")
	}

	if meta["stargazers_count"] != float64(420) {
		t.Errorf("stargazers_count = %v, want 420", meta["stargazers_count"])
	}
	if meta["language"] != "C" {
		t.Errorf("language = %v, want C", meta["language"])
	}
	if meta["license"] != "MIT" {
		t.Errorf("license = %v, want MIT", meta["license"])
	}
	if meta["archived"] != false {
		t.Errorf("archived = %v, want false", meta["archived"])
	}
	if meta["default_branch"] != "main" {
		t.Errorf("default_branch = %v, want main", meta["default_branch"])
	}
	if _, ok := meta["id"]; ok {
		t.Error("meta kept the id field, want it dropped")
	}
	if _, ok := meta["watchers_count"]; ok {
		t.Error("meta kept the watchers_count field, want it dropped")
	}
}

func TestEnrichWithoutToken(t *testing.T) {
	var gotAuth string
	sawAuth := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(repoPayload))
	}))
	defer server.Close()

	c := Component{Name: "widget", Repo: "https://github.com/acme/widget"}
	if _, err := Enrich(context.Background(), c, fastEnrichOptions(server, "")); err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}
	if sawAuth {
		t.Errorf("Authorization header sent without a token: %q", gotAuth)
	}
}

func TestEnrichSkipsNullAndMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"description": null, "license": null, "stargazers_count": 7}`))
	}))
	defer server.Close()

	c := Component{Name: "widget", Repo: "https://github.com/acme/widget"}
	meta, err := Enrich(context.Background(), c, fastEnrichOptions(server, ""))
	if err != nil {
		t.Fatalf("Enrich() error: %v", err)
	}

	if _, ok := meta["description"]; ok {
		t.Error("meta kept a null description")
	}
	if _, ok := meta["license"]; ok {
		t.Error("meta kept a null license")
	}
	if _, ok := meta["language"]; ok {
		t.Error("meta invented a language field")
	}
	if meta["stargazers_count"] != float64(7) {
		t.Errorf("stargazers_count = %v, want 7", meta["stargazers_count"])
	}
}

func TestEnrichNotGitHubRepo(t *testing.T) {
	c := Component{Name: "widget", Repo: "https://gitlab.com/acme/widget"}
	_, err := Enrich(context.Background(), c, EnrichOptions{})
	if err == nil {
		t.Fatal("Enrich() = nil, want URL error")
	}
	if !strings.Contains(err.Error(), "widget") {
		t.Errorf("error %q does not name the component", err)
	}
}

func TestEnrichHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer server.Close()

	c := Component{Name: "widget", Repo: "https://github.com/acme/widget"}
	_, err := Enrich(context.Background(), c, fastEnrichOptions(server, ""))
	if err == nil {
		t.Fatal("Enrich() = nil, want HTTP error")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("error = %q, want HTTP 404 mention", err)
	}
}

func TestEnrichNonObjectPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["not", "an", "object"]`))
	}))
	defer server.Close()

	c := Component{Name: "widget", Repo: "https://github.com/acme/widget"}
	if _, err := Enrich(context.Background(), c, fastEnrichOptions(server, "")); err == nil {
		t.Error("Enrich() = nil, want payload shape error")
	}
}
