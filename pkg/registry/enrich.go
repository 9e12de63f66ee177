package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/componentry/regtool/pkg/buildinfo"
	"github.com/componentry/regtool/pkg/httputil"
)

// DefaultAPIBase is the public GitHub API root.
const DefaultAPIBase = "https://api.github.com"

// metaKeys are the repository fields copied verbatim into enrichment
// output. Everything else the API returns is dropped.
var metaKeys = []string{
	"archived",
	"default_branch",
	"description",
	"forks_count",
	"language",
	"open_issues_count",
	"pushed_at",
	"stargazers_count",
}

// EnrichOptions configures repository metadata enrichment.
type EnrichOptions struct {
	// APIBase overrides the GitHub API root, mainly for tests.
	// Defaults to [DefaultAPIBase].
	APIBase string

	// Token authorizes requests when set. Unauthenticated requests
	// work but hit much lower rate limits.
	Token string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Timeout bounds each request attempt. Zero means the fetcher's
	// default.
	Timeout time.Duration

	// Policy controls retries. The zero value means the fetcher's
	// default policy.
	Policy httputil.RetryPolicy

	Client *http.Client
	Logger *log.Logger
}

// Enrich fetches repository metadata for a component from the GitHub
// API and returns the fields worth keeping in a meta file.
func Enrich(ctx context.Context, c Component, opts EnrichOptions) (map[string]any, error) {
	owner, repo, ok := c.OwnerRepo()
	if !ok {
		return nil, fmt.Errorf("component %s: repo %q is not a GitHub URL", c.Name, c.Repo)
	}

	base := opts.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	agent := opts.UserAgent
	if agent == "" {
		agent = buildinfo.UserAgent()
	}
	policy := opts.Policy
	if policy.MaxAttempts == 0 {
		policy = httputil.DefaultPolicy()
	}

	headers := map[string]string{
		"Accept":       "application/vnd.github.v3+json",
		"User-Agent":   agent,
		"X-Request-ID": uuid.NewString(),
	}
	if opts.Token != "" {
		headers["Authorization"] = "Bearer " + opts.Token
	}

	url := fmt.Sprintf("%s/repos/%s/%s", base, owner, repo)
	res := httputil.FetchJSON(ctx, url, httputil.FetchOptions{
		Headers: headers,
		Timeout: opts.Timeout,
		Client:  opts.Client,
		Logger:  opts.Logger,
	}, policy)
	if !res.OK {
		return nil, fmt.Errorf("github repo %s/%s: %s", owner, repo, res.Error)
	}

	payload, ok := res.Data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("github repo %s/%s: unexpected payload shape", owner, repo)
	}

	meta := make(map[string]any, len(metaKeys)+1)
	for _, key := range metaKeys {
		if v, ok := payload[key]; ok && v != nil {
			meta[key] = v
		}
	}
	if lic, ok := payload["license"].(map[string]any); ok {
		if spdx, ok := lic["spdx_id"].(string); ok && spdx != "" {
			meta["license"] = spdx
		}
	}
	return meta, nil
}
