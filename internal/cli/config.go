package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/componentry/regtool/pkg/buildinfo"
	"github.com/componentry/regtool/pkg/httputil"
	"github.com/componentry/regtool/pkg/registry"
)

// configFileName is the project-local config filename.
const configFileName = "regtool.toml"

// Config holds the effective regtool configuration.
type Config struct {
	// RegistryRoot is the registry repository checkout that the
	// components, index, and enrich commands operate on.
	RegistryRoot string `toml:"registry_root"`

	// APIBase overrides the GitHub API root.
	APIBase string `toml:"api_base"`

	// UserAgent is sent with every outbound request.
	UserAgent string `toml:"user_agent"`

	// TokenEnv is the preferred environment variable for API tokens.
	// It is consulted before the built-in candidates.
	TokenEnv string `toml:"token_env"`

	// ExtraTokenEnvs are consulted after TokenEnv, before the built-in
	// candidates.
	ExtraTokenEnvs []string `toml:"extra_token_envs"`

	Fetch FetchConfig `toml:"fetch"`
}

// FetchConfig tunes the retrying fetcher.
type FetchConfig struct {
	// TimeoutSeconds bounds each request attempt.
	TimeoutSeconds float64 `toml:"timeout_s"`

	// MaxAttempts is the total number of tries per request.
	MaxAttempts int `toml:"max_attempts"`

	// BackoffBaseSeconds scales the exponential backoff.
	BackoffBaseSeconds float64 `toml:"backoff_base_s"`

	// BackoffCapSeconds bounds a single backoff sleep.
	BackoffCapSeconds float64 `toml:"backoff_cap_s"`

	// RetryStatuses lists the HTTP status codes worth retrying.
	RetryStatuses []int `toml:"retry_statuses"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	policy := httputil.DefaultPolicy()
	statuses := make([]int, 0, len(policy.RetryStatuses))
	for status := range policy.RetryStatuses {
		statuses = append(statuses, status)
	}
	slices.Sort(statuses)
	return &Config{
		RegistryRoot: ".",
		APIBase:      registry.DefaultAPIBase,
		UserAgent:    buildinfo.UserAgent(),
		TokenEnv:     "GH_TOKEN",
		Fetch: FetchConfig{
			TimeoutSeconds:     httputil.DefaultTimeout.Seconds(),
			MaxAttempts:        policy.MaxAttempts,
			BackoffBaseSeconds: policy.BackoffBase.Seconds(),
			BackoffCapSeconds:  policy.BackoffCap.Seconds(),
			RetryStatuses:      statuses,
		},
	}
}

// LoadConfig reads the configuration from path, or from the default
// search locations when path is empty. A missing explicit path is an
// error; missing default locations fall back to [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	resolved := path
	if resolved == "" {
		resolved = findConfig()
		if resolved == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", resolved, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	return cfg, nil
}

// findConfig returns the first default config location that exists:
// ./regtool.toml, then $XDG_CONFIG_HOME/regtool/config.toml.
func findConfig() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	if dir, err := configDir(); err == nil {
		p := filepath.Join(dir, "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Policy converts the fetch settings into a retry policy. Unset or
// non-positive values keep the fetcher defaults.
func (c *Config) Policy() httputil.RetryPolicy {
	policy := httputil.DefaultPolicy()
	if c.Fetch.MaxAttempts > 0 {
		policy.MaxAttempts = c.Fetch.MaxAttempts
	}
	if c.Fetch.BackoffBaseSeconds > 0 {
		policy.BackoffBase = secondsToDuration(c.Fetch.BackoffBaseSeconds)
	}
	if c.Fetch.BackoffCapSeconds > 0 {
		policy.BackoffCap = secondsToDuration(c.Fetch.BackoffCapSeconds)
	}
	if len(c.Fetch.RetryStatuses) > 0 {
		policy.RetryStatuses = make(map[int]bool, len(c.Fetch.RetryStatuses))
		for _, status := range c.Fetch.RetryStatuses {
			policy.RetryStatuses[status] = true
		}
	}
	return policy
}

// Timeout returns the per-attempt request timeout, or zero for the
// fetcher default.
func (c *Config) Timeout() time.Duration {
	if c.Fetch.TimeoutSeconds <= 0 {
		return 0
	}
	return secondsToDuration(c.Fetch.TimeoutSeconds)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
