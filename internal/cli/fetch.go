package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/componentry/regtool/pkg/ghtoken"
	"github.com/componentry/regtool/pkg/httputil"
	"github.com/componentry/regtool/pkg/io"
)

// fetchParams collects the fetch command flags.
type fetchParams struct {
	output   string
	headers  []string
	timeout  float64
	attempts int
	auth     bool
	envelope bool
}

// fetchCommand creates the fetch command for ad hoc API requests.
func (c *CLI) fetchCommand() *cobra.Command {
	var params fetchParams

	cmd := &cobra.Command{
		Use:   "fetch [url]",
		Short: "Fetch a JSON document with retries",
		Long: `Fetch a JSON document over HTTP.

Retryable status codes are retried with exponential backoff plus
jitter. Retry-After headers and GitHub style X-RateLimit-Reset
headers raise the wait when they ask for more. The decoded payload
is written as canonical JSON to the output.

Use --envelope to write the full fetch result (status, headers,
attempts, error) instead of just the payload. The envelope is
written even when the fetch fails, so scripts can inspect what
happened.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runFetch(cmd.Context(), cfg, args[0], params)
		},
	}

	cmd.Flags().StringVarP(&params.output, "output", "o", "-", "output file, or - for stdout")
	cmd.Flags().StringArrayVarP(&params.headers, "header", "H", nil, `extra request header ("Name: value", repeatable)`)
	cmd.Flags().Float64Var(&params.timeout, "timeout", 0, "per-attempt timeout in seconds (overrides config)")
	cmd.Flags().IntVar(&params.attempts, "attempts", 0, "maximum attempts (overrides config)")
	cmd.Flags().BoolVar(&params.auth, "auth", false, "attach the API token from the environment")
	cmd.Flags().BoolVar(&params.envelope, "envelope", false, "write the full fetch result instead of the payload")

	return cmd
}

// runFetch performs the request and writes the payload or envelope.
func (c *CLI) runFetch(ctx context.Context, cfg *Config, url string, params fetchParams) error {
	logger := loggerFromContext(ctx)

	policy := cfg.Policy()
	if params.attempts > 0 {
		policy.MaxAttempts = params.attempts
	}
	timeout := cfg.Timeout()
	if params.timeout > 0 {
		timeout = secondsToDuration(params.timeout)
	}

	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": cfg.UserAgent,
	}
	if params.auth {
		name, token, ok := ghtoken.Resolve(cfg.TokenEnv, cfg.ExtraTokenEnvs...)
		if !ok {
			candidates := ghtoken.Candidates(cfg.TokenEnv, cfg.ExtraTokenEnvs...)
			return fmt.Errorf("no API token set (checked %s)", strings.Join(candidates, ", "))
		}
		logger.Debug("using API token", "env", name)
		headers["Authorization"] = "Bearer " + token
	}
	for _, h := range params.headers {
		name, value, err := splitHeader(h)
		if err != nil {
			return err
		}
		headers[name] = value
	}

	prog := newProgress(logger)
	res := httputil.FetchJSON(ctx, url, httputil.FetchOptions{
		Headers: headers,
		Timeout: timeout,
		Logger:  logger,
	}, policy)

	var payload any = res.Data
	if params.envelope {
		payload = res
	}
	if res.OK || params.envelope {
		if err := writeOutput(params.output, payload); err != nil {
			return err
		}
	}

	if !res.OK {
		return fmt.Errorf("fetch %s: %s (%d attempts)", url, res.Error, res.Attempts)
	}
	prog.done(fmt.Sprintf("Fetched %s", url))
	return nil
}

// splitHeader parses a "Name: value" flag into its parts.
func splitHeader(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("invalid header %q (want \"Name: value\")", s)
	}
	return strings.TrimSpace(name), strings.TrimSpace(value), nil
}

// writeOutput writes v as canonical JSON to path, or to stdout when
// path is "-" or empty.
func writeOutput(path string, v any) error {
	if path == "" || path == "-" {
		return io.Encode(os.Stdout, v)
	}
	if err := io.WriteJSON(path, v); err != nil {
		return err
	}
	printFile(path)
	return nil
}
