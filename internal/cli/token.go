package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/componentry/regtool/pkg/ghtoken"
)

// tokenCommand creates the token command for inspecting API credentials.
func (c *CLI) tokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show which environment variable supplies the API token",
		Long: `Show which environment variable supplies the API token.

Candidates are checked in order: the configured token_env, any
extra_token_envs, then GH_TOKEN, GH_API_TOKEN, and GITHUB_TOKEN.
The first variable holding a non-empty value wins.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			candidates := ghtoken.Candidates(cfg.TokenEnv, cfg.ExtraTokenEnvs...)
			if !ghtoken.Has(cfg.TokenEnv, cfg.ExtraTokenEnvs...) {
				return fmt.Errorf("no API token set (checked %s)", strings.Join(candidates, ", "))
			}

			name, token, _ := ghtoken.Resolve(cfg.TokenEnv, cfg.ExtraTokenEnvs...)
			printSuccess("API token available")
			printKeyValue("Variable", StyleHighlight.Render(name))
			printKeyValue("Value", StyleNumber.Render(maskToken(token)))
			printDetail("Checked: %s", strings.Join(candidates, ", "))
			return nil
		},
	}
}

// maskToken hides the middle of a token, keeping just enough of each
// end to recognize it.
func maskToken(token string) string {
	if len(token) <= 12 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}
