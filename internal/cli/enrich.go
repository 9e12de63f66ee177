package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/componentry/regtool/pkg/ghtoken"
	"github.com/componentry/regtool/pkg/io"
	"github.com/componentry/regtool/pkg/registry"
)

// enrichCommand creates the enrich command for fetching repo metadata.
func (c *CLI) enrichCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "enrich [name]...",
		Short: "Fetch repository metadata for components",
		Long: `Fetch repository metadata from the GitHub API and store it in a
.meta.json file next to each submission.

Components are processed one at a time to stay inside API rate
limits. Failures are reported per component and do not stop the
run; the command exits non-zero if any component failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("component names required (or use --all)")
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runEnrich(cmd.Context(), cfg, args, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "enrich every component in the registry")

	return cmd
}

// runEnrich fetches metadata for the selected components sequentially.
func (c *CLI) runEnrich(ctx context.Context, cfg *Config, names []string, all bool) error {
	logger := loggerFromContext(ctx)
	dir := registry.ComponentsDir(cfg.RegistryRoot)

	var components []registry.Component
	if all {
		var err error
		components, err = registry.List(dir)
		if err != nil {
			return err
		}
	} else {
		for _, name := range names {
			comp, err := registry.Load(registry.SubmissionPath(dir, name))
			if err != nil {
				return err
			}
			components = append(components, comp)
		}
	}
	if len(components) == 0 {
		printInfo("Nothing to enrich")
		return nil
	}

	token, ok := ghtoken.FromEnv(cfg.TokenEnv, cfg.ExtraTokenEnvs...)
	if !ok {
		printWarning("No API token set; unauthenticated requests are heavily rate limited")
	}

	opts := registry.EnrichOptions{
		APIBase:   cfg.APIBase,
		Token:     token,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout(),
		Policy:    cfg.Policy(),
		Logger:    logger,
	}

	prog := newProgress(logger)
	failed := 0
	for _, comp := range components {
		if err := ctx.Err(); err != nil {
			return err
		}

		meta, err := registry.Enrich(ctx, comp, opts)
		if err != nil {
			failed++
			printError("%s: %v", comp.Name, err)
			continue
		}

		path := registry.MetaPath(dir, comp.Name)
		if err := io.WriteJSONAtomic(path, meta); err != nil {
			failed++
			printError("%s: %v", comp.Name, err)
			continue
		}
		printSuccess("%s", comp.Name)
		printFile(path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d components failed", failed, len(components))
	}
	prog.done(fmt.Sprintf("Enriched %d components", len(components)))
	return nil
}
