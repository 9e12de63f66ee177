package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/componentry/regtool/pkg/registry"
)

// indexCommand creates the index command for rebuilding the catalog.
func (c *CLI) indexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the component catalog",
		Long: `Rebuild index.json from the component submissions.

The catalog lists every submission sorted by name and is replaced
atomically, so readers never observe a partially written index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runIndex(cmd.Context(), cfg)
		},
	}
}

// runIndex rebuilds the catalog from the submissions directory.
func (c *CLI) runIndex(ctx context.Context, cfg *Config) error {
	logger := loggerFromContext(ctx)
	dir := registry.ComponentsDir(cfg.RegistryRoot)

	prog := newProgress(logger)
	idx, err := registry.BuildIndex(dir)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	path := registry.IndexPath(cfg.RegistryRoot)
	if err := registry.WriteIndex(path, idx); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	prog.done(fmt.Sprintf("Indexed %d components", idx.Count))

	printSuccess("Index rebuilt with %d components", idx.Count)
	printFile(path)
	return nil
}
