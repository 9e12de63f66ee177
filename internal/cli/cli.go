// Package cli implements the regtool command-line interface.
//
// This package provides commands for fetching JSON documents with
// retries, inspecting component submissions, rebuilding the registry
// index, and enriching components with repository metadata from the
// GitHub API. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - fetch: Fetch a JSON document with retries and rate-limit handling
//   - token: Show which environment variable supplies the API token
//   - components: List and inspect component submissions
//   - index: Rebuild the component catalog atomically
//   - enrich: Fetch repository metadata into .meta.json files
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
//
// # Example
//
//	import "github.com/componentry/regtool/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/componentry/regtool/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "regtool"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "regtool",
		Short: "Regtool maintains a JSON component registry",
		Long: `Regtool is a CLI tool for maintaining a component registry: fetching
JSON documents from rate-limited APIs with retries, rebuilding the
component index, and enriching submissions with repository metadata.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "",
		"config file (default ./regtool.toml, then $XDG_CONFIG_HOME/regtool/config.toml)")

	// The logger is attached to the context and accessible to all
	// commands via loggerFromContext.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.tokenCommand())
	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.indexCommand())
	root.AddCommand(c.enrichCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the effective configuration once and caches it
// for the rest of the invocation.
func (c *CLI) loadConfig() (*Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/regtool/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
