package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/componentry/regtool/pkg/io"
	"github.com/componentry/regtool/pkg/registry"
)

// componentsCommand creates the components command with subcommands.
func (c *CLI) componentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Inspect registry component submissions",
		Long: `List and inspect the component submissions of a registry checkout.

The registry root defaults to the current directory and can be set
with registry_root in the config file.`,
	}

	cmd.AddCommand(c.componentsListCommand())
	cmd.AddCommand(c.componentsShowCommand())

	return cmd
}

// componentsListCommand creates the "components list" subcommand.
func (c *CLI) componentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all component submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			dir := registry.ComponentsDir(cfg.RegistryRoot)
			components, err := registry.List(dir)
			if err != nil {
				return err
			}
			if len(components) == 0 {
				printInfo("No components in %s", dir)
				return nil
			}

			enriched := 0
			for _, comp := range components {
				if _, err := os.Stat(registry.MetaPath(dir, comp.Name)); err == nil {
					enriched++
				}
				line := comp.Name
				if comp.Description != "" {
					line += "  " + StyleDim.Render(comp.Description)
				}
				fmt.Println(line)
			}
			printStats(len(components), enriched)
			printNextStep("Inspect one", "regtool components show <name>")
			return nil
		},
	}
}

// componentsShowCommand creates the "components show" subcommand.
func (c *CLI) componentsShowCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show one component and its enrichment metadata",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir := registry.ComponentsDir(cfg.RegistryRoot)

			var name string
			switch {
			case len(args) == 1:
				name = args[0]
			case interactive:
				name, err = pickComponent(dir)
				if err != nil {
					return err
				}
				if name == "" {
					return nil
				}
			default:
				return fmt.Errorf("component name required (or use --interactive)")
			}

			comp, err := registry.Load(registry.SubmissionPath(dir, name))
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(comp.Name))
			if comp.Description != "" {
				printKeyValue("Description", comp.Description)
			}
			if comp.Repo != "" {
				printKeyValue("Repo", StyleLink.Render(comp.Repo))
			}
			if len(comp.Tags) > 0 {
				printKeyValue("Tags", strings.Join(comp.Tags, ", "))
			}

			var meta map[string]any
			if err := io.ReadJSON(registry.MetaPath(dir, name), &meta); err == nil {
				printNewline()
				fmt.Println(StyleSuccess.Render("Enrichment"))
				keys := make([]string, 0, len(meta))
				for key := range meta {
					keys = append(keys, key)
				}
				slices.Sort(keys)
				for _, key := range keys {
					printKeyValue(key, fmt.Sprint(meta[key]))
				}
			} else {
				printNewline()
				printDetail("Not enriched yet")
				printNextStep("Enrich it", "regtool enrich "+comp.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the component from a list")

	return cmd
}
