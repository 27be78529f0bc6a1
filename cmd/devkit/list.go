package main

import (
	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/registry"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every tool grouped by category",
		Long: `List prints the registered tools grouped by category.

Examples:
  # List every tool
  devkit list

  # Only the JSON tools
  devkit list --category json

  # Markdown catalog with a pie chart of tools per category
  devkit list -o markdown`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	cmd.Flags().StringP("category", "c", "",
		"Only list tools of this category (encoding, json, generators, converters, web, games, other)")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	name, err := cmd.Flags().GetString("category")
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	groups := registry.ByCategory()
	if name != "" {
		category, err := model.ParseCategory(name)
		if err != nil {
			return err
		}
		groups = filterGroups(groups, category)
	}

	_, err = env.writer.WriteCatalog(groups)
	return err
}

func filterGroups(groups []registry.Group, category model.Category) []registry.Group {
	for _, g := range groups {
		if g.Category == category {
			return []registry.Group{g}
		}
	}
	return nil
}
