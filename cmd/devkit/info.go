package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/registry"
)

// suggestLimit is the number of close names offered for an unknown tool.
const suggestLimit = 3

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <tool>",
		Short: "Show details about a tool",
		Long: `Info prints the route, label, category and usage of a tool.
An unknown name lists the closest registered tools.

Examples:
  devkit info base64
  devkit info /json-editor`,
		Args: cobra.ExactArgs(1),
		RunE: runInfoCmd,
	}
}

// runInfoCmd executes the info command.
func runInfoCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	tool, err := registry.Lookup(args[0])
	if err != nil {
		if errors.Is(err, registry.ErrToolNotFound) {
			if s := registry.Suggest(args[0], suggestLimit); len(s) > 0 {
				return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(s, ", "))
			}
		}
		return err
	}
	env.logger.Debug("tool found", "path", tool.Path)

	result := model.NewResult("info")
	result.Title = tool.Label
	result.Add("Command", tool.Name()).
		Add("Path", tool.Path).
		Add("Category", tool.Category.Label()).
		Add("Description", tool.Description)

	if sub, _, err := cmd.Root().Find([]string{tool.Name()}); err == nil && sub != cmd.Root() {
		result.WithBody(sub.UseLine(), "")
	}
	return env.emit(result)
}
